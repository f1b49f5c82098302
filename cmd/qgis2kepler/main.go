package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

func main() {
	root := &cobra.Command{
		Use:          "qgis2kepler",
		Short:        "Export GIS project layers as a kepler.gl map configuration",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable development logging")
	root.AddCommand(exportCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a development logger with --debug and a warn level
// production logger otherwise.
func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}
