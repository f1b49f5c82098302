package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
	"github.com/flywave/go-qgis2kepler/builder"
)

type exportFlags struct {
	project   string
	settings  string
	out       string
	format    string
	keepGoing bool
	force     bool
}

func exportCmd() *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the layers of a project",
		Long: `Export reads a YAML project and its GeoJSON layers and writes a kepler.gl
map configuration, either as a zip archive with CSV datasets or as a single
JSON document with inline data.

Unless --force is given, the export is skipped when the output is newer than
the project, the settings and every layer file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "path to the project file")
	cmd.Flags().StringVarP(&f.settings, "settings", "s", "", "path to a TOML settings file")
	cmd.Flags().StringVarP(&f.out, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format, zip or json (default from settings)")
	cmd.Flags().BoolVarP(&f.keepGoing, "keep-going", "k", false, "skip layers that fail instead of aborting")
	cmd.Flags().BoolVar(&f.force, "force", false, "export even when the output is up to date")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runExport(cmd *cobra.Command, f *exportFlags) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := qgis2kepler.LoadSettings(f.settings)
	if err != nil {
		return err
	}
	format := settings.OutputFormat
	if f.format != "" {
		format = qgis2kepler.OutputFormat(f.format)
	}

	if !f.force && !f.keepGoing {
		cache := builder.NewCache(logger)
		cache.SetDestination(f.out)
		path, err := cache.ExportFile(ctx, format, f.project, f.settings)
		if err != nil {
			return err
		}
		cmd.Printf("Configuration written to %s\n", path)
		return nil
	}

	p, err := qgis2kepler.ParseProjectFile(f.project)
	if err != nil {
		return err
	}
	b := builder.New(settings, builder.Options{OutputDir: f.out, Format: format, SkipFailedLayers: f.keepGoing}, logger)
	res, err := b.Export(ctx, p)
	if err != nil {
		logger.Error("config creation failed", zap.Error(err))
		return err
	}

	if len(res.Skipped) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Skipped layer", "Unit", "Error"})
		for _, s := range res.Skipped {
			t.AppendRow(table.Row{s.Layer, s.Unit, s.Err.Error()})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
	}
	cmd.Printf("Configuration written to %s\n", res.Path)
	return nil
}
