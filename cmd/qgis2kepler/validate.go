package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
)

func validateCmd() *cobra.Command {
	var project, settings string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve the layer configs of a project without reading its data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, project, settings)
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "path to the project file")
	cmd.Flags().StringVarP(&settings, "settings", "s", "", "path to a TOML settings file")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runValidate(cmd *cobra.Command, projectPath, settingsPath string) error {
	s, err := qgis2kepler.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	p, err := qgis2kepler.ParseProjectFile(projectPath)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Layer", "ID", "Type", "Renderer", "Color channel", "Stroke channel", "Status"})
	failed := 0
	for i := range p.Layers {
		l := &p.Layers[i]
		kind := ""
		if l.Renderer != nil {
			kind = string(l.Renderer.Kind())
		}
		id := qgis2kepler.LayerID(l.ID)
		cfg, err := s.Size.BuildLayerConfig(l, id, l.Visible)
		if err != nil {
			failed++
			t.AppendRow(table.Row{l.Name, id, l.Type, kind, "-", "-", err.Error()})
			continue
		}
		t.AppendRow(table.Row{l.Name, id, cfg.Type, kind,
			channel(cfg.VisualChannels.ColorField, cfg.VisualChannels.ColorScale),
			channel(cfg.VisualChannels.StrokeColorField, cfg.VisualChannels.StrokeColorScale),
			"ok"})
	}
	t.AppendFooter(table.Row{"Total", len(p.Layers), "", "", "", "", fmt.Sprintf("%d failed", failed)})
	t.SetStyle(table.StyleLight)
	t.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d layers cannot be exported", failed, len(p.Layers))
	}
	return nil
}

func channel(f *qgis2kepler.Field, scale string) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", f.Name, scale)
}
