package qgis2kepler

import "github.com/google/uuid"

func markerSymbol(color, outline string, size string) *Symbol {
	return &Symbol{Kind: MarkerSymbol, Opacity: 1, Layers: []SymbolLayer{{
		Type: SimpleMarker,
		Properties: NewProperties(
			"color", color,
			"outline_color", outline,
			"outline_width", "0",
			"outline_width_unit", "Pixel",
			"outline_style", "solid",
			"size", size,
			"size_unit", "Pixel",
			"style", "solid",
		),
	}}}
}

func fillSymbol(color, outline string) *Symbol {
	return &Symbol{Kind: FillSymbol, Opacity: 1, Layers: []SymbolLayer{{
		Type: SimpleFill,
		Properties: NewProperties(
			"color", color,
			"outline_color", outline,
			"outline_width", "0.26",
			"outline_width_unit", "MM",
			"outline_style", "solid",
			"style", "solid",
		),
	}}}
}

func lineSymbol(color string) *Symbol {
	return &Symbol{Kind: LineSymbol, Opacity: 1, Layers: []SymbolLayer{{
		Type: SimpleLine,
		Properties: NewProperties(
			"line_color", color,
			"line_width", "0.86",
			"line_width_unit", "MM",
		),
	}}}
}

func testLayer(name string, typ GeometryType, r Renderer, fields ...NativeField) *VectorLayer {
	return &VectorLayer{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("layer/"+name)),
		Name:     name,
		Type:     typ,
		Visible:  true,
		Renderer: r,
		Fields:   fields,
	}
}

func defaultSize() SizeSettings {
	return DefaultSettings().Size
}
