package qgis2kepler

var graduatedScales = map[ClassificationMethod]string{
	EqualInterval: "quantize",
	Quantile:      "quantile",
	Logarithmic:   "log",
}

var supportedMethods = []string{
	"Equal Count (" + string(Quantile) + ")",
	"Equal Interval (" + string(EqualInterval) + ")",
	string(Logarithmic),
}

type classStyle struct {
	fill  RGB
	style VisConfig
}

// ResolveAdvancedStyle resolves a categorized or graduated renderer into the
// base style of its first class, the per-class color ranges and the channel
// bindings.
func (s SizeSettings) ResolveAdvancedStyle(layer *VectorLayer) (RGB, VisConfig, VisualChannels, error) {
	var (
		scale     string
		attribute string
		symbols   []*Symbol
		uppers    []float64
		custom    bool
	)
	switch r := layer.Renderer.(type) {
	case Graduated:
		var ok bool
		scale, ok = graduatedScales[r.Method]
		if !ok {
			return RGB{}, VisConfig{}, VisualChannels{}, &InvalidClassificationError{
				Method: string(r.Method), Supported: supportedMethods}
		}
		custom = r.Method == Logarithmic
		attribute = r.Attribute
		for _, rg := range r.Ranges {
			symbols = append(symbols, rg.Symbol)
			uppers = append(uppers, rg.Upper)
		}
	case Categorized:
		scale = OrdinalScale
		attribute = r.Attribute
		for _, c := range r.Categories {
			symbols = append(symbols, c.Symbol)
		}
	default:
		return RGB{}, VisConfig{}, VisualChannels{}, unsupportedRenderer(layer.Renderer)
	}

	if len(symbols) == 0 {
		return RGB{}, VisConfig{}, VisualChannels{}, &EmptyClassSetError{Renderer: layer.Renderer.Kind()}
	}

	classes := make([]classStyle, 0, len(symbols))
	for _, sym := range symbols {
		fill, style, err := s.ExtractStyle(sym)
		if err != nil {
			return RGB{}, VisConfig{}, VisualChannels{}, err
		}
		classes = append(classes, classStyle{fill: fill, style: style})
	}

	color := classes[0].fill
	vc := classes[0].style
	fillColors, strokeColors := classColors(classes)
	classFills := fillColors

	// lines draw their color as the stroke of the visualization
	if layer.Type == Line {
		fillColors, strokeColors = strokeColors, fillColors
	}

	if len(fillColors) > 0 {
		vc.ColorRange = CustomColorRange(fillColors)
	}
	if len(strokeColors) > 0 {
		vc.StrokeColorRange = CustomColorRange(strokeColors)
	}

	native, ok := layer.Field(attribute)
	if !ok {
		return RGB{}, VisConfig{}, VisualChannels{}, &FieldNotFoundError{Field: attribute, Layer: layer.Name}
	}
	field, err := MapField(native)
	if err != nil {
		return RGB{}, VisConfig{}, VisualChannels{}, err
	}

	channels := SingleColorChannels()
	if distinct(fillColors) > 1 {
		channels.ColorField = channelField(field)
		channels.ColorScale = scale
	}
	if distinct(strokeColors) > 1 {
		channels.StrokeColorField = channelField(field)
		channels.StrokeColorScale = scale
	}

	if custom {
		if vc.ColorRange.Type != "custom" {
			vc.ColorRange = CustomColorRange(classFills)
		}
		vc.ColorRange.ColorMap = make([]ColorMapEntry, len(classFills))
		for i, c := range classFills {
			vc.ColorRange.ColorMap[i] = ColorMapEntry{Value: uppers[i], Color: c}
		}
		channels.ColorScale = CustomScale
	}

	return color, vc, channels, nil
}

// classColors returns the hex fill color of every class and the hex stroke
// color of the classes that have one.
func classColors(classes []classStyle) (fills, strokes []string) {
	fills = make([]string, 0, len(classes))
	for _, c := range classes {
		fills = append(fills, c.fill.Hex())
		if c.style.StrokeColor != nil {
			strokes = append(strokes, c.style.StrokeColor.Hex())
		}
	}
	return fills, strokes
}

func distinct(colors []string) int {
	seen := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	return len(seen)
}

func unsupportedRenderer(r Renderer) error {
	kind := "<nil>"
	if r != nil {
		kind = string(r.Kind())
	}
	return &UnsupportedSymbolError{What: "renderer", Value: kind, Supported: supportedRenderers}
}
