package qgis2kepler

import "math"

// ExtractStyle resolves one symbol into its fill color and visual style.
// When the first symbol layer wraps a sub-symbol, the sub-symbol decides
// the style alone.
func (s SizeSettings) ExtractStyle(symbol *Symbol) (RGB, VisConfig, error) {
	if symbol == nil || len(symbol.Layers) == 0 {
		return RGB{}, VisConfig{}, &UnsupportedSymbolError{What: "symbol", Value: "empty"}
	}
	layer := symbol.Layers[0]
	if layer.SubSymbol != nil {
		return s.ExtractStyle(layer.SubSymbol)
	}
	if !layer.Type.supported() {
		return RGB{}, VisConfig{}, &UnsupportedSymbolError{
			What: "symbol layer type", Value: string(layer.Type), Supported: supportedSymbolLayerTypes}
	}

	props := &propertyReader{props: layer.Properties, typ: layer.Type}
	switch symbol.Kind {
	case MarkerSymbol, FillSymbol:
		return s.markerOrFillStyle(symbol, props)
	case LineSymbol:
		return s.lineStyle(symbol, props)
	default:
		return RGB{}, VisConfig{}, &UnsupportedSymbolError{
			What: "symbol kind", Value: string(symbol.Kind), Supported: supportedSymbolKinds}
	}
}

func (s SizeSettings) markerOrFillStyle(symbol *Symbol, props *propertyReader) (RGB, VisConfig, error) {
	fill, alpha := props.color(propColor)
	stroke, strokeAlpha := props.color(propOutlineColor)
	width := props.float(propOutlineWidth)
	widthUnit := props.str(propOutlineWidthUnit)
	outlineStyle := props.str(propOutlineStyle)
	var size float64
	var sizeUnit string
	if symbol.Kind == MarkerSymbol {
		size = props.float(propSize)
		sizeUnit = props.str(propSizeUnit)
	}
	if props.err != nil {
		return RGB{}, VisConfig{}, props.err
	}

	thickness, err := s.ToPixels(width, widthUnit, false)
	if err != nil {
		return RGB{}, VisConfig{}, err
	}

	opacity := roundTo(symbol.Opacity*alpha, 2)
	strokeOpacity := roundTo(symbol.Opacity*strokeAlpha, 2)
	outline := strokeOpacity > 0 && outlineStyle != styleNone

	vc := VisConfig{
		Opacity:          opacity,
		Thickness:        s.thickness(thickness),
		ColorRange:       DefaultColorRange(),
		StrokeColorRange: DefaultColorRange(),
		RadiusRange:      DefaultRadiusRange,
		Filled:           opacity > 0 && props.props.GetStringDefault(propStyle, "solid") != styleNone,
	}
	if outline {
		vc.StrokeColor = &stroke
		vc.StrokeOpacity = &strokeOpacity
	}

	if symbol.Kind == MarkerSymbol {
		r, err := s.ToPixels(size, sizeUnit, true)
		if err != nil {
			return RGB{}, VisConfig{}, err
		}
		radius := int(math.Floor(r))
		vc.Radius = &radius
		// the host never produces fixed radius point symbols
		vc.FixedRadius = boolPtr(false)
		vc.Outline = boolPtr(outline)
		return fill, vc, nil
	}

	s.surfaceDefaults(&vc)
	vc.Stroked = boolPtr(outline)
	return fill, vc, nil
}

func (s SizeSettings) lineStyle(symbol *Symbol, props *propertyReader) (RGB, VisConfig, error) {
	color, alpha := props.color(propLineColor)
	width := props.float(propLineWidth)
	widthUnit := props.str(propLineWidthUnit)
	if props.err != nil {
		return RGB{}, VisConfig{}, props.err
	}

	thickness, err := s.ToPixels(width, widthUnit, false)
	if err != nil {
		return RGB{}, VisConfig{}, err
	}

	opacity := roundTo(symbol.Opacity*alpha, 2)
	// a line is all stroke
	strokeOpacity := opacity
	vc := VisConfig{
		Opacity:          opacity,
		StrokeOpacity:    &strokeOpacity,
		Thickness:        s.thickness(thickness),
		ColorRange:       DefaultColorRange(),
		StrokeColorRange: DefaultColorRange(),
		RadiusRange:      DefaultRadiusRange,
		Stroked:          boolPtr(true),
	}
	s.surfaceDefaults(&vc)
	return color, vc, nil
}

func (s SizeSettings) surfaceDefaults(vc *VisConfig) {
	vc.SizeRange = DefaultSizeRange
	vc.HeightRange = DefaultHeightRange
	elevation := DefaultElevationScale
	vc.ElevationScale = &elevation
	vc.Enable3d = boolPtr(false)
	vc.Wireframe = boolPtr(false)
}

func boolPtr(b bool) *bool {
	return &b
}
