package qgis2kepler

// BuildLayerConfig translates the renderer of layer into one visualization
// layer. layerID is usually LayerID(layer.ID).
func (s SizeSettings) BuildLayerConfig(layer *VectorLayer, layerID string, isVisible bool) (Layer, error) {
	var (
		color    RGB
		vc       VisConfig
		channels VisualChannels
		err      error
	)
	switch r := layer.Renderer.(type) {
	case SingleSymbol:
		color, vc, err = s.ExtractStyle(r.Symbol)
		channels = SingleColorChannels()
	case Categorized, Graduated:
		color, vc, channels, err = s.ResolveAdvancedStyle(layer)
	default:
		err = unsupportedRenderer(layer.Renderer)
	}
	if err != nil {
		return Layer{}, err
	}

	var (
		layerType string
		columns   Columns
	)
	switch layer.Type {
	case Point:
		layerType = LayerTypePoint
		columns = PointColumns()
	case Line, Polygon:
		layerType = LayerTypeGeojson
		columns = GeojsonColumns()
		channels.HeightScale = DefaultHeightScale
		channels.RadiusScale = DefaultRadiusScale
	default:
		return Layer{}, &UnsupportedGeometryError{Geometry: layer.Type, Supported: supportedGeometries}
	}

	return Layer{
		ID:   layerID,
		Type: layerType,
		Config: LayerConfig{
			DataID:    layer.ID.String(),
			Label:     layer.Name,
			Color:     color,
			Columns:   columns,
			IsVisible: isVisible,
			VisConfig: vc,
			Hidden:    false,
			TextLabel: []TextLabel{DefaultTextLabel()},
		},
		VisualChannels: channels,
	}, nil
}
