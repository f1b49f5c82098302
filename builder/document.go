package builder

import (
	qgis2kepler "github.com/flywave/go-qgis2kepler"
)

const (
	ConfigVersion = "v1"
	AppName       = "kepler.gl"
	InfoSource    = "QGIS"
	MapViewMode   = "MODE_2D"
	CompareType   = "absolute"
)

// createdAtLayout renders the abbreviated weekday, month, day, year and
// clock, followed by zone name and offset ("Mon Jan 25 2021 11:37:43 EET+0200").
const createdAtLayout = "Mon Jan 02 2006 15:04:05 MST-0700"

var threeDBuildingColor = []float64{9.665468314072013, 17.18305478057247, 31.1442867897876}

func (b *Builder) document(p *qgis2kepler.Project, kept []*qgis2kepler.VectorLayer, layers []qgis2kepler.Layer, datasets []qgis2kepler.Dataset) qgis2kepler.MapConfig {
	fieldsToShow := make(map[string][]qgis2kepler.TooltipField, len(kept))
	displayNames := make(map[string]map[string]string, len(kept))
	for i, layer := range kept {
		ds := datasets[i]
		fieldsToShow[ds.Data.ID] = tooltipFields(layer, ds)
		displayNames[ds.Data.ID] = map[string]string{}
	}

	visState := qgis2kepler.VisState{
		Filters: []interface{}{},
		Layers:  layers,
		InteractionConfig: qgis2kepler.InteractionConfig{
			Tooltip: qgis2kepler.Tooltip{
				FieldsToShow: fieldsToShow,
				CompareMode:  false,
				CompareType:  CompareType,
				Enabled:      p.Interaction.Tooltip,
			},
			Brush:      qgis2kepler.Brush{Size: p.Interaction.BrushSize, Enabled: p.Interaction.Brush},
			Geocoder:   qgis2kepler.Toggle{Enabled: p.Interaction.Geocoder},
			Coordinate: qgis2kepler.Toggle{Enabled: p.Interaction.Coordinate},
		},
		LayerBlending:   b.settings.LayerBlending,
		SplitMaps:       []interface{}{},
		AnimationConfig: qgis2kepler.AnimationConfig{Speed: 1},
		Metrics:         []interface{}{},
		GeoKeys:         []interface{}{},
		GroupBys:        []interface{}{},
		Datasets:        qgis2kepler.DatasetsConfig{FieldDisplayNames: displayNames},
		Joins:           []interface{}{},
	}

	mv := p.Map
	mapState := qgis2kepler.MapState{
		Bearing:     mv.Bearing,
		DragRotate:  mv.DragRotate,
		Latitude:    mv.Latitude,
		Longitude:   mv.Longitude,
		Pitch:       mv.Pitch,
		Zoom:        mv.Zoom,
		IsSplit:     mv.IsSplit,
		MapViewMode: MapViewMode,
	}

	mapStyle := qgis2kepler.MapStyle{
		StyleType:           b.settings.Basemap,
		TopLayerGroups:      map[string]interface{}{},
		VisibleLayerGroups:  qgis2kepler.DefaultVisibleLayerGroups(),
		ThreeDBuildingColor: threeDBuildingColor,
		MapStyles:           map[string]interface{}{},
	}

	return qgis2kepler.MapConfig{
		Datasets: datasets,
		Config: qgis2kepler.Config{
			Version: ConfigVersion,
			Config:  qgis2kepler.ConfigConfig{VisState: visState, MapState: mapState, MapStyle: mapStyle},
		},
		Info: qgis2kepler.Info{
			App:         AppName,
			CreatedAt:   b.now().Format(createdAtLayout),
			Title:       p.Title,
			Description: p.Description,
			Source:      InfoSource,
		},
	}
}

// tooltipFields lists the columns shown in the attribute table of layer
// together with the parsing format of their dataset field.
func tooltipFields(layer *qgis2kepler.VectorLayer, ds qgis2kepler.Dataset) []qgis2kepler.TooltipField {
	fields := []qgis2kepler.TooltipField{}
	for _, name := range layer.ShownFields() {
		for _, f := range ds.Data.Fields {
			if f.Name == name {
				fields = append(fields, qgis2kepler.TooltipField{Name: name, Format: f.Format})
				break
			}
		}
	}
	return fields
}
