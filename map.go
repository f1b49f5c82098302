package qgis2kepler

// MapView is the initial camera of the exported map.
type MapView struct {
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	Zoom       float64 `yaml:"zoom"`
	Bearing    float64 `yaml:"bearing"`
	Pitch      float64 `yaml:"pitch"`
	DragRotate bool    `yaml:"drag_rotate"`
	IsSplit    bool    `yaml:"is_split"`
}

type Interaction struct {
	Tooltip    bool    `yaml:"tooltip"`
	Brush      bool    `yaml:"brush"`
	BrushSize  float64 `yaml:"brush_size"`
	Geocoder   bool    `yaml:"geocoder"`
	Coordinate bool    `yaml:"coordinate"`
}

func DefaultInteraction() Interaction {
	return Interaction{Tooltip: true, BrushSize: 0.5}
}
