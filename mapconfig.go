package qgis2kepler

import (
	"encoding/json"
	"fmt"
)

// Layer type names of the visualization schema.
const (
	LayerTypePoint   = "point"
	LayerTypeGeojson = "geojson"
)

// Default scale names of unbound channels.
const (
	DefaultColorScale  = "quantile"
	DefaultSizeScale   = "linear"
	DefaultHeightScale = "linear"
	DefaultRadiusScale = "linear"
	CustomScale        = "custom"
	OrdinalScale       = "ordinal"
)

const (
	DefaultRadius         = 10
	DefaultElevationScale = 5
)

var (
	DefaultSizeRange   = []int{0, 10}
	DefaultRadiusRange = []int{0, 50}
	DefaultHeightRange = []int{0, 500}
)

type Field struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Format       string `json:"format,omitempty"`
	AnalyzerType string `json:"analyzerType,omitempty"`
}

// ColorMapEntry binds a class upper bound to a color. It is encoded as a
// two element array.
type ColorMapEntry struct {
	Value float64
	Color string
}

func (e ColorMapEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Value, e.Color})
}

func (e *ColorMapEntry) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("color map entry must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Value); err != nil {
		return fmt.Errorf("color map value: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Color); err != nil {
		return fmt.Errorf("color map color: %w", err)
	}
	return nil
}

type ColorRange struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Colors   []string        `json:"colors"`
	ColorMap []ColorMapEntry `json:"colorMap,omitempty"`
}

func DefaultColorRange() ColorRange {
	return ColorRange{
		Name:     "Global Warming",
		Type:     "sequential",
		Category: "Uber",
		Colors:   []string{"#5A1846", "#900C3F", "#C70039", "#E3611C", "#F1920E", "#FFC300"},
	}
}

func CustomColorRange(colors []string) ColorRange {
	return ColorRange{
		Name:     "Custom Palette",
		Type:     "custom",
		Category: "Custom",
		Colors:   append([]string(nil), colors...),
	}
}

// VisConfig is the visual style record of one layer.
type VisConfig struct {
	Opacity          float64    `json:"opacity"`
	StrokeOpacity    *float64   `json:"strokeOpacity,omitempty"`
	Thickness        float64    `json:"thickness"`
	StrokeColor      *RGB       `json:"strokeColor"`
	ColorRange       ColorRange `json:"colorRange"`
	StrokeColorRange ColorRange `json:"strokeColorRange"`
	Radius           *int       `json:"radius,omitempty"`
	SizeRange        []int      `json:"sizeRange,omitempty"`
	RadiusRange      []int      `json:"radiusRange"`
	HeightRange      []int      `json:"heightRange,omitempty"`
	ElevationScale   *int       `json:"elevationScale,omitempty"`
	Stroked          *bool      `json:"stroked,omitempty"`
	Filled           bool       `json:"filled"`
	Enable3d         *bool      `json:"enable3d,omitempty"`
	Wireframe        *bool      `json:"wireframe,omitempty"`
	FixedRadius      *bool      `json:"fixedRadius,omitempty"`
	Outline          *bool      `json:"outline,omitempty"`
}

type VisualChannels struct {
	ColorField       *Field `json:"colorField"`
	ColorScale       string `json:"colorScale"`
	StrokeColorField *Field `json:"strokeColorField"`
	StrokeColorScale string `json:"strokeColorScale"`
	SizeField        *Field `json:"sizeField"`
	SizeScale        string `json:"sizeScale"`
	HeightField      *Field `json:"heightField,omitempty"`
	HeightScale      string `json:"heightScale,omitempty"`
	RadiusField      *Field `json:"radiusField,omitempty"`
	RadiusScale      string `json:"radiusScale,omitempty"`
}

// SingleColorChannels returns channels with nothing bound to data.
func SingleColorChannels() VisualChannels {
	return VisualChannels{
		ColorScale:       DefaultColorScale,
		StrokeColorScale: DefaultColorScale,
		SizeScale:        DefaultSizeScale,
	}
}

type Columns struct {
	Lat     string `json:"lat,omitempty"`
	Lng     string `json:"lng,omitempty"`
	Geojson string `json:"geojson,omitempty"`
}

func PointColumns() Columns {
	return Columns{Lat: LatitudeField, Lng: LongitudeField}
}

func GeojsonColumns() Columns {
	return Columns{Geojson: GeometryField}
}

type TextLabel struct {
	Field     *Field `json:"field"`
	Color     RGB    `json:"color"`
	Size      int    `json:"size"`
	Offset    [2]int `json:"offset"`
	Anchor    string `json:"anchor"`
	Alignment string `json:"alignment"`
}

func DefaultTextLabel() TextLabel {
	return TextLabel{
		Color:     RGB{255, 255, 255},
		Size:      18,
		Anchor:    "start",
		Alignment: "center",
	}
}

type LayerConfig struct {
	DataID    string      `json:"dataId"`
	Label     string      `json:"label"`
	Color     RGB         `json:"color"`
	Columns   Columns     `json:"columns"`
	IsVisible bool        `json:"isVisible"`
	VisConfig VisConfig   `json:"visConfig"`
	Hidden    bool        `json:"hidden"`
	TextLabel []TextLabel `json:"textLabel"`
}

type Layer struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Config         LayerConfig    `json:"config"`
	VisualChannels VisualChannels `json:"visualChannels"`
}

type DatasetData struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Color   RGB             `json:"color"`
	AllData [][]interface{} `json:"allData,omitempty"`
	Fields  []Field         `json:"fields"`
}

type Dataset struct {
	Version string      `json:"version"`
	Source  string      `json:"source,omitempty"`
	Data    DatasetData `json:"data"`
}

type TooltipField struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

type Tooltip struct {
	FieldsToShow map[string][]TooltipField `json:"fieldsToShow"`
	CompareMode  bool                      `json:"compareMode"`
	CompareType  string                    `json:"compareType"`
	Enabled      bool                      `json:"enabled"`
}

type Brush struct {
	Size    float64 `json:"size"`
	Enabled bool    `json:"enabled"`
}

type Toggle struct {
	Enabled bool `json:"enabled"`
}

type InteractionConfig struct {
	Tooltip    Tooltip `json:"tooltip"`
	Brush      Brush   `json:"brush"`
	Geocoder   Toggle  `json:"geocoder"`
	Coordinate Toggle  `json:"coordinate"`
}

type AnimationConfig struct {
	CurrentTime *float64 `json:"currentTime"`
	Speed       int      `json:"speed"`
}

type DatasetsConfig struct {
	FieldDisplayNames map[string]map[string]string `json:"fieldDisplayNames"`
}

type VisState struct {
	Filters           []interface{}     `json:"filters"`
	Layers            []Layer           `json:"layers"`
	InteractionConfig InteractionConfig `json:"interactionConfig"`
	LayerBlending     string            `json:"layerBlending"`
	SplitMaps         []interface{}     `json:"splitMaps"`
	AnimationConfig   AnimationConfig   `json:"animationConfig"`
	Metrics           []interface{}     `json:"metrics"`
	GeoKeys           []interface{}     `json:"geoKeys"`
	GroupBys          []interface{}     `json:"groupBys"`
	Datasets          DatasetsConfig    `json:"datasets"`
	Joins             []interface{}     `json:"joins"`
}

type MapState struct {
	Bearing     float64 `json:"bearing"`
	DragRotate  bool    `json:"dragRotate"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Pitch       float64 `json:"pitch"`
	Zoom        float64 `json:"zoom"`
	IsSplit     bool    `json:"isSplit"`
	MapViewMode string  `json:"mapViewMode"`
}

type VisibleLayerGroups struct {
	Label      bool `json:"label"`
	Road       bool `json:"road"`
	Border     bool `json:"border"`
	Building   bool `json:"building"`
	Water      bool `json:"water"`
	Land       bool `json:"land"`
	Building3D bool `json:"3d building"`
}

func DefaultVisibleLayerGroups() VisibleLayerGroups {
	return VisibleLayerGroups{Label: true, Road: true, Border: false, Building: true, Water: true, Land: true}
}

type MapStyle struct {
	StyleType           string                 `json:"styleType"`
	TopLayerGroups      map[string]interface{} `json:"topLayerGroups"`
	VisibleLayerGroups  VisibleLayerGroups     `json:"visibleLayerGroups"`
	ThreeDBuildingColor []float64              `json:"threeDBuildingColor"`
	MapStyles           map[string]interface{} `json:"mapStyles"`
}

type ConfigConfig struct {
	VisState VisState `json:"visState"`
	MapState MapState `json:"mapState"`
	MapStyle MapStyle `json:"mapStyle"`
}

type Config struct {
	Version string       `json:"version"`
	Config  ConfigConfig `json:"config"`
}

type Info struct {
	App         string `json:"app"`
	CreatedAt   string `json:"created_at"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// MapConfig is the complete exported document.
type MapConfig struct {
	Datasets []Dataset `json:"datasets"`
	Config   Config    `json:"config"`
	Info     Info      `json:"info"`
}
