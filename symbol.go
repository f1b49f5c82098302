package qgis2kepler

type SymbolKind string

const (
	MarkerSymbol SymbolKind = "marker"
	LineSymbol   SymbolKind = "line"
	FillSymbol   SymbolKind = "fill"
)

type SymbolLayerType string

const (
	SimpleMarker SymbolLayerType = "SimpleMarker"
	SimpleLine   SymbolLayerType = "SimpleLine"
	CentroidFill SymbolLayerType = "CentroidFill"
	SimpleFill   SymbolLayerType = "SimpleFill"
)

var (
	supportedSymbolKinds      = []string{string(MarkerSymbol), string(LineSymbol), string(FillSymbol)}
	supportedSymbolLayerTypes = []string{string(SimpleMarker), string(SimpleLine), string(CentroidFill), string(SimpleFill)}
)

func (t SymbolLayerType) supported() bool {
	switch t {
	case SimpleMarker, SimpleLine, CentroidFill, SimpleFill:
		return true
	}
	return false
}

// Symbol is a drawable style: an opacity and a stack of symbol layers.
type Symbol struct {
	Kind    SymbolKind
	Opacity float64
	Layers  []SymbolLayer
}

// SymbolLayer is one layer of a symbol. SubSymbol is set for complex
// styles such as centroid fills.
type SymbolLayer struct {
	Type       SymbolLayerType
	Properties *Properties
	SubSymbol  *Symbol
}

// Symbol property names.
const (
	propColor            = "color"
	propOutlineColor     = "outline_color"
	propOutlineWidth     = "outline_width"
	propOutlineWidthUnit = "outline_width_unit"
	propOutlineStyle     = "outline_style"
	propStyle            = "style"
	propSize             = "size"
	propSizeUnit         = "size_unit"
	propLineColor        = "line_color"
	propLineWidth        = "line_width"
	propLineWidthUnit    = "line_width_unit"
)

const styleNone = "no"
