package qgis2kepler

type RendererKind string

const (
	SingleSymbolRenderer RendererKind = "singleSymbol"
	CategorizedRenderer  RendererKind = "categorizedSymbol"
	GraduatedRenderer    RendererKind = "graduatedSymbol"
)

var supportedRenderers = []string{string(SingleSymbolRenderer), string(CategorizedRenderer), string(GraduatedRenderer)}

// Renderer is implemented by SingleSymbol, Categorized and Graduated.
type Renderer interface {
	Kind() RendererKind
	renderer()
}

type SingleSymbol struct {
	Symbol *Symbol
}

func (SingleSymbol) Kind() RendererKind { return SingleSymbolRenderer }
func (SingleSymbol) renderer()          {}

type Category struct {
	Value  string
	Label  string
	Symbol *Symbol
}

type Categorized struct {
	Attribute  string
	Categories []Category
}

func (Categorized) Kind() RendererKind { return CategorizedRenderer }
func (Categorized) renderer()          {}

// ClassificationMethod identifies how a graduated renderer bins values.
type ClassificationMethod string

const (
	EqualInterval ClassificationMethod = "EqualInterval"
	Quantile      ClassificationMethod = "Quantile"
	Logarithmic   ClassificationMethod = "Logarithmic"
)

type Range struct {
	Lower  float64
	Upper  float64
	Label  string
	Symbol *Symbol
}

type Graduated struct {
	Attribute string
	Method    ClassificationMethod
	Ranges    []Range
}

func (Graduated) Kind() RendererKind { return GraduatedRenderer }
func (Graduated) renderer()          {}
