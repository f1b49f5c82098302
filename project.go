package qgis2kepler

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// Project is the host project snapshot: the layers selected for export and
// the global map settings.
type Project struct {
	Title       string
	Description string
	Map         MapView
	Interaction Interaction
	Layers      []VectorLayer
	// Path is the file the project was read from, if any.
	Path string
}

type auxProject struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Map         MapView      `yaml:"map"`
	Interaction *Interaction `yaml:"interaction"`
	Layers      []auxLayer   `yaml:"layers"`
}

type auxLayer struct {
	ID           string                 `yaml:"id"`
	Name         string                 `yaml:"name"`
	Geometry     string                 `yaml:"geometry"`
	SRS          string                 `yaml:"srs"`
	Status       string                 `yaml:"status"`
	Color        string                 `yaml:"color"`
	Datasource   map[string]interface{} `yaml:"datasource"`
	Fields       []auxField             `yaml:"fields"`
	HiddenFields []string               `yaml:"hidden_fields"`
	Renderer     auxRenderer            `yaml:"renderer"`
}

type auxField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type auxRenderer struct {
	Type       string        `yaml:"type"`
	Attribute  string        `yaml:"attribute"`
	Method     string        `yaml:"method"`
	Symbol     *auxSymbol    `yaml:"symbol"`
	Categories []auxCategory `yaml:"categories"`
	Ranges     []auxRange    `yaml:"ranges"`
}

type auxCategory struct {
	Value  interface{} `yaml:"value"`
	Label  string      `yaml:"label"`
	Symbol *auxSymbol  `yaml:"symbol"`
}

type auxRange struct {
	Lower  float64    `yaml:"lower"`
	Upper  float64    `yaml:"upper"`
	Label  string     `yaml:"label"`
	Symbol *auxSymbol `yaml:"symbol"`
}

type auxSymbol struct {
	Type    string           `yaml:"type"`
	Opacity *float64         `yaml:"opacity"`
	Layers  []auxSymbolLayer `yaml:"layers"`
}

type auxSymbolLayer struct {
	Class      string                 `yaml:"class"`
	Properties map[string]interface{} `yaml:"properties"`
	SubSymbol  *auxSymbol             `yaml:"sub_symbol"`
}

func newLayer(l auxLayer, index int, baseDir string) (*VectorLayer, error) {
	if strings.TrimSpace(l.Name) == "" {
		return nil, fmt.Errorf("layer %d name is required", index)
	}
	ds, err := newDatasource(l.Datasource, baseDir)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", l.Name, err)
	}

	var id uuid.UUID
	if l.ID == "" {
		id = fallbackLayerID(index, l.Name)
	} else if id, err = uuid.Parse(l.ID); err != nil {
		return nil, fmt.Errorf("layer %q: invalid id: %w", l.Name, err)
	}

	ly := &VectorLayer{
		ID:         id,
		Name:       l.Name,
		Type:       parseGeometryType(l.Geometry),
		SRS:        l.SRS,
		Visible:    l.Status != "off",
		HiddenCols: l.HiddenFields,
		Datasource: ds,
	}
	if l.Color != "" {
		c, err := ParseColor(l.Color)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		ly.Color = &c
	}
	for _, f := range l.Fields {
		ly.Fields = append(ly.Fields, NativeField{Name: f.Name, Type: NativeType(strings.ToLower(f.Type))})
	}
	ly.Renderer, err = newRenderer(l.Renderer)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", l.Name, err)
	}
	return ly, nil
}

// fallbackLayerID derives a stable id for a layer the project gives none. The
// index keeps layers sharing a name apart.
func fallbackLayerID(index int, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("layer/%d/%s", index, name)))
}

func newRenderer(r auxRenderer) (Renderer, error) {
	switch RendererKind(r.Type) {
	case SingleSymbolRenderer:
		sym, err := newSymbol(r.Symbol)
		if err != nil {
			return nil, err
		}
		return SingleSymbol{Symbol: sym}, nil
	case CategorizedRenderer:
		c := Categorized{Attribute: r.Attribute}
		for i, aux := range r.Categories {
			sym, err := newSymbol(aux.Symbol)
			if err != nil {
				return nil, fmt.Errorf("category %d: %w", i, err)
			}
			c.Categories = append(c.Categories, Category{Value: fmt.Sprintf("%v", aux.Value), Label: aux.Label, Symbol: sym})
		}
		return c, nil
	case GraduatedRenderer:
		g := Graduated{Attribute: r.Attribute, Method: ClassificationMethod(r.Method)}
		for i, aux := range r.Ranges {
			sym, err := newSymbol(aux.Symbol)
			if err != nil {
				return nil, fmt.Errorf("range %d: %w", i, err)
			}
			g.Ranges = append(g.Ranges, Range{Lower: aux.Lower, Upper: aux.Upper, Label: aux.Label, Symbol: sym})
		}
		return g, nil
	default:
		return nil, &UnsupportedSymbolError{What: "renderer", Value: r.Type, Supported: supportedRenderers}
	}
}

func newSymbol(s *auxSymbol) (*Symbol, error) {
	if s == nil {
		return nil, fmt.Errorf("symbol is required")
	}
	sym := &Symbol{Kind: SymbolKind(strings.ToLower(s.Type)), Opacity: 1}
	if s.Opacity != nil {
		sym.Opacity = *s.Opacity
	}
	for _, l := range s.Layers {
		props := &Properties{}
		for k, v := range l.Properties {
			if str, ok := v.(string); ok {
				props.set(k, str)
			} else {
				props.set(k, fmt.Sprintf("%v", v))
			}
		}
		sl := SymbolLayer{Type: SymbolLayerType(l.Class), Properties: props}
		if l.SubSymbol != nil {
			sub, err := newSymbol(l.SubSymbol)
			if err != nil {
				return nil, fmt.Errorf("sub symbol: %w", err)
			}
			sl.SubSymbol = sub
		}
		sym.Layers = append(sym.Layers, sl)
	}
	return sym, nil
}

// ParseProject reads a YAML project. Relative datasource paths are resolved
// against baseDir.
func ParseProject(r io.Reader, baseDir string) (*Project, error) {
	aux := auxProject{}
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(input, &aux)
	if err != nil {
		return nil, err
	}

	layers := []VectorLayer{}
	owners := make(map[uuid.UUID]string, len(aux.Layers))
	for i, l := range aux.Layers {
		layer, err := newLayer(l, i, baseDir)
		if err != nil {
			return nil, err
		}
		if owner, ok := owners[layer.ID]; ok {
			return nil, &InvalidInputError{
				Msg:  fmt.Sprintf("layers %q and %q share id %s", owner, layer.Name, layer.ID),
				Hint: "give every layer a unique id",
			}
		}
		owners[layer.ID] = layer.Name
		layers = append(layers, *layer)
	}

	p := Project{
		Title:       aux.Title,
		Description: aux.Description,
		Map:         aux.Map,
		Interaction: DefaultInteraction(),
		Layers:      layers,
	}
	if aux.Interaction != nil {
		p.Interaction = *aux.Interaction
		if p.Interaction.BrushSize == 0 {
			p.Interaction.BrushSize = DefaultInteraction().BrushSize
		}
	}
	return &p, nil
}

func ParseProjectFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ParseProject(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// Files lists the project file and every datasource file it references.
func (p *Project) Files() []string {
	var files []string
	if p.Path != "" {
		files = append(files, p.Path)
	}
	for _, l := range p.Layers {
		if l.Datasource != nil {
			files = append(files, l.Datasource.Files()...)
		}
	}
	return files
}
