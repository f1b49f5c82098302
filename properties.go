package qgis2kepler

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Properties is the property bag of one symbol layer. All values are kept as
// the host delivers them: strings.
type Properties struct {
	values map[string]string
}

func (p *Properties) String() string {
	var buf bytes.Buffer
	buf.WriteString("Properties{")
	for i, k := range p.keys() {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s: %q", k, p.values[k])
	}
	buf.WriteRune('}')
	return buf.String()
}

func (p *Properties) get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[name]
	return v, ok
}

func (p *Properties) set(name, val string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[name] = val
}

func (p *Properties) keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *Properties) GetString(property string) (string, bool) {
	return p.get(property)
}

// GetStringDefault returns the property or def when it is absent.
func (p *Properties) GetStringDefault(property, def string) string {
	if v, ok := p.get(property); ok {
		return v
	}
	return def
}

// propertyReader reads required properties of one symbol layer and keeps the
// first failure, so a branch can read all its inputs and check once.
type propertyReader struct {
	props *Properties
	typ   SymbolLayerType
	err   error
}

func (r *propertyReader) str(name string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.props.GetString(name)
	if !ok {
		r.err = &MissingPropertyError{Property: name, SymbolType: r.typ}
	}
	return v
}

func (r *propertyReader) float(name string) float64 {
	v := r.str(name)
	if r.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("%s property %q: %w", r.typ, name, err)
		return 0
	}
	return f
}

func (r *propertyReader) color(name string) (RGB, float64) {
	v := r.str(name)
	if r.err != nil {
		return RGB{}, 0
	}
	rgb, alpha, err := ExtractColor(v)
	if err != nil {
		r.err = fmt.Errorf("%s property %q: %w", r.typ, name, err)
		return RGB{}, 0
	}
	return rgb, alpha
}

func NewProperties(kv ...string) *Properties {
	r := &Properties{values: make(map[string]string, len(kv)/2)}
	for i := 0; i < (len(kv) - 1); i += 2 {
		r.values[kv[i]] = kv[i+1]
	}
	return r
}
