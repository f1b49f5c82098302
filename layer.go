package qgis2kepler

import (
	"strings"

	"github.com/google/uuid"
)

type GeometryType string

const (
	Unknown GeometryType = "Unknown"
	Line    GeometryType = "Line"
	Polygon GeometryType = "Polygon"
	Point   GeometryType = "Point"
)

var supportedGeometries = []string{string(Point), string(Line), string(Polygon)}

// VectorLayer is a read-only snapshot of one host layer.
type VectorLayer struct {
	ID         uuid.UUID
	Name       string
	Type       GeometryType
	SRS        string
	Visible    bool
	Color      *RGB
	Renderer   Renderer
	Fields     []NativeField
	HiddenCols []string
	Datasource Datasource
}

// Field returns the column called name.
func (l *VectorLayer) Field(name string) (NativeField, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return NativeField{}, false
}

// ShownFields returns the names of all columns not hidden in the attribute
// table, in column order.
func (l *VectorLayer) ShownFields() []string {
	hidden := make(map[string]struct{}, len(l.HiddenCols))
	for _, h := range l.HiddenCols {
		hidden[h] = struct{}{}
	}
	var shown []string
	for _, f := range l.Fields {
		if _, ok := hidden[f.Name]; !ok {
			shown = append(shown, f.Name)
		}
	}
	return shown
}

// LayerID derives the short layer id used by the visualization from the
// layer UUID: the first seven hex digits.
func LayerID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")[:7]
}

func parseGeometryType(t string) GeometryType {
	switch strings.ToLower(t) {
	case "polygon", "multipolygon":
		return Polygon
	case "line", "linestring", "multilinestring":
		return Line
	case "point", "multipoint":
		return Point
	default:
		return Unknown
	}
}
