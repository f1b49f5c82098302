package qgis2kepler

// NativeType is the host's column type tag.
type NativeType string

const (
	NativeInt32    NativeType = "int32"
	NativeUInt32   NativeType = "uint32"
	NativeInt64    NativeType = "int64"
	NativeUInt64   NativeType = "uint64"
	NativeDouble   NativeType = "double"
	NativeString   NativeType = "string"
	NativeBool     NativeType = "bool"
	NativeDate     NativeType = "date"
	NativeDateTime NativeType = "datetime"
	NativeTime     NativeType = "time"
)

// GeometryField is the reserved name of the synthetic WKT geometry column
// of line and polygon datasets.
const GeometryField = "geometry"

// Names of the synthetic coordinate columns of point datasets.
const (
	LatitudeField  = "latitude"
	LongitudeField = "longitude"
)

const (
	DateFormat     = "YYYY/M/D"
	DateTimeFormat = "YYYY/M/D H:m:s"
	TimeFormat     = "H:m:s"
)

type NativeField struct {
	Name string
	Type NativeType
}

// IsInteger reports whether t belongs to the integer type family.
func (t NativeType) IsInteger() bool {
	switch t {
	case NativeInt32, NativeUInt32, NativeInt64, NativeUInt64:
		return true
	}
	return false
}

type fieldMapping struct {
	typ      string
	analyzer string
	format   string
}

var fieldMappings = map[NativeType]fieldMapping{
	NativeInt32:    {"integer", "INT", ""},
	NativeUInt32:   {"integer", "INT", ""},
	NativeInt64:    {"integer", "INT", ""},
	NativeUInt64:   {"integer", "INT", ""},
	NativeDouble:   {"real", "FLOAT", ""},
	NativeString:   {"string", "STRING", ""},
	NativeBool:     {"boolean", "BOOLEAN", ""},
	NativeDate:     {"date", "DATE", DateFormat},
	NativeDateTime: {"timestamp", "DATETIME", DateTimeFormat},
	NativeTime:     {"timestamp", "INT", TimeFormat},
}

var supportedNativeTypes = []string{
	string(NativeInt32), string(NativeUInt32), string(NativeInt64), string(NativeUInt64),
	string(NativeDouble), string(NativeString), string(NativeBool),
	string(NativeDate), string(NativeDateTime), string(NativeTime),
}

// MapField maps a host column to the visualization's field description.
func MapField(f NativeField) (Field, error) {
	m, ok := fieldMappings[f.Type]
	if !ok {
		return Field{}, &UnsupportedFieldTypeError{Field: f.Name, Type: f.Type, Supported: supportedNativeTypes}
	}
	if f.Type == NativeString && f.Name == GeometryField {
		m = fieldMapping{"geojson", "PAIR_GEOMETRY_FROM_STRING", ""}
	}
	return Field{Name: f.Name, Type: m.typ, Format: m.format, AnalyzerType: m.analyzer}, nil
}

// NativeTypeOf inverts MapField. Integer columns come back as int64, the
// widest member of their family.
func NativeTypeOf(f Field) (NativeType, error) {
	switch {
	case f.Type == "integer" && f.AnalyzerType == "INT":
		return NativeInt64, nil
	case f.Type == "real":
		return NativeDouble, nil
	case f.Type == "string", f.Type == "geojson":
		return NativeString, nil
	case f.Type == "boolean":
		return NativeBool, nil
	case f.Type == "date":
		return NativeDate, nil
	case f.Type == "timestamp" && f.Format == TimeFormat:
		return NativeTime, nil
	case f.Type == "timestamp":
		return NativeDateTime, nil
	}
	return "", &UnsupportedFieldTypeError{Field: f.Name, Type: NativeType(f.Type), Supported: []string{
		"integer", "real", "string", "geojson", "boolean", "date", "timestamp"}}
}

// channelField strips the parsing hints from a field used as a channel
// binding.
func channelField(f Field) *Field {
	return &Field{Name: f.Name, Type: f.Type}
}
