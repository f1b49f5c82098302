package qgis2kepler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapField(t *testing.T) {
	for _, tc := range []struct {
		field    NativeField
		expected Field
	}{
		{NativeField{"a", NativeInt32}, Field{Name: "a", Type: "integer", AnalyzerType: "INT"}},
		{NativeField{"a", NativeUInt32}, Field{Name: "a", Type: "integer", AnalyzerType: "INT"}},
		{NativeField{"a", NativeInt64}, Field{Name: "a", Type: "integer", AnalyzerType: "INT"}},
		{NativeField{"a", NativeUInt64}, Field{Name: "a", Type: "integer", AnalyzerType: "INT"}},
		{NativeField{"a", NativeDouble}, Field{Name: "a", Type: "real", AnalyzerType: "FLOAT"}},
		{NativeField{"a", NativeString}, Field{Name: "a", Type: "string", AnalyzerType: "STRING"}},
		{NativeField{"a", NativeBool}, Field{Name: "a", Type: "boolean", AnalyzerType: "BOOLEAN"}},
		{NativeField{"a", NativeDate}, Field{Name: "a", Type: "date", Format: "YYYY/M/D", AnalyzerType: "DATE"}},
		{NativeField{"a", NativeDateTime}, Field{Name: "a", Type: "timestamp", Format: "YYYY/M/D H:m:s", AnalyzerType: "DATETIME"}},
		{NativeField{"a", NativeTime}, Field{Name: "a", Type: "timestamp", Format: "H:m:s", AnalyzerType: "INT"}},
		{NativeField{"geometry", NativeString}, Field{Name: "geometry", Type: "geojson", AnalyzerType: "PAIR_GEOMETRY_FROM_STRING"}},
	} {
		f, err := MapField(tc.field)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, f)
	}
}

func TestMapFieldUnsupported(t *testing.T) {
	_, err := MapField(NativeField{Name: "shape", Type: "binary"})
	var typeErr *UnsupportedFieldTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "shape", typeErr.Field)
	assert.Equal(t, NativeType("binary"), typeErr.Type)
	assert.Contains(t, typeErr.Supported, "datetime")
}

func TestFieldRoundTrip(t *testing.T) {
	natives := []NativeField{
		{"count", NativeInt64},
		{"ratio", NativeDouble},
		{"name", NativeString},
		{"flag", NativeBool},
		{"day", NativeDate},
		{"at", NativeDateTime},
		{"clock", NativeTime},
		{"geometry", NativeString},
	}
	var fields []Field
	for _, nf := range natives {
		f, err := MapField(nf)
		require.NoError(t, err)
		fields = append(fields, f)
	}

	b, err := json.Marshal(fields)
	require.NoError(t, err)
	var parsed []Field
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, fields, parsed)

	for i, f := range parsed {
		typ, err := NativeTypeOf(f)
		require.NoError(t, err)
		assert.Equal(t, natives[i].Type, typ, f.Name)
		again, err := MapField(NativeField{Name: f.Name, Type: typ})
		require.NoError(t, err)
		assert.Equal(t, fields[i], again)
	}
}

func TestNativeTypeOfIntegers(t *testing.T) {
	for _, typ := range []NativeType{NativeInt32, NativeUInt32, NativeUInt64} {
		f, err := MapField(NativeField{Name: "n", Type: typ})
		require.NoError(t, err)
		back, err := NativeTypeOf(f)
		require.NoError(t, err)
		assert.Equal(t, NativeInt64, back)
	}

	_, err := NativeTypeOf(Field{Name: "x", Type: "point"})
	assert.Error(t, err)
}

func TestChannelField(t *testing.T) {
	f, err := MapField(NativeField{Name: "day", Type: NativeDate})
	require.NoError(t, err)
	assert.Equal(t, &Field{Name: "day", Type: "date"}, channelField(f))
}
