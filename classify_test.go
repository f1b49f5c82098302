package qgis2kepler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graduated(method ClassificationMethod, symbols ...*Symbol) Graduated {
	g := Graduated{Attribute: "population", Method: method}
	lower := 0.0
	for i, sym := range symbols {
		upper := float64(10 * (i + 1) * (i + 1))
		g.Ranges = append(g.Ranges, Range{Lower: lower, Upper: upper, Symbol: sym})
		lower = upper
	}
	return g
}

func categorized(attribute string, symbols ...*Symbol) Categorized {
	c := Categorized{Attribute: attribute}
	for i, sym := range symbols {
		c.Categories = append(c.Categories, Category{Value: string(rune('a' + i)), Symbol: sym})
	}
	return c
}

var population = NativeField{Name: "population", Type: NativeDouble}

func TestResolveGraduatedQuantilePolygon(t *testing.T) {
	r := graduated(Quantile,
		fillSymbol("255,255,178,255", "35,35,35,255"),
		fillSymbol("253,141,60,255", "35,35,35,255"),
		fillSymbol("189,0,38,255", "35,35,35,255"),
	)
	layer := testLayer("districts", Polygon, r, population)

	color, vc, ch, err := defaultSize().ResolveAdvancedStyle(layer)
	require.NoError(t, err)

	assert.Equal(t, RGB{255, 255, 178}, color)
	assert.Equal(t, []string{"#ffffb2", "#fd8d3c", "#bd0026"}, vc.ColorRange.Colors)
	assert.Equal(t, "custom", vc.ColorRange.Type)
	assert.Equal(t, []string{"#232323", "#232323", "#232323"}, vc.StrokeColorRange.Colors)
	assert.Empty(t, vc.ColorRange.ColorMap)

	require.NotNil(t, ch.ColorField)
	assert.Equal(t, Field{Name: "population", Type: "real"}, *ch.ColorField)
	assert.Equal(t, "quantile", ch.ColorScale)
	assert.Nil(t, ch.StrokeColorField)
	assert.Equal(t, DefaultColorScale, ch.StrokeColorScale)
}

func TestResolveGraduatedScales(t *testing.T) {
	for method, scale := range map[ClassificationMethod]string{
		EqualInterval: "quantize",
		Quantile:      "quantile",
	} {
		r := graduated(method, fillSymbol("1,1,1,255", "0,0,0,255"), fillSymbol("2,2,2,255", "0,0,0,255"))
		_, _, ch, err := defaultSize().ResolveAdvancedStyle(testLayer("l", Polygon, r, population))
		require.NoError(t, err)
		assert.Equal(t, scale, ch.ColorScale, method)
	}
}

func TestResolveGraduatedLogarithmic(t *testing.T) {
	r := graduated(Logarithmic,
		fillSymbol("255,255,178,255", "35,35,35,255"),
		fillSymbol("253,141,60,255", "35,35,35,255"),
		fillSymbol("189,0,38,255", "35,35,35,255"),
	)
	_, vc, ch, err := defaultSize().ResolveAdvancedStyle(testLayer("districts", Polygon, r, population))
	require.NoError(t, err)

	assert.Equal(t, CustomScale, ch.ColorScale)
	require.Len(t, vc.ColorRange.ColorMap, 3)
	assert.Equal(t, []ColorMapEntry{
		{Value: 10, Color: "#ffffb2"},
		{Value: 40, Color: "#fd8d3c"},
		{Value: 90, Color: "#bd0026"},
	}, vc.ColorRange.ColorMap)
}

func TestResolveLogarithmicSingleColor(t *testing.T) {
	r := graduated(Logarithmic,
		fillSymbol("1,1,1,255", "35,35,35,255"),
		fillSymbol("1,1,1,255", "35,35,35,255"),
	)
	_, vc, ch, err := defaultSize().ResolveAdvancedStyle(testLayer("l", Polygon, r, population))
	require.NoError(t, err)
	assert.Len(t, vc.ColorRange.ColorMap, 2)
	assert.Equal(t, CustomScale, ch.ColorScale)
	assert.Nil(t, ch.ColorField)
}

func TestResolveCategorizedSharedColor(t *testing.T) {
	r := categorized("kind",
		fillSymbol("10,20,30,255", "0,0,0,255"),
		fillSymbol("10,20,30,255", "0,0,0,255"),
		fillSymbol("10,20,30,255", "0,0,0,255"),
	)
	layer := testLayer("l", Polygon, r, NativeField{Name: "kind", Type: NativeString})

	_, vc, ch, err := defaultSize().ResolveAdvancedStyle(layer)
	require.NoError(t, err)
	assert.Len(t, vc.ColorRange.Colors, 3)
	assert.Nil(t, ch.ColorField)
	assert.Equal(t, DefaultColorScale, ch.ColorScale)
	assert.Nil(t, ch.StrokeColorField)
}

func TestResolveCategorizedDistinctStrokes(t *testing.T) {
	r := categorized("kind",
		fillSymbol("10,20,30,255", "0,0,0,255"),
		fillSymbol("10,20,30,255", "255,0,0,255"),
	)
	layer := testLayer("l", Polygon, r, NativeField{Name: "kind", Type: NativeInt32})

	_, _, ch, err := defaultSize().ResolveAdvancedStyle(layer)
	require.NoError(t, err)
	assert.Nil(t, ch.ColorField)
	require.NotNil(t, ch.StrokeColorField)
	assert.Equal(t, Field{Name: "kind", Type: "integer"}, *ch.StrokeColorField)
	assert.Equal(t, OrdinalScale, ch.StrokeColorScale)
}

func TestResolveStrokesOmitClassesWithoutOutline(t *testing.T) {
	r := categorized("kind",
		fillSymbol("10,20,30,255", "0,0,0,255"),
		fillSymbol("40,50,60,255", "0,0,0,0"),
		fillSymbol("70,80,90,255", "255,0,0,255"),
	)
	layer := testLayer("l", Polygon, r, NativeField{Name: "kind", Type: NativeString})

	_, vc, _, err := defaultSize().ResolveAdvancedStyle(layer)
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#ff0000"}, vc.StrokeColorRange.Colors)
}

func TestResolveLineSwap(t *testing.T) {
	symbols := []*Symbol{lineSymbol("227,26,28,255"), lineSymbol("253,191,111,255")}
	classes := make([]classStyle, len(symbols))
	for i, sym := range symbols {
		fill, style, err := defaultSize().ExtractStyle(sym)
		require.NoError(t, err)
		classes[i] = classStyle{fill: fill, style: style}
	}
	preFills, preStrokes := classColors(classes)

	layer := testLayer("roads", Line, categorized("class", symbols...), NativeField{Name: "class", Type: NativeString})
	_, vc, ch, err := defaultSize().ResolveAdvancedStyle(layer)
	require.NoError(t, err)

	// strokes became the fill list and fills the stroke list
	assert.Empty(t, preStrokes)
	assert.Equal(t, DefaultColorRange(), vc.ColorRange)
	assert.Equal(t, preFills, vc.StrokeColorRange.Colors)
	assert.Nil(t, ch.ColorField)
	require.NotNil(t, ch.StrokeColorField)
	assert.Equal(t, "class", ch.StrokeColorField.Name)
	assert.Equal(t, OrdinalScale, ch.StrokeColorScale)
}

func TestResolveLineSwapWithOutlines(t *testing.T) {
	r := categorized("kind",
		fillSymbol("10,20,30,255", "0,0,0,255"),
		fillSymbol("40,50,60,255", "255,0,0,255"),
	)
	polygon := testLayer("p", Polygon, r, NativeField{Name: "kind", Type: NativeString})
	line := testLayer("l", Line, r, NativeField{Name: "kind", Type: NativeString})

	_, pvc, _, err := defaultSize().ResolveAdvancedStyle(polygon)
	require.NoError(t, err)
	_, lvc, _, err := defaultSize().ResolveAdvancedStyle(line)
	require.NoError(t, err)

	assert.Equal(t, pvc.ColorRange.Colors, lvc.StrokeColorRange.Colors)
	assert.Equal(t, pvc.StrokeColorRange.Colors, lvc.ColorRange.Colors)
}

func TestResolveErrors(t *testing.T) {
	s := defaultSize()

	_, _, _, err := s.ResolveAdvancedStyle(testLayer("l", Polygon, graduated("Jenks", fillSymbol("1,1,1,255", "0,0,0,255")), population))
	var classErr *InvalidClassificationError
	require.True(t, errors.As(err, &classErr))
	assert.Equal(t, "Jenks", classErr.Method)
	assert.Len(t, classErr.Supported, 3)

	_, _, _, err = s.ResolveAdvancedStyle(testLayer("l", Polygon, Categorized{Attribute: "population"}, population))
	var emptyErr *EmptyClassSetError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, CategorizedRenderer, emptyErr.Renderer)

	_, _, _, err = s.ResolveAdvancedStyle(testLayer("l", Polygon, Graduated{Attribute: "population", Method: Quantile}, population))
	assert.True(t, errors.As(err, &emptyErr))

	_, _, _, err = s.ResolveAdvancedStyle(testLayer("l", Polygon, SingleSymbol{Symbol: fillSymbol("1,1,1,255", "0,0,0,255")}))
	var symErr *UnsupportedSymbolError
	assert.True(t, errors.As(err, &symErr))

	_, _, _, err = s.ResolveAdvancedStyle(testLayer("l", Polygon, categorized("missing", fillSymbol("1,1,1,255", "0,0,0,255")), population))
	var fieldErr *FieldNotFoundError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "missing", fieldErr.Field)

	_, _, _, err = s.ResolveAdvancedStyle(testLayer("l", Polygon,
		categorized("blob", fillSymbol("1,1,1,255", "0,0,0,255")), NativeField{Name: "blob", Type: "binary"}))
	var typeErr *UnsupportedFieldTypeError
	assert.True(t, errors.As(err, &typeErr))
}
