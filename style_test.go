package qgis2kepler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStyleMarker(t *testing.T) {
	color, vc, err := defaultSize().ExtractStyle(markerSymbol("0,92,255,255", "0,0,0,0", "10"))
	require.NoError(t, err)

	assert.Equal(t, RGB{0, 92, 255}, color)
	assert.Equal(t, 1.0, vc.Opacity)
	require.NotNil(t, vc.Outline)
	assert.False(t, *vc.Outline)
	assert.Nil(t, vc.StrokeColor)
	assert.Nil(t, vc.StrokeOpacity)
	require.NotNil(t, vc.Radius)
	assert.Equal(t, 10, *vc.Radius)
	assert.Equal(t, 1.0, vc.Thickness)
	assert.True(t, vc.Filled)
	require.NotNil(t, vc.FixedRadius)
	assert.False(t, *vc.FixedRadius)

	assert.Nil(t, vc.SizeRange)
	assert.Nil(t, vc.HeightRange)
	assert.Nil(t, vc.ElevationScale)
	assert.Nil(t, vc.Stroked)
}

func TestExtractStyleMarkerOutline(t *testing.T) {
	sym := markerSymbol("10,20,30,255", "35,35,35,255", "6")
	sym.Opacity = 0.5
	sym.Layers[0].Properties.set("outline_width", "3")

	_, vc, err := defaultSize().ExtractStyle(sym)
	require.NoError(t, err)
	assert.Equal(t, 0.5, vc.Opacity)
	require.NotNil(t, vc.StrokeColor)
	assert.Equal(t, RGB{35, 35, 35}, *vc.StrokeColor)
	require.NotNil(t, vc.StrokeOpacity)
	assert.Equal(t, 0.5, *vc.StrokeOpacity)
	assert.True(t, *vc.Outline)
	assert.Equal(t, 1.0, vc.Thickness)
	assert.Equal(t, 6, *vc.Radius)
}

func TestExtractStyleOutlineStyleNo(t *testing.T) {
	sym := fillSymbol("10,20,30,255", "35,35,35,255")
	sym.Layers[0].Properties.set("outline_style", "no")

	_, vc, err := defaultSize().ExtractStyle(sym)
	require.NoError(t, err)
	assert.Nil(t, vc.StrokeColor)
	assert.Nil(t, vc.StrokeOpacity)
	require.NotNil(t, vc.Stroked)
	assert.False(t, *vc.Stroked)
}

func TestExtractStyleFill(t *testing.T) {
	sym := fillSymbol("255,255,178,255", "35,35,35,255")
	sym.Opacity = 0.8

	color, vc, err := defaultSize().ExtractStyle(sym)
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 255, 178}, color)
	assert.Equal(t, 0.8, vc.Opacity)
	assert.Equal(t, 0.8, *vc.StrokeOpacity)
	assert.Equal(t, RGB{35, 35, 35}, *vc.StrokeColor)
	assert.Equal(t, 0.3, vc.Thickness)
	assert.True(t, vc.Filled)
	assert.True(t, *vc.Stroked)
	assert.Equal(t, DefaultSizeRange, vc.SizeRange)
	assert.Equal(t, DefaultHeightRange, vc.HeightRange)
	assert.Equal(t, DefaultElevationScale, *vc.ElevationScale)
	assert.False(t, *vc.Enable3d)
	assert.False(t, *vc.Wireframe)
	assert.Nil(t, vc.Radius)
	assert.Nil(t, vc.FixedRadius)
	assert.Nil(t, vc.Outline)
}

func TestExtractStyleFilled(t *testing.T) {
	noBrush := fillSymbol("255,255,178,255", "35,35,35,255")
	noBrush.Layers[0].Properties.set("style", "no")
	_, vc, err := defaultSize().ExtractStyle(noBrush)
	require.NoError(t, err)
	assert.False(t, vc.Filled)

	transparent := fillSymbol("255,255,178,0", "35,35,35,255")
	_, vc, err = defaultSize().ExtractStyle(transparent)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vc.Opacity)
	assert.False(t, vc.Filled)
}

func TestExtractStyleLine(t *testing.T) {
	sym := lineSymbol("227,26,28,255")
	sym.Opacity = 0.75

	color, vc, err := defaultSize().ExtractStyle(sym)
	require.NoError(t, err)
	assert.Equal(t, RGB{227, 26, 28}, color)
	assert.Equal(t, 0.75, vc.Opacity)
	require.NotNil(t, vc.StrokeOpacity)
	assert.Equal(t, vc.Opacity, *vc.StrokeOpacity)
	assert.Nil(t, vc.StrokeColor)
	assert.Equal(t, 1.0, vc.Thickness)
	assert.True(t, *vc.Stroked)
	assert.False(t, vc.Filled)
	assert.Nil(t, vc.Radius)
}

func TestExtractStyleSubSymbol(t *testing.T) {
	sym := &Symbol{Kind: FillSymbol, Opacity: 1, Layers: []SymbolLayer{{
		Type:       CentroidFill,
		Properties: NewProperties("color", "1,1,1,255"),
		SubSymbol:  markerSymbol("0,92,255,255", "0,0,0,0", "8"),
	}}}

	color, vc, err := defaultSize().ExtractStyle(sym)
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 92, 255}, color)
	require.NotNil(t, vc.Radius)
	assert.Equal(t, 8, *vc.Radius)
}

func TestExtractStyleErrors(t *testing.T) {
	s := defaultSize()

	_, _, err := s.ExtractStyle(&Symbol{Kind: FillSymbol})
	var symErr *UnsupportedSymbolError
	assert.True(t, errors.As(err, &symErr))

	sym := fillSymbol("1,2,3,255", "1,2,3,255")
	sym.Layers[0].Type = "SvgMarker"
	_, _, err = s.ExtractStyle(sym)
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "SvgMarker", symErr.Value)
	assert.Contains(t, symErr.Supported, string(SimpleFill))

	sym = fillSymbol("1,2,3,255", "1,2,3,255")
	sym.Kind = "hybrid"
	_, _, err = s.ExtractStyle(sym)
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "symbol kind", symErr.What)

	sym = fillSymbol("1,2,3", "1,2,3,255")
	_, _, err = s.ExtractStyle(sym)
	var colorErr *MalformedColorError
	assert.True(t, errors.As(err, &colorErr))

	sym = fillSymbol("1,2,3,255", "1,2,3,255")
	sym.Layers[0].Properties.set("outline_width_unit", "MapUnit")
	_, _, err = s.ExtractStyle(sym)
	var unitErr *UnsupportedUnitError
	assert.True(t, errors.As(err, &unitErr))

	sym = &Symbol{Kind: LineSymbol, Opacity: 1, Layers: []SymbolLayer{{
		Type:       SimpleLine,
		Properties: NewProperties("line_color", "1,2,3,255"),
	}}}
	_, _, err = s.ExtractStyle(sym)
	var missing *MissingPropertyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "line_width", missing.Property)
	assert.Equal(t, SimpleLine, missing.SymbolType)
}
