package qgis2kepler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractColor(t *testing.T) {
	for _, tc := range [][4]int{
		{0, 92, 255, 255},
		{0, 0, 0, 0},
		{255, 255, 255, 128},
		{35, 35, 35, 51},
	} {
		raw := fmt.Sprintf("%d,%d,%d,%d", tc[0], tc[1], tc[2], tc[3])
		rgb, alpha, err := ExtractColor(raw)
		require.NoError(t, err)
		assert.Equal(t, RGB{tc[0], tc[1], tc[2]}, rgb)
		assert.Equal(t, float64(tc[3])/255, alpha)
	}
}

func TestExtractColorMalformed(t *testing.T) {
	for _, raw := range []string{"", "0,92,255", "0,92,255,255,1", "a,b,c,d", "0,92,256,255", "0,-1,0,255", "0.5,92,255,255"} {
		_, _, err := ExtractColor(raw)
		var colorErr *MalformedColorError
		assert.True(t, errors.As(err, &colorErr), "raw %q", raw)
	}
}

func TestRGBToHex(t *testing.T) {
	assert.Equal(t, "#005cff", RGBToHex(RGB{0, 92, 255}))
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "#ffffff", RGB{255, 255, 255}.Hex())

	for _, c := range []RGB{{1, 2, 3}, {16, 160, 255}, {227, 26, 28}} {
		hex := RGBToHex(c)
		assert.Len(t, hex, 7)
		assert.Equal(t, byte('#'), hex[0])
		back, err := ParseColor(hex)
		require.NoError(t, err)
		assert.Equal(t, c, back)
		assert.Equal(t, hex, RGBToHex(back))
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#E3611C")
	require.NoError(t, err)
	assert.Equal(t, RGB{227, 97, 28}, c)

	c, err = ParseColor("12, 34, 56")
	require.NoError(t, err)
	assert.Equal(t, RGB{12, 34, 56}, c)

	c, err = ParseColor("12,34,56,200")
	require.NoError(t, err)
	assert.Equal(t, RGB{12, 34, 56}, c)

	for _, s := range []string{"#fff", "#gggggg", "1,2", "1,2,300", "red"} {
		_, err := ParseColor(s)
		assert.Error(t, err, s)
	}
}

func TestDatasetColor(t *testing.T) {
	seen := map[RGB]bool{}
	for i := 0; i < 8; i++ {
		c := DatasetColor(i)
		for _, ch := range c {
			assert.True(t, ch >= 0 && ch <= 255)
		}
		assert.False(t, seen[c], "color %d repeats", i)
		seen[c] = true
	}
	assert.Equal(t, DatasetColor(3), DatasetColor(3))
}
