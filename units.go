package qgis2kepler

import "math"

// ToPixels converts a host size value into the visualization's pixel
// semantics. Widths are pre-scaled by WidthPixelFactor and rounded to one
// decimal; radii are floored.
func (s SizeSettings) ToPixels(value float64, unit string, isRadius bool) (float64, error) {
	if unit != s.PixelUnit && unit != s.MillimeterUnit {
		return 0, &UnsupportedUnitError{Unit: unit, Supported: []string{s.MillimeterUnit, s.PixelUnit}}
	}
	v := value
	if !isRadius {
		v = value / s.WidthPixelFactor
	}
	if unit == s.MillimeterUnit {
		v = v / s.MillimetersToPixels
	}
	if isRadius {
		return math.Floor(v), nil
	}
	return roundTo(v, 1), nil
}

// thickness substitutes the hairline width for zero width strokes.
func (s SizeSettings) thickness(v float64) float64 {
	if v > 0 {
		return v
	}
	return s.HairlineThickness
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
