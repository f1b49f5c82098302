package qgis2kepler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hsluv/hsluv-go"
)

// RGB is a color triple with channels in [0,255].
type RGB [3]int

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return RGBToHex(c)
}

// ExtractColor parses the host's "r,g,b,a" color encoding. Alpha is
// normalized to [0,1].
func ExtractColor(raw string) (RGB, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return RGB{}, 0, &MalformedColorError{Raw: raw, Reason: fmt.Sprintf("got %d components", len(parts))}
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, 0, &MalformedColorError{Raw: raw, Reason: fmt.Sprintf("component %d is not an integer", i+1)}
		}
		if v < 0 || v > 255 {
			return RGB{}, 0, &MalformedColorError{Raw: raw, Reason: fmt.Sprintf("component %d out of range", i+1)}
		}
		vals[i] = v
	}
	return RGB{vals[0], vals[1], vals[2]}, float64(vals[3]) / 255.0, nil
}

func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// ParseColor accepts either "#rrggbb" or "r,g,b" as used in project files.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) == 4 {
		rgb, _, err := ExtractColor(s)
		return rgb, err
	}
	if len(parts) != 3 {
		return RGB{}, &MalformedColorError{Raw: s, Reason: "expected #rrggbb or r,g,b"}
	}
	var c RGB
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, &MalformedColorError{Raw: s, Reason: fmt.Sprintf("component %d is invalid", i+1)}
		}
		c[i] = v
	}
	return c, nil
}

func parseHex(s string) (RGB, error) {
	if len(s) != 7 {
		return RGB{}, &MalformedColorError{Raw: s, Reason: "hex color must be #rrggbb"}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, &MalformedColorError{Raw: s, Reason: "invalid hex digits"}
	}
	return RGB{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, nil
}

// golden angle in degrees
const goldenAngle = 137.50776405003785

// DatasetColor picks the color of the i-th dataset when the project does not
// set one. Colors have equal perceived lightness and saturation.
func DatasetColor(i int) RGB {
	h := math.Mod(float64(i)*goldenAngle, 360)
	c, err := parseHex(hsluv.HsluvToHex(h, 80, 60))
	if err != nil {
		return RGB{0, 92, 255}
	}
	return c
}
