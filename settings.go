package qgis2kepler

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const SettingsVersion = 1

type OutputFormat string

const (
	FormatZip  OutputFormat = "zip"
	FormatJSON OutputFormat = "json"
)

var (
	layerBlendings = []string{"normal", "additive", "subtractive"}
	basemaps       = []string{"dark", "light", "muted", "muted_night", "satellite", "satellite-street", "streets"}
	outputFormats  = []string{string(FormatZip), string(FormatJSON)}
)

// SizeSettings holds the two recognized size units and the conversion
// constants used by ToPixels.
type SizeSettings struct {
	PixelUnit           string  `toml:"pixel_unit"`
	MillimeterUnit      string  `toml:"millimeter_unit"`
	MillimetersToPixels float64 `toml:"millimeters_to_pixels"`
	WidthPixelFactor    float64 `toml:"width_pixel_factor"`
	HairlineThickness   float64 `toml:"hairline_thickness"`
}

type Settings struct {
	Version       int          `toml:"version"`
	CRS           string       `toml:"crs"`
	LayerBlending string       `toml:"layer_blending"`
	OutputFormat  OutputFormat `toml:"output_format"`
	Basemap       string       `toml:"basemap"`
	Size          SizeSettings `toml:"size"`
}

func DefaultSettings() Settings {
	return Settings{
		Version:       SettingsVersion,
		CRS:           "EPSG:4326",
		LayerBlending: "normal",
		OutputFormat:  FormatZip,
		Basemap:       "dark",
		Size: SizeSettings{
			PixelUnit:      "Pixel",
			MillimeterUnit: "MM",
			// taken from qgssymbollayerutils.cpp
			MillimetersToPixels: 0.28,
			WidthPixelFactor:    3.0,
			HairlineThickness:   1.0,
		},
	}
}

// LoadSettings reads a TOML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("loading settings: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Version != SettingsVersion {
		return fmt.Errorf("unsupported settings version: %d", s.Version)
	}
	if strings.TrimSpace(s.CRS) == "" {
		return fmt.Errorf("crs is required")
	}
	if !contains(layerBlendings, s.LayerBlending) {
		return fmt.Errorf("invalid layer_blending %q, choose one of %v", s.LayerBlending, layerBlendings)
	}
	if !contains(basemaps, s.Basemap) {
		return fmt.Errorf("invalid basemap %q, choose one of %v", s.Basemap, basemaps)
	}
	if !contains(outputFormats, string(s.OutputFormat)) {
		return fmt.Errorf("invalid output_format %q, choose one of %v", s.OutputFormat, outputFormats)
	}
	sz := s.Size
	if sz.PixelUnit == "" || sz.MillimeterUnit == "" {
		return fmt.Errorf("size units must not be empty")
	}
	if sz.PixelUnit == sz.MillimeterUnit {
		return fmt.Errorf("pixel and millimeter units must differ, both are %q", sz.PixelUnit)
	}
	if sz.MillimetersToPixels <= 0 {
		return fmt.Errorf("millimeters_to_pixels must be positive")
	}
	if sz.WidthPixelFactor <= 0 {
		return fmt.Errorf("width_pixel_factor must be positive")
	}
	if sz.HairlineThickness <= 0 {
		return fmt.Errorf("hairline_thickness must be positive")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
