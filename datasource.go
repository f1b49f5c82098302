package qgis2kepler

import (
	"fmt"
	"path/filepath"
)

const (
	DatasourceGeoJSON = "geojson"
)

// Datasource locates the features of a layer.
type Datasource interface {
	GetType() string
	// Files lists the files the datasource reads, used for staleness checks.
	Files() []string
}

type GeoJSON struct {
	Filename string
}

func (g GeoJSON) GetType() string {
	return DatasourceGeoJSON
}

func (g GeoJSON) Files() []string {
	return []string{g.Filename}
}

func newDatasource(params map[string]interface{}, baseDir string) (Datasource, error) {
	d := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			d[k] = s
		} else {
			d[k] = fmt.Sprintf("%v", v)
		}
	}

	switch {
	case len(d) == 0:
		return nil, nil
	case d["type"] == DatasourceGeoJSON || (d["type"] == "" && d["file"] != ""):
		if d["file"] == "" {
			return nil, fmt.Errorf("geojson datasource requires a file")
		}
		file := d["file"]
		if !filepath.IsAbs(file) && baseDir != "" {
			file = filepath.Join(baseDir, file)
		}
		return GeoJSON{Filename: file}, nil
	default:
		return nil, fmt.Errorf("unsupported datasource type %q", d["type"])
	}
}
