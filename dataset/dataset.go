// Package dataset flattens the features of a vector layer into the rows and
// field descriptions of a visualization dataset.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterstace/simplefeatures/geom"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
)

const Version = "v1"

// checkpointEvery is the number of rows between cancellation checks.
const checkpointEvery = 1000

type Options struct {
	// OutputDir receives the CSV file. When empty the rows are kept inline.
	OutputDir string
	CRS       string
	Color     qgis2kepler.RGB
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FileName is the name of the CSV file written for a layer. The short layer id
// keeps layers with equal names apart in a shared directory.
func FileName(layer *qgis2kepler.VectorLayer) string {
	return strings.ReplaceAll(layer.Name, " ", "") + "_" + qgis2kepler.LayerID(layer.ID) + ".csv"
}

// Fields returns the dataset fields of layer: its own columns followed by
// the synthetic geometry columns.
func Fields(layer *qgis2kepler.VectorLayer) ([]qgis2kepler.Field, error) {
	var fields []qgis2kepler.Field
	for _, nf := range append(append([]qgis2kepler.NativeField(nil), layer.Fields...), geometryFields(layer.Type)...) {
		f, err := qgis2kepler.MapField(nf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func geometryFields(t qgis2kepler.GeometryType) []qgis2kepler.NativeField {
	switch t {
	case qgis2kepler.Point:
		return []qgis2kepler.NativeField{
			{Name: qgis2kepler.LongitudeField, Type: qgis2kepler.NativeDouble},
			{Name: qgis2kepler.LatitudeField, Type: qgis2kepler.NativeDouble},
		}
	case qgis2kepler.Line, qgis2kepler.Polygon:
		return []qgis2kepler.NativeField{{Name: qgis2kepler.GeometryField, Type: qgis2kepler.NativeString}}
	}
	return nil
}

func checkpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return qgis2kepler.ErrInterrupted
	}
	return nil
}

// Extract reads the features of layer and builds its dataset. The context is
// checked between stages and periodically while rows are converted.
func Extract(ctx context.Context, layer *qgis2kepler.VectorLayer, opts Options) (*qgis2kepler.Dataset, error) {
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	if geometryFields(layer.Type) == nil {
		return nil, &qgis2kepler.UnsupportedGeometryError{
			Geometry: layer.Type, Supported: []string{string(qgis2kepler.Point), string(qgis2kepler.Line), string(qgis2kepler.Polygon)}}
	}
	if layer.SRS != "" && opts.CRS != "" && !strings.EqualFold(layer.SRS, opts.CRS) {
		return nil, &qgis2kepler.InvalidInputError{
			Msg:  fmt.Sprintf("layer %q uses %s", layer.Name, layer.SRS),
			Hint: fmt.Sprintf("reproject the data to %s", opts.CRS),
		}
	}
	src, ok := layer.Datasource.(qgis2kepler.GeoJSON)
	if !ok {
		return nil, &qgis2kepler.InvalidInputError{Msg: fmt.Sprintf("layer %q has no geojson datasource", layer.Name)}
	}

	fields, err := Fields(layer)
	if err != nil {
		return nil, err
	}
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}

	fc, err := readFeatures(src.Filename)
	if err != nil {
		return nil, err
	}
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}

	ds := &qgis2kepler.Dataset{
		Version: Version,
		Data: qgis2kepler.DatasetData{
			ID:     layer.ID.String(),
			Label:  layer.Name,
			Color:  opts.Color,
			Fields: fields,
		},
	}

	if opts.OutputDir != "" {
		name := FileName(layer)
		if err := writeCSV(ctx, filepath.Join(opts.OutputDir, name), layer, fields, fc); err != nil {
			return nil, err
		}
		ds.Source = name
		return ds, nil
	}

	rows := make([][]interface{}, 0, len(fc.Features))
	for i, f := range fc.Features {
		if i%checkpointEvery == 0 {
			if err := checkpoint(ctx); err != nil {
				return nil, err
			}
		}
		row, err := typedRow(layer, f)
		if err != nil {
			return nil, fmt.Errorf("layer %q feature %d: %w", layer.Name, i, err)
		}
		rows = append(rows, row)
	}
	ds.Data.AllData = rows
	return ds, nil
}

func readFeatures(path string) (*featureCollection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc featureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("reading %s: expected a FeatureCollection, got %q", path, fc.Type)
	}
	return &fc, nil
}

func writeCSV(ctx context.Context, path string, layer *qgis2kepler.VectorLayer, fields []qgis2kepler.Field, fc *featureCollection) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	header := make([]string, len(fields))
	for i, fd := range fields {
		header[i] = fd.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, ft := range fc.Features {
		if i%checkpointEvery == 0 {
			if err := checkpoint(ctx); err != nil {
				return err
			}
		}
		row, err := textRow(layer, ft)
		if err != nil {
			return fmt.Errorf("layer %q feature %d: %w", layer.Name, i, err)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func typedRow(layer *qgis2kepler.VectorLayer, f feature) ([]interface{}, error) {
	row := make([]interface{}, 0, len(layer.Fields)+2)
	for _, nf := range layer.Fields {
		v, err := converter{field: nf}.typed(f.Properties[nf.Name])
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	geomValues, err := geometryValues(layer.Type, f.Geometry)
	if err != nil {
		return nil, err
	}
	return append(row, geomValues...), nil
}

func textRow(layer *qgis2kepler.VectorLayer, f feature) ([]string, error) {
	row := make([]string, 0, len(layer.Fields)+2)
	for _, nf := range layer.Fields {
		v, err := converter{field: nf}.text(f.Properties[nf.Name])
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	geomValues, err := geometryValues(layer.Type, f.Geometry)
	if err != nil {
		return nil, err
	}
	for _, v := range geomValues {
		switch v := v.(type) {
		case nil:
			row = append(row, "")
		case float64:
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			row = append(row, fmt.Sprintf("%v", v))
		}
	}
	return row, nil
}

// geometryValues returns longitude and latitude of a point feature, or the
// WKT of a line or polygon feature. Multipoints are reduced to their first
// point.
func geometryValues(t qgis2kepler.GeometryType, raw json.RawMessage) ([]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if t == qgis2kepler.Point {
			return []interface{}{nil, nil}, nil
		}
		return []interface{}{nil}, nil
	}
	g, err := geom.UnmarshalGeoJSON(raw)
	if err != nil {
		return nil, err
	}

	switch t {
	case qgis2kepler.Point:
		var pt geom.Point
		switch g.Type() {
		case geom.TypePoint:
			pt = g.MustAsPoint()
		case geom.TypeMultiPoint:
			mp := g.MustAsMultiPoint()
			if mp.NumPoints() == 0 {
				return []interface{}{nil, nil}, nil
			}
			pt = mp.PointN(0)
		default:
			return nil, fmt.Errorf("expected Point geometry, got %s", g.Type())
		}
		xy, ok := pt.XY()
		if !ok {
			return []interface{}{nil, nil}, nil
		}
		return []interface{}{xy.X, xy.Y}, nil
	case qgis2kepler.Line:
		if g.Type() != geom.TypeLineString && g.Type() != geom.TypeMultiLineString {
			return nil, fmt.Errorf("expected line geometry, got %s", g.Type())
		}
	case qgis2kepler.Polygon:
		if g.Type() != geom.TypePolygon && g.Type() != geom.TypeMultiPolygon {
			return nil, fmt.Errorf("expected polygon geometry, got %s", g.Type())
		}
	}
	return []interface{}{g.AsText()}, nil
}
