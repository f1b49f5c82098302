package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
)

const (
	csvDate     = "2006/01/02"
	csvDateTime = "2006/01/02 15:04:05"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

var dateTimeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006/01/02 15:04:05", "2006-01-02"}

// converter turns a GeoJSON property value into the typed value or the CSV
// text of one column.
type converter struct {
	field qgis2kepler.NativeField
}

func (c converter) typed(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch {
	case c.field.Type.IsInteger():
		return toInt(v, c.field.Name)
	case c.field.Type == qgis2kepler.NativeDouble:
		return toFloat(v, c.field.Name)
	case c.field.Type == qgis2kepler.NativeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("field %q: expected boolean, got %T", c.field.Name, v)
		}
		return b, nil
	case c.field.Type == qgis2kepler.NativeDate:
		return toTime(v, c.field.Name, dateLayouts, csvDate)
	case c.field.Type == qgis2kepler.NativeDateTime:
		return toTime(v, c.field.Name, dateTimeLayouts, csvDateTime)
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (c converter) text(v interface{}) (string, error) {
	t, err := c.typed(v)
	if err != nil || t == nil {
		return "", err
	}
	switch t := t.(type) {
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case string:
		return t, nil
	}
	return fmt.Sprintf("%v", t), nil
}

func toInt(v interface{}, name string) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("field %q: %v is not an integer", name, n)
		}
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("field %q: expected integer, got %T", name, v)
}

func toFloat(v interface{}, name string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("field %q: expected number, got %T", name, v)
}

func toTime(v interface{}, name string, layouts []string, out string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected date string, got %T", name, v)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(out), nil
		}
	}
	return "", fmt.Errorf("field %q: unrecognized date %q", name, s)
}
