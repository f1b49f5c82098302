package qgis2kepler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInterrupted is returned by units of work that observed a cancellation
// request at one of their checkpoints.
var ErrInterrupted = errors.New("process interrupted")

type UnsupportedUnitError struct {
	Unit      string
	Supported []string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("size unit %q is unsupported, use %s", e.Unit, strings.Join(e.Supported, " or "))
}

// UnsupportedSymbolError covers renderer kinds, symbol kinds and symbol
// layer types outside the supported set.
type UnsupportedSymbolError struct {
	What      string
	Value     string
	Supported []string
}

func (e *UnsupportedSymbolError) Error() string {
	msg := fmt.Sprintf("%s %q is not supported", e.What, e.Value)
	if len(e.Supported) > 0 {
		msg += fmt.Sprintf(" (supported: %s)", strings.Join(e.Supported, ", "))
	}
	return msg
}

type InvalidClassificationError struct {
	Method    string
	Supported []string
}

func (e *InvalidClassificationError) Error() string {
	return fmt.Sprintf("unsupported classification method %q, use %s", e.Method, strings.Join(e.Supported, ", "))
}

type EmptyClassSetError struct {
	Renderer RendererKind
}

func (e *EmptyClassSetError) Error() string {
	return fmt.Sprintf("%s renderer must have at least one class", e.Renderer)
}

type UnsupportedGeometryError struct {
	Geometry  GeometryType
	Supported []string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("geometry type %q is not supported (supported: %s)", e.Geometry, strings.Join(e.Supported, ", "))
}

type UnsupportedFieldTypeError struct {
	Field     string
	Type      NativeType
	Supported []string
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("field %q has unsupported type %q (supported: %s)", e.Field, e.Type, strings.Join(e.Supported, ", "))
}

type MalformedColorError struct {
	Raw    string
	Reason string
}

func (e *MalformedColorError) Error() string {
	return fmt.Sprintf("malformed color %q: %s, expected four comma separated integers r,g,b,a", e.Raw, e.Reason)
}

type MissingPropertyError struct {
	Property   string
	SymbolType SymbolLayerType
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("%s symbol layer is missing property %q", e.SymbolType, e.Property)
}

type FieldNotFoundError struct {
	Field string
	Layer string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("layer %q has no field %q", e.Layer, e.Field)
}

// InvalidInputError reports user supplied input that cannot be exported.
type InvalidInputError struct {
	Msg  string
	Hint string
	Err  error
}

func (e *InvalidInputError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}
