package model

import internalmodel "github.com/goliatone/go-formstate/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

type Field = internalmodel.Field

// ErrUnsupportedValue is returned for defaults that are not strings, numbers,
// or booleans.
var ErrUnsupportedValue = internalmodel.ErrUnsupportedValue

// InferFieldType maps a default value onto its FieldType.
func InferFieldType(value any) (FieldType, error) {
	return internalmodel.InferFieldType(value)
}

// NormalizeValue returns value in the canonical representation for its type.
func NormalizeValue(value any) (any, FieldType, error) {
	return internalmodel.NormalizeValue(value)
}

// ToFloat converts Go numeric values into float64.
func ToFloat(value any) (float64, bool) {
	return internalmodel.ToFloat(value)
}

// DefaultLabeler converts a field name into a human-friendly label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
