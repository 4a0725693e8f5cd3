package model

import (
	"errors"
	"fmt"
	"math"
)

// FieldType is the coercion kind of a form field. It is fixed per field when
// the form is created and never re-inferred.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// ErrUnsupportedValue is returned when a default value is not a string,
// number, or boolean.
var ErrUnsupportedValue = errors.New("model: unsupported default value")

// Field describes a single form input. Definitions and interactive drivers
// use it to carry labels alongside the inferred type.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Default     any       `json:"default" yaml:"default"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean:
		return true
	default:
		return false
	}
}

// InferFieldType maps the Go type of value onto a FieldType.
func InferFieldType(value any) (FieldType, error) {
	switch value.(type) {
	case string:
		return FieldTypeString, nil
	case bool:
		return FieldTypeBoolean, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return FieldTypeNumber, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// NormalizeValue converts value into the canonical representation of its
// field type: numbers become float64, strings and booleans are unchanged.
func NormalizeValue(value any) (any, FieldType, error) {
	fieldType, err := InferFieldType(value)
	if err != nil {
		return nil, "", err
	}
	if fieldType != FieldTypeNumber {
		return value, fieldType, nil
	}
	number, _ := ToFloat(value)
	return number, fieldType, nil
}

// ToFloat converts any Go numeric value into float64.
func ToFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return math.NaN(), false
	}
}
