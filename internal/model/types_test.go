package model

import (
	"errors"
	"math"
	"testing"
)

func TestInferFieldType(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  FieldType
	}{
		{name: "string", value: "", want: FieldTypeString},
		{name: "bool", value: true, want: FieldTypeBoolean},
		{name: "int", value: 3, want: FieldTypeNumber},
		{name: "uint8", value: uint8(3), want: FieldTypeNumber},
		{name: "float", value: 1.5, want: FieldTypeNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := InferFieldType(tc.value)
			if err != nil {
				t.Fatalf("infer: %v", err)
			}
			if got != tc.want {
				t.Fatalf("type mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestInferFieldTypeRejectsUnsupported(t *testing.T) {
	for _, value := range []any{nil, []string{"a"}, map[string]any{}, struct{}{}} {
		if _, err := InferFieldType(value); !errors.Is(err, ErrUnsupportedValue) {
			t.Fatalf("expected ErrUnsupportedValue for %T, got %v", value, err)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	value, fieldType, err := NormalizeValue(int64(7))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if fieldType != FieldTypeNumber {
		t.Fatalf("expected number, got %q", fieldType)
	}
	if got, ok := value.(float64); !ok || got != 7 {
		t.Fatalf("expected float64(7), got %#v", value)
	}

	value, fieldType, err = NormalizeValue("text")
	if err != nil || fieldType != FieldTypeString || value != "text" {
		t.Fatalf("unexpected normalization: %#v %q %v", value, fieldType, err)
	}
}

func TestToFloatRejectsNonNumbers(t *testing.T) {
	got, ok := ToFloat("1")
	if ok || !math.IsNaN(got) {
		t.Fatalf("expected NaN/false, got %v/%v", got, ok)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"first_name": "First Name",
		"postCode2":  "Post Code 2",
		"api-key":    "Api Key",
		"":           "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
