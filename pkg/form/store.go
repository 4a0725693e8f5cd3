package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Store owns the current value and the current error of every field. The set
// of fields and the type of each field are fixed by the defaults passed to
// NewStore.
type Store struct {
	mu       sync.RWMutex
	defaults Values
	values   Values
	types    map[string]model.FieldType
	errors   Errors
}

// NewStore copies defaults into a new store and records the type of each
// field from its default value. The caller's map is never retained.
func NewStore(defaults Values) (*Store, error) {
	normalized := make(Values, len(defaults))
	types := make(map[string]model.FieldType, len(defaults))
	for name, value := range defaults {
		canonical, fieldType, err := model.NormalizeValue(value)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", name, err)
		}
		normalized[name] = canonical
		types[name] = fieldType
	}

	return &Store{
		defaults: normalized,
		values:   normalized.Clone(),
		types:    types,
	}, nil
}

// Values returns a copy of the current values.
func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Clone()
}

// Value returns the current value of a field.
func (s *Store) Value(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[name]
	return value, ok
}

// Type returns the type recorded for a field at construction.
func (s *Store) Type(name string) (model.FieldType, bool) {
	fieldType, ok := s.types[name]
	return fieldType, ok
}

// Fields returns the sorted field names.
func (s *Store) Fields() []string {
	return s.defaults.Names()
}

// Default returns the default value of a field.
func (s *Store) Default(name string) (any, bool) {
	value, ok := s.defaults[name]
	return value, ok
}

// Dirty reports whether a field differs from its default.
func (s *Store) Dirty(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, ok := s.values[name]
	if !ok {
		return false
	}
	return current != s.defaults[name]
}

// Errors returns a copy of the current errors, or nil when there are none.
func (s *Store) Errors() Errors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors.Clone()
}

// Error returns the current message for a field.
func (s *Store) Error(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, ok := s.errors[name]
	return message, ok
}

// SetField coerces raw to the field's type and stores it. Unknown fields are
// ignored and reported with a false return.
//
// Number fields parse string payloads; text that is not a number is stored as
// NaN and out-of-range text as ±Inf. Boolean fields store bool payloads as-is and interpret string payloads
// the way HTML checkboxes post them. String fields store text verbatim.
func (s *Store) SetField(name string, raw any) bool {
	fieldType, ok := s.types[name]
	if !ok {
		return false
	}
	value := coerce(fieldType, raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return true
}

// SetErrors replaces the current errors. A nil or empty map clears them.
func (s *Store) SetErrors(errs Errors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = errs.Clone()
}

// Reset restores every field to its default and clears the errors.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = s.defaults.Clone()
	s.errors = nil
}

func coerce(fieldType model.FieldType, raw any) any {
	switch fieldType {
	case model.FieldTypeNumber:
		return coerceNumber(raw)
	case model.FieldTypeBoolean:
		return coerceBoolean(raw)
	default:
		return coerceText(raw)
	}
}

func coerceNumber(raw any) float64 {
	if text, ok := raw.(string); ok {
		number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}
		return number
	}
	number, _ := model.ToFloat(raw)
	return number
}

func coerceBoolean(raw any) bool {
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "on", "true", "1", "yes":
			return true
		default:
			return false
		}
	default:
		return false
	}
}

func coerceText(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}
