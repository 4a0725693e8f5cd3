package form

import (
	"encoding/json"
	"math"
	"sort"
)

// Values maps field names to their current value. Values are always one of
// string, float64, or bool.
type Values map[string]any

// Clone returns a shallow copy of v. Field values are primitives, so the copy
// shares nothing with v.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

// Names returns the field names in sorted order.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes NaN and infinite numbers, which JSON cannot represent,
// as null.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	safe := make(map[string]any, len(v))
	for name, value := range v {
		if number, ok := value.(float64); ok && (math.IsNaN(number) || math.IsInf(number, 0)) {
			safe[name] = nil
			continue
		}
		safe[name] = value
	}
	return json.Marshal(safe)
}

// Errors maps field names to a human-readable validation message. A nil
// Errors means "no errors".
type Errors map[string]string

// Clone returns a copy of e, or nil when e is empty.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for name, message := range e {
		out[name] = message
	}
	return out
}

// Fields returns the names of the failing fields in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
