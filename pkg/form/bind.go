package form

import (
	"encoding/json"
	"fmt"
)

// Bind decodes values into T using its JSON tags. Numbers that are NaN decode
// as the zero value.
func Bind[T any](values Values) (T, error) {
	var out T
	payload, err := json.Marshal(values)
	if err != nil {
		return out, fmt.Errorf("form: bind: %w", err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("form: bind: %w", err)
	}
	return out, nil
}
