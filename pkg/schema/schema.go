package schema

import (
	"context"
	"math"
)

// Issue is a single schema violation. Path holds the location of the failing
// value as segments ("title", or "owner", "email" for nested values).
type Issue struct {
	Path    []string `json:"path,omitempty"`
	Message string   `json:"message"`
}

// Field returns the first path segment, the top-level field the issue belongs
// to, or an empty string when the issue is not attached to a field.
func (i Issue) Field() string {
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[0]
}

// Result is the outcome of SafeParse. Issues is only populated when Success is
// false.
type Result struct {
	Success bool    `json:"success"`
	Issues  []Issue `json:"issues,omitempty"`
}

// Parser validates a flat value mapping against a schema without returning a
// Go error for validation failures. An error is reserved for failures of the
// engine itself (for example an unusable schema document).
type Parser interface {
	SafeParse(ctx context.Context, values map[string]any) (Result, error)
}

// ParserFunc adapts a function into a Parser.
type ParserFunc func(ctx context.Context, values map[string]any) (Result, error)

// SafeParse delegates to the underlying function.
func (fn ParserFunc) SafeParse(ctx context.Context, values map[string]any) (Result, error) {
	return fn(ctx, values)
}

// Success returns a passing Result.
func Success() Result {
	return Result{Success: true}
}

// Failure returns a failing Result carrying issues.
func Failure(issues ...Issue) Result {
	return Result{Success: false, Issues: append([]Issue(nil), issues...)}
}

// JSONSafe returns a copy of values with NaN and infinite numbers replaced by
// nil. JSON has no encoding for them, so engines see a missing value that
// fails the field's own type check.
func JSONSafe(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if number, ok := value.(float64); ok && (math.IsNaN(number) || math.IsInf(number, 0)) {
			out[name] = nil
			continue
		}
		out[name] = value
	}
	return out
}
