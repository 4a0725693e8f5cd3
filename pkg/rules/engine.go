package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Engine names accepted by EngineByName.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// ErrUnknownEngine is returned by EngineByName for unsupported names.
var ErrUnknownEngine = errors.New("rules: unknown engine")

// Engine evaluates a boolean expression against field values. Field names are
// exposed as top-level variables.
type Engine interface {
	Name() string
	Eval(expression string, values map[string]any) (bool, error)
}

// EngineByName returns a fresh engine for name. An empty name selects expr.
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineExpr:
		return NewExprEngine(), nil
	case EngineCEL:
		return NewCELEngine(), nil
	case EngineJS, "javascript":
		return NewJSEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// programCache stores compiled programs keyed by expression.
type programCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

func newProgramCache() *programCache {
	return &programCache{programs: make(map[string]any)}
}

func (c *programCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

func (c *programCache) set(key string, program any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[key] = program
}

func asBool(engine, expression string, result any) (bool, error) {
	passed, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("rules: %s expression %q returned %T, want bool", engine, expression, result)
	}
	return passed, nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
