package rules

import (
	"fmt"

	"github.com/dop251/goja"
)

// jsEngine evaluates rules as JavaScript expressions with goja. Each
// evaluation gets a fresh runtime; compiled programs are shared.
type jsEngine struct {
	cache *programCache
}

// NewJSEngine constructs an Engine backed by goja.
func NewJSEngine() Engine {
	return &jsEngine{cache: newProgramCache()}
}

func (e *jsEngine) Name() string { return EngineJS }

func (e *jsEngine) Eval(expression string, values map[string]any) (bool, error) {
	program, err := e.compile(expression)
	if err != nil {
		return false, err
	}
	vm := goja.New()
	for key, value := range values {
		if err := vm.Set(key, value); err != nil {
			return false, fmt.Errorf("rules: js bind %q: %w", key, err)
		}
	}
	result, err := vm.RunProgram(program)
	if err != nil {
		return false, fmt.Errorf("rules: js run %q: %w", expression, err)
	}
	return asBool(EngineJS, expression, result.Export())
}

func (e *jsEngine) compile(expression string) (*goja.Program, error) {
	if cached, ok := e.cache.get(expression); ok {
		if program, ok := cached.(*goja.Program); ok {
			return program, nil
		}
	}
	program, err := goja.Compile("rule", fmt.Sprintf("(function(){ return (%s); })()", expression), false)
	if err != nil {
		return nil, fmt.Errorf("rules: js compile %q: %w", expression, err)
	}
	e.cache.set(expression, program)
	return program, nil
}
