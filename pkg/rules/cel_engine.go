package rules

import (
	"fmt"
	"strings"

	celgo "github.com/google/cel-go/cel"
)

// celEngine evaluates rules with github.com/google/cel-go. Every field is
// declared as a dyn variable, so programs are cached per expression and
// field set.
type celEngine struct {
	cache *programCache
}

// NewCELEngine constructs an Engine backed by cel-go.
func NewCELEngine() Engine {
	return &celEngine{cache: newProgramCache()}
}

func (e *celEngine) Name() string { return EngineCEL }

func (e *celEngine) Eval(expression string, values map[string]any) (bool, error) {
	program, err := e.compile(expression, sortedKeys(values))
	if err != nil {
		return false, err
	}
	activation := make(map[string]any, len(values))
	for key, value := range values {
		activation[key] = value
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("rules: cel eval %q: %w", expression, err)
	}
	return asBool(EngineCEL, expression, out.Value())
}

func (e *celEngine) compile(expression string, fields []string) (celgo.Program, error) {
	key := strings.Join(fields, ",") + "|" + expression
	if cached, ok := e.cache.get(key); ok {
		if program, ok := cached.(celgo.Program); ok {
			return program, nil
		}
	}

	opts := []celgo.EnvOption{celgo.CrossTypeNumericComparisons(true)}
	for _, field := range fields {
		opts = append(opts, celgo.Variable(field, celgo.DynType))
	}
	env, err := celgo.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("rules: cel env: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rules: cel compile %q: %w", expression, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rules: cel program %q: %w", expression, err)
	}
	e.cache.set(key, program)
	return program, nil
}
