package rules

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// exprEngine evaluates rules with github.com/expr-lang/expr.
type exprEngine struct {
	cache *programCache
}

// NewExprEngine constructs an Engine backed by expr-lang/expr.
func NewExprEngine() Engine {
	return &exprEngine{cache: newProgramCache()}
}

func (e *exprEngine) Name() string { return EngineExpr }

func (e *exprEngine) Eval(expression string, values map[string]any) (bool, error) {
	program, err := e.compile(expression)
	if err != nil {
		return false, err
	}
	env := make(map[string]any, len(values))
	for key, value := range values {
		env[key] = value
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("rules: expr run %q: %w", expression, err)
	}
	return asBool(EngineExpr, expression, result)
}

func (e *exprEngine) compile(expression string) (*exprvm.Program, error) {
	if cached, ok := e.cache.get(expression); ok {
		if program, ok := cached.(*exprvm.Program); ok {
			return program, nil
		}
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("rules: expr compile %q: %w", expression, err)
	}
	e.cache.set(expression, program)
	return program, nil
}
