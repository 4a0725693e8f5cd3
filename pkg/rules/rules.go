package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Rule flags Field with Message whenever Expr does not evaluate to true.
type Rule struct {
	Field   string `json:"field" yaml:"field"`
	Expr    string `json:"expr" yaml:"expr"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithEngine selects the expression engine. The default is expr.
func WithEngine(engine Engine) Option {
	return func(v *Validator) {
		if engine != nil {
			v.engine = engine
		}
	}
}

// WithLogger sets the logger used to report failing rules.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger.With().Str("component", "rules").Logger()
	}
}

// Validator is a form.Validator that evaluates expression rules in order.
// When several rules fail for one field the first message is kept.
type Validator struct {
	rules  []Rule
	engine Engine
	logger zerolog.Logger
}

var _ form.Validator = (*Validator)(nil)

// New validates the rule list and builds a Validator.
func New(rules []Rule, opts ...Option) (*Validator, error) {
	v := &Validator{
		engine: NewExprEngine(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	for idx, rule := range rules {
		rule.Field = strings.TrimSpace(rule.Field)
		rule.Expr = strings.TrimSpace(rule.Expr)
		if rule.Field == "" {
			return nil, fmt.Errorf("rules: rule %d: field is required", idx)
		}
		if rule.Expr == "" {
			return nil, fmt.Errorf("rules: rule %d (%s): expression is required", idx, rule.Field)
		}
		if strings.TrimSpace(rule.Message) == "" {
			rule.Message = fmt.Sprintf("%s is invalid", rule.Field)
		}
		v.rules = append(v.rules, rule)
	}
	if len(v.rules) == 0 {
		return nil, errors.New("rules: at least one rule is required")
	}
	return v, nil
}

// Engine returns the configured engine.
func (v *Validator) Engine() Engine {
	return v.engine
}

// Validate evaluates every rule against values.
func (v *Validator) Validate(ctx context.Context, values form.Values) (form.Errors, error) {
	errs := form.Errors{}
	env := map[string]any(values)
	for _, rule := range v.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, flagged := errs[rule.Field]; flagged {
			continue
		}
		passed, err := v.engine.Eval(rule.Expr, env)
		if err != nil {
			return nil, err
		}
		if passed {
			continue
		}
		v.logger.Debug().
			Str("engine", v.engine.Name()).
			Str("field", rule.Field).
			Str("expr", rule.Expr).
			Msg("rule failed")
		errs[rule.Field] = rule.Message
	}
	return errs, nil
}
