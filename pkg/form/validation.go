package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Validator contributes field messages for a snapshot of values. A returned
// error means the validator itself failed, not that the values are invalid.
type Validator interface {
	Validate(ctx context.Context, values Values) (Errors, error)
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(ctx context.Context, values Values) (Errors, error)

// Validate delegates to the underlying function.
func (fn ValidatorFunc) Validate(ctx context.Context, values Values) (Errors, error) {
	return fn(ctx, values)
}

// ValidationFunc is a custom validator. It receives the current values and an
// empty errors map; every message it writes into errs blocks the submit.
type ValidationFunc func(values Values, errs Errors)

// Validate runs fn against a fresh errors map and returns what fn wrote.
func (fn ValidationFunc) Validate(_ context.Context, values Values) (Errors, error) {
	errs := Errors{}
	if fn != nil {
		fn(values.Clone(), errs)
	}
	return errs, nil
}

// Pipeline runs validators in order and merges their output. When two
// validators flag the same field the later message wins.
type Pipeline []Validator

// Validate folds every validator's contribution into one map. An empty map
// means the values passed.
func (p Pipeline) Validate(ctx context.Context, values Values) (Errors, error) {
	outcome := Errors{}
	for _, validator := range p {
		if validator == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		contribution, err := validator.Validate(ctx, values.Clone())
		if err != nil {
			return nil, err
		}
		for name, message := range contribution {
			outcome[name] = message
		}
	}
	return outcome, nil
}

// SchemaValidator adapts a schema.Parser into a Validator. Issues are
// recorded under their top-level field; the first issue per field wins.
// Issues that do not name a known field are dropped; a failing result with no
// field-level issue at all is reported as ErrUnmappedSchemaFailure.
func SchemaValidator(parser schema.Parser) Validator {
	return &schemaValidator{parser: parser, logger: zerolog.Nop()}
}

type schemaValidator struct {
	parser schema.Parser
	logger zerolog.Logger
}

func (v *schemaValidator) Validate(ctx context.Context, values Values) (Errors, error) {
	if v.parser == nil {
		return nil, nil
	}
	result, err := v.parser.SafeParse(ctx, map[string]any(values))
	if err != nil {
		return nil, fmt.Errorf("form: schema: %w", err)
	}
	if result.Success {
		return nil, nil
	}

	errs := make(Errors, len(result.Issues))
	for _, issue := range result.Issues {
		field := issue.Field()
		if _, known := values[field]; !known {
			v.logger.Debug().
				Str("path", schema.JoinPath(issue.Path)).
				Str("message", issue.Message).
				Msg("dropping schema issue outside the form fields")
			continue
		}
		if _, exists := errs[field]; exists {
			continue
		}
		errs[field] = issue.Message
	}
	if len(errs) == 0 {
		messages := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			messages = append(messages, issue.Message)
		}
		v.logger.Warn().
			Strs("issues", messages).
			Msg("schema rejected values without a field-level issue")
		return nil, fmt.Errorf("%w: %s", ErrUnmappedSchemaFailure, strings.Join(messages, "; "))
	}
	return errs, nil
}
