package form

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Option configures a Form.
type Option func(*config)

type config struct {
	id         string
	validation ValidationFunc
	validators []Validator
	schema     schema.Parser
	logger     zerolog.Logger
}

// WithValidation installs the custom validator. It runs first.
func WithValidation(fn ValidationFunc) Option {
	return func(c *config) {
		c.validation = fn
	}
}

// WithSchema installs the schema validator. It runs last, so its messages
// replace custom messages for the same field.
func WithSchema(parser schema.Parser) Option {
	return func(c *config) {
		c.schema = parser
	}
}

// WithValidator appends a validator that runs after the custom validator and
// before the schema validator.
func WithValidator(validator Validator) Option {
	return func(c *config) {
		if validator != nil {
			c.validators = append(c.validators, validator)
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithID fixes the form identifier. Empty values keep the generated id.
func WithID(id string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			c.id = trimmed
		}
	}
}
