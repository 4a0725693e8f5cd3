package tui

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Theme captures optional message prefixes the runner applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithFields supplies field descriptors. Their order decides the prompt
// order and their labels and descriptions become the prompt text. Fields the
// form does not know are skipped.
func WithFields(fields []model.Field) Option {
	return func(r *Runner) {
		r.fields = append([]model.Field(nil), fields...)
	}
}

// WithMaxAttempts bounds the number of submits before the runner gives up.
// Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger.With().Str("component", "tui").Logger()
	}
}
