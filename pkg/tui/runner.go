package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Runner fills a form from a terminal. Every field is prompted once, then the
// form is submitted; fields reported invalid are prompted again until a
// submit is accepted, fails, or the user aborts.
type Runner struct {
	driver      PromptDriver
	fields      []model.Field
	maxAttempts int
	theme       Theme
	logger      zerolog.Logger
}

// New constructs a Runner. Without WithPromptDriver it talks to the terminal
// through survey.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: zerolog.Nop(),
		theme:  Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run drives f until the submit handler accepts its values. It returns the
// final submit status; handler errors are returned unchanged.
func (r *Runner) Run(ctx context.Context, f *form.Form) (form.SubmitStatus, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := r.descriptors(f.Store())
	pending := fields

	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.prompt(ctx, f, field); err != nil {
				return form.SubmitFailed, err
			}
		}

		status, err := f.Submit(ctx, nil)
		r.logger.Debug().Int("attempt", attempt).Stringer("status", status).Msg("submit")
		switch status {
		case form.SubmitAccepted:
			return status, nil
		case form.SubmitIgnored:
			return status, ErrSubmitInFlight
		case form.SubmitFailed:
			return status, err
		}

		errs := f.Errors()
		if err := r.report(ctx, fields, errs); err != nil {
			return status, err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return status, ErrAttemptsExhausted
		}
		pending = failing(fields, errs)
	}
}

func (r *Runner) prompt(ctx context.Context, f *form.Form, field model.Field) error {
	current, _ := f.Store().Value(field.Name)

	switch field.Type {
	case model.FieldTypeBoolean:
		checked, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: checked,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		f.HandleChange(form.ChangeEvent{Name: field.Name, Checked: answer})
	default:
		cfg := InputConfig{
			Message: field.Label,
			Default: displayValue(current),
			Help:    field.Description,
		}
		if field.Type == model.FieldTypeNumber {
			cfg.Validator = validateNumber
		}
		answer, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		f.HandleChange(form.ChangeEvent{Name: field.Name, Value: answer})
	}
	return nil
}

func (r *Runner) report(ctx context.Context, fields []model.Field, errs form.Errors) error {
	labels := make(map[string]string, len(fields))
	for _, field := range fields {
		labels[field.Name] = field.Label
	}
	for _, name := range errs.Fields() {
		label := labels[name]
		if label == "" {
			label = name
		}
		msg := fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, errs[name])
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// descriptors returns the fields to prompt, in order. Explicit descriptors
// win; any store field they omit is appended with a derived label.
func (r *Runner) descriptors(store *form.Store) []model.Field {
	seen := make(map[string]bool)
	var out []model.Field
	for _, field := range r.fields {
		fieldType, ok := store.Type(field.Name)
		if !ok || seen[field.Name] {
			continue
		}
		field.Type = fieldType
		if field.Label == "" {
			field.Label = model.DefaultLabeler(field.Name)
		}
		seen[field.Name] = true
		out = append(out, field)
	}
	for _, name := range store.Fields() {
		if seen[name] {
			continue
		}
		fieldType, _ := store.Type(name)
		out = append(out, model.Field{Name: name, Type: fieldType, Label: model.DefaultLabeler(name)})
	}
	return out
}

// failing returns the fields named in errs. When no error names a prompted
// field every field is asked again.
func failing(fields []model.Field, errs form.Errors) []model.Field {
	var out []model.Field
	for _, field := range fields {
		if _, ok := errs[field.Name]; ok {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		return fields
	}
	return out
}

func displayValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(typed) {
			return ""
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

func validateNumber(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(answer, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%q is not a number", answer)
	}
	return nil
}
