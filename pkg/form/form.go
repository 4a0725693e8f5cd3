package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// SubmitFunc receives the values of a submit that passed validation.
type SubmitFunc func(ctx context.Context, values Values) error

// SubmitStatus reports how a Submit call ended.
type SubmitStatus int

const (
	// SubmitIgnored means another submit was already in flight.
	SubmitIgnored SubmitStatus = iota
	// SubmitInvalid means validation produced errors; the handler was not called.
	SubmitInvalid
	// SubmitAccepted means the handler was called and returned nil.
	SubmitAccepted
	// SubmitFailed means a validator or the handler returned an error.
	SubmitFailed
)

func (s SubmitStatus) String() string {
	switch s {
	case SubmitIgnored:
		return "ignored"
	case SubmitInvalid:
		return "invalid"
	case SubmitAccepted:
		return "accepted"
	case SubmitFailed:
		return "failed"
	default:
		return fmt.Sprintf("SubmitStatus(%d)", int(s))
	}
}

// State is a point-in-time snapshot of a form.
type State struct {
	ID         string `json:"id"`
	Values     Values `json:"values"`
	Errors     Errors `json:"errors"`
	Submitting bool   `json:"submitting"`
}

// Form drives the submit lifecycle on top of a Store.
//
// Only one submit runs at a time: a Submit that arrives while another is in
// flight, including one issued from inside the submit handler, is dropped.
// There is no timeout; a handler that never returns keeps the form in the
// submitting state.
type Form struct {
	id           string
	store        *Store
	handleSubmit SubmitFunc
	pipeline     Pipeline
	logger       zerolog.Logger

	mu         sync.Mutex
	submitting bool
}

// New builds a form seeded with defaults. handleSubmit is called with the
// current values whenever a submit passes validation.
func New(defaults Values, handleSubmit SubmitFunc, opts ...Option) (*Form, error) {
	if handleSubmit == nil {
		return nil, ErrNilSubmitHandler
	}

	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	store, err := NewStore(defaults)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger.With().
		Str("component", "form").
		Str("form_id", cfg.id).
		Logger()

	var pipeline Pipeline
	if cfg.validation != nil {
		pipeline = append(pipeline, cfg.validation)
	}
	pipeline = append(pipeline, cfg.validators...)
	if cfg.schema != nil {
		pipeline = append(pipeline, &schemaValidator{parser: cfg.schema, logger: logger})
	}

	return &Form{
		id:           cfg.id,
		store:        store,
		handleSubmit: handleSubmit,
		pipeline:     pipeline,
		logger:       logger,
	}, nil
}

// ID returns the form identifier.
func (f *Form) ID() string {
	return f.id
}

// Store exposes the underlying store for read access and resets.
func (f *Form) Store() *Store {
	return f.store
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.store.Values()
}

// Errors returns a copy of the current errors, or nil.
func (f *Form) Errors() Errors {
	return f.store.Errors()
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// State returns a snapshot of values, errors and the submitting flag.
func (f *Form) State() State {
	return State{
		ID:         f.id,
		Values:     f.store.Values(),
		Errors:     f.store.Errors(),
		Submitting: f.Submitting(),
	}
}

// HandleChange applies a change event. It reports false when the event names
// a field the form does not have; such events are ignored.
func (f *Form) HandleChange(event ChangeEvent) bool {
	fieldType, ok := f.store.Type(event.Name)
	if !ok {
		f.logger.Debug().Str("field", event.Name).Msg("ignoring change for unknown field")
		return false
	}

	var raw any = event.Value
	if fieldType == model.FieldTypeBoolean {
		raw = event.Checked
	}
	return f.store.SetField(event.Name, raw)
}

// Reset restores the defaults and clears errors. It does not interrupt a
// submit in flight.
func (f *Form) Reset() {
	f.store.Reset()
}

// Submit runs the submit lifecycle: prevent the default action, drop the call
// if a submit is in flight, validate, then either record the errors or call
// the submit handler. Handler errors are returned unchanged and handler
// panics propagate; the submitting flag is cleared on every path.
func (f *Form) Submit(ctx context.Context, event SubmitEvent) (SubmitStatus, error) {
	if event != nil {
		event.PreventDefault()
	}
	if ctx == nil {
		return SubmitFailed, ErrNilContext
	}

	if !f.acquire() {
		f.logger.Debug().Msg("submit ignored: already submitting")
		return SubmitIgnored, nil
	}
	defer f.release()

	values := f.store.Values()
	f.store.SetErrors(nil)

	outcome, err := f.pipeline.Validate(ctx, values)
	if err != nil {
		f.logger.Error().Err(err).Msg("validation failed to run")
		return SubmitFailed, fmt.Errorf("form: validate: %w", err)
	}
	if len(outcome) > 0 {
		f.store.SetErrors(outcome)
		f.logger.Debug().Strs("fields", outcome.Fields()).Msg("submit blocked by validation")
		return SubmitInvalid, nil
	}

	if err := f.handleSubmit(ctx, values); err != nil {
		f.logger.Debug().Err(err).Msg("submit handler returned an error")
		return SubmitFailed, err
	}
	f.logger.Debug().Msg("submit accepted")
	return SubmitAccepted, nil
}

func (f *Form) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

func (f *Form) release() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
