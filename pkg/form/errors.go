package form

import "errors"

var (
	// ErrNilSubmitHandler is returned by New when no submit handler is given.
	ErrNilSubmitHandler = errors.New("form: submit handler is required")
	// ErrNilContext is returned by Submit when called with a nil context.
	ErrNilContext = errors.New("form: context is required")
	// ErrUnmappedSchemaFailure is returned by the schema validator when the
	// schema rejects the values but none of its issues names a form field.
	ErrUnmappedSchemaFailure = errors.New("form: schema rejected values without a field issue")
)
