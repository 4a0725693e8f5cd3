// Package httpform serves a form.Form over HTTP. Posted fields are applied as
// change events before the submit runs, so browser forms and JSON clients
// share the same validation pipeline.
package httpform
