// Package model defines the field vocabulary shared by the form store, the
// definition loader and the interactive drivers. A field has exactly one of
// three types (string, number, boolean), inferred from its default value when
// a form is created. Numbers are carried as float64 so validators and schema
// engines see a single numeric representation.
package model
