// Package form implements a controlled-form state manager.
//
// A Form is created from a map of default values. The Go type of each default
// fixes the field's type (string, number, boolean) for the life of the form;
// later updates coming from the UI are coerced to that type. On Submit the
// form runs its validators in order (custom function, extra validators,
// schema) and either records the merged field errors or hands the current
// values to the submit handler. A second Submit while one is in flight is
// ignored.
//
//	f, err := form.New(form.Values{"email": "", "age": 0}, save,
//		form.WithValidation(func(values form.Values, errs form.Errors) {
//			if values["email"] == "" {
//				errs["email"] = "email is required"
//			}
//		}),
//	)
//	f.HandleChange(form.ChangeEvent{Name: "age", Value: "42"})
//	status, err := f.Submit(ctx, nil)
package form
