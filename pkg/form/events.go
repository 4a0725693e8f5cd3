package form

// ChangeEvent carries a field update from the UI boundary. Boolean fields read
// Checked; every other field reads Value.
type ChangeEvent struct {
	Name    string
	Value   string
	Checked bool
}

// SubmitEvent is the submit trigger received from the UI boundary.
// PreventDefault suppresses the platform's default action (page navigation,
// dialog close) and is called before anything else happens.
type SubmitEvent interface {
	PreventDefault()
}

// PreventDefaultFunc adapts a function into a SubmitEvent.
type PreventDefaultFunc func()

// PreventDefault calls the underlying function.
func (fn PreventDefaultFunc) PreventDefault() {
	if fn != nil {
		fn()
	}
}
