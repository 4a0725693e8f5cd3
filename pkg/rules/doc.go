// Package rules validates form values with boolean expressions.
//
// A rule names a field, an expression and a message. The expression sees
// every form field as a variable and must evaluate to true for the value to
// pass:
//
//	rules.Rule{Field: "age", Expr: "age >= 18", Message: "must be an adult"}
//
// Three engines are available: expr (github.com/expr-lang/expr, the default),
// cel (github.com/google/cel-go) and js (github.com/dop251/goja).
package rules
