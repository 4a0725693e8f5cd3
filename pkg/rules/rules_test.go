package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
)

func TestValidator_Engines(t *testing.T) {
	cases := []struct {
		engine string
		length string
	}{
		{engine: EngineExpr, length: "len(name) <= 3"},
		{engine: EngineCEL, length: "size(name) <= 3"},
		{engine: EngineJS, length: "name.length <= 3"},
	}

	for _, tc := range cases {
		t.Run(tc.engine, func(t *testing.T) {
			engine, err := EngineByName(tc.engine)
			if err != nil {
				t.Fatalf("engine: %v", err)
			}
			validator, err := New([]Rule{
				{Field: "age", Expr: "age >= 18", Message: "must be an adult"},
				{Field: "name", Expr: tc.length, Message: "name too long"},
				{Field: "name", Expr: `name != ""`, Message: "name required"},
				{Field: "agreed", Expr: "agreed == true"},
			}, WithEngine(engine))
			if err != nil {
				t.Fatalf("new validator: %v", err)
			}
			if validator.Engine().Name() != tc.engine {
				t.Fatalf("engine mismatch: %s", validator.Engine().Name())
			}

			errs, err := validator.Validate(context.Background(), form.Values{
				"age":    12.0,
				"name":   "Grace",
				"agreed": false,
			})
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			want := form.Errors{
				"age":    "must be an adult",
				"name":   "name too long",
				"agreed": "agreed is invalid",
			}
			if diff := cmp.Diff(want, errs); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}

			errs, err = validator.Validate(context.Background(), form.Values{
				"age":    30.0,
				"name":   "Ada",
				"agreed": true,
			})
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if len(errs) != 0 {
				t.Fatalf("expected no errors, got %#v", errs)
			}
		})
	}
}

func TestValidator_NonBooleanResult(t *testing.T) {
	validator, err := New([]Rule{{Field: "age", Expr: "age + 1"}})
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if _, err := validator.Validate(context.Background(), form.Values{"age": 1.0}); err == nil {
		t.Fatalf("expected error for non-boolean expression")
	}
}

func TestValidator_CompileError(t *testing.T) {
	validator, err := New([]Rule{{Field: "age", Expr: "age >="}})
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if _, err := validator.Validate(context.Background(), form.Values{"age": 1.0}); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestNew_RejectsIncompleteRules(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty rules")
	}
	if _, err := New([]Rule{{Expr: "true"}}); err == nil {
		t.Fatalf("expected error for missing field")
	}
	if _, err := New([]Rule{{Field: "a"}}); err == nil {
		t.Fatalf("expected error for missing expression")
	}
}

func TestEngineByName_Unknown(t *testing.T) {
	if _, err := EngineByName("lua"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestValidator_InsideFormPipeline(t *testing.T) {
	validator, err := New([]Rule{{Field: "title", Expr: `title != ""`, Message: "rule message"}})
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	calls := 0
	f, err := form.New(form.Values{"title": ""}, func(context.Context, form.Values) error {
		calls++
		return nil
	},
		form.WithValidator(validator),
		form.WithValidation(func(_ form.Values, errs form.Errors) {
			errs["title"] = "custom message"
		}),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	status, err := f.Submit(context.Background(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != form.SubmitInvalid || calls != 0 {
		t.Fatalf("unexpected submit: status=%s calls=%d", status, calls)
	}
	if diff := cmp.Diff(form.Errors{"title": "rule message"}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
