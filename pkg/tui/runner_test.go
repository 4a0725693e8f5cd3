package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	inputPos     int
	confirmPos   int
	prompts      []string
	infoMessages []string
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newProfileForm(t *testing.T, submitted *form.Values) *form.Form {
	t.Helper()
	f, err := form.New(form.Values{
		"full_name": "",
		"age":       0,
		"terms":     false,
	}, func(_ context.Context, values form.Values) error {
		if submitted != nil {
			*submitted = values
		}
		return nil
	}, form.WithValidation(func(values form.Values, errs form.Errors) {
		if values["full_name"] == "" {
			errs["full_name"] = "required"
		}
		if values["terms"] != true {
			errs["terms"] = "must be accepted"
		}
	}))
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	return f
}

func TestRunner_AcceptedOnFirstPass(t *testing.T) {
	var submitted form.Values
	driver := &stubDriver{inputs: []string{"36", "Ada"}, confirm: []bool{true}}
	r := New(WithPromptDriver(driver))

	status, err := r.Run(context.Background(), newProfileForm(t, &submitted))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != form.SubmitAccepted {
		t.Fatalf("expected accepted, got %s", status)
	}

	want := form.Values{"full_name": "Ada", "age": float64(36), "terms": true}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Age", "Full Name", "Terms"}, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_RepromptsOnlyFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"", "36", "Ada"},
		confirm: []bool{true},
	}
	r := New(WithPromptDriver(driver), WithFields([]model.Field{
		{Name: "full_name", Label: "Your name"},
		{Name: "missing"},
	}))

	status, err := r.Run(context.Background(), newProfileForm(t, nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != form.SubmitAccepted {
		t.Fatalf("expected accepted, got %s", status)
	}

	if diff := cmp.Diff([]string{"Your name", "Age", "Terms", "Your name"}, driver.prompts); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"✗ Your name: required"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"1", ""}, confirm: []bool{false}}
	r := New(WithPromptDriver(driver), WithMaxAttempts(1))

	status, err := r.Run(context.Background(), newProfileForm(t, nil))
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if status != form.SubmitInvalid {
		t.Fatalf("expected invalid, got %s", status)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two error messages, got %v", driver.infoMessages)
	}
}

func TestRunner_AbortPropagates(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	r := New(WithPromptDriver(driver))

	_, err := r.Run(context.Background(), newProfileForm(t, nil))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunner_HandlerErrorReturnedUnchanged(t *testing.T) {
	boom := errors.New("boom")
	f, err := form.New(form.Values{"name": "x"}, func(context.Context, form.Values) error {
		return boom
	})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	r := New(WithPromptDriver(&stubDriver{inputs: []string{"y"}}))

	status, err := r.Run(context.Background(), f)
	if err != boom {
		t.Fatalf("expected handler error, got %v", err)
	}
	if status != form.SubmitFailed {
		t.Fatalf("expected failed, got %s", status)
	}
}

func TestValidateNumber(t *testing.T) {
	if err := validateNumber("4.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateNumber(""); err != nil {
		t.Fatalf("empty answer should be allowed: %v", err)
	}
	if err := validateNumber(" 5 "); err != nil {
		t.Fatalf("padded answer should be allowed: %v", err)
	}
	if err := validateNumber("1e400"); err != nil {
		t.Fatalf("out-of-range answer should be allowed: %v", err)
	}
	if err := validateNumber("abc"); err == nil {
		t.Fatalf("expected error for non-numeric answer")
	}
}
