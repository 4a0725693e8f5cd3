package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// PromptDriver abstracts the terminal so the prompt loop can be tested
// without one and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the default PromptDriver backed by survey. Info
// messages are written to out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, opts: opts}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	opts := append([]survey.AskOpt(nil), d.opts...)
	if cfg.Validator != nil {
		validate := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				s = fmt.Sprint(ans)
			}
			return validate(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, d.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
