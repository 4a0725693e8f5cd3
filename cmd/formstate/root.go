package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

var errInvalidValues = errors.New("formstate: values failed validation")

type rootOptions struct {
	definition string
	logLevel   string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "formstate",
		Short:         "Fill, serve and validate forms described by a definition file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.definition, "definition", "d", "", "form definition file (JSON or YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	_ = cmd.MarkPersistentFlagRequired("definition")

	cmd.AddCommand(newRunCmd(opts), newServeCmd(opts), newValidateCmd(opts))
	return cmd
}

func (o *rootOptions) logger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(o.logLevel)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	writer := zerolog.ConsoleWriter{Out: o.stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}

func (o *rootOptions) load() (definition.Definition, zerolog.Logger, error) {
	logger, err := o.logger()
	if err != nil {
		return definition.Definition{}, logger, err
	}
	def, err := definition.LoadFile(o.definition)
	if err != nil {
		return definition.Definition{}, logger, err
	}
	logger.Debug().Str("form", def.ID).Int("fields", len(def.Fields)).Msg("definition loaded")
	return def, logger, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printValues(w io.Writer) form.SubmitFunc {
	return func(_ context.Context, values form.Values) error {
		return writeJSON(w, values)
	}
}
