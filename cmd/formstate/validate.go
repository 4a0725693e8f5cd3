package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <values.json>",
		Short: "Validate a JSON values file against the form and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, logger, err := opts.load()
			if err != nil {
				return err
			}
			f, err := def.Build(cmd.Context(), printValues(opts.stdout), logger)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read values: %w", err)
			}
			var values map[string]any
			if err := json.Unmarshal(data, &values); err != nil {
				return fmt.Errorf("parse values %s: %w", args[0], err)
			}
			for name, raw := range values {
				if !f.Store().SetField(name, raw) {
					logger.Warn().Str("field", name).Msg("ignoring unknown field")
				}
			}

			status, err := f.Submit(cmd.Context(), nil)
			switch status {
			case form.SubmitAccepted:
				return nil
			case form.SubmitInvalid:
				if err := writeJSON(opts.stdout, map[string]any{"errors": f.Errors()}); err != nil {
					return err
				}
				return errInvalidValues
			default:
				return err
			}
		},
	}
}
