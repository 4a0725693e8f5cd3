package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/tui"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill the form interactively and print the accepted values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, logger, err := opts.load()
			if err != nil {
				return err
			}
			f, err := def.Build(cmd.Context(), printValues(opts.stdout), logger)
			if err != nil {
				return err
			}

			runner := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(opts.stderr)),
				tui.WithFields(def.Fields),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithLogger(logger),
			)
			_, err = runner.Run(cmd.Context(), f)
			return err
		},
	}
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "give up after this many invalid submits (0 = unlimited)")
	return cmd
}
