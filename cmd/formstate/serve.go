package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/httpform"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr     string
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP at /forms/<id>",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, logger, err := opts.load()
			if err != nil {
				return err
			}

			accepted := func(_ context.Context, values form.Values) error {
				logger.Info().Str("form", def.ID).Interface("values", values).Msg("submission accepted")
				return nil
			}
			f, err := def.Build(cmd.Context(), accepted, logger)
			if err != nil {
				return err
			}

			handlerOpts := []httpform.Option{httpform.WithLogger(logger)}
			if sanitize {
				handlerOpts = append(handlerOpts, httpform.WithStrictSanitizer())
			}
			mux := http.NewServeMux()
			route := "/forms/" + def.ID
			mux.Handle(route, httpform.New(f, handlerOpts...))

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(cmd.Context(), srv, route, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&sanitize, "sanitize", true, "strip HTML from text fields")
	return cmd
}

func serve(ctx context.Context, srv *http.Server, route string, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("route", route).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
