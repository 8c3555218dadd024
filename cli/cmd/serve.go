package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-converter/api"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(f *flags) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rates and conversions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f)
			if err != nil {
				return err
			}

			defer a.Close()

			server := &http.Server{
				Addr:    addr,
				Handler: api.NewHandlers(a.converter(), a.logger).Routes(),
			}

			errs := make(chan error, 1)

			go func() {
				a.logger.WithField("addr", addr).Info("listening")
				errs <- server.ListenAndServe()
			}()

			select {
			case err := <-errs:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}

				return err
			case <-commandContext(cmd).Done():
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				a.logger.Info("shutting down")

				return server.Shutdown(ctx)
			}
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	return serveCmd
}
