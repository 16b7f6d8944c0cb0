package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sofa-quotation/app"
)

// quotation serve: start the editor API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editor API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !cfg.IsProduction() {
			log.Printf("Running in %s mode", cfg.App.Env)
		}

		a, err := app.Initialize(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		a.StartDescription()

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           a.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on %s", cfg.HTTP.Addr)
			log.Printf("Quotation endpoint: GET %s/api/quotation", cfg.PublicURL())
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
