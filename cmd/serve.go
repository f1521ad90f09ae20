package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/handlers"
	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP facade",
		Long: `Starts the presentation-boundary HTTP API on the specified port.

The facade accepts photo uploads for analysis, exposes completed analysis
sessions, and serves wardrobe reads and mutations.`,
		Example: `  # Start on the default port 8888
  fitprint serve

  # Start on a custom port
  fitprint serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			dataDir, err := config.DataDir()
			if err != nil {
				return err
			}
			wardrobePath, err := config.WardrobePath()
			if err != nil {
				return err
			}

			handler := handlers.New(cfg, wardrobe.NewStore(wardrobePath), filepath.Join(dataDir, "uploads"))

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/api/wardrobe", handler.HandleWardrobe)
			mux.HandleFunc("/api/wardrobe/order", handler.HandleWardrobeOrder)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Fitprint facade available", "addr", addr, "service", cfg.BaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
