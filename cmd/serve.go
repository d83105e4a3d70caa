package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/airwatch-tw/aqimon/internal/config"
	"github.com/airwatch-tw/aqimon/internal/pipeline"
	"github.com/airwatch-tw/aqimon/internal/station"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated artifacts and accept refresh requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		table, err := station.Load()
		if err != nil {
			return eris.Wrap(err, "serve: load station table")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeRouter(cfg, table),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down artifact server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting artifact server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

// newServeRouter builds the artifact routes: health, the generated map and
// CSV, and a refresh endpoint that re-runs the pipeline.
func newServeRouter(cfg *config.Config, table *station.Table) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/map", func(w http.ResponseWriter, req *http.Request) {
		serveArtifact(w, req, cfg.Output.MapPath, "text/html; charset=utf-8")
	})

	r.Get("/data.csv", func(w http.ResponseWriter, req *http.Request) {
		serveArtifact(w, req, cfg.Output.CSVPath, "text/csv; charset=utf-8")
	})

	r.Post("/refresh", func(w http.ResponseWriter, req *http.Request) {
		res, err := pipeline.Run(req.Context(), cfg, table)
		if err != nil {
			zap.L().Error("refresh run failed", zap.Error(err))
			http.Error(w, `{"error":"refresh failed"}`, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"readings": res.Readings,
		})
	})

	return r
}

// serveArtifact serves a generated file, or 404 when no run has produced it yet.
func serveArtifact(w http.ResponseWriter, req *http.Request, path, contentType string) {
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "artifact not generated yet; run `aqimon run` or POST /refresh", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, req, path)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
