package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/middleware"
	"github.com/wayfind-dev/wayfind/pkg/nav"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func serveCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route manifest over HTTP",
		Long: `Serve loads wayfind.json, builds the route table, and hosts it:

  /        full page loads (fragment-blind matching)
  /ws      WebSocket navigation bridge for the browser shim
  /metrics Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing wayfind.json")

	return cmd
}

func runServe(dir string) error {
	logger := slog.Default()

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	tbl, err := cfg.BuildTable(manifestHandlers(cfg, logger), logger)
	if err != nil {
		return err
	}

	host := nav.NewWSHost(nav.WithWSLogger(logger))
	r, err := router.New(tbl, router.Config{
		Logger:   logger,
		Location: host,
	})
	if err != nil {
		return err
	}
	r.Use(
		middleware.Metrics(),
		middleware.OpenTelemetry(),
	)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/ws", host)
	mux.NotFound(nav.NewPageHandler(tbl, logger).ServeHTTP)

	// The dispatcher attaches once the shim completes its handshake.
	go func() {
		<-host.Ready()
		if err := r.Listen(context.Background(), host); err != nil {
			logger.Error("navigation listener stopped", "error", err)
		}
	}()

	printBanner()
	info("Serving %s on http://%s", cfg.Name, cfg.Addr())
	return http.ListenAndServe(cfg.Addr(), mux)
}

// manifestHandlers builds the handler registry for the manifest's
// handler names. The serve command has no application code, so every
// name binds to a handler that records the navigation.
func manifestHandlers(cfg *config.Config, logger *slog.Logger) map[string]router.Handler {
	handlers := make(map[string]router.Handler, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		name := rc.Handler
		handlers[name] = func(ctx context.Context, params []string) error {
			logger.Info("navigated", "handler", name, "params", params)
			return nil
		}
	}
	return handlers
}
