// main is the entry point of the College Console application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the in-memory activity journal
//  4. Build the notification feed, metrics, and the three registries
//  5. Register all HTTP routes and start the server in a goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/college-console --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/college-console
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/college-console/internal/config"
	"github.com/aanand-mishra/college-console/internal/console"
	"github.com/aanand-mishra/college-console/internal/metrics"
	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/storage"
	"github.com/aanand-mishra/college-console/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting college-console",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
		slog.String("id_policy", cfg.Registry.IDPolicy),
	)

	// ── 3. Open the Activity Journal ──────────────────────────────────────
	journal, err := sqlite.New(cfg.JournalPath)
	if err != nil {
		log.Error("failed to initialise journal",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer journal.Close()

	// ── 4. Collaborators and Registries ───────────────────────────────────
	// Every notification goes to the feed (for the front end) and to the
	// log (for whoever is watching the terminal).
	feed := notify.NewFeed(cfg.Notifications.FeedSize)
	sink := notify.Multi(feed, notify.LogSink{Log: log})

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	recorder := storage.Recorder{
		Journal:        journal,
		Log:            log,
		RejectedDetail: registry.MsgInvalidEmail,
	}

	app, err := console.New(cfg, console.Deps{
		Sink:     sink,
		Observer: registry.Observers(m, recorder),
		Log:      log,
	})
	if err != nil {
		log.Error("failed to build registries", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for kind, size := range app.Sizes() {
		m.SetSize(kind, size)
	}

	// ── 5. Routes and Server ──────────────────────────────────────────────
	router := app.Routes(feed, journal,
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
