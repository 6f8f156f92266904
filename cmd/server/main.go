package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"xapi/internal/platform/config"
	"xapi/internal/platform/httpserver"
	"xapi/internal/platform/logger"
	"xapi/internal/platform/metrics"
	"xapi/internal/statements"
	httptransport "xapi/internal/transport/http"
)

// main wires the validation gateway and keeps the server lifecycle small.
// Codec logic lives in pkg/xapi.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	m := metrics.New()
	svc := statements.New(statements.WithLogger(log), statements.WithMetrics(m))
	handler := httptransport.New(svc, log, httptransport.WithPrettyJSON(cfg.PrettyJSON))
	srv := httpserver.New(cfg, httptransport.NewRouter(handler, cfg, log, m))

	errc := make(chan error, 1)
	go func() {
		log.Info("starting xapi gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
