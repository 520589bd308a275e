package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/rigidsim/internal/api"
	"github.com/gyaneshwarpardhi/rigidsim/internal/config"
	"github.com/gyaneshwarpardhi/rigidsim/internal/sim"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address (empty disables the server)")
	cfgPath := flag.String("scenario", "configs/scenario.yaml", "Path to scenario YAML")
	dt := flag.Float64("dt", 0.01, "Step size in seconds")
	steps := flag.Int("steps", 0, "Number of steps to run (0 = until interrupted)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load scenario ─────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load scenario", "err", err)
		os.Exit(1)
	}
	cfg := loader.Scenario()
	if err := config.Validate(cfg); err != nil {
		slog.Error("scenario validation failed", "err", err)
		os.Exit(1)
	}

	// ── Build simulator ───────────────────────────────────────────────────────
	s, err := sim.FromConfig(cfg)
	if err != nil {
		slog.Error("failed to build simulator", "err", err)
		os.Exit(1)
	}
	slog.Info("simulator built",
		"bodies", len(s.Bodies()),
		"contact_params", len(cfg.ContactParams))

	// ── Hot-reload watcher (contact parameters only) ──────────────────────────
	loader.OnChange(func(newCfg *config.Scenario) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: scenario invalid", "err", err)
			return
		}
		s.SwapParams(newCfg.ContactParams)
		slog.Info("contact parameters hot-reloaded", "count", len(newCfg.ContactParams))
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("scenario watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// ── HTTP server ───────────────────────────────────────────────────────────
	var srv *http.Server
	if *addr != "" {
		srv = &http.Server{
			Addr:         *addr,
			Handler:      api.New(s, loader),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			slog.Info("server starting", "addr", *addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("server error", "err", err)
				os.Exit(1)
			}
		}()
	}

	// ── Step loop ─────────────────────────────────────────────────────────────
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; *steps == 0 || n < *steps; n++ {
			if ctx.Err() != nil {
				return
			}
			s.Step(*dt)
		}
		slog.Info("run complete", "time", s.CurrentTime(), "steps", *steps)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		slog.Info("shutting down…")
		<-done
	}

	if srv != nil {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}
	slog.Info("goodbye")
}
