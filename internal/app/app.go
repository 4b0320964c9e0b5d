// Package app wires configuration, adapters, the lookup service and the
// front-ends together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordtree/internal/adapter/speech"
	"github.com/heartmarshall/wordtree/internal/adapter/wordapi"
	"github.com/heartmarshall/wordtree/internal/collapse"
	"github.com/heartmarshall/wordtree/internal/config"
	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/metrics"
	"github.com/heartmarshall/wordtree/internal/service/lookup"
	"github.com/heartmarshall/wordtree/internal/transport/middleware"
	"github.com/heartmarshall/wordtree/internal/transport/rest"
	"github.com/heartmarshall/wordtree/internal/transport/web"
)

// rateLimitSweep is how often idle rate-limit buckets are dropped.
const rateLimitSweep = 5 * time.Minute

// App holds the wired components shared by every front-end.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Backend *wordapi.Client
	Speech  *speech.Client
	Metrics *metrics.Recorder
	Lookup  *lookup.Service
}

// New wires an App from cfg. The display region and its handlers live as
// long as the App.
func New(cfg *config.Config, logger *slog.Logger) *App {
	backend := wordapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	speechClient := speech.NewClient(cfg.Speech.URL, speech.Voice{
		Name:    cfg.Speech.Voice,
		Rate:    cfg.Speech.Rate,
		Pitch:   cfg.Speech.Pitch,
		Preview: cfg.Speech.Preview,
	}, cfg.Speech.Timeout, logger)
	rec := metrics.New()

	a := &App{
		Config:  cfg,
		Log:     logger,
		Backend: backend,
		Speech:  speechClient,
		Metrics: rec,
	}

	if cfg.Speech.Enabled() {
		sink := speech.NewSink(cfg.Speech.OutputDir, cfg.Speech.PlayerCommand, logger)
		a.Lookup = lookup.NewService(logger, backend, display.NewRegion(), collapse.New(logger), speechClient, sink, rec)
	} else {
		a.Lookup = lookup.NewService(logger, backend, display.NewRegion(), collapse.New(logger), nil, nil, rec)
	}
	return a
}

// Handler builds the web front-end: page and actions, probes and metrics,
// behind the request middleware chain. The returned stop func releases the
// rate limiter.
func (a *App) Handler() (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(rateLimitSweep)

	checks := []rest.Check{{Name: "backend", Pinger: a.Backend}}
	if a.Speech.Enabled() {
		checks = append(checks, rest.Check{Name: "speech", Pinger: a.Speech})
	}
	health := rest.NewHealthHandler(BuildVersion(), checks...)

	mux := http.NewServeMux()
	web.NewHandler(a.Lookup, a.Log).Register(mux, limiter.Limit(a.Config.Server.ActionsPerMinute))
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", a.Metrics.Handler())

	return middleware.Stack(a.Log, a.Config.CORS)(mux), limiter.Stop
}

// Serve runs the web front-end until ctx is cancelled, then shuts it down
// within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	handler, stop := a.Handler()
	defer stop()

	cfg := a.Config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("web front-end listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("backend", a.Backend.BaseURL()),
			slog.Bool("speech", a.Speech.Enabled()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		a.Log.Info("shutting down web front-end")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Run builds the stderr logger for cfg and serves the web front-end until
// ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)
	logger.Info("starting wordtree",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("addr", cfg.Server.Addr()),
	)
	return New(cfg, logger).Serve(ctx)
}
