// vidgate — authenticated HTTP facade over a video-hosting site.
//
// Fetches upstream pages, extracts structured metadata with per-field
// fallbacks, and serves it behind Basic auth and a per-client
// sliding-window rate limit.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vidgate/internal/apiserver"
	"vidgate/internal/auth"
	"vidgate/internal/config"
	"vidgate/internal/engine"
	"vidgate/internal/ratelimit"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	initEngine(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("rate limit store init failed", slog.Any("error", err))
		os.Exit(1)
	}

	server := apiserver.New(apiserver.Options{
		Verifier:    auth.NewVerifier(cfg.Auth.Username, cfg.Auth.Password),
		Limiter:     ratelimit.New(store),
		APIKey:      cfg.Auth.APIKey,
		Version:     version,
		CORSOrigins: cfg.Server.CORSOrigins,
		TrustProxy:  cfg.Server.TrustProxy,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting vidgate",
			slog.String("addr", cfg.Server.ListenAddr),
			slog.String("version", version),
			slog.String("upstream", cfg.Upstream.BaseURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}

func initEngine(cfg config.Config) {
	c := engine.Config{
		BaseURL:      cfg.Upstream.BaseURL,
		FetchTimeout: cfg.Upstream.FetchTimeout,
	}

	if cfg.Upstream.BrowserClient {
		bc, err := engine.NewBrowserClient(int(cfg.Upstream.FetchTimeout.Seconds()))
		if err != nil {
			slog.Warn("browser client init failed, using plain transport", slog.Any("error", err))
		} else {
			c.Browser = bc
			slog.Info("browser fingerprint client initialized")
		}
	}

	engine.Init(c)
}

// buildStore picks the rate-limit backend: redis when configured (so
// several instances share one window), in-process memory otherwise.
func buildStore(ctx context.Context, cfg config.Config) (ratelimit.Store, error) {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		store, err := ratelimit.NewRedisStore(redis.NewClient(opts), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		if err != nil {
			return nil, err
		}
		slog.Info("rate limit store ready", slog.String("backend", "redis"))
		return store, nil
	}

	store := ratelimit.NewMemoryStore(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	store.StartJanitor(ctx)
	slog.Info("rate limit store ready", slog.String("backend", "memory"))
	return store, nil
}
