// Package apiserver exposes the scraping engine over an authenticated
// HTTP API: search, video detail, and trending lookups behind Basic
// auth and a per-client sliding-window rate limit.
package apiserver

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"vidgate/internal/auth"
	"vidgate/internal/engine"
	"vidgate/internal/ratelimit"
)

// FetchFunc fetches one upstream page as a parsed document. Injectable
// so handler tests run against canned markup instead of the network.
type FetchFunc func(ctx context.Context, url string) (*goquery.Document, error)

// Options configures a Server.
type Options struct {
	Verifier    *auth.Verifier
	Limiter     *ratelimit.Limiter
	APIKey      string
	Version     string
	CORSOrigins []string
	TrustProxy  bool

	// Fetch defaults to engine.FetchDocument when nil.
	Fetch FetchFunc
}

// Server holds the handler dependencies and builds the router.
type Server struct {
	verifier   *auth.Verifier
	limiter    *ratelimit.Limiter
	apiKey     string
	version    string
	trustProxy bool
	started    time.Time
	fetch      FetchFunc

	corsOrigins []string
}

// New creates a Server from opts.
func New(opts Options) *Server {
	fetch := opts.Fetch
	if fetch == nil {
		fetch = engine.FetchDocument
	}
	return &Server{
		verifier:    opts.Verifier,
		limiter:     opts.Limiter,
		apiKey:      opts.APIKey,
		version:     opts.Version,
		trustProxy:  opts.TrustProxy,
		started:     time.Now(),
		fetch:       fetch,
		corsOrigins: opts.CORSOrigins,
	}
}

// Router registers all routes and the middleware stack. Auth rejects
// before the limiter runs, so a failed login never consumes a slot;
// the limiter covers only the endpoints that touch the upstream.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/docs", s.handleDocs)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.handleMetrics)

	r.Group(func(r chi.Router) {
		r.Use(s.basicAuthMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Get("/search", s.handleSearch)
			r.Get("/video", s.handleVideo)
			r.Get("/trending", s.handleTrending)
		})

		r.Get("/admin", s.handleAdmin)
		r.Post("/admin/revoke", s.handleAdminRevoke)
	})

	return r
}
