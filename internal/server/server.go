// Package server exposes the triage and wellness engines over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/healthlinkai/healthlink/internal/model"
)

// NewServeMux wires up all routes and middleware.
func NewServeMux(h *Handler, rateLimiter *IPRateLimiter, allowOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("POST /api/symptoms", h.Symptoms)
	mux.HandleFunc("POST /api/mindwell", h.Mindwell)
	mux.HandleFunc("GET /api/providers", h.Providers)
	mux.HandleFunc("GET /api/usage", h.Usage)
	mux.HandleFunc("POST /api/rules/reload", h.ReloadRules)

	// Stack middleware: outermost first.
	var handler http.Handler = mux
	handler = rateLimiter.Middleware(handler)
	handler = Logging(handler)
	handler = CORS(allowOrigin)(handler)
	handler = RequestID(handler)
	handler = Recovery(handler)

	return handler
}

// Run starts the HTTP server and blocks until ctx is canceled, then shuts
// down gracefully within the configured timeout.
func Run(ctx context.Context, cfg model.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
