// Package gateway exposes the resolution pipeline over HTTP: a chat-style
// endpoint, a natural-language endpoint with per-request credentials, and
// a raw WordPress REST passthrough. Every request gets a uuid id and a
// structured log line.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wpagent/internal/executor"
	"wpagent/internal/op"
	"wpagent/internal/resolve"
	"wpagent/internal/wp"
)

// ClientFactory builds a CMS client for one request's credentials.
// Injectable so tests can substitute a fake.
type ClientFactory func(site wp.Site) executor.CMS

// Server is the HTTP gateway. Construct with New and serve via Handler.
type Server struct {
	resolver    *resolve.Resolver
	defaultSite wp.Site
	newClient   ClientFactory
	log         *zap.Logger
	mux         *http.ServeMux
}

// Options configures the gateway.
type Options struct {
	Resolver *resolve.Resolver
	// DefaultSite is used when a request carries no credentials.
	DefaultSite wp.Site
	// NewClient is the CMS client factory; defaults to wp.NewClient.
	NewClient ClientFactory
	Logger    *zap.Logger
}

// New builds the gateway and its routes.
func New(opts Options) *Server {
	s := &Server{
		resolver:    opts.Resolver,
		defaultSite: opts.DefaultSite,
		newClient:   opts.NewClient,
		log:         opts.Logger,
	}
	if s.newClient == nil {
		s.newClient = func(site wp.Site) executor.CMS { return wp.NewClient(site) }
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/mcp", s.handleMCP)
	mux.HandleFunc("/api/nlp", s.handleNLP)
	mux.HandleFunc("/api/wordpress/", s.handlePassthrough)
	s.mux = mux
	return s
}

// Handler returns the gateway's HTTP handler with logging applied.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.mux)
}

// ListenAndServe runs the gateway until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("gateway listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

// withLogging assigns a request id and logs method, path, and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// run sends text through the full pipeline against the given site.
func (s *Server) run(r *http.Request, text string, site wp.Site) (string, json.RawMessage, error) {
	if reply, ok := resolve.Normalize(text); ok {
		return reply, nil, nil
	}

	o, err := s.resolver.Resolve(r.Context(), text, site)
	if err != nil {
		return "", nil, err
	}

	if ack, ok := resolve.Intercept(o); ok {
		return executor.Interpret(o), ack, nil
	}

	exec, err := executor.New(s.newClient(site))
	if err != nil {
		return "", nil, err
	}
	result, err := exec.Execute(r.Context(), o)
	if err != nil {
		return "", nil, err
	}
	return executor.Interpret(o), result, nil
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the failure category to an HTTP status and writes a
// machine-checkable error payload.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	category := "internal"
	switch {
	case errors.Is(err, op.ErrConfiguration):
		status = http.StatusBadRequest
		category = "configuration"
	case errors.Is(err, op.ErrResolution):
		status = http.StatusUnprocessableEntity
		category = "resolution"
	case errors.Is(err, op.ErrExecution):
		status = http.StatusBadRequest
		category = "execution"
	case errors.Is(err, op.ErrUpstream):
		status = http.StatusBadGateway
		category = "upstream"
	}
	s.log.Warn("request failed", zap.String("category", category), zap.Error(err))
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   category,
		"message": err.Error(),
	})
}

// siteFromRequest builds credentials from request values, falling back to
// the process-wide defaults field by field.
func (s *Server) siteFromRequest(url, username, password, appPassword string) wp.Site {
	site := s.defaultSite
	if url != "" {
		site.URL = url
	}
	if username != "" {
		site.Username = username
	}
	if password != "" {
		site.Password = password
		site.AppPassword = ""
	}
	if appPassword != "" {
		site.AppPassword = appPassword
	}
	return site
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success": false,
		"error":   "method_not_allowed",
		"message": fmt.Sprintf("method %s not allowed", r.Method),
	})
}
