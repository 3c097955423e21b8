// Package api exposes the HTTP interface of the dashboard gateway.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devseo/dashboard-gateway/internal/config"
	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/metrics"
	"github.com/devseo/dashboard-gateway/internal/poll"
	"github.com/devseo/dashboard-gateway/internal/query"
)

// Server wires HTTP handlers to the query layer and the scan tracker.
type Server struct {
	router  chi.Router
	queries *query.Queries
	tracker *poll.Tracker
	cfg     config.Config
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes. The tracker is
// optional; without one, reports are served but never watched.
func NewServer(queries *query.Queries, tracker *poll.Tracker, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		queries: queries,
		tracker: tracker,
		cfg:     cfg,
		logger:  logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", s.dashboard)
		r.Get("/billing/plans", s.billingPlans)

		r.Route("/websites", func(r chi.Router) {
			r.Get("/", s.listWebsites)
			r.Post("/", s.createWebsite)
			r.Route("/{website_id}", func(r chi.Router) {
				r.Get("/", s.getWebsite)
				r.Put("/", s.updateWebsite)
				r.Delete("/", s.deleteWebsite)
				r.Post("/verify", s.verifyWebsite)
			})
		})

		r.Route("/scans", func(r chi.Router) {
			r.Get("/", s.listScans)
			r.Post("/", s.startScan)
			r.Route("/{scan_id}", func(r chi.Router) {
				r.Get("/report", s.scanReport)
				r.Get("/pages", s.scanPages)
			})
		})

		r.Post("/content/optimize", s.optimizeContent)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyz probes the analysis backend; the gateway is not ready when its only
// downstream is unreachable.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	health, err := s.queries.Health(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "analysis backend unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"backend": health.Status,
	})
}

// writeServiceError maps query-layer failures onto gateway responses. Client
// validation failures become 400s, backend errors keep their status and
// detail, everything else is a bad gateway.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *devseo.APIError
	switch {
	case errors.Is(err, devseo.ErrEmptyURL),
		errors.Is(err, devseo.ErrInvalidMaxPages),
		errors.Is(err, devseo.ErrEmptyOptimizeInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		writeError(w, apiErr.StatusCode, apiErr.Detail)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "analysis backend timed out")
	default:
		s.logger.Error("upstream call failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "analysis backend unavailable")
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
