// Package http exposes the pipeline as a REST API on a chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/vlogger/internal/logging"
	"github.com/aretw0/vlogger/internal/presentation/graph"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HeaderRunID carries the archive ID of a generated itinerary.
const HeaderRunID = "X-Run-ID"

// Engine defines the pipeline operations served over HTTP.
type Engine interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
	Lookup(ctx context.Context, runID string) (*domain.Result, error)
	Runs(ctx context.Context) ([]string, error)
	Forget(ctx context.Context, runID string) error
	Stages() []domain.Stage
}

// Server holds the handlers of the API.
type Server struct {
	Engine  Engine
	Version string

	logger     *slog.Logger
	origins    []string
	metrics    http.Handler
	validator  *requestValidator
	apiVersion string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCORSOrigins sets the allowlist of browser origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the application version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	doc, err := OpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := newRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Engine:     engine,
		Version:    "dev",
		logger:     logging.NewNop(),
		validator:  validator,
		apiVersion: doc.Info.Version,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.origins))

	r.Post("/generate", s.Generate)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Delete("/runs/{id}", s.DeleteRun)
	r.Get("/stages", s.GetStages)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawOpenAPI)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r, nil
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	if err := s.validator.Validate(r); err != nil {
		s.logger.Warn("Generate: Invalid request", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var body domain.Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Generate: Invalid request body", "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := s.Engine.Generate(r.Context(), body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			s.logger.Warn("Generate: Request rejected", "error", err)
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("Generate failed", "error", err, "location", body.Location, "request_id", middleware.GetReqID(r.Context()))
		writeDetail(w, http.StatusInternalServerError, domain.Cause(err))
		return
	}

	if result.RunID != "" {
		w.Header().Set(HeaderRunID, result.RunID)
	}
	writeJSON(w, http.StatusOK, result, s.logger)
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := s.Engine.Lookup(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) || errors.Is(err, domain.ErrArchiveDisabled) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("GetRun failed", "error", err, "run_id", id)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set(HeaderRunID, id)
	writeJSON(w, http.StatusOK, result, s.logger)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Engine.Runs(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrArchiveDisabled) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("ListRuns failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs}, s.logger)
}

// DeleteRun handles the DELETE /runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.Forget(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRunNotFound) || errors.Is(err, domain.ErrArchiveDisabled) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("DeleteRun failed", "error", err, "run_id", id)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStages handles the GET /stages request.
func (s *Server) GetStages(w http.ResponseWriter, r *http.Request) {
	stages := s.Engine.Stages()
	writeJSON(w, http.StatusOK, map[string]any{
		"stages":  stages,
		"mermaid": graph.GenerateMermaid(stages, nil),
	}, s.logger)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "vlogger",
		"version":     s.Version,
		"api_version": s.apiVersion,
	}, s.logger)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// writeJSON encodes v before committing the status, so an encoding
// failure still yields a 500 with a detail body.
func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Response encode failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>vlogger API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
