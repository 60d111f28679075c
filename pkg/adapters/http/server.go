// Package http exposes a palette over a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/schema"
)

// Engine defines the palette surface the HTTP adapter drives.
type Engine interface {
	Apply(ctx context.Context, op domain.Operation) (domain.Summary, error)
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Describe() domain.Describe
	Entries(pat domain.Pattern) ([]domain.Entry, error)
	Document() (*schema.Document, error)
}

// Server holds the handler state.
type Server struct {
	Engine Engine
}

// NewHandler creates the HTTP handler for a palette.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/describe", server.GetDescribe)
	r.Get("/palette", server.GetPalette)
	r.Get("/export", server.GetExport)
	r.Post("/apply", server.Apply)
	r.Post("/undo", server.Undo)
	r.Post("/redo", server.Redo)
	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusFor maps palette errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrAddressOutOfRange),
		errors.Is(err, domain.ErrKindNotPermitted):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAddressEmpty),
		errors.Is(err, domain.ErrUnresolvedDependency):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAddressOccupied),
		errors.Is(err, domain.ErrCyclicDependency),
		errors.Is(err, domain.ErrDependentsExist),
		errors.Is(err, domain.ErrNothingToUndo),
		errors.Is(err, domain.ErrNothingToRedo):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// Apply handles the POST /apply request.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Apply: Invalid request body", "error", err)
		return
	}

	op, err := schema.DecodeOperation(payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid operation: %v", err), http.StatusBadRequest)
		slog.Warn("Apply: Invalid operation", "error", err)
		return
	}

	summary, err := s.Engine.Apply(r.Context(), op)
	if err != nil {
		http.Error(w, fmt.Sprintf("Apply error: %v", err), statusFor(err))
		slog.Warn("Apply rejected", "kind", op.Kind, "error", err)
		return
	}
	writeJSON(w, summary)
}

// Undo handles the POST /undo request.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Undo(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Undo error: %v", err), statusFor(err))
		return
	}
	writeJSON(w, s.Engine.Describe())
}

// Redo handles the POST /redo request.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Redo(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Redo error: %v", err), statusFor(err))
		return
	}
	writeJSON(w, s.Engine.Describe())
}

// GetDescribe handles the GET /describe request.
func (s *Server) GetDescribe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Describe())
}

// GetPalette handles the GET /palette request. The optional "match" query
// parameter is a page:line:column pattern where components may be "*".
func (s *Server) GetPalette(w http.ResponseWriter, r *http.Request) {
	pat := domain.PatternAll()
	if m := r.URL.Query().Get("match"); m != "" {
		var err error
		pat, err = domain.ParsePattern(m)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid match pattern: %v", err), http.StatusBadRequest)
			return
		}
	}

	entries, err := s.Engine.Entries(pat)
	if err != nil {
		http.Error(w, fmt.Sprintf("Query error: %v", err), statusFor(err))
		slog.Error("Query failed", "error", err)
		return
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	writeJSON(w, entries)
}

// GetExport handles the GET /export request, returning the palette document
// as YAML.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Engine.Document()
	if err != nil {
		http.Error(w, fmt.Sprintf("Export error: %v", err), statusFor(err))
		slog.Error("Export failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/yaml")
	if err := schema.EncodeYAML(w, doc); err != nil {
		slog.Error("Export encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	d := s.Engine.Describe()
	writeJSON(w, map[string]string{
		"app":     "ramp-http",
		"version": strings.TrimSpace(ramp.Version),
		"palette": d.Name,
		"policy":  d.Policy,
	})
}
