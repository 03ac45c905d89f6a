// Package api exposes the translation workflow over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"dialoq/internal/domain"
	"dialoq/internal/ports"
	"dialoq/internal/usecase/workflow"
)

// Workflow is the service surface the handlers call.
type Workflow interface {
	SeedFromSource(ctx context.Context, doc *domain.Document) (int, error)
	ApplyEdit(ctx context.Context, id, newTargetText string, status domain.Status) (*domain.Dialog, error)
	ListPending(ctx context.Context, limit uint64) ([]workflow.PendingDialog, error)
	Statistics(ctx context.Context) (workflow.Statistics, error)
	TranslateText(ctx context.Context, text, from, to string) (workflow.TranslateResult, error)
	ExportPatched(ctx context.Context, doc *domain.Document) (*domain.Document, error)
}

// ServerConfig holds configurable limits and defaults for the HTTP layer.
type ServerConfig struct {
	MaxRequestBody int64  // bytes, for JSON endpoints
	TranslateFrom  string // default source locale for /api/translate
	TranslateTo    string // default target locale for /api/translate
	ExportFilename string // attachment name for /api/downloadTranslate
}

// DefaultServerConfig returns reasonable defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		MaxRequestBody: 1 << 20, // 1MB
		TranslateFrom:  "en",
		TranslateTo:    "es",
		ExportFilename: "dialogs.json",
	}
}

// Handler creates the HTTP handler with all routes and middleware.
func Handler(wf Workflow, source ports.SourceLoader, cfg *ServerConfig, logger *slog.Logger) http.Handler {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{wf: wf, source: source, cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/loadData", s.handleLoadData)
	mux.HandleFunc("PUT /api/{id}", s.handleApplyEdit)
	mux.HandleFunc("GET /api/pending", s.handleListPending)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)
	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("GET /api/downloadTranslate", s.handleDownloadTranslate)

	return applyMiddleware(mux,
		recoveryMiddleware(logger),
		loggingMiddleware(logger),
		requestIDMiddleware,
		corsMiddleware,
	)
}

// applyMiddleware applies middleware in reverse order so the first in the list runs first.
func applyMiddleware(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type server struct {
	wf     Workflow
	source ports.SourceLoader
	cfg    *ServerConfig
	logger *slog.Logger
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *server) handleLoadData(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Load(r.Context())
	if err != nil {
		s.writeError(w, r, &domain.StoreError{Err: err})
		return
	}
	n, err := s.wf.SeedFromSource(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": n})
}

type applyEditRequest struct {
	TargetText string `json:"es-ES"`
	Status     string `json:"status"`
}

func (s *server) handleApplyEdit(w http.ResponseWriter, r *http.Request) {
	var req applyEditRequest
	if err := readJSON(r, s.cfg.MaxRequestBody, &req); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}
	d, err := s.wf.ApplyEdit(r.Context(), r.PathValue("id"), req.TargetText, domain.Status(req.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "dialog updated",
		"dialog":  d,
	})
}

func (s *server) handleListPending(w http.ResponseWriter, r *http.Request) {
	dialogs, err := s.wf.ListPending(r.Context(), workflow.DefaultPendingLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dialogs": dialogs,
		"count":   len(dialogs),
	})
}

func (s *server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.wf.Statistics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type translateRequest struct {
	Text string `json:"text"`
}

func (s *server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := readJSON(r, s.cfg.MaxRequestBody, &req); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}
	res, err := s.wf.TranslateText(r.Context(), req.Text, s.cfg.TranslateFrom, s.cfg.TranslateTo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleDownloadTranslate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Load(r.Context())
	if err != nil {
		s.writeError(w, r, &domain.StoreError{Err: err})
		return
	}
	patched, err := s.wf.ExportPatched(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := json.MarshalIndent(patched, "", "  ")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.ExportFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// writeError maps the domain error taxonomy to HTTP statuses. The
// underlying message is always included for diagnostics.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "internal_error"
	)
	var verr *domain.ValidationError
	var perr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.As(err, &verr):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.As(err, &perr):
		status, code = http.StatusBadGateway, "provider_error"
	}
	if status >= 500 {
		reqID, _ := r.Context().Value(contextKeyRequestID).(string)
		s.logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", reqID)
	}
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, maxBytes int64, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	defer body.Close()
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
