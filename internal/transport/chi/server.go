// Package chi exposes the retrieval pipeline over a JSON HTTP API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragdex/internal/domain"
	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
	"github.com/kailas-cloud/ragdex/internal/usecase/pipeline"
)

// maxDocumentBytes bounds an uploaded document body.
const maxDocumentBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the pipeline operations over HTTP.
type Server struct {
	pipeline      *pipeline.Service
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// HealthChecker reports readiness of the embedding provider. A nil checker
// means keyword-only mode, which is always healthy.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewServer creates an HTTP API server.
func NewServer(p *pipeline.Service, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		pipeline: p,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
	}
	return s
}

// Routes registers the API handlers on a router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/query", s.Query)
	r.Post("/v1/documents", s.AddDocument)
	r.Get("/v1/stats", s.Stats)
	r.Post("/v1/reset", s.Reset)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type queryRequest struct {
	Query string `json:"query"`
}

type resultItem struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Method  string  `json:"method"`
}

type queryResponse struct {
	Query     string       `json:"query"`
	Variants  []string     `json:"variants"`
	Retrieved []resultItem `json:"retrieved"`
	Reranked  []resultItem `json:"reranked"`
	Context   string       `json:"context"`
	Stats     queryStats   `json:"stats"`
}

type queryStats struct {
	Documents     int     `json:"documents"`
	Chunks        int     `json:"chunks"`
	ElapsedMs     float64 `json:"elapsed_ms"`
	EmbeddingMode string  `json:"embedding_mode"`
	TopScore      float64 `json:"top_score"`
}

// Query handles POST /v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is required")
		return
	}

	res, err := s.pipeline.Query(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Query:     res.Query,
		Variants:  res.Variants,
		Retrieved: resultsToItems(res.Retrieved),
		Reranked:  resultsToItems(res.Reranked),
		Context:   res.ContextBlock,
		Stats: queryStats{
			Documents:     res.Stats.Documents,
			Chunks:        res.Stats.Chunks,
			ElapsedMs:     float64(res.Stats.Elapsed) / float64(time.Millisecond),
			EmbeddingMode: res.Stats.EmbeddingMode,
			TopScore:      res.Stats.TopScore,
		},
	})
}

type addDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type addDocumentResponse struct {
	Title       string `json:"title"`
	ChunksAdded int    `json:"chunks_added"`
	TotalChunks int    `json:"total_chunks"`
}

// AddDocument handles POST /v1/documents.
func (s *Server) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req addDocumentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Title is required")
		return
	}

	added, err := s.pipeline.AddDocument(r.Context(), req.Title, req.Content)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addDocumentResponse{
		Title:       req.Title,
		ChunksAdded: added,
		TotalChunks: s.pipeline.Stats().Chunks,
	})
}

// Stats handles GET /v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipeline.Stats())
}

// Reset handles POST /v1/reset. The next query re-ingests the built-in corpus.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.pipeline.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"pipeline": "ok"}
	status := http.StatusOK

	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("embedding health check failed", zap.Error(err))
			checks["embedding"] = "degraded"
		} else {
			checks["embedding"] = "ok"
		}
	} else {
		checks["embedding"] = "keyword_only"
	}

	writeJSON(w, status, map[string]any{
		"status": "ok",
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultsToItems(results []result.Result) []resultItem {
	items := make([]resultItem, len(results))
	for i, r := range results {
		ck := r.Chunk()
		items[i] = resultItem{
			ID:      r.ID(),
			Source:  ck.Source(),
			Content: ck.Content(),
			Score:   r.Score(),
			Method:  string(r.Method()),
		}
	}
	return items
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmbeddingProviderError,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "request canceled")
		return
	}
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
