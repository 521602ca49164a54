package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sokoni-cloud/sokoni/internal/domain"
	healthuc "github.com/sokoni-cloud/sokoni/internal/usecase/health"
)

const defaultHistoryLimit = 20

// CatalogService manages listing lifecycle.
type CatalogService interface {
	Add(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// SearchService answers free-text catalog searches.
type SearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Product, error)
}

// RecommendService produces listing recommendations from query history.
type RecommendService interface {
	Recommend(ctx context.Context, userID string) ([]domain.Product, error)
}

// HistoryService records and reads per-user query history.
type HistoryService interface {
	Record(ctx context.Context, userID, query string) (domain.QueryHistoryEntry, error)
	Recent(ctx context.Context, userID string, n int) ([]domain.QueryHistoryEntry, error)
}

// HealthService aggregates component health checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface.
type Server struct {
	catalog       CatalogService
	search        SearchService
	recommend     RecommendService
	history       HistoryService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog CatalogService,
	search SearchService,
	recommend RecommendService,
	history HistoryService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:   catalog,
		search:    search,
		recommend: recommend,
		history:   history,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products", s.addProduct)
		r.Get("/products/{id}", s.getProduct)
		r.Put("/products/{id}", s.updateProduct)
		r.Delete("/products/{id}", s.deleteProduct)

		r.Post("/search", s.searchProducts)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/recommendations", s.recommendProducts)
			r.Get("/searches", s.listSearches)
			r.Post("/searches", s.recordSearch)
		})
	})

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsHandler)
}

// addProduct handles POST /api/v1/products.
func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.catalog.Add(r.Context(), req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+p.ID)
	writeJSON(w, http.StatusCreated, productToResponse(&p))
}

// getProduct handles GET /api/v1/products/{id}.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// updateProduct handles PUT /api/v1/products/{id}.
func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.catalog.Update(r.Context(), id, req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// deleteProduct handles DELETE /api/v1/products/{id}.
func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// searchProducts handles POST /api/v1/search. When user_id is supplied the
// query is recorded to that user's history before retrieval; a recording
// failure fails the whole request so history and results never diverge.
func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.UserID != "" {
		if _, err := s.history.Record(r.Context(), req.UserID, req.Keyword); err != nil {
			s.handleDomainError(w, err)
			return
		}
	}

	hits, err := s.search.Search(r.Context(), req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productsToList(hits))
}

// recommendProducts handles GET /api/v1/users/{userID}/recommendations.
func (s *Server) recommendProducts(w http.ResponseWriter, r *http.Request) {
	hits, err := s.recommend.Recommend(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productsToList(hits))
}

// listSearches handles GET /api/v1/users/{userID}/searches.
func (s *Server) listSearches(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]historyEntryResponse, len(entries))
	for i := range entries {
		items[i] = historyToResponse(&entries[i])
	}
	writeJSON(w, http.StatusOK, historyListResponse{Items: items, Total: len(items)})
}

// recordSearch handles POST /api/v1/users/{userID}/searches.
func (s *Server) recordSearch(w http.ResponseWriter, r *http.Request) {
	var req recordSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entry, err := s.history.Record(r.Context(), chi.URLParam(r, "userID"), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, historyToResponse(&entry))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// metricsHandler handles GET /metrics.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func productsToList(hits []domain.Product) productListResponse {
	items := make([]productResponse, len(hits))
	for i := range hits {
		items[i] = productToResponse(&hits[i])
	}
	return productListResponse{Items: items, Total: len(items)}
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
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrEmbeddingProvider,
		domain.ErrIndexUnavailable,
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
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
