// Package chi exposes the product search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	productuc "github.com/kailas-cloud/prodsearch/internal/usecase/product"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "product_not_found"
	codeEmptyQuery       = "empty_query"
	codeIndexNotReady    = "index_not_ready"
	codeProviderError    = "embedding_provider_error"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the API handlers and their use case dependencies.
type Server struct {
	products      *productuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	products *productuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		products: products,
		search:   search,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidProduct, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, codeIndexNotReady),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes mounts all API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/product", s.AddProduct)
	r.Put("/api/v1/product/meta-data", s.UpdateProductMetadata)
	r.Get("/api/v1/search/product", s.SearchProducts)
	r.Post("/api/v1/index/refresh", s.RefreshIndex)
	r.Get("/products", s.ListProducts)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// AddProduct handles POST /api/v1/product.
func (s *Server) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.products.Add(r.Context(), req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addProductResponse{ProductID: id})
}

// UpdateProductMetadata handles PUT /api/v1/product/meta-data.
func (s *Server) UpdateProductMetadata(w http.ResponseWriter, r *http.Request) {
	var req updateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.products.UpdateMetadata(r.Context(), req.ProductID, req.Metadata)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToPayload(p))
}

// ListProducts handles GET /products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]productPayload, len(products))
	for i, p := range products {
		items[i] = productToPayload(p)
	}

	writeJSON(w, http.StatusOK, listProductsResponse{Items: items, Total: len(items)})
}

// SearchProducts handles GET /api/v1/search/product.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, codeEmptyQuery, domain.ErrEmptyQuery.Error())
		return
	}

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultItem{
			Product:   productToPayload(res.Product),
			Score:     res.Score,
			Breakdown: res.Breakdown,
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: items,
		Total:   len(items),
	})
}

// RefreshIndex handles POST /api/v1/index/refresh.
func (s *Server) RefreshIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.search.RefreshIndex(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrInvalidProduct,
		domain.ErrEmptyQuery,
		domain.ErrIndexNotReady,
		domain.ErrEmbeddingProviderError,
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

// --- Wire payloads ---

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productPayload struct {
	ProductID   int64             `json:"product_id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Stock       int               `json:"stock,omitempty"`
	Price       float64           `json:"price"`
	MRP         float64           `json:"mrp,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ProductID,
		Title:       p.Title,
		Description: p.Description,
		Rating:      p.Rating,
		Stock:       p.Stock,
		Price:       p.Price,
		MRP:         p.MRP,
		Currency:    p.Currency,
		Metadata:    p.Metadata,
	}
}

func productToPayload(p domain.Product) productPayload {
	return productPayload{
		ProductID:   p.ID,
		Title:       p.Title,
		Description: p.Description,
		Rating:      p.Rating,
		Stock:       p.Stock,
		Price:       p.Price,
		MRP:         p.MRP,
		Currency:    p.Currency,
		Metadata:    p.Metadata,
	}
}

type addProductResponse struct {
	ProductID int64 `json:"product_id"`
}

type updateMetadataRequest struct {
	ProductID int64             `json:"product_id"`
	Metadata  map[string]string `json:"metadata"`
}

type listProductsResponse struct {
	Items []productPayload `json:"items"`
	Total int              `json:"total"`
}

type searchResultItem struct {
	Product   productPayload        `json:"product"`
	Score     float64               `json:"score"`
	Breakdown domain.ScoreBreakdown `json:"breakdown"`
}

type searchResponse struct {
	Query   string             `json:"query"`
	Results []searchResultItem `json:"results"`
	Total   int                `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
