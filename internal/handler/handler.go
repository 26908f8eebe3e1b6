// Package handler provides HTTP handlers for the storefront cart API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"marketcart/internal/cart"
	"marketcart/internal/catalog"
	"marketcart/internal/metrics"
	"marketcart/internal/model"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	registry *cart.Registry
	catalog  *catalog.Catalog
	metrics  *metrics.Registry
	logger   *slog.Logger
}

// New creates a new Handler with the given registry, catalog, metrics, and logger.
func New(registry *cart.Registry, cat *catalog.Catalog, m *metrics.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		catalog:  cat,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Discovery endpoint
	mux.HandleFunc("GET /.well-known/storefront", h.handleWellKnown)

	// Catalog
	mux.HandleFunc("GET /api/vendors", h.handleListVendors)
	mux.HandleFunc("GET /api/vendors/{vendor}", h.handleGetVendor)
	mux.HandleFunc("GET /api/vendors/{vendor}/products", h.handleVendorProducts)
	mux.HandleFunc("GET /api/products/{id}", h.handleGetProduct)

	// Cart operations, one cart per vendor
	mux.HandleFunc("GET /api/vendors/{vendor}/cart", h.handleGetCart)
	mux.HandleFunc("PUT /api/vendors/{vendor}/cart", h.handleReplaceCart)
	mux.HandleFunc("DELETE /api/vendors/{vendor}/cart", h.handleClearCart)
	mux.HandleFunc("POST /api/vendors/{vendor}/cart/items", h.handleAddItem)
	mux.HandleFunc("PUT /api/vendors/{vendor}/cart/items/{id}", h.handleUpdateQuantity)
	mux.HandleFunc("DELETE /api/vendors/{vendor}/cart/items/{id}", h.handleRemoveItem)
	mux.HandleFunc("POST /api/vendors/{vendor}/cart/discount", h.handleApplyDiscount)
	mux.HandleFunc("DELETE /api/vendors/{vendor}/cart/discount", h.handleRemoveDiscount)

	// Wishlist operations
	mux.HandleFunc("GET /api/vendors/{vendor}/wishlist", h.handleGetWishlist)
	mux.HandleFunc("DELETE /api/vendors/{vendor}/wishlist", h.handleClearWishlist)
	mux.HandleFunc("POST /api/vendors/{vendor}/wishlist/items", h.handleWishlistAdd)
	mux.HandleFunc("DELETE /api/vendors/{vendor}/wishlist/items/{id}", h.handleWishlistRemove)

	// Cross-vendor overview
	mux.HandleFunc("GET /api/marketplace/summary", h.handleMarketplaceSummary)

	// Coupon validation
	mux.HandleFunc("POST /api/coupons/validate", h.handleValidateCoupon)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Operational endpoints
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
// Uses errors.As() to unwrap error chains (e.g., fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v interface{}) error {
	// Limit request body size to prevent DoS
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// resultStatus maps a structured cart result code to an HTTP status.
// Expected business rejections are client errors, never 500s.
func resultStatus(code string) int {
	switch code {
	case model.CodeItemNotFound:
		return http.StatusNotFound
	case model.CodeMaxQuantity:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// countCartOp records a cart mutation outcome on the metrics registry.
func (h *Handler) countCartOp(op, errCode string) {
	if h.metrics == nil {
		return
	}
	result := "ok"
	if errCode != "" {
		result = errCode
	}
	h.metrics.CartOps.WithLabelValues(op, result).Inc()
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}
