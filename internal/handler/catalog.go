package handler

import (
	"net/http"

	"marketcart/internal/model"
)

// handleListVendors returns every vendor in the marketplace.
// GET /api/vendors
func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, vendorsResponse{Vendors: h.catalog.Vendors()})
}

type vendorsResponse struct {
	Vendors []model.Vendor `json:"vendors"`
}

// handleGetVendor returns one vendor by slug.
// GET /api/vendors/{vendor}
func (h *Handler) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("vendor")
	v, ok := h.catalog.Vendor(slug)
	if !ok {
		h.writeError(w, model.NewNotFoundError("vendor"))
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// handleVendorProducts returns the vendor's product listing.
// GET /api/vendors/{vendor}/products
func (h *Handler) handleVendorProducts(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("vendor")
	if _, ok := h.catalog.Vendor(slug); !ok {
		h.writeError(w, model.NewNotFoundError("vendor"))
		return
	}
	h.writeJSON(w, http.StatusOK, productsResponse{
		Products: h.catalog.ProductsByVendorSlug(slug),
	})
}

type productsResponse struct {
	Products []model.Product `json:"products"`
}

// handleGetProduct returns one product by ID.
// GET /api/products/{id}
func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.Product(r.PathValue("id"))
	if !ok {
		h.writeError(w, model.NewNotFoundError("product"))
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}
