package handler

import (
	"net/http"

	"marketcart/internal/cart"
)

type marketplaceSummaryResponse struct {
	Vendors []cart.VendorSummary `json:"vendors"`

	// Aggregates across all vendor carts
	TotalQuantity int   `json:"total_quantity"`
	Subtotal      int64 `json:"subtotal"`
	WishlistCount int   `json:"wishlist_count"`
}

// handleMarketplaceSummary reports every vendor's cart and wishlist state
// plus cross-vendor aggregates. Vendors with corrupt stored state report
// as empty.
// GET /api/marketplace/summary
func (h *Handler) handleMarketplaceSummary(w http.ResponseWriter, r *http.Request) {
	summaries := h.registry.Summaries()

	resp := marketplaceSummaryResponse{Vendors: summaries}
	for _, s := range summaries {
		resp.TotalQuantity += s.TotalQuantity
		resp.Subtotal += s.Subtotal
		resp.WishlistCount += s.WishlistCount
	}

	h.writeJSON(w, http.StatusOK, resp)
}
