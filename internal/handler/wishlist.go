package handler

import (
	"log/slog"
	"net/http"

	"marketcart/internal/model"
	"marketcart/internal/wishlist"
)

// wishlistResponse is the wishlist view returned by read and mutation
// endpoints.
type wishlistResponse struct {
	Vendor string               `json:"vendor"`
	Items  []model.WishlistItem `json:"items"`
	Count  int                  `json:"count"`
}

func (h *Handler) wishlistView(slug string, w *wishlist.Wishlist) wishlistResponse {
	return wishlistResponse{
		Vendor: slug,
		Items:  w.Items(),
		Count:  w.Count(),
	}
}

// vendorWishlist resolves the vendor's wishlist or writes a 404.
func (h *Handler) vendorWishlist(w http.ResponseWriter, r *http.Request) (*wishlist.Wishlist, string, bool) {
	slug := r.PathValue("vendor")
	wl, err := h.registry.Wishlist(slug)
	if err != nil {
		h.writeError(w, err)
		return nil, "", false
	}
	return wl, slug, true
}

// handleGetWishlist returns the vendor's saved products.
// GET /api/vendors/{vendor}/wishlist
func (h *Handler) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	wl, slug, ok := h.vendorWishlist(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.wishlistView(slug, wl))
}

type wishlistAddRequest struct {
	ProductID string `json:"product_id"`

	// Toggle removes the product when already saved instead of no-opping.
	Toggle bool `json:"toggle,omitempty"`
}

type wishlistAddResponse struct {
	Saved bool `json:"saved"`
	wishlistResponse
}

// handleWishlistAdd saves a product to the wishlist. With toggle set, an
// already-saved product is removed instead. Saving twice is otherwise a
// no-op.
// POST /api/vendors/{vendor}/wishlist/items
func (h *Handler) handleWishlistAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wl, slug, ok := h.vendorWishlist(w, r)
	if !ok {
		return
	}

	var req wishlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	product, err := h.vendorProduct(slug, req.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "saving wishlist item",
		slog.String("vendor", slug),
		slog.String("product_id", req.ProductID),
		slog.Bool("toggle", req.Toggle),
	)

	saved := true
	status := http.StatusCreated
	if req.Toggle {
		saved = wl.Toggle(product)
		status = http.StatusOK
	} else {
		wl.Add(product)
	}

	h.writeJSON(w, status, wishlistAddResponse{
		Saved:            saved,
		wishlistResponse: h.wishlistView(slug, wl),
	})
}

// handleWishlistRemove removes a product from the wishlist. Removing an
// absent product is a no-op.
// DELETE /api/vendors/{vendor}/wishlist/items/{id}
func (h *Handler) handleWishlistRemove(w http.ResponseWriter, r *http.Request) {
	wl, slug, ok := h.vendorWishlist(w, r)
	if !ok {
		return
	}

	productID := r.PathValue("id")
	h.logger.InfoContext(r.Context(), "removing wishlist item",
		slog.String("vendor", slug),
		slog.String("product_id", productID),
	)

	wl.Remove(productID)
	w.WriteHeader(http.StatusNoContent)
}

// handleClearWishlist empties the wishlist.
// DELETE /api/vendors/{vendor}/wishlist
func (h *Handler) handleClearWishlist(w http.ResponseWriter, r *http.Request) {
	wl, slug, ok := h.vendorWishlist(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "clearing wishlist", slog.String("vendor", slug))

	wl.Clear()
	w.WriteHeader(http.StatusNoContent)
}
