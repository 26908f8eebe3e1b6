package handler

import (
	"log/slog"
	"net/http"

	"marketcart/internal/cart"
	"marketcart/internal/model"
)

// cartResponse is the full cart view returned by read and mutation endpoints.
type cartResponse struct {
	Vendor   string                 `json:"vendor"`
	Currency string                 `json:"currency"`
	Items    []model.LineItem       `json:"items"`
	Discount *model.AppliedDiscount `json:"discount,omitempty"`
	Summary  model.Summary          `json:"summary"`
	Loading  bool                   `json:"loading,omitempty"`
}

func (h *Handler) cartView(slug string, c *cart.Cart) cartResponse {
	return cartResponse{
		Vendor:   slug,
		Currency: c.Currency(),
		Items:    c.Items(),
		Discount: c.Discount(),
		Summary:  c.Summary(),
		Loading:  c.IsLoading(),
	}
}

// vendorCart resolves the vendor's cart or writes a 404.
func (h *Handler) vendorCart(w http.ResponseWriter, r *http.Request) (*cart.Cart, string, bool) {
	slug := r.PathValue("vendor")
	c, err := h.registry.Cart(slug)
	if err != nil {
		h.writeError(w, err)
		return nil, "", false
	}
	return c, slug, true
}

// vendorProduct resolves a product and checks it belongs to the vendor.
func (h *Handler) vendorProduct(slug, productID string) (model.Product, error) {
	p, ok := h.catalog.Product(productID)
	if !ok {
		return model.Product{}, model.NewNotFoundError("product")
	}
	v, ok := h.registry.Vendor(slug)
	if !ok {
		return model.Product{}, model.NewNotFoundError("vendor")
	}
	if p.VendorID != v.ID {
		return model.Product{}, model.NewValidationError("product_id", "product belongs to a different vendor")
	}
	return p, nil
}

// handleGetCart returns the cart's items, discount, and derived summary.
// GET /api/vendors/{vendor}/cart
func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.cartView(slug, c))
}

type addItemRequest struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Options   model.ItemOptions `json:"options,omitempty"`
}

// addItemResponse carries the structured result plus the refreshed summary.
type addItemResponse struct {
	model.AddItemResult
	Summary model.Summary `json:"summary"`
}

// handleAddItem adds a product to the vendor's cart.
// POST /api/vendors/{vendor}/cart/items
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	product, err := h.vendorProduct(slug, req.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Quantity omitted means one unit
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	h.logger.InfoContext(ctx, "adding cart item",
		slog.String("vendor", slug),
		slog.String("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity),
	)

	result := c.AddItem(product, req.Quantity, req.Options)
	h.countCartOp("add_item", result.Error)

	status := http.StatusCreated
	if !result.Success {
		status = resultStatus(result.Error)
	}
	h.writeJSON(w, status, addItemResponse{
		AddItemResult: result,
		Summary:       c.Summary(),
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type updateQuantityResponse struct {
	model.UpdateQuantityResult
	Summary model.Summary `json:"summary"`
}

// handleUpdateQuantity sets the quantity of an existing line.
// Zero or negative removes the line.
// PUT /api/vendors/{vendor}/cart/items/{id}
func (h *Handler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	itemID := r.PathValue("id")

	h.logger.InfoContext(ctx, "updating cart quantity",
		slog.String("vendor", slug),
		slog.String("item_id", itemID),
		slog.Int("quantity", req.Quantity),
	)

	result := c.UpdateQuantity(itemID, req.Quantity)
	h.countCartOp("update_quantity", result.Error)

	status := http.StatusOK
	if !result.Success {
		status = resultStatus(result.Error)
	}
	h.writeJSON(w, status, updateQuantityResponse{
		UpdateQuantityResult: result,
		Summary:              c.Summary(),
	})
}

// handleRemoveItem removes a line from the cart. Removing an absent line
// is a no-op.
// DELETE /api/vendors/{vendor}/cart/items/{id}
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	itemID := r.PathValue("id")
	h.logger.InfoContext(r.Context(), "removing cart item",
		slog.String("vendor", slug),
		slog.String("item_id", itemID),
	)

	c.RemoveItem(itemID)
	h.countCartOp("remove_item", "")
	w.WriteHeader(http.StatusNoContent)
}

// handleClearCart empties the cart and drops any applied discount.
// DELETE /api/vendors/{vendor}/cart
func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "clearing cart", slog.String("vendor", slug))

	c.Clear()
	h.countCartOp("clear", "")
	w.WriteHeader(http.StatusNoContent)
}

type replaceCartRequest struct {
	Items []desiredLine `json:"items"`
}

type desiredLine struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Options   model.ItemOptions `json:"options,omitempty"`
}

type replaceCartResponse struct {
	Failures []model.AddItemResult `json:"failures,omitempty"`
	Cart     cartResponse          `json:"cart"`
}

// handleReplaceCart reconciles the cart to the requested full state.
// Lines not listed are removed, listed lines are added or adjusted.
// Per-line rejections are reported in the failures array; the rest of the
// request still applies.
// PUT /api/vendors/{vendor}/cart
func (h *Handler) handleReplaceCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	var req replaceCartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	desired := make([]cart.DesiredLine, 0, len(req.Items))
	for _, line := range req.Items {
		desired = append(desired, cart.DesiredLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Options:   line.Options,
		})
	}

	h.logger.InfoContext(ctx, "reconciling cart",
		slog.String("vendor", slug),
		slog.Int("desired_lines", len(desired)),
	)

	v, _ := h.registry.Vendor(slug)
	failures := c.Reconcile(desired, func(productID string) (model.Product, bool) {
		p, ok := h.catalog.Product(productID)
		if !ok || p.VendorID != v.ID {
			return model.Product{}, false
		}
		return p, true
	})
	h.countCartOp("reconcile", "")

	h.writeJSON(w, http.StatusOK, replaceCartResponse{
		Failures: failures,
		Cart:     h.cartView(slug, c),
	})
}

type discountRequest struct {
	Code string `json:"code"`
}

type discountResponse struct {
	model.DiscountResult
	Summary model.Summary `json:"summary"`
}

// handleApplyDiscount validates a coupon code against the cart subtotal
// and applies it on success. At most one discount is active; a newer code
// replaces the previous one.
// POST /api/vendors/{vendor}/cart/discount
func (h *Handler) handleApplyDiscount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	var req discountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "applying discount",
		slog.String("vendor", slug),
		slog.String("code", req.Code),
	)

	result := c.ApplyDiscount(ctx, req.Code)
	if h.metrics != nil {
		outcome := "valid"
		if !result.Success {
			outcome = "rejected"
		}
		h.metrics.CouponValidations.WithLabelValues(outcome).Inc()
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	h.writeJSON(w, status, discountResponse{
		DiscountResult: result,
		Summary:        c.Summary(),
	})
}

// handleRemoveDiscount drops the applied discount, if any.
// DELETE /api/vendors/{vendor}/cart/discount
func (h *Handler) handleRemoveDiscount(w http.ResponseWriter, r *http.Request) {
	c, slug, ok := h.vendorCart(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "removing discount", slog.String("vendor", slug))

	c.RemoveDiscount()
	w.WriteHeader(http.StatusNoContent)
}
