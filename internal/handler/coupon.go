package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"marketcart/internal/coupon"
	"marketcart/internal/model"
)

type validateCouponRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"` // cents
}

// couponFailure is the wire shape for rejected codes. A bare message, not
// the {"error":{...}} envelope: storefront clients surface it verbatim.
type couponFailure struct {
	Message string `json:"message"`
}

// handleValidateCoupon checks a coupon code against a subtotal.
// POST /api/coupons/validate
func (h *Handler) handleValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "validating coupon",
		slog.String("code", req.Code),
		slog.Int64("subtotal", req.Subtotal),
	)

	result, err := coupon.Validate(req.Code, req.Subtotal)
	if err != nil {
		if h.metrics != nil {
			h.metrics.CouponValidations.WithLabelValues("rejected").Inc()
		}
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			h.writeJSON(w, http.StatusBadRequest, couponFailure{Message: apiErr.Message})
			return
		}
		h.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CouponValidations.WithLabelValues("valid").Inc()
	}
	h.writeJSON(w, http.StatusOK, result)
}
