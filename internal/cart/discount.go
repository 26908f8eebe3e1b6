package cart

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"marketcart/internal/model"
)

// User-facing discount messages. The coupon service owns rejection
// wording; these cover the paths that never reach it.
const (
	msgEmptyCode     = "Please enter a discount code"
	msgInvalidCode   = "Invalid discount code"
	msgValidateRetry = "Unable to validate discount code. Please try again."
)

// Validator checks a discount code against the current subtotal.
// A rejection surfaces as an error wrapping model.ErrCouponRejected whose
// APIError message is user-facing; any other error is a transport or
// decode failure and must not be shown verbatim.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error)

func (f ValidatorFunc) Validate(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error) {
	return f(ctx, code, subtotal)
}

// ApplyDiscount validates a code with the configured Validator and, on
// success, stores it as the cart's single applied discount.
//
// This is the only suspending operation on the cart. Each call takes a
// monotonic sequence number; when calls overlap, only the most recently
// issued one may commit its outcome or clear the loading flag, so a slow
// stale response can never overwrite a newer one. The loading flag is
// released on every exit path, including validator panics, via defer.
func (c *Cart) ApplyDiscount(ctx context.Context, code string) model.DiscountResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.DiscountResult{Error: msgEmptyCode}
	}
	if c.cfg.Validator == nil {
		return model.DiscountResult{Error: msgValidateRetry}
	}

	c.mu.Lock()
	c.validateSeq++
	seq := c.validateSeq
	c.loading = true
	subtotal := c.subtotalLocked()
	c.mu.Unlock()

	defer c.settleValidation(seq)

	discount, err := c.cfg.Validator.Validate(ctx, strings.ToUpper(code), subtotal)
	if err != nil {
		if errors.Is(err, model.ErrCouponRejected) {
			return model.DiscountResult{Error: rejectionMessage(err)}
		}
		c.cfg.Logger.Error("discount validation failed",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
		return model.DiscountResult{Error: msgValidateRetry}
	}
	if discount == nil || !discount.Type.Valid() {
		return model.DiscountResult{Error: msgValidateRetry}
	}

	c.mu.Lock()
	if seq != c.validateSeq {
		// A newer validation was issued while this one was in flight;
		// its outcome wins. Report the stale result without committing.
		c.mu.Unlock()
		return model.DiscountResult{Success: true, Discount: discount}
	}
	d := *discount
	c.discount = &d
	c.persistLocked()
	c.mu.Unlock()
	c.notify()

	return model.DiscountResult{Success: true, Discount: discount}
}

// RemoveDiscount clears the applied discount. Synchronous, no network.
func (c *Cart) RemoveDiscount() {
	c.mu.Lock()
	c.discount = nil
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
}

// settleValidation clears the loading flag unless a later validation is
// still in flight.
func (c *Cart) settleValidation(seq uint64) {
	c.mu.Lock()
	if seq == c.validateSeq {
		c.loading = false
	}
	c.mu.Unlock()
}

// rejectionMessage extracts the service's user-facing message from a
// coupon rejection, falling back to a generic one.
func rejectionMessage(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgInvalidCode
}
