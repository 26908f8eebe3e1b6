package coupon

import (
	"context"

	"marketcart/internal/model"
)

// Mock implements the cart's Validator interface for testing.
// Configure behavior via the function field.
type Mock struct {
	ValidateFunc func(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error)
}

// Validate calls the configured ValidateFunc or falls back to the local
// code table.
func (m *Mock) Validate(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, code, subtotal)
	}
	return Local{}.Validate(ctx, code, subtotal)
}
