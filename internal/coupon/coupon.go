// Package coupon implements discount-code validation: the fixed demo code
// table, the validation rules, and an HTTP client for carts validating
// against a remote endpoint.
package coupon

import (
	"context"
	"strings"

	"marketcart/internal/model"
)

// Code is one discount code definition.
type Code struct {
	Type        model.DiscountType
	Value       int64 // percent for percentage, cents for fixed
	MinOrder    int64 // cents; 0 = no minimum
	Description string
}

// Result is a successful validation: the wire shape of the coupon
// endpoint's 200 response.
type Result struct {
	Code          string             `json:"code"`
	Type          model.DiscountType `json:"type"`
	Value         int64              `json:"value"`
	AppliedAmount int64              `json:"appliedAmount"`
	Description   string             `json:"description,omitempty"`
}

// Codes are the fixed demo discount codes. A real deployment would load
// these from a database.
var Codes = map[string]Code{
	"SAVE10": {
		Type:        model.DiscountPercentage,
		Value:       10,
		Description: "10% off your order",
	},
	"SAVE20": {
		Type:        model.DiscountPercentage,
		Value:       20,
		MinOrder:    5000, // $50 minimum
		Description: "20% off orders over $50",
	},
	"FLAT5": {
		Type:        model.DiscountFixed,
		Value:       500, // $5 off
		Description: "$5 off your order",
	},
	"WELCOME": {
		Type:        model.DiscountPercentage,
		Value:       15,
		Description: "15% off for new customers",
	},
	"FREESHIP": {
		Type:        model.DiscountFixed,
		Value:       599, // Covers standard shipping
		Description: "Free shipping ($5.99 value)",
	},
}

// Validate checks a code against the table and the order subtotal.
// Rejections are *model.APIError values wrapping model.ErrCouponRejected,
// carrying the user-facing message.
func Validate(code string, subtotal int64) (*Result, error) {
	if strings.TrimSpace(code) == "" {
		return nil, model.NewCouponError("Please enter a discount code")
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	c, ok := Codes[normalized]
	if !ok {
		return nil, model.NewCouponError("Invalid discount code. Try: " + codeSuggestions())
	}

	if c.MinOrder > 0 && subtotal < c.MinOrder {
		return nil, model.NewCouponError(
			"This code requires a minimum order of " + model.FormatCents(c.MinOrder))
	}

	var applied int64
	if c.Type == model.DiscountPercentage {
		applied = model.RoundCents(float64(subtotal) * float64(c.Value) / 100)
	} else {
		applied = c.Value
		if subtotal < applied {
			applied = subtotal
		}
	}

	return &Result{
		Code:          normalized,
		Type:          c.Type,
		Value:         c.Value,
		AppliedAmount: applied,
		Description:   c.Description,
	}, nil
}

// Local validates codes against the in-process table, skipping the HTTP
// round trip when the coupon endpoint is served by this same binary.
// It implements the cart's Validator interface.
type Local struct{}

func (Local) Validate(_ context.Context, code string, subtotal int64) (*model.AppliedDiscount, error) {
	result, err := Validate(code, subtotal)
	if err != nil {
		return nil, err
	}
	return &model.AppliedDiscount{
		Code:          result.Code,
		Type:          result.Type,
		Value:         result.Value,
		AppliedAmount: result.AppliedAmount,
		Description:   result.Description,
	}, nil
}

// codeOrder fixes the enumeration order for suggestion messages; map
// iteration order would make the message nondeterministic.
var codeOrder = []string{"SAVE10", "SAVE20", "FLAT5", "WELCOME", "FREESHIP"}

// codeSuggestions enumerates the valid codes for the unknown-code
// message: "SAVE10, SAVE20, FLAT5, WELCOME, or FREESHIP".
func codeSuggestions() string {
	names := make([]string, 0, len(Codes))
	for _, name := range codeOrder {
		if _, ok := Codes[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
