package cart

import "marketcart/internal/model"

// Pricing defaults, matching the storefront's standard configuration.
const (
	DefaultTaxRate               = 0.08
	DefaultFreeShippingThreshold = 5000 // cents
	DefaultShippingCost          = 599  // cents
)

// ShippingFunc computes shipping from the discounted subtotal and the
// number of distinct lines. When configured, its result is used
// unconditionally, bypassing the free-shipping threshold.
type ShippingFunc func(afterDiscount int64, itemCount int) int64

// Pricing holds the rates used to derive a cart summary.
type Pricing struct {
	TaxRate               float64
	FreeShippingThreshold int64
	ShippingCost          int64
	ShippingFunc          ShippingFunc
}

// withDefaults fills zero-valued fields. A genuinely free-shipping vendor
// sets ShippingFunc rather than a zero ShippingCost.
func (p Pricing) withDefaults() Pricing {
	if p.TaxRate == 0 {
		p.TaxRate = DefaultTaxRate
	}
	if p.FreeShippingThreshold == 0 {
		p.FreeShippingThreshold = DefaultFreeShippingThreshold
	}
	if p.ShippingCost == 0 {
		p.ShippingCost = DefaultShippingCost
	}
	return p
}

// discountAmount computes the cents discounted from subtotal.
// Fixed discounts never exceed the subtotal; percentage discounts round
// half away from zero (the service-wide rounding rule).
func discountAmount(d *model.AppliedDiscount, subtotal int64) int64 {
	if d == nil {
		return 0
	}
	if d.Type == model.DiscountFixed {
		if d.Value < subtotal {
			return d.Value
		}
		return subtotal
	}
	return model.RoundCents(float64(subtotal) * float64(d.Value) / 100)
}

// Summarize derives the complete summary for a set of lines and an
// optional discount. Pure: same inputs always produce the same summary.
func Summarize(lines []model.LineItem, discount *model.AppliedDiscount, p Pricing) model.Summary {
	var subtotal int64
	var totalQty int
	for _, l := range lines {
		subtotal += l.LineTotal
		totalQty += l.Quantity
	}

	disc := discountAmount(discount, subtotal)
	afterDiscount := subtotal - disc
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	var shipping int64
	if p.ShippingFunc != nil {
		shipping = p.ShippingFunc(afterDiscount, len(lines))
	} else if afterDiscount < p.FreeShippingThreshold {
		shipping = p.ShippingCost
	}

	tax := model.RoundCents(float64(afterDiscount) * p.TaxRate)

	return model.Summary{
		ItemCount:     len(lines),
		TotalQuantity: totalQty,
		Subtotal:      subtotal,
		Discount:      disc,
		Tax:           tax,
		Shipping:      shipping,
		Total:         afterDiscount + shipping + tax,
	}
}
