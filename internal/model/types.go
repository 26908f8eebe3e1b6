// Package model defines data structures shared across the storefront cart service.
package model

import "time"

// DiscountType distinguishes how an applied discount is computed.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid reports whether the discount type is one of the known values.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Product is the catalog entry a cart line snapshots.
// Only ID, Name, Price and MaxQuantity matter to the cart core;
// the rest is display data carried through for API consumers.
type Product struct {
	ID          string   `json:"id"`
	VendorID    string   `json:"vendor_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"` // minor currency units (cents)
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	MaxQuantity int      `json:"max_quantity,omitempty"` // 0 = unbounded
	InStock     bool     `json:"in_stock"`
	Tags        []string `json:"tags,omitempty"`
}

// Vendor is one storefront in the marketplace. Each vendor gets its own
// cart and wishlist, persisted under vendor-scoped storage keys.
type Vendor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description,omitempty"`
	Logo         string  `json:"logo,omitempty"`
	Location     string  `json:"location,omitempty"`
	Currency     string  `json:"currency"`
	TaxRate      float64 `json:"tax_rate"`
	ShippingCost int64   `json:"shipping_cost"` // cents
}

// ItemOptions holds the variant selection for a cart line (size, color, ...).
// Entries with empty values are ignored for line identity.
type ItemOptions map[string]string

// LineItem is one entry in a cart. The ID is derived from the product ID
// and sorted options, so the same product in two variants occupies two lines.
type LineItem struct {
	ID        string      `json:"id"`
	Product   Product     `json:"product"`
	Quantity  int         `json:"quantity"`
	Options   ItemOptions `json:"options,omitempty"`
	AddedAt   time.Time   `json:"added_at"`
	LineTotal int64       `json:"line_total"` // Quantity × Product.Price, cents
}

// AppliedDiscount is the single active coupon on a cart.
// AppliedAmount is recomputed from the current subtotal whenever the
// summary is derived; it is never trusted across later mutations.
type AppliedDiscount struct {
	Code          string       `json:"code"`
	Type          DiscountType `json:"type"`
	Value         int64        `json:"value"` // percent for percentage, cents for fixed
	AppliedAmount int64        `json:"applied_amount"`
	Description   string       `json:"description,omitempty"`
}

// WishlistItem is a saved product. Wishlists have set semantics keyed by
// product ID only; variants are not distinguished.
type WishlistItem struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// Summary is the derived view of a cart. All monetary values are cents.
type Summary struct {
	ItemCount     int   `json:"item_count"`     // distinct lines
	TotalQuantity int   `json:"total_quantity"` // units across all lines
	Subtotal      int64 `json:"subtotal"`
	Discount      int64 `json:"discount"`
	Tax           int64 `json:"tax"`
	Shipping      int64 `json:"shipping"`
	Total         int64 `json:"total"`
}

// Cart operation error codes, reported via structured results rather than
// Go errors. Expected business conditions never surface as error values.
const (
	CodeInvalidProduct  = "INVALID_PRODUCT"
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeMaxQuantity     = "MAX_QUANTITY_EXCEEDED"
	CodeItemNotFound    = "ITEM_NOT_FOUND"
)

// AddItemResult reports the outcome of an add operation.
type AddItemResult struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"` // one of the Code* constants
	Message string    `json:"message,omitempty"`
	Item    *LineItem `json:"item,omitempty"`
}

// UpdateQuantityResult reports the outcome of a quantity update.
// A successful update that removed the line (quantity <= 0) has a nil Item.
type UpdateQuantityResult struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Item    *LineItem `json:"item,omitempty"`
}

// DiscountResult reports the outcome of a discount application.
// Error carries a user-facing message, not a stable code: the coupon
// service owns the failure wording.
type DiscountResult struct {
	Success  bool             `json:"success"`
	Discount *AppliedDiscount `json:"discount,omitempty"`
	Error    string           `json:"error,omitempty"`
}
