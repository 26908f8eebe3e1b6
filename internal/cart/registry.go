package cart

import (
	"log/slog"
	"sort"
	"sync"

	"marketcart/internal/model"
	"marketcart/internal/storage"
	"marketcart/internal/wishlist"
)

// Registry owns one cart and one wishlist per vendor, persisted under
// vendor-scoped storage keys ("{vendorID}-cart" / "{vendorID}-wishlist").
// It is the explicit dependency handed to the HTTP layer; nothing here is
// a package-level singleton.
type Registry struct {
	mu        sync.Mutex
	vendors   map[string]model.Vendor // by slug
	carts     map[string]*Cart
	wishlists map[string]*wishlist.Wishlist

	store          storage.Store
	validator      Validator
	threshold      int64
	onPersistError func(error)
	logger         *slog.Logger
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Vendors []model.Vendor
	Store   storage.Store // nil disables persistence

	// Validator is handed to every cart for discount application.
	Validator Validator

	// FreeShippingThreshold applies to every vendor (default 5000).
	FreeShippingThreshold int64

	// OnPersistError is passed through to carts.
	OnPersistError func(error)

	Logger *slog.Logger
}

// VendorSummary reports one vendor's saved state for the marketplace
// overview page.
type VendorSummary struct {
	Vendor        model.Vendor `json:"vendor"`
	ItemCount     int          `json:"item_count"`
	TotalQuantity int          `json:"total_quantity"`
	Subtotal      int64        `json:"subtotal"`
	WishlistCount int          `json:"wishlist_count"`
}

// NewRegistry builds a registry for the given vendors. Carts and
// wishlists are created lazily on first access, loading any persisted
// state at that point.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.FreeShippingThreshold == 0 {
		cfg.FreeShippingThreshold = DefaultFreeShippingThreshold
	}
	r := &Registry{
		vendors:        make(map[string]model.Vendor, len(cfg.Vendors)),
		carts:          make(map[string]*Cart),
		wishlists:      make(map[string]*wishlist.Wishlist),
		store:          cfg.Store,
		validator:      cfg.Validator,
		threshold:      cfg.FreeShippingThreshold,
		onPersistError: cfg.OnPersistError,
		logger:         cfg.Logger,
	}
	for _, v := range cfg.Vendors {
		r.vendors[v.Slug] = v
	}
	return r
}

// Vendor returns the vendor for a slug.
func (r *Registry) Vendor(slug string) (model.Vendor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[slug]
	return v, ok
}

// Vendors returns all vendors in no particular order.
func (r *Registry) Vendors() []model.Vendor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, v)
	}
	return out
}

// Cart returns the vendor's cart, creating it on first access. Asking
// for an unknown vendor slug is a caller contract violation and returns
// model.ErrNotFound.
func (r *Registry) Cart(slug string) (*Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vendors[slug]
	if !ok {
		return nil, model.NewNotFoundError("vendor")
	}
	if c, ok := r.carts[slug]; ok {
		return c, nil
	}

	c := New(Config{
		StorageKey: v.ID + "-cart",
		Currency:   v.Currency,
		Pricing: Pricing{
			TaxRate:               v.TaxRate,
			FreeShippingThreshold: r.threshold,
			ShippingCost:          v.ShippingCost,
		},
		Validator:      r.validator,
		Store:          r.store,
		OnPersistError: r.onPersistError,
		Logger:         r.logger.With(slog.String("vendor", v.ID)),
	})
	r.carts[slug] = c
	return c, nil
}

// Wishlist returns the vendor's wishlist, creating it on first access.
func (r *Registry) Wishlist(slug string) (*wishlist.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vendors[slug]
	if !ok {
		return nil, model.NewNotFoundError("vendor")
	}
	if w, ok := r.wishlists[slug]; ok {
		return w, nil
	}

	w := wishlist.New(wishlist.Config{
		StorageKey: v.ID + "-wishlist",
		Store:      r.store,
		Logger:     r.logger.With(slog.String("vendor", v.ID)),
	})
	r.wishlists[slug] = w
	return w, nil
}

// Summaries reports every vendor's cart and wishlist state. Vendors with
// corrupt stored blobs report as empty rather than failing the overview.
func (r *Registry) Summaries() []VendorSummary {
	r.mu.Lock()
	slugs := make([]string, 0, len(r.vendors))
	for slug := range r.vendors {
		slugs = append(slugs, slug)
	}
	r.mu.Unlock()
	sort.Strings(slugs)

	out := make([]VendorSummary, 0, len(slugs))
	for _, slug := range slugs {
		c, err := r.Cart(slug)
		if err != nil {
			continue
		}
		w, err := r.Wishlist(slug)
		if err != nil {
			continue
		}
		v, _ := r.Vendor(slug)
		sum := c.Summary()
		out = append(out, VendorSummary{
			Vendor:        v,
			ItemCount:     sum.ItemCount,
			TotalQuantity: sum.TotalQuantity,
			Subtotal:      sum.Subtotal,
			WishlistCount: w.Count(),
		})
	}
	return out
}

// Flush waits for all outstanding persistence writes. Called on shutdown.
func (r *Registry) Flush() {
	r.mu.Lock()
	carts := make([]*Cart, 0, len(r.carts))
	for _, c := range r.carts {
		carts = append(carts, c)
	}
	wishlists := make([]*wishlist.Wishlist, 0, len(r.wishlists))
	for _, w := range r.wishlists {
		wishlists = append(wishlists, w)
	}
	r.mu.Unlock()

	for _, c := range carts {
		c.Flush()
	}
	for _, w := range wishlists {
		w.Flush()
	}
}
