// Package catalog provides the static product and vendor tables for the
// demo storefront, with an optional YAML override for custom catalogs.
package catalog

import (
	"marketcart/internal/model"
)

// Catalog is an immutable set of vendors and products with indexed
// lookups. Build one with Builtin or LoadFile at startup; it is
// read-only afterwards and safe for concurrent use.
type Catalog struct {
	vendors  []model.Vendor
	products []model.Product

	vendorBySlug map[string]model.Vendor
	vendorByID   map[string]model.Vendor
	productByID  map[string]model.Product
	byVendorID   map[string][]model.Product
}

func newCatalog(vendors []model.Vendor, products []model.Product) *Catalog {
	c := &Catalog{
		vendors:      vendors,
		products:     products,
		vendorBySlug: make(map[string]model.Vendor, len(vendors)),
		vendorByID:   make(map[string]model.Vendor, len(vendors)),
		productByID:  make(map[string]model.Product, len(products)),
		byVendorID:   make(map[string][]model.Product),
	}
	for _, v := range vendors {
		c.vendorBySlug[v.Slug] = v
		c.vendorByID[v.ID] = v
	}
	for _, p := range products {
		c.productByID[p.ID] = p
		c.byVendorID[p.VendorID] = append(c.byVendorID[p.VendorID], p)
	}
	return c
}

// Builtin returns the catalog with the built-in demo data: four vendors,
// three products each.
func Builtin() *Catalog {
	return newCatalog(builtinVendors, builtinProducts)
}

// Vendors returns all vendors in table order.
func (c *Catalog) Vendors() []model.Vendor {
	out := make([]model.Vendor, len(c.vendors))
	copy(out, c.vendors)
	return out
}

// Vendor looks a vendor up by slug.
func (c *Catalog) Vendor(slug string) (model.Vendor, bool) {
	v, ok := c.vendorBySlug[slug]
	return v, ok
}

// VendorByID looks a vendor up by ID.
func (c *Catalog) VendorByID(id string) (model.Vendor, bool) {
	v, ok := c.vendorByID[id]
	return v, ok
}

// Products returns all products in table order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks a product up by ID.
func (c *Catalog) Product(id string) (model.Product, bool) {
	p, ok := c.productByID[id]
	return p, ok
}

// ProductsByVendor returns a vendor's products in table order.
func (c *Catalog) ProductsByVendor(vendorID string) []model.Product {
	src := c.byVendorID[vendorID]
	out := make([]model.Product, len(src))
	copy(out, src)
	return out
}

// ProductsByVendorSlug returns a vendor's products by slug, or nil for an
// unknown vendor.
func (c *Catalog) ProductsByVendorSlug(slug string) []model.Product {
	v, ok := c.vendorBySlug[slug]
	if !ok {
		return nil
	}
	return c.ProductsByVendor(v.ID)
}
