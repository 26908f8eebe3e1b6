package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"marketcart/internal/model"
)

// catalogFile is the YAML shape of a custom catalog file.
type catalogFile struct {
	Vendors  []vendorEntry  `yaml:"vendors"`
	Products []productEntry `yaml:"products"`
}

type vendorEntry struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Slug         string  `yaml:"slug"`
	Description  string  `yaml:"description"`
	Logo         string  `yaml:"logo"`
	Location     string  `yaml:"location"`
	Currency     string  `yaml:"currency"`
	TaxRate      float64 `yaml:"tax_rate"`
	ShippingCost int64   `yaml:"shipping_cost"`
}

type productEntry struct {
	ID          string   `yaml:"id"`
	VendorID    string   `yaml:"vendor_id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       int64    `yaml:"price"`
	Image       string   `yaml:"image"`
	Category    string   `yaml:"category"`
	SKU         string   `yaml:"sku"`
	MaxQuantity int      `yaml:"max_quantity"`
	InStock     bool     `yaml:"in_stock"`
	Tags        []string `yaml:"tags"`
}

// LoadFile reads a complete catalog from a YAML file, replacing the
// built-in tables. Every product must reference a declared vendor.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(file.Vendors) == 0 {
		return nil, fmt.Errorf("catalog %s declares no vendors", path)
	}

	vendors := make([]model.Vendor, 0, len(file.Vendors))
	vendorIDs := make(map[string]bool, len(file.Vendors))
	for i, v := range file.Vendors {
		if v.ID == "" || v.Slug == "" {
			return nil, fmt.Errorf("catalog %s: vendor %d missing id or slug", path, i)
		}
		if vendorIDs[v.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate vendor id %q", path, v.ID)
		}
		vendorIDs[v.ID] = true
		if v.Currency == "" {
			v.Currency = "USD"
		}
		vendors = append(vendors, model.Vendor(v))
	}

	products := make([]model.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog %s: product %d missing id or name", path, i)
		}
		if !vendorIDs[p.VendorID] {
			return nil, fmt.Errorf("catalog %s: product %q references unknown vendor %q", path, p.ID, p.VendorID)
		}
		products = append(products, model.Product(p))
	}

	return newCatalog(vendors, products), nil
}
