package catalog

import "marketcart/internal/model"

// Built-in demo data. In a real deployment these come from a product
// service or database; the demo ships a fixed marketplace.

var builtinVendors = []model.Vendor{
	{
		ID:           "vendor-1",
		Name:         "TechGear Pro",
		Slug:         "techgear-pro",
		Description:  "Premium electronics and gadgets for tech enthusiasts",
		Logo:         "headphones",
		Location:     "San Francisco, CA",
		Currency:     "USD",
		TaxRate:      0.0875,
		ShippingCost: 799,
	},
	{
		ID:           "vendor-2",
		Name:         "Artisan Crafts Co",
		Slug:         "artisan-crafts",
		Description:  "Handmade artisanal products with care and quality",
		Logo:         "palette",
		Location:     "Portland, OR",
		Currency:     "USD",
		TaxRate:      0.08,
		ShippingCost: 599,
	},
	{
		ID:           "vendor-3",
		Name:         "FitLife Essentials",
		Slug:         "fitlife-essentials",
		Description:  "Health, fitness, and wellness products for active lifestyles",
		Logo:         "zap",
		Location:     "Austin, TX",
		Currency:     "USD",
		TaxRate:      0.0825,
		ShippingCost: 499,
	},
	{
		ID:           "vendor-4",
		Name:         "HomeStyle Living",
		Slug:         "homestyle-living",
		Description:  "Modern home decor and lifestyle accessories",
		Logo:         "home",
		Location:     "Seattle, WA",
		Currency:     "USD",
		TaxRate:      0.101,
		ShippingCost: 699,
	},
}

var builtinProducts = []model.Product{
	// TechGear Pro
	{
		ID:          "prod-1",
		VendorID:    "vendor-1",
		Name:        "Wireless Noise-Canceling Headphones",
		Description: "Premium over-ear headphones with active noise cancellation and 30-hour battery life",
		Price:       29999, // $299.99
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=80",
		Category:    "Audio",
		SKU:         "TGP-WH-001",
		MaxQuantity: 10,
		InStock:     true,
		Tags:        []string{"electronics", "audio", "wireless", "premium"},
	},
	{
		ID:          "prod-2",
		VendorID:    "vendor-1",
		Name:        "Smart Watch Pro",
		Description: "Fitness tracking smartwatch with heart rate monitor and GPS",
		Price:       39999, // $399.99
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&q=80",
		Category:    "Wearables",
		SKU:         "TGP-SW-002",
		MaxQuantity: 15,
		InStock:     true,
		Tags:        []string{"electronics", "wearables", "fitness", "smart"},
	},
	{
		ID:          "prod-3",
		VendorID:    "vendor-1",
		Name:        "Portable Bluetooth Speaker",
		Description: "Waterproof speaker with 360-degree sound and 12-hour playtime",
		Price:       7999, // $79.99
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&q=80",
		Category:    "Audio",
		SKU:         "TGP-SP-003",
		MaxQuantity: 20,
		InStock:     true,
		Tags:        []string{"electronics", "audio", "portable", "waterproof"},
	},

	// Artisan Crafts Co
	{
		ID:          "prod-4",
		VendorID:    "vendor-2",
		Name:        "Handwoven Ceramic Mug Set",
		Description: "Set of 4 artisan-crafted ceramic mugs with unique glaze patterns",
		Price:       5999, // $59.99
		Image:       "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=500&q=80",
		Category:    "Kitchenware",
		SKU:         "ACC-MUG-004",
		MaxQuantity: 8,
		InStock:     true,
		Tags:        []string{"handmade", "ceramic", "kitchenware", "artisan"},
	},
	{
		ID:          "prod-5",
		VendorID:    "vendor-2",
		Name:        "Macrame Wall Hanging",
		Description: "Bohemian-style macrame wall art, handcrafted with natural cotton",
		Price:       8999, // $89.99
		Image:       "https://images.unsplash.com/photo-1595815771614-fbd07c51b4fb?w=500&q=80",
		Category:    "Home Decor",
		SKU:         "ACC-MAC-005",
		MaxQuantity: 5,
		InStock:     true,
		Tags:        []string{"handmade", "decor", "bohemian", "wall-art"},
	},
	{
		ID:          "prod-6",
		VendorID:    "vendor-2",
		Name:        "Leather Journal with Brass Clasp",
		Description: "Genuine leather-bound journal with hand-stitched binding and brass closure",
		Price:       4999, // $49.99
		Image:       "https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=500&q=80",
		Category:    "Stationery",
		SKU:         "ACC-JRN-006",
		MaxQuantity: 12,
		InStock:     true,
		Tags:        []string{"handmade", "leather", "journal", "stationery"},
	},

	// FitLife Essentials
	{
		ID:          "prod-7",
		VendorID:    "vendor-3",
		Name:        "Premium Yoga Mat",
		Description: "Eco-friendly TPE yoga mat with alignment marks and carrying strap",
		Price:       6999, // $69.99
		Image:       "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500&q=80",
		Category:    "Fitness",
		SKU:         "FLE-YGA-007",
		MaxQuantity: 25,
		InStock:     true,
		Tags:        []string{"fitness", "yoga", "eco-friendly", "exercise"},
	},
	{
		ID:          "prod-8",
		VendorID:    "vendor-3",
		Name:        "Resistance Bands Set",
		Description: "Set of 5 resistance bands with different tension levels and door anchor",
		Price:       2999, // $29.99
		Image:       "https://images.unsplash.com/photo-1598289431512-b97b0917affc?w=500&q=80",
		Category:    "Fitness",
		SKU:         "FLE-RES-008",
		MaxQuantity: 30,
		InStock:     true,
		Tags:        []string{"fitness", "resistance", "exercise", "portable"},
	},
	{
		ID:          "prod-9",
		VendorID:    "vendor-3",
		Name:        "Stainless Steel Water Bottle",
		Description: "32oz insulated water bottle keeps drinks cold for 24 hours",
		Price:       3499, // $34.99
		Image:       "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=500&q=80",
		Category:    "Hydration",
		SKU:         "FLE-BTL-009",
		MaxQuantity: 40,
		InStock:     true,
		Tags:        []string{"fitness", "hydration", "insulated", "eco-friendly"},
	},

	// HomeStyle Living
	{
		ID:          "prod-10",
		VendorID:    "vendor-4",
		Name:        "Scented Candle Collection",
		Description: "Set of 3 soy wax candles with essential oils in modern concrete vessels",
		Price:       4499, // $44.99
		Image:       "https://images.unsplash.com/photo-1602874801006-e24246df2bfd?w=500&q=80",
		Category:    "Home Fragrance",
		SKU:         "HSL-CND-010",
		MaxQuantity: 18,
		InStock:     true,
		Tags:        []string{"home", "candles", "fragrance", "soy"},
	},
	{
		ID:          "prod-11",
		VendorID:    "vendor-4",
		Name:        "Minimalist Table Lamp",
		Description: "Modern desk lamp with touch dimming and warm LED light",
		Price:       7999, // $79.99
		Image:       "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=500&q=80",
		Category:    "Lighting",
		SKU:         "HSL-LMP-011",
		MaxQuantity: 10,
		InStock:     true,
		Tags:        []string{"home", "lighting", "modern", "minimalist"},
	},
	{
		ID:          "prod-12",
		VendorID:    "vendor-4",
		Name:        "Throw Pillow Set",
		Description: "Set of 2 decorative throw pillows with geometric patterns",
		Price:       5499, // $54.99
		Image:       "https://images.unsplash.com/photo-1584100936595-c0654b55a2e2?w=500&q=80",
		Category:    "Textiles",
		SKU:         "HSL-PIL-012",
		MaxQuantity: 15,
		InStock:     true,
		Tags:        []string{"home", "textiles", "decor", "pillows"},
	},
}
