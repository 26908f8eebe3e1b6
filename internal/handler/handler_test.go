package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketcart/internal/cart"
	"marketcart/internal/catalog"
	"marketcart/internal/coupon"
	"marketcart/internal/model"
	"marketcart/internal/storage"
)

func testHandler(t *testing.T) (*Handler, *http.ServeMux) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Builtin()
	registry := cart.NewRegistry(cart.RegistryConfig{
		Vendors:   cat.Vendors(),
		Store:     storage.NewMemoryStore(),
		Validator: coupon.Local{},
		Logger:    logger,
	})

	h := New(registry, cat, nil, logger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// getErrorCode extracts the error code from an {"error":{...}} response.
func getErrorCode(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Code
}

func TestHandleHealth(t *testing.T) {
	_, mux := testHandler(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp healthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "ok" {
		t.Errorf("Status = %s, want ok", resp.Status)
	}
}

func TestHandleWellKnown(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "GET", "/.well-known/storefront", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var profile discoveryProfile
	json.NewDecoder(w.Body).Decode(&profile)
	if profile.Name != "marketcart" {
		t.Errorf("Name = %s, want marketcart", profile.Name)
	}
	if len(profile.Vendors) != 4 {
		t.Errorf("Vendors len = %d, want 4", len(profile.Vendors))
	}
}

func TestHandleListVendors(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "GET", "/api/vendors", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp vendorsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Vendors) != 4 {
		t.Errorf("Vendors len = %d, want 4", len(resp.Vendors))
	}
}

func TestHandleGetVendor(t *testing.T) {
	_, mux := testHandler(t)

	t.Run("known vendor", func(t *testing.T) {
		w := doJSON(t, mux, "GET", "/api/vendors/techgear-pro", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		var v model.Vendor
		json.NewDecoder(w.Body).Decode(&v)
		if v.ID != "vendor-1" {
			t.Errorf("ID = %s, want vendor-1", v.ID)
		}
	})

	t.Run("unknown vendor", func(t *testing.T) {
		w := doJSON(t, mux, "GET", "/api/vendors/no-such-shop", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
		if code := getErrorCode(w.Body.Bytes()); code != "NOT_FOUND" {
			t.Errorf("Error code = %s, want NOT_FOUND", code)
		}
	})
}

func TestHandleVendorProducts(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "GET", "/api/vendors/artisan-crafts/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp productsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Products) != 3 {
		t.Errorf("Products len = %d, want 3", len(resp.Products))
	}
	for _, p := range resp.Products {
		if p.VendorID != "vendor-2" {
			t.Errorf("Product %s has VendorID %s, want vendor-2", p.ID, p.VendorID)
		}
	}
}

func TestHandleGetProduct(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "GET", "/api/products/prod-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var p model.Product
	json.NewDecoder(w.Body).Decode(&p)
	if p.Name != "Wireless Noise-Canceling Headphones" {
		t.Errorf("Name = %s", p.Name)
	}

	w = doJSON(t, mux, "GET", "/api/products/prod-999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleAddItem(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
		Quantity:  2,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp addItemResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Success {
		t.Fatalf("Success = false: %s", resp.Message)
	}
	if resp.Item == nil || resp.Item.Quantity != 2 {
		t.Errorf("Item = %+v, want quantity 2", resp.Item)
	}
	if resp.Summary.Subtotal != 59998 {
		t.Errorf("Subtotal = %d, want 59998", resp.Summary.Subtotal)
	}
}

func TestHandleAddItemDefaultQuantity(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-3",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	var resp addItemResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Item == nil || resp.Item.Quantity != 1 {
		t.Errorf("Item = %+v, want quantity 1", resp.Item)
	}
}

func TestHandleAddItemRejections(t *testing.T) {
	tests := []struct {
		name       string
		req        addItemRequest
		wantStatus int
		wantCode   string // error envelope code, empty for structured result
	}{
		{
			name:       "unknown product",
			req:        addItemRequest{ProductID: "prod-999"},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "cross-vendor product",
			req:        addItemRequest{ProductID: "prod-4"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "negative quantity",
			req:        addItemRequest{ProductID: "prod-1", Quantity: -1},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "over max quantity",
			req:        addItemRequest{ProductID: "prod-1", Quantity: 11},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := testHandler(t)

			w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", tt.req)
			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantCode != "" {
				if code := getErrorCode(w.Body.Bytes()); code != tt.wantCode {
					t.Errorf("Error code = %s, want %s", code, tt.wantCode)
				}
				return
			}

			var resp addItemResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Success {
				t.Error("Success = true, want structured rejection")
			}
			if resp.Error == "" {
				t.Error("Error code missing in structured result")
			}
		})
	}
}

func TestHandleUpdateQuantity(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
	})
	var added addItemResponse
	json.NewDecoder(w.Body).Decode(&added)

	path := fmt.Sprintf("/api/vendors/techgear-pro/cart/items/%s", added.Item.ID)
	w = doJSON(t, mux, "PUT", path, updateQuantityRequest{Quantity: 5})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	var resp updateQuantityResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Item == nil || resp.Item.Quantity != 5 {
		t.Errorf("Item = %+v, want quantity 5", resp.Item)
	}

	t.Run("unknown line", func(t *testing.T) {
		w := doJSON(t, mux, "PUT", "/api/vendors/techgear-pro/cart/items/no-such-line",
			updateQuantityRequest{Quantity: 2})
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("zero removes line", func(t *testing.T) {
		w := doJSON(t, mux, "PUT", path, updateQuantityRequest{Quantity: 0})
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
		}
		var resp updateQuantityResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if !resp.Success {
			t.Error("Success = false")
		}
		if resp.Item != nil {
			t.Errorf("Item = %+v, want nil after removal", resp.Item)
		}
	})
}

func TestHandleRemoveItem(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
	})
	var added addItemResponse
	json.NewDecoder(w.Body).Decode(&added)

	path := fmt.Sprintf("/api/vendors/techgear-pro/cart/items/%s", added.Item.ID)
	w = doJSON(t, mux, "DELETE", path, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// Removing again is a no-op
	w = doJSON(t, mux, "DELETE", path, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Repeat status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestHandleGetCart(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-3",
		Quantity:  2,
	})

	w := doJSON(t, mux, "GET", "/api/vendors/techgear-pro/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var resp cartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Items) != 1 {
		t.Fatalf("Items len = %d, want 1", len(resp.Items))
	}
	if resp.Currency != "USD" {
		t.Errorf("Currency = %s, want USD", resp.Currency)
	}
	if resp.Summary.Subtotal != 15998 {
		t.Errorf("Subtotal = %d, want 15998", resp.Summary.Subtotal)
	}
}

func TestHandleClearCart(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
	})

	w := doJSON(t, mux, "DELETE", "/api/vendors/techgear-pro/cart", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, mux, "GET", "/api/vendors/techgear-pro/cart", nil)
	var resp cartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Items) != 0 {
		t.Errorf("Items len = %d, want 0", len(resp.Items))
	}
}

func TestHandleReplaceCart(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
		Quantity:  2,
	})

	// Full-state replace: prod-1 adjusted, prod-2 added, plus one bad line
	w := doJSON(t, mux, "PUT", "/api/vendors/techgear-pro/cart", replaceCartRequest{
		Items: []desiredLine{
			{ProductID: "prod-1", Quantity: 3},
			{ProductID: "prod-2", Quantity: 1},
			{ProductID: "prod-999", Quantity: 1},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	var resp replaceCartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Cart.Items) != 2 {
		t.Errorf("Items len = %d, want 2", len(resp.Cart.Items))
	}
	if len(resp.Failures) != 1 {
		t.Errorf("Failures len = %d, want 1", len(resp.Failures))
	}
	for _, item := range resp.Cart.Items {
		if item.Product.ID == "prod-1" && item.Quantity != 3 {
			t.Errorf("prod-1 quantity = %d, want 3", item.Quantity)
		}
	}
}

func TestHandleApplyDiscount(t *testing.T) {
	_, mux := testHandler(t)

	// Subtotal 29999, SAVE10 applies 10%
	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
	})

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/discount", discountRequest{
		Code: "SAVE10",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	var resp discountResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Success {
		t.Fatalf("Success = false: %s", resp.Error)
	}
	if resp.Discount == nil || resp.Discount.Code != "SAVE10" {
		t.Errorf("Discount = %+v", resp.Discount)
	}
	if resp.Summary.Discount != 3000 {
		t.Errorf("Summary.Discount = %d, want 3000", resp.Summary.Discount)
	}
}

func TestHandleApplyDiscountRejected(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-3",
	})

	w := doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/discount", discountRequest{
		Code: "BADCODE",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp discountResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Success {
		t.Error("Success = true, want rejection")
	}
	if resp.Error == "" {
		t.Error("Error message missing")
	}
}

func TestHandleRemoveDiscount(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-1",
	})
	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/discount", discountRequest{
		Code: "SAVE10",
	})

	w := doJSON(t, mux, "DELETE", "/api/vendors/techgear-pro/cart/discount", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, mux, "GET", "/api/vendors/techgear-pro/cart", nil)
	var resp cartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Discount != nil {
		t.Errorf("Discount = %+v, want nil", resp.Discount)
	}
}

func TestHandleWishlist(t *testing.T) {
	_, mux := testHandler(t)

	// Add
	w := doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-4",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	// Adding twice is a no-op
	doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-4",
	})

	w = doJSON(t, mux, "GET", "/api/vendors/artisan-crafts/wishlist", nil)
	var resp wishlistResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}

	// Toggle removes
	w = doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-4",
		Toggle:    true,
	})
	var toggled wishlistAddResponse
	json.NewDecoder(w.Body).Decode(&toggled)
	if toggled.Saved {
		t.Error("Saved = true after toggling off")
	}
	if toggled.Count != 0 {
		t.Errorf("Count = %d, want 0", toggled.Count)
	}
}

func TestHandleWishlistRemoveAndClear(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-4",
	})
	doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-5",
	})

	w := doJSON(t, mux, "DELETE", "/api/vendors/artisan-crafts/wishlist/items/prod-4", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Remove status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, mux, "DELETE", "/api/vendors/artisan-crafts/wishlist", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Clear status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, mux, "GET", "/api/vendors/artisan-crafts/wishlist", nil)
	var resp wishlistResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
}

func TestHandleMarketplaceSummary(t *testing.T) {
	_, mux := testHandler(t)

	doJSON(t, mux, "POST", "/api/vendors/techgear-pro/cart/items", addItemRequest{
		ProductID: "prod-3",
		Quantity:  2,
	})
	doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/cart/items", addItemRequest{
		ProductID: "prod-4",
	})
	doJSON(t, mux, "POST", "/api/vendors/artisan-crafts/wishlist/items", wishlistAddRequest{
		ProductID: "prod-5",
	})

	w := doJSON(t, mux, "GET", "/api/marketplace/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var resp marketplaceSummaryResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Vendors) != 4 {
		t.Fatalf("Vendors len = %d, want 4", len(resp.Vendors))
	}
	if resp.TotalQuantity != 3 {
		t.Errorf("TotalQuantity = %d, want 3", resp.TotalQuantity)
	}
	if resp.Subtotal != 2*7999+5999 {
		t.Errorf("Subtotal = %d, want %d", resp.Subtotal, 2*7999+5999)
	}
	if resp.WishlistCount != 1 {
		t.Errorf("WishlistCount = %d, want 1", resp.WishlistCount)
	}
}

func TestHandleValidateCoupon(t *testing.T) {
	_, mux := testHandler(t)

	t.Run("valid code", func(t *testing.T) {
		w := doJSON(t, mux, "POST", "/api/coupons/validate", validateCouponRequest{
			Code:     "SAVE20",
			Subtotal: 10000,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
		}

		var result coupon.Result
		json.NewDecoder(w.Body).Decode(&result)
		if result.AppliedAmount != 2000 {
			t.Errorf("AppliedAmount = %d, want 2000", result.AppliedAmount)
		}
	})

	t.Run("below minimum order", func(t *testing.T) {
		w := doJSON(t, mux, "POST", "/api/coupons/validate", validateCouponRequest{
			Code:     "SAVE20",
			Subtotal: 2000,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var failure couponFailure
		json.NewDecoder(w.Body).Decode(&failure)
		if failure.Message == "" {
			t.Error("Message missing")
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		w := doJSON(t, mux, "POST", "/api/coupons/validate", validateCouponRequest{
			Code:     "BADCODE",
			Subtotal: 10000,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestHandleInvalidJSON(t *testing.T) {
	_, mux := testHandler(t)

	req := httptest.NewRequest("POST", "/api/vendors/techgear-pro/cart/items",
		bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if code := getErrorCode(w.Body.Bytes()); code != "VALIDATION_ERROR" {
		t.Errorf("Error code = %s, want VALIDATION_ERROR", code)
	}
}

func TestHandleUnknownVendorCart(t *testing.T) {
	_, mux := testHandler(t)

	w := doJSON(t, mux, "GET", "/api/vendors/no-such-shop/cart", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if code := getErrorCode(w.Body.Bytes()); code != "NOT_FOUND" {
		t.Errorf("Error code = %s, want NOT_FOUND", code)
	}
}
