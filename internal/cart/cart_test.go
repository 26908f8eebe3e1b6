package cart

import (
	"io"
	"log/slog"
	"testing"

	"marketcart/internal/coupon"
	"marketcart/internal/model"
	"marketcart/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct(id string, price int64, maxQty int) model.Product {
	return model.Product{
		ID:          id,
		Name:        "Product " + id,
		Price:       price,
		MaxQuantity: maxQty,
		InStock:     true,
	}
}

func newTestCart(t *testing.T, store storage.Store) *Cart {
	t.Helper()
	return New(Config{
		Store:     store,
		Validator: coupon.Local{},
		Logger:    testLogger(),
	})
}

func TestAddItem(t *testing.T) {
	c := newTestCart(t, nil)
	p := testProduct("p1", 1000, 0)

	res := c.AddItem(p, 2, nil)
	if !res.Success {
		t.Fatalf("AddItem failed: %s %s", res.Error, res.Message)
	}
	if res.Item == nil || res.Item.Quantity != 2 || res.Item.LineTotal != 2000 {
		t.Errorf("Item = %+v, want quantity 2 line total 2000", res.Item)
	}
	if c.ItemCount() != 1 || c.TotalQuantity() != 2 {
		t.Errorf("ItemCount=%d TotalQuantity=%d, want 1 and 2", c.ItemCount(), c.TotalQuantity())
	}
}

func TestAddItemAccumulates(t *testing.T) {
	c := newTestCart(t, nil)
	p := testProduct("p1", 1000, 0)

	c.AddItem(p, 2, nil)
	res := c.AddItem(p, 3, nil)
	if !res.Success {
		t.Fatalf("second add failed: %s", res.Message)
	}
	if res.Item.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5 (accumulated)", res.Item.Quantity)
	}
	if c.ItemCount() != 1 {
		t.Errorf("ItemCount = %d, want 1 (same line)", c.ItemCount())
	}
}

func TestAddItemVariantsSeparateLines(t *testing.T) {
	c := newTestCart(t, nil)
	p := testProduct("p1", 1000, 0)

	c.AddItem(p, 1, model.ItemOptions{"size": "M"})
	c.AddItem(p, 1, model.ItemOptions{"size": "L"})
	if c.ItemCount() != 2 {
		t.Errorf("ItemCount = %d, want 2 (distinct variants)", c.ItemCount())
	}
	if q := c.Quantity("p1", model.ItemOptions{"size": "M"}); q != 1 {
		t.Errorf("Quantity(size M) = %d, want 1", q)
	}
}

func TestAddItemRejections(t *testing.T) {
	tests := []struct {
		name     string
		product  model.Product
		quantity int
		wantErr  string
	}{
		{"missing id", model.Product{Name: "x", Price: 100}, 1, model.CodeInvalidProduct},
		{"missing name", model.Product{ID: "p1", Price: 100}, 1, model.CodeInvalidProduct},
		{"negative price", model.Product{ID: "p1", Name: "x", Price: -1}, 1, model.CodeInvalidProduct},
		{"zero quantity", testProduct("p1", 100, 0), 0, model.CodeInvalidQuantity},
		{"negative quantity", testProduct("p1", 100, 0), -3, model.CodeInvalidQuantity},
		{"over max on new line", testProduct("p1", 100, 5), 6, model.CodeMaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCart(t, nil)
			res := c.AddItem(tt.product, tt.quantity, nil)
			if res.Success {
				t.Fatal("expected rejection, got success")
			}
			if res.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", res.Error, tt.wantErr)
			}
			if !c.IsEmpty() {
				t.Error("rejected add left cart non-empty")
			}
		})
	}
}

func TestAddItemMaxQuantityNeverClamps(t *testing.T) {
	c := newTestCart(t, nil)
	p := testProduct("p1", 100, 5)

	c.AddItem(p, 4, nil)
	res := c.AddItem(p, 2, nil)
	if res.Success {
		t.Fatal("expected rejection at 4+2 over max 5")
	}
	if res.Error != model.CodeMaxQuantity {
		t.Errorf("Error = %q, want %q", res.Error, model.CodeMaxQuantity)
	}
	// The rejection must not partially fill up to the cap.
	if q := c.Quantity("p1", nil); q != 4 {
		t.Errorf("Quantity = %d, want 4 (unchanged)", q)
	}

	// Reaching the cap exactly is allowed.
	if res := c.AddItem(p, 1, nil); !res.Success {
		t.Errorf("add to exactly max rejected: %s", res.Message)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := newTestCart(t, nil)
	p := testProduct("p1", 1000, 10)
	added := c.AddItem(p, 2, nil)

	res := c.UpdateQuantity(added.Item.ID, 5)
	if !res.Success || res.Item == nil {
		t.Fatalf("UpdateQuantity failed: %+v", res)
	}
	if res.Item.Quantity != 5 || res.Item.LineTotal != 5000 {
		t.Errorf("Item = %+v, want quantity 5 line total 5000", res.Item)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	c := newTestCart(t, nil)
	added := c.AddItem(testProduct("p1", 1000, 0), 2, nil)

	res := c.UpdateQuantity(added.Item.ID, 0)
	if !res.Success {
		t.Fatalf("zero-quantity update failed: %+v", res)
	}
	if res.Item != nil {
		t.Errorf("Item = %+v, want nil for a removal", res.Item)
	}
	if !c.IsEmpty() {
		t.Error("cart not empty after zero-quantity update")
	}
}

func TestUpdateQuantityRejections(t *testing.T) {
	c := newTestCart(t, nil)
	added := c.AddItem(testProduct("p1", 1000, 5), 2, nil)

	res := c.UpdateQuantity("missing", 1)
	if res.Success || res.Error != model.CodeItemNotFound {
		t.Errorf("unknown line: got %+v, want %s", res, model.CodeItemNotFound)
	}

	res = c.UpdateQuantity(added.Item.ID, 6)
	if res.Success || res.Error != model.CodeMaxQuantity {
		t.Errorf("over max: got %+v, want %s", res, model.CodeMaxQuantity)
	}
	if q := c.Quantity("p1", nil); q != 2 {
		t.Errorf("Quantity = %d, want 2 (unchanged after rejection)", q)
	}
}

func TestRemoveItem(t *testing.T) {
	c := newTestCart(t, nil)
	a := c.AddItem(testProduct("p1", 100, 0), 1, nil)
	b := c.AddItem(testProduct("p2", 200, 0), 1, nil)
	c.AddItem(testProduct("p3", 300, 0), 1, nil)

	c.RemoveItem(a.Item.ID)
	if c.ItemCount() != 2 {
		t.Fatalf("ItemCount = %d, want 2", c.ItemCount())
	}
	// Remaining lines stay addressable after the shift.
	if res := c.UpdateQuantity(b.Item.ID, 4); !res.Success {
		t.Errorf("update after removal failed: %+v", res)
	}
	if items := c.Items(); items[0].Product.ID != "p2" || items[1].Product.ID != "p3" {
		t.Errorf("order not preserved: %v, %v", items[0].Product.ID, items[1].Product.ID)
	}

	// Removing an absent line is a no-op.
	c.RemoveItem("missing")
	if c.ItemCount() != 2 {
		t.Errorf("ItemCount = %d after no-op remove, want 2", c.ItemCount())
	}
}

func TestClear(t *testing.T) {
	c := newTestCart(t, nil)
	c.AddItem(testProduct("p1", 10000, 0), 1, nil)
	c.ApplyDiscount(t.Context(), "SAVE10")

	c.Clear()
	if !c.IsEmpty() {
		t.Error("cart not empty after Clear")
	}
	if c.Discount() != nil {
		t.Error("discount survived Clear")
	}
}

func TestItemLookups(t *testing.T) {
	c := newTestCart(t, nil)
	c.AddItem(testProduct("p1", 100, 0), 3, model.ItemOptions{"size": "M"})

	if !c.HasItem("p1", model.ItemOptions{"size": "M"}) {
		t.Error("HasItem = false for present variant")
	}
	if c.HasItem("p1", nil) {
		t.Error("HasItem = true for absent variant")
	}
	if q := c.Quantity("p1", model.ItemOptions{"size": "M"}); q != 3 {
		t.Errorf("Quantity = %d, want 3", q)
	}
	if q := c.Quantity("p2", nil); q != 0 {
		t.Errorf("Quantity for absent product = %d, want 0", q)
	}
}

func TestSubscribe(t *testing.T) {
	c := newTestCart(t, nil)
	var notified int
	unsub := c.Subscribe(func() { notified++ })

	c.AddItem(testProduct("p1", 100, 0), 1, nil)
	c.RemoveItem(LineID("p1", nil))
	if notified != 2 {
		t.Errorf("notified = %d, want 2", notified)
	}

	// Rejections are not mutations and must not notify.
	c.AddItem(model.Product{}, 1, nil)
	if notified != 2 {
		t.Errorf("notified = %d after rejection, want 2", notified)
	}

	unsub()
	c.AddItem(testProduct("p2", 100, 0), 1, nil)
	if notified != 2 {
		t.Errorf("notified = %d after unsubscribe, want 2", notified)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()

	c := newTestCart(t, store)
	c.AddItem(testProduct("p1", 10000, 0), 2, model.ItemOptions{"size": "M"})
	if res := c.ApplyDiscount(t.Context(), "SAVE10"); !res.Success {
		t.Fatalf("ApplyDiscount failed: %s", res.Error)
	}
	c.Flush()

	reloaded := newTestCart(t, store)
	if reloaded.ItemCount() != 1 {
		t.Fatalf("reloaded ItemCount = %d, want 1", reloaded.ItemCount())
	}
	if q := reloaded.Quantity("p1", model.ItemOptions{"size": "M"}); q != 2 {
		t.Errorf("reloaded Quantity = %d, want 2", q)
	}
	d := reloaded.Discount()
	if d == nil || d.Code != "SAVE10" {
		t.Errorf("reloaded Discount = %+v, want SAVE10", d)
	}
	if sum := reloaded.Summary(); sum.Subtotal != 20000 || sum.Discount != 2000 {
		t.Errorf("reloaded Summary = %+v, want subtotal 20000 discount 2000", sum)
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(DefaultStorageKey, []byte("{not json"))

	c := newTestCart(t, store)
	if !c.IsEmpty() {
		t.Error("cart not empty after corrupt snapshot")
	}
	// The cart stays usable and overwrites the bad blob.
	if res := c.AddItem(testProduct("p1", 100, 0), 1, nil); !res.Success {
		t.Errorf("add after corrupt load failed: %+v", res)
	}
}

func TestLoadSkipsInvalidLines(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(DefaultStorageKey, []byte(`{
		"items": [
			{"id": "p1", "product": {"id": "p1", "name": "A", "price": 100}, "quantity": 2, "line_total": 999},
			{"id": "", "product": {"id": "p2", "name": "B", "price": 100}, "quantity": 1},
			{"id": "p3", "product": {"id": "p3", "name": "C", "price": 100}, "quantity": 0}
		],
		"discount": null,
		"updatedAt": 0
	}`))

	c := newTestCart(t, store)
	if c.ItemCount() != 1 {
		t.Fatalf("ItemCount = %d, want 1 (invalid lines skipped)", c.ItemCount())
	}
	// Stored line totals are recomputed, not trusted.
	if items := c.Items(); items[0].LineTotal != 200 {
		t.Errorf("LineTotal = %d, want 200 (recomputed)", items[0].LineTotal)
	}
}

func TestLoadIncompatibleSchema(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(DefaultStorageKey, []byte(`{
		"schema": "v99.0.0",
		"items": [{"id": "p1", "product": {"id": "p1", "name": "A", "price": 100}, "quantity": 1}]
	}`))

	c := newTestCart(t, store)
	if !c.IsEmpty() {
		t.Error("cart loaded a snapshot from a newer schema")
	}
}
