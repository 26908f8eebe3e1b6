// Package wishlist implements saved-product lists with set semantics:
// one entry per product ID, no quantities, no variant distinction.
package wishlist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"marketcart/internal/model"
	"marketcart/internal/storage"
)

// DefaultStorageKey is the blob key used when no vendor scoping applies.
const DefaultStorageKey = "wishlist"

// Config configures a wishlist instance.
type Config struct {
	StorageKey string        // default "wishlist"
	Store      storage.Store // nil disables persistence
	Logger     *slog.Logger
}

// Wishlist owns one vendor's saved products, ordered by insertion.
type Wishlist struct {
	mu          sync.Mutex
	cfg         Config
	items       []model.WishlistItem
	initialized bool

	saveMu   sync.Mutex
	snapSeq  uint64
	savedSeq uint64
}

// New builds a wishlist, loading any persisted snapshot. Corrupt stored
// data degrades to an empty list with a logged warning.
func New(cfg Config) *Wishlist {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	w := &Wishlist{cfg: cfg}
	w.loadFromStore()
	w.initialized = true
	return w
}

// Items returns a copy of the saved products in insertion order.
func (w *Wishlist) Items() []model.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// IsEmpty reports whether the wishlist has no entries.
func (w *Wishlist) IsEmpty() bool { return w.Count() == 0 }

// Add saves a product. Adding a product already present is a no-op.
func (w *Wishlist) Add(product model.Product) {
	if product.ID == "" {
		return
	}
	w.mu.Lock()
	if w.indexLocked(product.ID) >= 0 {
		w.mu.Unlock()
		return
	}
	w.items = append(w.items, model.WishlistItem{
		Product: product,
		AddedAt: time.Now(),
	})
	w.persistLocked()
	w.mu.Unlock()
}

// Remove deletes a product by ID. Absent products are a no-op.
func (w *Wishlist) Remove(productID string) {
	w.mu.Lock()
	i := w.indexLocked(productID)
	if i < 0 {
		w.mu.Unlock()
		return
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	w.persistLocked()
	w.mu.Unlock()
}

// Has reports whether a product is saved.
func (w *Wishlist) Has(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexLocked(productID) >= 0
}

// Toggle adds the product if absent, removes it if present, and reports
// whether the product is saved afterwards.
func (w *Wishlist) Toggle(product model.Product) bool {
	if w.Has(product.ID) {
		w.Remove(product.ID)
		return false
	}
	w.Add(product)
	return true
}

// Clear empties the wishlist.
func (w *Wishlist) Clear() {
	w.mu.Lock()
	w.items = nil
	w.persistLocked()
	w.mu.Unlock()
}

func (w *Wishlist) indexLocked(productID string) int {
	for i, item := range w.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// The persisted wishlist blob is a bare item array, unlike the cart's
// wrapped snapshot.
func (w *Wishlist) loadFromStore() {
	if w.cfg.Store == nil {
		return
	}
	raw, err := w.cfg.Store.Get(w.cfg.StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			w.cfg.Logger.Warn("failed to load wishlist from storage",
				slog.String("key", w.cfg.StorageKey),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var items []model.WishlistItem
	if err := json.Unmarshal(raw, &items); err != nil {
		w.cfg.Logger.Warn("failed to parse stored wishlist, starting empty",
			slog.String("key", w.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, item := range items {
		if item.Product.ID == "" {
			continue
		}
		w.items = append(w.items, item)
	}
}

func (w *Wishlist) persistLocked() {
	if w.cfg.Store == nil || !w.initialized {
		return
	}
	items := make([]model.WishlistItem, len(w.items))
	copy(items, w.items)

	w.saveMu.Lock()
	w.snapSeq++
	seq := w.snapSeq
	w.saveMu.Unlock()

	go w.save(items, seq)
}

func (w *Wishlist) save(items []model.WishlistItem, seq uint64) {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	if seq <= w.savedSeq {
		return
	}
	w.savedSeq = seq

	raw, err := json.Marshal(items)
	if err != nil {
		w.cfg.Logger.Warn("failed to encode wishlist snapshot",
			slog.String("key", w.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := w.cfg.Store.Set(w.cfg.StorageKey, raw); err != nil {
		w.cfg.Logger.Warn("failed to save wishlist to storage",
			slog.String("key", w.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
	}
}

// Flush blocks until every persist scheduled so far has completed.
func (w *Wishlist) Flush() {
	for {
		w.saveMu.Lock()
		done := w.savedSeq >= w.snapSeq
		w.saveMu.Unlock()
		if done {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
