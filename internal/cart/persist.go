package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"marketcart/internal/model"
	"marketcart/internal/storage"
)

// snapshot is the persisted cart blob.
type snapshot struct {
	Schema    string                 `json:"schema,omitempty"`
	Items     []model.LineItem       `json:"items"`
	Discount  *model.AppliedDiscount `json:"discount"`
	UpdatedAt int64                  `json:"updatedAt"` // epoch millis
}

// loadFromStore hydrates the cart from its persisted snapshot.
// Absent or structurally invalid data initializes empty without error;
// parse failures are logged as warnings and otherwise swallowed.
func (c *Cart) loadFromStore() {
	if c.cfg.Store == nil {
		return
	}

	raw, err := c.cfg.Store.Get(c.cfg.StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			c.cfg.Logger.Warn("failed to load cart from storage",
				slog.String("key", c.cfg.StorageKey),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.cfg.Logger.Warn("failed to parse stored cart, starting empty",
			slog.String("key", c.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		return
	}
	if snap.Items == nil {
		return
	}
	if !storage.SchemaCompatible(snap.Schema) {
		c.cfg.Logger.Warn("stored cart has incompatible schema, starting empty",
			slog.String("key", c.cfg.StorageKey),
			slog.String("schema", snap.Schema),
		)
		return
	}

	for _, item := range snap.Items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		// Stored line totals are recomputed, not trusted.
		item.LineTotal = int64(item.Quantity) * item.Product.Price
		c.index[item.ID] = len(c.lines)
		c.lines = append(c.lines, item)
	}
	if snap.Discount != nil && snap.Discount.Type.Valid() {
		d := *snap.Discount
		c.discount = &d
	}
}

// persistLocked schedules an asynchronous write of the current state.
// Callers hold c.mu. Writes are fire-and-forget: the triggering mutation
// never blocks on, or fails because of, persistence. A per-snapshot
// sequence number keeps an older write from landing after a newer one.
func (c *Cart) persistLocked() {
	if c.cfg.Store == nil || !c.initialized {
		return
	}

	c.snapSeq++
	seq := c.snapSeq
	snap := snapshot{
		Schema:    storage.SchemaVersion,
		Items:     c.copyLinesLocked(),
		UpdatedAt: time.Now().UnixMilli(),
	}
	if snap.Items == nil {
		snap.Items = []model.LineItem{}
	}
	if c.discount != nil {
		d := *c.discount
		snap.Discount = &d
	}

	go c.save(snap, seq)
}

func (c *Cart) save(snap snapshot, seq uint64) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	if seq <= c.savedSeq {
		return
	}
	c.savedSeq = seq

	raw, err := json.Marshal(snap)
	if err != nil {
		c.cfg.Logger.Warn("failed to encode cart snapshot",
			slog.String("key", c.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := c.cfg.Store.Set(c.cfg.StorageKey, raw); err != nil {
		c.cfg.Logger.Warn("failed to save cart to storage",
			slog.String("key", c.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		if c.cfg.OnPersistError != nil {
			c.cfg.OnPersistError(err)
		}
	}
}

// Flush blocks until every persist scheduled so far has completed.
// Intended for shutdown and tests.
func (c *Cart) Flush() {
	for {
		c.mu.Lock()
		want := c.snapSeq
		c.mu.Unlock()
		c.saveMu.Lock()
		done := c.savedSeq >= want
		c.saveMu.Unlock()
		if done {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
