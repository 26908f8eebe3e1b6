package cart

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"marketcart/internal/model"
	"marketcart/internal/storage"
)

// DefaultStorageKey is the blob key used when no vendor scoping applies.
const DefaultStorageKey = "cart"

// Config configures a cart instance.
type Config struct {
	// StorageKey is the blob key for persistence (default "cart").
	StorageKey string

	// Currency is the ISO 4217 code reported to consumers (default "USD").
	Currency string

	// Pricing holds tax/shipping rates; zero fields get defaults.
	Pricing Pricing

	// Validator checks discount codes. Required for ApplyDiscount.
	Validator Validator

	// Store persists cart snapshots. Nil disables persistence.
	Store storage.Store

	// OnPersistError is invoked for swallowed storage failures, after
	// logging. Optional; used to feed failure counters.
	OnPersistError func(error)

	Logger *slog.Logger
}

// Cart owns one vendor's line items and applied discount. All mutations
// are atomic: a mutex serializes them, and each runs to completion with
// no suspension point, so later calls observe fully-settled state.
// Consumers only ever receive copies of lines; they mutate through the
// operation methods.
type Cart struct {
	mu          sync.Mutex
	cfg         Config
	lines       []model.LineItem
	index       map[string]int // line ID → position in lines
	discount    *model.AppliedDiscount
	loading     bool
	initialized bool
	validateSeq uint64 // issued discount validations, for stale-response discard
	snapSeq     uint64 // snapshots taken, for write ordering

	saveMu   sync.Mutex
	savedSeq uint64 // highest snapshot written

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New builds a cart, loading any persisted snapshot from cfg.Store.
// A missing or corrupt snapshot degrades to an empty cart; construction
// never fails on bad stored data.
func New(cfg Config) *Cart {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	cfg.Pricing = cfg.Pricing.withDefaults()
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Cart{
		cfg:   cfg,
		index: make(map[string]int),
		subs:  make(map[int]func()),
	}
	c.loadFromStore()
	c.initialized = true
	return c
}

// Currency returns the configured currency code.
func (c *Cart) Currency() string { return c.cfg.Currency }

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []model.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLinesLocked()
}

// Summary derives the current totals. Recomputed on every read from the
// live line state, so it is never stale relative to the last mutation.
// The applied discount's amount is recomputed from the current subtotal,
// not reused from validation time.
func (c *Cart) Summary() model.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summarize(c.lines, c.discount, c.cfg.Pricing)
}

// Discount returns a copy of the applied discount, with AppliedAmount
// refreshed against the current subtotal, or nil.
func (c *Cart) Discount() *model.AppliedDiscount {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discount == nil {
		return nil
	}
	d := *c.discount
	d.AppliedAmount = discountAmount(&d, c.subtotalLocked())
	return &d
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// IsLoading reports whether a discount validation is in flight.
func (c *Cart) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ItemCount returns the number of distinct lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// TotalQuantity returns the number of units across all lines.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// AddItem adds quantity units of a product variant, accumulating onto an
// existing line when the identity matches. Validation failures and
// max-quantity rejections leave the cart unchanged; rejections never
// clamp, on new and existing lines alike.
func (c *Cart) AddItem(product model.Product, quantity int, options model.ItemOptions) model.AddItemResult {
	if product.ID == "" || product.Name == "" || product.Price < 0 {
		return model.AddItemResult{
			Error:   model.CodeInvalidProduct,
			Message: "Product must have id, name, and price",
		}
	}
	if quantity < 1 {
		return model.AddItemResult{
			Error:   model.CodeInvalidQuantity,
			Message: "Quantity must be a positive integer",
		}
	}

	id := LineID(product.ID, options)

	c.mu.Lock()
	if pos, ok := c.index[id]; ok {
		line := &c.lines[pos]
		newQty := line.Quantity + quantity
		if product.MaxQuantity > 0 && newQty > product.MaxQuantity {
			c.mu.Unlock()
			return model.AddItemResult{
				Error:   model.CodeMaxQuantity,
				Message: maxQuantityMessage(product.MaxQuantity),
			}
		}
		line.Quantity = newQty
		line.LineTotal = int64(newQty) * line.Product.Price
		item := *line
		c.persistLocked()
		c.mu.Unlock()
		c.notify()
		return model.AddItemResult{Success: true, Item: &item}
	}

	if product.MaxQuantity > 0 && quantity > product.MaxQuantity {
		c.mu.Unlock()
		return model.AddItemResult{
			Error:   model.CodeMaxQuantity,
			Message: maxQuantityMessage(product.MaxQuantity),
		}
	}

	line := model.LineItem{
		ID:        id,
		Product:   product,
		Quantity:  quantity,
		Options:   options,
		AddedAt:   time.Now(),
		LineTotal: int64(quantity) * product.Price,
	}
	c.lines = append(c.lines, line)
	c.index[id] = len(c.lines) - 1
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
	return model.AddItemResult{Success: true, Item: &line}
}

// UpdateQuantity sets the quantity of the line with the given identity.
// Zero or negative quantity removes the line and succeeds with a nil item.
func (c *Cart) UpdateQuantity(id string, quantity int) model.UpdateQuantityResult {
	c.mu.Lock()
	pos, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return model.UpdateQuantityResult{
			Error:   model.CodeItemNotFound,
			Message: "Item not found in cart",
		}
	}

	if quantity <= 0 {
		c.removeAtLocked(pos)
		c.persistLocked()
		c.mu.Unlock()
		c.notify()
		return model.UpdateQuantityResult{Success: true}
	}

	line := &c.lines[pos]
	if max := line.Product.MaxQuantity; max > 0 && quantity > max {
		c.mu.Unlock()
		return model.UpdateQuantityResult{
			Error:   model.CodeMaxQuantity,
			Message: maxQuantityMessage(max),
		}
	}

	line.Quantity = quantity
	line.LineTotal = int64(quantity) * line.Product.Price
	item := *line
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
	return model.UpdateQuantityResult{Success: true, Item: &item}
}

// RemoveItem deletes the line with the given identity. Removing an
// absent line is a no-op, not an error.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	pos, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	c.removeAtLocked(pos)
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
}

// Clear empties the cart and drops any applied discount.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.index = make(map[string]int)
	c.discount = nil
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
}

// Item returns a copy of the line for a product variant, if present.
func (c *Cart) Item(productID string, options model.ItemOptions) (model.LineItem, bool) {
	id := LineID(productID, options)
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.index[id]
	if !ok {
		return model.LineItem{}, false
	}
	return c.lines[pos], true
}

// HasItem reports whether a product variant is in the cart.
func (c *Cart) HasItem(productID string, options model.ItemOptions) bool {
	_, ok := c.Item(productID, options)
	return ok
}

// Quantity returns the quantity of a product variant, or 0 when absent.
func (c *Cart) Quantity(productID string, options model.ItemOptions) int {
	line, ok := c.Item(productID, options)
	if !ok {
		return 0
	}
	return line.Quantity
}

// Subscribe registers fn to run after every completed mutation.
// The returned function unsubscribes.
func (c *Cart) Subscribe(fn func()) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Cart) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func maxQuantityMessage(max int) string {
	return "Maximum " + strconv.Itoa(max) + " allowed"
}

// removeAtLocked deletes lines[pos] preserving order and reindexes the
// lines that shifted left.
func (c *Cart) removeAtLocked(pos int) {
	id := c.lines[pos].ID
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.lines); i++ {
		c.index[c.lines[i].ID] = i
	}
}

func (c *Cart) copyLinesLocked() []model.LineItem {
	out := make([]model.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) subtotalLocked() int64 {
	var subtotal int64
	for _, l := range c.lines {
		subtotal += l.LineTotal
	}
	return subtotal
}
