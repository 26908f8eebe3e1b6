package cart

import "marketcart/internal/model"

// DesiredLine is one entry in a full-state cart replacement: the complete
// set of lines the client wants, identified by product + options.
type DesiredLine struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Options   model.ItemOptions `json:"options,omitempty"`
}

// LineDiff describes the mutations needed to reconcile the cart with a
// desired line set. Apply in order Remove → Update → Add so an update
// never races a removal of the same identity.
type LineDiff struct {
	ToAdd    []DesiredLine // identities absent from the cart
	ToRemove []string      // line IDs absent from the desired set
	ToUpdate []QuantityChange
}

// QuantityChange is a quantity update for an existing line.
type QuantityChange struct {
	LineID      string
	OldQuantity int
	NewQuantity int
}

// IsEmpty reports whether no changes are needed.
func (d *LineDiff) IsEmpty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0 && len(d.ToUpdate) == 0
}

// Diff computes the delta between the cart's current lines and a desired
// set. Matching is by derived line identity, so variants diff
// independently. Duplicate identities in the desired set collapse to the
// last occurrence.
func (c *Cart) Diff(desired []DesiredLine) *LineDiff {
	desiredByID := make(map[string]DesiredLine, len(desired))
	order := make([]string, 0, len(desired))
	for _, d := range desired {
		id := LineID(d.ProductID, d.Options)
		if _, seen := desiredByID[id]; !seen {
			order = append(order, id)
		}
		desiredByID[id] = d
	}

	diff := &LineDiff{}

	c.mu.Lock()
	current := c.copyLinesLocked()
	c.mu.Unlock()

	currentByID := make(map[string]model.LineItem, len(current))
	for _, line := range current {
		currentByID[line.ID] = line
		if _, ok := desiredByID[line.ID]; !ok {
			diff.ToRemove = append(diff.ToRemove, line.ID)
		}
	}

	for _, id := range order {
		d := desiredByID[id]
		line, exists := currentByID[id]
		switch {
		case !exists:
			diff.ToAdd = append(diff.ToAdd, d)
		case line.Quantity != d.Quantity:
			diff.ToUpdate = append(diff.ToUpdate, QuantityChange{
				LineID:      id,
				OldQuantity: line.Quantity,
				NewQuantity: d.Quantity,
			})
		}
	}

	return diff
}

// ProductLookup resolves a product ID to its catalog entry. Adds during
// reconciliation need the product snapshot, not just its ID.
type ProductLookup func(productID string) (model.Product, bool)

// Reconcile applies a full desired line set through the mutation state
// machine. Each step reports its structured result; the first failure
// stops the remaining steps of its phase but earlier applied steps stay
// applied — reconciliation is not transactional, matching the
// one-mutation-at-a-time model.
func (c *Cart) Reconcile(desired []DesiredLine, lookup ProductLookup) []model.AddItemResult {
	diff := c.Diff(desired)
	var failures []model.AddItemResult

	for _, id := range diff.ToRemove {
		c.RemoveItem(id)
	}
	for _, u := range diff.ToUpdate {
		if res := c.UpdateQuantity(u.LineID, u.NewQuantity); !res.Success {
			failures = append(failures, model.AddItemResult{
				Error:   res.Error,
				Message: res.Message,
			})
		}
	}
	for _, a := range diff.ToAdd {
		product, ok := lookup(a.ProductID)
		if !ok {
			failures = append(failures, model.AddItemResult{
				Error:   model.CodeInvalidProduct,
				Message: "Unknown product " + a.ProductID,
			})
			continue
		}
		if res := c.AddItem(product, a.Quantity, a.Options); !res.Success {
			failures = append(failures, res)
		}
	}

	return failures
}
