// Package cart implements the shopping-cart state machine: line identity,
// mutation operations, pricing, discount application, and persistence.
package cart

import (
	"sort"
	"strings"

	"marketcart/internal/model"
)

// Separators for derived line identity. The pair separator must differ
// from the product/options delimiter so identities never collide.
const (
	idDelimiter   = "__"
	pairSeparator = "|"
)

// LineID derives the identity of a cart line from a product ID and its
// variant options. Options with empty values are excluded; the remaining
// entries are sorted by key, so identity is stable regardless of map
// iteration order. With no defined options, the identity is the bare
// product ID.
//
// Examples:
//
//	LineID("p1", nil)                                  → "p1"
//	LineID("p1", {"size": "M", "color": "red"})        → "p1__color:red|size:M"
func LineID(productID string, options model.ItemOptions) string {
	keys := make([]string, 0, len(options))
	for k, v := range options {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return productID
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + options[k]
	}
	return productID + idDelimiter + strings.Join(pairs, pairSeparator)
}
