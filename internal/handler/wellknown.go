package handler

import (
	"net/http"

	"marketcart/internal/model"
)

// APIVersion identifies the storefront API revision served by this binary.
const APIVersion = "2026-08-01"

// discoveryProfile describes the service for storefront clients.
type discoveryProfile struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Capabilities []string       `json:"capabilities"`
	Vendors      []model.Vendor `json:"vendors"`
}

// handleWellKnown returns the storefront discovery profile.
// GET /.well-known/storefront
func (h *Handler) handleWellKnown(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, discoveryProfile{
		Name:    "marketcart",
		Version: APIVersion,
		Capabilities: []string{
			"cart",
			"wishlist",
			"coupons",
			"mcp",
		},
		Vendors: h.catalog.Vendors(),
	})
}
