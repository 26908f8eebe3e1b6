// MCP transport handler for the cart service using the official MCP Go SDK.
// Exposes cart operations as MCP tools so agents can drive a vendor cart.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"marketcart/internal/cart"
	"marketcart/internal/model"
)

// === MCP Tool Input Types ===
// Every tool addresses one vendor cart by slug.

// AddItemInput is the input schema for the add_item tool.
type AddItemInput struct {
	Vendor    string            `json:"vendor" jsonschema:"vendor slug,required"`
	ProductID string            `json:"product_id" jsonschema:"product ID,required"`
	Quantity  int               `json:"quantity,omitempty" jsonschema:"units to add (default 1)"`
	Options   map[string]string `json:"options,omitempty" jsonschema:"variant options (size, color, ...)"`
}

// UpdateQuantityInput is the input schema for the update_quantity tool.
type UpdateQuantityInput struct {
	Vendor   string `json:"vendor" jsonschema:"vendor slug,required"`
	ItemID   string `json:"item_id" jsonschema:"cart line ID,required"`
	Quantity int    `json:"quantity" jsonschema:"new quantity (zero removes the line),required"`
}

// RemoveItemInput is the input schema for the remove_item tool.
type RemoveItemInput struct {
	Vendor string `json:"vendor" jsonschema:"vendor slug,required"`
	ItemID string `json:"item_id" jsonschema:"cart line ID,required"`
}

// GetCartInput is the input schema for the get_cart tool.
type GetCartInput struct {
	Vendor string `json:"vendor" jsonschema:"vendor slug,required"`
}

// ApplyDiscountInput is the input schema for the apply_discount tool.
type ApplyDiscountInput struct {
	Vendor string `json:"vendor" jsonschema:"vendor slug,required"`
	Code   string `json:"code" jsonschema:"coupon code,required"`
}

// ClearCartInput is the input schema for the clear_cart tool.
type ClearCartInput struct {
	Vendor string `json:"vendor" jsonschema:"vendor slug,required"`
}

// NewMCPServer creates an MCP server with cart tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "marketcart",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Multi-vendor storefront cart operations. " +
				"Each vendor has its own cart; address it by vendor slug.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_item",
		Description: "Add a product to a vendor's cart. The same product with different options occupies separate lines.",
	}, h.mcpAddItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_quantity",
		Description: "Set the quantity of an existing cart line. Zero or negative removes the line.",
	}, h.mcpUpdateQuantity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_item",
		Description: "Remove a line from a vendor's cart.",
	}, h.mcpRemoveItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cart",
		Description: "Get a vendor cart's items, applied discount, and pricing summary.",
	}, h.mcpGetCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_discount",
		Description: "Validate a coupon code and apply it to a vendor's cart. At most one discount is active.",
	}, h.mcpApplyDiscount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_cart",
		Description: "Empty a vendor's cart and drop any applied discount.",
	}, h.mcpClearCart)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

// mcpCart resolves a vendor cart for a tool call.
func (h *Handler) mcpCart(vendor string) (*cart.Cart, error) {
	if vendor == "" {
		return nil, fmt.Errorf("vendor is required")
	}
	c, err := h.registry.Cart(vendor)
	if err != nil {
		return nil, h.mcpError(err)
	}
	return c, nil
}

func (h *Handler) mcpAddItem(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AddItemInput,
) (*mcp.CallToolResult, *addItemResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	product, err := h.vendorProduct(input.Vendor, input.ProductID)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	result := c.AddItem(product, quantity, model.ItemOptions(input.Options))
	h.countCartOp("add_item", result.Error)

	return nil, &addItemResponse{
		AddItemResult: result,
		Summary:       c.Summary(),
	}, nil
}

func (h *Handler) mcpUpdateQuantity(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpdateQuantityInput,
) (*mcp.CallToolResult, *updateQuantityResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	if input.ItemID == "" {
		return nil, nil, fmt.Errorf("item_id is required")
	}

	result := c.UpdateQuantity(input.ItemID, input.Quantity)
	h.countCartOp("update_quantity", result.Error)

	return nil, &updateQuantityResponse{
		UpdateQuantityResult: result,
		Summary:              c.Summary(),
	}, nil
}

func (h *Handler) mcpRemoveItem(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RemoveItemInput,
) (*mcp.CallToolResult, *cartResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	if input.ItemID == "" {
		return nil, nil, fmt.Errorf("item_id is required")
	}

	c.RemoveItem(input.ItemID)
	h.countCartOp("remove_item", "")

	view := h.cartView(input.Vendor, c)
	return nil, &view, nil
}

func (h *Handler) mcpGetCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCartInput,
) (*mcp.CallToolResult, *cartResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	view := h.cartView(input.Vendor, c)
	return nil, &view, nil
}

func (h *Handler) mcpApplyDiscount(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ApplyDiscountInput,
) (*mcp.CallToolResult, *discountResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	result := c.ApplyDiscount(ctx, input.Code)
	if h.metrics != nil {
		outcome := "valid"
		if !result.Success {
			outcome = "rejected"
		}
		h.metrics.CouponValidations.WithLabelValues(outcome).Inc()
	}

	return nil, &discountResponse{
		DiscountResult: result,
		Summary:        c.Summary(),
	}, nil
}

func (h *Handler) mcpClearCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ClearCartInput,
) (*mcp.CallToolResult, *cartResponse, error) {
	c, err := h.mcpCart(input.Vendor)
	if err != nil {
		return nil, nil, err
	}

	c.Clear()
	h.countCartOp("clear", "")

	view := h.cartView(input.Vendor, c)
	return nil, &view, nil
}

// mcpError converts service errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
