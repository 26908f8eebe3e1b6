package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketcart/internal/model"
	"marketcart/internal/transport"
)

// validateRequest is the wire shape of a validation request.
type validateRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

// failureResponse is the wire shape of a non-2xx validation response.
type failureResponse struct {
	Message string `json:"message"`
}

// ClientConfig configures the HTTP coupon client.
type ClientConfig struct {
	// Endpoint is the full URL of the validation endpoint.
	Endpoint string

	// Timeout bounds each validation call (default 10s).
	Timeout time.Duration

	// ImpersonateBrowser routes requests through the Chrome-fingerprint
	// transport. Needed for third-party coupon providers behind CDNs
	// that rate-limit Go's default TLS fingerprint.
	ImpersonateBrowser bool
}

// Client validates discount codes against a remote coupon endpoint.
// It implements the cart's Validator interface.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a coupon client for the given endpoint.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	if cfg.ImpersonateBrowser {
		httpClient.Transport = transport.NewChromeTransport(timeout)
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   cfg.Endpoint,
	}
}

// Validate posts the normalized code and subtotal to the endpoint.
// A non-2xx response becomes a coupon rejection carrying the service's
// message; transport and decode failures become upstream errors the cart
// converts to its generic retry message.
func (c *Client) Validate(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error) {
	body, err := json.Marshal(validateRequest{Code: code, Subtotal: subtotal})
	if err != nil {
		return nil, model.NewUpstreamError("coupon service", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, model.NewUpstreamError("coupon service", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewUpstreamError("coupon service", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, model.NewUpstreamError("coupon service", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure failureResponse
		if err := json.Unmarshal(raw, &failure); err != nil || failure.Message == "" {
			return nil, model.NewCouponError("Invalid discount code")
		}
		return nil, model.NewCouponError(failure.Message)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, model.NewUpstreamError("coupon service", fmt.Errorf("decoding response: %w", err))
	}
	if result.Code == "" || !result.Type.Valid() {
		return nil, model.NewUpstreamError("coupon service", fmt.Errorf("malformed response: %s", raw))
	}

	return &model.AppliedDiscount{
		Code:          result.Code,
		Type:          result.Type,
		Value:         result.Value,
		AppliedAmount: result.AppliedAmount,
		Description:   result.Description,
	}, nil
}
