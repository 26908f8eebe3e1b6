package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketcart/internal/model"
)

func TestClientValidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}

		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Code != "SAVE10" || req.Subtotal != 10000 {
			t.Errorf("request = %+v, want SAVE10/10000", req)
		}

		json.NewEncoder(w).Encode(Result{
			Code:          "SAVE10",
			Type:          model.DiscountPercentage,
			Value:         10,
			AppliedAmount: 1000,
			Description:   "10% off",
		})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL})
	d, err := c.Validate(t.Context(), "SAVE10", 10000)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if d.Code != "SAVE10" || d.Type != model.DiscountPercentage || d.AppliedAmount != 1000 {
		t.Errorf("discount = %+v", d)
	}
}

func TestClientValidateRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "This code has expired"})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL})
	_, err := c.Validate(t.Context(), "OLD", 10000)
	if !errors.Is(err, model.ErrCouponRejected) {
		t.Fatalf("error = %v, want ErrCouponRejected", err)
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "This code has expired" {
		t.Errorf("error = %v, want the service message", err)
	}
}

func TestClientValidateRejectionWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("nope"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL})
	_, err := c.Validate(t.Context(), "OLD", 10000)
	if !errors.Is(err, model.ErrCouponRejected) {
		t.Fatalf("error = %v, want ErrCouponRejected", err)
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid discount code" {
		t.Errorf("error = %v, want generic rejection message", err)
	}
}

func TestClientValidateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "malformed success body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
		{
			name: "success body missing code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(Result{Type: model.DiscountPercentage, Value: 10})
			},
		},
		{
			name: "success body with unknown type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"code": "X", "type": "mystery"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(ClientConfig{Endpoint: srv.URL})
			_, err := c.Validate(t.Context(), "SAVE10", 10000)
			if !errors.Is(err, model.ErrUpstreamError) {
				t.Errorf("error = %v, want ErrUpstreamError", err)
			}
			// Upstream failures must never read as coupon rejections;
			// the cart shows rejection messages verbatim.
			if errors.Is(err, model.ErrCouponRejected) {
				t.Errorf("error = %v, must not be ErrCouponRejected", err)
			}
		})
	}
}

func TestClientValidateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse every connection

	c := NewClient(ClientConfig{Endpoint: srv.URL, Timeout: time.Second})
	_, err := c.Validate(t.Context(), "SAVE10", 10000)
	if !errors.Is(err, model.ErrUpstreamError) {
		t.Errorf("error = %v, want ErrUpstreamError", err)
	}
}

func TestMockValidator(t *testing.T) {
	m := &Mock{}
	d, err := m.Validate(t.Context(), "SAVE10", 10000)
	if err != nil || d.Code != "SAVE10" {
		t.Errorf("default mock: d=%+v err=%v", d, err)
	}

	m.ValidateFunc = func(ctx context.Context, code string, subtotal int64) (*model.AppliedDiscount, error) {
		return nil, errors.New("boom")
	}
	if _, err := m.Validate(t.Context(), "SAVE10", 10000); err == nil {
		t.Error("configured ValidateFunc not used")
	}
}
