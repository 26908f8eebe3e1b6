// Package metrics exposes prometheus collectors for the cart service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's collectors behind one /metrics handler.
type Registry struct {
	reg *prometheus.Registry

	// RequestDuration observes HTTP request latency by method and status.
	RequestDuration *prometheus.HistogramVec

	// CartOps counts cart mutations by operation and result code
	// ("ok" or the structured error code).
	CartOps *prometheus.CounterVec

	// CouponValidations counts coupon checks by outcome
	// ("valid", "rejected", "error").
	CouponValidations *prometheus.CounterVec

	// PersistFailures counts swallowed storage write failures.
	PersistFailures prometheus.Counter
}

// NewRegistry creates the collectors on a fresh prometheus registry.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
	}, []string{"op", "result"})

	couponValidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_coupon_validations_total",
	}, []string{"outcome"})

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
	})

	r.MustRegister(requestDuration, cartOps, couponValidations, persistFailures)
	return &Registry{
		reg:               r,
		RequestDuration:   requestDuration,
		CartOps:           cartOps,
		CouponValidations: couponValidations,
		PersistFailures:   persistFailures,
	}
}

// Handler serves the /metrics endpoint for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
