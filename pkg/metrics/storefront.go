package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the service's order, pixel, email, and upstream
// call outcomes.
type StorefrontMetrics struct {
	ordersPlaced     *prometheus.CounterVec
	checkoutWarnings *prometheus.CounterVec
	pixelEvents      *prometheus.CounterVec
	emailSends       *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamFailures *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders submitted through checkout.",
	}, []string{"payment_method"})
	checkoutWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_warnings_total",
		Help: "Non-fatal failures absorbed by the checkout flow.",
	}, []string{"step"})
	pixelEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pixel_events_total",
		Help: "Analytics pixel dispatch outcomes.",
	}, []string{"event", "outcome"})
	emailSends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_email_sends_total",
		Help: "Order confirmation email outcomes.",
	}, []string{"recipient", "outcome"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream storefront API calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	upstreamFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failures_total",
		Help: "Failed upstream storefront API calls.",
	}, []string{"endpoint"})
	reg.MustRegister(ordersPlaced, checkoutWarnings, pixelEvents, emailSends, upstreamDuration, upstreamFailures)
	return &StorefrontMetrics{
		ordersPlaced:     ordersPlaced,
		checkoutWarnings: checkoutWarnings,
		pixelEvents:      pixelEvents,
		emailSends:       emailSends,
		upstreamDuration: upstreamDuration,
		upstreamFailures: upstreamFailures,
	}
}

// IncOrderPlaced counts an order submission for the payment method.
func (m *StorefrontMetrics) IncOrderPlaced(paymentMethod string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncCheckoutWarning counts a non-fatal checkout failure by step.
func (m *StorefrontMetrics) IncCheckoutWarning(step string) {
	if m == nil || m.checkoutWarnings == nil {
		return
	}
	m.checkoutWarnings.WithLabelValues(normalizeLabel(step)).Inc()
}

// IncPixelEvent counts a pixel dispatch outcome.
func (m *StorefrontMetrics) IncPixelEvent(event, outcome string) {
	if m == nil || m.pixelEvents == nil {
		return
	}
	m.pixelEvents.WithLabelValues(normalizeLabel(event), normalizeLabel(outcome)).Inc()
}

// IncEmailSend counts an email send outcome per recipient type.
func (m *StorefrontMetrics) IncEmailSend(recipient, outcome string) {
	if m == nil || m.emailSends == nil {
		return
	}
	m.emailSends.WithLabelValues(normalizeLabel(recipient), normalizeLabel(outcome)).Inc()
}

// ObserveUpstream records the duration of an upstream call.
func (m *StorefrontMetrics) ObserveUpstream(endpoint string, duration time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncUpstreamFailure counts a failed upstream call.
func (m *StorefrontMetrics) IncUpstreamFailure(endpoint string) {
	if m == nil || m.upstreamFailures == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
