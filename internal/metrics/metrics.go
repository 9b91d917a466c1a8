// internal/metrics/metrics.go
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records calls to hosted APIs and catalog activity. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	galleryFallbacks *prometheus.CounterVec
	catalogProducts  prometheus.Gauge
}

// New registers the application metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	upstreamRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Calls to hosted image APIs by provider, operation and outcome.",
	}, []string{"provider", "operation", "outcome"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Latency of calls to hosted image APIs.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"provider", "operation"})
	galleryFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_fallback_total",
		Help: "Gallery searches answered from the curated fallback list.",
	}, []string{"reason"})
	catalogProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Number of products in the catalog at the last read.",
	})
	reg.MustRegister(upstreamRequests, upstreamDuration, galleryFallbacks, catalogProducts)
	return &Metrics{
		upstreamRequests: upstreamRequests,
		upstreamDuration: upstreamDuration,
		galleryFallbacks: galleryFallbacks,
		catalogProducts:  catalogProducts,
	}
}

// ObserveUpstream records one call to a hosted API started at start.
func (m *Metrics) ObserveUpstream(provider, operation string, start time.Time, err error) {
	if m == nil || m.upstreamRequests == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	provider = normalizeLabel(provider)
	operation = normalizeLabel(operation)
	m.upstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncGalleryFallback(reason string) {
	if m == nil || m.galleryFallbacks == nil {
		return
	}
	m.galleryFallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *Metrics) SetCatalogSize(n int) {
	if m == nil || m.catalogProducts == nil {
		return
	}
	m.catalogProducts.Set(float64(n))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
