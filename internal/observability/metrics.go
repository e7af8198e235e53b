package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce              sync.Once
	portalRequestsTotal       *prometheus.CounterVec
	portalLatencySeconds      *prometheus.HistogramVec
	certificateDecisionsTotal *prometheus.CounterVec
	loginAttemptsTotal        *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the portal.
func RegisterMetrics() {
	registerOnce.Do(func() {
		portalRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of portal API requests served.",
		}, []string{"method", "route", "status"})

		portalLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_latency_seconds",
			Help:    "Latency distribution for portal API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		certificateDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certificate_decisions_total",
			Help: "Certificate request decisions grouped by kind and outcome.",
		}, []string{"kind", "decision"})

		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts grouped by result.",
		}, []string{"result"})

		prometheus.MustRegister(portalRequestsTotal, portalLatencySeconds, certificateDecisionsTotal, loginAttemptsTotal)
	})
}

// PortalRequests exposes the counter for portal requests.
func PortalRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return portalRequestsTotal
}

// PortalLatency exposes the latency histogram for portal requests.
func PortalLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return portalLatencySeconds
}

// CertificateDecisions exposes the counter for certificate decisions.
func CertificateDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return certificateDecisionsTotal
}

// LoginAttempts exposes the counter for login outcomes.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttemptsTotal
}
