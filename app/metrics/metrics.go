// Package metrics holds the prometheus collectors shared by the HTTP layer
// and the contact service. A nil *Collector is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	ContactSubmissions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ContactSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(c.HTTPRequests, c.HTTPDuration, c.ContactSubmissions)
	}
	return c
}

func (c *Collector) IncContact(status string) {
	if c == nil || c.ContactSubmissions == nil {
		return
	}

	c.ContactSubmissions.WithLabelValues(status).Inc()
}

func (c *Collector) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}

	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	}
	if c.HTTPDuration != nil {
		c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	}
}
