package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics exposes counters/histograms for the relay's HTTP surface.
type RelayMetrics struct {
	requestsTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatrelay",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total handled HTTP requests",
		}, []string{"route", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chatrelay",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream completion calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.upstreamLatency)
	return m
}

func (m *RelayMetrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *RelayMetrics) ObserveUpstream(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(outcome).Observe(seconds)
}
