package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRelayMetrics(reg)

	m.ObserveRequest("chat", 200)
	m.ObserveRequest("chat", 200)
	m.ObserveRequest("chat", 400)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("chat", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("chat", "400")))
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *RelayMetrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("chat", 200)
		m.ObserveUpstream("success", 0.1)
	})
}
