package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCounter(name string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "devicelink",
		Subsystem: "test",
		Name:      name,
		Help:      "test counter",
	})
}

func TestRegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	err := registry.RegisterCounter("device", "streams_total", testCounter("streams_total"))
	require.NoError(t, err)

	// Same component+name pair is rejected
	err = registry.RegisterCounter("device", "streams_total", testCounter("streams_total"))
	assert.Error(t, err)
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "devicelink", Subsystem: "test", Name: "sensors", Help: "h",
	})
	require.NoError(t, registry.RegisterGauge("device", "sensors", gauge))

	hist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "devicelink", Subsystem: "test", Name: "build_seconds", Help: "h",
	})
	require.NoError(t, registry.RegisterHistogram("device", "build_seconds", hist))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, registry.RegisterCounter("device", "edges", testCounter("edges")))
	assert.True(t, registry.Unregister("device", "edges"))
	assert.False(t, registry.Unregister("device", "edges"))

	// Slot is free again after unregister
	require.NoError(t, registry.RegisterCounter("device", "edges", testCounter("edges")))
}
