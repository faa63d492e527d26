package device

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/devicelink/metric"
)

// Metrics holds Prometheus metrics for the device proxy
type Metrics struct {
	streamsCataloged prometheus.Counter
	profilesLinked   prometheus.Counter
	profilesOrphaned prometheus.Counter
	extrinsicEdges   prometheus.Counter
	edgesMissing     prometheus.Counter
	metadataRouted   prometheus.Counter
	metadataDropped  prometheus.Counter
	sensorCount      prometheus.Gauge
}

// newMetrics creates and registers device proxy metrics.
// Returns nil if no registry is provided (nil input = nil feature pattern).
func newMetrics(registry *metric.MetricsRegistry, serial string) (*Metrics, error) {
	if registry == nil {
		return nil, nil
	}

	metrics := &Metrics{
		streamsCataloged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "streams_cataloged_total",
			Help:        "Remote streams consumed during catalog build",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		profilesLinked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "profiles_linked_total",
			Help:        "Final profiles reconciled with a remote stream",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		profilesOrphaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "profiles_orphaned_total",
			Help:        "Post-synthesis profiles with no remote counterpart",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		extrinsicEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "extrinsic_edges_total",
			Help:        "Directed transform edges registered in the graph",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		edgesMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "extrinsic_edges_missing_total",
			Help:        "Stream pairs the remote exposed no transform for",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		metadataRouted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "metadata_routed_total",
			Help:        "Metadata payloads delivered to an owning sensor",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		metadataDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "metadata_dropped_total",
			Help:        "Metadata payloads for unknown stream names",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
		sensorCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "devicelink",
			Subsystem:   "device",
			Name:        "sensors",
			Help:        "Sensor proxies materialized from the remote catalog",
			ConstLabels: prometheus.Labels{"serial": serial},
		}),
	}

	component := "device_" + serial
	if err := registry.RegisterCounter(component, "streams_cataloged", metrics.streamsCataloged); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "profiles_linked", metrics.profilesLinked); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "profiles_orphaned", metrics.profilesOrphaned); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "extrinsic_edges", metrics.extrinsicEdges); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "extrinsic_edges_missing", metrics.edgesMissing); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "metadata_routed", metrics.metadataRouted); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "metadata_dropped", metrics.metadataDropped); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(component, "sensors", metrics.sensorCount); err != nil {
		return nil, err
	}

	return metrics, nil
}
