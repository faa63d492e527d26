package device

import (
	"encoding/json"
	"log/slog"
)

// Router delivers per-frame metadata to the owning sensor by stream name.
// Built once during proxy construction; the routing map is never mutated
// afterward, so the asynchronous delivery context needs no locking.
type Router struct {
	owners  map[string]*SensorProxy
	logger  *slog.Logger
	metrics *Metrics
}

func newRouter(owners map[string]*SensorProxy, logger *slog.Logger, metrics *Metrics) *Router {
	return &Router{
		owners:  owners,
		logger:  logger,
		metrics: metrics,
	}
}

// Route forwards a metadata payload to the sensor owning the named stream.
// Metadata for an unknown stream name is dropped silently; transient
// topology races are expected and not worth error-level noise.
func (r *Router) Route(streamName string, payload json.RawMessage) {
	sensor, ok := r.owners[streamName]
	if !ok {
		if r.metrics != nil {
			r.metrics.metadataDropped.Inc()
		}
		return
	}
	sensor.HandleMetadata(streamName, payload)
	if r.metrics != nil {
		r.metrics.metadataRouted.Inc()
	}
}
