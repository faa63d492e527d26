// Package device materializes a remote device topology as a locally
// queryable proxy: sensor proxies, reconciled stream profiles, an
// extrinsics graph, and a metadata router.
package device

import (
	"fmt"
	"log/slog"

	"github.com/c360/devicelink/errors"
	"github.com/c360/devicelink/extrinsics"
	"github.com/c360/devicelink/metric"
	"github.com/c360/devicelink/stream"
	"github.com/c360/devicelink/topology"
)

// Camera info keys exposed via Proxy.Info
const (
	InfoName         = "name"
	InfoSerialNumber = "serial-number"
	InfoProductLine  = "product-line"
	InfoProductID    = "product-id"
	InfoPhysicalPort = "physical-port"
	InfoCameraLocked = "camera-locked"
)

// ProfileRef addresses one profile in a proxy: the sensor's first-seen
// index and the profile's position in that sensor's arena.
type ProfileRef struct {
	Sensor  int
	Profile int
}

// Deps holds runtime dependencies for proxy construction
type Deps struct {
	Remote          topology.RemoteDevice
	Synthesizer     Synthesizer             // nil defaults to CloneSynthesizer
	MetricsRegistry *metric.MetricsRegistry // nil disables metrics
	Logger          *slog.Logger            // nil defaults to slog.Default
}

// Proxy is the locally queryable rendition of a remote device. Construction
// is synchronous and single-threaded; after it completes, the proxy is
// read-mostly: only metadata delivery touches it, and that path only reads.
// A remote topology change means building a new proxy.
type Proxy struct {
	remote topology.RemoteDevice
	logger *slog.Logger

	info    map[string]string
	sensors []*SensorProxy

	graph        *extrinsics.Graph
	streamNodes  map[string]extrinsics.NodeID
	profileNodes map[ProfileRef]extrinsics.NodeID

	router  *Router
	metrics *Metrics
}

// NewProxy builds a device proxy from the remote topology. The remote's
// stream enumeration is consumed exactly once. An unknown stream type
// aborts construction; partial proxies are never returned.
func NewProxy(deps Deps) (*Proxy, error) {
	if deps.Remote == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("nil remote device"),
			"Proxy", "NewProxy", "remote validation")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default().With("component", "device-proxy")
	}
	synth := deps.Synthesizer
	if synth == nil {
		synth = CloneSynthesizer{}
	}

	info := deps.Remote.Info()
	metrics, err := newMetrics(deps.MetricsRegistry, info.Serial)
	if err != nil {
		return nil, errors.Wrap(err, "Proxy", "NewProxy", "metrics registration")
	}

	p := &Proxy{
		remote:       deps.Remote,
		logger:       logger,
		graph:        extrinsics.NewGraph(),
		profileNodes: make(map[ProfileRef]extrinsics.NodeID),
		metrics:      metrics,
	}
	p.registerInfo(info)

	alloc := stream.NewIDAllocator()
	cat, err := buildCatalog(deps.Remote, p.graph, alloc, logger, metrics)
	if err != nil {
		return nil, err
	}
	p.sensors = cat.sensors
	p.streamNodes = cat.nodes

	// Per-sensor local synthesis, then the post-link pass reconciling the
	// final profiles back to the catalog
	memberships := make(map[string][]ProfileRef)
	for _, sensor := range p.sensors {
		logger.Debug("synthesizing sensor profiles", "sensor", sensor.Name())
		sensor.profiles = synth.Synthesize(sensor.Name(), sensor.raw)

		members := relinkSensor(sensor, cat, logger, metrics)
		for streamName, indices := range members {
			for _, i := range indices {
				memberships[streamName] = append(memberships[streamName],
					ProfileRef{Sensor: sensor.Index(), Profile: i})
			}
		}
	}

	p.registerExtrinsics(memberships)

	if metrics != nil {
		metrics.sensorCount.Set(float64(len(p.sensors)))
	}

	// Metadata routing attaches last, once the proxy is fully built
	p.router = newRouter(cat.owners, logger, metrics)
	if deps.Remote.SupportsMetadata() {
		if err := deps.Remote.OnMetadataAvailable(p.router.Route); err != nil {
			return nil, errors.Wrap(err, "Proxy", "NewProxy", "metadata registration")
		}
	}

	logger.Info("device proxy constructed",
		"device", info.Name,
		"serial", info.Serial,
		"sensors", len(p.sensors),
		"streams", p.graph.NodeCount(),
		"edges", p.graph.EdgeCount())

	return p, nil
}

func (p *Proxy) registerInfo(info topology.DeviceInfo) {
	locked := "NO"
	if info.Locked {
		locked = "YES"
	}
	p.info = map[string]string{
		InfoName:         info.Name,
		InfoSerialNumber: info.Serial,
		InfoProductLine:  info.ProductLine,
		InfoProductID:    info.ProductID,
		InfoPhysicalPort: info.TopicRoot,
		InfoCameraLocked: locked,
	}
}

// registerExtrinsics runs the three ordered registration passes: transform
// edges between streams, profile membership, and same-extrinsics linking.
func (p *Proxy) registerExtrinsics(memberships map[string][]ProfileRef) {
	// 1. Transform edges for every ordered pair of distinct streams. A
	// missing transform is normal; graphs may be intentionally asymmetric.
	// No reverse edge is inferred.
	for fromName, fromNode := range p.streamNodes {
		for toName, toNode := range p.streamNodes {
			if fromName == toName {
				continue
			}
			tf, ok := p.remote.Extrinsics(fromName, toName)
			if !ok {
				p.logger.Debug("missing extrinsics", "from", fromName, "to", toName)
				if p.metrics != nil {
					p.metrics.edgesMissing.Inc()
				}
				continue
			}
			p.graph.RegisterExtrinsics(fromNode, toNode, extrinsics.Transform{
				Rotation:    tf.Rotation,
				Translation: tf.Translation,
			})
			if p.metrics != nil {
				p.metrics.extrinsicEdges.Inc()
			}
		}
	}

	// 2. Register every linked profile as a graph node
	for streamName, refs := range memberships {
		for _, ref := range refs {
			prof := p.sensors[ref.Sensor].profiles[ref.Profile]
			p.profileNodes[ref] = p.graph.RegisterProfile(streamName + ": " + prof.String())
		}
	}

	// 3. Link every stream to its own profiles: the zero-transform
	// equivalence class transform-path queries resolve through
	for streamName, refs := range memberships {
		streamNode := p.streamNodes[streamName]
		for _, ref := range refs {
			p.graph.RegisterSameExtrinsics(streamNode, p.profileNodes[ref])
		}
	}
}

// Info returns a device info value by key
func (p *Proxy) Info(key string) (string, bool) {
	v, ok := p.info[key]
	return v, ok
}

// Sensors returns the sensor proxies in first-seen order
func (p *Proxy) Sensors() []*SensorProxy {
	return p.sensors
}

// Graph returns the extrinsics graph
func (p *Proxy) Graph() *extrinsics.Graph {
	return p.graph
}

// StreamNode returns the graph node for a named stream
func (p *Proxy) StreamNode(name string) (extrinsics.NodeID, bool) {
	n, ok := p.streamNodes[name]
	return n, ok
}

// ProfileNode returns the graph node for a profile reference
func (p *Proxy) ProfileNode(ref ProfileRef) (extrinsics.NodeID, bool) {
	n, ok := p.profileNodes[ref]
	return n, ok
}

// Router returns the metadata router
func (p *Proxy) Router() *Router {
	return p.router
}

// Transform resolves the rigid transform from one profile's frame to
// another's via the extrinsics graph. Profiles of the same stream resolve
// to the identity transform without any edge lookup. ErrNoTransform marks
// an unreachable pair.
func (p *Proxy) Transform(from, to ProfileRef) (extrinsics.Transform, error) {
	fromNode, ok := p.profileNodes[from]
	if !ok {
		return extrinsics.Transform{}, errors.WrapInvalid(
			fmt.Errorf("unknown profile %+v", from), "Proxy", "Transform", "from lookup")
	}
	toNode, ok := p.profileNodes[to]
	if !ok {
		return extrinsics.Transform{}, errors.WrapInvalid(
			fmt.Errorf("unknown profile %+v", to), "Proxy", "Transform", "to lookup")
	}
	return p.graph.TransformBetween(fromNode, toNode)
}
