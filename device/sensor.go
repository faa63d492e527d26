package device

import (
	"encoding/json"
	"log/slog"

	"github.com/c360/devicelink/stream"
	"github.com/c360/devicelink/topology"
)

// SensorKind tags the pipeline specialization a sensor group maps to
type SensorKind int

// Sensor kinds
const (
	SensorGeneric SensorKind = iota
	SensorDepth
	SensorColor
)

// String returns the string representation of SensorKind
func (k SensorKind) String() string {
	switch k {
	case SensorDepth:
		return "depth"
	case SensorColor:
		return "color"
	default:
		return "generic"
	}
}

// Well-known sensor group names with specialized handling
const (
	sensorNameRGB    = "RGB Camera"
	sensorNameStereo = "Stereo Module"
)

func kindForSensorName(name string) SensorKind {
	switch name {
	case sensorNameRGB:
		return SensorColor
	case sensorNameStereo:
		return SensorDepth
	default:
		return SensorGeneric
	}
}

// MetadataFunc receives per-frame metadata for one of the sensor's streams
type MetadataFunc func(streamName string, payload json.RawMessage)

// SensorProxy is one logical sensor: all remote streams sharing a sensor
// group name, in first-seen order. Mutated only during catalog build;
// read-only afterward except for metadata delivery.
type SensorProxy struct {
	name   string
	kind   SensorKind
	index  int
	logger *slog.Logger

	streams          map[stream.Identity]topology.StreamDescriptor
	options          []topology.Option
	processingBlocks []string

	// raw holds the profiles synthesized directly from the remote catalog;
	// profiles holds the post-synthesis, consumer-facing arena. Both are
	// value slices: everything else addresses profiles by arena index.
	raw      []stream.Profile
	profiles []stream.Profile

	onMetadata MetadataFunc
}

func newSensorProxy(name string, index int, logger *slog.Logger) *SensorProxy {
	return &SensorProxy{
		name:    name,
		kind:    kindForSensorName(name),
		index:   index,
		logger:  logger.With("sensor", name),
		streams: make(map[stream.Identity]topology.StreamDescriptor),
	}
}

// Name returns the sensor group name
func (s *SensorProxy) Name() string {
	return s.name
}

// Kind returns the sensor's pipeline specialization
func (s *SensorProxy) Kind() SensorKind {
	return s.kind
}

// Index returns the sensor's position in first-seen order
func (s *SensorProxy) Index() int {
	return s.index
}

// Streams returns the sensor's identity-to-descriptor map
func (s *SensorProxy) Streams() map[stream.Identity]topology.StreamDescriptor {
	return s.streams
}

// Profiles returns the consumer-facing profile arena
func (s *SensorProxy) Profiles() []stream.Profile {
	return s.profiles
}

// Options returns the options accumulated from the sensor's streams
func (s *SensorProxy) Options() []topology.Option {
	return s.options
}

// ProcessingBlocks returns the recommended-filter names accumulated from
// the sensor's streams
func (s *SensorProxy) ProcessingBlocks() []string {
	return s.processingBlocks
}

func (s *SensorProxy) addStream(id stream.Identity, desc topology.StreamDescriptor) {
	s.streams[id] = desc
}

func (s *SensorProxy) addOption(opt topology.Option) {
	s.options = append(s.options, opt)
}

func (s *SensorProxy) addProcessingBlock(name string) {
	s.processingBlocks = append(s.processingBlocks, name)
}

// OnMetadata registers the sensor's metadata handler. Must be set before
// the proxy's metadata channel is registered with the transport.
func (s *SensorProxy) OnMetadata(fn MetadataFunc) {
	s.onMetadata = fn
}

// HandleMetadata forwards a metadata payload to the sensor's handler.
// Called from the transport's asynchronous delivery context; only reads
// sensor state.
func (s *SensorProxy) HandleMetadata(streamName string, payload json.RawMessage) {
	if s.onMetadata == nil {
		s.logger.Debug("no metadata handler registered", "stream", streamName)
		return
	}
	s.onMetadata(streamName, payload)
}
