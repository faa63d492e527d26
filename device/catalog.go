package device

import (
	"log/slog"

	"github.com/c360/devicelink/errors"
	"github.com/c360/devicelink/extrinsics"
	"github.com/c360/devicelink/stream"
	"github.com/c360/devicelink/topology"
)

// catalogStream is everything the post-link pass needs to reach from a
// matched identity: the originating descriptor, its parsed type, the
// owning sensor, and the stream's graph node.
type catalogStream struct {
	desc   topology.StreamDescriptor
	typ    stream.Type
	sensor *SensorProxy
	node   extrinsics.NodeID
}

// catalog is the output of the single enumeration pass over the remote
// stream descriptors.
type catalog struct {
	sensors []*SensorProxy

	// dedup maps a type+index key to the identity of the stream that
	// carries it. The final synthesized profile set only has type and
	// index, so this is the re-linking path back to remote streams.
	dedup map[stream.TypeIndexKey]stream.Identity

	// entries resolves an identity to its catalog stream
	entries map[stream.Identity]catalogStream

	// nodes maps stream name to graph node for extrinsics registration
	nodes map[string]extrinsics.NodeID

	// owners maps stream name to owning sensor for metadata routing
	owners map[string]*SensorProxy
}

// buildCatalog consumes the remote stream descriptors once, in transport
// order, grouping them into sensor proxies, allocating identities, and
// synthesizing the initial profile set. An unknown stream type aborts the
// build; everything else is local and logged.
func buildCatalog(
	remote topology.RemoteDevice,
	graph *extrinsics.Graph,
	alloc *stream.IDAllocator,
	logger *slog.Logger,
	metrics *Metrics,
) (*catalog, error) {
	cat := &catalog{
		dedup:   make(map[stream.TypeIndexKey]stream.Identity),
		entries: make(map[stream.Identity]catalogStream),
		nodes:   make(map[string]extrinsics.NodeID),
		owners:  make(map[string]*SensorProxy),
	}
	byName := make(map[string]*SensorProxy)

	err := remote.EnumerateStreams(func(desc topology.StreamDescriptor) error {
		sensor := byName[desc.SensorName]
		if sensor == nil {
			// New sensor group; first-seen order is the sensor index
			sensor = newSensorProxy(desc.SensorName, len(cat.sensors), logger)
			byName[desc.SensorName] = sensor
			cat.sensors = append(cat.sensors, sensor)
		}

		streamType, err := stream.ParseType(desc.Type)
		if err != nil {
			return errors.WrapFatal(err, "catalog", "buildCatalog", "stream type translation")
		}

		index := stream.IndexFromName(desc.Name)
		id := stream.Identity{UniqueID: alloc.Next(), Index: index}
		key := stream.TypeIndexKey{Type: streamType, Index: index}

		if prev, dup := cat.dedup[key]; dup {
			// Malformed remote catalog; last write wins, downstream
			// re-linking will only see this stream
			logger.Warn("duplicate type+index key in remote catalog",
				"key", key.String(), "previous", prev.String(), "replacement", id.String())
		}
		cat.dedup[key] = id

		node := graph.AddStream(desc.Name)
		cat.nodes[desc.Name] = node
		cat.owners[desc.Name] = sensor
		cat.entries[id] = catalogStream{desc: desc, typ: streamType, sensor: sensor, node: node}

		sensor.addStream(id, desc)
		logger.Debug("cataloged stream", "id", id.String(), "stream", desc.Name, "type", streamType.String())

		defIdx := desc.DefaultIndex()
		for i, pd := range desc.Profiles {
			prof := synthesizeRawProfile(streamType, id, pd, desc, i == defIdx)
			if !prof.HasIntrinsics() {
				// Some profiles genuinely carry no calibration
				logger.Debug("no intrinsics for profile", "profile", prof.String())
			}
			sensor.raw = append(sensor.raw, prof)
			logger.Debug("    " + prof.String())
		}

		for _, opt := range desc.Options {
			sensor.addOption(opt)
		}
		for _, filter := range desc.RecommendedFilters {
			sensor.addProcessingBlock(filter)
		}

		if metrics != nil {
			metrics.streamsCataloged.Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cat, nil
}

// synthesizeRawProfile builds the initial local profile for one remote
// profile descriptor, choosing the video or motion shape by stream type and
// attaching calibration by exact lookup.
func synthesizeRawProfile(
	streamType stream.Type,
	id stream.Identity,
	pd topology.ProfileDescriptor,
	desc topology.StreamDescriptor,
	isDefault bool,
) stream.Profile {
	prof := stream.Profile{
		Type:     streamType,
		Index:    id.Index,
		UniqueID: id.UniqueID,
		Format:   pd.Format,
		FPS:      pd.Frequency,
		Default:  isDefault,
	}

	if streamType == stream.TypeMotion {
		prof.Kind = stream.KindMotion
		prof.Motion = convertMotionIntrinsics(desc.MotionIntrinsics)
		return prof
	}

	prof.Kind = stream.KindVideo
	prof.Width = pd.Width
	prof.Height = pd.Height
	prof.Video = matchVideoIntrinsics(desc.VideoIntrinsics, pd.Width, pd.Height)
	return prof
}

// matchVideoIntrinsics finds the calibration record for an exact
// (width, height) pair. Nil when absent; not an error.
func matchVideoIntrinsics(set []topology.VideoIntrinsics, width, height int) *stream.VideoIntrinsics {
	for _, in := range set {
		if in.Width == width && in.Height == height {
			return &stream.VideoIntrinsics{
				Width:            in.Width,
				Height:           in.Height,
				PrincipalPointX:  in.PrincipalPointX,
				PrincipalPointY:  in.PrincipalPointY,
				FocalLengthX:     in.FocalLengthX,
				FocalLengthY:     in.FocalLengthY,
				DistortionModel:  in.DistortionModel,
				DistortionCoeffs: in.DistortionCoeffs,
			}
		}
	}
	return nil
}

func convertMotionIntrinsics(in *topology.MotionIntrinsics) *stream.MotionIntrinsics {
	if in == nil {
		return nil
	}
	return &stream.MotionIntrinsics{
		Data:           in.Data,
		NoiseVariances: in.NoiseVariances,
		BiasVariances:  in.BiasVariances,
	}
}
