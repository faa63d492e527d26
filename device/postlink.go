package device

import (
	"log/slog"

	"github.com/c360/devicelink/stream"
	"github.com/c360/devicelink/topology"
)

// relinkSensor reconciles one sensor's post-synthesis profile set with the
// stream catalog. The synthesis step may have cloned or replaced profile
// records and dropped their public identity, so each final profile is
// re-associated with its originating remote stream via its type+index key.
// Returns the per-stream membership lists feeding the extrinsics passes.
func relinkSensor(
	sensor *SensorProxy,
	cat *catalog,
	logger *slog.Logger,
	metrics *Metrics,
) map[string][]int {
	members := make(map[string][]int)

	for i := range sensor.profiles {
		prof := &sensor.profiles[i]

		id, ok := cat.dedup[prof.Key()]
		if !ok {
			// A synthesized combination with no network-described analog
			logger.Debug("no remote stream for profile", "profile", prof.String())
			if metrics != nil {
				metrics.profilesOrphaned.Inc()
			}
			continue
		}
		entry := cat.entries[id]

		// Synthesis is permitted to discard the public identity; restore
		// it from the matched stream
		prof.UniqueID = id.UniqueID

		// Re-attach calibration as captured values from the matched remote
		// stream. Storing data rather than an accessor means a profile can
		// never end up delegating intrinsics back to its own raw form.
		setProfileIntrinsics(prof, entry.desc)

		tagDefaultProfile(prof, entry)

		members[entry.desc.Name] = append(members[entry.desc.Name], i)
		if metrics != nil {
			metrics.profilesLinked.Inc()
		}
	}

	return members
}

// setProfileIntrinsics rebinds a profile's calibration to the matched
// remote stream's records: exact (width, height) lookup for video, the
// single record for motion. No match leaves calibration unset.
func setProfileIntrinsics(prof *stream.Profile, desc topology.StreamDescriptor) {
	switch prof.Kind {
	case stream.KindMotion:
		prof.Motion = convertMotionIntrinsics(desc.MotionIntrinsics)
	default:
		prof.Video = matchVideoIntrinsics(desc.VideoIntrinsics, prof.Width, prof.Height)
	}
}

// tagDefaultProfile applies the default tag iff the remote stream's default
// profile has the same type and framerate as this profile, and, for video,
// the same resolution and format. Synthesis may substitute an incompatible
// resolution or format for a framerate-matched profile; such a profile must
// not inherit the tag.
func tagDefaultProfile(prof *stream.Profile, entry catalogStream) {
	def, ok := entry.desc.DefaultProfile()
	if !ok {
		return
	}
	if prof.Type != entry.typ || prof.FPS != def.Frequency {
		return
	}
	if prof.Kind == stream.KindVideo {
		if prof.Width != def.Width || prof.Height != def.Height || prof.Format != def.Format {
			return
		}
	}
	prof.Default = true
}
