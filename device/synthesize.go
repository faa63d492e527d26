package device

import "github.com/c360/devicelink/stream"

// Synthesizer produces the final, consumer-facing profile set for a sensor
// from the raw profiles the catalog builder synthesized. Implementations
// model a format-converting local pipeline: they may clone, replace, drop,
// or add profiles, and are permitted to discard a profile's public identity
// and calibration in the process. The post-link pass reconciles whatever
// comes back.
type Synthesizer interface {
	Synthesize(sensorName string, raw []stream.Profile) []stream.Profile
}

// CloneSynthesizer is the default pipeline stand-in: it clones every raw
// profile and, like a real format converter, loses the public identity,
// the calibration, and the default tag on the way.
type CloneSynthesizer struct{}

// Synthesize returns identity-stripped clones of the raw profiles
func (CloneSynthesizer) Synthesize(_ string, raw []stream.Profile) []stream.Profile {
	out := make([]stream.Profile, len(raw))
	for i, p := range raw {
		clone := p
		clone.UniqueID = 0
		clone.Default = false
		clone.Video = nil
		clone.Motion = nil
		out[i] = clone
	}
	return out
}
