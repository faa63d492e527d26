// Package topology defines the remote device contract: the decoded topology
// document a remote peer publishes, and the RemoteDevice interface the
// device proxy consumes. The binary wire codec belongs to the remote peer;
// this package only handles the decoded document form.
package topology

import "encoding/json"

// DeviceInfo carries the remote device's identification block
type DeviceInfo struct {
	Name        string `json:"name"`
	Serial      string `json:"serial"`
	ProductLine string `json:"product-line"`
	ProductID   string `json:"product-id"`
	TopicRoot   string `json:"topic-root"`
	Locked      bool   `json:"locked"`
}

// ProfileDescriptor is one (format, framerate, resolution) combination a
// remote stream supports. Width and height are zero for motion streams.
type ProfileDescriptor struct {
	Format    string `json:"format"`
	Frequency int    `json:"frequency"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// VideoIntrinsics is a per-resolution calibration record on a video stream
type VideoIntrinsics struct {
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	PrincipalPointX  float32    `json:"principal-point-x"`
	PrincipalPointY  float32    `json:"principal-point-y"`
	FocalLengthX     float32    `json:"focal-length-x"`
	FocalLengthY     float32    `json:"focal-length-y"`
	DistortionModel  int        `json:"distortion-model"`
	DistortionCoeffs [5]float32 `json:"distortion-coeffs"`
}

// MotionIntrinsics is the single calibration record of a motion stream
type MotionIntrinsics struct {
	Data           [12]float32 `json:"data"`
	NoiseVariances [3]float32  `json:"noise-variances"`
	BiasVariances  [3]float32  `json:"bias-variances"`
}

// Option is a named control exposed by a remote stream, accumulated onto
// the owning sensor
type Option struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Extrinsics is the rigid transform between two stream frames as delivered
// by the remote peer: column-major 3x3 rotation plus translation.
type Extrinsics struct {
	Rotation    [9]float32 `json:"rotation"`
	Translation [3]float32 `json:"translation"`
}

// StreamDescriptor describes one remote stream. Owned by the transport
// layer for the proxy's lifetime; the catalog builder reads it, never
// mutates it.
type StreamDescriptor struct {
	Name                string              `json:"name"`
	SensorName          string              `json:"sensor-name"`
	Type                string              `json:"type"`
	Profiles            []ProfileDescriptor `json:"profiles"`
	DefaultProfileIndex int                 `json:"default-profile-index"`
	VideoIntrinsics     []VideoIntrinsics   `json:"intrinsics,omitempty"`
	MotionIntrinsics    *MotionIntrinsics   `json:"motion-intrinsics,omitempty"`
	Options             []Option            `json:"options,omitempty"`
	RecommendedFilters  []string            `json:"recommended-filters,omitempty"`
}

// DefaultIndex returns the default profile's position, falling back to the
// first profile when the declared index is out of range. Every consumer of
// the default resolves it through here so a malformed index degrades the
// same way everywhere.
func (d StreamDescriptor) DefaultIndex() int {
	idx := d.DefaultProfileIndex
	if idx < 0 || idx >= len(d.Profiles) {
		return 0
	}
	return idx
}

// DefaultProfile returns the stream's default profile descriptor, falling
// back to the first profile when the index is out of range.
func (d StreamDescriptor) DefaultProfile() (ProfileDescriptor, bool) {
	if len(d.Profiles) == 0 {
		return ProfileDescriptor{}, false
	}
	return d.Profiles[d.DefaultIndex()], true
}

// MetadataHandler receives per-frame metadata for a named stream
type MetadataHandler func(streamName string, payload json.RawMessage)

// RemoteDevice is the transport-facing contract the device proxy builds
// from. EnumerateStreams is synchronous, calls back once per stream in the
// stable order the remote delivered, and is guaranteed non-re-entrant
// during proxy construction.
type RemoteDevice interface {
	// Info returns the remote device's identification block
	Info() DeviceInfo

	// EnumerateStreams calls fn once per stream descriptor, in stable
	// order. A non-nil error from fn aborts enumeration and is returned.
	EnumerateStreams(fn func(StreamDescriptor) error) error

	// Extrinsics returns the transform from one named stream's frame to
	// another's. The second return is false when the remote exposes no
	// transform for the ordered pair, a normal condition.
	Extrinsics(fromStream, toStream string) (Extrinsics, bool)

	// SupportsMetadata reports whether the remote delivers per-frame
	// metadata
	SupportsMetadata() bool

	// OnMetadataAvailable registers the asynchronous metadata handler.
	// Called once, after proxy construction completes.
	OnMetadataAvailable(fn MetadataHandler) error
}
