package stream

import "fmt"

// ProfileKind discriminates the closed Video | Motion profile union
type ProfileKind int

// Profile kinds
const (
	KindVideo ProfileKind = iota
	KindMotion
)

// String returns the string representation of ProfileKind
func (k ProfileKind) String() string {
	if k == KindMotion {
		return "motion"
	}
	return "video"
}

// VideoIntrinsics holds per-resolution calibration for a video profile.
// Stored as plain captured data on the profile record, never behind a
// re-bindable accessor, so a profile's intrinsics can never alias another
// profile's.
type VideoIntrinsics struct {
	Width            int
	Height           int
	PrincipalPointX  float32
	PrincipalPointY  float32
	FocalLengthX     float32
	FocalLengthY     float32
	DistortionModel  int
	DistortionCoeffs [5]float32
}

// MotionIntrinsics holds the single calibration record of a motion stream
type MotionIntrinsics struct {
	Data           [12]float32
	NoiseVariances [3]float32
	BiasVariances  [3]float32
}

// Profile is the consumer-facing stream-profile record. Profiles live in a
// per-sensor arena addressed by index; maps elsewhere hold arena handles,
// never pointers, so a synthesis step replacing records cannot orphan a
// reference.
type Profile struct {
	Kind  ProfileKind
	Type  Type
	Index int

	// UniqueID is the public identity, initially the owning stream's
	// Identity.UniqueID. Local synthesis is permitted to clear it; the
	// post-link pass restores it.
	UniqueID uint32

	Format string
	FPS    int

	// Video shape only
	Width  int
	Height int

	Default bool

	// At most one of these is set, matching Kind. Nil means the remote
	// stream carried no calibration for this profile, a normal condition.
	Video  *VideoIntrinsics
	Motion *MotionIntrinsics
}

// Key returns the type+index re-linking key for this profile
func (p Profile) Key() TypeIndexKey {
	return TypeIndexKey{Type: p.Type, Index: p.Index}
}

// HasIntrinsics reports whether calibration data is attached
func (p Profile) HasIntrinsics() bool {
	switch p.Kind {
	case KindMotion:
		return p.Motion != nil
	default:
		return p.Video != nil
	}
}

// String renders the profile for debug logs
func (p Profile) String() string {
	if p.Kind == KindMotion {
		return fmt.Sprintf("%s %d %s @ %d", p.Type, p.Index, p.Format, p.FPS)
	}
	return fmt.Sprintf("%s %d %s %dx%d @ %d", p.Type, p.Index, p.Format, p.Width, p.Height, p.FPS)
}
