package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		tag  string
		want Type
	}{
		{"depth", TypeDepth},
		{"color", TypeColor},
		{"ir", TypeInfrared},
		{"motion", TypeMotion},
		{"confidence", TypeConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseType(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeUnknownTag(t *testing.T) {
	for _, tag := range []string{"pose", "fisheye", "", "DEPTH"} {
		_, err := ParseType(tag)
		require.Error(t, err, "tag %q", tag)
		assert.Contains(t, err.Error(), "unknown stream type")
	}
}

func TestIndexFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Depth_0", 0},
		{"Infrared_1", 1},
		{"Infrared_2", 2},
		{"Gyro_12", 12},
		{"Color", 0},
		{"", 0},
		{"Motion_Module_3", 3}, // last delimiter wins
		{"Depth_x", 0},         // non-numeric suffix
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexFromName(tt.name))
		})
	}
}

func TestIdentityOrdering(t *testing.T) {
	a := Identity{UniqueID: 1, Index: 0}
	b := Identity{UniqueID: 1, Index: 1}
	c := Identity{UniqueID: 2, Index: 0}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
	assert.False(t, a.Less(a))
}

func TestIDAllocatorMonotonic(t *testing.T) {
	alloc := NewIDAllocator()

	seen := make(map[uint32]bool)
	prev := uint32(0)
	for i := 0; i < 100; i++ {
		id := alloc.Next()
		assert.Greater(t, id, prev)
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
		prev = id
	}
}

func TestIDAllocatorZeroMeansUnset(t *testing.T) {
	alloc := NewIDAllocator()
	assert.Equal(t, uint32(1), alloc.Next())
}

func TestProfileKey(t *testing.T) {
	p := Profile{Kind: KindVideo, Type: TypeInfrared, Index: 2, Format: "Y8", FPS: 30, Width: 640, Height: 480}
	assert.Equal(t, TypeIndexKey{Type: TypeInfrared, Index: 2}, p.Key())
	assert.Equal(t, "infrared.2", p.Key().String())
}

func TestProfileString(t *testing.T) {
	video := Profile{Kind: KindVideo, Type: TypeDepth, Format: "Z16", FPS: 30, Width: 1280, Height: 720}
	assert.Equal(t, "depth 0 Z16 1280x720 @ 30", video.String())

	motion := Profile{Kind: KindMotion, Type: TypeMotion, Format: "COMBINED_MOTION", FPS: 200}
	assert.Equal(t, "motion 0 COMBINED_MOTION @ 200", motion.String())
}

func TestProfileHasIntrinsics(t *testing.T) {
	var p Profile
	assert.False(t, p.HasIntrinsics())

	p.Video = &VideoIntrinsics{Width: 640, Height: 480}
	assert.True(t, p.HasIntrinsics())

	m := Profile{Kind: KindMotion}
	assert.False(t, m.HasIntrinsics())
	m.Motion = &MotionIntrinsics{}
	assert.True(t, m.HasIntrinsics())
}
