package topology

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTopologyDocument(t *testing.T) {
	payload := `{
		"info": {
			"name": "Intel RealSense D455",
			"serial": "123456789",
			"product-line": "D400",
			"product-id": "0B5C",
			"topic-root": "realsense/D455_123456789",
			"locked": true
		},
		"supports-metadata": true,
		"streams": [
			{
				"name": "Depth_0",
				"sensor-name": "Stereo Module",
				"type": "depth",
				"default-profile-index": 1,
				"profiles": [
					{"format": "Z16", "frequency": 15, "width": 640, "height": 480},
					{"format": "Z16", "frequency": 30, "width": 848, "height": 480}
				],
				"intrinsics": [
					{"width": 848, "height": 480, "principal-point-x": 424.5, "principal-point-y": 240.5,
					 "focal-length-x": 419.1, "focal-length-y": 419.1, "distortion-model": 4,
					 "distortion-coeffs": [0, 0, 0, 0, 0]}
				],
				"options": [{"name": "Exposure", "value": 33000}],
				"recommended-filters": ["Decimation Filter", "Temporal Filter"]
			},
			{
				"name": "Motion_0",
				"sensor-name": "Motion Module",
				"type": "motion",
				"default-profile-index": 0,
				"profiles": [{"format": "COMBINED_MOTION", "frequency": 200}],
				"motion-intrinsics": {
					"data": [1,0,0,0, 0,1,0,0, 0,0,1,0],
					"noise-variances": [0.01, 0.01, 0.01],
					"bias-variances": [0.001, 0.001, 0.001]
				}
			}
		],
		"extrinsics": [
			{"from": "Depth_0", "to": "Motion_0",
			 "transform": {"rotation": [1,0,0,0,1,0,0,0,1], "translation": [0.03, 0.005, 0.012]}}
		]
	}`

	var doc document
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))

	assert.Equal(t, "Intel RealSense D455", doc.Info.Name)
	assert.True(t, doc.Info.Locked)
	assert.True(t, doc.SupportsMetadata)
	require.Len(t, doc.Streams, 2)

	depth := doc.Streams[0]
	assert.Equal(t, "Stereo Module", depth.SensorName)
	assert.Equal(t, "depth", depth.Type)
	require.Len(t, depth.Profiles, 2)
	assert.Equal(t, 848, depth.Profiles[1].Width)
	require.Len(t, depth.VideoIntrinsics, 1)
	assert.Equal(t, float32(419.1), depth.VideoIntrinsics[0].FocalLengthX)
	assert.Equal(t, []string{"Decimation Filter", "Temporal Filter"}, depth.RecommendedFilters)

	motion := doc.Streams[1]
	require.NotNil(t, motion.MotionIntrinsics)
	assert.Equal(t, float32(0.01), motion.MotionIntrinsics.NoiseVariances[0])
	assert.Nil(t, motion.VideoIntrinsics)

	require.Len(t, doc.Extrinsics, 1)
	assert.Equal(t, "Depth_0", doc.Extrinsics[0].From)
	assert.Equal(t, float32(0.03), doc.Extrinsics[0].Transform.Translation[0])
}

func TestDefaultProfile(t *testing.T) {
	desc := StreamDescriptor{
		Profiles: []ProfileDescriptor{
			{Format: "Z16", Frequency: 15, Width: 640, Height: 480},
			{Format: "Z16", Frequency: 30, Width: 848, Height: 480},
		},
		DefaultProfileIndex: 1,
	}

	p, ok := desc.DefaultProfile()
	require.True(t, ok)
	assert.Equal(t, 848, p.Width)
	assert.Equal(t, 30, p.Frequency)
}

func TestDefaultProfileOutOfRangeFallsBack(t *testing.T) {
	desc := StreamDescriptor{
		Profiles:            []ProfileDescriptor{{Format: "Z16", Frequency: 15}},
		DefaultProfileIndex: 7,
	}

	p, ok := desc.DefaultProfile()
	require.True(t, ok)
	assert.Equal(t, 15, p.Frequency)
}

func TestDefaultIndex(t *testing.T) {
	two := []ProfileDescriptor{
		{Format: "Z16", Frequency: 15},
		{Format: "Z16", Frequency: 30},
	}

	assert.Equal(t, 1, StreamDescriptor{Profiles: two, DefaultProfileIndex: 1}.DefaultIndex())
	assert.Equal(t, 0, StreamDescriptor{Profiles: two, DefaultProfileIndex: 7}.DefaultIndex())
	assert.Equal(t, 0, StreamDescriptor{Profiles: two, DefaultProfileIndex: -1}.DefaultIndex())
}

func TestDefaultProfileEmpty(t *testing.T) {
	_, ok := StreamDescriptor{}.DefaultProfile()
	assert.False(t, ok)
}
