package device

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/devicelink/errors"
	"github.com/c360/devicelink/metric"
	"github.com/c360/devicelink/stream"
)

func TestStreamIndexParsedIntoProfiles(t *testing.T) {
	remote := testRemote(infraredDescriptor(1), infraredDescriptor(2))

	proxy, err := NewProxy(Deps{Remote: remote})
	require.NoError(t, err)

	stereo := proxy.Sensors()[0]
	require.Len(t, stereo.Profiles(), 2)

	indices := map[int]bool{}
	for _, prof := range stereo.Profiles() {
		assert.Equal(t, stream.TypeInfrared, prof.Type)
		indices[prof.Index] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, indices)
}

func TestEveryStreamGetsGraphNode(t *testing.T) {
	// No extrinsics registered at all: nodes still exist, with zero edges
	remote := testRemote(depthDescriptor(), colorDescriptor(), motionDescriptor())

	proxy, err := NewProxy(Deps{Remote: remote})
	require.NoError(t, err)

	for _, name := range []string{"Depth_0", "Color_0", "Motion_0"} {
		_, ok := proxy.StreamNode(name)
		assert.True(t, ok, "stream %s must have a graph node", name)
	}
	assert.Equal(t, 0, proxy.Graph().EdgeCount())
}

func TestProxyMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	remote := testRemote(depthDescriptor(), colorDescriptor())

	proxy, err := NewProxy(Deps{Remote: remote, MetricsRegistry: registry})
	require.NoError(t, err)
	require.NotNil(t, proxy.metrics)

	// Two streams cataloged, three profiles linked (two depth, one color)
	assert.Equal(t, float64(2), testutil.ToFloat64(proxy.metrics.streamsCataloged))
	assert.Equal(t, float64(3), testutil.ToFloat64(proxy.metrics.profilesLinked))
	assert.Equal(t, float64(0), testutil.ToFloat64(proxy.metrics.profilesOrphaned))
}

func TestProxyMetricsRegistrationConflict(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	_, err := NewProxy(Deps{Remote: testRemote(depthDescriptor()), MetricsRegistry: registry})
	require.NoError(t, err)

	// A second proxy for the same serial collides in the registry; the
	// conflict must surface instead of silently exporting nothing
	proxy, err := NewProxy(Deps{Remote: testRemote(depthDescriptor()), MetricsRegistry: registry})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Nil(t, proxy)
}

func TestMetricsDisabledWithoutRegistry(t *testing.T) {
	remote := testRemote(depthDescriptor())

	proxy, err := NewProxy(Deps{Remote: remote})
	require.NoError(t, err)
	assert.Nil(t, proxy.metrics)
}
