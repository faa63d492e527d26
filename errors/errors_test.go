package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAddsContext(t *testing.T) {
	base := New("boom")
	wrapped := Wrap(base, "catalog", "Build", "stream enumeration")

	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "catalog.Build")
	assert.Contains(t, wrapped.Error(), "stream enumeration failed")
	assert.True(t, Is(wrapped, base))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "c", "m", "a"))
	assert.NoError(t, WrapFatal(nil, "c", "m", "a"))
	assert.NoError(t, WrapInvalid(nil, "c", "m", "a"))
	assert.NoError(t, WrapTransient(nil, "c", "m", "a"))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"unknown stream type is fatal", ErrUnknownStreamType, ErrorFatal},
		{"wrapped unknown stream type is fatal", fmt.Errorf("stream 'Pose_0': %w", ErrUnknownStreamType), ErrorFatal},
		{"invalid config is fatal", ErrInvalidConfig, ErrorFatal},
		{"discovery timeout is transient", ErrDiscoveryTimeout, ErrorTransient},
		{"explicitly invalid wrap", WrapInvalid(New("bad"), "c", "m", "a"), ErrorInvalid},
		{"explicitly fatal wrap", WrapFatal(New("bad"), "c", "m", "a"), ErrorFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestIsBenignAbsence(t *testing.T) {
	assert.True(t, IsBenignAbsence(ErrNoRemoteStream))
	assert.True(t, IsBenignAbsence(ErrNoIntrinsics))
	assert.True(t, IsBenignAbsence(fmt.Errorf("Depth_0 -> Color_0: %w", ErrNoTransform)))
	assert.False(t, IsBenignAbsence(ErrUnknownStreamType))
	assert.False(t, IsBenignAbsence(nil))
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	base := New("socket closed")
	wrapped := WrapTransient(base, "natsclient", "Connect", "dial")

	var ce *ClassifiedError
	require.True(t, As(wrapped, &ce))
	assert.Equal(t, ErrorTransient, ce.Class)
	assert.Equal(t, "natsclient", ce.Component)
	assert.True(t, Is(wrapped, base))
}
