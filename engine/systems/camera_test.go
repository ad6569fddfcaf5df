package systems

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraSystemConfig(t *testing.T) {
	_, err := NewCameraSystem(&CameraSystemConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestCameraAcquireRelease(t *testing.T) {
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 1})
	require.NoError(t, err)

	def, err := cs.Acquire(DefaultCameraName)
	require.NoError(t, err)
	assert.Same(t, cs.GetDefault(), def)

	first, err := cs.Acquire("player")
	require.NoError(t, err)
	again, err := cs.Acquire("player")
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = cs.Acquire("spectator")
	assert.ErrorIs(t, err, core.ErrPoolExhausted)

	cs.Release("player")
	still, err := cs.Acquire("player")
	require.NoError(t, err)
	assert.Same(t, first, still)

	cs.Release("player")
	cs.Release("player")
	fresh, err := cs.Acquire("player")
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)

	// the default camera is never dropped
	cs.Release(DefaultCameraName)
	assert.Same(t, def, cs.GetDefault())
	require.NoError(t, cs.Shutdown())
}
