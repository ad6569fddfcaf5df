package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierReusesLowestFreeSlot(t *testing.T) {
	ids := NewIdentifier[uint32, string](0)

	a, err := ids.AquireNewID("a")
	require.NoError(t, err)
	b, err := ids.AquireNewID("b")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)

	require.NoError(t, ids.ReleaseID(a))
	c, err := ids.AquireNewID("c")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), c)

	owner, ok := ids.Owner(c)
	assert.True(t, ok)
	assert.Equal(t, "c", owner)
	assert.Equal(t, 2, ids.InUse())
}

func TestIdentifierLimit(t *testing.T) {
	ids := NewIdentifier[uint16, int](1)
	_, err := ids.AquireNewID(1)
	require.NoError(t, err)

	_, err = ids.AquireNewID(2)
	assert.ErrorIs(t, err, ErrPoolExhausted)

	assert.ErrorIs(t, ids.ReleaseID(5), ErrOutOfRange)
}

func TestFrameMetricsAverage(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	assert.InDelta(t, 16.0, m.FrameTime(), 0.0001)

	// 63 frames at 16ms cross the one second mark
	for i := 0; i < 33; i++ {
		m.Update(0.016)
	}
	assert.Equal(t, float64(62), m.FPS())
}

func TestClockElapsed(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	now = base.Add(1500 * time.Millisecond)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	now = base.Add(5 * time.Second)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}

func TestSetLogLevel(t *testing.T) {
	assert.True(t, SetLogLevel("warn"))
	assert.False(t, SetLogLevel("loud"))
	assert.True(t, SetLogLevel("debug"))
}
