package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[int](2)
	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	assert.ErrorIs(t, rq.Enqueue(3), ErrQueueFull)

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, rq.Enqueue(3))
	head, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, head)

	var got []int
	rq.Drain(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{2, 3}, got)
	assert.True(t, rq.IsEmpty())

	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}
