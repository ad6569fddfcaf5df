package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobCallbacksRunOnUpdate(t *testing.T) {
	js, err := NewJobSystem(4, 16)
	require.NoError(t, err)

	boom := errors.New("boom")
	var completed []int
	var failed []error
	for i := 0; i < 8; i++ {
		js.Submit(JobTask{
			Name: "square",
			Run: func() (any, error) {
				if i == 3 {
					return nil, boom
				}
				return i * i, nil
			},
			OnComplete: func(result any) { completed = append(completed, result.(int)) },
			OnFailure:  func(err error) { failed = append(failed, err) },
		})
	}

	require.Eventually(t, func() bool {
		js.Update()
		return js.Pending() == 0
	}, time.Second, time.Millisecond)

	assert.ElementsMatch(t, []int{0, 1, 4, 16, 25, 36, 49}, completed)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], boom)
	assert.Equal(t, 0, js.Update())
	require.NoError(t, js.Shutdown())
}

func TestJobWithoutCallbacks(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)

	ran := make(chan struct{})
	js.Submit(JobTask{Name: "fire and forget", Run: func() (any, error) {
		close(ran)
		return nil, nil
	}})
	<-ran
	require.NoError(t, js.Shutdown())

	assert.Equal(t, 1, js.Update())
	assert.Equal(t, 0, js.Pending())
}
