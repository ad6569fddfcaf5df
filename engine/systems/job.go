package systems

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/ray/engine/core"
)

// JobTask is CPU work run on a worker. OnComplete and OnFailure run later
// on the thread calling Update, so they may touch the device.
type JobTask struct {
	Name       string
	Run        func() (any, error)
	OnComplete func(result any)
	OnFailure  func(err error)
}

type jobResult struct {
	task   JobTask
	result any
	err    error
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mutex   sync.Mutex
	results []jobResult
	pending atomic.Int32
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.Run()
				if err != nil {
					core.LogError("job '%s' failed: %s", job.Name, err)
				}
				js.mutex.Lock()
				js.results = append(js.results, jobResult{task: job, result: result, err: err})
				js.mutex.Unlock()
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run; their callbacks
 * are dropped.
 */
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

/**
 * @brief Runs the callbacks of finished jobs. Should happen once an update
 * cycle, on the main thread.
 */
func (js *JobSystem) Update() int {
	js.mutex.Lock()
	results := js.results
	js.results = nil
	js.mutex.Unlock()

	for _, r := range results {
		if r.err != nil {
			if r.task.OnFailure != nil {
				r.task.OnFailure(r.err)
			}
		} else if r.task.OnComplete != nil {
			r.task.OnComplete(r.result)
		}
		js.pending.Add(-1)
	}
	return len(results)
}

// Pending is the number of submitted jobs whose callbacks have not run yet.
func (js *JobSystem) Pending() int {
	return int(js.pending.Load())
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) {
	js.pending.Add(1)
	js.jobQueue <- jt
}
