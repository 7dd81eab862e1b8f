package runner

import (
	"context"
	"sync"

	"github.com/vburojevic/convlog/internal/analyzer"
)

// Job is a run executing on a background goroutine. Progress is delivered on
// Events; the channel is closed once the run has finished.
type Job struct {
	events chan Event
	done   chan struct{}
	cancel context.CancelFunc

	mu     sync.Mutex
	result *Result
	err    error
}

// Start launches Run in the background. Callers must drain Events or Cancel
// the job; once cancelled, undelivered events are dropped.
func Start(ctx context.Context, opts Options, agg *analyzer.Aggregator) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(j.done)
		defer close(j.events)

		emit := func(ev Event) {
			select {
			case j.events <- ev:
			case <-ctx.Done():
			}
		}
		result, err := Run(ctx, opts, agg, emit)

		j.mu.Lock()
		j.result, j.err = result, err
		j.mu.Unlock()
	}()

	return j
}

// Events returns the progress channel
func (j *Job) Events() <-chan Event { return j.events }

// Done is closed when the run has finished
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel stops the run; it is safe to call more than once
func (j *Job) Cancel() { j.cancel() }

// Wait blocks until the run finishes and returns its outcome
func (j *Job) Wait() (*Result, error) {
	<-j.done
	j.cancel()

	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.err
}
