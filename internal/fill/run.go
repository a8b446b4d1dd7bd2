package fill

import (
	"context"
	"sync"
	"time"
)

// State is the animation state of a run.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// Run is the control handle of one traversal. Pause, Resume and Cancel only
// set flags; the traversal samples them between steps, so a step already in
// progress always completes.
type Run struct {
	mu     sync.Mutex
	state  State
	resume chan struct{} // closed while not paused

	cancel     chan struct{}
	cancelOnce sync.Once

	done   chan struct{}
	result *Result
	err    error
}

func newRun() *Run {
	resume := make(chan struct{})
	close(resume)
	return &Run{
		state:  Running,
		resume: resume,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Pause stops the traversal before its next step. It has no effect on a
// finished run.
func (r *Run) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Running {
		return
	}
	r.state = Paused
	r.resume = make(chan struct{})
}

// Resume wakes a paused traversal immediately.
func (r *Run) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Paused {
		return
	}
	r.state = Running
	close(r.resume)
}

// Toggle pauses a running traversal or resumes a paused one.
func (r *Run) Toggle() {
	r.mu.Lock()
	paused := r.state == Paused
	r.mu.Unlock()
	if paused {
		r.Resume()
	} else {
		r.Pause()
	}
}

// Cancel asks the traversal to stop. Cells already colored stay colored.
func (r *Run) Cancel() {
	r.cancelOnce.Do(func() { close(r.cancel) })
}

func (r *Run) CancelRequested() bool {
	select {
	case <-r.cancel:
		return true
	default:
		return false
	}
}

func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Done is closed once the traversal has returned.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the traversal returns. The result is non-nil even when
// the run was canceled.
func (r *Run) Wait() (*Result, error) {
	<-r.done
	return r.result, r.err
}

func (r *Run) finish(res *Result, err error) {
	r.mu.Lock()
	if r.state == Paused {
		close(r.resume)
	}
	r.state = Idle
	r.result, r.err = res, err
	r.mu.Unlock()
	close(r.done)
}

// waitWhilePaused blocks until the run is resumed. It reports false when the
// run was canceled or ctx ended while waiting.
func (r *Run) waitWhilePaused(ctx context.Context) bool {
	for {
		r.mu.Lock()
		resume, paused := r.resume, r.state == Paused
		r.mu.Unlock()

		if !paused {
			return !r.CancelRequested() && ctx.Err() == nil
		}

		select {
		case <-resume:
		case <-r.cancel:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// sleep waits d, returning early on cancel or ctx end.
func (r *Run) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-r.cancel:
	case <-ctx.Done():
	}
}
