package notify

import (
	"sync"
	"time"
)

// ScheduledCall is one recorded AfterFunc invocation.
type ScheduledCall struct {
	Delay     time.Duration
	Fn        func()
	Cancelled bool
}

// RecordingScheduler is a Scheduler for tests: it records scheduled calls
// instead of arming timers, and fires them on demand.
type RecordingScheduler struct {
	mu    sync.Mutex
	calls []*ScheduledCall
}

// NewRecordingScheduler creates an empty recording scheduler.
func NewRecordingScheduler() *RecordingScheduler {
	return &RecordingScheduler{}
}

func (s *RecordingScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := &ScheduledCall{Delay: d, Fn: fn}
	s.calls = append(s.calls, call)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		call.Cancelled = true
	}
}

// Calls returns a copy of the recorded calls in scheduling order.
func (s *RecordingScheduler) Calls() []ScheduledCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ScheduledCall, len(s.calls))
	for i, c := range s.calls {
		out[i] = *c
	}
	return out
}

// Fire runs the i-th scheduled call unless it was cancelled.
func (s *RecordingScheduler) Fire(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.calls) {
		s.mu.Unlock()
		return
	}
	call := s.calls[i]
	s.mu.Unlock()

	if !call.Cancelled {
		call.Fn()
	}
}

// FireAll runs every non-cancelled scheduled call in order.
func (s *RecordingScheduler) FireAll() {
	s.mu.Lock()
	n := len(s.calls)
	s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.Fire(i)
	}
}
