// Package notify provides a broadcast change signal.
//
// A waiter grabs the current channel with Changed before inspecting shared
// state, then blocks on it. Broadcast closes the channel and installs a fresh
// one, so every waiter that observed the old state wakes up and no wakeup is
// lost between the check and the wait:
//
//	ch := q.Changed()
//	if q.IsEmpty() {
//	    <-ch
//	}
package notify

import "sync"

// Signal is a reusable broadcast. The zero value is ready to use.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// Changed returns a channel closed by the next Broadcast.
func (s *Signal) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes every goroutine waiting on a channel returned by Changed.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}
