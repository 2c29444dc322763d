package flow

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned by Submit while an earlier submission is running.
var ErrBusy = errors.New("submission in progress")

type Phase int

const (
	Idle Phase = iota
	Submitting
	Resolved
)

func (p Phase) String() string {
	switch p {
	case Submitting:
		return "submitting"
	case Resolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Submission runs one action at a time. While Submitting the form's inputs
// count as disabled: a second Submit is refused with ErrBusy.
type Submission struct {
	mu    sync.Mutex
	phase Phase
}

// Submit moves to Submitting, runs fn, and resolves with its result.
func (s *Submission) Submit(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.phase == Submitting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.phase = Submitting
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	s.phase = Resolved
	s.mu.Unlock()
	return err
}

func (s *Submission) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Busy reports whether inputs should be disabled.
func (s *Submission) Busy() bool {
	return s.Phase() == Submitting
}

// Reset returns a resolved submission to Idle. It has no effect while
// Submitting.
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Resolved {
		s.phase = Idle
	}
}
