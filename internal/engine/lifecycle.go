package engine

import (
	"fmt"
	"sync/atomic"
)

// State is the lifecycle state of a native handle.
type State int32

const (
	Uninitialized State = iota
	Created
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Created:
		return "created"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Lifecycle guards a native handle that must be destroyed exactly once and
// never used afterwards. Destroyed is terminal. The zero value is
// Uninitialized.
type Lifecycle struct {
	name  string
	state atomic.Int32
}

// NewLifecycle returns a guard whose errors mention name.
func NewLifecycle(name string) *Lifecycle {
	return &Lifecycle{name: name}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// MarkCreated moves the handle from Uninitialized to Created.
func (l *Lifecycle) MarkCreated() error {
	if l.state.CompareAndSwap(int32(Uninitialized), int32(Created)) {
		return nil
	}
	return l.err()
}

// Check returns nil if the handle may be used.
func (l *Lifecycle) Check() error {
	if l.State() == Created {
		return nil
	}
	return l.err()
}

// MarkDestroyed moves the handle from Created to Destroyed. Only the first
// call succeeds, so the caller releases the native resource only on nil.
func (l *Lifecycle) MarkDestroyed() error {
	if l.state.CompareAndSwap(int32(Created), int32(Destroyed)) {
		return nil
	}
	return l.err()
}

func (l *Lifecycle) err() error {
	switch l.State() {
	case Uninitialized:
		return fmt.Errorf("%s: %w", l.name, ErrNotCreated)
	case Destroyed:
		return fmt.Errorf("%s: %w", l.name, ErrDestroyed)
	}
	return fmt.Errorf("%s: already created", l.name)
}
