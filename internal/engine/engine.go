// Package engine defines what the control loop needs from a video engine,
// independent of the libmpv binding: the event model, option lists and the
// lifecycle rules of the engine's native handles.
package engine

import (
	"errors"
	"sort"
)

var (
	// ErrNotCreated is returned when a handle is used before it exists.
	ErrNotCreated = errors.New("handle not created")
	// ErrDestroyed is returned when a handle is used after it was destroyed.
	ErrDestroyed = errors.New("handle already destroyed")
	// ErrRenderContextAlive is returned when an engine is destroyed while a
	// render context created from it has not been destroyed yet.
	ErrRenderContextAlive = errors.New("render context still alive")
)

// EventKind classifies events drained from the engine queue.
type EventKind int

const (
	// EventNone is the sentinel that ends a drain.
	EventNone EventKind = iota
	EventLog
	EventFileLoaded
	EventEndFile
	EventShutdown
	// EventOther is any event the loop does not act on.
	EventOther
)

// LogMessage is the payload of an EventLog event.
type LogMessage struct {
	Prefix string // engine module that produced the message
	Level  string // engine severity name: fatal, error, warn, info, status, v, debug, trace
	Text   string
}

// Event is one entry drained from the engine event queue.
type Event struct {
	Kind EventKind
	// Name is the engine's own name for the event, for diagnostics.
	Name string
	Log  LogMessage
	Err  error
}

// Option is a single engine option applied before initialization.
type Option struct {
	Name  string
	Value string
}

// Options builds an ordered option list: the fixed options first, in the
// order given, followed by extra sorted by name. Empty values are skipped and
// a fixed option wins over an extra with the same name.
func Options(fixed []Option, extra map[string]string) []Option {
	seen := make(map[string]bool, len(fixed))
	out := make([]Option, 0, len(fixed)+len(extra))
	for _, o := range fixed {
		if o.Value == "" || seen[o.Name] {
			continue
		}
		seen[o.Name] = true
		out = append(out, o)
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if v := extra[name]; v != "" {
			out = append(out, Option{Name: name, Value: v})
		}
	}
	return out
}
