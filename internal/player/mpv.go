package player

/*
#cgo pkg-config: mpv
#include "glmpv.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime/cgo"
	"sync/atomic"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/go-mpv"

	"github.com/depeter/glmpv/internal/engine"
)

// Session owns the libmpv handle. Commands and option calls go through
// go-mpv; callback registration and the render API use the raw handle.
type Session struct {
	m           *mpv.Mpv
	lc          *engine.Lifecycle
	log         *log.Logger
	initialized bool
	wakeup      cgo.Handle

	// renderContexts counts live render contexts created from this session.
	renderContexts atomic.Int32
}

// NewSession creates the mpv handle. The handle is not initialized yet.
func NewSession(logger *log.Logger) (*Session, error) {
	m := mpv.New()
	if m == nil || rawHandle(m) == nil {
		return nil, errors.New("mpv_create failed")
	}
	s := &Session{
		m:   m,
		lc:  engine.NewLifecycle("engine"),
		log: logger,
	}
	if err := s.lc.MarkCreated(); err != nil {
		return nil, err
	}
	return s, nil
}

// rawHandle returns the mpv_handle wrapped by m.
// The mpv.Mpv struct's first (and only) field is *C.mpv_handle.
func rawHandle(m *mpv.Mpv) *C.mpv_handle {
	return *(**C.mpv_handle)(unsafe.Pointer(m))
}

func (s *Session) handle() *C.mpv_handle {
	return rawHandle(s.m)
}

// Configure applies options before Initialize. A failing option is logged
// and skipped; the number of failures is returned.
func (s *Session) Configure(opts []engine.Option) int {
	failed := 0
	for _, o := range opts {
		if err := s.m.SetOptionString(o.Name, o.Value); err != nil {
			s.log.Warn("mpv option not applied", "name", o.Name, "value", o.Value, "err", err)
			failed++
			continue
		}
		s.log.Debug("mpv option", "name", o.Name, "value", o.Value)
	}
	return failed
}

// RequestLogMessages asks mpv to queue log-message events at level and
// above. Failure is logged.
func (s *Session) RequestLogMessages(level string) {
	if err := s.lc.Check(); err != nil {
		s.log.Warn("mpv log messages not requested", "err", err)
		return
	}
	if err := s.m.RequestLogMessages(level); err != nil {
		s.log.Warn("mpv log messages not requested", "level", level, "err", err)
	}
}

// SetWakeupCallback registers fn to run on an mpv thread whenever events are
// queued. fn must not block or call into mpv.
func (s *Session) SetWakeupCallback(fn func()) error {
	if err := s.lc.Check(); err != nil {
		return err
	}
	h := cgo.NewHandle(fn)
	C.glmpv_set_wakeup_callback(s.handle(), C.uintptr_t(h))
	if s.wakeup != 0 {
		s.wakeup.Delete()
	}
	s.wakeup = h
	return nil
}

// Initialize starts the engine.
func (s *Session) Initialize() error {
	if err := s.lc.Check(); err != nil {
		return err
	}
	if err := s.m.Initialize(); err != nil {
		return fmt.Errorf("mpv init: %w", err)
	}
	s.initialized = true
	return nil
}

// LoadFile issues an asynchronous loadfile command. The outcome arrives
// later as a file-loaded or end-file event.
func (s *Session) LoadFile(path string) error {
	if err := s.lc.Check(); err != nil {
		return err
	}
	if err := checkMediaPath(path); err != nil {
		return err
	}
	if err := s.m.CommandAsync(0, []string{"loadfile", path}); err != nil {
		return fmt.Errorf("loadfile %s: %w", path, err)
	}
	return nil
}

// PollEvents drains the event queue without waiting. The returned slice ends
// with the EventNone sentinel.
func (s *Session) PollEvents() ([]engine.Event, error) {
	if err := s.lc.Check(); err != nil {
		return nil, err
	}
	var events []engine.Event
	for {
		ev := toEvent(s.m.WaitEvent(0))
		events = append(events, ev)
		if ev.Kind == engine.EventNone {
			return events, nil
		}
	}
}

// Destroy terminates the engine. All render contexts created from the
// session must be destroyed first.
func (s *Session) Destroy() error {
	if n := s.renderContexts.Load(); n > 0 {
		return fmt.Errorf("engine: %d %w", n, engine.ErrRenderContextAlive)
	}
	if err := s.lc.MarkDestroyed(); err != nil {
		return err
	}
	C.glmpv_clear_wakeup_callback(s.handle())
	s.m.TerminateDestroy()
	if s.wakeup != 0 {
		s.wakeup.Delete()
		s.wakeup = 0
	}
	return nil
}

type mpvError C.int

func (e mpvError) Error() string {
	return C.GoString(C.mpv_error_string(C.int(e)))
}
