package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/depeter/glmpv/internal/engine"
	"github.com/depeter/glmpv/internal/frame"
	"github.com/depeter/glmpv/internal/input"
	"github.com/depeter/glmpv/internal/logging"
)

// Surface is the window side of the loop. All methods run on the loop thread.
type Surface interface {
	// Wait blocks until window events arrive or Wake is called.
	Wait()
	// Poll processes pending window events without blocking.
	Poll()
	// Events returns and clears the window events collected by Wait or Poll.
	Events() []input.Event
	FramebufferSize() (width, height int)
	// ResetState restores the blend and sRGB state after the overlay.
	ResetState()
	// Present swaps the back buffer to the screen.
	Present() error
}

// Engine is the engine session as seen by the loop.
type Engine interface {
	// PollEvents drains the engine queue without blocking. The last element
	// is always the EventNone sentinel.
	PollEvents() ([]engine.Event, error)
	Destroy() error
}

// Renderer is the render context as seen by the loop.
type Renderer interface {
	Render(frame.Target) error
	// NotifyUpdateProcessed acknowledges a render-ready signal and reports
	// whether a new video frame is waiting.
	NotifyUpdateProcessed() (bool, error)
	// ReportSwap tells the engine a frame was presented.
	ReportSwap()
	Destroy() error
}

// Overlay is the UI layer composited above the video.
type Overlay interface {
	OnInputEvent(input.Event)
	// Draw paints the overlay into the current framebuffer and reports
	// whether the quit control was activated. With a non-positive size it
	// paints nothing and only reports quit.
	Draw(width, height int) (quit bool, err error)
}

// Options configure a Loop. Overlay may be nil.
type Options struct {
	Surface  Surface
	Engine   Engine
	Renderer Renderer
	Overlay  Overlay
	Mailbox  *Mailbox
	Logger   *log.Logger

	// FlipY and AdvancedControl are copied into every frame target.
	FlipY           bool
	AdvancedControl bool
}

// Stats counts what the loop did. Only read after Run returns.
type Stats struct {
	Redraws      int
	RenderReady  int
	EngineDrains int
}

// Loop is the single-threaded control loop. It owns the render context and
// the engine session from the moment Run starts and destroys both, render
// context first, when the window or the overlay asks to quit.
type Loop struct {
	surface  Surface
	engine   Engine
	renderer Renderer
	overlay  Overlay
	mailbox  *Mailbox
	log      *log.Logger
	engLog   *log.Logger

	flipY    bool
	advanced bool

	redraw bool
	exited bool
	stats  Stats
}

// NewLoop returns a loop over the given collaborators.
func NewLoop(opts Options) *Loop {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	l := &Loop{
		surface:  opts.Surface,
		engine:   opts.Engine,
		renderer: opts.Renderer,
		overlay:  opts.Overlay,
		mailbox:  opts.Mailbox,
		log:      logging.Sub(opts.Logger, "loop"),
		engLog:   logging.Sub(opts.Logger, "engine"),
		flipY:    opts.FlipY,
		advanced: opts.AdvancedControl,
	}
	if l.mailbox == nil {
		l.mailbox = NewMailbox(nil)
	}
	return l
}

// Stats returns the loop counters.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Exited reports whether the loop has torn down the engine.
func (l *Loop) Exited() bool {
	return l.exited
}

// Run processes wake signals until the window or the overlay requests a
// close. It returns nil after an orderly teardown and an error for fatal
// conditions such as a lost surface.
func (l *Loop) Run() error {
	// Draw once before the first video frame arrives.
	l.redraw = true
	for {
		if l.idle() {
			l.surface.Wait()
		} else {
			l.surface.Poll()
		}
		if err := l.dispatch(); err != nil {
			return err
		}
		if l.exited {
			return nil
		}
		if l.redraw {
			l.redraw = false
			if err := l.draw(); err != nil {
				return err
			}
			if l.exited {
				return nil
			}
		}
	}
}

func (l *Loop) idle() bool {
	return !l.redraw && l.mailbox.Pending() == 0
}

// dispatch handles window events, then engine signals. Redraw requests made
// here collapse into the single draw that follows.
func (l *Loop) dispatch() error {
	for _, ev := range l.surface.Events() {
		if err := l.handleWindowEvent(ev); err != nil {
			return err
		}
		if l.exited {
			return nil
		}
	}
	for {
		s, ok := l.mailbox.TryReceive()
		if !ok {
			return nil
		}
		if err := l.handleSignal(s); err != nil {
			return err
		}
		if l.exited {
			return nil
		}
	}
}

func (l *Loop) handleWindowEvent(ev input.Event) error {
	if ev.IsClose() {
		return l.shutdown("window closed")
	}
	if l.overlay != nil {
		l.overlay.OnInputEvent(ev)
	}
	l.redraw = true
	return nil
}

func (l *Loop) handleSignal(s Signal) error {
	switch s {
	case SignalRenderReady:
		l.stats.RenderReady++
		hasFrame, err := l.renderer.NotifyUpdateProcessed()
		if err != nil {
			return fmt.Errorf("render context update: %w", err)
		}
		if hasFrame {
			l.log.Debug("new video frame")
		}
		l.redraw = true
	case SignalEngineEvents:
		return l.drainEngine()
	}
	return nil
}

func (l *Loop) drainEngine() error {
	l.stats.EngineDrains++
	events, err := l.engine.PollEvents()
	if err != nil {
		return fmt.Errorf("engine events: %w", err)
	}
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventNone:
			return nil
		case engine.EventLog:
			logging.Engine(l.engLog, ev.Log)
			continue
		case engine.EventFileLoaded:
			l.engLog.Info("file loaded")
		case engine.EventEndFile:
			if ev.Err != nil {
				l.engLog.Warn("playback ended", "err", ev.Err)
			} else {
				l.engLog.Info("playback ended")
			}
		case engine.EventShutdown:
			l.engLog.Debug("event", "name", ev.Name)
			return l.shutdown("engine shut down")
		}
		l.engLog.Debug("event", "name", ev.Name)
	}
	return nil
}

func (l *Loop) draw() error {
	width, height := l.surface.FramebufferSize()
	target := frame.NewTarget(width, height, l.flipY, l.advanced)
	if target.Empty() {
		l.log.Debug("skipping redraw of empty framebuffer", "target", target)
		// A minimized window still honours Quit.
		if l.overlay != nil {
			quit, err := l.overlay.Draw(width, height)
			if err != nil {
				return fmt.Errorf("overlay: %w", err)
			}
			if quit {
				return l.shutdown("quit from overlay")
			}
		}
		return nil
	}

	if err := l.renderer.Render(target); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	quit := false
	if l.overlay != nil {
		var err error
		if quit, err = l.overlay.Draw(width, height); err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
	}
	l.surface.ResetState()
	if err := l.surface.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	l.renderer.ReportSwap()
	l.stats.Redraws++

	if quit {
		return l.shutdown("quit from overlay")
	}
	return nil
}

// shutdown destroys the render context, then the engine, and stops the
// loop. Signals raised afterwards are discarded.
func (l *Loop) shutdown(reason string) error {
	if l.exited {
		return nil
	}
	l.exited = true
	l.mailbox.Close()
	l.log.Info("shutting down", "reason", reason)

	if err := l.renderer.Destroy(); err != nil {
		return fmt.Errorf("destroy render context: %w", err)
	}
	if err := l.engine.Destroy(); err != nil {
		return fmt.Errorf("destroy engine: %w", err)
	}
	return nil
}
