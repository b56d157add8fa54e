// Package input holds the window events delivered to the control loop. The
// types are independent of the windowing backend so the loop and the overlay
// can be exercised without a display.
package input

// Kind identifies a window event.
type Kind int

const (
	KindClose       Kind = iota // close requested by the window manager
	KindResize                  // framebuffer size changed
	KindRefresh                 // contents damaged, needs repaint
	KindCursorMove              // cursor moved, X/Y in framebuffer pixels
	KindCursorLeave             // cursor left the window
	KindMouseButton             // button pressed or released at X/Y
	KindKey                     // keyboard key
	KindScroll                  // wheel/trackpad scroll, DX/DY
	KindFocus                   // focus gained or lost
)

var kindNames = [...]string{
	KindClose:       "close",
	KindResize:      "resize",
	KindRefresh:     "refresh",
	KindCursorMove:  "cursor-move",
	KindCursorLeave: "cursor-leave",
	KindMouseButton: "mouse-button",
	KindKey:         "key",
	KindScroll:      "scroll",
	KindFocus:       "focus",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Action is the state transition of a button or key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Event is a single window event.
type Event struct {
	Kind   Kind
	X, Y   float64
	DX, DY float64
	Width  int
	Height int
	Button Button
	Action Action
	// Key is the lower-case key name ("escape", "q", "space"), empty for
	// keys without a name.
	Key     string
	Focused bool
}

// Close returns a close-requested event.
func Close() Event { return Event{Kind: KindClose} }

// IsClose reports whether the event asks the application to quit.
func (e Event) IsClose() bool { return e.Kind == KindClose }
