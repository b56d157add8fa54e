// Package overlay draws the immediate-mode control panel on top of the
// video: a heading and a Quit button.
package overlay

import (
	"image"
	"math"
	"strings"

	"github.com/depeter/glmpv/internal/config"
	"github.com/depeter/glmpv/internal/input"
)

// Layout constants in unscaled pixels.
const (
	panelMargin   = 10
	buttonPadX    = 12
	buttonPadY    = 6
	panelRadius   = 6
	buttonRadius  = 4
	quitLabel     = "Quit"
	minPanelWidth = 120
)

// MeasureFunc returns the width and line height of s in pixels.
type MeasureFunc func(s string) (w, h float64)

// Rect is an axis aligned rectangle in framebuffer pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bounds returns the smallest integer rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	)
}

// Layout positions the panel parts. Heading and Button are relative to the
// panel origin; Panel is in framebuffer pixels.
type Layout struct {
	Panel       Rect
	Heading     Rect
	Button      Rect
	Scale       float64
	FontSize    float64
	HeadingText string
	ButtonText  string
}

// Panel holds the interaction state of the overlay. It is only touched from
// the loop thread.
type Panel struct {
	heading  string
	quitKey  string
	x, y     float64
	fontSize float64
	scale    float64
	measure  MeasureFunc

	layout  Layout
	valid   bool
	hovered bool
	pressed bool
	quit    bool
	version uint64
}

// NewPanel builds a panel from the overlay settings. scale is the display
// content scale; measure reports text extents at the scaled font size.
func NewPanel(cfg config.OverlayConfig, scale float64, measure MeasureFunc) *Panel {
	if scale <= 0 {
		scale = 1
	}
	return &Panel{
		heading:  cfg.Heading,
		quitKey:  strings.ToLower(cfg.QuitKey),
		x:        cfg.X,
		y:        cfg.Y,
		fontSize: cfg.FontSize,
		scale:    scale,
		measure:  measure,
	}
}

func (p *Panel) scaled(base float64) float64 {
	return base * p.scale
}

// Layout computes (once) and returns the panel geometry.
func (p *Panel) Layout() Layout {
	if p.valid {
		return p.layout
	}
	margin := p.scaled(panelMargin)
	hw, hh := p.measure(p.heading)
	bw, bh := p.measure(quitLabel)

	button := Rect{
		X: margin,
		Y: margin + hh + margin,
		W: bw + 2*p.scaled(buttonPadX),
		H: bh + 2*p.scaled(buttonPadY),
	}
	width := math.Max(hw, button.W) + 2*margin
	width = math.Max(width, p.scaled(minPanelWidth))

	p.layout = Layout{
		Panel: Rect{
			X: p.scaled(p.x),
			Y: p.scaled(p.y),
			W: math.Ceil(width),
			H: math.Ceil(button.Y + button.H + margin),
		},
		Heading:     Rect{X: margin, Y: margin, W: hw, H: hh},
		Button:      button,
		Scale:       p.scale,
		FontSize:    p.scaled(p.fontSize),
		HeadingText: p.heading,
		ButtonText:  quitLabel,
	}
	p.valid = true
	return p.layout
}

// buttonAt reports whether the framebuffer point lies on the Quit button.
func (p *Panel) buttonAt(x, y float64) bool {
	l := p.Layout()
	return l.Button.Contains(x-l.Panel.X, y-l.Panel.Y)
}

// HandleInput updates hover, press and quit state from a window event.
func (p *Panel) HandleInput(ev input.Event) {
	switch ev.Kind {
	case input.KindCursorMove:
		p.setHovered(p.buttonAt(ev.X, ev.Y))
	case input.KindCursorLeave:
		p.setHovered(false)
		p.setPressed(false)
	case input.KindFocus:
		if !ev.Focused {
			p.setPressed(false)
		}
	case input.KindMouseButton:
		if ev.Button != input.ButtonLeft {
			return
		}
		over := p.buttonAt(ev.X, ev.Y)
		p.setHovered(over)
		switch ev.Action {
		case input.Press:
			p.setPressed(over)
		case input.Release:
			if p.pressed && over {
				p.activate()
			}
			p.setPressed(false)
		}
	case input.KindKey:
		if ev.Action == input.Press && p.quitKey != "" && ev.Key == p.quitKey {
			p.activate()
		}
	}
}

func (p *Panel) setHovered(v bool) {
	if p.hovered != v {
		p.hovered = v
		p.version++
	}
}

func (p *Panel) setPressed(v bool) {
	if p.pressed != v {
		p.pressed = v
		p.version++
	}
}

func (p *Panel) activate() {
	if !p.quit {
		p.quit = true
		p.version++
	}
}

// Hovered reports whether the cursor is over the Quit button.
func (p *Panel) Hovered() bool { return p.hovered }

// Pressed reports whether the Quit button is held down.
func (p *Panel) Pressed() bool { return p.pressed }

// QuitRequested reports whether Quit was activated. It stays true.
func (p *Panel) QuitRequested() bool { return p.quit }

// Version changes whenever the panel needs repainting.
func (p *Panel) Version() uint64 { return p.version }
