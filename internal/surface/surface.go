// Package surface owns the application window and its OpenGL context. It
// hands libmpv a proc-address resolver for that context and delivers window
// input to the control loop.
package surface

import (
	"fmt"
	"image"
	"runtime"
	"strings"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/depeter/glmpv/internal/config"
	"github.com/depeter/glmpv/internal/input"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// Window is a GLFW window with a current OpenGL context.
type Window struct {
	win    *glfw.Window
	log    *log.Logger
	events []input.Event
}

// New initializes GLFW, opens the window and makes its GL context current on
// the calling thread.
func New(wc config.WindowConfig, gc config.GLConfig, icon []image.Image, logger *log.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, gc.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, gc.Minor)
	if gc.Major > 3 || (gc.Major == 3 && gc.Minor >= 2) {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	win, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if len(icon) > 0 {
		win.SetIcon(icon)
	}

	w := &Window{win: win, log: logger}
	w.setCallbacks()

	logger.Info("window ready",
		"size", fmt.Sprintf("%dx%d", wc.Width, wc.Height),
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return w, nil
}

func (w *Window) setCallbacks() {
	w.win.SetCloseCallback(func(win *glfw.Window) {
		// The loop decides when to close.
		win.SetShouldClose(false)
		w.push(input.Close())
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(input.Event{Kind: input.KindResize, Width: width, Height: height})
	})
	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.push(input.Event{Kind: input.KindRefresh})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(input.Event{Kind: input.KindFocus, Focused: focused})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		fx, fy := w.toFramebuffer(x, y)
		w.push(input.Event{Kind: input.KindCursorMove, X: fx, Y: fy})
	})
	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.push(input.Event{Kind: input.KindCursorLeave})
		}
	})
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		fx, fy := w.toFramebuffer(win.GetCursorPos())
		w.push(input.Event{
			Kind:   input.KindMouseButton,
			X:      fx,
			Y:      fy,
			Button: mouseButton(button),
			Action: inputAction(action),
		})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(input.Event{Kind: input.KindScroll, DX: dx, DY: dy})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		w.push(input.Event{
			Kind:   input.KindKey,
			Key:    strings.ToLower(keyName(key, scancode)),
			Action: inputAction(action),
		})
	})
}

func (w *Window) push(ev input.Event) {
	w.events = append(w.events, ev)
}

// toFramebuffer converts window coordinates to framebuffer pixels.
func (w *Window) toFramebuffer(x, y float64) (float64, float64) {
	ww, wh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

func mouseButton(b glfw.MouseButton) input.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonRight:
		return input.ButtonRight
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	}
	return input.ButtonOther
}

func inputAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	}
	return input.Release
}

// ProcAddress resolves a GL entry point in the window's context, nil if the
// driver does not provide it.
func (w *Window) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Wait blocks until window events arrive or Wake is called.
func (w *Window) Wait() {
	glfw.WaitEvents()
}

// Poll processes pending window events without blocking.
func (w *Window) Poll() {
	glfw.PollEvents()
}

// Wake interrupts Wait. It is safe to call from any thread.
func (w *Window) Wake() {
	glfw.PostEmptyEvent()
}

// Events returns the events collected since the last call.
func (w *Window) Events() []input.Event {
	evs := w.events
	w.events = nil
	return evs
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// ContentScale returns the ratio between framebuffer pixels and screen
// coordinates the platform recommends for UI scaling.
func (w *Window) ContentScale() float64 {
	sx, _ := w.win.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return float64(sx)
}

// ResetState disables blending and sRGB conversion so the next mpv render
// starts from the state it expects.
func (w *Window) ResetState() {
	gl.Disable(gl.FRAMEBUFFER_SRGB)
	gl.Disable(gl.BLEND)
}

// Present swaps the back buffer to the screen. GLFW reports errors by
// panicking, which is turned into an error here.
func (w *Window) Present() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("swap buffers: %v", r)
		}
	}()
	w.win.SwapBuffers()
	return nil
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
