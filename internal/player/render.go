package player

/*
#include "glmpv.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/depeter/glmpv/internal/engine"
	"github.com/depeter/glmpv/internal/frame"
)

// ProcAddressFunc resolves an OpenGL entry point by name in the current
// context, returning nil when it does not exist.
type ProcAddressFunc func(name string) unsafe.Pointer

// RenderContext is an mpv OpenGL render context. Every method except
// SetUpdateCallback must run on the thread that owns the GL context.
type RenderContext struct {
	ctx     *C.mpv_render_context
	session *Session
	lc      *engine.Lifecycle
	log     *log.Logger

	resolver cgo.Handle
	update   cgo.Handle
}

// NewRenderContext creates an OpenGL render context for an initialized
// session. resolve is called by mpv during creation and later while
// rendering. With advanced set, mpv may issue GL calls on the caller's
// thread.
func NewRenderContext(s *Session, resolve ProcAddressFunc, advanced bool, logger *log.Logger) (*RenderContext, error) {
	if err := s.lc.Check(); err != nil {
		return nil, err
	}
	if !s.initialized {
		return nil, errors.New("engine not initialized")
	}

	resolver := cgo.NewHandle(ProcAddressFunc(func(name string) unsafe.Pointer {
		addr := resolve(name)
		logger.Debug("get_proc_address", "name", name, "found", addr != nil)
		return addr
	}))

	adv := C.int(0)
	if advanced {
		adv = 1
	}
	var ctx *C.mpv_render_context
	if rc := C.glmpv_render_context_create(&ctx, s.handle(), C.uintptr_t(resolver), adv); rc < 0 {
		resolver.Delete()
		return nil, fmt.Errorf("mpv_render_context_create: %w", mpvError(rc))
	}

	r := &RenderContext{
		ctx:      ctx,
		session:  s,
		lc:       engine.NewLifecycle("render context"),
		log:      logger,
		resolver: resolver,
	}
	if err := r.lc.MarkCreated(); err != nil {
		return nil, err
	}
	s.renderContexts.Add(1)
	return r, nil
}

// SetUpdateCallback registers fn to run on an mpv thread whenever a new
// frame can be rendered. fn must not block or call into mpv.
func (r *RenderContext) SetUpdateCallback(fn func()) error {
	if err := r.lc.Check(); err != nil {
		return err
	}
	h := cgo.NewHandle(fn)
	C.glmpv_set_update_callback(r.ctx, C.uintptr_t(h))
	if r.update != 0 {
		r.update.Delete()
	}
	r.update = h
	return nil
}

// Render draws the current video frame into t.
func (r *RenderContext) Render(t frame.Target) error {
	if err := r.lc.Check(); err != nil {
		return err
	}
	rc := C.glmpv_render(r.ctx,
		C.int(t.FBO), C.int(t.Width), C.int(t.Height), C.int(t.InternalFormat),
		cBool(t.FlipY), cBool(t.AdvancedControl))
	if rc < 0 {
		return fmt.Errorf("mpv_render_context_render %v: %w", t, mpvError(rc))
	}
	return nil
}

// NotifyUpdateProcessed acknowledges an update callback. It reports whether
// mpv has a new frame to render.
func (r *RenderContext) NotifyUpdateProcessed() (bool, error) {
	if err := r.lc.Check(); err != nil {
		return false, err
	}
	flags := C.mpv_render_context_update(r.ctx)
	return flags&C.uint64_t(C.MPV_RENDER_UPDATE_FRAME) != 0, nil
}

// ReportSwap tells mpv the last rendered frame was presented.
func (r *RenderContext) ReportSwap() {
	if r.lc.Check() != nil {
		return
	}
	C.mpv_render_context_report_swap(r.ctx)
}

// Destroy frees the render context and its GL resources. It must run on the
// GL thread, with no render in progress, before the session is destroyed.
func (r *RenderContext) Destroy() error {
	if err := r.lc.MarkDestroyed(); err != nil {
		return err
	}
	C.glmpv_clear_update_callback(r.ctx)
	C.mpv_render_context_free(r.ctx)
	r.ctx = nil
	if r.update != 0 {
		r.update.Delete()
		r.update = 0
	}
	r.resolver.Delete()
	r.session.renderContexts.Add(-1)
	return nil
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
