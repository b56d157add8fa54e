// Package frame describes where a video frame is drawn and how its rows map
// onto the destination framebuffer.
package frame

import (
	"fmt"
	"image"
)

// DefaultFramebuffer is the window's back buffer.
const DefaultFramebuffer = 0

// Target describes the framebuffer a frame is rendered into. It is rebuilt for
// every redraw and never retained.
type Target struct {
	FBO    int
	Width  int
	Height int
	// InternalFormat is the GL internal format of the FBO's color attachment,
	// 0 when unknown.
	InternalFormat int
	// FlipY renders with row 0 at the bottom. libmpv's default orientation is
	// upside down relative to the window back buffer, so redraws into FBO 0
	// always set it.
	FlipY bool
	// AdvancedControl lets the engine issue GL commands on the caller's thread.
	AdvancedControl bool
}

// NewTarget returns the target for the window back buffer at the given size.
func NewTarget(width, height int, flipY, advanced bool) Target {
	return Target{
		FBO:             DefaultFramebuffer,
		Width:           width,
		Height:          height,
		FlipY:           flipY,
		AdvancedControl: advanced,
	}
}

// Empty reports whether the target has no drawable area, as happens while the
// window is minimized.
func (t Target) Empty() bool {
	return t.Width <= 0 || t.Height <= 0
}

// Bounds returns the target area in framebuffer pixels.
func (t Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

func (t Target) String() string {
	return fmt.Sprintf("fbo=%d %dx%d flip=%v advanced=%v", t.FBO, t.Width, t.Height, t.FlipY, t.AdvancedControl)
}

// CopyRows copies src into dst row by row. With flipY set, row 0 of dst
// receives the last row of src. Both images must have the same size.
func CopyRows(dst, src *image.RGBA, flipY bool) error {
	ds, ss := dst.Bounds().Size(), src.Bounds().Size()
	if ds != ss {
		return fmt.Errorf("frame: size mismatch: dst %v, src %v", ds, ss)
	}
	rowBytes := ss.X * 4
	for y := 0; y < ss.Y; y++ {
		sy := y
		if flipY {
			sy = ss.Y - 1 - y
		}
		so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+sy)
		do := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
	}
	return nil
}

// Flipped returns a copy of img with its rows in reverse order, the layout GL
// expects for texture uploads where row 0 is the bottom.
func Flipped(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	// Sizes match by construction.
	_ = CopyRows(out, img, true)
	return out
}
