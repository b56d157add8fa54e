// Package icon draws the window icon: a screen with a play symbol and a small
// control panel in its corner.
package icon

import (
	"image"
	"image/color"
)

var (
	bezel     = color.RGBA{R: 0x22, G: 0x24, B: 0x2C, A: 0xFF}
	screen    = color.RGBA{R: 0x0B, G: 0x0C, B: 0x10, A: 0xFF}
	playColor = color.RGBA{R: 0x6C, G: 0x2D, B: 0xC7, A: 0xFF}
	panelBG   = color.RGBA{R: 0x14, G: 0x14, B: 0x1A, A: 0xD0}
	quitColor = color.RGBA{R: 0x33, G: 0x75, B: 0xDB, A: 0xFF}
	textColor = color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF}
)

// Sizes are the icon edge lengths Generate renders.
var Sizes = []int{64, 32}

// Generate returns the icon at each of Sizes, largest first, for
// glfw.Window.SetIcon.
func Generate() []image.Image {
	imgs := make([]image.Image, 0, len(Sizes))
	for _, s := range Sizes {
		imgs = append(imgs, generate(s))
	}
	return imgs
}

func generate(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fillRoundedRect(img, 0, s*0.10, s, s*0.80, s*0.10, bezel)
	fillRect(img, s*0.06, s*0.16, s*0.88, s*0.68, screen)

	// Play symbol, slightly right of center so it reads as balanced.
	fillTriangle(img, s*0.40, s*0.32, s*0.40, s*0.68, s*0.68, s*0.50, playColor)

	// Overlay panel with its heading line and Quit button.
	fillRoundedRect(img, s*0.10, s*0.20, s*0.28, s*0.20, s*0.03, panelBG)
	fillRect(img, s*0.13, s*0.24, s*0.20, s*0.03, textColor)
	fillRoundedRect(img, s*0.13, s*0.30, s*0.14, s*0.07, s*0.02, quitColor)

	return img
}

func fillRect(img *image.RGBA, xf, yf, wf, hf float64, c color.Color) {
	b := img.Bounds().Intersect(image.Rect(int(xf), int(yf), int(xf+wf), int(yf+hf)))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// fillRoundedRect fills the rectangle, skipping pixels outside the circle of
// radius r at each corner.
func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, r float64, c color.Color) {
	b := img.Bounds().Intersect(image.Rect(int(xf), int(yf), int(xf+wf), int(yf+hf)))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			cx := clamp(px, xf+r, xf+wf-r)
			cy := clamp(py, yf+r, yf+hf-r)
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// fillTriangle fills the triangle (x0,y0) (x1,y1) (x2,y2) by testing pixel
// centers against its edges.
func fillTriangle(img *image.RGBA, x0, y0, x1, y1, x2, y2 float64, c color.Color) {
	minX, maxX := min(x0, x1, x2), max(x0, x1, x2)
	minY, maxY := min(y0, y1, y2), max(y0, y1, y2)
	b := img.Bounds().Intersect(image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1))
	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			e0 := edge(x0, y0, x1, y1, px, py)
			e1 := edge(x1, y1, x2, y2, px, py)
			e2 := edge(x2, y2, x0, y0, px, py)
			if (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0) {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// blendPixel composites c over the pixel at (x, y) with source-over.
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	sr, sg, sb, sa := c.RGBA()
	if sa == 0 {
		return
	}
	if sa == 0xFFFF {
		img.Set(x, y, c)
		return
	}
	d := img.RGBAAt(x, y)
	inv := 0xFFFF - sa
	// c.RGBA is premultiplied, as is image.RGBA.
	mix := func(s uint32, d uint8) uint8 {
		return uint8((s + uint32(d)*257*inv/0xFFFF) >> 8)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(sr, d.R),
		G: mix(sg, d.G),
		B: mix(sb, d.B),
		A: mix(sa, d.A),
	})
}
