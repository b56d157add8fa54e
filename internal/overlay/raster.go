package overlay

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Straight-alpha colors in [0, 1].
var (
	panelColor   = [4]float64{0.08, 0.08, 0.10, 0.82}
	headingColor = [4]float64{0.95, 0.95, 0.95, 1}
	buttonColor  = [4]float64{0.26, 0.29, 0.36, 1}
	hoverColor   = [4]float64{0.36, 0.42, 0.56, 1}
	activeColor  = [4]float64{0.20, 0.46, 0.86, 1}
	labelColor   = [4]float64{1, 1, 1, 1}
)

// Rasterizer draws the panel into an RGBA image on the CPU.
type Rasterizer struct {
	source *text.FontSource
	face   text.Face
	size   float64
}

// NewRasterizer loads the built-in Go Regular font at size pixels.
func NewRasterizer(size float64) (*Rasterizer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Rasterizer{source: src, face: src.Face(size), size: size}, nil
}

// Measure reports the advance and line height of s.
func (r *Rasterizer) Measure(s string) (w, h float64) {
	if s == "" {
		_, h = text.Measure("M", r.face)
		return 0, h
	}
	return text.Measure(s, r.face)
}

// Rasterize paints the panel described by l in the given state. The result
// has the panel's size, premultiplied alpha, row 0 at the top.
func (r *Rasterizer) Rasterize(l Layout, hovered, pressed bool) *image.RGBA {
	bounds := l.Panel.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	defer dc.Close()
	dc.SetFont(r.face)

	setColor(dc, panelColor)
	dc.DrawRoundedRectangle(0, 0, float64(bounds.Dx()), float64(bounds.Dy()), panelRadius*l.Scale)
	_ = dc.Fill()

	setColor(dc, headingColor)
	// DrawString takes the baseline.
	_, lineH := r.Measure("")
	dc.DrawString(l.HeadingText, l.Heading.X, l.Heading.Y+lineH*0.8)

	fill := buttonColor
	switch {
	case pressed:
		fill = activeColor
	case hovered:
		fill = hoverColor
	}
	b := l.Button
	setColor(dc, fill)
	dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, buttonRadius*l.Scale)
	_ = dc.Fill()

	setColor(dc, labelColor)
	dc.DrawStringAnchored(l.ButtonText, b.X+b.W/2, b.Y+b.H/2, 0.5, 0.35)

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
}

func setColor(dc *gg.Context, c [4]float64) {
	dc.SetRGBA(c[0], c[1], c[2], c[3])
}
