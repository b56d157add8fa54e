package overlay

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"github.com/depeter/glmpv/internal/input"
)

// Painter puts a rasterized panel on screen.
type Painter interface {
	Upload(img *image.RGBA) error
	Paint(x, y, fbW, fbH int) error
	Release()
}

// RasterFunc paints a layout in the given button state.
type RasterFunc func(l Layout, hovered, pressed bool) *image.RGBA

// Compositor feeds input to the panel and redraws it above the video each
// frame. The panel image is only rebuilt when its state changes.
type Compositor struct {
	panel   *Panel
	raster  RasterFunc
	painter Painter
	log     *log.Logger

	uploaded bool
	drawn    uint64
	rebuilds int
}

// NewCompositor wires a panel to a rasterizer and painter.
func NewCompositor(panel *Panel, raster RasterFunc, painter Painter, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{panel: panel, raster: raster, painter: painter, log: logger}
}

// OnInputEvent forwards a window event to the panel.
func (c *Compositor) OnInputEvent(ev input.Event) {
	c.panel.HandleInput(ev)
}

// Draw composites the panel over a framebuffer of width x height pixels and
// reports whether Quit has been activated.
func (c *Compositor) Draw(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return c.panel.QuitRequested(), nil
	}
	if !c.uploaded || c.drawn != c.panel.Version() {
		l := c.panel.Layout()
		img := c.raster(l, c.panel.Hovered(), c.panel.Pressed())
		if err := c.painter.Upload(img); err != nil {
			return false, fmt.Errorf("overlay upload: %w", err)
		}
		c.uploaded = true
		c.drawn = c.panel.Version()
		c.rebuilds++
		c.log.Debug("overlay rebuilt", "version", c.drawn, "hovered", c.panel.Hovered(), "pressed", c.panel.Pressed())
	}
	origin := c.panel.Layout().Panel.Bounds().Min
	if err := c.painter.Paint(origin.X, origin.Y, width, height); err != nil {
		return false, err
	}
	if c.panel.QuitRequested() {
		c.log.Info("quit requested from overlay")
	}
	return c.panel.QuitRequested(), nil
}

// Rebuilds returns how many times the panel image was rasterized.
func (c *Compositor) Rebuilds() int { return c.rebuilds }

// Release frees the painter resources.
func (c *Compositor) Release() {
	c.painter.Release()
}
