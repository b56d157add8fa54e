package overlay

import (
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/depeter/glmpv/internal/config"
)

// New builds the GL overlay for the current context. scale is the window
// content scale.
func New(oc config.OverlayConfig, gc config.GLConfig, scale float64, logger *log.Logger) (*Compositor, error) {
	// gg is silent unless given a logger.
	gg.SetLogger(slog.New(logger.WithPrefix("glmpv/gg")))

	if scale <= 0 {
		scale = 1
	}
	r, err := NewRasterizer(oc.FontSize * scale)
	if err != nil {
		return nil, err
	}
	painter, err := NewGLPainter(gc.ShaderVersion)
	if err != nil {
		return nil, err
	}
	panel := NewPanel(oc, scale, r.Measure)
	logger.Debug("overlay ready", "scale", scale, "panel", panel.Layout().Panel.Bounds())
	return NewCompositor(panel, r.Rasterize, painter, logger), nil
}
