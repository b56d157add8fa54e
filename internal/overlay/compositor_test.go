package overlay

import (
	"errors"
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/glmpv/internal/input"
)

type fakePainter struct {
	uploads   []image.Point
	paints    []image.Rectangle
	uploadErr error
	released  bool
}

func (f *fakePainter) Upload(img *image.RGBA) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, img.Rect.Size())
	return nil
}

func (f *fakePainter) Paint(x, y, w, h int) error {
	f.paints = append(f.paints, image.Rect(x, y, w, h))
	return nil
}

func (f *fakePainter) Release() { f.released = true }

type rasterCall struct{ hovered, pressed bool }

func newTestCompositor(t *testing.T) (*Compositor, *fakePainter, *[]rasterCall) {
	t.Helper()
	var calls []rasterCall
	raster := func(l Layout, hovered, pressed bool) *image.RGBA {
		calls = append(calls, rasterCall{hovered, pressed})
		return image.NewRGBA(image.Rect(0, 0, int(l.Panel.W), int(l.Panel.H)))
	}
	painter := &fakePainter{}
	c := NewCompositor(testPanel(1), raster, painter, log.New(io.Discard))
	return c, painter, &calls
}

func TestCompositorRasterizesOnlyOnChange(t *testing.T) {
	c, painter, calls := newTestCompositor(t)

	for range 3 {
		quit, err := c.Draw(800, 600)
		require.NoError(t, err)
		assert.False(t, quit)
	}
	assert.Equal(t, 1, c.Rebuilds())
	assert.Len(t, painter.paints, 3)
	assert.Equal(t, []image.Point{{130, 82}}, painter.uploads)

	c.OnInputEvent(move(120, 150))
	_, err := c.Draw(800, 600)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Rebuilds())
	assert.Equal(t, []rasterCall{{false, false}, {true, false}}, *calls)

	// Movement within the button does not change what is drawn.
	c.OnInputEvent(move(121, 151))
	_, err = c.Draw(800, 600)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Rebuilds())
}

func TestCompositorPaintsAtPanelOrigin(t *testing.T) {
	c, painter, _ := newTestCompositor(t)
	_, err := c.Draw(1024, 768)
	require.NoError(t, err)
	assert.Equal(t, []image.Rectangle{image.Rect(100, 100, 1024, 768)}, painter.paints)
}

func TestCompositorReportsQuit(t *testing.T) {
	c, _, calls := newTestCompositor(t)
	c.OnInputEvent(click(120, 150, input.Press))
	quit, err := c.Draw(800, 600)
	require.NoError(t, err)
	assert.False(t, quit)

	c.OnInputEvent(click(120, 150, input.Release))
	quit, err = c.Draw(800, 600)
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Equal(t, rasterCall{true, true}, (*calls)[0])
}

func TestCompositorSkipsEmptyFramebuffer(t *testing.T) {
	c, painter, _ := newTestCompositor(t)
	_, err := c.Draw(0, 600)
	require.NoError(t, err)
	assert.Empty(t, painter.paints)
	assert.Zero(t, c.Rebuilds())
}

func TestCompositorUploadError(t *testing.T) {
	c, painter, _ := newTestCompositor(t)
	painter.uploadErr = errors.New("no texture")
	_, err := c.Draw(800, 600)
	require.ErrorContains(t, err, "no texture")
	assert.Empty(t, painter.paints)
}

func TestCompositorRelease(t *testing.T) {
	c, painter, _ := newTestCompositor(t)
	c.Release()
	assert.True(t, painter.released)
}
