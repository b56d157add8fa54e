package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripes fills each row with a distinct gray so rows can be told apart.
func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(y * 10), G: uint8(x), B: 0, A: 0xFF})
		}
	}
	return img
}

func row(img *image.RGBA, y int) []byte {
	o := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
	return img.Pix[o : o+img.Rect.Dx()*4]
}

func TestCopyRowsFlip(t *testing.T) {
	src := stripes(4, 5)
	dst := image.NewRGBA(src.Rect)

	require.NoError(t, CopyRows(dst, src, true))
	for y := 0; y < 5; y++ {
		assert.Equal(t, row(src, 4-y), row(dst, y), "row %d", y)
	}
}

func TestCopyRowsNoFlip(t *testing.T) {
	src := stripes(3, 3)
	dst := image.NewRGBA(src.Rect)

	require.NoError(t, CopyRows(dst, src, false))
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestCopyRowsSubImage(t *testing.T) {
	src := stripes(6, 6).SubImage(image.Rect(2, 1, 5, 4)).(*image.RGBA)
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))

	require.NoError(t, CopyRows(dst, src, true))
	assert.Equal(t, row(src, 2), row(dst, 0))
	assert.Equal(t, row(src, 0), row(dst, 2))
}

func TestCopyRowsSizeMismatch(t *testing.T) {
	err := CopyRows(image.NewRGBA(image.Rect(0, 0, 2, 2)), stripes(2, 3), true)
	assert.Error(t, err)
}

func TestFlipped(t *testing.T) {
	src := stripes(2, 4)
	out := Flipped(src)
	assert.Equal(t, row(src, 3), row(out, 0))
	assert.Equal(t, row(src, 0), row(out, 3))
}

func TestTarget(t *testing.T) {
	tg := NewTarget(1920, 1080, true, true)
	assert.Equal(t, DefaultFramebuffer, tg.FBO)
	assert.False(t, tg.Empty())
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), tg.Bounds())

	assert.True(t, NewTarget(0, 1080, true, false).Empty())
	assert.True(t, NewTarget(640, 0, true, false).Empty())
}
