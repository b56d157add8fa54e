package icon

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSizes(t *testing.T) {
	imgs := Generate()
	require.Len(t, imgs, len(Sizes))
	for i, img := range imgs {
		assert.Equal(t, image.Rect(0, 0, Sizes[i], Sizes[i]), img.Bounds())
	}
}

func TestGenerateShapes(t *testing.T) {
	img := generate(64)
	// Corners sit outside the rounded bezel.
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 2).A)
	// Middle of the play symbol.
	assert.Equal(t, playColor, img.RGBAAt(33, 32))
	// Screen area away from the panel and play symbol.
	assert.Equal(t, screen, img.RGBAAt(56, 50))
}

func TestBlendPixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 0xFF})
	blendPixel(img, 0, 0, color.RGBA{R: 0x80, A: 0x80})
	got := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0xFF), got.A)
	assert.InDelta(t, 0x80, int(got.R), 1)

	blendPixel(img, 0, 0, color.RGBA{})
	assert.Equal(t, got, img.RGBAAt(0, 0))
}
