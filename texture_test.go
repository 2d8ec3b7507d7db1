package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextureSampleExactTexelCenters(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGBA{1, 0, 0, 1})
	tex.SetPixel(1, 0, RGBA{0, 1, 0, 1})
	tex.SetPixel(0, 1, RGBA{0, 0, 1, 1})
	tex.SetPixel(1, 1, RGBA{1, 1, 1, 1})

	got := tex.Sample(0.25, 0.25) // texel-center of (0,0)
	assert.InDelta(t, 1, got.R, 1e-4)
	assert.InDelta(t, 0, got.G, 1e-4)
}

func TestTextureSampleWrapsUV(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGBA{1, 0, 0, 1})
	tex.SetPixel(1, 0, RGBA{0, 1, 0, 1})
	tex.SetPixel(0, 1, RGBA{0, 0, 1, 1})
	tex.SetPixel(1, 1, RGBA{1, 1, 1, 1})

	a := tex.Sample(0.25, 0.25)
	b := tex.Sample(1.25, 0.25) // one full wrap in U
	assert.Equal(t, a, b)
}

func TestTextureSetPixelOutOfBoundsNoPanic(t *testing.T) {
	tex := NewTexture(2, 2)
	assert.NotPanics(t, func() {
		tex.SetPixel(-1, 0, ColorWhite)
		tex.SetPixel(10, 10, ColorWhite)
	})
}

func TestWrapInt(t *testing.T) {
	assert.Equal(t, 0, wrapInt(4, 4))
	assert.Equal(t, 3, wrapInt(-1, 4))
	assert.Equal(t, 2, wrapInt(2, 4))
}
