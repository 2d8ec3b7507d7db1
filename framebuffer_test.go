package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramebufferRejectsBadSampleCount(t *testing.T) {
	fb := NewFramebuffer(4, 4, 3) // not in {1,2,4,8}
	assert.Equal(t, 1, fb.Samples)
}

func TestFramebufferClearFillsColorAndDepth(t *testing.T) {
	fb := NewFramebuffer(2, 2, 1)
	bg := RGBA{0.1, 0.2, 0.3, 1}
	fb.Clear(bg)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, bg, fb.Pixel(x, y))
		}
	}
}

func TestFramebufferSetPixelOutOfBoundsNoPanic(t *testing.T) {
	fb := NewFramebuffer(2, 2, 1)
	assert.NotPanics(t, func() {
		fb.SetPixel(-1, 0, ColorWhite)
		fb.SetPixel(5, 5, ColorWhite)
	})
}

func TestFramebufferBlendOverCompositesAgainstExistingColor(t *testing.T) {
	fb := NewFramebuffer(1, 1, 1)
	fb.SetPixel(0, 0, RGBA{0, 0, 0, 1}) // opaque black background
	fb.Blend(0, 0, RGBA{1, 1, 1, 0.5})  // blend 50% white over it
	got := fb.Pixel(0, 0)
	assert.InDelta(t, 0.5, got.R, 1e-5)
	assert.InDelta(t, 1.0, got.A, 1e-5, "Blend always forces output alpha to 1")
}

func TestFramebufferResolveAveragesSamples(t *testing.T) {
	fb := NewFramebuffer(1, 1, 4)
	fb.SetSample(0, 0, 0, RGBA{1, 1, 1, 1})
	fb.SetSample(0, 0, 1, RGBA{0, 0, 0, 1})
	fb.SetSample(0, 0, 2, RGBA{1, 1, 1, 1})
	fb.SetSample(0, 0, 3, RGBA{0, 0, 0, 1})
	fb.Resolve()
	got := fb.Pixel(0, 0)
	assert.InDelta(t, 0.5, got.R, 1e-5)
}

func TestFramebufferResolveTakesMinOfSampleDepths(t *testing.T) {
	fb := NewFramebuffer(1, 1, 4)
	depths := []float32{0.8, 0.2, 0.5, 0.9}
	for s, d := range depths {
		require.True(t, fb.Depth().TestAndSet(fb.depthIndex(0, 0, s), d))
	}
	fb.Resolve()
	assert.InDelta(t, 0.2, fb.ResolvedDepthAt(0, 0), 1e-6)
}

func TestFramebufferResolvedDepthAtSamplesOneReadsDepthDirectly(t *testing.T) {
	fb := NewFramebuffer(1, 1, 1)
	require.True(t, fb.Depth().TestAndSet(fb.depthIndex(0, 0, 0), 0.42))
	assert.InDelta(t, 0.42, fb.ResolvedDepthAt(0, 0), 1e-6)
}

func TestFramebufferResetDepthClearsWithoutTouchingColor(t *testing.T) {
	fb := NewFramebuffer(2, 2, 1)
	fb.Clear(RGBA{0.1, 0.2, 0.3, 1})
	require.True(t, fb.Depth().TestAndSet(fb.depthIndex(0, 0, 0), 0.2))
	assert.False(t, fb.Depth().TestAndSet(fb.depthIndex(0, 0, 0), 0.9), "a stale near depth would otherwise block a farther fragment next frame")

	fb.ResetDepth()
	assert.True(t, fb.Depth().TestAndSet(fb.depthIndex(0, 0, 0), 0.9), "ResetDepth must clear every slot back to the far plane")
	assert.Equal(t, RGBA{0.1, 0.2, 0.3, 1}, fb.Pixel(0, 0), "ResetDepth must not touch color")
}

func TestFramebufferResolveNoOpAtSamplesOne(t *testing.T) {
	fb := NewFramebuffer(1, 1, 1)
	fb.SetPixel(0, 0, RGBA{0.7, 0.2, 0.1, 1})
	before := fb.Pixel(0, 0)
	fb.Resolve()
	require.Equal(t, before, fb.Pixel(0, 0))
}
