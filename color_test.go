package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBAArithmetic(t *testing.T) {
	a := RGBA{0.2, 0.4, 0.6, 1}
	b := RGBA{0.1, 0.1, 0.1, 0}

	sum := a.Add(b)
	assert.InDelta(t, 0.3, sum.R, 1e-6)
	assert.InDelta(t, 0.5, sum.G, 1e-6)
	assert.InDelta(t, 0.7, sum.B, 1e-6)

	scaled := a.Mul(2)
	assert.InDelta(t, 0.4, scaled.R, 1e-6)
	assert.InDelta(t, 1.2, scaled.B, 1e-6)

	mixed := a.MulRGB(RGBA{0.5, 0.5, 0.5, 1})
	assert.InDelta(t, 0.1, mixed.R, 1e-6)
	assert.InDelta(t, 1.0, mixed.A, 1e-6) // MulRGB never touches alpha
}

func TestLerpEndpoints(t *testing.T) {
	a, b := ColorBlack, ColorWhite
	require.Equal(t, a, Lerp(a, b, 0))
	require.Equal(t, b, Lerp(a, b, 1))
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-6)
}

func TestClamp(t *testing.T) {
	c := RGBA{-1, 0.5, 2, 1.5}.Clamp()
	assert.Equal(t, RGBA{0, 0.5, 1, 1}, c)
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0.0, 0.02, 0.2155, 0.5, 0.9, 1.0} {
		linear := SRGBToLinear(v)
		back := LinearToSRGB(linear)
		assert.InDelta(t, v, back, 1e-3)
	}
}

func TestToRGBA8GammaToggle(t *testing.T) {
	c := RGBA{0.5, 0.5, 0.5, 1}
	rLin, _, _, aLin := c.ToRGBA8(false)
	rGamma, _, _, _ := c.ToRGBA8(true)
	assert.NotEqual(t, rLin, rGamma, "gamma encoding should change the quantized channel")
	assert.Equal(t, uint8(255), aLin, "alpha is never gamma-encoded")
}

func TestSkyGradientClampsT(t *testing.T) {
	top, bottom := RGBA{1, 0, 0, 1}, RGBA{0, 0, 1, 1}
	assert.Equal(t, top, SkyGradient(top, bottom, 2.0))
	assert.Equal(t, bottom, SkyGradient(top, bottom, -2.0))
}
