package raster

import "github.com/chewxy/math32"

// RGBA is a linear-space color sample with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A float32
}

var ColorBlack = RGBA{0, 0, 0, 1}
var ColorWhite = RGBA{1, 1, 1, 1}

func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

func (c RGBA) Mul(s float32) RGBA {
	return RGBA{c.R * s, c.G * s, c.B * s, c.A * s}
}

func (c RGBA) MulRGB(o RGBA) RGBA {
	return RGBA{c.R * o.R, c.G * o.G, c.B * o.B, c.A}
}

// Lerp blends two colors; t outside [0,1] extrapolates, in the style of the
// teacher's gradient-stop chains (IntensityToColor/IntensityToWarmColor).
func Lerp(a, b RGBA, t float32) RGBA {
	return RGBA{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
		a.A + (b.A-a.A)*t,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps all four channels to [0,1].
func (c RGBA) Clamp() RGBA {
	return RGBA{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// SRGBToLinear converts a single encoded channel in [0,1] to linear space.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB is the inverse of SRGBToLinear, applied when encoding the
// framebuffer to 8-bit PNG output.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1.0/2.4) - 0.055
}

// ToRGBA8 quantizes a linear color to 8-bit output. gamma selects whether the
// RGB channels are sRGB-encoded before quantization; alpha is never encoded.
func (c RGBA) ToRGBA8(gamma bool) (r, g, b, a uint8) {
	enc := func(v float32) uint8 {
		v = clamp01(v)
		if gamma {
			v = LinearToSRGB(v)
		}
		return uint8(v*255.0 + 0.5)
	}
	return enc(c.R), enc(c.G), enc(c.B), uint8(clamp01(c.A)*255.0 + 0.5)
}

// SkyGradient reproduces a vertical two-stop sky gradient, grounded on the
// teacher's IntensityToColor gradient-stop chain but parameterized by two
// arbitrary endpoint colors instead of a fixed warm/cool ramp.
func SkyGradient(top, bottom RGBA, t float32) RGBA {
	return Lerp(bottom, top, clamp01(t))
}
