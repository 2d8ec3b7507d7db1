package raster

import "github.com/chewxy/math32"

// Texture is an immutable 2D array of linear-space RGBA samples, addressed
// by (u,v) in [0,1)^2 with wrap-repeat and bilinear filtering — the teacher's
// texture.go sampleLinear bilinear math, generalized from uint8 Color
// storage to linear float32 storage per the data model's RGBA requirement.
type Texture struct {
	Width, Height int
	Data          []RGBA
}

// NewTexture allocates a texture filled with transparent black.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Data: make([]RGBA, width*height)}
}

func (t *Texture) at(x, y int) RGBA {
	x = wrapInt(x, t.Width)
	y = wrapInt(y, t.Height)
	return t.Data[y*t.Width+x]
}

func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Sample performs bilinear filtering with wrap-repeat addressing, the only
// wrap mode the spec's texture model requires (the teacher additionally
// supports Clamp/Mirror; those are not wired into the closed Texture type
// since nothing in the pipeline requests them).
func (t *Texture) Sample(u, v float32) RGBA {
	u -= math32.Floor(u)
	v -= math32.Floor(v)

	x := u*float32(t.Width) - 0.5
	y := v*float32(t.Height) - 0.5

	x0 := int(math32.Floor(x))
	y0 := int(math32.Floor(y))
	fx := x - float32(x0)
	fy := y - float32(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	cx0 := Lerp(c00, c10, fx)
	cx1 := Lerp(c01, c11, fx)
	return Lerp(cx0, cx1, fy)
}

// SetPixel writes a linear color at integer texel coordinates.
func (t *Texture) SetPixel(x, y int, c RGBA) {
	if x >= 0 && x < t.Width && y >= 0 && y < t.Height {
		t.Data[y*t.Width+x] = c
	}
}
