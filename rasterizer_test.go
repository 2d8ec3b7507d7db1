package raster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triAt(z0, z1, z2 float32, mat Material) AssembledTriangle {
	return AssembledTriangle{
		V0: ScreenVertex{ScreenX: 2, ScreenY: 2, Depth: z0, InvW: 1},
		V1: ScreenVertex{ScreenX: 30, ScreenY: 2, Depth: z1, InvW: 1},
		V2: ScreenVertex{ScreenX: 2, ScreenY: 30, Depth: z2, InvW: 1},
		Material: mat,
	}
}

func TestRasterizeTrianglesDepthOrderingKeepsNearest(t *testing.T) {
	fb := NewFramebuffer(32, 32, 1)
	fb.Clear(ColorBlack)

	far := triAt(0.9, 0.9, 0.9, NewBlinnPhong(RGBA{1, 0, 0, 1}))
	near := triAt(0.1, 0.1, 0.1, NewBlinnPhong(RGBA{0, 1, 0, 1}))

	settings := RasterSettings{Samples: 1, Ambient: Ambient{Color: ColorWhite, Intensity: 1}}
	require.NoError(t, RasterizeTriangles(context.Background(), fb, []AssembledTriangle{far, near}, settings))

	got := fb.Pixel(10, 10)
	assert.Greater(t, got.G, got.R, "the nearer (green) triangle must win the depth test regardless of draw order")
}

func TestRasterizeTrianglesAlphaDiscardSkipsNearInvisibleFragments(t *testing.T) {
	fb := NewFramebuffer(32, 32, 1)
	bg := RGBA{0.2, 0.2, 0.2, 1}
	fb.Clear(bg)

	mat := NewBlinnPhong(RGBA{1, 1, 1, 1})
	mat.Alpha = 1.0 / 512.0 // below the alphaDiscard threshold
	tri := triAt(0.1, 0.1, 0.1, mat)

	settings := RasterSettings{Samples: 1, Ambient: Ambient{Color: ColorWhite, Intensity: 1}}
	require.NoError(t, RasterizeTriangles(context.Background(), fb, []AssembledTriangle{tri}, settings))

	assert.Equal(t, bg, fb.Pixel(10, 10), "a near-zero-alpha triangle must not touch the framebuffer")
}

func TestRasterizeTrianglesDepthOnlySkipsColorWrites(t *testing.T) {
	fb := NewFramebuffer(32, 32, 1)
	bg := RGBA{0.3, 0.3, 0.3, 1}
	fb.Clear(bg)

	tri := triAt(0.1, 0.1, 0.1, NewBlinnPhong(RGBA{1, 0, 0, 1}))
	settings := RasterSettings{Samples: 1, DepthOnly: true}
	require.NoError(t, RasterizeTriangles(context.Background(), fb, []AssembledTriangle{tri}, settings))

	assert.Equal(t, bg, fb.Pixel(10, 10), "depth-only pass must not write color")
	assert.Less(t, fb.Depth().Peek(fb.index(10, 10)), float32(1.0), "depth-only pass must still record depth")
}

func TestRasterizeTrianglesMSAAResolvesPartialCoverage(t *testing.T) {
	fb := NewFramebuffer(16, 16, 4)
	fb.Clear(ColorBlack)

	// A triangle whose hypotenuse x+y=8 crosses pixel (1,6), leaving two of
	// that pixel's four samples inside.
	tri := AssembledTriangle{
		V0: ScreenVertex{ScreenX: 0, ScreenY: 0, Depth: 0.1, InvW: 1},
		V1: ScreenVertex{ScreenX: 8, ScreenY: 0, Depth: 0.1, InvW: 1},
		V2: ScreenVertex{ScreenX: 0, ScreenY: 8, Depth: 0.1, InvW: 1},
		Material: NewBlinnPhong(RGBA{1, 1, 1, 1}),
	}
	settings := RasterSettings{Samples: 4, Ambient: Ambient{Color: ColorWhite, Intensity: 1}}
	require.NoError(t, RasterizeTriangles(context.Background(), fb, []AssembledTriangle{tri}, settings))

	got := fb.Pixel(1, 6) // near the hypotenuse: some samples in, some out
	assert.Greater(t, got.R, float32(0), "covered samples should contribute color")
	assert.Less(t, got.R, float32(1), "uncovered samples should dilute the average below full coverage")
}

func TestRasterizeTrianglesMSAACoversFullFramebufferWithoutOutOfRangeDepth(t *testing.T) {
	// Regression test: the depth buffer must have Width*Height*Samples slots,
	// not Width*Height, since fillTriangle addresses it as
	// index(x,y)*Samples+s. A triangle reaching the far corner pixel exercises
	// the largest depth index the rasterizer will ever compute.
	fb := NewFramebuffer(8, 8, 4)
	fb.Clear(ColorBlack)

	tri := AssembledTriangle{
		V0: ScreenVertex{ScreenX: 0, ScreenY: 0, Depth: 0.2, InvW: 1},
		V1: ScreenVertex{ScreenX: 16, ScreenY: 0, Depth: 0.2, InvW: 1},
		V2: ScreenVertex{ScreenX: 0, ScreenY: 16, Depth: 0.2, InvW: 1},
		Material: NewBlinnPhong(RGBA{1, 1, 1, 1}),
	}
	settings := RasterSettings{Samples: 4, Ambient: Ambient{Color: ColorWhite, Intensity: 1}}
	require.NoError(t, RasterizeTriangles(context.Background(), fb, []AssembledTriangle{tri}, settings))

	got := fb.Pixel(7, 7)
	assert.Greater(t, got.R, float32(0), "the far corner's samples must be addressable and shaded")
}

func TestTriBoundsClampsToFramebuffer(t *testing.T) {
	tri := AssembledTriangle{
		V0: ScreenVertex{ScreenX: -10, ScreenY: -10},
		V1: ScreenVertex{ScreenX: 1000, ScreenY: 5},
		V2: ScreenVertex{ScreenX: 5, ScreenY: 1000},
	}
	minX, minY, maxX, maxY := triBounds(tri, 16, 16)
	assert.Equal(t, 0, minX)
	assert.Equal(t, 0, minY)
	assert.Equal(t, 15, maxX)
	assert.Equal(t, 15, maxY)
}
