package raster

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// RasterSettings controls the fill pass: MSAA sample count, the eye, lights
// and ambient term used for shading, the optional shadow map, and depth-only
// mode. Backface is carried but not read here (back-face culling happens in
// AssembleTriangles), and wireframe drawing is chosen per material
// (Material.Wireframe), not here.
type RasterSettings struct {
	Samples    int
	Backface   bool
	EyePos     mgl32.Vec3
	Lights     []Light
	Ambient    Ambient
	Shadow     *ShadowMap // non-nil: sample this map for visibility during shading
	// ShadowCasterIndex is the index into Lights of the one directional light
	// Shadow was rendered from; every other light is unaffected by Shadow's
	// visibility term (§4.6). -1 when Shadow is nil.
	ShadowCasterIndex int
	DepthOnly         bool // true during the shadow-map prepass: skip shading entirely
}

// RasterizeTriangles fills every triangle in tris into fb, splitting work
// into a large-triangle and a small-triangle tier: one goroutine per large
// triangle, and one goroutine per fixed batch of 64 small triangles —
// grounded on the teacher's renderer_parallel.go RenderTile/tileQueue
// fan-out, retargeted from per-tile to per-triangle-tier granularity since
// this pipeline's triangles (not fixed screen tiles) are the natural unit of
// independent, non-overlapping-enough work.
func RasterizeTriangles(ctx context.Context, fb *Framebuffer, tris []AssembledTriangle, settings RasterSettings) error {
	var large, small []AssembledTriangle
	for _, t := range tris {
		area := abs32(signedArea2(t.V0, t.V1, t.V2)) * 0.5
		if area >= LargeTriangleAreaPx {
			large = append(large, t)
		} else {
			small = append(small, t)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, t := range large {
		t := t
		g.Go(func() error {
			return fillTriangle(gctx, fb, t, settings)
		})
	}

	const smallBatch = 64
	for start := 0; start < len(small); start += smallBatch {
		start := start
		end := start + smallBatch
		if end > len(small) {
			end = len(small)
		}
		g.Go(func() error {
			for _, t := range small[start:end] {
				if err := fillTriangle(gctx, fb, t, settings); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return newError(ErrResourceExhaustion, "RasterizeTriangles", err)
	}

	fb.Resolve()

	if !settings.DepthOnly { // wireframe only drawn on the final pass, not the shadow prepass
		for _, t := range tris {
			if t.Material.Wireframe {
				drawTriangleWire(fb, t)
			}
		}
	}
	return nil
}

func drawTriangleWire(fb *Framebuffer, t AssembledTriangle) {
	c := t.Material.WireColor
	DrawWireEdge(fb, int(t.V0.ScreenX), int(t.V0.ScreenY), t.V0.Depth, int(t.V1.ScreenX), int(t.V1.ScreenY), t.V1.Depth, c)
	DrawWireEdge(fb, int(t.V1.ScreenX), int(t.V1.ScreenY), t.V1.Depth, int(t.V2.ScreenX), int(t.V2.ScreenY), t.V2.Depth, c)
	DrawWireEdge(fb, int(t.V2.ScreenX), int(t.V2.ScreenY), t.V2.Depth, int(t.V0.ScreenX), int(t.V0.ScreenY), t.V0.Depth, c)
}

// fillTriangle scans the triangle's screen-space bounding box, evaluating
// the edge functions at each MSAA sample offset and shading/writing samples
// that land inside with a nearer depth — the teacher's rasterizer_triangle.go
// scanline-and-edge-function loop, generalized to sub-pixel sample positions
// for MSAA and to atomic depth writes for cross-goroutine safety.
func fillTriangle(ctx context.Context, fb *Framebuffer, t AssembledTriangle, settings RasterSettings) error {
	minX, minY, maxX, maxY := triBounds(t, fb.Width, fb.Height)
	if minX > maxX || minY > maxY {
		return nil
	}

	// §4.6 alpha compositing: a fragment this transparent is discarded
	// entirely, without touching depth, so it never occludes what's behind
	// it. Material alpha is constant across a triangle, so this is checked
	// once instead of per-sample.
	const alphaDiscard = 1.0 / 256.0
	if !settings.DepthOnly && t.Material.Alpha <= alphaDiscard {
		return nil
	}

	area2 := signedArea2(t.V0, t.V1, t.V2)
	if area2 == 0 {
		return nil
	}
	invArea2 := 1.0 / area2

	offsets := sampleOffsets(fb.Samples)
	buf := acquireFragmentBuf()
	defer releaseFragmentBuf(buf)

	for y := minY; y <= maxY; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for x := minX; x <= maxX; x++ {
			for s, off := range offsets {
				px := float32(x) + off[0]
				py := float32(y) + off[1]

				w0 := edgeFunc(t.V1, t.V2, px, py)
				w1 := edgeFunc(t.V2, t.V0, px, py)
				w2 := edgeFunc(t.V0, t.V1, px, py)

				inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
				if !inside {
					continue
				}

				b0, b1, b2 := w0*invArea2, w1*invArea2, w2*invArea2
				depth := b0*t.V0.Depth + b1*t.V1.Depth + b2*t.V2.Depth

				if !fb.depth.TestAndSet(fb.depthIndex(x, y, s), depth) {
					continue
				}

				color := shadeFragment(t, b0, b1, b2, settings)
				if settings.DepthOnly {
					continue // depth-only prepass: atomic-min already recorded, no color write
				}
				if fb.Samples > 1 {
					fb.BlendSample(x, y, s, color)
				} else {
					fb.Blend(x, y, color)
				}
			}
		}
	}
	return nil
}

func triBounds(t AssembledTriangle, w, h int) (minX, minY, maxX, maxY int) {
	minXf := minOf3(t.V0.ScreenX, t.V1.ScreenX, t.V2.ScreenX)
	maxXf := maxOf3(t.V0.ScreenX, t.V1.ScreenX, t.V2.ScreenX)
	minYf := minOf3(t.V0.ScreenY, t.V1.ScreenY, t.V2.ScreenY)
	maxYf := maxOf3(t.V0.ScreenY, t.V1.ScreenY, t.V2.ScreenY)

	minX = clampInt(int(minXf), 0, w-1)
	maxX = clampInt(int(maxXf)+1, 0, w-1)
	minY = clampInt(int(minYf), 0, h-1)
	maxY = clampInt(int(maxYf)+1, 0, h-1)
	return
}

func edgeFunc(a, b ScreenVertex, px, py float32) float32 {
	return (b.ScreenX-a.ScreenX)*(py-a.ScreenY) - (b.ScreenY-a.ScreenY)*(px-a.ScreenX)
}

// shadeFragment perspective-corrects the barycentric weights by 1/w before
// interpolating world position, normal, and UV, then invokes the C6 shader
// (or, for the depth-only shadow pass, skips shading entirely).
func shadeFragment(t AssembledTriangle, b0, b1, b2 float32, settings RasterSettings) RGBA {
	if settings.DepthOnly {
		return ColorBlack // depth-only pass; color is discarded by the caller
	}

	w0, w1, w2 := b0*t.V0.InvW, b1*t.V1.InvW, b2*t.V2.InvW
	wsum := w0 + w1 + w2
	if wsum == 0 {
		wsum = 1
	}
	pw0, pw1, pw2 := w0/wsum, w1/wsum, w2/wsum

	world := t.V0.World.Mul(pw0).Add(t.V1.World.Mul(pw1)).Add(t.V2.World.Mul(pw2))
	normal := t.V0.Normal.Mul(pw0).Add(t.V1.Normal.Mul(pw1)).Add(t.V2.Normal.Mul(pw2))
	uv := t.V0.UV.Mul(pw0).Add(t.V1.UV.Mul(pw1)).Add(t.V2.UV.Mul(pw2))

	shadow := float32(1.0)
	if settings.Shadow != nil {
		shadow = settings.Shadow.Visibility(world, normal)
	}

	return Shade(ShadeInput{
		WorldPos:          world,
		Normal:            normal,
		UV:                uv,
		Material:          t.Material,
		EyePos:            settings.EyePos,
		Lights:            settings.Lights,
		Ambient:           settings.Ambient,
		Shadow:            shadow,
		ShadowCasterIndex: settings.ShadowCasterIndex,
		Tangent:           t.Tangent,
	})
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
