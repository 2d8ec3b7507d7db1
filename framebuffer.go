package raster

// Framebuffer owns the color, depth, and MSAA sample buffers for one frame,
// stored as flat slices (not the teacher's [][]Color grid) so C5 can address
// a pixel's depth word directly for atomic compare-and-swap.
type Framebuffer struct {
	Width, Height int
	Samples       int // MSAA sample count: 1, 2, 4, or 8

	// color holds the per-sample-resolved output; len == Width*Height.
	color []RGBA
	// depth holds one slot per (pixel, sample): len == Width*Height*Samples,
	// addressed as index(x,y)*Samples+s so a single atomic buffer serves both
	// the Samples==1 and MSAA paths (see depthIndex).
	depth *DepthBuffer

	// sampleColor holds one color slot per (pixel, sample) when Samples > 1;
	// nil when Samples == 1 since resolve is then a no-op.
	sampleColor []RGBA

	// resolvedDepth holds one depth slot per pixel when Samples > 1, filled by
	// Resolve as the min of that pixel's sample depths (§4.5 point 3); nil
	// when Samples == 1 since ResolvedDepthAt can read depth directly.
	resolvedDepth []float32
}

// NewFramebuffer allocates a framebuffer for the given size and sample
// count, clearing depth to the far plane (encoded as +Inf's bit pattern).
func NewFramebuffer(width, height, samples int) *Framebuffer {
	if samples != 1 && samples != 2 && samples != 4 && samples != 8 {
		samples = 1
	}
	fb := &Framebuffer{
		Width: width, Height: height, Samples: samples,
		color: make([]RGBA, width*height),
		depth: NewDepthBuffer(width * height * samples),
	}
	if samples > 1 {
		fb.sampleColor = make([]RGBA, width*height*samples)
		fb.resolvedDepth = make([]float32, width*height)
	}
	fb.Clear(ColorBlack)
	return fb
}

// Clear resets color to bg and depth to the far plane across every sample.
func (fb *Framebuffer) Clear(bg RGBA) {
	for i := range fb.color {
		fb.color[i] = bg
	}
	fb.depth.Reset()
	if fb.Samples > 1 {
		for i := range fb.sampleColor {
			fb.sampleColor[i] = bg
		}
		for i := range fb.resolvedDepth {
			fb.resolvedDepth[i] = depthFar
		}
	}
}

// ResetDepth clears the depth buffer (every sample slot) to the far plane
// without touching color, the per-frame clear RenderFrame issues before
// rasterization — color needs no separate clear since the background-cache
// compositing pass (§4.4) already overwrites every pixel from the sky/ground
// caches before any triangle is rasterized.
func (fb *Framebuffer) ResetDepth() {
	fb.depth.Reset()
}

// depthIndex maps a pixel and sample index to its slot in depth, the single
// addressing scheme used by both the Samples==1 and MSAA rasterizer paths
// (and by wireframe mode, which always targets sample 0).
func (fb *Framebuffer) depthIndex(x, y, s int) int {
	return fb.index(x, y)*fb.Samples + s
}

func (fb *Framebuffer) index(x, y int) int { return y*fb.Width + x }

// SetPixel writes the single-sample (Samples==1) color buffer directly.
func (fb *Framebuffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.color[fb.index(x, y)] = c
}

// SetSample writes one MSAA sub-sample's color directly (no blending), used
// by RenderFrame's background compositing pass when Samples > 1.
func (fb *Framebuffer) SetSample(x, y, s int, c RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.sampleColor[fb.index(x, y)*fb.Samples+s] = c
}

// Blend alpha-composites c (straight alpha) over the color buffer's current
// contents at (x,y) and writes back with alpha forced to 1 — the §4.6
// alpha-compositing contract: "background_rgb is read from the current color
// buffer slot, which already holds the cached background or a previously
// composited nearer fragment." Since the depth test admits only the nearest
// surviving fragment per sample, this is the one place that background gets
// read back, never SetPixel (which is a plain overwrite used for clears and
// cache priming).
func (fb *Framebuffer) Blend(x, y int, c RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := fb.index(x, y)
	fb.color[i] = blendOver(c, fb.color[i])
}

// BlendSample is Blend for one MSAA sub-sample slot.
func (fb *Framebuffer) BlendSample(x, y, s int, c RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := fb.index(x, y)*fb.Samples + s
	fb.sampleColor[i] = blendOver(c, fb.sampleColor[i])
}

func blendOver(c, bg RGBA) RGBA {
	a := clamp01(c.A)
	return RGBA{
		R: a*c.R + (1-a)*bg.R,
		G: a*c.G + (1-a)*bg.G,
		B: a*c.B + (1-a)*bg.B,
		A: 1,
	}
}

// Resolve averages each pixel's sample slots into the single-sample color
// buffer, and takes the min of each pixel's sample depths into resolvedDepth
// (§4.5 point 3). A no-op when Samples == 1 since SetPixel/the depth buffer
// already hold the single-sample values directly.
func (fb *Framebuffer) Resolve() {
	if fb.Samples <= 1 {
		return
	}
	n := float32(fb.Samples)
	for p := 0; p < fb.Width*fb.Height; p++ {
		var sum RGBA
		base := p * fb.Samples
		minDepth := depthFar
		for s := 0; s < fb.Samples; s++ {
			sum = sum.Add(fb.sampleColor[base+s])
			if d := fb.depth.Peek(base + s); d < minDepth {
				minDepth = d
			}
		}
		fb.color[p] = sum.Mul(1.0 / n)
		fb.resolvedDepth[p] = minDepth
	}
}

// Pixel returns the resolved color at (x, y).
func (fb *Framebuffer) Pixel(x, y int) RGBA {
	return fb.color[fb.index(x, y)]
}

// ResolvedDepthAt returns the single resolved depth value at (x, y): the
// depth buffer's own value when Samples == 1, or the min-of-samples value
// Resolve computed when Samples > 1 (call Resolve first; otherwise this
// returns the far-plane sentinel).
func (fb *Framebuffer) ResolvedDepthAt(x, y int) float32 {
	if fb.Samples <= 1 {
		return fb.depth.Peek(fb.depthIndex(x, y, 0))
	}
	return fb.resolvedDepth[fb.index(x, y)]
}

// Depth exposes the depth buffer for the rasterizer's atomic test.
func (fb *Framebuffer) Depth() *DepthBuffer { return fb.depth }
