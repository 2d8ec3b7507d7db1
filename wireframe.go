package raster

// DrawWireEdge rasterizes one triangle edge with Bresenham stepping and a
// per-pixel depth compare against fb's depth buffer, adapted from the
// teacher's utils.go drawLineOnSurfaceWithZ (linear z interpolation along
// the line instead of along a scanline).
func DrawWireEdge(fb *Framebuffer, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c RGBA) {
	dx := abs32i(x1 - x0)
	dy := -abs32i(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}
	step := 0

	x, y := x0, y0
	for {
		t := float32(step) / float32(steps)
		z := z0 + (z1-z0)*t
		plotWire(fb, x, y, z, c)

		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		step++
	}
}

// plotWire tests and writes sample 0 of the pixel's depth slot: wireframe
// edges are drawn once per pixel regardless of MSAA sample count, onto the
// already-resolved color buffer, so they only need to compete with sample 0
// of whatever triangle fill already claimed that pixel.
func plotWire(fb *Framebuffer, x, y int, z float32, c RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	if fb.depth.TestAndSet(fb.depthIndex(x, y, 0), z) {
		fb.SetPixel(x, y, c)
	}
}

func abs32i(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
