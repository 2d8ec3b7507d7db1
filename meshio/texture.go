package meshio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/rukkhadevata123/rasterizer-go"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// LoadTexture decodes an image file into a raster.Texture, converting sRGB
// 8-bit samples to the engine's linear float32 color space at load time —
// the sRGB<->linear boundary conversion the data model requires. TGA is
// decoded separately via ftrvxmtrx/tga since the stdlib image registry (and
// golang.org/x/image) carries no TGA codec, mirroring the teacher's
// obj_loader.go LoadTextureFromFile/NewTextureFromImage but moving the
// decode-then-convert step to linear space instead of keeping uint8 sRGB.
func LoadTexture(path string) (*raster.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open texture %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("meshio: decode texture %s: %w", path, err)
	}

	return fromImage(img), nil
}

func fromImage(img image.Image) *raster.Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := raster.NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := raster.RGBA{
				R: raster.SRGBToLinear(float32(r) / 65535.0),
				G: raster.SRGBToLinear(float32(g) / 65535.0),
				B: raster.SRGBToLinear(float32(b) / 65535.0),
				A: float32(a) / 65535.0,
			}
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}
