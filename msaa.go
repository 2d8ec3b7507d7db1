package raster

// sampleOffsets returns the per-sample subpixel offsets (in [0,1) pixel
// units) for a given MSAA sample count. The S=2/S=4 tables are the teacher's
// antialiasing.go renderMSAA rotated-grid patterns; S=1 (no offset, sampled
// at the pixel center) and the S=8 D3D-standard rotated-grid pattern extend
// the table to the spec's full sample-count range.
func sampleOffsets(samples int) [][2]float32 {
	switch samples {
	case 1:
		return [][2]float32{{0.5, 0.5}}
	case 2:
		return [][2]float32{
			{0.25, 0.25},
			{0.75, 0.75},
		}
	case 4:
		return [][2]float32{
			{0.375, 0.125},
			{0.875, 0.375},
			{0.125, 0.625},
			{0.625, 0.875},
		}
	case 8:
		// D3D11 standard 8x sample pattern, mapped from its [-8,8]/16 fixed
		// offsets around pixel center into [0,1) pixel-local coordinates.
		raw := [8][2]float32{
			{1, -3}, {-1, 3}, {5, 1}, {-3, -5},
			{-5, 5}, {-7, -1}, {3, 7}, {7, -7},
		}
		out := make([][2]float32, 8)
		for i, r := range raw {
			out[i] = [2]float32{0.5 + r[0]/16.0, 0.5 + r[1]/16.0}
		}
		return out
	default:
		return [][2]float32{{0.5, 0.5}}
	}
}
