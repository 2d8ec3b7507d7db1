package raster

// Tunable pipeline constants, named in the teacher's SCREAMING_SNAKE_CASE
// convention for values a caller might reasonably override via RenderSettings.
const (
	DEFAULT_NEAR = 0.1
	DEFAULT_FAR  = 1000.0
	DEFAULT_FOV  = 1.0471975511965976 // 60 degrees in radians

	ATTENUATION_CONSTANT  = 1.0
	ATTENUATION_LINEAR    = 0.09
	ATTENUATION_QUADRATIC = 0.032

	AO_MIN = 0.4
	AO_MAX = 1.0

	SHADOW_BIAS        = 0.005
	SHADOW_PCF_SAMPLES = 1

	MIN_TRIANGLE_AREA_PX = 0.0625 // smaller than this is culled as degenerate

	// LargeTriangleAreaPx marks the boundary between the large-triangle and
	// small-triangle work queues in the parallel rasterizer (C5).
	LargeTriangleAreaPx = 4096.0
)
