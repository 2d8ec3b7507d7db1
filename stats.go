package raster

import "time"

// RenderStats tracks per-frame timing and triangle counts, grounded on the
// teacher's profiling.go Profiler but pared to the phases this pipeline
// actually has (no LOD/BVH/octree stats, since those are out of scope).
type RenderStats struct {
	GeometryTime    time.Duration
	AssembleTime    time.Duration
	ShadowTime      time.Duration
	CacheTime       time.Duration
	RasterizeTime   time.Duration
	FrameTime       time.Duration

	TrianglesTotal   int
	TrianglesCulled  int
	TrianglesClipped int
}

// Stats accumulates RenderStats across frames for a running average, the
// same frame-history averaging idiom as the teacher's GetAverageStats.
type Stats struct {
	history []RenderStats
	next    int
}

func NewStats(historySize int) *Stats {
	return &Stats{history: make([]RenderStats, historySize)}
}

func (s *Stats) Record(frame RenderStats) {
	s.history[s.next] = frame
	s.next = (s.next + 1) % len(s.history)
}

func (s *Stats) Average() RenderStats {
	var avg RenderStats
	count := 0
	for _, f := range s.history {
		if f.FrameTime == 0 {
			continue
		}
		avg.GeometryTime += f.GeometryTime
		avg.AssembleTime += f.AssembleTime
		avg.ShadowTime += f.ShadowTime
		avg.CacheTime += f.CacheTime
		avg.RasterizeTime += f.RasterizeTime
		avg.FrameTime += f.FrameTime
		avg.TrianglesTotal += f.TrianglesTotal
		avg.TrianglesCulled += f.TrianglesCulled
		avg.TrianglesClipped += f.TrianglesClipped
		count++
	}
	if count == 0 {
		return avg
	}
	d := time.Duration(count)
	avg.GeometryTime /= d
	avg.AssembleTime /= d
	avg.ShadowTime /= d
	avg.CacheTime /= d
	avg.RasterizeTime /= d
	avg.FrameTime /= d
	avg.TrianglesTotal /= count
	avg.TrianglesCulled /= count
	avg.TrianglesClipped /= count
	return avg
}
