package raster

import "github.com/go-gl/mathgl/mgl32"

// ClipNear clips a single triangle against the near plane in clip space
// (the plane z = -w), returning 0, 1, or 2 triangles depending on how many
// vertices are behind it. Ported from the teacher's clipping.go
// ClipTriangleToNearPlane/clipOneVertexBehind/clipTwoVerticesBehind, moved
// from view-space Z-vs-camera.Near comparisons to the standard clip-space
// z+w>=0 test so it composes with the rest of the homogeneous pipeline.
func ClipNear(a, b, c VertexRecord) [][3]VertexRecord {
	v := [3]VertexRecord{a, b, c}
	dist := [3]float32{clipDist(a), clipDist(b), clipDist(c)}
	behind := [3]bool{dist[0] < 0, dist[1] < 0, dist[2] < 0}

	behindCount := 0
	for _, bnd := range behind {
		if bnd {
			behindCount++
		}
	}

	switch behindCount {
	case 0:
		return [][3]VertexRecord{{a, b, c}}
	case 3:
		return nil
	case 1:
		idx := 0
		for i := 0; i < 3; i++ {
			if behind[i] {
				idx = i
				break
			}
		}
		i0, i1, i2 := idx, (idx+1)%3, (idx+2)%3
		vBehind, vF1, vF2 := v[i0], v[i1], v[i2]
		x1 := intersectNear(vBehind, vF1, dist[i0], dist[i1])
		x2 := intersectNear(vBehind, vF2, dist[i0], dist[i2])
		return [][3]VertexRecord{
			{x1, vF1, vF2},
			{x1, vF2, x2},
		}
	default: // 2 behind
		idx := 0
		for i := 0; i < 3; i++ {
			if !behind[i] {
				idx = i
				break
			}
		}
		i0, i1, i2 := idx, (idx+1)%3, (idx+2)%3
		vFront, vB1, vB2 := v[i0], v[i1], v[i2]
		x1 := intersectNear(vFront, vB1, dist[i0], dist[i1])
		x2 := intersectNear(vFront, vB2, dist[i0], dist[i2])
		return [][3]VertexRecord{{vFront, x1, x2}}
	}
}

func clipDist(v VertexRecord) float32 {
	return v.Clip.Z() + v.Clip.W()
}

// intersectNear linearly interpolates every vertex attribute at the point
// the edge (v0 -> v1) crosses the near plane, mirroring the teacher's
// intersectEdgeWithPlane.
func intersectNear(v0, v1 VertexRecord, d0, d1 float32) VertexRecord {
	t := d0 / (d0 - d1)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return VertexRecord{
		World:  lerpVec3(v0.World, v1.World, t),
		Normal: lerpVec3(v0.Normal, v1.Normal, t),
		UV:     lerpVec2(v0.UV, v1.UV, t),
		Clip:   lerpVec4(v0.Clip, v1.Clip, t),
	}
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 { return a.Add(b.Sub(a).Mul(t)) }
func lerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 { return a.Add(b.Sub(a).Mul(t)) }
func lerpVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 { return a.Add(b.Sub(a).Mul(t)) }
