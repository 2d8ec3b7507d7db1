package raster

import "github.com/go-gl/mathgl/mgl32"

// ScreenVertex is a vertex after the perspective divide and viewport
// transform: screen-space XY, the depth and 1/w used for perspective-correct
// interpolation, and the attributes carried through from C1.
type ScreenVertex struct {
	ScreenX, ScreenY float32
	Depth            float32 // NDC z remapped to [0, 1], near=0, far=1
	InvW             float32 // 1/clip.W, for perspective-correct attribute lerp
	World            mgl32.Vec3
	Normal           mgl32.Vec3
	UV               mgl32.Vec2
}

// AssembledTriangle is one screen-space triangle ready for the rasterizer,
// tagged with the material it should shade with.
type AssembledTriangle struct {
	V0, V1, V2 ScreenVertex
	Material   Material
	// Tangent is the per-triangle surface tangent derived from dp/duv (the
	// standard UV-gradient construction), zero when the triangle's UV edges
	// are degenerate — the shader then falls back to an arbitrary
	// normal-orthogonal tangent (deriveTangent in shader.go).
	Tangent mgl32.Vec3
}

// AssembleTriangles walks mesh's index buffer, clips each triangle against
// the near plane (C2), projects surviving triangles to screen space, and
// drops back-facing and degenerate ones. Grounded on the teacher's
// rasterizer_triangle.go per-triangle setup loop and rasterizer_common.go
// CalculateSurfaceNormal for the flat-shading fallback when a mesh carries
// no per-vertex normals.
func AssembleTriangles(mesh *Mesh, vertices []VertexRecord, viewportW, viewportH int, backfaceCull bool) []AssembledTriangle {
	out := make([]AssembledTriangle, 0, mesh.TriangleCount())

	for t := 0; t < mesh.TriangleCount(); t++ {
		ia, ib, ic := mesh.Triangle(t)
		a, b, c := vertices[ia], vertices[ib], vertices[ic]
		mat := mesh.MaterialFor(t)

		// Reject the triangle when all three vertices lie outside the same
		// clip plane (x, y or z beyond ±w): no part of it can be visible.
		outside := false
		for axis := 0; axis < 3 && !outside; axis++ {
			outside = (a.Clip[axis] > a.Clip[3] && b.Clip[axis] > b.Clip[3] && c.Clip[axis] > c.Clip[3]) ||
				(a.Clip[axis] < -a.Clip[3] && b.Clip[axis] < -b.Clip[3] && c.Clip[axis] < -c.Clip[3])
		}
		if outside {
			continue
		}

		for _, tri := range ClipNear(a, b, c) {
			sv0 := toScreen(tri[0], viewportW, viewportH)
			sv1 := toScreen(tri[1], viewportW, viewportH)
			sv2 := toScreen(tri[2], viewportW, viewportH)

			area2 := signedArea2(sv0, sv1, sv2)
			if backfaceCull && area2 <= 0 {
				continue
			}
			if abs32(area2) < 2*MIN_TRIANGLE_AREA_PX {
				continue
			}

			if zeroNormal(sv0.Normal) && zeroNormal(sv1.Normal) && zeroNormal(sv2.Normal) {
				fn := faceNormal(sv0.World, sv1.World, sv2.World)
				sv0.Normal, sv1.Normal, sv2.Normal = fn, fn, fn
			}

			tangent := triangleTangent(sv0, sv1, sv2)
			out = append(out, AssembledTriangle{V0: sv0, V1: sv1, V2: sv2, Material: mat, Tangent: tangent})
		}
	}
	return out
}

// toScreen performs the perspective divide and viewport transform (NDC
// [-1,1] -> pixel coordinates with Y flipped to point down), and remaps NDC
// z from [-1,1] to the [0,1] depth-buffer convention (near=0, far=1).
func toScreen(v VertexRecord, w, h int) ScreenVertex {
	invW := float32(1.0)
	if v.Clip.W() != 0 {
		invW = 1.0 / v.Clip.W()
	}
	ndc := mgl32.Vec3{v.Clip.X() * invW, v.Clip.Y() * invW, v.Clip.Z() * invW}
	return ScreenVertex{
		ScreenX: (ndc.X()*0.5 + 0.5) * float32(w),
		ScreenY: (1.0 - (ndc.Y()*0.5 + 0.5)) * float32(h),
		Depth:   ndc.Z()*0.5 + 0.5,
		InvW:    invW,
		World:   v.World,
		Normal:  v.Normal,
		UV:      v.UV,
	}
}

// signedArea2 returns twice the signed area of the screen-space triangle;
// positive for counter-clockwise winding, mirroring the teacher's
// rasterizer_common.go EdgeFunction used both for culling and barycentrics.
func signedArea2(a, b, c ScreenVertex) float32 {
	return (b.ScreenX-a.ScreenX)*(c.ScreenY-a.ScreenY) - (b.ScreenY-a.ScreenY)*(c.ScreenX-a.ScreenX)
}

func zeroNormal(n mgl32.Vec3) bool {
	return n.X() == 0 && n.Y() == 0 && n.Z() == 0
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// triangleTangent derives the surface tangent from dp/duv across the
// triangle's two edges (the standard normal-mapping tangent construction),
// returning the zero vector when the UV edges are degenerate (near-parallel
// or zero-area in UV space) so the shader falls back to an arbitrary
// normal-orthogonal tangent instead of dividing by ~0.
func triangleTangent(v0, v1, v2 ScreenVertex) mgl32.Vec3 {
	edge1 := v1.World.Sub(v0.World)
	edge2 := v2.World.Sub(v0.World)
	duv1 := v1.UV.Sub(v0.UV)
	duv2 := v2.UV.Sub(v0.UV)

	det := duv1.X()*duv2.Y() - duv2.X()*duv1.Y()
	if abs32(det) < 1e-8 {
		return mgl32.Vec3{}
	}
	f := 1.0 / det
	tangent := edge1.Mul(duv2.Y() * f).Sub(edge2.Mul(duv1.Y() * f))
	if tangent.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return tangent.Normalize()
}
