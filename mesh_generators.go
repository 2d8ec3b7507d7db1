package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GenerateSphere builds a UV sphere mesh, grounded directly on the teacher's
// mesh_generators.go GenerateSphere (latitude/longitude vertex grid, same
// triangulation winding), retargeted at the new indexed Mesh type.
func GenerateSphere(radius float32, rings, sectors int, mat Material) *Mesh {
	m := &Mesh{Materials: []Material{mat}}

	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		latAngle := -math32.Pi/2 + math32.Pi*v
		y := math32.Sin(latAngle) * radius
		ringRadius := math32.Cos(latAngle) * radius

		for s := 0; s <= sectors; s++ {
			u := float32(s) / float32(sectors)
			lonAngle := 2 * math32.Pi * u
			x := math32.Cos(lonAngle) * ringRadius
			z := math32.Sin(lonAngle) * ringRadius

			m.Positions = append(m.Positions, mgl32.Vec3{x, y, z})
			m.Normals = append(m.Normals, mgl32.Vec3{x / radius, y / radius, z / radius})
			m.UVs = append(m.UVs, mgl32.Vec2{u, 1.0 - v})
		}
	}

	stride := uint32(sectors + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			curr := uint32(r)*stride + uint32(s)
			next := uint32(r)*stride + uint32(s+1)
			bottom := uint32(r+1)*stride + uint32(s)
			bottomNext := uint32(r+1)*stride + uint32(s+1)

			m.Indices = append(m.Indices, curr, next, bottom)
			m.Indices = append(m.Indices, next, bottomNext, bottom)
			m.MaterialIdx = append(m.MaterialIdx, 0, 0)
		}
	}
	return m
}

// GenerateTorus builds a torus mesh, grounded on the teacher's
// mesh_generators.go GenerateTorus.
func GenerateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int, mat Material) *Mesh {
	m := &Mesh{Materials: []Material{mat}}

	for i := 0; i <= majorSegments; i++ {
		u := float32(i) / float32(majorSegments)
		theta := u * 2 * math32.Pi
		cosTheta, sinTheta := math32.Cos(theta), math32.Sin(theta)

		for j := 0; j <= minorSegments; j++ {
			v := float32(j) / float32(minorSegments)
			phi := v * 2 * math32.Pi
			cosPhi, sinPhi := math32.Cos(phi), math32.Sin(phi)

			x := (majorRadius + minorRadius*cosPhi) * cosTheta
			y := minorRadius * sinPhi
			z := (majorRadius + minorRadius*cosPhi) * sinTheta

			m.Positions = append(m.Positions, mgl32.Vec3{x, y, z})
			m.Normals = append(m.Normals, mgl32.Vec3{cosPhi * cosTheta, sinPhi, cosPhi * sinTheta})
			m.UVs = append(m.UVs, mgl32.Vec2{u, v})
		}
	}

	stride := uint32(minorSegments + 1)
	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			curr := uint32(i)*stride + uint32(j)
			next := uint32(i)*stride + uint32(j+1)
			bottom := uint32(i+1)*stride + uint32(j)
			bottomNext := uint32(i+1)*stride + uint32(j+1)

			m.Indices = append(m.Indices, curr, next, bottom)
			m.Indices = append(m.Indices, next, bottomNext, bottom)
			m.MaterialIdx = append(m.MaterialIdx, 0, 0)
		}
	}
	return m
}

// GenerateGroundPlane builds a single quad (two triangles) on the XZ plane
// at the given Y, sized halfExtent around the origin — used as a test
// fixture; the background/ground cache (C4) does not use it, it ray-casts
// the ground plane directly. Grounded on the
// teacher's quad.go NewQuad, folded here since nothing else needs a
// standalone Quad type once it's reduced to two mesh triangles.
func GenerateGroundPlane(halfExtent, y float32, mat Material) *Mesh {
	m := &Mesh{Materials: []Material{mat}}
	m.Positions = []mgl32.Vec3{
		{-halfExtent, y, -halfExtent},
		{halfExtent, y, -halfExtent},
		{halfExtent, y, halfExtent},
		{-halfExtent, y, halfExtent},
	}
	up := mgl32.Vec3{0, 1, 0}
	m.Normals = []mgl32.Vec3{up, up, up, up}
	m.UVs = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	m.MaterialIdx = []int{0, 0}
	return m
}
