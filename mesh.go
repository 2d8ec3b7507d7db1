package raster

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an indexed triangle mesh: parallel per-vertex attribute arrays plus
// a flat triangle index list, generalized from the teacher's object-list
// Mesh{Triangles, Quads} to the spec's parallel-array form — the same shape
// qmuntal/gltf exposes per-primitive, letting both the OBJ and glTF loaders
// target one type.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2

	// Indices holds 3 vertex indices per triangle; len(Indices)/3 == len(MaterialIdx).
	Indices []uint32
	// MaterialIdx maps each triangle to an index into Materials.
	MaterialIdx []int
	Materials   []Material
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint32) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// MaterialFor returns the material bound to triangle i, or a default
// BlinnPhong white material if MaterialIdx is absent/out of range.
func (m *Mesh) MaterialFor(i int) Material {
	if i < len(m.MaterialIdx) {
		mi := m.MaterialIdx[i]
		if mi >= 0 && mi < len(m.Materials) {
			return m.Materials[mi]
		}
	}
	return NewBlinnPhong(ColorWhite)
}

// BoundingSphere computes the minimal-enclosing-sphere approximation used by
// the shadow-map pass to fit its orthographic frustum: centroid + max
// distance, grounded on the teacher's bounding_volumes.go BoundingSphere
// type (a tight-enough approximation is fine here — it only bounds the
// light's ortho box, never used for culling correctness).
type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

func ComputeBoundingSphere(positions []mgl32.Vec3) BoundingSphere {
	if len(positions) == 0 {
		return BoundingSphere{}
	}
	var sum mgl32.Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	center := sum.Mul(1.0 / float32(len(positions)))
	var radius float32
	for _, p := range positions {
		d := p.Sub(center).Len()
		if d > radius {
			radius = d
		}
	}
	return BoundingSphere{Center: center, Radius: radius}
}
