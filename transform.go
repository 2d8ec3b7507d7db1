package raster

import "github.com/go-gl/mathgl/mgl32"

// Transform is an object's position/rotation/scale in world space. The
// composed matrix is always scale-then-rotate-then-translate, matching the
// teacher's ComposeMatrix convention.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles (pitch X, yaw Y, roll Z), radians
	Scale    mgl32.Vec3

	cached     mgl32.Mat4
	cachedNorm mgl32.Mat3
	dirty      bool
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() *Transform {
	t := &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	t.dirty = true
	return t
}

func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = mgl32.Vec3{x, y, z}
	t.dirty = true
}

func (t *Transform) SetRotation(pitch, yaw, roll float32) {
	t.Rotation = mgl32.Vec3{pitch, yaw, roll}
	t.dirty = true
}

func (t *Transform) SetScale(x, y, z float32) {
	t.Scale = mgl32.Vec3{x, y, z}
	t.dirty = true
}

// Matrix returns the cached model matrix, rebuilding only if an input changed
// since the last call — the same lazy-recompute idiom the teacher uses for
// camera-derived state.
func (t *Transform) Matrix() mgl32.Mat4 {
	if t.dirty {
		t.rebuild()
	}
	return t.cached
}

// NormalMatrix returns transpose(inverse(upper 3x3 of Matrix())), used to
// transform normals so non-uniform scale doesn't skew them.
func (t *Transform) NormalMatrix() mgl32.Mat3 {
	if t.dirty {
		t.rebuild()
	}
	return t.cachedNorm
}

func (t *Transform) rigidUniform() bool {
	const eps = 1e-6
	return abs32(t.Scale.X()-t.Scale.Y()) < eps && abs32(t.Scale.Y()-t.Scale.Z()) < eps
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (t *Transform) rebuild() {
	s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	rx := mgl32.HomogRotate3DX(t.Rotation.X())
	ry := mgl32.HomogRotate3DY(t.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(t.Rotation.Z())
	r := rz.Mul4(ry).Mul4(rx)
	tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	t.cached = tr.Mul4(r).Mul4(s)

	// Fast path for rigid + uniform-scale transforms: the normal matrix
	// equals the rotation matrix, no inverse-transpose needed.
	if t.rigidUniform() {
		t.cachedNorm = r.Mat3()
	} else {
		upper := t.cached.Mat3()
		inv, ok := upper.Inverse()
		if !ok {
			t.cachedNorm = mgl32.Ident3()
		} else {
			t.cachedNorm = inv.Transpose()
		}
	}
	t.dirty = false
}

// TransformPoint applies the model matrix to a world-space point (w=1).
func (t *Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	m := t.Matrix()
	v := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	return v.Vec3()
}

// TransformDirection applies only the normal matrix to a direction vector.
func (t *Transform) TransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.NormalMatrix().Mul3x1(d).Normalize()
}
