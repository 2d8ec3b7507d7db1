package raster

import "github.com/go-gl/mathgl/mgl32"

// ProjectionKind selects the camera's projection matrix shape.
type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

// Camera holds the eye/at/up/fov/aspect/near/far parameters from which the
// view and projection matrices are derived. Rebuilt lazily, the same
// recompute-on-change idiom the teacher's Camera/Transform pair uses: the
// Set* methods mark the camera dirty and View/Proj rebuild on their next
// call; assigning the exported fields directly does not mark it dirty.
type Camera struct {
	Eye, At, Up mgl32.Vec3
	FOV         float32 // vertical field of view, radians
	Aspect      float32
	Near, Far   float32
	Kind        ProjectionKind
	// OrthoHalfHeight is only used when Kind == Orthographic.
	OrthoHalfHeight float32

	view, proj mgl32.Mat4
	dirty      bool
}

// NewCamera returns a camera at (0,0,5) looking down -Z at the origin with
// sane perspective defaults.
func NewCamera() *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 0, 5},
		At:     mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    DEFAULT_FOV,
		Aspect: 1.0,
		Near:   DEFAULT_NEAR,
		Far:    DEFAULT_FAR,
		Kind:   Perspective,
	}
	c.dirty = true
	return c
}

func (c *Camera) SetEye(x, y, z float32)    { c.Eye = mgl32.Vec3{x, y, z}; c.dirty = true }
func (c *Camera) SetAt(x, y, z float32)     { c.At = mgl32.Vec3{x, y, z}; c.dirty = true }
func (c *Camera) SetAspect(aspect float32)  { c.Aspect = aspect; c.dirty = true }
func (c *Camera) SetFOV(radians float32)    { c.FOV = radians; c.dirty = true }
func (c *Camera) SetClip(near, far float32) { c.Near, c.Far = near, far; c.dirty = true }

func (c *Camera) rebuild() {
	c.view = mgl32.LookAtV(c.Eye, c.At, c.Up)
	switch c.Kind {
	case Orthographic:
		h := c.OrthoHalfHeight
		w := h * c.Aspect
		c.proj = mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	default:
		c.proj = mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
	}
	c.dirty = false
}

// View returns the derived view matrix, rebuilding if a setter marked the
// camera dirty.
func (c *Camera) View() mgl32.Mat4 {
	if c.dirty {
		c.rebuild()
	}
	return c.view
}

// Proj returns the derived projection matrix, rebuilding if a setter marked
// the camera dirty.
func (c *Camera) Proj() mgl32.Mat4 {
	if c.dirty {
		c.rebuild()
	}
	return c.proj
}

// ViewProj returns Proj() * View().
func (c *Camera) ViewProj() mgl32.Mat4 {
	return c.Proj().Mul4(c.View())
}

// Forward returns the normalized look direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.At.Sub(c.Eye).Normalize()
}
