package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, Perspective, c.Kind)
	f := c.Forward()
	assert.InDelta(t, 1.0, f.Len(), 1e-5)
}

func TestCameraRebuildsOnlyWhenDirty(t *testing.T) {
	c := NewCamera()
	v1 := c.View()
	v2 := c.View()
	require.Equal(t, v1, v2)

	c.SetEye(1, 2, 3)
	v3 := c.View()
	assert.NotEqual(t, v1, v3)
}

func TestCameraOrthographicProjection(t *testing.T) {
	c := NewCamera()
	c.Kind = Orthographic
	c.OrthoHalfHeight = 5
	c.Aspect = 1
	c.SetClip(0.1, 100)
	proj := c.Proj()
	// Orthographic projections have no perspective divide row; the bottom
	// row of an mgl32.Ortho matrix is (0,0,0,1).
	assert.InDelta(t, 0, proj.At(3, 0), 1e-6)
	assert.InDelta(t, 0, proj.At(3, 1), 1e-6)
	assert.InDelta(t, 0, proj.At(3, 2), 1e-6)
	assert.InDelta(t, 1, proj.At(3, 3), 1e-6)
}

func TestCameraViewProjComposesProjAndView(t *testing.T) {
	c := NewCamera()
	want := c.Proj().Mul4(c.View())
	assert.Equal(t, want, c.ViewProj())
}

func TestCameraForwardPointsAtTarget(t *testing.T) {
	c := NewCamera()
	c.SetEye(0, 0, 5)
	c.SetAt(0, 0, 0)
	f := c.Forward()
	assert.InDelta(t, 0, f.X(), 1e-5)
	assert.InDelta(t, 0, f.Y(), 1e-5)
	assert.InDelta(t, -1, f.Z(), 1e-5)
}
