package raster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewBlinnPhongDefaults(t *testing.T) {
	m := NewBlinnPhong(RGBA{0.8, 0.2, 0.2, 1})
	assert.Equal(t, MaterialBlinnPhong, m.Kind)
	assert.Equal(t, float32(1.0), m.Alpha)
	assert.Equal(t, float32(32.0), m.Shininess)
}

func TestNewPBRDefaults(t *testing.T) {
	m := NewPBR(RGBA{0.5, 0.5, 0.5, 1}, 0.0, 0.5)
	assert.Equal(t, MaterialPBR, m.Kind)
	assert.Equal(t, float32(1.0), m.AO)
	assert.Equal(t, float32(1.0), m.Alpha)
}

func TestMaterialDiffuseAtFallsBackToScalar(t *testing.T) {
	m := NewBlinnPhong(RGBA{0.1, 0.2, 0.3, 1})
	got := m.DiffuseAt(0.5, 0.5)
	assert.Equal(t, m.DiffuseColor, got)
}

func TestMaterialDiffuseAtSamplesTexture(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGBA{1, 0, 0, 1})
	tex.SetPixel(1, 0, RGBA{1, 0, 0, 1})
	tex.SetPixel(0, 1, RGBA{1, 0, 0, 1})
	tex.SetPixel(1, 1, RGBA{1, 0, 0, 1})
	m := NewPBR(RGBA{0, 0, 0, 1}, 0, 0.5)
	m.DiffuseTex = tex
	got := m.DiffuseAt(0.5, 0.5)
	assert.InDelta(t, 1.0, got.R, 1e-5)
}

func TestNewDirectionalLightNormalizesDirection(t *testing.T) {
	l := NewDirectionalLight(mgl32.Vec3{3, 0, 0}, ColorWhite, 1.0)
	assert.True(t, l.Enabled)
	assert.InDelta(t, 1.0, l.Direction.Len(), 1e-5)
}

func TestNewPointLightUsesDefaultAttenuation(t *testing.T) {
	l := NewPointLight(mgl32.Vec3{0, 1, 0}, ColorWhite, 2.0)
	assert.Equal(t, LightPoint, l.Kind)
	assert.Equal(t, float32(ATTENUATION_CONSTANT), l.Constant)
	assert.Equal(t, float32(ATTENUATION_LINEAR), l.Linear)
	assert.Equal(t, float32(ATTENUATION_QUADRATIC), l.Quadratic)
}
