package raster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func baseShadeInput(mat Material) ShadeInput {
	return ShadeInput{
		WorldPos:          mgl32.Vec3{0, 0, 0},
		Normal:            mgl32.Vec3{0, 0, 1},
		UV:                mgl32.Vec2{0.5, 0.5},
		Material:          mat,
		EyePos:            mgl32.Vec3{0, 0, 5},
		Ambient:           Ambient{Color: ColorWhite, Intensity: 0.1},
		Shadow:            1.0,
		ShadowCasterIndex: 0,
	}
}

func TestShadeBlinnPhongNoLightsReturnsAmbientOnly(t *testing.T) {
	mat := NewBlinnPhong(RGBA{0.8, 0.2, 0.2, 1})
	in := baseShadeInput(mat)
	out := Shade(in)
	expected := mat.DiffuseColor.Mul(0.1)
	assert.InDelta(t, expected.R, out.R, 1e-4)
	assert.Equal(t, float32(1.0), out.A)
}

func TestShadeBlinnPhongFullyShadowedDropsDirectLighting(t *testing.T) {
	mat := NewBlinnPhong(RGBA{0.8, 0.2, 0.2, 1})
	light := NewDirectionalLight(mgl32.Vec3{0, 0, 1}, ColorWhite, 1.0)

	lit := baseShadeInput(mat)
	lit.Lights = []Light{light}
	lit.Shadow = 1.0

	shadowed := baseShadeInput(mat)
	shadowed.Lights = []Light{light}
	shadowed.Shadow = 0.0

	assert.Greater(t, Shade(lit).R, Shade(shadowed).R)
}

func TestShadeShadowAppliesOnlyToShadowCasterLight(t *testing.T) {
	mat := NewBlinnPhong(RGBA{0.8, 0.2, 0.2, 1})
	dirLight := NewDirectionalLight(mgl32.Vec3{0, 0, 1}, ColorWhite, 1.0)
	pointLight := NewPointLight(mgl32.Vec3{0, 0, 5}, ColorWhite, 1.0)

	unshadowed := baseShadeInput(mat)
	unshadowed.Lights = []Light{dirLight, pointLight}
	unshadowed.ShadowCasterIndex = 0
	unshadowed.Shadow = 1.0

	shadowed := baseShadeInput(mat)
	shadowed.Lights = []Light{dirLight, pointLight}
	shadowed.ShadowCasterIndex = 0
	shadowed.Shadow = 0.0

	// Only the directional light (index 0, the shadow caster) should darken;
	// the point light's contribution must be identical either way.
	diff := Shade(unshadowed).R - Shade(shadowed).R
	assert.Greater(t, diff, float32(0), "the shadow-casting light's contribution must drop under shadow")

	onlyPoint := baseShadeInput(mat)
	onlyPoint.Lights = []Light{pointLight}
	onlyPoint.ShadowCasterIndex = -1 // not the shadow caster, regardless of Shadow value
	onlyPoint.Shadow = 0.0
	fullyLitPoint := baseShadeInput(mat)
	fullyLitPoint.Lights = []Light{pointLight}
	fullyLitPoint.ShadowCasterIndex = -1
	fullyLitPoint.Shadow = 1.0
	assert.Equal(t, Shade(fullyLitPoint), Shade(onlyPoint), "a point light must be unaffected by the directional shadow term")
}

func TestShadeDisabledLightContributesNothing(t *testing.T) {
	mat := NewBlinnPhong(RGBA{0.5, 0.5, 0.5, 1})
	light := NewDirectionalLight(mgl32.Vec3{0, 0, 1}, ColorWhite, 1.0)
	light.Enabled = false

	in := baseShadeInput(mat)
	in.Lights = []Light{light}
	out := Shade(in)
	assert.InDelta(t, mat.DiffuseColor.R*0.1, out.R, 1e-4)
}

func TestShadePBRProducesOpaqueOutput(t *testing.T) {
	mat := NewPBR(RGBA{0.6, 0.6, 0.6, 1}, 0.0, 0.5)
	light := NewDirectionalLight(mgl32.Vec3{0, 0, 1}, ColorWhite, 1.0)
	in := baseShadeInput(mat)
	in.Lights = []Light{light}
	out := Shade(in)
	assert.Equal(t, float32(1.0), out.A)
	assert.GreaterOrEqual(t, out.R, float32(0))
	assert.LessOrEqual(t, out.R, float32(1))
}

func TestShadeEmissiveAddsToOutput(t *testing.T) {
	mat := NewBlinnPhong(ColorBlack)
	mat.Emissive = RGBA{0.3, 0, 0, 0}
	in := baseShadeInput(mat)
	out := Shade(in)
	assert.InDelta(t, 0.3, out.R, 1e-4)
}

func TestLightVectorDirectionalHasUnitAttenuation(t *testing.T) {
	l := NewDirectionalLight(mgl32.Vec3{1, 0, 0}, ColorWhite, 1.0)
	dir, atten := lightVector(l, mgl32.Vec3{5, 5, 5})
	assert.Equal(t, float32(1.0), atten)
	assert.Equal(t, l.Direction, dir)
}

func TestLightVectorPointAttenuatesWithDistance(t *testing.T) {
	l := NewPointLight(mgl32.Vec3{0, 0, 10}, ColorWhite, 1.0)
	_, attenNear := lightVector(l, mgl32.Vec3{0, 0, 9})
	_, attenFar := lightVector(l, mgl32.Vec3{0, 0, 0})
	assert.Greater(t, attenNear, attenFar, "closer fragments should attenuate less")
}

func TestDeriveTangentOrthogonalToNormal(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	tangent := deriveTangent(n)
	assert.InDelta(t, 0, tangent.Dot(n), 1e-4)
}

func TestTangentFrameUsesHintWhenUsable(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	hint := mgl32.Vec3{1, 0, 0}
	tangent, bitangent := tangentFrame(n, hint)
	assert.InDelta(t, 1.0, tangent.Len(), 1e-4)
	assert.InDelta(t, 0, tangent.Dot(n), 1e-4)
	assert.InDelta(t, 1.0, tangent.Dot(hint), 1e-4, "an already-orthogonal hint must pass through unchanged")
	assert.InDelta(t, 0, bitangent.Dot(n), 1e-4)
}

func TestTangentFrameFallsBackWhenHintDegenerate(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	tangent, _ := tangentFrame(n, mgl32.Vec3{})
	assert.InDelta(t, 1.0, tangent.Len(), 1e-4)
	assert.InDelta(t, 0, tangent.Dot(n), 1e-4)
}
