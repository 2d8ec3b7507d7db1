package raster

import "github.com/go-gl/mathgl/mgl32"

// MaterialKind discriminates the two closed material variants. A tagged
// struct is used instead of an interface (as the teacher's material_system.go
// does with IMaterial) because the set of shading models is fixed and small.
type MaterialKind int

const (
	MaterialBlinnPhong MaterialKind = iota
	MaterialPBR
)

// Material is a tagged union of the two supported shading models. Only the
// fields relevant to Kind are meaningful.
type Material struct {
	Kind MaterialKind

	// BlinnPhong fields.
	DiffuseColor     RGBA
	DiffuseIntensity float32
	SpecularColor    RGBA
	SpecularStrength float32
	Shininess        float32

	// PBR fields.
	BaseColor   RGBA
	Metallic    float32
	Roughness   float32
	AO          float32
	Subsurface  float32
	Anisotropy  float32 // [-1, 1]
	NormalScale float32 // normal-map intensity, [0, 2]

	// Shared fields.
	Alpha        float32
	Emissive     RGBA
	DiffuseTex   *Texture // BlinnPhong diffuse / PBR base-color map
	NormalTex    *Texture
	Wireframe    bool
	WireColor    RGBA
}

// NewBlinnPhong returns a BlinnPhong material with the teacher's default
// tunables (lighting.go NewMaterial).
func NewBlinnPhong(diffuse RGBA) Material {
	return Material{
		Kind:             MaterialBlinnPhong,
		DiffuseColor:     diffuse,
		DiffuseIntensity: 1.0,
		SpecularColor:    ColorWhite,
		SpecularStrength: 0.5,
		Shininess:        32.0,
		Alpha:            1.0,
		NormalScale:      1.0,
	}
}

// NewPBR returns a PBR material with plausible dielectric defaults.
func NewPBR(base RGBA, metallic, roughness float32) Material {
	return Material{
		Kind:      MaterialPBR,
		BaseColor: base,
		Metallic:    metallic,
		Roughness:   roughness,
		AO:          1.0,
		Alpha:       1.0,
		NormalScale: 1.0,
	}
}

// DiffuseAt samples the diffuse/base-color texture if present, else returns
// the scalar color, mirroring the teacher's texture-or-scalar fallback
// pattern (pbr.go GetDiffuseColor).
func (m Material) DiffuseAt(u, v float32) RGBA {
	base := m.BaseColor
	if m.Kind == MaterialBlinnPhong {
		base = m.DiffuseColor
	}
	if m.DiffuseTex != nil {
		return m.DiffuseTex.Sample(u, v)
	}
	return base
}

// LightKind discriminates the two closed light variants.
type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
)

// Light is a tagged union of directional and point lights.
type Light struct {
	Kind      LightKind
	Direction mgl32.Vec3 // Directional only: unit vector *towards* the light
	Position  mgl32.Vec3 // Point only
	Color     RGBA
	Intensity float32
	Constant  float32 // Point attenuation triple
	Linear    float32
	Quadratic float32
	Enabled   bool
}

// NewDirectionalLight returns an enabled directional light pointing towards dir.
func NewDirectionalLight(dir mgl32.Vec3, color RGBA, intensity float32) Light {
	return Light{Kind: LightDirectional, Direction: dir.Normalize(), Color: color, Intensity: intensity, Enabled: true}
}

// NewPointLight returns an enabled point light with the teacher's default
// attenuation triple (lighting.go ATTENUATION_CONSTANT/LINEAR/QUADRATIC).
func NewPointLight(pos mgl32.Vec3, color RGBA, intensity float32) Light {
	return Light{
		Kind: LightPoint, Position: pos, Color: color, Intensity: intensity,
		Constant: ATTENUATION_CONSTANT, Linear: ATTENUATION_LINEAR, Quadratic: ATTENUATION_QUADRATIC,
		Enabled: true,
	}
}

// Ambient is the scene's global ambient term.
type Ambient struct {
	Color     RGBA
	Intensity float32
}
