// Package config loads render settings from TOML files into the types the
// rest of the pipeline consumes. The schema is grouped the way a scene
// description naturally breaks down (files, render, camera, object,
// lighting, material, shadow, background, animation) rather than as one
// flat bag of knobs, mirroring how the teacher's demo scenes in others.go
// set up a render pass section by section.
package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/rukkhadevata123/rasterizer-go"
)

// FilesConfig names the input/output paths: the mesh to load, its texture
// directory, and where rendered frames land.
type FilesConfig struct {
	ObjPath     string `toml:"obj_path"`
	TexturePath string `toml:"texture_path"`
	OutputDir   string `toml:"output_dir"`
	OutputBase  string `toml:"output_base"`
}

// RenderConfig holds the rasterizer-wide switches: output size, projection,
// MSAA, and the per-triangle toggles.
type RenderConfig struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	Projection      string `toml:"projection"` // "perspective" | "orthographic"
	BackfaceCulling bool   `toml:"backface_culling"`
	GammaCorrect    bool   `toml:"gamma_correct"`
	Wireframe       bool   `toml:"wireframe"`
	MSAASamples     int    `toml:"msaa_samples"`
	WriteDepthImage bool   `toml:"write_depth_image"`
}

// CameraConfig places the eye and derives the view/projection matrices.
type CameraConfig struct {
	From          [3]float32 `toml:"from"`
	At            [3]float32 `toml:"at"`
	Up            [3]float32 `toml:"up"`
	FOVDegrees    float32    `toml:"fov_degrees"`
	Near          float32    `toml:"near"`
	Far           float32    `toml:"far"`
	OrthoHalfSize float32    `toml:"ortho_half_size"`
}

// ObjectConfig places the single loaded mesh in world space.
type ObjectConfig struct {
	Position        [3]float32 `toml:"position"`
	RotationDegrees [3]float32 `toml:"rotation_degrees"`
	Scale           [3]float32 `toml:"scale"`
}

// LightEntry is one TOML `[[lighting.lights]]` table, a directional or
// point light depending on Type.
type LightEntry struct {
	Type      string     `toml:"type"` // "directional" | "point"
	Enabled   bool       `toml:"enabled"`
	Color     [3]float32 `toml:"color"`
	Intensity float32    `toml:"intensity"`
	Direction [3]float32 `toml:"direction"` // directional only
	Position  [3]float32 `toml:"position"`  // point only
	Constant  float32    `toml:"constant"`
	Linear    float32    `toml:"linear"`
	Quadratic float32    `toml:"quadratic"`
}

// LightingConfig is the scene's ambient term plus an ordered light list. The
// first enabled directional light in the list is the one BuildShadowMap uses
// (§4.3: shadow mapping supports exactly one directional caster).
type LightingConfig struct {
	AmbientColor     [3]float32   `toml:"ambient_color"`
	AmbientIntensity float32      `toml:"ambient_intensity"`
	Lights           []LightEntry `toml:"lights"`
}

// MaterialConfig selects and parameterizes one of the two shading models for
// the loaded object's fallback material (used where the mesh/MTL supplies no
// material of its own).
type MaterialConfig struct {
	UsePBR bool `toml:"use_pbr"`

	// Blinn-Phong fields.
	DiffuseColor     [3]float32 `toml:"diffuse_color"`
	DiffuseIntensity float32    `toml:"diffuse_intensity"`
	SpecularColor    [3]float32 `toml:"specular_color"`
	SpecularStrength float32    `toml:"specular_strength"`
	Shininess        float32    `toml:"shininess"`

	// PBR fields.
	BaseColor  [3]float32 `toml:"base_color"`
	Metallic   float32    `toml:"metallic"`
	Roughness  float32    `toml:"roughness"`
	AO         float32    `toml:"ao"`
	Subsurface float32    `toml:"subsurface"`
	Anisotropy float32    `toml:"anisotropy"`

	NormalScale float32    `toml:"normal_scale"`
	Alpha       float32    `toml:"alpha"`
	Emissive    [3]float32 `toml:"emissive"`
}

// ShadowConfig tunes the shadow-map pass.
type ShadowConfig struct {
	Enabled bool `toml:"enabled"`
	MapSize int  `toml:"map_size"`
	PCF     bool `toml:"pcf"`
}

// BackgroundConfig tunes the C4 sky/ground background.
type BackgroundConfig struct {
	TopColor       [3]float32 `toml:"top_color"`
	BottomColor    [3]float32 `toml:"bottom_color"`
	GroundEnabled  bool       `toml:"ground_enabled"`
	GroundColor    [3]float32 `toml:"ground_color"`
	GroundHalfSize float32    `toml:"ground_half_size"`
	GroundY        float32    `toml:"ground_y"`
}

// AnimationConfig drives the optional multi-frame animation sequence (anim
// package): either the camera orbits the object, or the object spins in
// place about a named or custom axis.
type AnimationConfig struct {
	Enabled                bool       `toml:"enabled"`
	Frames                 int        `toml:"frames"`
	FPS                    int        `toml:"fps"`
	Kind                   string     `toml:"kind"`          // "camera_orbit" | "object_rotation" | "none"
	RotationAxis           string     `toml:"rotation_axis"` // "x" | "y" | "z" | "custom"
	CustomAxis             [3]float32 `toml:"custom_axis"`
	RevolutionsPerSequence float32    `toml:"revolutions_per_sequence"`
}

// RenderSettings is the full TOML-serializable scene description — the
// external interface SPEC_FULL.md §6 documents. Field names match their TOML
// keys via struct tags so a settings file reads as a natural scene
// description instead of a flat knob list.
type RenderSettings struct {
	Files      FilesConfig      `toml:"files"`
	Render     RenderConfig     `toml:"render"`
	Camera     CameraConfig     `toml:"camera"`
	Object     ObjectConfig     `toml:"object"`
	Lighting   LightingConfig   `toml:"lighting"`
	Material   MaterialConfig   `toml:"material"`
	Shadow     ShadowConfig     `toml:"shadow"`
	Background BackgroundConfig `toml:"background"`
	Animation  AnimationConfig  `toml:"animation"`
}

// Default returns the library defaults mirrored into TOML field names, the
// base Load decodes a file over (a missing file is an error from Load, not a
// fallback to these) — one directional key light, a Blinn-Phong fallback
// material (use_pbr is off; the PBR fields hold a neutral dielectric preset),
// shadows and the ground plane on, no animation.
func Default() RenderSettings {
	return RenderSettings{
		Files: FilesConfig{OutputDir: ".", OutputBase: "out"},
		Render: RenderConfig{
			Width: 800, Height: 600, Projection: "perspective",
			BackfaceCulling: true, GammaCorrect: true, MSAASamples: 1,
		},
		Camera: CameraConfig{
			From: [3]float32{0, 1.5, 5}, At: [3]float32{0, 0, 0}, Up: [3]float32{0, 1, 0},
			FOVDegrees: 60, Near: 0.1, Far: 1000, OrthoHalfSize: 5,
		},
		Object: ObjectConfig{Scale: [3]float32{1, 1, 1}},
		Lighting: LightingConfig{
			AmbientColor: [3]float32{1, 1, 1}, AmbientIntensity: 0.12,
			Lights: []LightEntry{
				{Type: "directional", Enabled: true, Color: [3]float32{1, 1, 1}, Intensity: 1.0, Direction: [3]float32{-0.4, 0.8, 0.5}},
			},
		},
		Material: MaterialConfig{
			BaseColor: [3]float32{0.7, 0.7, 0.7}, Metallic: 0.1, Roughness: 0.6, AO: 1, NormalScale: 1, Alpha: 1,
			DiffuseColor: [3]float32{0.7, 0.7, 0.7}, DiffuseIntensity: 1, SpecularColor: [3]float32{1, 1, 1}, SpecularStrength: 0.5, Shininess: 32,
		},
		Shadow: ShadowConfig{Enabled: true, MapSize: 1024, PCF: true},
		Background: BackgroundConfig{
			TopColor: [3]float32{0.3, 0.5, 0.9}, BottomColor: [3]float32{0.9, 0.9, 0.95},
			GroundEnabled: true, GroundColor: [3]float32{0.35, 0.35, 0.38}, GroundHalfSize: 50, GroundY: -1,
		},
		Animation: AnimationConfig{Frames: 60, FPS: 30, Kind: "none", RotationAxis: "y", RevolutionsPerSequence: 1},
	}
}

// Load reads and parses a TOML settings file, starting from Default() so a
// partial file only overrides the keys it names, then clamps out-of-range
// parameters, logging a warning for every one it had to adjust — the
// parameter-range error class §7 calls for recovering from rather than
// failing the whole load over.
func Load(path string, logger *zap.Logger) (RenderSettings, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.clamp(logger)
	return s, nil
}

// clamp pulls every numeric parameter with a documented valid range back
// into it, warning through logger instead of erroring — "never refuse to
// render over a bad slider value."
func (s *RenderSettings) clamp(logger *zap.Logger) {
	warn := func(field string, got, want float32) {
		logger.Warn("config: clamped out-of-range parameter",
			zap.String("field", field), zap.Float32("got", got), zap.Float32("clamped_to", want))
	}
	clamp := func(field string, v *float32, lo, hi float32) {
		if *v < lo || *v > hi {
			c := clampf32(*v, lo, hi)
			warn(field, *v, c)
			*v = c
		}
	}

	clamp("material.metallic", &s.Material.Metallic, 0, 1)
	clamp("material.roughness", &s.Material.Roughness, 0.01, 1)
	clamp("material.ao", &s.Material.AO, 0, 1)
	clamp("material.subsurface", &s.Material.Subsurface, 0, 1)
	clamp("material.anisotropy", &s.Material.Anisotropy, -1, 1)
	clamp("material.normal_scale", &s.Material.NormalScale, 0, 2)
	clamp("material.alpha", &s.Material.Alpha, 0, 1)
	clamp("lighting.ambient_intensity", &s.Lighting.AmbientIntensity, 0, 4)

	switch s.Render.MSAASamples {
	case 1, 2, 4, 8:
	default:
		warn("render.msaa_samples", float32(s.Render.MSAASamples), 1)
		s.Render.MSAASamples = 1
	}
	if s.Shadow.MapSize <= 0 {
		warn("shadow.map_size", float32(s.Shadow.MapSize), 1024)
		s.Shadow.MapSize = 1024
	}
	if s.Render.Width <= 0 {
		warn("render.width", float32(s.Render.Width), 800)
		s.Render.Width = 800
	}
	if s.Render.Height <= 0 {
		warn("render.height", float32(s.Render.Height), 600)
		s.Render.Height = 600
	}
}

func clampf32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EngineSettings projects the TOML-facing RenderSettings onto the engine's
// own settings struct.
func (s RenderSettings) EngineSettings() raster.EngineSettings {
	return raster.EngineSettings{
		Samples:        s.Render.MSAASamples,
		Backface:       s.Render.BackfaceCulling,
		Shadows:        s.Shadow.Enabled,
		ShadowMapSize:  s.Shadow.MapSize,
		ShadowPCF:      s.Shadow.PCF,
		GammaCorrect:   s.Render.GammaCorrect,
		GroundEnabled:  s.Background.GroundEnabled,
		GroundColor:    vec3Color(s.Background.GroundColor),
		GroundHalfSize: s.Background.GroundHalfSize,
		GroundY:        s.Background.GroundY,
	}
}

// BuildCamera builds a raster.Camera from the TOML camera block.
func (s RenderSettings) BuildCamera() *raster.Camera {
	cam := raster.NewCamera()
	cam.SetEye(s.Camera.From[0], s.Camera.From[1], s.Camera.From[2])
	cam.SetAt(s.Camera.At[0], s.Camera.At[1], s.Camera.At[2])
	cam.Up = vec3(s.Camera.Up)
	cam.SetFOV(degToRad(s.Camera.FOVDegrees))
	cam.SetClip(s.Camera.Near, s.Camera.Far)
	cam.SetAspect(float32(s.Render.Width) / float32(s.Render.Height))
	if s.Render.Projection == "orthographic" {
		cam.Kind = raster.Orthographic
		cam.OrthoHalfHeight = s.Camera.OrthoHalfSize
	}
	return cam
}

// BuildTransform builds a raster.Transform from the TOML object block.
func (s RenderSettings) BuildTransform() *raster.Transform {
	t := raster.NewTransform()
	t.SetPosition(s.Object.Position[0], s.Object.Position[1], s.Object.Position[2])
	t.SetRotation(degToRad(s.Object.RotationDegrees[0]), degToRad(s.Object.RotationDegrees[1]), degToRad(s.Object.RotationDegrees[2]))
	scale := s.Object.Scale
	if scale == ([3]float32{}) {
		scale = [3]float32{1, 1, 1}
	}
	t.SetScale(scale[0], scale[1], scale[2])
	return t
}

// Ambient builds the scene's ambient term from the TOML lighting block.
func (s RenderSettings) Ambient() raster.Ambient {
	return raster.Ambient{Color: vec3Color(s.Lighting.AmbientColor), Intensity: s.Lighting.AmbientIntensity}
}

// Lights builds the ordered light list from the TOML lighting block.
func (s RenderSettings) Lights() []raster.Light {
	lights := make([]raster.Light, 0, len(s.Lighting.Lights))
	for _, le := range s.Lighting.Lights {
		l := raster.Light{Enabled: le.Enabled, Color: vec3Color(le.Color), Intensity: le.Intensity}
		if le.Type == "point" {
			l.Kind = raster.LightPoint
			l.Position = vec3(le.Position)
			l.Constant, l.Linear, l.Quadratic = le.Constant, le.Linear, le.Quadratic
			if l.Constant == 0 && l.Linear == 0 && l.Quadratic == 0 {
				l.Constant, l.Linear, l.Quadratic = raster.ATTENUATION_CONSTANT, raster.ATTENUATION_LINEAR, raster.ATTENUATION_QUADRATIC
			}
		} else {
			l.Kind = raster.LightDirectional
			l.Direction = vec3(le.Direction).Normalize()
		}
		lights = append(lights, l)
	}
	return lights
}

// FallbackMaterial builds the material that replaces a loaded mesh's single
// loader-default material when the mesh file supplies no materials of its
// own, and the material of a procedurally generated mesh. In a mesh that does
// carry MTL materials, triangles left on the loader's default white material
// keep it.
func (s RenderSettings) FallbackMaterial() raster.Material {
	m := s.Material
	if m.UsePBR {
		mat := raster.NewPBR(vec3Color(m.BaseColor), m.Metallic, m.Roughness)
		mat.AO = m.AO
		mat.Subsurface = m.Subsurface
		mat.Anisotropy = m.Anisotropy
		mat.NormalScale = m.NormalScale
		mat.Alpha = m.Alpha
		mat.Emissive = vec3Color(m.Emissive)
		return mat
	}
	mat := raster.NewBlinnPhong(vec3Color(m.DiffuseColor))
	mat.DiffuseIntensity = m.DiffuseIntensity
	mat.SpecularColor = vec3Color(m.SpecularColor)
	mat.SpecularStrength = m.SpecularStrength
	mat.Shininess = m.Shininess
	mat.NormalScale = m.NormalScale
	mat.Alpha = m.Alpha
	mat.Emissive = vec3Color(m.Emissive)
	return mat
}

func (s RenderSettings) TopColor() raster.RGBA    { return vec3Color(s.Background.TopColor) }
func (s RenderSettings) BottomColor() raster.RGBA { return vec3Color(s.Background.BottomColor) }

func vec3Color(c [3]float32) raster.RGBA { return raster.RGBA{R: c[0], G: c[1], B: c[2], A: 1} }

func vec3(v [3]float32) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

func degToRad(d float32) float32 { return d * 3.14159265358979323846 / 180 }
