package raster

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// EngineSettings are the per-Engine render tunables, generally sourced from
// RenderSettings (config package) and held for the engine's lifetime.
type EngineSettings struct {
	Samples        int
	Backface       bool
	Shadows        bool
	ShadowMapSize  int
	ShadowPCF      bool
	GammaCorrect   bool
	GroundEnabled  bool
	GroundColor    RGBA
	GroundHalfSize float32
	GroundY        float32
}

// DefaultEngineSettings returns the teacher's historical defaults (no MSAA,
// backface culling on, shadows on) adapted to the new settings shape.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Samples: 1, Backface: true, Shadows: true, ShadowMapSize: 1024, ShadowPCF: true,
		GammaCorrect: true, GroundEnabled: true, GroundColor: RGBA{R: 0.35, G: 0.35, B: 0.38, A: 1},
		GroundHalfSize: 50, GroundY: -1,
	}
}

// frameSnapshot captures exactly the scene state the background cache's
// invalidation policy (§4.4) cares about, so RenderFrame can tell a
// camera-only frame apart from an object-only frame and call the right
// Invalidate* method instead of rebuilding every cache every frame.
type frameSnapshot struct {
	valid   bool
	camera  cameraSnapshot
	objects []objectSnapshot
	lights  []Light
	bgTop   RGBA
	bgBot   RGBA
	shadows bool
	smSize  int
	smPCF   bool
}

type cameraSnapshot struct {
	eye, at, up            mgl32.Vec3
	fov, aspect, near, far float32
	kind                   ProjectionKind
}

type objectSnapshot struct {
	mesh    *Mesh
	matrix  mgl32.Mat4
	visible bool
}

func snapshotCamera(c *Camera) cameraSnapshot {
	return cameraSnapshot{eye: c.Eye, at: c.At, up: c.Up, fov: c.FOV, aspect: c.Aspect, near: c.Near, far: c.Far, kind: c.Kind}
}

func snapshotObjects(scene *Scene) []objectSnapshot {
	out := make([]objectSnapshot, len(scene.Objects))
	for i, o := range scene.Objects {
		out[i] = objectSnapshot{mesh: o.Mesh, matrix: o.Transform.Matrix(), visible: o.Visible}
	}
	return out
}

func objectsEqual(a, b []objectSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lightsEqual(a, b []Light) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Engine owns the asset table, background cache, and render stats across
// frames, and exposes one synchronous entry point per frame — collapsing the
// teacher's renderer_interface.go Init/Render/Shutdown lifecycle into a
// single call, since nothing in this pipeline holds GPU-side resources that
// need explicit teardown.
type Engine struct {
	Assets   *AssetTable
	Settings EngineSettings
	Cache    *BackgroundCache
	Stats    *Stats
	Logger   *zap.Logger

	prev frameSnapshot
}

func NewEngine(settings EngineSettings) *Engine {
	return &Engine{
		Assets:   NewAssetTable(),
		Settings: settings,
		Cache:    NewBackgroundCache(),
		Stats:    NewStats(64),
		Logger:   zap.NewNop(),
	}
}

// WithLogger attaches a structured logger for parameter-clamp warnings and
// cache-invalidation tracing (§7, Design Notes §9), returning e for chaining.
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	if logger != nil {
		e.Logger = logger
	}
	return e
}

// reconcileCache compares scene against the snapshot left by the previous
// frame and issues the minimal set of Invalidate* calls the change implies:
// a background-option edit invalidates only the sky; a camera move
// invalidates ground-base and ground-shadow (the ground's silhouette in
// screen space changed) but leaves the sky alone; an object move or light
// change invalidates only ground-shadow (objects cast shadows onto the
// ground, not color onto it) — the camera-vs-object distinction §4.4 calls
// out explicitly.
func (e *Engine) reconcileCache(scene *Scene) {
	cam := snapshotCamera(scene.Camera)
	objs := snapshotObjects(scene)

	if !e.prev.valid {
		e.Cache.InvalidateSky()
		e.Cache.InvalidateGroundBase()
		e.Cache.InvalidateGroundShadow()
	} else {
		if e.prev.bgTop != scene.BackgroundTop || e.prev.bgBot != scene.BackgroundBottom {
			e.Cache.InvalidateSky()
		}
		if e.prev.camera != cam {
			e.Cache.InvalidateGroundBase()
			e.Cache.InvalidateGroundShadow()
		}
		if !objectsEqual(e.prev.objects, objs) || !lightsEqual(e.prev.lights, scene.Lights) ||
			e.prev.shadows != e.Settings.Shadows || e.prev.smSize != e.Settings.ShadowMapSize || e.prev.smPCF != e.Settings.ShadowPCF {
			e.Cache.InvalidateGroundShadow()
		}
	}

	e.prev = frameSnapshot{
		valid: true, camera: cam, objects: objs, lights: append([]Light(nil), scene.Lights...),
		bgTop: scene.BackgroundTop, bgBot: scene.BackgroundBottom,
		shadows: e.Settings.Shadows, smSize: e.Settings.ShadowMapSize, smPCF: e.Settings.ShadowPCF,
	}
}

// RenderFrame runs the full C1-C6 pipeline once for scene into fb, recording
// per-phase timings into e.Stats, the same wall-clock instrumentation the
// teacher's profiling.go wraps around its render phases.
func (e *Engine) RenderFrame(ctx context.Context, scene *Scene, fb *Framebuffer) (RenderStats, error) {
	var frame RenderStats
	frameStart := time.Now()
	now := frameStart

	e.reconcileCache(scene)
	fb.ResetDepth()

	var shadowMap *ShadowMap
	var shadowGen uint64
	var dirLight *Light
	shadowCasterIdx := -1
	for i := range scene.Lights {
		if scene.Lights[i].Kind == LightDirectional && scene.Lights[i].Enabled {
			dirLight = &scene.Lights[i]
			shadowCasterIdx = i
			break
		}
	}
	if e.Settings.Shadows {
		shadowStart := time.Now()
		if dirLight != nil {
			sm, err := BuildShadowMap(ctx, scene, *dirLight, e.Settings.ShadowMapSize, e.Settings.ShadowPCF)
			if err != nil {
				return frame, err
			}
			shadowMap = sm
			shadowGen = sm.Generation()
		}
		frame.ShadowTime = time.Since(shadowStart)
	}
	if shadowMap == nil {
		shadowCasterIdx = -1
	}

	cacheStart := time.Now()
	sky := e.Cache.EnsureSky(fb.Height, scene.BackgroundTop, scene.BackgroundBottom, now)
	ground, groundKey := e.Cache.EnsureGroundBase(fb.Width, fb.Height, scene.Camera, e.Settings.GroundColor, e.Settings.GroundY, e.Settings.GroundEnabled, now)
	lightDir := mgl32.Vec3{0, 1, 0}
	if dirLight != nil {
		lightDir = dirLight.Direction
	}
	groundShadow := e.Cache.EnsureGroundShadow(ground, groundKey, shadowMap, shadowGen, lightDir, e.Settings.GroundEnabled && e.Settings.Shadows, now)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			idx := y*fb.Width + x
			c := sky[y]
			if e.Settings.GroundEnabled && ground[idx].isGround {
				vis := groundShadow[idx]
				factor := 0.2 + 0.8*vis
				c = ground[idx].base.Mul(factor)
				c.A = 1
			}
			fb.SetPixel(x, y, c)
			for s := 0; fb.Samples > 1 && s < fb.Samples; s++ {
				fb.SetSample(x, y, s, c)
			}
		}
	}
	frame.CacheTime = time.Since(cacheStart)

	event := e.Cache.LastEvent()
	e.Logger.Debug("background cache", zap.Int("sky", int(event.Sky)), zap.Int("ground_base", int(event.GroundBase)), zap.Int("ground_shadow", int(event.GroundShadow)))

	var allTriangles []AssembledTriangle
	geomStart := time.Now()
	for _, obj := range scene.Objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		vertices, err := ProcessVertices(ctx, obj.Mesh, obj.Transform.Matrix(), scene.Camera)
		if err != nil {
			return frame, err
		}
		tris := AssembleTriangles(obj.Mesh, vertices, fb.Width, fb.Height, e.Settings.Backface)
		frame.TrianglesTotal += obj.Mesh.TriangleCount()
		frame.TrianglesCulled += obj.Mesh.TriangleCount() - len(tris)
		allTriangles = append(allTriangles, tris...)
	}
	frame.GeometryTime = time.Since(geomStart)

	rasterStart := time.Now()
	err := RasterizeTriangles(ctx, fb, allTriangles, RasterSettings{
		Samples:           e.Settings.Samples,
		EyePos:            scene.Camera.Eye,
		Lights:            scene.Lights,
		Ambient:           scene.Ambient,
		Shadow:            shadowMap,
		ShadowCasterIndex: shadowCasterIdx,
	})
	frame.RasterizeTime = time.Since(rasterStart)
	if err != nil {
		return frame, err
	}

	frame.FrameTime = time.Since(frameStart)
	e.Stats.Record(frame)
	return frame, nil
}
