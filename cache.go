package raster

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CacheOutcome records whether an Ensure* call found its cache usable as-is
// (Hit) or had to rebuild it (Miss) — the signal Scenario F's test drives
// off of.
type CacheOutcome int

const (
	CacheHit CacheOutcome = iota
	CacheMiss
)

// CacheEvent is the outcome of the three caches' most recent Ensure* calls
// in one frame.
type CacheEvent struct {
	Sky, GroundBase, GroundShadow CacheOutcome
}

// groundPixel is one screen pixel's ground-plane intersection, cached by
// EnsureGroundBase: whether the pixel's camera ray hits the ground plane
// forward of the camera, the hit point, its distance, and its unshadowed
// grid-modulated base color.
type groundPixel struct {
	isGround bool
	world    mgl32.Vec3
	dist     float32
	base     RGBA
}

type groundBaseKey struct {
	width, height          int
	eye, at, up            mgl32.Vec3
	fov, aspect, near, far float32
	kind                   ProjectionKind
	groundY                float32
	groundColor            RGBA
	enabled                bool
}

type groundShadowKey struct {
	base     groundBaseKey
	lightDir mgl32.Vec3
	smGen    uint64 // ShadowMap identity (generation counter); see BuildShadowMap
	enabled  bool
}

type cacheKeySky struct {
	top, bottom RGBA
	height      int
}

// BackgroundCache holds three independently invalidated render products: the
// sky gradient, the ground plane's unshadowed base color, and the ground
// plane's shadow term. Each is recomputed by its Ensure* method when its own
// Invalidate* method has been called since the last rebuild, or when the
// inputs passed to Ensure* differ from those of the last rebuild (its key),
// the explicit-invalidation
// idiom grounded on the teacher's asset_manager.go cache-with-dirty-flag
// pattern, split here into three independent flags instead of one since sky,
// ground color, and ground shadow each change on a different cadence (sky
// only on background-color edits, ground shadow every frame the light or
// geometry moves) — see §4.4.
type BackgroundCache struct {
	skyDirty          bool
	groundBaseDirty   bool
	groundShadowDirty bool

	skyKey          cacheKeySky
	groundBaseKey   groundBaseKey
	groundShadowKey groundShadowKey

	sky          []RGBA // one sample per framebuffer row, sky gradient is Y-only
	ground       []groundPixel
	groundShadow []float32

	lastEvent CacheEvent

	lastSkyRebuild          time.Time
	lastGroundBaseRebuild   time.Time
	lastGroundShadowRebuild time.Time
}

func NewBackgroundCache() *BackgroundCache {
	return &BackgroundCache{skyDirty: true, groundBaseDirty: true, groundShadowDirty: true}
}

func (c *BackgroundCache) InvalidateSky()          { c.skyDirty = true }
func (c *BackgroundCache) InvalidateGroundBase()   { c.groundBaseDirty = true }
func (c *BackgroundCache) InvalidateGroundShadow() { c.groundShadowDirty = true }

// LastEvent reports which caches were hit vs. rebuilt during the most recent
// frame's Ensure* calls — exposed for tests (and diagnostics) per Scenario F.
func (c *BackgroundCache) LastEvent() CacheEvent { return c.lastEvent }

// EnsureSky rebuilds the per-row sky gradient if dirty and returns it.
func (c *BackgroundCache) EnsureSky(height int, top, bottom RGBA, now time.Time) []RGBA {
	key := cacheKeySky{top: top, bottom: bottom, height: height}
	if !c.skyDirty && c.skyKey == key && len(c.sky) == height {
		c.lastEvent.Sky = CacheHit
		return c.sky
	}
	c.sky = make([]RGBA, height)
	for y := 0; y < height; y++ {
		t := 1.0 - float32(y)/float32(maxInt(height-1, 1))
		c.sky[y] = SkyGradient(top, bottom, t)
	}
	c.skyKey = key
	c.skyDirty = false
	c.lastSkyRebuild = now
	c.lastEvent.Sky = CacheMiss
	return c.sky
}

// EnsureGroundBase rebuilds, for every screen pixel whose camera ray
// intersects the ground plane y = groundY forward of the camera, the world
// hit point, distance, and a procedural grid-modulated base color, per
// §4.4's ground-base cache contract. A cache hit (no rebuild) occurs when
// none of camera pose, projection, ground color, ground height, or
// ground-enable have changed since the last call.
func (c *BackgroundCache) EnsureGroundBase(width, height int, cam *Camera, groundColor RGBA, groundY float32, enabled bool, now time.Time) ([]groundPixel, groundBaseKey) {
	key := groundBaseKey{
		width: width, height: height,
		eye: cam.Eye, at: cam.At, up: cam.Up,
		fov: cam.FOV, aspect: cam.Aspect, near: cam.Near, far: cam.Far, kind: cam.Kind,
		groundY: groundY, groundColor: groundColor, enabled: enabled,
	}
	if !c.groundBaseDirty && c.groundBaseKey == key && len(c.ground) == width*height {
		c.lastEvent.GroundBase = CacheHit
		return c.ground, key
	}

	ground := make([]groundPixel, width*height)
	if enabled {
		invVP, ok := cam.ViewProj().Inverse()
		if ok {
			for y := 0; y < height; y++ {
				ndcY := 1 - (float32(y)+0.5)/float32(height)*2
				for x := 0; x < width; x++ {
					ndcX := (float32(x)+0.5)/float32(width)*2 - 1
					p := unprojectNDC(invVP, ndcX, ndcY, 0)
					dir := p.Sub(cam.Eye)
					if abs32(dir.Y()) < 1e-6 {
						continue
					}
					t := (groundY - cam.Eye.Y()) / dir.Y()
					if t <= 0 {
						continue
					}
					world := cam.Eye.Add(dir.Mul(t))
					dist := world.Sub(cam.Eye).Len()
					ground[y*width+x] = groundPixel{
						isGround: true,
						world:    world,
						dist:     dist,
						base:     groundGridColor(groundColor, world.X(), world.Z(), dist),
					}
				}
			}
		}
	}

	c.ground = ground
	c.groundBaseKey = key
	c.groundBaseDirty = false
	c.lastGroundBaseRebuild = now
	c.lastEvent.GroundBase = CacheMiss
	return c.ground, key
}

// EnsureGroundShadow rebuilds the per-ground-pixel shadow-map visibility
// factor, reusing the prior result when neither the ground-base cache, the
// light direction, nor the shadow map's identity have changed — §4.4's
// ground-shadow cache, which is the one invalidated by an object-only
// animation frame (objects cast shadows on the ground; the ground's base
// color and the sky do not change on an object-only frame).
func (c *BackgroundCache) EnsureGroundShadow(base []groundPixel, baseKey groundBaseKey, sm *ShadowMap, smGen uint64, lightDir mgl32.Vec3, enabled bool, now time.Time) []float32 {
	key := groundShadowKey{base: baseKey, lightDir: lightDir, smGen: smGen, enabled: enabled}
	if !c.groundShadowDirty && c.groundShadowKey == key && len(c.groundShadow) == len(base) {
		c.lastEvent.GroundShadow = CacheHit
		return c.groundShadow
	}

	vis := make([]float32, len(base))
	up := mgl32.Vec3{0, 1, 0}
	for i := range base {
		vis[i] = 1.0
		if !enabled || !base[i].isGround {
			continue
		}
		if sm != nil {
			vis[i] = sm.Visibility(base[i].world, up)
		}
	}

	c.groundShadow = vis
	c.groundShadowKey = key
	c.groundShadowDirty = false
	c.lastGroundShadowRebuild = now
	c.lastEvent.GroundShadow = CacheMiss
	return c.groundShadow
}

func (c *BackgroundCache) LastRebuild() (sky, groundBase, groundShadow time.Time) {
	return c.lastSkyRebuild, c.lastGroundBaseRebuild, c.lastGroundShadowRebuild
}

// groundGridColor modulates groundColor with a procedural grid-line pattern
// (1-unit cells, thin dark lines) that fades out with distance so it doesn't
// alias into moire far from the camera — grounded on the teacher's color.go
// gradient-stop chains, generalized from a 1D intensity ramp to a 2D ground
// coordinate.
func groundGridColor(groundColor RGBA, worldX, worldZ, dist float32) RGBA {
	const lineWidth = 0.04
	fx := worldX - math32.Floor(worldX)
	fz := worldZ - math32.Floor(worldZ)
	onLine := fx < lineWidth || fx > 1-lineWidth || fz < lineWidth || fz > 1-lineWidth

	fade := math32.Exp(-dist / 60.0)
	darken := groundColor.Mul(0.5)
	if onLine {
		return Lerp(groundColor, darken, fade)
	}
	return groundColor
}

// unprojectNDC maps a clip-space NDC coordinate back to world space via the
// inverse view-projection matrix.
func unprojectNDC(invVP mgl32.Mat4, ndcX, ndcY, ndcZ float32) mgl32.Vec3 {
	clip := mgl32.Vec4{ndcX, ndcY, ndcZ, 1}
	world4 := invVP.Mul4x1(clip)
	if world4.W() != 0 {
		return world4.Vec3().Mul(1.0 / world4.W())
	}
	return world4.Vec3()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
