package raster

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackgroundCacheSkyMissThenHit(t *testing.T) {
	c := NewBackgroundCache()
	top, bottom := RGBA{0.3, 0.5, 0.9, 1}, RGBA{0.9, 0.9, 0.95, 1}

	c.EnsureSky(8, top, bottom, time.Time{})
	require.Equal(t, CacheMiss, c.LastEvent().Sky, "first call with the fresh cache is always a miss")

	c.EnsureSky(8, top, bottom, time.Time{})
	assert.Equal(t, CacheHit, c.LastEvent().Sky, "unchanged inputs must hit")
}

func TestBackgroundCacheSkyInvalidateForcesRebuild(t *testing.T) {
	c := NewBackgroundCache()
	top, bottom := RGBA{0.3, 0.5, 0.9, 1}, RGBA{0.9, 0.9, 0.95, 1}
	c.EnsureSky(8, top, bottom, time.Time{})

	c.InvalidateSky()
	c.EnsureSky(8, top, bottom, time.Time{})
	assert.Equal(t, CacheMiss, c.LastEvent().Sky, "an explicit invalidation must force a rebuild even with unchanged inputs")
}

func TestBackgroundCacheSkyChangedInputsForceRebuildWithoutInvalidate(t *testing.T) {
	c := NewBackgroundCache()
	top, bottom := RGBA{0.3, 0.5, 0.9, 1}, RGBA{0.9, 0.9, 0.95, 1}
	c.EnsureSky(8, top, bottom, time.Time{})

	c.EnsureSky(8, RGBA{1, 0, 0, 1}, bottom, time.Time{})
	assert.Equal(t, CacheMiss, c.LastEvent().Sky, "a changed color must be detected even without calling Invalidate")
}

func TestBackgroundCacheGroundBaseHitOnCameraStill(t *testing.T) {
	c := NewBackgroundCache()
	cam := NewCamera()
	groundColor := RGBA{0.4, 0.4, 0.4, 1}

	c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})
	require.Equal(t, CacheMiss, c.LastEvent().GroundBase)

	c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})
	assert.Equal(t, CacheHit, c.LastEvent().GroundBase, "an unmoved camera must hit the ground-base cache")
}

func TestBackgroundCacheGroundBaseMissOnCameraMove(t *testing.T) {
	c := NewBackgroundCache()
	cam := NewCamera()
	groundColor := RGBA{0.4, 0.4, 0.4, 1}
	c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})

	cam.SetEye(10, 10, 10)
	_, key := c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})
	assert.Equal(t, CacheMiss, c.LastEvent().GroundBase, "camera movement must invalidate the ground-base cache")
	assert.Equal(t, cam.Eye, key.eye)
}

// TestBackgroundCacheGroundShadowInvalidatesIndependentlyOfGroundBase covers
// Scenario F: an object-only animation frame (light direction or shadow-map
// generation changes) must miss the ground-shadow cache while the ground-base
// and sky caches, whose keys didn't change, still hit.
func TestBackgroundCacheGroundShadowInvalidatesIndependentlyOfGroundBase(t *testing.T) {
	c := NewBackgroundCache()
	cam := NewCamera()
	groundColor := RGBA{0.4, 0.4, 0.4, 1}
	top, bottom := RGBA{0.3, 0.5, 0.9, 1}, RGBA{0.9, 0.9, 0.95, 1}
	lightDir := mgl32.Vec3{0, -1, 0}

	c.EnsureSky(8, top, bottom, time.Time{})
	base, key := c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})
	c.EnsureGroundShadow(base, key, nil, 1, lightDir, true, time.Time{})

	// Second frame: nothing about the camera or sky changes, but the shadow
	// map's generation counter increments (an object moved and the shadow
	// pass re-rendered).
	c.EnsureSky(8, top, bottom, time.Time{})
	base2, key2 := c.EnsureGroundBase(8, 8, cam, groundColor, 0, true, time.Time{})
	c.EnsureGroundShadow(base2, key2, nil, 2, lightDir, true, time.Time{})

	ev := c.LastEvent()
	assert.Equal(t, CacheHit, ev.Sky)
	assert.Equal(t, CacheHit, ev.GroundBase)
	assert.Equal(t, CacheMiss, ev.GroundShadow)
}

func TestGroundGridColorFadesWithDistance(t *testing.T) {
	near := groundGridColor(RGBA{1, 1, 1, 1}, 0.01, 0.01, 1)
	far := groundGridColor(RGBA{1, 1, 1, 1}, 0.01, 0.01, 10000)
	assert.InDelta(t, 1.0, far.R, 1e-3, "a grid line far from the camera should fade to the base color")
	assert.Less(t, near.R, far.R, "a near grid line should be visibly darker than a faded-out far one")
}
