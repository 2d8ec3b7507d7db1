package raster

import (
	"context"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// shadowMapGen hands out a monotonically increasing identity to every
// rebuilt ShadowMap, so the ground-shadow cache (cache.go) can tell "the
// light moved and the map was rebuilt" apart from "the map object is the
// same as last frame" without hashing its whole depth texture.
var shadowMapGen atomic.Uint64

// ShadowMap is a light-space depth buffer rendered from a directional
// light's point of view, fit to the scene's bounding sphere so the whole
// scene lands inside the orthographic frustum regardless of its extent.
// Grounded on the teacher's shadows.go ShadowMap (light-space view/proj +
// depth render), retargeted from the teacher's fixed scene-extent box to a
// sphere-fit frustum so it adapts to any scene without a manual bounds pass.
type ShadowMap struct {
	fb        *Framebuffer
	lightView mgl32.Mat4
	lightProj mgl32.Mat4
	pcf       bool
	gen       uint64
}

// Generation returns this shadow map's identity, used to detect when the
// ground-shadow cache's dependency on "which shadow map" has changed.
func (sm *ShadowMap) Generation() uint64 { return sm.gen }

// BuildShadowMap renders scene's geometry from light's perspective into a
// size x size depth buffer. light.Kind must be LightDirectional; point
// lights are not supported (Non-goal: omnidirectional cube-map shadows).
func BuildShadowMap(ctx context.Context, scene *Scene, light Light, size int, pcf bool) (*ShadowMap, error) {
	bounds := sceneBoundingSphere(scene)
	if bounds.Radius <= 0 {
		bounds.Radius = 1
	}

	lightDir := light.Direction.Normalize()
	eye := bounds.Center.Add(lightDir.Mul(bounds.Radius * 2))
	up := mgl32.Vec3{0, 1, 0}
	if abs32(lightDir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	view := mgl32.LookAtV(eye, bounds.Center, up)
	h := bounds.Radius * 1.05
	proj := mgl32.Ortho(-h, h, -h, h, 0.01, bounds.Radius*4)

	sm := &ShadowMap{
		fb:        NewFramebuffer(size, size, 1),
		lightView: view,
		lightProj: proj,
		pcf:       pcf,
		gen:       shadowMapGen.Add(1),
	}

	vp := proj.Mul4(view)
	for _, obj := range scene.Objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		vertices, err := processLightSpaceVertices(ctx, obj.Mesh, obj.Transform.Matrix(), vp)
		if err != nil {
			return nil, err
		}
		tris := AssembleTriangles(obj.Mesh, vertices, size, size, false)
		if err := RasterizeTriangles(ctx, sm.fb, tris, RasterSettings{Samples: 1, DepthOnly: true}); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// processLightSpaceVertices is ProcessVertices specialized to an already
// composed view-projection matrix (the light's), since C1's ProcessVertices
// takes a Camera rather than a bare matrix.
func processLightSpaceVertices(ctx context.Context, mesh *Mesh, model mgl32.Mat4, vp mgl32.Mat4) ([]VertexRecord, error) {
	n := len(mesh.Positions)
	out := make([]VertexRecord, n)
	normalMat := normalMatrix(model)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		world4 := model.Mul4x1(mgl32.Vec4{mesh.Positions[i].X(), mesh.Positions[i].Y(), mesh.Positions[i].Z(), 1})
		var normal mgl32.Vec3
		if i < len(mesh.Normals) {
			normal = normalMat.Mul3x1(mesh.Normals[i]).Normalize()
		}
		var uv mgl32.Vec2
		if i < len(mesh.UVs) {
			uv = mesh.UVs[i]
		}
		out[i] = VertexRecord{World: world4.Vec3(), Clip: vp.Mul4x1(world4), Normal: normal, UV: uv}
	}
	return out, nil
}

func sceneBoundingSphere(scene *Scene) BoundingSphere {
	var positions []mgl32.Vec3
	for _, obj := range scene.Objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		m := obj.Transform.Matrix()
		for _, p := range obj.Mesh.Positions {
			w := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
			positions = append(positions, w.Vec3())
		}
	}
	return ComputeBoundingSphere(positions)
}

// Visibility samples the shadow map at worldPos, returning 1.0 if lit and
// 0.0 if in shadow (or a soft value in between under PCF), with a constant
// depth bias to avoid shadow acne — the teacher's shadows.go
// CalculateShadowFactor.
func (sm *ShadowMap) Visibility(worldPos, normal mgl32.Vec3) float32 {
	clip := sm.lightProj.Mul4(sm.lightView).Mul4x1(mgl32.Vec4{worldPos.X(), worldPos.Y(), worldPos.Z(), 1})
	if clip.W() == 0 {
		return 1.0
	}
	ndc := clip.Vec3().Mul(1.0 / clip.W())
	u := ndc.X()*0.5 + 0.5
	v := 1.0 - (ndc.Y()*0.5 + 0.5)
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 1.0
	}

	bias := SHADOW_BIAS
	currentDepth := (ndc.Z()*0.5 + 0.5) - bias

	if !sm.pcf {
		return sm.sampleTap(u, v, currentDepth)
	}

	const radius = 1
	var sum float32
	var count float32
	texel := 1.0 / float32(sm.fb.Width)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			sum += sm.sampleTap(u+float32(dx)*texel, v+float32(dy)*texel, currentDepth)
			count++
		}
	}
	return sum / count
}

func (sm *ShadowMap) sampleTap(u, v, currentDepth float32) float32 {
	x := clampInt(int(u*float32(sm.fb.Width)), 0, sm.fb.Width-1)
	y := clampInt(int(v*float32(sm.fb.Height)), 0, sm.fb.Height-1)
	stored := sm.fb.Depth().Peek(sm.fb.depthIndex(x, y, 0))
	if currentDepth > stored {
		return 0.0
	}
	return 1.0
}
