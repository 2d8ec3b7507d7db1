package raster

import (
	"context"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// VertexRecord is the C1 output: a vertex carried through world space and
// clip space, with its interpolated attributes intact for C2/C5/C6.
type VertexRecord struct {
	World  mgl32.Vec3
	Clip   mgl32.Vec4
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// ProcessVertices applies the model matrix, the normal matrix, and the
// camera's view-projection matrix to every vertex of mesh, producing one
// VertexRecord per mesh vertex. Work is chunked across GOMAXPROCS-ish
// goroutines via errgroup, the parallel-for idiom grounded on the teacher's
// renderer_parallel.go tile-queue fan-out, applied here at vertex instead of
// tile granularity.
func ProcessVertices(ctx context.Context, mesh *Mesh, model mgl32.Mat4, cam *Camera) ([]VertexRecord, error) {
	n := len(mesh.Positions)
	out := make([]VertexRecord, n)
	if n == 0 {
		return out, nil
	}

	normalMat := normalMatrix(model)
	vp := cam.ViewProj()

	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				world4 := model.Mul4x1(mgl32.Vec4{
					mesh.Positions[i].X(), mesh.Positions[i].Y(), mesh.Positions[i].Z(), 1,
				})
				world := world4.Vec3()
				clip := vp.Mul4x1(world4)

				var normal mgl32.Vec3
				if i < len(mesh.Normals) {
					normal = normalMat.Mul3x1(mesh.Normals[i]).Normalize()
				}
				var uv mgl32.Vec2
				if i < len(mesh.UVs) {
					uv = mesh.UVs[i]
				}
				out[i] = VertexRecord{World: world, Clip: clip, Normal: normal, UV: uv}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, newError(ErrResourceExhaustion, "ProcessVertices", err)
	}
	return out, nil
}

// normalMatrix returns transpose(inverse(upper 3x3)) with a rigid-transform
// fast path, mirroring Transform.NormalMatrix.
func normalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	upper := model.Mat3()
	c0, c1, c2 := upper.Col(0), upper.Col(1), upper.Col(2)
	const eps = 1e-5
	uniform := abs32(c0.Len()-c1.Len()) < eps && abs32(c1.Len()-c2.Len()) < eps
	orthogonal := abs32(c0.Dot(c1)) < eps*c0.Len()*c1.Len() &&
		abs32(c1.Dot(c2)) < eps*c1.Len()*c2.Len() &&
		abs32(c0.Dot(c2)) < eps*c0.Len()*c2.Len()
	if uniform && orthogonal {
		return upper
	}
	inv, ok := upper.Inverse()
	if !ok {
		return mgl32.Ident3()
	}
	return inv.Transpose()
}
