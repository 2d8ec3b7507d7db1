package raster

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessVerticesIdentityTransform(t *testing.T) {
	mesh := GenerateGroundPlane(1, 0, NewBlinnPhong(ColorWhite))
	cam := NewCamera()
	cam.SetEye(0, 5, 0)
	cam.SetAt(0, 0, 0)
	cam.Aspect = 1

	recs, err := ProcessVertices(context.Background(), mesh, mgl32.Ident4(), cam)
	require.NoError(t, err)
	require.Len(t, recs, len(mesh.Positions))

	for i, rec := range recs {
		assert.InDelta(t, mesh.Positions[i].X(), rec.World.X(), 1e-5)
		assert.InDelta(t, mesh.Positions[i].Y(), rec.World.Y(), 1e-5)
		assert.InDelta(t, mesh.Positions[i].Z(), rec.World.Z(), 1e-5)
	}
}

func TestProcessVerticesEmptyMesh(t *testing.T) {
	mesh := &Mesh{}
	cam := NewCamera()
	recs, err := ProcessVertices(context.Background(), mesh, mgl32.Ident4(), cam)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestProcessVerticesAppliesModelTranslation(t *testing.T) {
	mesh := GenerateGroundPlane(1, 0, NewBlinnPhong(ColorWhite))
	cam := NewCamera()
	model := mgl32.Translate3D(5, 0, 0)

	recs, err := ProcessVertices(context.Background(), mesh, model, cam)
	require.NoError(t, err)
	for i, rec := range recs {
		assert.InDelta(t, mesh.Positions[i].X()+5, rec.World.X(), 1e-4)
	}
}

func TestProcessVerticesCancelledContext(t *testing.T) {
	mesh := GenerateSphere(1, 64, 64, NewBlinnPhong(ColorWhite))
	cam := NewCamera()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ProcessVertices(ctx, mesh, mgl32.Ident4(), cam)
	assert.Error(t, err)
}
