package meshio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/rukkhadevata123/rasterizer-go"
)

// LoadGLTF loads every primitive of every mesh in a glTF/GLB document into
// one raster.Mesh (node transforms are not applied, and primitives without
// an index accessor contribute vertices but no triangles), an alternate
// loader path alongside OBJ
// since the spec's data model is loader-agnostic — grounded on the
// qmuntal/gltf usage pattern from the pack's renderer examples, using its
// `modeler` helper to pull POSITION/NORMAL/TEXCOORD_0 accessors directly
// into float32 slices instead of hand-rolling buffer-view math.
func LoadGLTF(path string) (*raster.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open gltf %s: %w", path, err)
	}

	mesh := &raster.Mesh{Materials: []raster.Material{raster.NewBlinnPhong(raster.ColorWhite)}}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			base := uint32(len(mesh.Positions))

			posAcc, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posAcc], nil)
			if err != nil {
				return nil, fmt.Errorf("meshio: gltf positions: %w", err)
			}
			for _, p := range positions {
				mesh.Positions = append(mesh.Positions, mgl32.Vec3{p[0], p[1], p[2]})
			}

			if normAcc, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, err := modeler.ReadNormal(doc, doc.Accessors[normAcc], nil)
				if err != nil {
					return nil, fmt.Errorf("meshio: gltf normals: %w", err)
				}
				for _, n := range normals {
					mesh.Normals = append(mesh.Normals, mgl32.Vec3{n[0], n[1], n[2]})
				}
			} else {
				for range positions {
					mesh.Normals = append(mesh.Normals, mgl32.Vec3{0, 0, 0})
				}
			}

			if uvAcc, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvAcc], nil)
				if err != nil {
					return nil, fmt.Errorf("meshio: gltf uvs: %w", err)
				}
				for _, uv := range uvs {
					mesh.UVs = append(mesh.UVs, mgl32.Vec2{uv[0], uv[1]})
				}
			} else {
				for range positions {
					mesh.UVs = append(mesh.UVs, mgl32.Vec2{0, 0})
				}
			}

			if prim.Indices != nil {
				indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("meshio: gltf indices: %w", err)
				}
				for i := 0; i < len(indices); i += 3 {
					mesh.Indices = append(mesh.Indices, base+indices[i], base+indices[i+1], base+indices[i+2])
					mesh.MaterialIdx = append(mesh.MaterialIdx, 0)
				}
			}
		}
	}

	if len(mesh.Positions) == 0 {
		return nil, fmt.Errorf("meshio: %s: no primitives found", path)
	}
	return mesh, nil
}
