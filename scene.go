package raster

// SceneObject binds one mesh instance to a transform in world space.
// Grounded on the teacher's scene.go SceneNode, flattened from a
// parent/child graph to a single list: nothing in the pipeline needs
// hierarchical transforms, and a flat slice is what ProcessVertices and the
// rasterizer iterate over per frame anyway.
type SceneObject struct {
	Mesh      *Mesh
	Transform *Transform
	Visible   bool
}

// Scene is everything RenderFrame needs: the object list, lights, ambient
// term, and the active camera. Grounded on the teacher's scene.go Scene{Root,
// Camera}, with Root's tree collapsed to Objects.
type Scene struct {
	Objects []*SceneObject
	Lights  []Light
	Ambient Ambient
	Camera  *Camera

	// BackgroundTop/BackgroundBottom feed the C4 sky cache.
	BackgroundTop    RGBA
	BackgroundBottom RGBA
}

// NewScene returns an empty scene with a default camera and a neutral
// ambient term.
func NewScene() *Scene {
	return &Scene{
		Camera:           NewCamera(),
		Ambient:          Ambient{Color: ColorWhite, Intensity: 0.1},
		BackgroundTop:    RGBA{R: 0.3, G: 0.5, B: 0.9, A: 1},
		BackgroundBottom: RGBA{R: 0.9, G: 0.9, B: 0.95, A: 1},
	}
}

// AddObject appends a visible object built from mesh and transform.
func (s *Scene) AddObject(mesh *Mesh, transform *Transform) *SceneObject {
	obj := &SceneObject{Mesh: mesh, Transform: transform, Visible: true}
	s.Objects = append(s.Objects, obj)
	return obj
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}
