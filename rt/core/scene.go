package core

// Object is one mesh drawn with a world transform.
type Object struct {
	Mesh      *Mesh
	Transform Transform
	Material  Material
}

// Scene is the per-frame draw list handed to a renderer.
type Scene struct {
	Background [3]float32
	Objects    []Object
	Lights     []Light
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) Add(obj Object) {
	s.Objects = append(s.Objects, obj)
}

func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// Reset clears objects and lights, keeping capacity.
func (s *Scene) Reset() {
	s.Objects = s.Objects[:0]
	s.Lights = s.Lights[:0]
}
