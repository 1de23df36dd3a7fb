package core

// Material is a Phong-style surface description.
type Material struct {
	Color     [3]float32
	Specular  [3]float32
	Shininess float32
}

// DefaultMaterial is white with a faint highlight.
func DefaultMaterial() Material {
	return Material{
		Color:     [3]float32{1, 1, 1},
		Specular:  [3]float32{0x11 / 255.0, 0x11 / 255.0, 0x11 / 255.0},
		Shininess: 30,
	}
}
