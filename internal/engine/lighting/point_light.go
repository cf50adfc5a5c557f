package lighting

import "github.com/go-gl/mathgl/mgl32"

// PointLight is a switchable light at a fixed position, such as the street lamp.
type PointLight struct {
	Position mgl32.Vec3
	On       bool
}

// Toggle switches the light.
func (p *PointLight) Toggle() {
	p.On = !p.On
}

// Flag returns the shader switch: x is 1 when the light is on, 0 otherwise.
func (p PointLight) Flag() mgl32.Vec3 {
	if p.On {
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{}
}
