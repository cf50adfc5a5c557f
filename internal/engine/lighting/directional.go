// Package lighting describes the scene lights and the light-space transform
// used by the shadow pass.
package lighting

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Directional is a light infinitely far away, like the sun.
type Directional struct {
	Direction mgl32.Vec3 // Direction towards the light
	Color     mgl32.Vec3
}

// Frustum is the orthographic box the shadow map covers.
type Frustum struct {
	Extent float32 // Half-size of the box in X and Y
	Near   float32
	Far    float32
}

// LightSpaceMatrix returns projection*view for rendering depth from the
// light. The light looks from Direction at the world origin.
func (d Directional) LightSpaceMatrix(f Frustum) mgl32.Mat4 {
	eye := d.Direction
	if eye.Len() == 0 {
		eye = mgl32.Vec3{0, 1, 0}
	}

	up := mgl32.Vec3{0, 1, 0}
	// A vertical light is parallel to the default up vector
	if gomath.Abs(float64(eye.Normalize().Y())) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(eye, mgl32.Vec3{}, up)
	proj := mgl32.Ortho(-f.Extent, f.Extent, -f.Extent, f.Extent, f.Near, f.Far)
	return proj.Mul4(view)
}
