// Package camera provides the free-fly camera used to walk around the scene.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch is the pitch limit in degrees. Looking straight up or down would
// make the front vector parallel to world up and collapse the view basis.
const MaxPitch = 89.0

// Direction selects the axis a Move call translates along.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Camera is a free-fly camera described by position and yaw/pitch angles.
// Angles are in degrees; yaw 0 looks down +X, yaw 90 looks down +Z.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32
}

// New creates a camera at position looking towards target.
// Yaw and pitch are derived from the target so later absolute rotations
// continue from the initial orientation.
func New(position, target, worldUp mgl32.Vec3) *Camera {
	c := &Camera{
		position: position,
		worldUp:  worldUp.Normalize(),
	}

	dir := target.Sub(position)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, -1}
	}
	dir = dir.Normalize()

	c.pitch = mgl32.RadToDeg(float32(gomath.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1)))))
	c.yaw = mgl32.RadToDeg(float32(gomath.Atan2(float64(dir.Z()), float64(dir.X()))))
	c.Rotate(c.pitch, c.yaw)

	return c
}

// Move translates the camera along its front or right vector.
func (c *Camera) Move(dir Direction, speed float32) {
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(speed))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(speed))
	case Right:
		c.position = c.position.Add(c.right.Mul(speed))
	case Left:
		c.position = c.position.Sub(c.right.Mul(speed))
	}
}

// Rotate sets absolute pitch and yaw in degrees and rebuilds the view basis.
// Pitch is clamped to [-MaxPitch, MaxPitch].
func (c *Camera) Rotate(pitch, yaw float32) {
	if pitch != pitch {
		pitch = 0
	}
	c.pitch = mgl32.Clamp(pitch, -MaxPitch, MaxPitch)
	c.yaw = yaw

	p := float64(mgl32.DegToRad(c.pitch))
	y := float64(mgl32.DegToRad(c.yaw))

	c.front = mgl32.Vec3{
		float32(gomath.Cos(y) * gomath.Cos(p)),
		float32(gomath.Sin(p)),
		float32(gomath.Sin(y) * gomath.Cos(p)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ChangePosition translates the camera by offset scaled by speed.
func (c *Camera) ChangePosition(offset mgl32.Vec3, speed float32) {
	c.position = c.position.Add(offset.Mul(speed))
}

// ViewMatrix returns the world-to-view matrix. It has no side effects.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Yaw returns the yaw angle in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }
