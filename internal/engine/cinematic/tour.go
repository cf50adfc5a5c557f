package cinematic

import "github.com/go-gl/mathgl/mgl32"

const (
	tourMoveSpeed = 0.001 // Scale passed to ChangePosition
	tourMoveStep  = 0.01  // Progress per frame of a translation phase
	tourTurnStep  = 1.0   // Degrees per frame of a rotation phase
)

// Move builds a translation phase. Progress runs from 0 up to limit and the
// camera moves by offset(progress) scaled by the tour move speed each frame.
func Move(name string, limit float32, offset func(p float32) mgl32.Vec3) Phase {
	return Phase{
		Name:  name,
		Start: 0,
		Step:  tourMoveStep,
		Limit: limit,
		Apply: func(rig Rig, p float32) {
			rig.ChangePosition(offset(p), tourMoveSpeed)
		},
	}
}

// Turn builds a rotation phase that sets the yaw from `from` towards `to`
// one degree per frame, keeping the horizon level.
func Turn(name string, from, to float32) Phase {
	step := float32(tourTurnStep)
	if to < from {
		step = -step
	}
	return Phase{
		Name:  name,
		Start: from,
		Step:  step,
		Limit: to,
		Apply: func(rig Rig, yaw float32) {
			rig.Rotate(0, yaw)
		},
	}
}

// Tour returns the presentation fly-through of the farm.
func Tour() []Phase {
	return []Phase{
		Move("go_z", 5, func(p float32) mgl32.Vec3 { return mgl32.Vec3{0, 0, p} }),
		Turn("rotate", 90, 0),
		Turn("rotate_back", 0, 90),
		Move("go_x", 6, func(p float32) mgl32.Vec3 { return mgl32.Vec3{-p, 0, -1} }),
		Turn("rotate_2", 90, 250),
		Move("go_z2", 9, func(p float32) mgl32.Vec3 { return mgl32.Vec3{-1, 0, -p} }),
		Turn("rotate_3", 250, 200),
		Move("go_x2", 5, func(p float32) mgl32.Vec3 { return mgl32.Vec3{-p, 0, -1} }),
	}
}
