package animation

import "github.com/go-gl/mathgl/mgl32"

// defaultSpeed is 0.001 units per frame at 60 frames per second plus the
// 0.001 units per second timer term the scene was tuned with.
const defaultSpeed = 0.061

// TractorProfile is the field tractor: drives along -X and back, forever.
func TractorProfile() Profile {
	return Profile{
		Name:         "tractor",
		Speed:        defaultSpeed,
		ForwardSteps: 1250,
		Returns:      true,
		Loop:         true,
		Direction:    mgl32.Vec3{-1, 0, 0},
	}
}

// RoadTractorProfile is the tractor on the road: drives diagonally once
// the power key is pressed, then parks.
func RoadTractorProfile() Profile {
	return Profile{
		Name:         "road_tractor",
		Speed:        defaultSpeed,
		ForwardSteps: 1700,
		Gated:        true,
		Direction:    mgl32.Vec3{-1, 0, -0.5},
	}
}

// BoatProfile is the boat: crosses the pond along +X once powered.
func BoatProfile() Profile {
	return Profile{
		Name:         "boat",
		Speed:        defaultSpeed,
		ForwardSteps: 450,
		Gated:        true,
		Direction:    mgl32.Vec3{1, 0, 0},
	}
}
