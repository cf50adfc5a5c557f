// Package animation drives the scripted object motions (tractors, boat).
//
// Every animated object runs the same phase machine, configured by a
// Profile. Progress advances with wall-clock time. Forward ends after a
// fixed number of advancing frames; Returning ends back at rest.
package animation

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Phase is the state of an animation.
type Phase int

const (
	// Idle renders at the rest position. Gated profiles wait here for power.
	Idle Phase = iota
	// Forward moves away from the rest position.
	Forward
	// Returning moves back towards the rest position.
	Returning
	// Holding keeps the last transform: paused by power loss or finished.
	Holding
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Forward:
		return "forward"
	case Returning:
		return "returning"
	case Holding:
		return "holding"
	default:
		return "unknown"
	}
}

// Profile holds the per-object constants of a scripted motion.
type Profile struct {
	Name string

	// Speed is the progress gained per second of elapsed time.
	Speed float32

	// ForwardSteps is the number of advancing frames spent in Forward.
	ForwardSteps int

	// Returns makes the object travel back to its rest position after
	// Forward. Returning ends once the whole forward distance is undone.
	Returns bool

	// Loop restarts the motion from Idle after Returning.
	Loop bool

	// Gated profiles only move while powered.
	Gated bool

	// Direction is multiplied by progress to get the translation offset.
	Direction mgl32.Vec3
}

// State is one object's animation.
type State struct {
	profile Profile
	phase   Phase
	powered bool

	progress     float32 // Forward progress
	returned     float32 // Returning progress, capped at lastProgress
	lastProgress float32 // Forward progress captured when Returning began
	steps        int     // Advancing frames spent in Forward
}

// New creates an animation at rest.
func New(profile Profile) *State {
	return &State{profile: profile}
}

// Profile returns the configuration this animation runs.
func (s *State) Profile() Profile { return s.profile }

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Progress returns the forward progress.
func (s *State) Progress() float32 { return s.progress }

// LastProgress returns the forward progress captured at the start of Returning.
func (s *State) LastProgress() float32 { return s.lastProgress }

// Powered reports whether a gated animation is allowed to move.
func (s *State) Powered() bool { return s.powered }

// SetPowered turns a gated animation on or off. Turning power off pauses the
// motion in place; turning it back on resumes from the same progress.
func (s *State) SetPowered(on bool) {
	s.powered = on
	if !s.profile.Gated {
		return
	}
	switch {
	case !on && s.phase == Forward:
		s.phase = Holding
	case on && s.phase == Holding && !s.finished():
		s.phase = Forward
	}
}

// Advance moves the animation by elapsed seconds. Non-positive or NaN
// elapsed time changes nothing.
func (s *State) Advance(elapsed float64) {
	if !(elapsed > 0) || gomath.IsInf(elapsed, 0) {
		return
	}
	delta := s.profile.Speed * float32(elapsed)

	switch s.phase {
	case Idle:
		if s.profile.Gated && !s.powered {
			return
		}
		s.phase = Forward
		s.steps = 0
		s.advanceForward(delta)

	case Forward:
		s.advanceForward(delta)

	case Returning:
		s.returned += delta
		if s.returned >= s.lastProgress {
			s.reset()
		}

	case Holding:
		// Paused or finished: keep the last transform
	}
}

func (s *State) advanceForward(delta float32) {
	s.progress += delta
	s.steps++
	if s.steps < s.profile.ForwardSteps {
		return
	}

	// Return offsets are measured from the forward end point, so the
	// switch does not move the object.
	if s.profile.Returns {
		s.phase = Returning
		s.lastProgress = s.progress
		s.returned = 0
		return
	}
	s.phase = Holding
}

func (s *State) finished() bool {
	return s.steps >= s.profile.ForwardSteps
}

func (s *State) reset() {
	s.progress = 0
	s.returned = 0
	s.lastProgress = 0
	s.steps = 0
	s.phase = Idle
	if !s.profile.Loop {
		s.phase = Holding
		s.steps = s.profile.ForwardSteps
	}
}

// Offset returns the current translation along the profile direction.
func (s *State) Offset() mgl32.Vec3 {
	if s.phase == Returning {
		return s.profile.Direction.Mul(s.lastProgress - s.returned)
	}
	return s.profile.Direction.Mul(s.progress)
}

// Transform returns the model matrix for the current offset.
func (s *State) Transform() mgl32.Mat4 {
	o := s.Offset()
	return mgl32.Translate3D(o.X(), o.Y(), o.Z())
}
