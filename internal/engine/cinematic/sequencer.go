// Package cinematic plays a scripted camera tour, one phase after another.
package cinematic

import "github.com/go-gl/mathgl/mgl32"

// Rig is the camera surface a tour drives.
type Rig interface {
	ChangePosition(offset mgl32.Vec3, speed float32)
	Rotate(pitch, yaw float32)
}

// Phase is one segment of a tour. Progress starts at Start and moves by
// Step every frame; the phase is active while progress has not passed Limit.
type Phase struct {
	Name  string
	Start float32
	Step  float32
	Limit float32

	// Apply issues the camera call for the current progress.
	Apply func(rig Rig, progress float32)
}

func (p Phase) active(progress float32) bool {
	if p.Step >= 0 {
		return progress <= p.Limit
	}
	return progress > p.Limit
}

// State is the sequencer state.
type State int

const (
	Inactive State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Controller steps through phases strictly in order.
type Controller struct {
	phases   []Phase
	state    State
	index    int
	progress float32
}

// NewController creates an inactive controller over phases.
func NewController(phases []Phase) *Controller {
	return &Controller{phases: phases}
}

// Trigger starts the tour. It only has an effect while Inactive: a running
// tour is not restarted and Complete is terminal.
func (c *Controller) Trigger() bool {
	if c.state != Inactive {
		return false
	}
	c.state = Running
	c.enter(0)
	return true
}

// Step advances the current phase by one frame and issues its camera call.
// Phases whose limit is already passed are skipped in the same frame.
func (c *Controller) Step(rig Rig) {
	for c.state == Running {
		p := c.phases[c.index]
		if p.active(c.progress) {
			p.Apply(rig, c.progress)
			c.progress += p.Step
			return
		}
		c.enter(c.index + 1)
	}
}

func (c *Controller) enter(i int) {
	if i >= len(c.phases) {
		c.state = Complete
		c.index = len(c.phases)
		c.progress = 0
		return
	}
	c.index = i
	c.progress = c.phases[i].Start
}

// State returns the sequencer state.
func (c *Controller) State() State { return c.state }

// Current returns the name and progress of the running phase.
// The name is empty unless the controller is Running.
func (c *Controller) Current() (string, float32) {
	if c.state != Running {
		return "", 0
	}
	return c.phases[c.index].Name, c.progress
}
