// Package input tracks keyboard and mouse state between frames.
//
// The window layer converts platform events into Events and feeds them to a
// State; everything above it reads held keys, key edges and mouse deltas.
package input

// Key identifies a bound key.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyT
	KeyY
	KeyF
	KeyP
	KeyM
	KeyZ
	KeyC
	KeyX
	KeyF12
	KeyEscape

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:   "none",
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyE:      "E",
	KeyR:      "R",
	KeyT:      "T",
	KeyY:      "Y",
	KeyF:      "F",
	KeyP:      "P",
	KeyM:      "M",
	KeyZ:      "Z",
	KeyC:      "C",
	KeyX:      "X",
	KeyF12:    "F12",
	KeyEscape: "Escape",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// EventType is the kind of an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event is a platform-independent input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // auto-repeat of a held key

	Width  int
	Height int

	DeltaX float32 // relative mouse motion
	DeltaY float32
}

// State accumulates events for the current frame.
type State struct {
	held    [keyCount]bool
	pressed [keyCount]bool

	mouseDX float32
	mouseDY float32

	quit    bool
	resized bool
	width   int
	height  int
}

// New creates an empty input state.
func New() *State {
	return &State{}
}

// BeginFrame clears per-frame data: key edges, mouse motion and the resize
// flag. Held keys and the quit request persist.
func (s *State) BeginFrame() {
	s.pressed = [keyCount]bool{}
	s.mouseDX, s.mouseDY = 0, 0
	s.resized = false
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventQuit:
		s.quit = true

	case EventWindowResize:
		s.resized = true
		s.width, s.height = e.Width, e.Height

	case EventKeyDown:
		if !valid(e.Key) {
			return
		}
		// Repeats and already-held keys produce no new edge
		if !e.Repeat && !s.held[e.Key] {
			s.pressed[e.Key] = true
		}
		s.held[e.Key] = true
		if e.Key == KeyEscape {
			s.quit = true
		}

	case EventKeyUp:
		if valid(e.Key) {
			s.held[e.Key] = false
		}

	case EventMouseMove:
		s.mouseDX += e.DeltaX
		s.mouseDY += e.DeltaY
	}
}

// Held reports whether k is currently down.
func (s *State) Held(k Key) bool {
	return valid(k) && s.held[k]
}

// Pressed reports whether k went down during this frame.
func (s *State) Pressed(k Key) bool {
	return valid(k) && s.pressed[k]
}

// MouseDelta returns the relative mouse motion summed over this frame.
func (s *State) MouseDelta() (dx, dy float32) {
	return s.mouseDX, s.mouseDY
}

// QuitRequested reports whether the window was closed or Escape pressed.
func (s *State) QuitRequested() bool { return s.quit }

// Resized returns the new drawable size if the window was resized this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

func valid(k Key) bool {
	return k > KeyNone && k < keyCount
}
