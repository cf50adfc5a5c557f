package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/farmstead/internal/config"
	"github.com/Faultbox/farmstead/internal/engine/animation"
	"github.com/Faultbox/farmstead/internal/engine/cinematic"
	"github.com/Faultbox/farmstead/internal/engine/input"
	"github.com/Faultbox/farmstead/internal/engine/renderer"
)

const frame = 1.0 / 60

func newWorld() *World {
	w := New(config.Default())
	for _, name := range config.SceneModels {
		w.AddObject(name, nil)
	}
	return w
}

// press starts a new frame with k going down.
func press(in *input.State, k input.Key) {
	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventKeyDown, Key: k})
}

func release(in *input.State, k input.Key) {
	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventKeyUp, Key: k})
}

func TestNewWorld(t *testing.T) {
	w := newWorld()

	if w.Graph().Len() != len(config.SceneModels) {
		t.Errorf("graph has %d objects, want %d", w.Graph().Len(), len(config.SceneModels))
	}
	for i, obj := range w.Graph().Objects() {
		if obj.Name != config.SceneModels[i] {
			t.Errorf("object %d = %q, want %q", i, obj.Name, config.SceneModels[i])
		}
		animated := w.Animation(obj.Name) != nil
		if (obj.Animator != nil) != animated {
			t.Errorf("object %q animator = %v, want animated %v", obj.Name, obj.Animator, animated)
		}
	}

	want := mgl32.Vec3(config.Default().Camera.Position)
	if w.Camera().Position() != want {
		t.Errorf("camera at %v, want %v", w.Camera().Position(), want)
	}
	if w.Settings().FogOn() || w.Settings().DebugDepth() || w.Settings().Lamp.On {
		t.Error("toggles should start off")
	}
	if w.Tour().State() != cinematic.Inactive {
		t.Errorf("tour state = %v, want inactive", w.Tour().State())
	}
}

func TestForwardMovement(t *testing.T) {
	w := newWorld()
	in := input.New()
	start := w.Camera().Position()
	front := w.Camera().Front()

	const frames = 100
	press(in, input.KeyW)
	w.Update(frame, in)
	for i := 1; i < frames; i++ {
		in.BeginFrame()
		w.Update(frame, in)
	}

	want := start.Add(front.Mul(frames * 0.005))
	if got := w.Camera().Position(); !got.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestMovementKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want func(w *World) mgl32.Vec3
	}{
		{input.KeyW, func(w *World) mgl32.Vec3 { return w.Camera().Front() }},
		{input.KeyS, func(w *World) mgl32.Vec3 { return w.Camera().Front().Mul(-1) }},
		{input.KeyD, func(w *World) mgl32.Vec3 { return w.Camera().Right() }},
		{input.KeyA, func(w *World) mgl32.Vec3 { return w.Camera().Right().Mul(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			w := newWorld()
			in := input.New()
			start := w.Camera().Position()

			press(in, tt.key)
			w.Update(frame, in)

			got := w.Camera().Position().Sub(start)
			want := tt.want(w).Mul(0.005)
			if !got.ApproxEqualThreshold(want, 1e-6) {
				t.Errorf("moved %v, want %v", got, want)
			}
		})
	}
}

func TestMouseLook(t *testing.T) {
	w := newWorld()
	in := input.New()
	yaw, pitch := w.Camera().Yaw(), w.Camera().Pitch()

	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaX: 20, DeltaY: 10})
	w.Update(frame, in)

	if got := w.Camera().Yaw(); !mgl32.FloatEqualThreshold(got, yaw+2, 1e-4) {
		t.Errorf("yaw = %v, want %v", got, yaw+2)
	}
	if got := w.Camera().Pitch(); !mgl32.FloatEqualThreshold(got, pitch-1, 1e-4) {
		t.Errorf("pitch = %v, want %v", got, pitch-1)
	}
}

func TestMouseLookPitchClamp(t *testing.T) {
	w := newWorld()
	in := input.New()

	// Far past the limit, then back down: the accumulator must not wind up
	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaY: -5000})
	w.Update(frame, in)
	if got := w.Camera().Pitch(); got != 89 {
		t.Fatalf("pitch = %v, want 89", got)
	}

	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaY: 10})
	w.Update(frame, in)
	if got := w.Camera().Pitch(); !mgl32.FloatEqualThreshold(got, 88, 1e-4) {
		t.Errorf("pitch = %v, want 88", got)
	}
}

func TestToggleKeysAreEdgeTriggered(t *testing.T) {
	tests := []struct {
		key input.Key
		on  func(s *renderer.Settings) bool
	}{
		{input.KeyF, (*renderer.Settings).FogOn},
		{input.KeyP, func(s *renderer.Settings) bool { return s.Lamp.On }},
		{input.KeyM, (*renderer.Settings).DebugDepth},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			w := newWorld()
			in := input.New()

			press(in, tt.key)
			w.Update(frame, in)
			// Still held on the following frames
			for i := 0; i < 5; i++ {
				in.BeginFrame()
				w.Update(frame, in)
			}
			if !tt.on(w.Settings()) {
				t.Fatal("holding the key should toggle exactly once")
			}

			release(in, tt.key)
			w.Update(frame, in)
			press(in, tt.key)
			w.Update(frame, in)
			if tt.on(w.Settings()) {
				t.Error("second press should toggle back off")
			}
		})
	}
}

func TestFogDensityRestoredAfterTwoToggles(t *testing.T) {
	w := newWorld()
	in := input.New()
	before := w.Settings().FogDensity()

	press(in, input.KeyF)
	w.Update(frame, in)
	if got := w.Settings().FogDensity(); got != 0.2 {
		t.Errorf("fog density = %v, want 0.2", got)
	}

	release(in, input.KeyF)
	w.Update(frame, in)
	press(in, input.KeyF)
	w.Update(frame, in)
	if got := w.Settings().FogDensity(); got != before {
		t.Errorf("fog density = %v, want %v", got, before)
	}
}

func TestPolygonModeKeys(t *testing.T) {
	w := newWorld()
	in := input.New()

	for _, p := range []struct {
		key  input.Key
		want renderer.PolygonMode
	}{
		{input.KeyT, renderer.PolygonLine},
		{input.KeyY, renderer.PolygonPoint},
		{input.KeyR, renderer.PolygonFill},
	} {
		press(in, p.key)
		w.Update(frame, in)
		release(in, p.key)
		if got := w.Settings().PolygonMode(); got != p.want {
			t.Errorf("after %v: mode = %v, want %v", p.key, got, p.want)
		}
	}
}

func TestRootAngleKeys(t *testing.T) {
	w := newWorld()
	in := input.New()

	press(in, input.KeyE)
	for i := 0; i < 3; i++ {
		w.Update(frame, in)
		in.BeginFrame()
	}
	if got := w.Graph().RootAngle(); got != 3 {
		t.Errorf("root angle = %v, want 3", got)
	}

	release(in, input.KeyE)
	press(in, input.KeyQ)
	w.Update(frame, in)
	if got := w.Graph().RootAngle(); got != 2 {
		t.Errorf("root angle = %v, want 2", got)
	}
}

func TestAnimationsAdvanceOncePerFrame(t *testing.T) {
	w := newWorld()
	in := input.New()

	in.BeginFrame()
	w.Update(0.5, in)

	tractor := w.Animation(config.ModelTractor)
	if tractor.Phase() != animation.Forward {
		t.Fatalf("tractor phase = %v, want forward", tractor.Phase())
	}
	want := animation.TractorProfile().Speed * 0.5
	if !mgl32.FloatEqual(tractor.Progress(), want) {
		t.Errorf("tractor progress = %v, want %v", tractor.Progress(), want)
	}

	// Gated animations wait for power
	for _, name := range []string{config.ModelRoadTractor, config.ModelBoat} {
		if a := w.Animation(name); a.Phase() != animation.Idle || a.Progress() != 0 {
			t.Errorf("%s moved without power: %v %v", name, a.Phase(), a.Progress())
		}
	}
}

func TestPowerKeys(t *testing.T) {
	tests := []struct {
		key   input.Key
		model string
		other string
	}{
		{input.KeyC, config.ModelRoadTractor, config.ModelBoat},
		{input.KeyX, config.ModelBoat, config.ModelRoadTractor},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			w := newWorld()
			in := input.New()

			press(in, tt.key)
			w.Update(frame, in)
			release(in, tt.key)
			w.Update(frame, in)

			a := w.Animation(tt.model)
			if !a.Powered() || a.Phase() != animation.Forward {
				t.Errorf("%s: powered %v phase %v", tt.model, a.Powered(), a.Phase())
			}
			if w.Animation(tt.other).Powered() {
				t.Errorf("%s should stay unpowered", tt.other)
			}
		})
	}
}

func TestTourTakesOverCamera(t *testing.T) {
	w := newWorld()
	in := input.New()
	start := w.Camera().Position()
	yaw := w.Camera().Yaw()

	press(in, input.KeyZ)
	w.Update(frame, in)
	if w.Tour().State() != cinematic.Running {
		t.Fatalf("tour state = %v, want running", w.Tour().State())
	}
	// First go_z frame moves by (0,0,0)
	if w.Camera().Position() != start {
		t.Errorf("first tour frame moved the camera to %v", w.Camera().Position())
	}

	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaX: 100})
	w.Update(frame, in)

	if w.Camera().Yaw() != yaw {
		t.Errorf("mouse turned the camera during the tour: yaw %v", w.Camera().Yaw())
	}
	if w.Camera().Position().Z() <= start.Z() {
		t.Error("tour should move the camera along +Z")
	}
}

func TestTourRunsToCompletion(t *testing.T) {
	w := newWorld()
	in := input.New()

	press(in, input.KeyZ)
	w.Update(frame, in)
	for i := 0; i < 10000 && w.Tour().State() == cinematic.Running; i++ {
		w.Update(frame, in)
	}
	if w.Tour().State() != cinematic.Complete {
		t.Fatalf("tour state = %v, want complete", w.Tour().State())
	}

	// Mouse look resumes from the tour's last yaw
	yaw := w.Camera().Yaw()
	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaX: 10})
	w.Update(frame, in)
	if got := w.Camera().Yaw(); !mgl32.FloatEqualThreshold(got, yaw+1, 1e-4) {
		t.Errorf("yaw = %v, want %v", got, yaw+1)
	}

	release(in, input.KeyZ)
	w.Update(frame, in)
	press(in, input.KeyZ)
	w.Update(frame, in)
	if w.Tour().State() != cinematic.Complete {
		t.Error("a completed tour must not restart")
	}
}
