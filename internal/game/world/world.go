// Package world holds the simulated state of the farm scene: the camera,
// the scene graph with its animations, the render toggles and the tour.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/farmstead/internal/config"
	"github.com/Faultbox/farmstead/internal/engine/animation"
	"github.com/Faultbox/farmstead/internal/engine/camera"
	"github.com/Faultbox/farmstead/internal/engine/cinematic"
	"github.com/Faultbox/farmstead/internal/engine/input"
	"github.com/Faultbox/farmstead/internal/engine/renderer"
	"github.com/Faultbox/farmstead/internal/engine/scene"
)

// RotateStep is the root angle change per frame while Q or E is held, degrees.
const RotateStep = 1.0

// Input is the per-frame keyboard and mouse state the world reacts to.
type Input interface {
	Held(k input.Key) bool
	Pressed(k input.Key) bool
	MouseDelta() (dx, dy float32)
}

var polygonKeys = []struct {
	key  input.Key
	mode renderer.PolygonMode
}{
	{input.KeyR, renderer.PolygonFill},
	{input.KeyT, renderer.PolygonLine},
	{input.KeyY, renderer.PolygonPoint},
}

var moveKeys = []struct {
	key input.Key
	dir camera.Direction
}{
	{input.KeyW, camera.Forward},
	{input.KeyS, camera.Backward},
	{input.KeyA, camera.Left},
	{input.KeyD, camera.Right},
}

// World is the scene state advanced once per frame.
type World struct {
	camera   *camera.Camera
	graph    *scene.Graph
	settings *renderer.Settings
	tour     *cinematic.Controller

	animations map[string]*animation.State

	speed       float32
	sensitivity float32

	// Mouse look accumulators, degrees
	yaw   float32
	pitch float32
}

// New creates the world described by cfg with an empty scene graph.
func New(cfg *config.Config) *World {
	cam := camera.New(
		mgl32.Vec3(cfg.Camera.Position),
		mgl32.Vec3(cfg.Camera.Target),
		mgl32.Vec3{0, 1, 0},
	)

	return &World{
		camera:   cam,
		graph:    scene.NewGraph(),
		settings: renderer.NewSettings(cfg.Fog.Density, mgl32.Vec3(cfg.Light.PointPosition)),
		tour:     cinematic.NewController(cinematic.Tour()),
		animations: map[string]*animation.State{
			config.ModelTractor:     animation.New(animation.TractorProfile()),
			config.ModelRoadTractor: animation.New(animation.RoadTractorProfile()),
			config.ModelBoat:        animation.New(animation.BoatProfile()),
		},
		speed:       cfg.Camera.Speed,
		sensitivity: cfg.Camera.Sensitivity,
		yaw:         cam.Yaw(),
		pitch:       cam.Pitch(),
	}
}

// AddObject appends a scene object. Objects named after an animated model
// get that model's animation.
func (w *World) AddObject(name string, geometry scene.Drawable) {
	obj := scene.Object{Name: name, Geometry: geometry}
	if a, ok := w.animations[name]; ok {
		obj.Animator = a
	}
	w.graph.Add(obj)
}

// Update applies one frame of input and advances every animation by elapsed
// seconds.
func (w *World) Update(elapsed float64, in Input) {
	w.look(in)

	for _, m := range moveKeys {
		if in.Held(m.key) {
			w.camera.Move(m.dir, w.speed)
		}
	}

	if in.Held(input.KeyQ) {
		w.graph.SetRootAngle(w.graph.RootAngle() - RotateStep)
	}
	if in.Held(input.KeyE) {
		w.graph.SetRootAngle(w.graph.RootAngle() + RotateStep)
	}

	for _, p := range polygonKeys {
		if in.Pressed(p.key) {
			w.settings.SetPolygonMode(p.mode)
		}
	}

	if in.Pressed(input.KeyF) {
		w.settings.ToggleFog()
	}
	if in.Pressed(input.KeyP) {
		w.settings.TogglePointLight()
	}
	if in.Pressed(input.KeyM) {
		w.settings.ToggleDebugDepth()
	}

	// One-shot switches: nothing turns them back off
	if in.Pressed(input.KeyC) {
		w.animations[config.ModelRoadTractor].SetPowered(true)
	}
	if in.Pressed(input.KeyX) {
		w.animations[config.ModelBoat].SetPowered(true)
	}
	if in.Pressed(input.KeyZ) {
		w.tour.Trigger()
	}

	if w.tour.State() == cinematic.Running {
		w.tour.Step(w.camera)
		w.yaw, w.pitch = w.camera.Yaw(), w.camera.Pitch()
	}

	w.graph.Advance(elapsed)
}

// look turns the camera by the mouse motion of the frame. The tour owns the
// camera orientation while it runs.
func (w *World) look(in Input) {
	dx, dy := in.MouseDelta()
	if dx == 0 && dy == 0 {
		return
	}
	if w.tour.State() == cinematic.Running {
		return
	}

	w.yaw += dx * w.sensitivity
	// Screen y grows downwards
	w.pitch = mgl32.Clamp(w.pitch-dy*w.sensitivity, -camera.MaxPitch, camera.MaxPitch)
	w.camera.Rotate(w.pitch, w.yaw)
}

// Camera returns the free-fly camera.
func (w *World) Camera() *camera.Camera { return w.camera }

// Graph returns the scene graph.
func (w *World) Graph() *scene.Graph { return w.graph }

// Settings returns the render toggles.
func (w *World) Settings() *renderer.Settings { return w.settings }

// Tour returns the cinematic controller.
func (w *World) Tour() *cinematic.Controller { return w.tour }

// Animation returns the animation of a model, or nil when it has none.
func (w *World) Animation(name string) *animation.State { return w.animations[name] }
