// Package game implements the main loop: it creates the GPU resources of the
// farm scene, feeds input into the world and renders every frame.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/farmstead/internal/config"
	"github.com/Faultbox/farmstead/internal/engine/gpu"
	"github.com/Faultbox/farmstead/internal/engine/input"
	"github.com/Faultbox/farmstead/internal/engine/lighting"
	"github.com/Faultbox/farmstead/internal/engine/mesh"
	"github.com/Faultbox/farmstead/internal/engine/renderer"
	"github.com/Faultbox/farmstead/internal/engine/screenshot"
	"github.com/Faultbox/farmstead/internal/engine/shader"
	"github.com/Faultbox/farmstead/internal/engine/shader/shaders"
	"github.com/Faultbox/farmstead/internal/engine/shadow"
	"github.com/Faultbox/farmstead/internal/engine/skybox"
	"github.com/Faultbox/farmstead/internal/engine/window"
	"github.com/Faultbox/farmstead/internal/game/world"
	"github.com/Faultbox/farmstead/internal/logger"
)

// Title is the window title.
const Title = "Farmstead"

// Game is the running application.
type Game struct {
	config *config.Config
	log    *zap.Logger

	window   *window.Window
	device   *gpu.Device
	programs []*shader.Program
	shadow   *shadow.Map
	sky      *skybox.Skybox
	meshes   []*mesh.Mesh
	quad     *gpu.ScreenQuad

	world    *world.World
	pipeline *renderer.Pipeline
	input    *input.State
	shots    *screenshot.Writer

	closed bool
}

// New opens the window and loads every shader, texture and model of the
// scene. Any failure releases what was already created.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
		input:  input.New(),
		shots:  screenshot.NewWriter(cfg.Graphics.ScreenshotDir, "farmstead"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	if err := g.init(); err != nil {
		g.Close()
		return nil, err
	}

	g.log.Info("initialized", zap.Int("objects", g.world.Graph().Len()))
	return g, nil
}

func (g *Game) init() error {
	cfg := g.config

	var err error
	// Window first: every GL call below needs its context
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	g.device, err = gpu.Init(gpu.Options{ClearColor: cfg.Graphics.ClearColor})
	if err != nil {
		return err
	}

	programs, err := g.loadPrograms()
	if err != nil {
		return err
	}

	g.shadow, err = shadow.NewMap(cfg.Shadow.Resolution)
	if err != nil {
		return fmt.Errorf("failed to create shadow map: %w", err)
	}

	faces := make([]string, len(cfg.Assets.Skybox))
	for i, f := range cfg.Assets.Skybox {
		faces[i] = cfg.AssetPath(f)
	}
	g.sky, err = skybox.Load(faces)
	if err != nil {
		return fmt.Errorf("failed to load skybox: %w", err)
	}

	g.world = world.New(cfg)
	for _, name := range config.SceneModels {
		path := cfg.AssetPath(cfg.Assets.Models[name])
		m, err := mesh.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load model %q: %w", name, err)
		}
		g.meshes = append(g.meshes, m)
		g.world.AddObject(name, m)
		g.log.Debug("model loaded", zap.String("object", name), zap.String("path", path))
	}

	g.quad = gpu.NewScreenQuad()

	width, height := g.window.DrawableSize()
	g.pipeline = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		Projection: renderer.Projection{
			FOV:    cfg.Camera.FOV,
			Near:   cfg.Camera.Near,
			Far:    cfg.Camera.Far,
			SkyFar: cfg.Camera.SkyFar,
		},
		Sun: lighting.Directional{
			Direction: mgl32.Vec3(cfg.Light.Direction),
			Color:     mgl32.Vec3(cfg.Light.Color),
		},
		Shadow: lighting.Frustum{
			Extent: cfg.Shadow.Extent,
			Near:   cfg.Shadow.Near,
			Far:    cfg.Shadow.Far,
		},
	}, g.device, g.shadow, programs, g.quad, g.sky, g.world.Graph(), g.world.Settings())

	g.device.CheckError("setup")
	return nil
}

func (g *Game) loadPrograms() (renderer.Programs, error) {
	names := []string{shaders.Basic, shaders.Depth, shaders.Quad, shaders.Skybox}
	loaded := make(map[string]*shader.Program, len(names))
	for _, name := range names {
		p, err := shader.Load(name)
		if err != nil {
			return renderer.Programs{}, fmt.Errorf("failed to load shader %q: %w", name, err)
		}
		g.programs = append(g.programs, p)
		loaded[name] = p
	}

	return renderer.Programs{
		Lit:   loaded[shaders.Basic],
		Depth: loaded[shaders.Depth],
		Quad:  loaded[shaders.Quad],
		Sky:   loaded[shaders.Skybox],
	}, nil
}

// Run runs the main loop until the window is closed or Escape is pressed.
func (g *Game) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Input
		g.window.PumpEvents(g.input)
		if g.input.QuitRequested() {
			break
		}
		if w, h, ok := g.input.Resized(); ok {
			g.pipeline.Resize(int32(w), int32(h))
		}

		// 2. Update
		g.world.Update(dt, g.input)

		// 3. Render
		g.pipeline.Render(g.world.Camera().ViewMatrix())
		if g.input.Pressed(input.KeyF12) {
			g.saveScreenshot()
		}

		// 4. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			name, progress := g.world.Tour().Current()
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.String("tour", name),
				zap.Float32("tour_progress", progress),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("main loop finished")
	return nil
}

// saveScreenshot writes the frame just rendered. Failures are logged only.
func (g *Game) saveScreenshot() {
	width, height := g.pipeline.Size()
	pixels := g.device.ReadPixels(width, height)
	path, err := g.shots.Save(pixels, int(width), int(height))
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases every GPU resource and then the window. It is safe to call
// more than once and on a partially initialized game.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.log.Info("closing")

	for _, m := range g.meshes {
		m.Destroy()
	}
	g.meshes = nil
	if g.sky != nil {
		g.sky.Destroy()
		g.sky = nil
	}
	if g.quad != nil {
		g.quad.Destroy()
		g.quad = nil
	}
	if g.shadow != nil {
		g.shadow.Destroy()
		g.shadow = nil
	}
	for _, p := range g.programs {
		p.Destroy()
	}
	g.programs = nil

	// The context goes last
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
