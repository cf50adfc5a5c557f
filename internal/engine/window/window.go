// Package window handles the SDL2 window, its OpenGL context and input events.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/farmstead/internal/engine/input"
	"github.com/Faultbox/farmstead/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// New creates a window with an OpenGL 4.1 core context and captures the
// mouse in relative mode.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	// Camera look: the cursor is hidden and reports relative motion
	if sdl.SetRelativeMouseMode(true) != 0 {
		w.log.Warn("relative mouse mode unavailable", zap.Error(sdl.GetError()))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the context and the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int32, int32) {
	return w.sdlWindow.GLGetDrawableSize()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// PumpEvents starts a new input frame and feeds every pending SDL event into state.
func (w *Window) PumpEvents(state *input.State) {
	state.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			state.Apply(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				state.Apply(input.Event{
					Type:   input.EventWindowResize,
					Width:  int(width),
					Height: int(height),
				})
			}

		case *sdl.KeyboardEvent:
			key := keyFromScancode(e.Keysym.Scancode)
			if key == input.KeyNone {
				continue
			}
			typ := input.EventKeyUp
			if e.Type == sdl.KEYDOWN {
				typ = input.EventKeyDown
			}
			state.Apply(input.Event{Type: typ, Key: key, Repeat: e.Repeat != 0})

		case *sdl.MouseMotionEvent:
			state.Apply(input.Event{
				Type:   input.EventMouseMove,
				DeltaX: float32(e.XRel),
				DeltaY: float32(e.YRel),
			})
		}
	}
}

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_R:      input.KeyR,
	sdl.SCANCODE_T:      input.KeyT,
	sdl.SCANCODE_Y:      input.KeyY,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_M:      input.KeyM,
	sdl.SCANCODE_Z:      input.KeyZ,
	sdl.SCANCODE_C:      input.KeyC,
	sdl.SCANCODE_X:      input.KeyX,
	sdl.SCANCODE_F12:    input.KeyF12,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
}

func keyFromScancode(sc sdl.Scancode) input.Key {
	return scancodes[sc]
}
