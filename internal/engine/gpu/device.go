// Package gpu owns the OpenGL context state: initialization, the fixed
// pipeline switches the renderer flips and error reporting.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/farmstead/internal/engine/renderer"
	"github.com/Faultbox/farmstead/internal/logger"
)

// Options are the startup GL settings.
type Options struct {
	ClearColor [4]float32
}

// Device implements renderer.Device on the current GL context.
type Device struct {
	log *zap.Logger
}

// Init loads the GL function pointers and sets the default state. It must
// run after the window made its context current.
func Init(opts Options) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{log: logger.Named("gpu")}
	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	c := opts.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	d.CheckError("init")
	return d, nil
}

// Viewport sets the drawing rectangle.
func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// Clear clears the selected buffers of the current framebuffer.
func (d *Device) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// SetDepthTest switches depth testing.
func (d *Device) SetDepthTest(on bool) {
	if on {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// SetPolygonMode sets the rasterization mode for both faces.
func (d *Device) SetPolygonMode(m renderer.PolygonMode) {
	gl.PolygonMode(gl.FRONT_AND_BACK, glPolygonMode(m))
}

func glPolygonMode(m renderer.PolygonMode) uint32 {
	switch m {
	case renderer.PolygonLine:
		return gl.LINE
	case renderer.PolygonPoint:
		return gl.POINT
	default:
		return gl.FILL
	}
}

// BindTexture2D binds a 2D texture to a texture unit.
func (d *Device) BindTexture2D(unit int32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// ReadPixels reads the RGBA pixels of the default framebuffer, bottom row
// first.
func (d *Device) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// CheckError drains the GL error queue and logs each error with its site.
func (d *Device) CheckError(site string) {
	for i := 0; i < maxErrorsPerCheck; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		d.log.Warn("GL error",
			zap.String("error", ErrorName(code)),
			zap.Uint32("code", code),
			zap.String("site", site),
		)
	}
}

// A lost context can report errors forever
const maxErrorsPerCheck = 16

// ErrorName returns the symbolic name of a GL error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case gl.STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	default:
		return fmt.Sprintf("GL_ERROR_0x%04x", code)
	}
}
