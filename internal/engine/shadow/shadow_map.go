// Package shadow provides the depth render target of the shadow pass.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Map is a depth-only framebuffer sampled by the lit pass as a plain
// sampler2D and shown by the depth debug view.
type Map struct {
	fbo          uint32
	depthTexture uint32
	resolution   int32
	prevViewport [4]int32
}

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// NewMap creates a square shadow map. A non-positive resolution selects
// DefaultResolution.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{resolution: resolution}

	gl.GenFramebuffers(1, &sm.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)

	gl.GenTextures(1, &sm.depthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.depthTexture)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT,
		resolution,
		resolution,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	// Depth is read back as a value, so no comparison mode
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Outside the light frustum counts as lit
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.depthTexture, 0)

	// No color buffer for the shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return sm, nil
}

// Bind redirects drawing to the shadow map, sets its viewport and clears depth.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)
	gl.Viewport(0, 0, sm.resolution, sm.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// Unbind restores the default framebuffer and the previous viewport.
func (sm *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
}

// Texture returns the depth texture.
func (sm *Map) Texture() uint32 { return sm.depthTexture }

// Resolution returns the width and height of the map.
func (sm *Map) Resolution() int32 { return sm.resolution }

// Destroy releases the framebuffer and its texture.
func (sm *Map) Destroy() {
	if sm.fbo != 0 {
		gl.DeleteFramebuffers(1, &sm.fbo)
		sm.fbo = 0
	}
	if sm.depthTexture != 0 {
		gl.DeleteTextures(1, &sm.depthTexture)
		sm.depthTexture = 0
	}
}
