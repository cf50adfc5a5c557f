// Package renderer runs the two render passes of a frame: the shadow depth
// pass from the sun and the lit color pass from the camera.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/farmstead/internal/engine/lighting"
	"github.com/Faultbox/farmstead/internal/engine/scene"
)

// Texture units used by the passes.
const (
	depthViewUnit = 0
	shadowMapUnit = 3
)

// Device is the GPU state the passes change.
type Device interface {
	Viewport(x, y, width, height int32)
	Clear(color, depth bool)
	SetDepthTest(on bool)
	SetPolygonMode(m PolygonMode)
	BindTexture2D(unit int32, texture uint32)

	// CheckError drains and logs pending GPU errors raised since the last check.
	CheckError(site string)
}

// DepthTarget is the offscreen depth buffer the shadow pass renders into.
type DepthTarget interface {
	// Bind redirects drawing to the target, sets its viewport and clears depth.
	Bind()
	// Unbind restores the default framebuffer.
	Unbind()
	Texture() uint32
}

// Quad is a full-screen quad.
type Quad interface {
	Draw()
}

// Sky draws the background cube. It expects a view matrix without translation.
type Sky interface {
	Draw(p scene.Program, view, projection mgl32.Mat4)
}

// Programs are the shader programs of the passes.
type Programs struct {
	Lit   scene.Program
	Depth scene.Program
	Quad  scene.Program
	Sky   scene.Program
}

// Projection holds the camera projection parameters.
type Projection struct {
	FOV    float32 // Vertical field of view, degrees
	Near   float32
	Far    float32
	SkyFar float32 // Far plane of the skybox projection
}

// Config configures a Pipeline.
type Config struct {
	Width      int32
	Height     int32
	Projection Projection
	Sun        lighting.Directional
	Shadow     lighting.Frustum
}

// Pipeline renders a scene graph with shadows, fog, a point light and a skybox.
type Pipeline struct {
	device   Device
	target   DepthTarget
	programs Programs
	quad     Quad
	sky      Sky
	graph    *scene.Graph
	settings *Settings

	sun    lighting.Directional
	shadow lighting.Frustum
	proj   Projection

	width  int32
	height int32

	projection    mgl32.Mat4
	skyProjection mgl32.Mat4
}

// New creates a pipeline. sky may be nil.
func New(cfg Config, device Device, target DepthTarget, programs Programs, quad Quad, sky Sky, graph *scene.Graph, settings *Settings) *Pipeline {
	p := &Pipeline{
		device:   device,
		target:   target,
		programs: programs,
		quad:     quad,
		sky:      sky,
		graph:    graph,
		settings: settings,
		sun:      cfg.Sun,
		shadow:   cfg.Shadow,
		proj:     cfg.Projection,
	}
	p.Resize(cfg.Width, cfg.Height)
	return p
}

// Resize updates the viewport size and the projection aspect ratio.
// Non-positive sizes, as reported while minimized, are ignored.
func (p *Pipeline) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height

	aspect := float32(width) / float32(height)
	fov := mgl32.DegToRad(p.proj.FOV)
	p.projection = mgl32.Perspective(fov, aspect, p.proj.Near, p.proj.Far)
	p.skyProjection = mgl32.Perspective(fov, aspect, p.proj.Near, p.proj.SkyFar)
}

// Size returns the viewport size.
func (p *Pipeline) Size() (width, height int32) { return p.width, p.height }

// ProjectionMatrix returns the camera projection.
func (p *Pipeline) ProjectionMatrix() mgl32.Mat4 { return p.projection }

// Render draws one frame with the given camera view matrix.
func (p *Pipeline) Render(view mgl32.Mat4) {
	lightSpace := p.ShadowPass()
	p.ColorPass(view, lightSpace)
}

// ShadowPass renders scene depth from the sun into the depth target and
// returns the light-space matrix it used.
func (p *Pipeline) ShadowPass() mgl32.Mat4 {
	lightSpace := p.sun.LightSpaceMatrix(p.shadow)

	depth := p.programs.Depth
	depth.Use()
	depth.SetMat4("lightSpaceTrMatrix", lightSpace)

	// Depth is always rasterized filled; the lit pass sets its own mode
	p.device.SetPolygonMode(PolygonFill)
	p.target.Bind()
	p.graph.Draw(depth, mgl32.Ident4(), mgl32.Ident4(), true)
	p.target.Unbind()

	p.device.Viewport(0, 0, p.width, p.height)
	p.device.CheckError("shadow pass")
	return lightSpace
}

// ColorPass renders the lit scene and the skybox to the window, or the
// depth map on a full-screen quad when the debug view is on.
func (p *Pipeline) ColorPass(view, lightSpace mgl32.Mat4) {
	p.device.Viewport(0, 0, p.width, p.height)

	if p.settings.DebugDepth() {
		p.drawDepthView()
		p.device.CheckError("depth view")
		return
	}

	p.device.Clear(true, true)
	p.device.SetPolygonMode(p.settings.PolygonMode())

	lit := p.programs.Lit
	lit.Use()
	lit.SetMat4("view", view)
	lit.SetMat4("projection", p.projection)
	lit.SetVec3("lightDir", p.sun.Direction)
	lit.SetVec3("lightColor", p.sun.Color)
	lit.SetVec3("fogDensity", mgl32.Vec3{p.settings.FogDensity(), 0, 0})
	// The lamp turns with the scene it stands in
	lamp := p.graph.Root().Mul4x1(p.settings.Lamp.Position.Vec4(1)).Vec3()
	lit.SetVec3("lightPosition", lamp)
	lit.SetVec3("lightPosOn", p.settings.Lamp.Flag())

	p.device.BindTexture2D(shadowMapUnit, p.target.Texture())
	lit.SetInt("shadowMap", shadowMapUnit)
	lit.SetMat4("lightSpaceTrMatrix", lightSpace)

	p.graph.Draw(lit, view, p.projection, false)

	if p.sky != nil {
		// The sky follows the camera: rotation only
		p.sky.Draw(p.programs.Sky, view.Mat3().Mat4(), p.skyProjection)
	}
	p.device.CheckError("color pass")
}

func (p *Pipeline) drawDepthView() {
	p.device.Clear(true, false)

	q := p.programs.Quad
	q.Use()
	p.device.BindTexture2D(depthViewUnit, p.target.Texture())
	q.SetInt("depthMap", depthViewUnit)

	p.device.SetDepthTest(false)
	p.device.SetPolygonMode(PolygonFill)
	p.quad.Draw()
	p.device.SetDepthTest(true)
}
