package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/farmstead/internal/engine/lighting"
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Settings holds the render toggles driven by the keyboard.
type Settings struct {
	fogDensity float32
	fogOn      bool

	debugDepth  bool
	polygonMode PolygonMode

	// Lamp is the street lamp point light.
	Lamp lighting.PointLight
}

// NewSettings creates settings with fog, lamp and debug view off.
// fogDensity is the density used while fog is on.
func NewSettings(fogDensity float32, lampPosition mgl32.Vec3) *Settings {
	return &Settings{
		fogDensity: fogDensity,
		Lamp:       lighting.PointLight{Position: lampPosition},
	}
}

// ToggleFog switches fog on or off.
func (s *Settings) ToggleFog() { s.fogOn = !s.fogOn }

// FogOn reports whether fog is on.
func (s *Settings) FogOn() bool { return s.fogOn }

// FogDensity returns the density sent to the shader: the configured density
// while fog is on, zero otherwise.
func (s *Settings) FogDensity() float32 {
	if s.fogOn {
		return s.fogDensity
	}
	return 0
}

// TogglePointLight switches the street lamp.
func (s *Settings) TogglePointLight() { s.Lamp.Toggle() }

// ToggleDebugDepth switches between the lit scene and the depth map view.
func (s *Settings) ToggleDebugDepth() { s.debugDepth = !s.debugDepth }

// DebugDepth reports whether the depth map view is on.
func (s *Settings) DebugDepth() bool { return s.debugDepth }

// SetPolygonMode sets the rasterization mode of the lit pass.
func (s *Settings) SetPolygonMode(m PolygonMode) { s.polygonMode = m }

// PolygonMode returns the rasterization mode of the lit pass.
func (s *Settings) PolygonMode() PolygonMode { return s.polygonMode }
