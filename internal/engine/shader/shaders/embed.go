// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	_ "embed"
	"fmt"
)

// BasicVertexShader is the vertex shader of the lit scene pass.
//
//go:embed basic.vert
var BasicVertexShader string

// BasicFragmentShader shades the scene with the sun, the street lamp,
// shadows and fog.
//
//go:embed basic.frag
var BasicFragmentShader string

// DepthVertexShader transforms geometry into light space for the shadow map.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes depth only.
//
//go:embed depth.frag
var DepthFragmentShader string

// QuadVertexShader is the vertex shader of the depth map debug view.
//
//go:embed quad.vert
var QuadVertexShader string

// QuadFragmentShader shows the shadow map as grayscale.
//
//go:embed quad.frag
var QuadFragmentShader string

// SkyboxVertexShader is the vertex shader for the sky cube.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader samples the sky cube map.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

// Program names.
const (
	Basic  = "basic"
	Depth  = "depth"
	Quad   = "quad"
	Skybox = "skybox"
)

// Source returns the vertex and fragment sources of a named program.
func Source(name string) (vertex, fragment string, err error) {
	switch name {
	case Basic:
		return BasicVertexShader, BasicFragmentShader, nil
	case Depth:
		return DepthVertexShader, DepthFragmentShader, nil
	case Quad:
		return QuadVertexShader, QuadFragmentShader, nil
	case Skybox:
		return SkyboxVertexShader, SkyboxFragmentShader, nil
	default:
		return "", "", fmt.Errorf("unknown shader program %q", name)
	}
}
