// Package shader compiles GLSL programs and writes their uniforms.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/farmstead/internal/engine/shader/shaders"
	"github.com/Faultbox/farmstead/internal/logger"
)

// Program is a linked shader program with a uniform location cache.
type Program struct {
	name      string
	id        uint32
	locations map[string]int32
	log       *zap.Logger
}

// Load compiles the embedded program with the given name, reading
// <name>.vert and <name>.frag.
func Load(name string) (*Program, error) {
	vert, frag, err := shaders.Source(name)
	if err != nil {
		return nil, err
	}
	return New(name, vert, frag)
}

// New compiles and links a program from GLSL sources.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}

	log := logger.Named("shader")
	log.Debug("program linked", zap.String("name", name), zap.Uint32("id", id))

	return &Program{
		name:      name,
		id:        id,
		locations: make(map[string]int32),
		log:       log,
	}, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// ID returns the GL program handle.
func (p *Program) ID() uint32 { return p.id }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// location returns the cached uniform location. Unknown names are looked up
// once; a missing uniform is logged at debug level and cached as -1, which
// GL ignores on write.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("uniform not found",
			zap.String("program", p.name),
			zap.String("uniform", name),
		)
	}
	p.locations[name] = loc
	return loc
}

// SetMat4 writes a 4x4 matrix uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetMat3 writes a 3x3 matrix uniform.
func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

// SetVec3 writes a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetInt writes an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat writes a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
