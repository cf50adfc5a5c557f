package skybox

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/farmstead/internal/engine/scene"
	"github.com/Faultbox/farmstead/internal/engine/texture"
)

// Skybox is a cube map and the cube it is drawn on.
type Skybox struct {
	cubemap     uint32
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// Load builds a skybox from six face images in the order right, left, top,
// bottom, back, front.
func Load(faces []string) (*Skybox, error) {
	if len(faces) != FaceCount {
		return nil, fmt.Errorf("skybox needs %d faces, got %d", FaceCount, len(faces))
	}

	s := &Skybox{}
	gl.GenTextures(1, &s.cubemap)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)

	for i, path := range faces {
		img, err := texture.Load(path)
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("skybox face %d: %w", i, err)
		}
		b := img.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.SRGB_ALPHA,
			int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	vertices := cubeVertices()
	s.vertexCount = int32(len(vertices) / 3)

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return s, nil
}

// Draw renders the sky behind everything already drawn. view must have its
// translation removed.
func (s *Skybox) Draw(p scene.Program, view, projection mgl32.Mat4) {
	p.Use()
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)
	p.SetInt("skybox", 0)

	// The sky sits at depth 1.0 and is seen from inside the cube
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, s.vertexCount)
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

// Destroy releases the cube map and its geometry.
func (s *Skybox) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.cubemap != 0 {
		gl.DeleteTextures(1, &s.cubemap)
		s.cubemap = 0
	}
}
