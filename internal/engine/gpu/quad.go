package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// screenQuadVertices is a full-screen triangle strip: position(2) uv(2).
var screenQuadVertices = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, 1, 1, 1,
	1, -1, 1, 0,
}

// ScreenQuad is a quad covering the whole viewport.
type ScreenQuad struct {
	vao uint32
	vbo uint32
}

// NewScreenQuad uploads the quad geometry.
func NewScreenQuad() *ScreenQuad {
	q := &ScreenQuad{}

	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(screenQuadVertices)*4, unsafe.Pointer(&screenQuadVertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	// TexCoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return q
}

// Draw draws the quad with the current program.
func (q *ScreenQuad) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Destroy releases the quad geometry.
func (q *ScreenQuad) Destroy() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
}
