package mesh

import (
	"fmt"
	"image"
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/farmstead/internal/engine/scene"
)

// DiffuseUnit is the texture unit of the base color texture.
const DiffuseUnit = 0

type part struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	texture    uint32
}

// Mesh is a model uploaded to the GPU.
type Mesh struct {
	name     string
	parts    []part
	textures []uint32
}

// Load opens a .gltf or .glb file and uploads it.
func Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	data, err := Decode(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Upload(filepath.Base(path), data), nil
}

// Upload creates GPU buffers and textures for decoded model data.
func Upload(name string, data *Data) *Mesh {
	m := &Mesh{name: name}

	// One texture per material; untextured materials get a 1x1 of their color
	materialTex := make([]uint32, len(data.Materials))
	uploaded := make(map[*image.RGBA]uint32)
	for i, mat := range data.Materials {
		img := mat.Image
		if img == nil {
			img = solidImage(mat.BaseColor)
		}
		tex, ok := uploaded[img]
		if !ok {
			tex = uploadTexture(img)
			uploaded[img] = tex
			m.textures = append(m.textures, tex)
		}
		materialTex[i] = tex
	}

	var fallback uint32
	for _, prim := range data.Primitives {
		p := uploadPrimitive(prim)
		switch {
		case prim.Material >= 0 && prim.Material < len(materialTex):
			p.texture = materialTex[prim.Material]
		default:
			if fallback == 0 {
				fallback = uploadTexture(solidImage([4]float32{1, 1, 1, 1}))
				m.textures = append(m.textures, fallback)
			}
			p.texture = fallback
		}
		m.parts = append(m.parts, p)
	}
	return m
}

func uploadPrimitive(prim Primitive) part {
	var p part
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(prim.Vertices)*4, unsafe.Pointer(&prim.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(FloatsPerVertex * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &p.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(prim.Indices)*4, unsafe.Pointer(&prim.Indices[0]), gl.STATIC_DRAW)

	p.indexCount = int32(len(prim.Indices))
	gl.BindVertexArray(0)
	return p
}

func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB_ALPHA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func solidImage(c [4]float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for i, v := range c {
		img.Pix[i] = uint8(clamp01(v)*255 + 0.5)
	}
	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Name returns the file name the mesh was loaded from.
func (m *Mesh) Name() string { return m.name }

// Draw binds each part's base color texture and draws it with p.
func (m *Mesh) Draw(p scene.Program) {
	p.SetInt("diffuseTexture", DiffuseUnit)
	gl.ActiveTexture(gl.TEXTURE0 + DiffuseUnit)
	for _, part := range m.parts {
		gl.BindTexture(gl.TEXTURE_2D, part.texture)
		gl.BindVertexArray(part.vao)
		gl.DrawElements(gl.TRIANGLES, part.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Destroy releases every buffer and texture of the mesh.
func (m *Mesh) Destroy() {
	for i := range m.parts {
		p := &m.parts[i]
		if p.vao != 0 {
			gl.DeleteVertexArrays(1, &p.vao)
		}
		if p.vbo != 0 {
			gl.DeleteBuffers(1, &p.vbo)
		}
		if p.ebo != 0 {
			gl.DeleteBuffers(1, &p.ebo)
		}
	}
	m.parts = nil
	for i := range m.textures {
		gl.DeleteTextures(1, &m.textures[i])
	}
	m.textures = nil
}
