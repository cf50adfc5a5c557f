// Package mesh loads glTF models and draws them.
package mesh

import (
	"errors"
	"fmt"
	"image"
	"net/url"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/farmstead/internal/engine/texture"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

// Primitive is one triangle list in model space, ready for upload.
type Primitive struct {
	Vertices []float32
	Indices  []uint32
	Material int // Index into Data.Materials, -1 for none
}

// Material is the base color of a primitive.
type Material struct {
	Name      string
	BaseColor [4]float32
	Image     *image.RGBA // nil when the material has no base color texture
}

// Data is a decoded model.
type Data struct {
	Primitives []Primitive
	Materials  []Material
}

// Decode flattens the default scene of doc into triangle lists, baking node
// transforms into positions and normals. External images are resolved
// relative to dir.
func Decode(doc *gltf.Document, dir string) (*Data, error) {
	d := &Data{}

	images := make(map[int]*image.RGBA)
	for i, m := range doc.Materials {
		mat, err := decodeMaterial(doc, m, dir, images)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		d.Materials = append(d.Materials, mat)
	}

	var visit func(node int, parent mgl32.Mat4) error
	visit = func(node int, parent mgl32.Mat4) error {
		if node < 0 || node >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", node)
		}
		n := doc.Nodes[node]
		world := parent.Mul4(localMatrix(n))

		if n.Mesh != nil {
			if err := d.addMesh(doc, *n.Mesh, world); err != nil {
				return fmt.Errorf("node %d: %w", node, err)
			}
		}
		for _, c := range n.Children {
			if err := visit(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		// No scene graph: take every mesh as-is
		for i := range doc.Meshes {
			if err := d.addMesh(doc, i, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range roots {
		if err := visit(r, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}

	if len(d.Primitives) == 0 {
		return nil, errors.New("no triangle meshes found")
	}
	return d, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	s := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		s = *doc.Scene
	}
	return doc.Scenes[s].Nodes
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != mgl32.Ident4() {
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}

	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (d *Data) addMesh(doc *gltf.Document, index int, world mgl32.Mat4) error {
	if index < 0 || index >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", index)
	}
	normalMatrix := world.Mat3().Inv().Transpose()

	for i, prim := range doc.Meshes[index].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		p, err := decodePrimitive(doc, prim, world, normalMatrix)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", index, i, err)
		}
		d.Primitives = append(d.Primitives, p)
	}
	return nil
}

func decodePrimitive(doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4, normalMatrix mgl32.Mat3) (Primitive, error) {
	p := Primitive{Material: -1}
	if prim.Material != nil {
		p.Material = *prim.Material
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return p, errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return p, fmt.Errorf("read positions: %w", err)
	}
	if len(positions) == 0 {
		return p, errors.New("empty primitive")
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return p, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return p, fmt.Errorf("read texture coordinates: %w", err)
		}
	}

	p.Vertices = make([]float32, 0, len(positions)*FloatsPerVertex)
	for i, pos := range positions {
		v := world.Mul4x1(mgl32.Vec4{pos[0], pos[1], pos[2], 1})

		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = normalMatrix.Mul3x1(mgl32.Vec3(normals[i]))
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}

		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}

		p.Vertices = append(p.Vertices, v[0], v[1], v[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	if prim.Indices != nil {
		if p.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return p, fmt.Errorf("read indices: %w", err)
		}
	} else {
		p.Indices = make([]uint32, len(positions))
		for i := range p.Indices {
			p.Indices[i] = uint32(i)
		}
	}

	if len(p.Indices) == 0 {
		return p, errors.New("primitive has no indices")
	}
	for _, idx := range p.Indices {
		if int(idx) >= len(positions) {
			return p, fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
		}
	}
	return p, nil
}

func decodeMaterial(doc *gltf.Document, m *gltf.Material, dir string, images map[int]*image.RGBA) (Material, error) {
	mat := Material{Name: m.Name, BaseColor: [4]float32{1, 1, 1, 1}}

	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return mat, nil
	}
	for i, v := range pbr.BaseColorFactorOrDefault() {
		mat.BaseColor[i] = float32(v)
	}
	if pbr.BaseColorTexture == nil {
		return mat, nil
	}

	texIdx := pbr.BaseColorTexture.Index
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return mat, nil
	}
	src := *doc.Textures[texIdx].Source

	if img, ok := images[src]; ok {
		mat.Image = img
		return mat, nil
	}
	img, err := decodeImage(doc, src, dir)
	if err != nil {
		return mat, err
	}
	images[src] = img
	mat.Image = img
	return mat, nil
}

func decodeImage(doc *gltf.Document, index int, dir string) (*image.RGBA, error) {
	if index < 0 || index >= len(doc.Images) {
		return nil, fmt.Errorf("image %d out of range", index)
	}
	img := doc.Images[index]

	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", index, err)
		}
		return texture.Decode(img.Name, data)

	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", index, err)
		}
		return texture.Decode(img.Name, data)

	case img.URI != "":
		name, err := url.PathUnescape(img.URI)
		if err != nil {
			name = img.URI
		}
		return texture.Load(filepath.Join(dir, filepath.FromSlash(name)))
	}
	return nil, fmt.Errorf("image %d has no data", index)
}
