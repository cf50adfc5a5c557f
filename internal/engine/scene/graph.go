// Package scene holds the fixed set of scene objects and draws them with
// per-draw transforms.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Program is the part of a shader program the scene writes to.
type Program interface {
	Use()
	SetMat4(name string, m mgl32.Mat4)
	SetMat3(name string, m mgl32.Mat3)
	SetVec3(name string, v mgl32.Vec3)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
}

// Drawable is loaded geometry that can issue its own draw calls.
type Drawable interface {
	Draw(p Program)
}

// Animator supplies an object's model transform.
type Animator interface {
	Transform() mgl32.Mat4
}

// Advancer is an Animator that moves with time.
type Advancer interface {
	Advance(elapsed float64)
}

// Object is one named scene entry. A nil Animator means identity.
type Object struct {
	Name     string
	Geometry Drawable
	Animator Animator
}

// Model returns the object's own transform.
func (o Object) Model() mgl32.Mat4 {
	if o.Animator == nil {
		return mgl32.Ident4()
	}
	return o.Animator.Transform()
}

// FrameTransforms is the set of matrices sent for one draw.
type FrameTransforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Normal     mgl32.Mat3
}

// NewFrameTransforms derives the normal matrix from model and view, for
// lighting in view space.
func NewFrameTransforms(model, view, projection mgl32.Mat4) FrameTransforms {
	return FrameTransforms{
		Model:      model,
		View:       view,
		Projection: projection,
		Normal:     view.Mul4(model).Inv().Transpose().Mat3(),
	}
}

// Graph is the ordered list of scene objects.
type Graph struct {
	objects []Object
	root    mgl32.Mat4
	angle   float32
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{root: mgl32.Ident4()}
}

// Add appends an object. Objects draw in insertion order.
func (g *Graph) Add(o Object) {
	g.objects = append(g.objects, o)
}

// Objects returns a copy of the objects in draw order.
func (g *Graph) Objects() []Object {
	return append([]Object(nil), g.objects...)
}

// Len returns the number of objects.
func (g *Graph) Len() int { return len(g.objects) }

// SetRootAngle sets the world yaw, in degrees, applied before every object transform.
func (g *Graph) SetRootAngle(deg float32) {
	g.angle = deg
	g.root = mgl32.HomogRotate3DY(mgl32.DegToRad(deg))
}

// Root returns the world rotation applied before every object transform.
func (g *Graph) Root() mgl32.Mat4 { return g.root }

// RootAngle returns the world yaw in degrees.
func (g *Graph) RootAngle() float32 { return g.angle }

// Advance moves every time-driven object by elapsed seconds, once each.
func (g *Graph) Advance(elapsed float64) {
	for _, o := range g.objects {
		if a, ok := o.Animator.(Advancer); ok {
			a.Advance(elapsed)
		}
	}
}

// Draw renders every object with p. The depth pass only needs the model
// matrix; the color pass also gets the normal matrix.
func (g *Graph) Draw(p Program, view, projection mgl32.Mat4, depthPass bool) {
	p.Use()
	for _, o := range g.objects {
		if o.Geometry == nil {
			continue
		}
		ft := NewFrameTransforms(g.root.Mul4(o.Model()), view, projection)
		p.SetMat4("model", ft.Model)
		if !depthPass {
			p.SetMat3("normalMatrix", ft.Normal)
		}
		o.Geometry.Draw(p)
	}
}
