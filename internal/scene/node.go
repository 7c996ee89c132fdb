package scene

import (
	"showroom/internal/material"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a node's local TRS transform.
type Transform struct {
	Translation rl.Vector3
	Rotation    rl.Quaternion
	Scale       rl.Vector3
}

// Identity returns a transform with unit scale and no rotation or offset.
func Identity() Transform {
	return Transform{
		Translation: rl.Vector3{},
		Rotation:    rl.QuaternionIdentity(),
		Scale:       rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix combines scale -> rotate -> translate.
func (t Transform) Matrix() rl.Matrix {
	scaleMatrix := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rotMatrix := rl.QuaternionToMatrix(t.Rotation)
	transMatrix := rl.MatrixTranslate(t.Translation.X, t.Translation.Y, t.Translation.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}

// Primitive is one drawable part of a mesh with its own material slot.
// Positions and Normals are flat xyz triples.
type Primitive struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
	Material  material.Spec
}

// VertexCount is the number of xyz triples in Positions.
func (p *Primitive) VertexCount() int {
	return len(p.Positions) / 3
}

type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Node is one element of the asset tree.
type Node struct {
	Name      string
	Transform Transform
	Mesh      *Mesh
	Children  []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: Identity(),
		Children:  make([]*Node, 0),
	}
}

// IsMesh reports whether the node carries geometry and can hold a material.
func (n *Node) IsMesh() bool {
	return n.Mesh != nil
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// SetMaterial assigns spec to every primitive of the node's mesh.
// It reports false for nodes without a mesh.
func (n *Node) SetMaterial(spec material.Spec) bool {
	if n.Mesh == nil {
		return false
	}
	for i := range n.Mesh.Primitives {
		n.Mesh.Primitives[i].Material = spec
	}
	return true
}
