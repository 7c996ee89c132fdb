// Package instance turns a shared asset graph into a placed, paintable copy.
package instance

import (
	"errors"
	"fmt"

	"showroom/internal/material"
	"showroom/internal/paint"
	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrInstantiation = errors.New("instantiation failed")

// Placement is the uniform scale and position applied to an instance's root.
type Placement struct {
	Scale    float32
	Position rl.Vector3
}

// Instance is an independent copy of an asset graph. Its paintable parts
// hold material slots that belong to this instance alone.
type Instance struct {
	ModelID string

	root      *scene.Node
	paintable []*scene.Node
	nodes     int
	current   *material.Spec
}

// Instantiate deep-copies raw, wraps it in a root carrying place, and
// collects the mesh nodes that rule accepts. raw is not modified.
func Instantiate(modelID string, raw *scene.Graph, rule paint.Rule, place Placement) (*Instance, error) {
	if raw == nil || raw.Root == nil {
		return nil, fmt.Errorf("%w: %s: empty graph", ErrInstantiation, modelID)
	}
	if place.Scale <= 0 {
		return nil, fmt.Errorf("%w: %s: scale %v", ErrInstantiation, modelID, place.Scale)
	}

	clone, err := scene.Clone(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInstantiation, modelID, err)
	}

	root := scene.NewNode(modelID)
	root.Transform.Scale = rl.Vector3{X: place.Scale, Y: place.Scale, Z: place.Scale}
	root.Transform.Translation = place.Position
	root.AddChild(clone.Root)

	inst := &Instance{ModelID: modelID, root: root}
	scene.Walk(root, func(n *scene.Node) bool {
		inst.nodes++
		if n.IsMesh() && paint.IsPaintable(rule, n.Name) {
			inst.paintable = append(inst.paintable, n)
		}
		return true
	})
	return inst, nil
}

// Root is the placement node; the cloned asset is its only child.
func (i *Instance) Root() *scene.Node {
	return i.root
}

// PaintableCount is the number of parts Apply will repaint.
func (i *Instance) PaintableCount() int {
	return len(i.paintable)
}

// Paintable returns the names of the paintable parts in walk order.
func (i *Instance) Paintable() []string {
	names := make([]string, len(i.paintable))
	for k, n := range i.paintable {
		names[k] = n.Name
	}
	return names
}

// IsPaintable reports whether n is one of this instance's paintable parts.
func (i *Instance) IsPaintable(n *scene.Node) bool {
	for _, p := range i.paintable {
		if p == n {
			return true
		}
	}
	return false
}

// NodeCount includes the placement root.
func (i *Instance) NodeCount() int {
	return i.nodes
}

// Apply assigns spec to every paintable part and returns how many parts
// were painted. Parts outside the paint rule keep their asset materials.
func (i *Instance) Apply(spec material.Spec) int {
	for _, n := range i.paintable {
		n.SetMaterial(spec)
	}
	s := spec
	i.current = &s
	return len(i.paintable)
}

// Material returns the spec last passed to Apply.
func (i *Instance) Material() (material.Spec, bool) {
	if i.current == nil {
		return material.Spec{}, false
	}
	return *i.current, true
}

// Walk visits every node of the instance with its world matrix.
func (i *Instance) Walk(fn func(n *scene.Node, world rl.Matrix)) {
	scene.WalkWorld(i.root, rl.MatrixIdentity(), fn)
}
