package bounds

import (
	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Walker is the part of an instance that bounds needs.
type Walker interface {
	Walk(fn func(n *scene.Node, world rl.Matrix))
}

// Part is a mesh node with its world-space box.
type Part struct {
	Node *scene.Node
	Box  AABB
}

// Local bounds every primitive of a mesh in mesh space.
func Local(m *scene.Mesh) AABB {
	b := Empty()
	if m == nil {
		return b
	}
	for i := range m.Primitives {
		b = b.Union(FromPositions(m.Primitives[i].Positions))
	}
	return b
}

// Parts returns the world box of every mesh node in draw order.
func Parts(w Walker) []Part {
	var parts []Part
	w.Walk(func(n *scene.Node, world rl.Matrix) {
		if !n.IsMesh() {
			return
		}
		box := Local(n.Mesh).Transform(world)
		if box.IsEmpty() {
			return
		}
		parts = append(parts, Part{Node: n, Box: box})
	})
	return parts
}

// Extent is the union of all part boxes.
func Extent(parts []Part) AABB {
	b := Empty()
	for _, p := range parts {
		b = b.Union(p.Box)
	}
	return b
}

// Pick returns the part whose box the ray enters first.
func Pick(parts []Part, origin, dir rl.Vector3, maxDistance float32) (Part, float32, bool) {
	dir = rl.Vector3Normalize(dir)
	var best Part
	bestT := maxDistance
	hit := false
	for _, p := range parts {
		if t, ok := p.Box.Raycast(origin, dir, bestT); ok && (!hit || t < bestT) {
			best, bestT, hit = p, t, true
		}
	}
	return best, bestT, hit
}
