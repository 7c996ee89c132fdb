// Package scene holds the node graph decoded from a vehicle asset.
//
// A Graph returned by the asset loader is shared by every instance built
// from the same path and must be treated as read-only. Mutable copies are
// made with Clone.
package scene

import (
	"fmt"

	"github.com/jinzhu/copier"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Graph is a decoded asset: the root of its node tree and the path it came from.
type Graph struct {
	Path string
	Root *Node
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips that node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// WalkWorld is Walk with each node's world matrix, starting from parent.
func WalkWorld(n *Node, parent rl.Matrix, fn func(n *Node, world rl.Matrix)) {
	if n == nil {
		return
	}
	world := rl.MatrixMultiply(n.Transform.Matrix(), parent)
	fn(n, world)
	for _, c := range n.Children {
		WalkWorld(c, world, fn)
	}
}

// Find returns the first node named name, or nil.
func (g *Graph) Find(name string) *Node {
	var found *Node
	Walk(g.Root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Names lists every node name in walk order.
func (g *Graph) Names() []string {
	var names []string
	Walk(g.Root, func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	return names
}

// Count returns the number of nodes in the graph.
func (g *Graph) Count() int {
	count := 0
	Walk(g.Root, func(*Node) bool {
		count++
		return true
	})
	return count
}

// Clone deep-copies g. The result shares no nodes, meshes, vertex slices or
// material slots with g; a mesh referenced from two nodes of g is copied
// separately for each.
func Clone(g *Graph) (*Graph, error) {
	if g == nil {
		return nil, fmt.Errorf("clone: nil graph")
	}
	out := &Graph{Path: g.Path}
	if g.Root == nil {
		return out, nil
	}
	root := &Node{}
	if err := copier.CopyWithOption(root, g.Root, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone %s: %w", g.Path, err)
	}
	out.Root = root
	return out, nil
}
