package bounds

import (
	"testing"

	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unit = AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

type graphWalker struct{ root *scene.Node }

func (g graphWalker) Walk(fn func(n *scene.Node, world rl.Matrix)) {
	scene.WalkWorld(g.root, rl.MatrixIdentity(), fn)
}

func cube(name string, x float32) *scene.Node {
	n := scene.NewNode(name)
	n.Transform.Translation = rl.Vector3{X: x}
	n.Mesh = &scene.Mesh{Name: name, Primitives: []scene.Primitive{{
		Positions: []float32{-1, -1, -1, 1, 1, 1, 0, 0, 0},
	}}}
	return n
}

func TestEmpty(t *testing.T) {
	e := Empty()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, rl.Vector3Zero(), e.Size())
	assert.Equal(t, unit, e.Union(unit))
	assert.Equal(t, unit, unit.Union(e))
	assert.True(t, FromPositions(nil).IsEmpty())
}

func TestFromPositions(t *testing.T) {
	b := FromPositions([]float32{0, 2, -1, 3, -4, 5})
	assert.Equal(t, rl.Vector3{X: 0, Y: -4, Z: -1}, b.Min)
	assert.Equal(t, rl.Vector3{X: 3, Y: 2, Z: 5}, b.Max)
	assert.Equal(t, rl.Vector3{X: 1.5, Y: -1, Z: 2}, b.Center())
}

func TestTransform(t *testing.T) {
	m := rl.MatrixMultiply(rl.MatrixScale(2, 2, 2), rl.MatrixTranslate(5, 0, 0))
	b := unit.Transform(m)
	assert.InDelta(t, 3, b.Min.X, 1e-5)
	assert.InDelta(t, 7, b.Max.X, 1e-5)
	assert.InDelta(t, -2, b.Min.Y, 1e-5)
	assert.InDelta(t, 2, b.Max.Z, 1e-5)
}

func TestIntersects(t *testing.T) {
	assert.True(t, unit.Intersects(AABB{Min: rl.Vector3{X: 0.5}, Max: rl.Vector3{X: 3, Y: 3, Z: 3}}))
	assert.False(t, unit.Intersects(AABB{Min: rl.Vector3{X: 2}, Max: rl.Vector3{X: 3, Y: 3, Z: 3}}))
}

func TestRaycast(t *testing.T) {
	origin := rl.Vector3{Z: 10}
	back := rl.Vector3{Z: -1}

	d, ok := unit.Raycast(origin, back, 100)
	require.True(t, ok)
	assert.InDelta(t, 9, d, 1e-5)

	_, ok = unit.Raycast(origin, rl.Vector3{Z: 1}, 100)
	assert.False(t, ok, "box is behind the ray")

	_, ok = unit.Raycast(origin, back, 5)
	assert.False(t, ok, "box is beyond max distance")

	_, ok = unit.Raycast(rl.Vector3{X: 3, Z: 10}, back, 100)
	assert.False(t, ok, "ray parallel to the box")

	d, ok = unit.Raycast(rl.Vector3{}, back, 100)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-5, "inside the box reports the exit")
}

func TestPartsAndPick(t *testing.T) {
	root := scene.NewNode("car")
	body := scene.NewNode("Body")
	body.AddChild(cube("Door", 0))
	root.AddChild(body)
	root.AddChild(cube("Wheel", 4))

	parts := Parts(graphWalker{root})
	require.Len(t, parts, 2)
	assert.Equal(t, "Door", parts[0].Node.Name)
	assert.InDelta(t, 3, parts[1].Box.Min.X, 1e-5)

	ext := Extent(parts)
	assert.InDelta(t, -1, ext.Min.X, 1e-5)
	assert.InDelta(t, 5, ext.Max.X, 1e-5)

	p, d, ok := Pick(parts, rl.Vector3{X: 4, Z: 10}, rl.Vector3{Z: -2}, 100)
	require.True(t, ok)
	assert.Equal(t, "Wheel", p.Node.Name)
	assert.InDelta(t, 9, d, 1e-5)

	_, _, ok = Pick(parts, rl.Vector3{X: 2, Z: 10}, rl.Vector3{Z: -1}, 100)
	assert.False(t, ok)
}

func TestPickNearest(t *testing.T) {
	root := scene.NewNode("car")
	root.AddChild(cube("Far", 0))
	near := cube("Near", 0)
	near.Transform.Translation = rl.Vector3{Z: 3}
	root.AddChild(near)

	p, _, ok := Pick(Parts(graphWalker{root}), rl.Vector3{Z: 10}, rl.Vector3{Z: -1}, 100)
	require.True(t, ok)
	assert.Equal(t, "Near", p.Node.Name)
}

func TestFrustum(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(cam, 16.0/9.0)

	assert.True(t, f.ContainsPoint(rl.Vector3{}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 20}), "behind the camera")
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 100}))

	assert.True(t, f.ContainsSphere(rl.Vector3{X: 6}, 3))
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: 20}, 1))

	assert.True(t, f.ContainsBox(unit))
	assert.False(t, f.ContainsBox(AABB{Min: rl.Vector3{X: 50, Y: -1, Z: -1}, Max: rl.Vector3{X: 52, Y: 1, Z: 1}}))
	assert.False(t, f.ContainsBox(Empty()))
}
