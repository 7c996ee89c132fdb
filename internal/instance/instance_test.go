package instance

import (
	"testing"

	"showroom/internal/material"
	"showroom/internal/paint"
	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assetPaint = material.FromColor(rl.Gray, 0, 1)

// rawCar builds a small asset graph. Object_10 and Wheel_1 share a mesh, as
// instanced parts in a real asset do.
func rawCar() *scene.Graph {
	shared := &scene.Mesh{Name: "shared", Primitives: []scene.Primitive{{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Material:  assetPaint,
	}}}
	mesh := func(name string) *scene.Node {
		n := scene.NewNode(name)
		n.Mesh = &scene.Mesh{Name: name, Primitives: []scene.Primitive{{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Material:  assetPaint,
		}}}
		return n
	}

	root := scene.NewNode("car.glb")
	body := scene.NewNode("Body")
	body.AddChild(mesh("Object_9"))
	object10 := scene.NewNode("Object_10")
	object10.Mesh = shared
	body.AddChild(object10)
	root.AddChild(body)

	wheel := scene.NewNode("Wheel_1")
	wheel.Mesh = shared
	root.AddChild(wheel)
	root.AddChild(mesh("Object_8"))
	return &scene.Graph{Path: "/car.glb", Root: root}
}

func place() Placement {
	return Placement{Scale: 3, Position: rl.Vector3{Y: -1}}
}

func TestInstantiateTagsPaintableMeshes(t *testing.T) {
	rule := paint.NewAllowlist("Object_9", "Object_10", "Body")
	inst, err := Instantiate("F40", rawCar(), rule, place())
	require.NoError(t, err)

	// Body matches the rule but has no mesh.
	assert.Equal(t, []string{"Object_9", "Object_10"}, inst.Paintable())
	assert.Equal(t, 2, inst.PaintableCount())
	assert.Equal(t, 7, inst.NodeCount())
	assert.Equal(t, "F40", inst.ModelID)
}

func TestInstantiatePlacesRoot(t *testing.T) {
	inst, err := Instantiate("F40", rawCar(), paint.NewAllowlist(), place())
	require.NoError(t, err)

	root := inst.Root()
	assert.Equal(t, "F40", root.Name)
	assert.Equal(t, rl.Vector3{X: 3, Y: 3, Z: 3}, root.Transform.Scale)
	assert.Equal(t, rl.Vector3{Y: -1}, root.Transform.Translation)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "car.glb", root.Children[0].Name)
}

func TestInstantiateLeavesRawUntouched(t *testing.T) {
	raw := rawCar()
	inst, err := Instantiate("F40", raw, paint.NewAllowlist("Object_9", "Object_10"), place())
	require.NoError(t, err)

	red, err := material.Build(material.Standard, "#FF0000")
	require.NoError(t, err)
	assert.Equal(t, 2, inst.Apply(red))

	scene.Walk(raw.Root, func(n *scene.Node) bool {
		if n.IsMesh() {
			assert.Equal(t, assetPaint, n.Mesh.Primitives[0].Material, n.Name)
		}
		return true
	})
	assert.Equal(t, "car.glb", raw.Root.Name)
	assert.Equal(t, scene.Identity(), raw.Root.Transform)
}

func TestApplySkipsSharedMeshOutsideRule(t *testing.T) {
	inst, err := Instantiate("F40", rawCar(), paint.NewAllowlist("Object_10"), place())
	require.NoError(t, err)

	yellow, err := material.Build(material.Standard, "#FFD300")
	require.NoError(t, err)
	inst.Apply(yellow)

	var wheel *scene.Node
	scene.Walk(inst.Root(), func(n *scene.Node) bool {
		if n.Name == "Wheel_1" {
			wheel = n
		}
		return true
	})
	require.NotNil(t, wheel)
	assert.Equal(t, assetPaint, wheel.Mesh.Primitives[0].Material)
}

func TestInstancesAreIsolated(t *testing.T) {
	raw := rawCar()
	rule := paint.NewAllowlist("Object_9")
	a, err := Instantiate("F40", raw, rule, place())
	require.NoError(t, err)
	b, err := Instantiate("F40", raw, rule, place())
	require.NoError(t, err)

	red, _ := material.Build(material.Standard, "#FF0000")
	white, _ := material.Build(material.Standard, "#FFFFFF")
	a.Apply(red)
	b.Apply(white)

	paintOf := func(inst *Instance) material.Spec {
		var spec material.Spec
		scene.Walk(inst.Root(), func(n *scene.Node) bool {
			if n.Name == "Object_9" {
				spec = n.Mesh.Primitives[0].Material
			}
			return true
		})
		return spec
	}
	assert.Equal(t, red, paintOf(a))
	assert.Equal(t, white, paintOf(b))
}

func TestApplyIsIdempotent(t *testing.T) {
	inst, err := Instantiate("SF90", rawCar(), paint.NewSubstring("Object", "8"), place())
	require.NoError(t, err)
	before := inst.Paintable()

	first, _ := material.Build(material.PhysicalClearcoat, "#000000")
	second, _ := material.Build(material.PhysicalClearcoat, "#000000")
	inst.Apply(first)
	got1, ok := inst.Material()
	require.True(t, ok)
	inst.Apply(second)
	got2, _ := inst.Material()

	assert.Equal(t, got1, got2)
	assert.Equal(t, before, inst.Paintable())
}

func TestZeroMatchRule(t *testing.T) {
	inst, err := Instantiate("F50", rawCar(), paint.NewAllowlist("body_red_0"), place())
	require.NoError(t, err)

	_, ok := inst.Material()
	assert.False(t, ok)
	red, _ := material.Build(material.Standard, "#FF0000")
	assert.Equal(t, 0, inst.Apply(red))
	assert.Empty(t, inst.Paintable())
}

func TestInstantiateErrors(t *testing.T) {
	_, err := Instantiate("F40", nil, paint.NewAllowlist(), place())
	assert.ErrorIs(t, err, ErrInstantiation)

	_, err = Instantiate("F40", &scene.Graph{Path: "/x.glb"}, paint.NewAllowlist(), place())
	assert.ErrorIs(t, err, ErrInstantiation)

	_, err = Instantiate("F40", rawCar(), paint.NewAllowlist(), Placement{})
	assert.ErrorIs(t, err, ErrInstantiation)
}

func TestWalkAppliesPlacement(t *testing.T) {
	inst, err := Instantiate("F40", rawCar(), paint.NewAllowlist(), place())
	require.NoError(t, err)

	var rootWorld rl.Matrix
	inst.Walk(func(n *scene.Node, world rl.Matrix) {
		if n == inst.Root() {
			rootWorld = world
		}
	})
	moved := rl.Vector3Transform(rl.Vector3{X: 1}, rootWorld)
	assert.InDelta(t, 3, moved.X, 1e-5)
	assert.InDelta(t, -1, moved.Y, 1e-5)
}

func TestIsPaintableByNode(t *testing.T) {
	inst, err := Instantiate("F40", rawCar(), paint.NewAllowlist("Object_9"), place())
	require.NoError(t, err)

	var painted, other *scene.Node
	scene.Walk(inst.Root(), func(n *scene.Node) bool {
		switch n.Name {
		case "Object_9":
			painted = n
		case "Object_8":
			other = n
		}
		return true
	})
	require.NotNil(t, painted)
	require.NotNil(t, other)
	assert.True(t, inst.IsPaintable(painted))
	assert.False(t, inst.IsPaintable(other))
	assert.False(t, inst.IsPaintable(scene.NewNode("Object_9")), "only this instance's nodes")
}
