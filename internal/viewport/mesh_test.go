package viewport

import (
	"testing"

	"showroom/internal/scene"

	"github.com/stretchr/testify/assert"
)

var quad = scene.Primitive{
	Positions: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
	Indices:   []uint32{0, 1, 2, 0, 2, 3},
}

func TestTrianglesExpandsIndices(t *testing.T) {
	positions, normals := triangles(&quad)
	assert.Len(t, positions, 18)
	assert.Len(t, normals, 18)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0}, positions[:9])
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 0, 0, 1, 0}, positions[9:])

	// Counter-clockwise in the XY plane faces +Z.
	for i := 0; i < len(normals); i += 3 {
		assert.InDelta(t, 1, normals[i+2], 1e-6)
	}
}

func TestTrianglesUsesAssetNormals(t *testing.T) {
	p := scene.Primitive{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 1, 0, 0, 1, 0, 0, 1, 0},
	}
	_, normals := triangles(&p)
	assert.Equal(t, p.Normals, normals)
}

func TestTrianglesWithoutIndices(t *testing.T) {
	p := scene.Primitive{Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 5, 5, 5}}
	positions, _ := triangles(&p)
	assert.Len(t, positions, 9, "trailing vertex is not a triangle")
}

func TestTrianglesSkipsBadIndices(t *testing.T) {
	p := quad
	p.Indices = []uint32{0, 1, 9, 0, 2, 3}
	positions, _ := triangles(&p)
	assert.Len(t, positions, 9)
}

func TestShade(t *testing.T) {
	colors := shade([]float32{0, 1, 0, 0, -1, 0})
	assert.Len(t, colors, 8)

	lit, unlit := colors[0], colors[4]
	assert.Greater(t, lit, unlit)
	assert.Equal(t, uint8(89), unlit)
	assert.Equal(t, colors[0], colors[1])
	assert.Equal(t, uint8(255), colors[3])
}
