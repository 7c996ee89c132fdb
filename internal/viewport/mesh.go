package viewport

import (
	"math"

	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// lightDir is the fixed key light used to bake shading into vertex colors.
var lightDir = rl.Vector3Normalize(rl.Vector3{X: -0.5, Y: -1, Z: -0.5})

const ambient = 0.35

// triangles expands an indexed primitive into flat triangle lists. raylib
// meshes index with uint16, so expanding avoids the 65535 vertex limit.
// Normals are taken from the primitive when present, otherwise computed
// per face. Out-of-range indices drop their triangle.
func triangles(p *scene.Primitive) (positions, normals []float32) {
	vc := p.VertexCount()
	idx := p.Indices
	if len(idx) == 0 {
		idx = make([]uint32, vc-vc%3)
		for i := range idx {
			idx[i] = uint32(i)
		}
	}
	hasNormals := len(p.Normals) == len(p.Positions)

	positions = make([]float32, 0, len(idx)*3)
	normals = make([]float32, 0, len(idx)*3)
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := idx[t], idx[t+1], idx[t+2]
		if int(a) >= vc || int(b) >= vc || int(c) >= vc {
			continue
		}
		va, vb, vcx := vertex(p.Positions, a), vertex(p.Positions, b), vertex(p.Positions, c)
		positions = appendVec(positions, va, vb, vcx)

		if hasNormals {
			normals = appendVec(normals, vertex(p.Normals, a), vertex(p.Normals, b), vertex(p.Normals, c))
			continue
		}
		n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(vb, va), rl.Vector3Subtract(vcx, va)))
		normals = appendVec(normals, n, n, n)
	}
	return positions, normals
}

// shade bakes a diffuse term from lightDir into grey vertex colors that the
// material color tints at draw time.
func shade(normals []float32) []uint8 {
	colors := make([]uint8, 0, len(normals)/3*4)
	for i := 0; i+2 < len(normals); i += 3 {
		n := rl.Vector3{X: normals[i], Y: normals[i+1], Z: normals[i+2]}
		diffuse := math.Max(0, float64(-rl.Vector3DotProduct(n, lightDir)))
		v := uint8(math.Round(math.Min(1, ambient+(1-ambient)*diffuse) * 255))
		colors = append(colors, v, v, v, 255)
	}
	return colors
}

func vertex(flat []float32, i uint32) rl.Vector3 {
	return rl.Vector3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
}

func appendVec(dst []float32, vs ...rl.Vector3) []float32 {
	for _, v := range vs {
		dst = append(dst, v.X, v.Y, v.Z)
	}
	return dst
}
