// Package viewport draws configurator instances with raylib.
//
// Geometry is uploaded the first time an instance is drawn and reused until
// Release. Paint changes need no upload: each primitive's current material
// color is read every frame.
package viewport

import (
	"showroom/internal/bounds"
	"showroom/internal/instance"
	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

type part struct {
	node *scene.Node
	prim int
	mesh rl.Mesh
	box  bounds.AABB

	// raylib keeps pointers into these until the mesh is unloaded.
	positions []float32
	normals   []float32
	colors    []uint8
}

type Viewport struct {
	log      zerolog.Logger
	material rl.Material
	uploaded map[*instance.Instance]map[*scene.Node][]*part

	// Drawn and Culled count parts in the last Draw.
	Drawn, Culled int
}

// New must be called after the window is open.
func New(log zerolog.Logger) *Viewport {
	return &Viewport{
		log:      log.With().Str("component", "viewport").Logger(),
		material: rl.LoadMaterialDefault(),
		uploaded: make(map[*instance.Instance]map[*scene.Node][]*part),
	}
}

// Draw renders inst in the current 3D mode, skipping parts outside view.
// A nil view draws every part.
func (v *Viewport) Draw(inst *instance.Instance, view *bounds.Frustum) {
	v.Drawn, v.Culled = 0, 0
	if inst == nil {
		return
	}
	parts, ok := v.uploaded[inst]
	if !ok {
		parts = v.upload(inst)
	}

	inst.Walk(func(n *scene.Node, world rl.Matrix) {
		for _, p := range parts[n] {
			if view != nil && !view.ContainsBox(p.box.Transform(world)) {
				v.Culled++
				continue
			}
			v.material.Maps.Color = n.Mesh.Primitives[p.prim].Material.Color
			rl.DrawMesh(p.mesh, v.material, world)
			v.Drawn++
		}
	})
}

func (v *Viewport) upload(inst *instance.Instance) map[*scene.Node][]*part {
	parts := make(map[*scene.Node][]*part)
	meshes, tris := 0, 0
	scene.Walk(inst.Root(), func(n *scene.Node) bool {
		if !n.IsMesh() {
			return true
		}
		for i := range n.Mesh.Primitives {
			positions, normals := triangles(&n.Mesh.Primitives[i])
			if len(positions) == 0 {
				continue
			}
			p := &part{
				node:      n,
				prim:      i,
				box:       bounds.FromPositions(positions),
				positions: positions,
				normals:   normals,
				colors:    shade(normals),
			}
			vertexCount := len(positions) / 3
			p.mesh = rl.Mesh{
				VertexCount:   int32(vertexCount),
				TriangleCount: int32(vertexCount / 3),
				Vertices:      &p.positions[0],
				Normals:       &p.normals[0],
				Colors:        &p.colors[0],
			}
			rl.UploadMesh(&p.mesh, false)
			parts[n] = append(parts[n], p)
			meshes++
			tris += vertexCount / 3
		}
		return true
	})
	v.uploaded[inst] = parts
	v.log.Debug().Str("model", inst.ModelID).Int("meshes", meshes).Int("triangles", tris).Msg("instance uploaded")
	return parts
}

// Release frees the GPU meshes of inst. It is safe to call for instances
// that were never drawn.
func (v *Viewport) Release(inst *instance.Instance) {
	parts, ok := v.uploaded[inst]
	if !ok {
		return
	}
	for _, ps := range parts {
		for _, p := range ps {
			rl.UnloadMesh(&p.mesh)
		}
	}
	delete(v.uploaded, inst)
	v.log.Debug().Str("model", inst.ModelID).Msg("instance released")
}

// Unload releases everything; call before closing the window.
func (v *Viewport) Unload() {
	for inst := range v.uploaded {
		v.Release(inst)
	}
	rl.UnloadMaterial(v.material)
}
