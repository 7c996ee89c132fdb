package assets

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path"

	"showroom/internal/material"
	"showroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// unpainted is used for primitives that reference no material.
var unpainted = material.FromColor(rl.NewColor(204, 204, 204, 255), 0, 1)

// GLTFDecoder decodes binary (.glb) and JSON (.gltf) assets whose buffers
// are embedded. Assets that reference external buffer files fail to decode.
type GLTFDecoder struct{}

func (GLTFDecoder) Decode(assetPath string, data []byte) (*scene.Graph, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, err
	}
	b := &graphBuilder{doc: doc, meshes: map[int]*scene.Mesh{}}
	root, err := b.build(path.Base(assetPath))
	if err != nil {
		return nil, err
	}
	return &scene.Graph{Path: assetPath, Root: root}, nil
}

type graphBuilder struct {
	doc    *gltf.Document
	meshes map[int]*scene.Mesh
	depth  int
}

const maxNodeDepth = 256

func (b *graphBuilder) build(rootName string) (*scene.Node, error) {
	if len(b.doc.Scenes) == 0 {
		return nil, errors.New("gltf: document has no scenes")
	}
	sceneIdx := 0
	if b.doc.Scene != nil {
		sceneIdx = int(*b.doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(b.doc.Scenes) {
		return nil, fmt.Errorf("gltf: default scene %d out of range", sceneIdx)
	}

	root := scene.NewNode(rootName)
	for _, idx := range b.doc.Scenes[sceneIdx].Nodes {
		n, err := b.node(int(idx))
		if err != nil {
			return nil, err
		}
		root.AddChild(n)
	}
	return root, nil
}

func (b *graphBuilder) node(idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("gltf: node %d out of range", idx)
	}
	b.depth++
	defer func() { b.depth-- }()
	if b.depth > maxNodeDepth {
		return nil, fmt.Errorf("gltf: node hierarchy deeper than %d (cycle?)", maxNodeDepth)
	}

	src := b.doc.Nodes[idx]
	n := scene.NewNode(src.Name)
	n.Transform = nodeTransform(src)

	if src.Mesh != nil {
		mesh, err := b.mesh(int(*src.Mesh))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		n.Mesh = mesh
		if n.Name == "" {
			n.Name = mesh.Name
		}
	}

	for _, ci := range src.Children {
		child, err := b.node(int(ci))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// mesh converts a glTF mesh once; nodes that reference the same mesh index
// share the resulting *scene.Mesh, mirroring the asset.
func (b *graphBuilder) mesh(idx int) (*scene.Mesh, error) {
	if m, ok := b.meshes[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("gltf: mesh %d out of range", idx)
	}
	src := b.doc.Meshes[idx]
	m := &scene.Mesh{Name: src.Name}
	for i, p := range src.Primitives {
		prim, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		m.Primitives = append(m.Primitives, prim)
	}
	b.meshes[idx] = m
	return m, nil
}

func (b *graphBuilder) primitive(p *gltf.Primitive) (scene.Primitive, error) {
	prim := scene.Primitive{Material: unpainted}

	if posIdx, ok := p.Attributes["POSITION"]; ok {
		acr, err := b.accessor(int(posIdx))
		if err != nil {
			return prim, err
		}
		positions, err := modeler.ReadPosition(b.doc, acr, nil)
		if err != nil {
			return prim, fmt.Errorf("positions: %w", err)
		}
		prim.Positions = flatten(positions)
	}
	if nIdx, ok := p.Attributes["NORMAL"]; ok {
		acr, err := b.accessor(int(nIdx))
		if err != nil {
			return prim, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return prim, fmt.Errorf("normals: %w", err)
		}
		prim.Normals = flatten(normals)
	}
	if p.Indices != nil {
		acr, err := b.accessor(int(*p.Indices))
		if err != nil {
			return prim, err
		}
		indices, err := modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return prim, fmt.Errorf("indices: %w", err)
		}
		prim.Indices = indices
	}
	if p.Material != nil {
		mi := int(*p.Material)
		if mi < 0 || mi >= len(b.doc.Materials) {
			return prim, fmt.Errorf("gltf: material %d out of range", mi)
		}
		prim.Material = assetMaterial(b.doc.Materials[mi])
	}
	return prim, nil
}

func (b *graphBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("gltf: accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func assetMaterial(m *gltf.Material) material.Spec {
	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return unpainted
	}
	f := pbr.BaseColorFactorOrDefault()
	c := rl.NewColor(unit8(float64(f[0])), unit8(float64(f[1])), unit8(float64(f[2])), unit8(float64(f[3])))
	return material.FromColor(c, float32(pbr.MetallicFactorOrDefault()), float32(pbr.RoughnessFactorOrDefault()))
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func flatten(v [][3]float32) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, p := range v {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform reads either the node's matrix or its TRS properties.
func nodeTransform(n *gltf.Node) scene.Transform {
	var m [16]float64
	for i, v := range n.MatrixOrDefault() {
		m[i] = float64(v)
	}
	if m != identityMatrix {
		return decompose(m)
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return scene.Transform{
		Translation: rl.Vector3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		Rotation:    rl.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		Scale:       rl.Vector3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	}
}

// decompose splits a column-major affine matrix without shear into TRS.
func decompose(m [16]float64) scene.Transform {
	sx := math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])
	div := func(v, s float64) float32 {
		if s == 0 {
			return 0
		}
		return float32(v / s)
	}
	rot := rl.Matrix{
		M0: div(m[0], sx), M1: div(m[1], sx), M2: div(m[2], sx),
		M4: div(m[4], sy), M5: div(m[5], sy), M6: div(m[6], sy),
		M8: div(m[8], sz), M9: div(m[9], sz), M10: div(m[10], sz),
		M15: 1,
	}
	return scene.Transform{
		Translation: rl.Vector3{X: float32(m[12]), Y: float32(m[13]), Z: float32(m[14])},
		Rotation:    rl.QuaternionFromMatrix(rot),
		Scale:       rl.Vector3{X: float32(sx), Y: float32(sy), Z: float32(sz)},
	}
}
