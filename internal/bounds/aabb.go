// Package bounds computes axis-aligned boxes for instance parts and tests
// them against rays and the view frustum.
package bounds

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// Empty is the identity for Union. It contains no point.
func Empty() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: rl.Vector3{X: inf, Y: inf, Z: inf},
		Max: rl.Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// FromPositions bounds a flat xyz position array.
func FromPositions(positions []float32) AABB {
	b := Empty()
	for i := 0; i+2 < len(positions); i += 3 {
		b = b.Extend(rl.Vector3{X: positions[i], Y: positions[i+1], Z: positions[i+2]})
	}
	return b
}

func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3{X: min(a.Min.X, p.X), Y: min(a.Min.Y, p.Y), Z: min(a.Min.Z, p.Z)},
		Max: rl.Vector3{X: max(a.Max.X, p.X), Y: max(a.Max.Y, p.Y), Z: max(a.Max.Z, p.Z)},
	}
}

func (a AABB) Union(b AABB) AABB {
	if b.IsEmpty() {
		return a
	}
	return a.Extend(b.Min).Extend(b.Max)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	if a.IsEmpty() {
		return rl.Vector3Zero()
	}
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Radius of the sphere around Center that contains the box.
func (a AABB) Radius() float32 {
	return rl.Vector3Length(a.Size()) / 2
}

// Transform returns the box around the eight transformed corners of a.
func (a AABB) Transform(m rl.Matrix) AABB {
	if a.IsEmpty() {
		return a
	}
	out := Empty()
	for i := 0; i < 8; i++ {
		c := a.Min
		if i&1 != 0 {
			c.X = a.Max.X
		}
		if i&2 != 0 {
			c.Y = a.Max.Y
		}
		if i&4 != 0 {
			c.Z = a.Max.Z
		}
		out = out.Extend(rl.Vector3Transform(c, m))
	}
	return out
}

// Raycast returns the distance along dir at which the ray enters the box, or
// the exit distance when origin is inside it. dir must be normalized.
func (a AABB) Raycast(origin, dir rl.Vector3, maxDistance float32) (float32, bool) {
	if a.IsEmpty() {
		return 0, false
	}
	tmin, tmax := float32(-math.MaxFloat32), float32(math.MaxFloat32)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin, tmax = max(tmin, t1), min(tmax, t2)
		return tmin <= tmax
	}
	if !slab(origin.X, dir.X, a.Min.X, a.Max.X) ||
		!slab(origin.Y, dir.Y, a.Min.Y, a.Max.Y) ||
		!slab(origin.Z, dir.Z, a.Min.Z, a.Max.Z) {
		return 0, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}
