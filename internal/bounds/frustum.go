package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	near = 0.01
	far  = 1000.0
)

// Frustum holds the six view planes: left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]plane
}

// plane is n.p + d = 0 with n pointing into the frustum.
type plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the frustum of a camera for a viewport aspect ratio,
// using the Gribb/Hartmann plane extraction.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	} else {
		halfH := camera.Fovy / 2
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	}
	vp := rl.MatrixMultiply(view, proj)

	rows := [4]rl.Vector4{
		{X: vp.M0, Y: vp.M4, Z: vp.M8, W: vp.M12},
		{X: vp.M1, Y: vp.M5, Z: vp.M9, W: vp.M13},
		{X: vp.M2, Y: vp.M6, Z: vp.M10, W: vp.M14},
		{X: vp.M3, Y: vp.M7, Z: vp.M11, W: vp.M15},
	}

	var f Frustum
	for i := 0; i < 3; i++ {
		f.planes[2*i] = normalize(rows[3], rows[i], 1)
		f.planes[2*i+1] = normalize(rows[3], rows[i], -1)
	}
	return f
}

func normalize(w, r rl.Vector4, sign float32) plane {
	p := plane{
		normal:   rl.Vector3{X: w.X + sign*r.X, Y: w.Y + sign*r.Y, Z: w.Z + sign*r.Z},
		distance: w.W + sign*r.W,
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return plane{
		normal:   rl.Vector3Scale(p.normal, 1/length),
		distance: p.distance / length,
	}
}

func (f *Frustum) ContainsPoint(p rl.Vector3) bool {
	for _, pl := range f.planes {
		if rl.Vector3DotProduct(pl.normal, p)+pl.distance < 0 {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, pl := range f.planes {
		if rl.Vector3DotProduct(pl.normal, center)+pl.distance < -radius {
			return false
		}
	}
	return true
}

// ContainsBox reports whether any part of b may be visible. It tests the box
// corner furthest along each plane normal, so it can accept boxes that are
// just outside a frustum edge but never rejects a visible one.
func (f *Frustum) ContainsBox(b AABB) bool {
	if b.IsEmpty() {
		return false
	}
	for _, pl := range f.planes {
		c := b.Min
		if pl.normal.X >= 0 {
			c.X = b.Max.X
		}
		if pl.normal.Y >= 0 {
			c.Y = b.Max.Y
		}
		if pl.normal.Z >= 0 {
			c.Z = b.Max.Z
		}
		if rl.Vector3DotProduct(pl.normal, c)+pl.distance < 0 {
			return false
		}
	}
	return true
}
