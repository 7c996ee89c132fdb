package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Orbit circles a fixed target at a fixed distance. Dragging with the left
// mouse button changes yaw and pitch; there is no zoom or pan.
type Orbit struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32 // degrees around Y, 0 looks down -Z from +Z
	Pitch     float32 // degrees above the horizon
	Fovy      float32
	LookSpeed float32
}

// DefaultPosition is where the showroom camera starts, relative to the target.
var DefaultPosition = rl.Vector3{X: 5, Y: 2, Z: 8}

const (
	minPitch = -10
	maxPitch = 80
)

// New returns an orbit around target whose initial eye is at pos.
func New(pos, target rl.Vector3) *Orbit {
	o := &Orbit{Target: target, Fovy: 35, LookSpeed: 0.3}
	o.SetPosition(pos)
	return o
}

// SetPosition places the eye at pos, keeping the target.
func (o *Orbit) SetPosition(pos rl.Vector3) {
	d := rl.Vector3Subtract(pos, o.Target)
	o.Distance = rl.Vector3Length(d)
	if o.Distance == 0 {
		o.Distance = 1
	}
	o.Yaw = float32(math.Atan2(float64(d.X), float64(d.Z)) * 180 / math.Pi)
	o.Pitch = float32(math.Asin(float64(d.Y/o.Distance)) * 180 / math.Pi)
	o.clamp()
}

// Rotate adds a mouse delta in pixels to yaw and pitch.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * o.LookSpeed
	o.Pitch += dy * o.LookSpeed
	o.clamp()
}

func (o *Orbit) clamp() {
	if o.Pitch > maxPitch {
		o.Pitch = maxPitch
	}
	if o.Pitch < minPitch {
		o.Pitch = minPitch
	}
	o.Yaw = float32(math.Mod(float64(o.Yaw), 360))
}

// Position is the eye position derived from yaw, pitch and distance.
func (o *Orbit) Position() rl.Vector3 {
	yawRad := float64(o.Yaw) * math.Pi / 180
	pitchRad := float64(o.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: o.Target.X + o.Distance*float32(math.Sin(yawRad)*math.Cos(pitchRad)),
		Y: o.Target.Y + o.Distance*float32(math.Sin(pitchRad)),
		Z: o.Target.Z + o.Distance*float32(math.Cos(yawRad)*math.Cos(pitchRad)),
	}
}

// Update applies mouse drag input. Pass false for enabled while the pointer
// is over UI so panel clicks do not spin the car.
func (o *Orbit) Update(enabled bool) {
	if !enabled || !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		return
	}
	delta := rl.GetMouseDelta()
	o.Rotate(delta.X, delta.Y)
}

func (o *Orbit) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   o.Position(),
		Target:     o.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       o.Fovy,
		Projection: rl.CameraPerspective,
	}
}
