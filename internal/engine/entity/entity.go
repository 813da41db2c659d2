// Package entity implements the keyboard-controlled model instance.
package entity

import (
	"github.com/Faultbox/scop/pkg/math"
)

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
)

// Entity is a model placed in the world. It rotates around Pivot, which
// is usually the model's bounding box center.
type Entity struct {
	Name       string
	Pivot      math.Vec3
	Position   math.Vec3
	Rotation   math.Quat
	AutoRotate bool
}

// New creates an entity at the origin rotating around pivot.
func New(name string, pivot math.Vec3) *Entity {
	return &Entity{
		Name:     name,
		Pivot:    pivot,
		Rotation: math.QuatIdentity(),
	}
}

// ModelMatrix moves the pivot to the origin, rotates, then translates.
func (e *Entity) ModelMatrix() math.Mat4 {
	recenter := math.Translate(e.Pivot.Scale(-1))
	return math.Translate(e.Position).Mul(e.Rotation.ToMat4()).Mul(recenter)
}

// Rotate applies a world-space rotation of angle radians around axis.
func (e *Entity) Rotate(axis math.Vec3, angle float32) {
	if angle == 0 {
		return
	}
	e.Rotation = math.QuatFromAxisAngle(axis, angle).Mul(e.Rotation).Normalize()
}

// Reset clears translation and rotation.
func (e *Entity) Reset() {
	e.Position = math.Vec3{}
	e.Rotation = math.QuatIdentity()
}

// Controls is the per-frame intent read from the keyboard. Axis values are
// in -1..1.
type Controls struct {
	Move             math.Vec3
	Yaw              float32
	Pitch            float32
	ToggleAutoRotate bool
	Reset            bool
}

// Controller turns Controls into entity motion.
type Controller struct {
	MoveSpeed       float32 // Units per second
	RotateSpeed     float32 // Degrees per second
	AutoRotateSpeed float32 // Degrees per second around Y
}

// Apply advances e by dt seconds.
func (c Controller) Apply(e *Entity, in Controls, dt float32) {
	if in.Reset {
		e.Reset()
	}
	if in.ToggleAutoRotate {
		e.AutoRotate = !e.AutoRotate
	}

	e.Position = e.Position.Add(in.Move.Scale(c.MoveSpeed * dt))

	yaw := in.Yaw * c.RotateSpeed * dt
	if e.AutoRotate {
		yaw += c.AutoRotateSpeed * dt
	}
	e.Rotate(axisY, math.Radians(yaw))
	e.Rotate(axisX, math.Radians(in.Pitch*c.RotateSpeed*dt))
}
