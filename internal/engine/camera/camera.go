// Package camera provides the viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// OrbitCamera looks at a center point from a distance.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // Pitch, radians
	RotationY float32 // Yaw, radians

	FovY float32 // Vertical field of view, radians
	Near float32
	Far  float32

	MinDistance     float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera looking at the origin along -Z.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		FovY:            math.Radians(45),
		Near:            0.1,
		Far:             100.0,
		MinDistance:     0.01,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for a viewport.
func (c *OrbitCamera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleZoom moves towards the center for positive delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Far < c.Distance*4 {
		c.Far = c.Distance * 4
	}
}

// FitToBounds aims at the box center from a distance where its bounding
// sphere fills the vertical field of view, and rescales the clip planes.
func (c *OrbitCamera) FitToBounds(box wavefront.AABB) {
	c.Center = box.Center()

	radius := box.Size().Length() / 2
	if radius == 0 {
		radius = 1
	}

	c.Distance = radius / float32(gomath.Sin(float64(c.FovY)/2))
	c.Near = c.Distance / 100
	c.Far = c.Distance + radius*4
	c.MinDistance = radius / 10
	c.RotationX = 0
	c.RotationY = 0
}
