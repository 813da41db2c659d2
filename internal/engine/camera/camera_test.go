package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestPositionDefaultsToPositiveZ(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}

	pos := c.Position()
	if !near(pos.X, 1) || !near(pos.Y, 2) || !near(pos.Z, 3+c.Distance) {
		t.Errorf("Position() = %v", pos)
	}
}

func TestViewMatrixCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 4, Y: -1, Z: 2}
	c.RotationY = 0.7
	c.RotationX = 0.3

	view := c.ViewMatrix()
	p := view.MulVec4(math.Vec4{X: 4, Y: -1, Z: 2, W: 1})
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, -c.Distance) {
		t.Errorf("center in view space = %v, want (0, 0, %v)", p, -c.Distance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	box := wavefront.AABB{
		Min: math.Vec3{X: -10, Y: 0, Z: -10},
		Max: math.Vec3{X: 10, Y: 20, Z: 10},
	}
	c.FitToBounds(box)

	if c.Center != (math.Vec3{X: 0, Y: 10, Z: 0}) {
		t.Errorf("Center = %v", c.Center)
	}

	radius := box.Size().Length() / 2
	if c.Distance <= radius {
		t.Errorf("Distance %v does not clear the bounding sphere radius %v", c.Distance, radius)
	}
	if c.Near <= 0 || c.Far <= c.Distance+radius {
		t.Errorf("clip planes %v..%v do not contain the model", c.Near, c.Far)
	}
}

func TestFitToBoundsPoint(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(wavefront.AABB{})

	if c.Distance <= 0 || c.Near <= 0 {
		t.Errorf("degenerate box produced distance %v, near %v", c.Distance, c.Near)
	}
}

func TestHandleZoom(t *testing.T) {
	c := NewOrbitCamera()
	start := c.Distance

	c.HandleZoom(1)
	if c.Distance >= start {
		t.Errorf("zooming in increased distance: %v -> %v", start, c.Distance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance < c.MinDistance {
		t.Errorf("Distance %v fell below MinDistance %v", c.Distance, c.MinDistance)
	}
}

func TestProjectionMatrixZeroHeight(t *testing.T) {
	c := NewOrbitCamera()
	m := c.ProjectionMatrix(800, 0)
	if gomath.IsNaN(float64(m[0])) || gomath.IsInf(float64(m[0]), 0) {
		t.Errorf("projection with zero height is not finite: %v", m[0])
	}
}
