package math

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.0001
}

func nearVec3(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 5, 3}

	if got, want := a.Min(b), (Vec3{-1, -2, 3}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{1, 5, 3}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestVec3Div(t *testing.T) {
	got := Vec3{2, 9, -4}.Div(Vec3{2, 3, 4})
	want := Vec3{1, 3, -1}
	if got != want {
		t.Errorf("Div() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	if l := (Vec3{3, 4, 0}).Normalize().Length(); !near(l, 1) {
		t.Errorf("Normalize().Length() = %v, want 1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
}

func TestTranslateMulVec4(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.MulVec4(Vec4{1, 2, 3, 1})
	want := Vec4{11, 22, 33, 1}
	if got != want {
		t.Errorf("MulVec4() = %v, want %v", got, want)
	}

	// Directions (w=0) ignore translation
	got = m.MulVec4(Vec4{1, 2, 3, 0})
	if got.XYZ() != (Vec3{1, 2, 3}) {
		t.Errorf("MulVec4() direction = %v, want unchanged", got)
	}
}

func TestScaleThenTranslate(t *testing.T) {
	m := Translate(Vec3{1, 0, 0}).Mul(Scale(Splat(2)))
	got := m.MulVec4(Vec4{1, 1, 1, 1}).XYZ()
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("T*S*p = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1, 0.1, 100)
	if m[11] != -1 {
		t.Errorf("Perspective [11] = %v, want -1", m[11])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] = %v, want 0", m[15])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := m.MulVec4(Vec4{eye.X, eye.Y, eye.Z, 1}).XYZ()
	if !nearVec3(got, Vec3{}) {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, Radians(90))
	got := q.Rotate(Vec3{1, 0, 0})
	if !nearVec3(got, Vec3{0, 0, -1}) {
		t.Errorf("Rotate() = %v, want (0, 0, -1)", got)
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 0, 0}, Radians(30)).Mul(QuatFromAxisAngle(Vec3{0, 1, 0}, Radians(60)))
	v := Vec3{1, 2, 3}

	byQuat := q.Rotate(v)
	byMat := q.ToMat4().MulVec4(Vec4{v.X, v.Y, v.Z, 1}).XYZ()
	if !nearVec3(byQuat, byMat) {
		t.Errorf("Rotate() = %v, ToMat4()*v = %v", byQuat, byMat)
	}
}

func TestQuatIdentityToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	id := Identity()
	for i := range m {
		if !near(m[i], id[i]) {
			t.Errorf("element %d: got %v, want %v", i, m[i], id[i])
		}
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("Normalize() = %v, want identity", got)
	}
}
