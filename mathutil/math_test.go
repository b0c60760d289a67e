package mathutil

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	v1 := Vec3{X: 1, Y: 2, Z: 3}
	v2 := Vec3{X: 4, Y: 5, Z: 6}

	if got, want := v1.Add(v2), (Vec3{X: 5, Y: 7, Z: 9}); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), (Vec3{X: 3, Y: 3, Z: 3}); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), (Vec3{X: 2, Y: 4, Z: 6}); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if got, want := v1.MulVec(v2), (Vec3{X: 4, Y: 10, Z: 18}); got != want {
		t.Errorf("MulVec: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), float32(32); got != want { // 1*4+2*5+3*6
		t.Errorf("Dot: expected %v, got %v", want, got)
	}

	right, up, front := Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}
	if cross := right.Cross(up); cross != front {
		t.Errorf("Cross: expected right x up = front %v, got %v", front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3}
	normalized := v.Normalize()
	if want := (Vec3{X: 1}); normalized != want {
		t.Errorf("Normalize: expected %v, got %v", want, normalized)
	}
	if length := normalized.Length(); math.Abs(float64(length-1)) > 1e-4 {
		t.Errorf("Normalize: expected unit length, got %v", length)
	}

	// the zero vector has no direction to normalize toward; Normalize
	// leaves it untouched rather than dividing by zero.
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Normalize of zero vector: expected no-op, got %v", zero)
	}
}

func TestVec3NegateAndLerp(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3}
	if got, want := v.Negate(), (Vec3{X: -1, Y: 2, Z: -3}); got != want {
		t.Errorf("Negate: expected %v, got %v", want, got)
	}

	a, b := Vec3{}, Vec3{X: 10}
	if mid := a.Lerp(b, 0.5); mid != (Vec3{X: 5}) {
		t.Errorf("Lerp: expected halfway point, got %v", mid)
	}
}

func TestAbs32(t *testing.T) {
	if Abs32(-3.5) != 3.5 {
		t.Errorf("Abs32: expected 3.5, got %v", Abs32(-3.5))
	}
	if Abs32(3.5) != 3.5 {
		t.Errorf("Abs32: expected 3.5, got %v", Abs32(3.5))
	}
}

func TestVec4RoundTripsThroughVec3(t *testing.T) {
	point := Vec3{X: 1, Y: 2, Z: 3}
	if got := point.ToVec4(1).ToVec3(); got != point {
		t.Errorf("ToVec4/ToVec3 round trip: expected %v, got %v", point, got)
	}

	// ToVec3DivW perspective-divides a nonzero w (a transformed point);
	// ToVec3 alone is correct when w is 0 (a transformed direction).
	withW := Vec4{X: 2, Y: 4, Z: 6, W: 2}
	if got, want := withW.ToVec3DivW(), (Vec3{X: 1, Y: 2, Z: 3}); got != want {
		t.Errorf("ToVec3DivW: expected %v, got %v", want, got)
	}
}

func TestQuaternionToMat4MatchesIdentityForNoRotation(t *testing.T) {
	identity := Quaternion{W: 1}
	m := identity.ToMat4()

	v := Vec3{X: 1, Y: 2, Z: 3}
	if got := m.MulVec3(v); got != v {
		t.Errorf("identity quaternion: expected %v unchanged, got %v", v, got)
	}
}

func TestQuaternionToMat4RotatesNinetyDegreesAboutY(t *testing.T) {
	half := float32(math.Pi / 4) // 90 degree rotation, halved for the quaternion's sin/cos
	q := Quaternion{Y: float32(math.Sin(float64(half))), W: float32(math.Cos(float64(half)))}

	rotated := q.ToMat4().MulVec3(Vec3{X: 1})

	tolerance := float32(1e-4)
	if Abs32(rotated.X) > tolerance || Abs32(rotated.Y) > tolerance || Abs32(rotated.Z+1) > tolerance {
		t.Errorf("expected +X rotated 90deg about Y to land near -Z, got %v", rotated)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Identity[%d][%d]: expected %v, got %v", i, j, want, m[i][j])
			}
		}
	}
}

func TestMat4MulIdentityIsNoOp(t *testing.T) {
	result := Mat4Identity().Mul(Mat4Identity())
	if result != Mat4Identity() {
		t.Errorf("Identity*Identity: expected Identity, got %v", result)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := Vec3{X: 1, Y: 2, Z: 3}
	m := Mat4Translation(translation)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation row: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}

	point := Vec3{}.ToVec4(1)
	if got := point.MulMat(m).ToVec3(); got != translation {
		t.Errorf("Translation: expected origin to move to %v, got %v", translation, got)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)
	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}
}

func TestMat4LookAtTransformsEyeToOrigin(t *testing.T) {
	eye := Vec3{Z: 5}
	target := Vec3{}
	up := Vec3{Y: 1}

	m := Mat4LookAt(eye, target, up)
	result := m.MulVec(eye.ToVec4(1))

	tolerance := float32(1e-4)
	if Abs32(result.X) > tolerance || Abs32(result.Y) > tolerance || Abs32(result.Z) > tolerance {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := Vec3{X: 1, Y: 2, Z: 3}
	v2 := Vec3{X: 4, Y: 5, Z: 6}
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1, m2 := Mat4Identity(), Mat4Identity()
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
