package geometry

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

const planeEpsilon = 1e-4
const triangleEpsilon = 1e-4

// PlaneIntersectionT: t = (A−O)·N / (D·N); miss when |D·N| is too small
// (the ray runs parallel to the plane).
func PlaneIntersectionT(p scenetables.Plane, ray scenetables.Ray) float32 {
	denom := ray.Direction.Dot(p.Normal)
	if absf(denom) < planeEpsilon {
		return 0
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if t > ray.TMin && t < ray.TMax {
		return t
	}
	return 0
}

// PlaneIntersectionCompute fills the object-space intersection record for a
// plane hit at parameter t.
func PlaneIntersectionCompute(p scenetables.Plane, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	point := ray.At(t)
	basis := basisFromNormal(p.Normal)
	local := point.Sub(p.Point)
	return scenetables.Intersection{
		Geometric: basis,
		Shading:   basis,
		Primitive: primitive,
		Point:     point,
		U:         local.Dot(basis.U),
		V:         local.Dot(basis.V),
	}
}

// SphereIntersectionT is the classic quadratic solve on
// ‖O+tD−C‖² = r².
func SphereIntersectionT(s scenetables.Sphere, ray scenetables.Ray) float32 {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	return m.SolveQuadratic(a, b, c, ray.TMin, ray.TMax)
}

// SphereIntersectionCompute fills the object-space record for a sphere hit,
// with the same equirectangular (u,v) mapping that texture.SampleEquirect
// applies for environment lights.
func SphereIntersectionCompute(s scenetables.Sphere, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	point := ray.At(t)
	normal := point.Sub(s.Center).Mul(1 / s.Radius)
	basis := basisFromNormal(normal)

	u := 0.5 + fastAtan2(normal.Z, normal.X)/(2*piF)
	v := 0.5 - fastAsin(clampf(normal.Y, -1, 1))/piF

	return scenetables.Intersection{
		Geometric: basis,
		Shading:   basis,
		Primitive: primitive,
		Point:     point,
		U:         u,
		V:         v,
	}
}

// CuboidIntersectionT is an object-space slab test over an axis-aligned box.
func CuboidIntersectionT(c scenetables.Cuboid, ray scenetables.Ray) float32 {
	invX, invY, invZ := 1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z

	t1, t2 := (c.Min.X-ray.Origin.X)*invX, (c.Max.X-ray.Origin.X)*invX
	t3, t4 := (c.Min.Y-ray.Origin.Y)*invY, (c.Max.Y-ray.Origin.Y)*invY
	t5, t6 := (c.Min.Z-ray.Origin.Z)*invZ, (c.Max.Z-ray.Origin.Z)*invZ

	tmin := max32(max32(min32(t1, t2), min32(t3, t4)), min32(t5, t6))
	tmax := min32(min32(max32(t1, t2), max32(t3, t4)), max32(t5, t6))

	if tmax < 0 || tmin > tmax {
		return 0
	}
	if tmin > ray.TMin && tmin < ray.TMax {
		return tmin
	}
	if tmax > ray.TMin && tmax < ray.TMax {
		return tmax
	}
	return 0
}

// CuboidIntersectionCompute determines which of the six faces was struck so
// it can report the corresponding axis-aligned normal.
func CuboidIntersectionCompute(c scenetables.Cuboid, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	point := ray.At(t)
	normal := cuboidFaceNormal(c, point)
	basis := basisFromNormal(normal)

	return scenetables.Intersection{
		Geometric: basis,
		Shading:   basis,
		Primitive: primitive,
		Point:     point,
		U:         basis.U.Dot(point),
		V:         basis.V.Dot(point),
	}
}

func cuboidFaceNormal(c scenetables.Cuboid, p m.Point3) m.Vec3 {
	const eps = 1e-3
	switch {
	case absf(p.X-c.Min.X) < eps:
		return m.Vec3{X: -1}
	case absf(p.X-c.Max.X) < eps:
		return m.Vec3{X: 1}
	case absf(p.Y-c.Min.Y) < eps:
		return m.Vec3{Y: -1}
	case absf(p.Y-c.Max.Y) < eps:
		return m.Vec3{Y: 1}
	case absf(p.Z-c.Min.Z) < eps:
		return m.Vec3{Z: -1}
	default:
		return m.Vec3{Z: 1}
	}
}

// TorusIntersectionT solves the implicit torus quartic
// F(P) = (P·P + R² − r²)² − 4R²(Px² + Pz²) = 0 for the nearest root in the
// ray's object-space interval, where R is the ring radius (OuterRadius) and
// r is the tube radius (InnerRadius), the ring lying in the XZ plane.
func TorusIntersectionT(tr scenetables.Torus, ray scenetables.Ray) float32 {
	R, r := tr.OuterRadius, tr.InnerRadius
	O, D := ray.Origin, ray.Direction

	A := D.Dot(D)
	B := 2 * O.Dot(D)
	C := O.Dot(O) + R*R - r*r

	A2 := D.X*D.X + D.Z*D.Z
	B2 := 2 * (O.X*D.X + O.Z*D.Z)
	C2 := O.X*O.X + O.Z*O.Z

	a := A * A
	b := 2 * A * B
	c := B*B + 2*A*C - 4*R*R*A2
	d := 2*B*C - 4*R*R*B2
	e := C*C - 4*R*R*C2

	return m.SolveQuartic(a, b, c, d, e, ray.TMin, ray.TMax)
}

// TorusIntersectionCompute fills the object-space record for a torus hit,
// with the normal taken from the gradient of the implicit surface used in
// TorusIntersectionT.
func TorusIntersectionCompute(tr scenetables.Torus, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	point := ray.At(t)
	R := tr.OuterRadius

	g := point.Dot(point) + R*R - tr.InnerRadius*tr.InnerRadius
	normal := m.Vec3{
		X: 4 * point.X * (g - 2*R*R),
		Y: 4 * point.Y * g,
		Z: 4 * point.Z * (g - 2*R*R),
	}.Normalize()
	basis := basisFromNormal(normal)

	ringAngle := fastAtan2(point.Z, point.X)
	tubeRadius := sqrtf32(point.X*point.X+point.Z*point.Z) - R
	tubeAngle := fastAtan2(point.Y, tubeRadius)

	return scenetables.Intersection{
		Geometric: basis,
		Shading:   basis,
		Primitive: primitive,
		Point:     point,
		U:         0.5 + ringAngle/(2*piF),
		V:         0.5 + tubeAngle/(2*piF),
	}
}

// TriangleIntersectionT is Möller–Trumbore, grounded on the teacher's
// editor/raycast.go mollerTrumbore, generalized to the barycentric clamp
// epsilon spec.md §4.D calls for.
func TriangleIntersectionT(tri scenetables.Triangle, ray scenetables.Ray) float32 {
	t, _, _, ok := triangleHit(tri, ray)
	if !ok {
		return 0
	}
	return t
}

func triangleHit(tri scenetables.Triangle, ray scenetables.Ray) (t, u, v float32, ok bool) {
	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if absf(a) < triangleEpsilon {
		return 0, 0, 0, false
	}

	f := 1 / a
	s := ray.Origin.Sub(tri.A)
	u = f * s.Dot(h)
	if u < -triangleEpsilon || u > 1+triangleEpsilon {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < -triangleEpsilon || u+v > 1+triangleEpsilon {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t <= ray.TMin || t >= ray.TMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// TriangleIntersectionCompute interpolates the per-vertex shading data
// (UV, shading normal, tangent) at the barycentric coordinates of the hit.
func TriangleIntersectionCompute(tri scenetables.Triangle, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	_, u, v, _ := triangleHit(tri, ray)
	w := 1 - u - v

	point := ray.At(t)
	geomNormal := tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
	geometric := basisFromNormal(geomNormal)

	shadingNormal := tri.NormalA.Mul(w).Add(tri.NormalB.Mul(u)).Add(tri.NormalC.Mul(v)).Normalize()
	shadingTangent := tri.TangentA.Mul(w).Add(tri.TangentB.Mul(u)).Add(tri.TangentC.Mul(v))
	shadingTangent = orthogonalize(shadingTangent, shadingNormal)
	shadingV := shadingNormal.Cross(shadingTangent).Normalize()
	shading := m.Basis{U: shadingTangent, V: shadingV, W: shadingNormal}

	uvX := tri.UVA[0]*w + tri.UVB[0]*u + tri.UVC[0]*v
	uvY := tri.UVA[1]*w + tri.UVB[1]*u + tri.UVC[1]*v

	return scenetables.Intersection{
		Geometric: geometric,
		Shading:   shading,
		Primitive: primitive,
		Point:     point,
		U:         uvX,
		V:         uvY,
	}
}

func orthogonalize(t, n m.Vec3) m.Vec3 {
	proj := t.Sub(n.Mul(t.Dot(n)))
	if proj.LengthSqr() < 1e-12 {
		return basisFromNormal(n).U
	}
	return proj.Normalize()
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
