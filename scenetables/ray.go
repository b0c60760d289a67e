package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// RayTMaxInfinity is the tMax sentinel for "no upper bound", matching the
// spec's f32::MAX convention.
const RayTMaxInfinity = float32(3.4028235e+38)

// RayTMinDefault is the default near-epsilon used to avoid self-intersection
// at a ray's origin.
const RayTMinDefault = float32(0.001)

// SelfIntersectBias offsets a spawned ray's origin along its direction to
// avoid immediately re-hitting the surface it left (§4.I step i).
const SelfIntersectBias = float32(1e-3)

// Ray is per-work-item scratch storage: overwritten by camera generation and
// by primitive-traversal object/world transforms. It is never shared between
// work-items.
type Ray struct {
	Origin    m.Point3
	Direction m.Vec3
	TMin      float32
	TMax      float32
}

// NewRay builds a ray with the default tMin/tMax bounds.
func NewRay(origin m.Point3, direction m.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: RayTMinDefault, TMax: RayTMaxInfinity}
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float32) m.Point3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Spawn returns a new ray leaving point p in direction dir, offset by
// SelfIntersectBias to avoid immediately re-hitting the originating surface.
func Spawn(p m.Point3, dir m.Vec3) Ray {
	return NewRay(p.Add(dir.Mul(SelfIntersectBias)), dir)
}

// Intersection is per-work-item scratch storage filled by a shape's
// intersectionCompute and, after traversal, transformed from object space
// into world space.
type Intersection struct {
	Geometric m.Basis // Bg: geometric orthonormal basis, W = geometric normal
	Shading   m.Basis // Bs: shading orthonormal basis, W = shading normal
	Primitive int32   // index into Scene.Primitives
	Point     m.Point3
	U, V      float32 // texture coordinates
}
