// Package geometry implements the bounding-volume and shape intersection
// routines the scene tables describe: ray vs AABB/BoundingSphere as the
// broad-phase gate, and ray vs Plane/Sphere/Cuboid/Torus/Triangle/
// TriangleMesh as the narrow-phase per-shape test.
//
// Every routine here is a pure function of (scene, offset, ray) — none of
// them allocate or retain state across calls, matching the packed,
// read-only scene-table contract.
package geometry

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// AABBIntersectionT is the slab test, grounded on the broad-phase AABB test
// in the teacher's editor/raycast.go (rayAABBIntersect), generalized to
// report 0 on a miss (the packed-table convention) instead of a bool.
func AABBIntersectionT(b scenetables.AABB, ray scenetables.Ray) float32 {
	tmin, tmax, hit := aabbSlab(b, ray)
	if !hit {
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

// AABBContainsOrIntersects reports whether the ray origin lies inside b, or
// the ray intersects it, so a camera enclosed by its own bounding volume
// is never incorrectly culled.
func AABBContainsOrIntersects(b scenetables.AABB, ray scenetables.Ray) bool {
	if originInsideAABB(b, ray.Origin) {
		return true
	}
	_, _, hit := aabbSlab(b, ray)
	return hit
}

func originInsideAABB(b scenetables.AABB, p m.Point3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func aabbSlab(b scenetables.AABB, ray scenetables.Ray) (tmin, tmax float32, hit bool) {
	invX, invY, invZ := 1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z

	t1, t2 := (b.Min.X-ray.Origin.X)*invX, (b.Max.X-ray.Origin.X)*invX
	t3, t4 := (b.Min.Y-ray.Origin.Y)*invY, (b.Max.Y-ray.Origin.Y)*invY
	t5, t6 := (b.Min.Z-ray.Origin.Z)*invZ, (b.Max.Z-ray.Origin.Z)*invZ

	tmin = max32(max32(min32(t1, t2), min32(t3, t4)), min32(t5, t6))
	tmax = min32(min32(max32(t1, t2), max32(t3, t4)), max32(t5, t6))

	if tmax < 0 || tmin > tmax {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// BoundingSphereIntersectionT is the quadratic broad-phase test against a
// world-space bounding sphere.
func BoundingSphereIntersectionT(b scenetables.BoundingSphere, ray scenetables.Ray) float32 {
	oc := ray.Origin.Sub(b.Center)
	a := ray.Direction.Dot(ray.Direction)
	bb := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - b.Radius*b.Radius
	return m.SolveQuadratic(a, bb, c, ray.TMin, ray.TMax)
}

// BoundingSphereContainsOrIntersects mirrors AABBContainsOrIntersects for a
// spherical bounding volume.
func BoundingSphereContainsOrIntersects(b scenetables.BoundingSphere, ray scenetables.Ray) bool {
	if ray.Origin.Sub(b.Center).LengthSqr() <= b.Radius*b.Radius {
		return true
	}
	return BoundingSphereIntersectionT(b, ray) > 0
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
