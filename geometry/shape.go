package geometry

import "github.com/dayflower-go/pathtracer/scenetables"

// Hit is the outcome of dispatching a shape test by kind: the object-space
// parametric distance, and (for TriangleMesh only) which triangle offset
// won, threaded through to ShapeIntersectionCompute without any shared
// mutable scratch.
type Hit struct {
	T         float32
	Aux       int32
	Found     bool
}

// ShapeIntersectionT dispatches an object-space shape test by kind. An
// unrecognized kind is a deterministic miss (SPEC_FULL.md §7).
func ShapeIntersectionT(scene *scenetables.Scene, kind scenetables.ShapeKind, offset int32, ray scenetables.Ray) Hit {
	switch kind {
	case scenetables.ShapeKindPlane:
		if t := PlaneIntersectionT(scene.PlaneAt(offset), ray); t > 0 {
			return Hit{T: t, Found: true}
		}
	case scenetables.ShapeKindSphere:
		if t := SphereIntersectionT(scene.SphereAt(offset), ray); t > 0 {
			return Hit{T: t, Found: true}
		}
	case scenetables.ShapeKindCuboid:
		if t := CuboidIntersectionT(scene.CuboidAt(offset), ray); t > 0 {
			return Hit{T: t, Found: true}
		}
	case scenetables.ShapeKindTorus:
		if t := TorusIntersectionT(scene.TorusAt(offset), ray); t > 0 {
			return Hit{T: t, Found: true}
		}
	case scenetables.ShapeKindTriangle:
		if t := TriangleIntersectionT(scene.TriangleAt(offset), ray); t > 0 {
			return Hit{T: t, Found: true}
		}
	case scenetables.ShapeKindTriangleMesh:
		if t, triOffset, ok := TriangleMeshIntersectionT(scene, offset, ray); ok {
			return Hit{T: t, Aux: triOffset, Found: true}
		}
	}
	return Hit{}
}

// ShapeIntersects is the boolean counterpart used by shadow/visibility
// rays, equivalent to ShapeIntersectionT(...).Found but named separately
// per spec.md §4.D's intersectionT/intersects split.
func ShapeIntersects(scene *scenetables.Scene, kind scenetables.ShapeKind, offset int32, ray scenetables.Ray) bool {
	return ShapeIntersectionT(scene, kind, offset, ray).Found
}

// ShapeIntersectionCompute dispatches the object-space intersection-record
// fill for the shape/hit found by ShapeIntersectionT.
func ShapeIntersectionCompute(scene *scenetables.Scene, kind scenetables.ShapeKind, offset int32, ray scenetables.Ray, hit Hit, primitive int32) scenetables.Intersection {
	switch kind {
	case scenetables.ShapeKindPlane:
		return PlaneIntersectionCompute(scene.PlaneAt(offset), ray, hit.T, primitive)
	case scenetables.ShapeKindSphere:
		return SphereIntersectionCompute(scene.SphereAt(offset), ray, hit.T, primitive)
	case scenetables.ShapeKindCuboid:
		return CuboidIntersectionCompute(scene.CuboidAt(offset), ray, hit.T, primitive)
	case scenetables.ShapeKindTorus:
		return TorusIntersectionCompute(scene.TorusAt(offset), ray, hit.T, primitive)
	case scenetables.ShapeKindTriangle:
		return TriangleIntersectionCompute(scene.TriangleAt(offset), ray, hit.T, primitive)
	case scenetables.ShapeKindTriangleMesh:
		return TriangleMeshIntersectionCompute(scene, hit.Aux, ray, hit.T, primitive)
	default:
		return scenetables.Intersection{Primitive: primitive}
	}
}

// BoundingVolumeGate reports whether ray should proceed into the primitive
// guarded by this bounding volume. BVKindInfinite always passes, per the
// InfiniteBoundingVolume-first ordering contract (SPEC_FULL.md §9,
// resolving spec.md's Open Question #2).
func BoundingVolumeGate(scene *scenetables.Scene, kind scenetables.BVKind, offset int32, ray scenetables.Ray) bool {
	switch kind {
	case scenetables.BVKindInfinite:
		return true
	case scenetables.BVKindAABB:
		return AABBContainsOrIntersects(scene.AABBAt(offset), ray)
	case scenetables.BVKindSphere:
		return BoundingSphereContainsOrIntersects(scene.BoundingSphereAt(offset), ray)
	default:
		return false
	}
}
