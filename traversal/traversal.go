// Package traversal implements the primitive-traversal routines that walk
// the whole primitive table for a ray: traceClosest for shading rays,
// traceAny for shadow/visibility rays. It is the layer between the
// integrator and the per-shape tests in package geometry, grounded on the
// broad-phase/narrow-phase split in the teacher's editor/raycast.go
// RaycastScene.
package traversal

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/geometry"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// worldToObject transforms a world-space ray into object space. The
// direction is deliberately left un-normalized: with D carried at its
// transformed (possibly rescaled) length, the same parametric t solves
// both the object-space and world-space equations of the ray, so tMin/tMax
// need no rescaling (spec.md §4.E step 2c) and every geometry/ routine
// already treats D's length as arbitrary (it never assumes unit length).
func worldToObject(worldToObj m.Mat4, ray scenetables.Ray) scenetables.Ray {
	return scenetables.Ray{
		Origin:    worldToObj.MulVec3(ray.Origin),
		Direction: worldToObj.MulDir3(ray.Direction),
		TMin:      ray.TMin,
		TMax:      ray.TMax,
	}
}

// TraceClosest finds the nearest primitive the ray hits, if any, and
// returns its world-space intersection record.
func TraceClosest(scene *scenetables.Scene, ray scenetables.Ray) (scenetables.Intersection, int32, bool) {
	winner := int32(-1)
	var winningKind scenetables.ShapeKind
	var winningOffset int32
	var winningHit geometry.Hit

	tMax := ray.TMax

	for i := range scene.Primitives {
		prim := &scene.Primitives[i]

		gateRay := scenetables.Ray{Origin: ray.Origin, Direction: ray.Direction, TMin: ray.TMin, TMax: tMax}
		if !geometry.BoundingVolumeGate(scene, prim.BoundingVolumeKind, prim.BoundingVolumeOffset, gateRay) {
			continue
		}

		tp := scene.TransformAt(prim.Transform)
		objRay := worldToObject(tp.WorldToObject, gateRay)

		hit := geometry.ShapeIntersectionT(scene, prim.ShapeKind, prim.ShapeOffset, objRay)
		if !hit.Found {
			continue
		}

		tMax = hit.T
		winner = int32(i)
		winningKind = prim.ShapeKind
		winningOffset = prim.ShapeOffset
		winningHit = hit
	}

	if winner < 0 {
		return scenetables.Intersection{}, -1, false
	}

	prim := &scene.Primitives[winner]
	tp := scene.TransformAt(prim.Transform)
	objRay := worldToObject(tp.WorldToObject, scenetables.Ray{Origin: ray.Origin, Direction: ray.Direction, TMin: ray.TMin, TMax: tMax})

	isect := geometry.ShapeIntersectionCompute(scene, winningKind, winningOffset, objRay, winningHit, winner)
	return toWorldSpace(isect, tp), winner, true
}

// TraceAny reports whether the ray hits any primitive at all, short
// circuiting at the first one found; used for shadow/visibility tests
// where only occlusion, not the hit record, matters.
func TraceAny(scene *scenetables.Scene, ray scenetables.Ray) bool {
	for i := range scene.Primitives {
		prim := &scene.Primitives[i]

		if !geometry.BoundingVolumeGate(scene, prim.BoundingVolumeKind, prim.BoundingVolumeOffset, ray) {
			continue
		}

		tp := scene.TransformAt(prim.Transform)
		objRay := worldToObject(tp.WorldToObject, ray)

		if geometry.ShapeIntersects(scene, prim.ShapeKind, prim.ShapeOffset, objRay) {
			return true
		}
	}
	return false
}

// toWorldSpace transforms an object-space intersection record into world
// space: the hit point by the object→world matrix, and every basis'
// normal (W) by the inverse-transpose (transpose of world→object),
// re-orthonormalizing U against the transformed normal since a non-uniform
// scale does not preserve orthogonality between U and W.
func toWorldSpace(isect scenetables.Intersection, tp scenetables.TransformPair) scenetables.Intersection {
	invTranspose := tp.WorldToObject.Transpose()

	isect.Point = tp.ObjectToWorld.MulVec3(isect.Point)
	isect.Geometric = transformBasis(isect.Geometric, tp.ObjectToWorld, invTranspose)
	isect.Shading = transformBasis(isect.Shading, tp.ObjectToWorld, invTranspose)
	return isect
}

func transformBasis(b m.Basis, objToWorld, invTranspose m.Mat4) m.Basis {
	w := invTranspose.MulDir3(b.W).Normalize()
	u := objToWorld.MulDir3(b.U)
	u = u.Sub(w.Mul(u.Dot(w)))
	if u.LengthSqr() < 1e-12 {
		u = arbitraryPerpendicular(w)
	} else {
		u = u.Normalize()
	}
	v := w.Cross(u).Normalize()
	return m.Basis{U: u, V: v, W: w}
}

func arbitraryPerpendicular(w m.Vec3) m.Vec3 {
	return m.NewBasis(w).U
}
