package geometry

import "github.com/dayflower-go/pathtracer/scenetables"

// TriangleMeshIntersectionT walks the flattened BVH starting at rootOffset
// within scene.MeshNodes, grounded on the broad/narrow-phase split in the
// teacher's editor/raycast.go RaycastScene. Unlike that routine (which
// writes its winning triangle into a HitResult field), this returns the
// winning triangle offset directly alongside t, since this package keeps
// no mutable scratch between calls (SPEC_FULL.md §3's Go-representation
// note).
func TriangleMeshIntersectionT(scene *scenetables.Scene, rootOffset int32, ray scenetables.Ray) (t float32, triangleOffset int32, hit bool) {
	best := ray.TMax
	bestTri := int32(-1)

	node := rootOffset
	for node != -1 {
		n := scene.MeshNodes[node]

		bvT := AABBIntersectionT(n.Bounds, scenetables.Ray{
			Origin: ray.Origin, Direction: ray.Direction, TMin: ray.TMin, TMax: best,
		})
		inside := AABBContainsOrIntersects(n.Bounds, ray)
		if bvT == 0 && !inside {
			node = n.NextSibling
			continue
		}

		if n.Kind == scenetables.MeshNodeLeaf {
			for i := int32(0); i < n.TriangleCount; i++ {
				triIdx := scene.MeshTriangleOffsets[n.TriangleStart+i]
				tri := scene.Triangles[triIdx]
				tt := TriangleIntersectionT(tri, scenetables.Ray{
					Origin: ray.Origin, Direction: ray.Direction, TMin: ray.TMin, TMax: best,
				})
				if tt > 0 && tt < best {
					best = tt
					bestTri = triIdx
				}
			}
			node = n.NextSibling
			continue
		}

		// Internal node: descend into the left child; NextSibling on the
		// child chain resumes traversal at the right subtree (or this
		// node's own NextSibling) once the left subtree is exhausted.
		node = n.LeftChildOrCount
	}

	if bestTri < 0 {
		return 0, 0, false
	}
	return best, bestTri, true
}

// TriangleMeshIntersectionCompute re-enters the triangle found by
// TriangleMeshIntersectionT to fill the object-space intersection record.
func TriangleMeshIntersectionCompute(scene *scenetables.Scene, triangleOffset int32, ray scenetables.Ray, t float32, primitive int32) scenetables.Intersection {
	return TriangleIntersectionCompute(scene.Triangles[triangleOffset], ray, t, primitive)
}
