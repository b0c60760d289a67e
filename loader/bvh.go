package loader

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// triangleRef is a build-time handle: the triangle's object-space shape
// data plus its absolute offset in the scene's growing Triangles table.
type triangleRef struct {
	tri      scenetables.Triangle
	offset   int32
	centroid m.Vec3
	bounds   scenetables.AABB
}

// buildMeshBVH recursively median-splits a flat triangle list into the
// flattened skip-pointer BVH layout geometry.TriangleMeshIntersectionT
// expects: an internal node's LeftChildOrCount names its left child's node
// offset; a left child's NextSibling is its right sibling's offset; a
// right child's NextSibling is inherited from the parent (§4.D/§9 Open
// Question #3). Grounded on the median-split construction style common to
// reference BVH builders (no surface-area heuristic — this is a
// non-authoritative reference compiler, not a production one).
//
// triangleOffsets accumulates the leaf indirection table
// (Scene.MeshTriangleOffsets); nodes accumulates Scene.MeshNodes. Returns
// the offset of the subtree's root node.
func buildMeshBVH(tris []triangleRef, nodes *[]scenetables.MeshNode, triangleOffsets *[]int32) int32 {
	return buildMeshBVHNode(tris, nodes, triangleOffsets, -1)
}

const bvhLeafSize = 4

func buildMeshBVHNode(tris []triangleRef, nodes *[]scenetables.MeshNode, triangleOffsets *[]int32, nextSibling int32) int32 {
	bounds := boundsOf(tris)

	if len(tris) <= bvhLeafSize {
		start := int32(len(*triangleOffsets))
		for _, t := range tris {
			*triangleOffsets = append(*triangleOffsets, t.offset)
		}
		idx := int32(len(*nodes))
		*nodes = append(*nodes, scenetables.MeshNode{
			Kind:          scenetables.MeshNodeLeaf,
			Bounds:        bounds,
			NextSibling:   nextSibling,
			TriangleStart: start,
			TriangleCount: int32(len(tris)),
		})
		return idx
	}

	axis := widestAxis(bounds)
	sorted := append([]triangleRef(nil), tris...)
	sortByCentroidAxis(sorted, axis)
	mid := len(sorted) / 2

	// Reserve this node's slot before recursing so child offsets can be
	// computed, then fill it in once both children are known.
	idx := int32(len(*nodes))
	*nodes = append(*nodes, scenetables.MeshNode{Kind: scenetables.MeshNodeInternal, Bounds: bounds, NextSibling: nextSibling})

	// The right subtree inherits this node's NextSibling; the left
	// subtree's NextSibling is the right subtree's root offset, so it's
	// built after the right subtree's offset is known.
	rightOffset := placeholderOffset
	leftOffset := buildMeshBVHNode(sorted[:mid], nodes, triangleOffsets, rightOffset)
	rightOffset = buildMeshBVHNode(sorted[mid:], nodes, triangleOffsets, nextSibling)
	fixNextSibling(nodes, leftOffset, rightOffset)

	(*nodes)[idx].LeftChildOrCount = leftOffset
	return idx
}

// placeholderOffset marks a left child's NextSibling as "not yet known";
// the left child passes it on to the right edge of its own subtree. Every
// internal node's build call patches all of those nodes right after its
// right subtree's offset becomes known: the left subtree occupies exactly
// the node range [leftChild, rightSibling), since nodes are appended in
// preorder.
const placeholderOffset = int32(-2)

func fixNextSibling(nodes *[]scenetables.MeshNode, leftChild, rightSibling int32) {
	for i := leftChild; i < rightSibling; i++ {
		if (*nodes)[i].NextSibling == placeholderOffset {
			(*nodes)[i].NextSibling = rightSibling
		}
	}
}

func boundsOf(tris []triangleRef) scenetables.AABB {
	if len(tris) == 0 {
		return scenetables.AABB{}
	}
	b := tris[0].bounds
	for _, t := range tris[1:] {
		b.Min = minVec(b.Min, t.bounds.Min)
		b.Max = maxVec(b.Max, t.bounds.Max)
	}
	return b
}

func widestAxis(b scenetables.AABB) int {
	ext := b.Max.Sub(b.Min)
	axis := 0
	widest := ext.X
	if ext.Y > widest {
		widest = ext.Y
		axis = 1
	}
	if ext.Z > widest {
		axis = 2
	}
	return axis
}

func sortByCentroidAxis(tris []triangleRef, axis int) {
	// Simple insertion sort: reference builder, mesh sizes from test/demo
	// assets, not a production-scale sort.
	key := func(t triangleRef) float32 {
		switch axis {
		case 0:
			return t.centroid.X
		case 1:
			return t.centroid.Y
		default:
			return t.centroid.Z
		}
	}
	for i := 1; i < len(tris); i++ {
		for j := i; j > 0 && key(tris[j]) < key(tris[j-1]); j-- {
			tris[j], tris[j-1] = tris[j-1], tris[j]
		}
	}
}

func minVec(a, b m.Vec3) m.Vec3 {
	return m.Vec3{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
}

func maxVec(a, b m.Vec3) m.Vec3 {
	return m.Vec3{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
