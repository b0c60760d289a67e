package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// AABB is a bounding-volume row; an axis-aligned box in world space.
type AABB struct {
	Min, Max m.Point3
}

// BoundingSphere is a bounding-volume row; a sphere in world space.
type BoundingSphere struct {
	Center m.Point3
	Radius float32
}

// Plane is a shape row: the surface A*x + B*y + C*z = d (stored via a point
// on the plane + its normal so SurfaceNormal doesn't need re-derivation).
type Plane struct {
	Point  m.Point3
	Normal m.Vec3
}

// Sphere is a shape row.
type Sphere struct {
	Center m.Point3
	Radius float32
}

// Cuboid is a shape row: an axis-aligned box in object space.
type Cuboid struct {
	Min, Max m.Point3
}

// Torus is a shape row, centered at the object-space origin in the XZ plane.
type Torus struct {
	InnerRadius float32 // tube radius
	OuterRadius float32 // ring radius
}

// Triangle is a shape row carrying full per-vertex shading data so a hit can
// be interpolated without touching a separate mesh/index table.
type Triangle struct {
	A, B, C          m.Point3
	UVA, UVB, UVC    [2]float32
	NormalA, NormalB, NormalC m.Vec3
	TangentA, TangentB, TangentC m.Vec3
}

// MeshNode is one flattened BVH node of a TriangleMesh shape.
//
// For an internal node, LeftChildOrCount is the offset of the left child
// node within Scene.MeshNodes (the right child immediately follows it in the
// traversal sense via NextSibling, not by adjacency). For a leaf node,
// LeftChildOrCount is left at 0 and TriangleStart/TriangleCount index into
// Scene.MeshTriangleOffsets.
//
// NextSibling is the node to resume at when this node's subtree is
// exhausted (a miss, or after processing a leaf); -1 marks "no sibling",
// which the root of a given mesh's BVH carries and every node on its
// right edge inherits (§9 Open Question #3).
type MeshNode struct {
	Kind             MeshNodeKind
	Bounds           AABB
	NextSibling      int32
	LeftChildOrCount int32
	TriangleStart    int32
	TriangleCount    int32
}
