package loader

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func unitTriangleAt(offset int32, center m.Vec3) triangleRef {
	a := center.Add(m.Vec3{X: -0.1, Y: -0.1})
	b := center.Add(m.Vec3{X: 0.1, Y: -0.1})
	c := center.Add(m.Vec3{Y: 0.1})
	return triangleRef{
		tri:      scenetables.Triangle{A: a, B: b, C: c},
		offset:   offset,
		centroid: a.Add(b).Add(c).Mul(1.0 / 3.0),
		bounds:   scenetables.AABB{Min: minVec(minVec(a, b), c), Max: maxVec(maxVec(a, b), c)},
	}
}

func TestBuildMeshBVHSingleLeafHasNoSiblingAtRoot(t *testing.T) {
	var nodes []scenetables.MeshNode
	var offsets []int32
	tris := []triangleRef{unitTriangleAt(0, m.Vec3{})}

	root := buildMeshBVH(tris, &nodes, &offsets)

	if nodes[root].NextSibling != -1 {
		t.Errorf("expected root NextSibling -1, got %d", nodes[root].NextSibling)
	}
	if nodes[root].Kind != scenetables.MeshNodeLeaf {
		t.Errorf("expected a single-triangle build to produce one leaf")
	}
	if nodes[root].TriangleCount != 1 {
		t.Errorf("expected TriangleCount 1, got %d", nodes[root].TriangleCount)
	}
}

func TestBuildMeshBVHLinksSiblingsForTraversal(t *testing.T) {
	var nodes []scenetables.MeshNode
	var offsets []int32

	var tris []triangleRef
	for i := 0; i < 20; i++ {
		tris = append(tris, unitTriangleAt(int32(i), m.Vec3{X: float32(i) * 2}))
	}

	root := buildMeshBVH(tris, &nodes, &offsets)

	if nodes[root].Kind != scenetables.MeshNodeInternal {
		t.Fatalf("expected an internal root for 20 triangles split at leaf size %d", bvhLeafSize)
	}
	if nodes[root].NextSibling != -1 {
		t.Errorf("expected root NextSibling -1, got %d", nodes[root].NextSibling)
	}

	left := nodes[root].LeftChildOrCount
	if nodes[left].NextSibling == placeholderOffset {
		t.Errorf("left child's NextSibling was never fixed up")
	}
	if nodes[left].NextSibling < 0 {
		t.Errorf("left child's NextSibling should point at its sibling subtree, got %d", nodes[left].NextSibling)
	}

	// Every triangle offset fed in must appear exactly once in the leaf
	// indirection table.
	seen := make(map[int32]bool)
	for _, off := range offsets {
		seen[off] = true
	}
	if len(seen) != len(tris) {
		t.Errorf("expected %d distinct triangle offsets in the BVH leaves, got %d", len(tris), len(seen))
	}
}

func TestBuildMeshBVHTraversalVisitsEveryLeaf(t *testing.T) {
	var nodes []scenetables.MeshNode
	var offsets []int32

	var tris []triangleRef
	for i := 0; i < 9; i++ {
		tris = append(tris, unitTriangleAt(int32(i), m.Vec3{X: float32(i) * 3}))
	}
	root := buildMeshBVH(tris, &nodes, &offsets)

	// Walk the skip-pointer chain the way geometry.TriangleMeshIntersectionT
	// does, and make sure it terminates and visits every leaf triangle
	// exactly once.
	visited := make(map[int32]bool)
	node := root
	steps := 0
	for node != -1 {
		steps++
		if steps > 10*len(tris) {
			t.Fatalf("traversal did not terminate (possible NextSibling cycle)")
		}
		n := nodes[node]
		if n.Kind == scenetables.MeshNodeLeaf {
			for i := int32(0); i < n.TriangleCount; i++ {
				visited[offsets[n.TriangleStart+i]] = true
			}
			node = n.NextSibling
			continue
		}
		node = n.LeftChildOrCount
	}

	if len(visited) != len(tris) {
		t.Errorf("expected traversal to visit %d triangles, visited %d", len(tris), len(visited))
	}
}

func TestDefaultCameraFramesBounds(t *testing.T) {
	bounds := scenetables.AABB{Min: m.Point3{X: -1, Y: -1, Z: -1}, Max: m.Point3{X: 1, Y: 1, Z: 1}}
	cam := defaultCamera(bounds)

	if cam.Lens != scenetables.LensThin {
		t.Errorf("expected a thin-lens default camera")
	}
	if cam.Eye.Z >= bounds.Min.Z {
		t.Errorf("expected the default camera to sit behind the scene bounds, eye.Z=%v bounds.Min.Z=%v", cam.Eye.Z, bounds.Min.Z)
	}
	forward := bounds.Min.Add(bounds.Max).Mul(0.5).Sub(cam.Eye)
	if forward.Dot(cam.Basis.W) <= 0 {
		t.Errorf("expected the camera basis to face toward the bounds center")
	}
}

func TestAddDefaultLightPopulatesLightIndex(t *testing.T) {
	scene := &scenetables.Scene{}
	addDefaultLight(scene)

	if len(scene.LightIndex) != 1 {
		t.Fatalf("expected exactly one default light, got %d", len(scene.LightIndex))
	}
	ref := scene.LightIndex[0]
	if ref.Kind != scenetables.LightKindDirectional {
		t.Errorf("expected the default light to be directional")
	}
	light := scene.DirectionalLights[ref.Offset]
	if !light.Direction.IsFiniteVec() {
		t.Errorf("expected a finite default light direction")
	}
}

func TestTriangleTangentFallsBackOnDegenerateUVs(t *testing.T) {
	a := m.Point3{X: 0, Y: 0, Z: 0}
	b := m.Point3{X: 1, Y: 0, Z: 0}
	c := m.Point3{X: 0, Y: 1, Z: 0}
	n := m.Vec3{Z: 1}

	tangent := triangleTangent(a, b, c, [2]float32{0, 0}, [2]float32{0, 0}, [2]float32{0, 0}, n)

	if !tangent.IsFiniteVec() {
		t.Fatalf("expected a finite fallback tangent, got %v", tangent)
	}
	if length := tangent.Length(); length < 0.99 || length > 1.01 {
		t.Errorf("expected a unit-length fallback tangent, got length %v", length)
	}
}
