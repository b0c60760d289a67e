package geometry

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func TestSphereIntersectionT(t *testing.T) {
	s := scenetables.Sphere{Center: m.Vec3{}, Radius: 1}
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	hit := SphereIntersectionT(s, ray)
	if hit <= 0 {
		t.Fatalf("expected a hit, got t=%v", hit)
	}
	expected := float32(4)
	if absf(hit-expected) > 1e-4 {
		t.Errorf("SphereIntersectionT: expected %v, got %v", expected, hit)
	}
}

func TestSphereTangentRayMisses(t *testing.T) {
	s := scenetables.Sphere{Center: m.Vec3{}, Radius: 1}
	// Ray grazing the sphere: discriminant exactly 0 is excluded (§8).
	ray := scenetables.NewRay(m.Vec3{X: -5, Y: 1, Z: 0}, m.Vec3{X: 1, Y: 0, Z: 0})

	hit := SphereIntersectionT(s, ray)
	if hit != 0 {
		t.Errorf("expected tangent ray to miss, got t=%v", hit)
	}
}

func TestPlaneIntersectionT(t *testing.T) {
	p := scenetables.Plane{Point: m.Vec3{Y: 0}, Normal: m.Vec3{Y: 1}}
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 5, Z: 0}, m.Vec3{X: 0, Y: -1, Z: 0})

	hit := PlaneIntersectionT(p, ray)
	if absf(hit-5) > 1e-4 {
		t.Errorf("PlaneIntersectionT: expected 5, got %v", hit)
	}
}

func TestPlaneParallelRayMisses(t *testing.T) {
	p := scenetables.Plane{Point: m.Vec3{Y: 0}, Normal: m.Vec3{Y: 1}}
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 5, Z: 0}, m.Vec3{X: 1, Y: 0, Z: 0})

	if hit := PlaneIntersectionT(p, ray); hit != 0 {
		t.Errorf("expected parallel ray to miss, got t=%v", hit)
	}
}

func TestAABBIntersectionT(t *testing.T) {
	box := scenetables.AABB{Min: m.Vec3{X: -1, Y: -1, Z: -1}, Max: m.Vec3{X: 1, Y: 1, Z: 1}}
	ray := scenetables.NewRay(m.Vec3{X: -5, Y: 0, Z: 0}, m.Vec3{X: 1, Y: 0, Z: 0})

	hit := AABBIntersectionT(box, ray)
	if absf(hit-4) > 1e-4 {
		t.Errorf("AABBIntersectionT: expected 4, got %v", hit)
	}
}

func TestAABBContainsOrigin(t *testing.T) {
	box := scenetables.AABB{Min: m.Vec3{X: -1, Y: -1, Z: -1}, Max: m.Vec3{X: 1, Y: 1, Z: 1}}
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: 0}, m.Vec3{X: 1, Y: 0, Z: 0})

	if !AABBContainsOrIntersects(box, ray) {
		t.Errorf("expected origin-inside ray to pass the bounding-volume gate")
	}
}

func TestTriangleIntersectionT(t *testing.T) {
	tri := scenetables.Triangle{
		A: m.Vec3{X: -1, Y: -1, Z: 0},
		B: m.Vec3{X: 1, Y: -1, Z: 0},
		C: m.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	hit := TriangleIntersectionT(tri, ray)
	if absf(hit-5) > 1e-4 {
		t.Errorf("TriangleIntersectionT: expected 5, got %v", hit)
	}
}

func TestTriangleIntersectionMissesOutsideEdges(t *testing.T) {
	tri := scenetables.Triangle{
		A: m.Vec3{X: -1, Y: -1, Z: 0},
		B: m.Vec3{X: 1, Y: -1, Z: 0},
		C: m.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := scenetables.NewRay(m.Vec3{X: 5, Y: 5, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	if hit := TriangleIntersectionT(tri, ray); hit != 0 {
		t.Errorf("expected ray outside triangle edges to miss, got t=%v", hit)
	}
}

func TestTorusIntersectionT(t *testing.T) {
	tr := scenetables.Torus{InnerRadius: 0.25, OuterRadius: 1}
	// Ray straight down through the top of the tube at x=OuterRadius.
	ray := scenetables.NewRay(m.Vec3{X: 1, Y: 5, Z: 0}, m.Vec3{X: 0, Y: -1, Z: 0})

	hit := TorusIntersectionT(tr, ray)
	if hit <= 0 {
		t.Fatalf("expected a torus hit, got t=%v", hit)
	}
	expected := float32(5 - 0.25)
	if absf(hit-expected) > 1e-3 {
		t.Errorf("TorusIntersectionT: expected %v, got %v", expected, hit)
	}
}

func TestCuboidIntersectionT(t *testing.T) {
	c := scenetables.Cuboid{Min: m.Vec3{X: -1, Y: -1, Z: -1}, Max: m.Vec3{X: 1, Y: 1, Z: 1}}
	ray := scenetables.NewRay(m.Vec3{X: -5, Y: 0, Z: 0}, m.Vec3{X: 1, Y: 0, Z: 0})

	hit := CuboidIntersectionT(c, ray)
	if absf(hit-4) > 1e-4 {
		t.Errorf("CuboidIntersectionT: expected 4, got %v", hit)
	}

	result := CuboidIntersectionCompute(c, ray, hit, 0)
	if result.Geometric.W != (m.Vec3{X: -1}) {
		t.Errorf("expected -X face normal, got %v", result.Geometric.W)
	}
}

func TestBoundingVolumeGateInfiniteAlwaysPasses(t *testing.T) {
	scene := &scenetables.Scene{}
	ray := scenetables.NewRay(m.Vec3{X: 1000, Y: 1000, Z: 1000}, m.Vec3{X: 1, Y: 0, Z: 0})

	if !BoundingVolumeGate(scene, scenetables.BVKindInfinite, 0, ray) {
		t.Errorf("BVKindInfinite must always pass the gate")
	}
}
