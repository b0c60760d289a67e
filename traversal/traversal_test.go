package traversal

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func singleSphereScene() *scenetables.Scene {
	identity := m.Mat4Identity()
	return &scenetables.Scene{
		Primitives: []scenetables.Primitive{
			{
				BoundingVolumeKind: scenetables.BVKindInfinite,
				ShapeKind:          scenetables.ShapeKindSphere,
				ShapeOffset:        0,
				MaterialKind:       scenetables.MaterialKindMatte,
				Transform:          0,
			},
		},
		Transforms: []scenetables.TransformPair{
			{ObjectToWorld: identity, WorldToObject: identity},
		},
		Spheres: []scenetables.Sphere{
			{Center: m.Vec3{}, Radius: 1},
		},
	}
}

func TestTraceClosestHitsSphere(t *testing.T) {
	scene := singleSphereScene()
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	isect, primitive, hit := TraceClosest(scene, ray)
	if !hit {
		t.Fatalf("expected a hit")
	}
	if primitive != 0 {
		t.Errorf("expected primitive 0, got %d", primitive)
	}
	expected := m.Vec3{X: 0, Y: 0, Z: -1}
	if isect.Point.Sub(expected).Length() > 1e-3 {
		t.Errorf("expected hit point near %v, got %v", expected, isect.Point)
	}
	if isect.Geometric.W.Sub(m.Vec3{X: 0, Y: 0, Z: -1}).Length() > 1e-3 {
		t.Errorf("expected outward normal near (0,0,-1), got %v", isect.Geometric.W)
	}
}

func TestTraceClosestMisses(t *testing.T) {
	scene := singleSphereScene()
	ray := scenetables.NewRay(m.Vec3{X: 10, Y: 10, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	_, _, hit := TraceClosest(scene, ray)
	if hit {
		t.Errorf("expected a miss")
	}
}

func TestTraceAnyShadowRay(t *testing.T) {
	scene := singleSphereScene()
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	if !TraceAny(scene, ray) {
		t.Errorf("expected TraceAny to report an occlusion")
	}
}

func TestWorldToObjectTransform(t *testing.T) {
	translate := m.Mat4Translation(m.Vec3{X: 5, Y: 0, Z: 0})
	inv := translate.Inverse()

	ray := scenetables.NewRay(m.Vec3{X: 5, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})
	objRay := worldToObject(inv, ray)

	if objRay.Origin.Sub(m.Vec3{X: 0, Y: 0, Z: -5}).Length() > 1e-4 {
		t.Errorf("expected object-space origin near (0,0,-5), got %v", objRay.Origin)
	}
}
