package integrator

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// singleMatteSphereScene is a sphere with a constant grey diffuse material,
// lit by one point light and nothing else: there is no environment light,
// so every direction that escapes the scene returns black.
func singleMatteSphereScene() *scenetables.Scene {
	identity := m.Mat4Identity()
	return &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{
			{Color: m.Vec3{X: 0.8, Y: 0.8, Z: 0.8}}, // 0: diffuse reflectance
			{Color: m.Vec3{}},                       // 1: no emission
		},
		MatteMaterials: []scenetables.MatteMaterial{{
			Emission:           scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 1},
			DiffuseReflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
		}},
		Transforms: []scenetables.TransformPair{
			{ObjectToWorld: identity, WorldToObject: identity},
		},
		Spheres: []scenetables.Sphere{
			{Center: m.Vec3{}, Radius: 1},
		},
		Primitives: []scenetables.Primitive{{
			BoundingVolumeKind: scenetables.BVKindInfinite,
			ShapeKind:          scenetables.ShapeKindSphere,
			ShapeOffset:        0,
			MaterialKind:       scenetables.MaterialKindMatte,
			Transform:          0,
		}},
		PointLights: []scenetables.PointLight{{
			Position: m.Vec3{X: 0, Y: 0, Z: -5},
			Emission: m.Vec3{X: 50, Y: 50, Z: 50},
		}},
		LightIndex: []scenetables.LightRef{
			{Kind: scenetables.LightKindPoint, Offset: 0},
		},
	}
}

func TestPathTraceReturnsFiniteNonNegativeRadiance(t *testing.T) {
	scene := singleMatteSphereScene()
	rng := sampling.NewRNG(1, 0)
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	L := PathTrace(scene, rng, ray, DefaultPathTraceParams())
	if !isFiniteVec(L) {
		t.Fatalf("expected finite radiance, got %v", L)
	}
	if L.X < 0 || L.Y < 0 || L.Z < 0 {
		t.Errorf("expected non-negative radiance, got %v", L)
	}
	if L.X == 0 && L.Y == 0 && L.Z == 0 {
		t.Errorf("expected some direct lighting contribution, got black")
	}
}

func TestPathTraceMissReturnsBlackWithNoEnvironmentLight(t *testing.T) {
	scene := singleMatteSphereScene()
	rng := sampling.NewRNG(2, 0)
	ray := scenetables.NewRay(m.Vec3{X: 10, Y: 10, Z: -10}, m.Vec3{X: 0, Y: 0, Z: 1})

	L := PathTrace(scene, rng, ray, DefaultPathTraceParams())
	if L.X != 0 || L.Y != 0 || L.Z != 0 {
		t.Errorf("expected black for a ray that misses everything, got %v", L)
	}
}

func TestGenerateCameraRayThinLensCenterPixelPointsForward(t *testing.T) {
	cam := scenetables.Camera{
		FovX: 0.9, FovY: 0.9,
		Lens:  scenetables.LensThin,
		Basis: m.NewBasis(m.Vec3{Z: 1}),
		Eye:   m.Vec3{},
		ResX:  64, ResY: 64,
	}
	rng := sampling.NewRNG(0, 0)
	ray, ok := GenerateCameraRay(cam, 32, 32, rng)
	if !ok {
		t.Fatalf("expected the thin-lens camera to never reject a sample")
	}
	if ray.Direction.Sub(m.Vec3{Z: 1}).Length() > 1e-3 {
		t.Errorf("expected the center pixel to look straight down +Z, got %v", ray.Direction)
	}
}

func TestGenerateCameraRayFisheyeRejectsOutsideUnitDisk(t *testing.T) {
	cam := scenetables.Camera{
		FovX: 3.14, FovY: 3.14,
		Lens:  scenetables.LensFisheye,
		Basis: m.NewBasis(m.Vec3{Z: 1}),
		ResX:  10, ResY: 10,
	}
	rng := sampling.NewRNG(0, 0)
	_, ok := GenerateCameraRay(cam, 0, 0, rng)
	if ok {
		t.Errorf("expected a corner pixel to fall outside the fisheye's unit disk")
	}
}

func TestAmbientOcclusionFullyVisibleReturnsNearOne(t *testing.T) {
	identity := m.Mat4Identity()
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{{Color: m.Vec3{X: 1, Y: 1, Z: 1}}},
		MatteMaterials: []scenetables.MatteMaterial{{
			DiffuseReflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
		}},
		Transforms: []scenetables.TransformPair{{ObjectToWorld: identity, WorldToObject: identity}},
		Planes:     []scenetables.Plane{{Point: m.Vec3{}, Normal: m.Vec3{Y: 1}}},
		Primitives: []scenetables.Primitive{{
			BoundingVolumeKind: scenetables.BVKindInfinite,
			ShapeKind:          scenetables.ShapeKindPlane,
			MaterialKind:       scenetables.MaterialKindMatte,
			Transform:          0,
		}},
	}
	rng := sampling.NewRNG(5, 0)
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 5, Z: 0}, m.Vec3{X: 0, Y: -1, Z: 0})

	ao := AmbientOcclusion(scene, rng, ray, AmbientOcclusionParams{MaxDistance: 10, Samples: 64})
	if ao.X < 0.9 {
		t.Errorf("expected an unoccluded plane to return AO near 1, got %v", ao)
	}
}

func TestDepthCameraReturnsNormalizedDistance(t *testing.T) {
	scene := singleMatteSphereScene()
	ray := scenetables.NewRay(m.Vec3{X: 0, Y: 0, Z: -5}, m.Vec3{X: 0, Y: 0, Z: 1})

	d := DepthCamera(scene, ray, 10)
	if d.X <= 0 || d.X > 1 {
		t.Errorf("expected a normalized in-range depth, got %v", d.X)
	}
}
