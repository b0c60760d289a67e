package light

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func TestSamplePointLightInverseSquareFalloff(t *testing.T) {
	scene := &scenetables.Scene{
		PointLights: []scenetables.PointLight{{
			Position: m.Vec3{Y: 2},
			Emission: m.Vec3{X: 10, Y: 10, Z: 10},
		}},
	}
	ref := scenetables.LightRef{Kind: scenetables.LightKindPoint, Offset: 0}

	sample := SampleIncoming(scene, nil, ref, m.Vec3{})
	if !sample.Valid {
		t.Fatalf("expected a valid sample")
	}
	expected := float32(10) / 4 // distance = 2, radiance = emission/dist^2
	if absf(sample.Radiance.X-expected) > 1e-4 {
		t.Errorf("expected radiance %v, got %v", expected, sample.Radiance.X)
	}
}

func TestDeltaLightsHaveNoDensity(t *testing.T) {
	for _, kind := range []scenetables.LightKind{
		scenetables.LightKindPoint,
		scenetables.LightKindSpot,
		scenetables.LightKindDirectional,
	} {
		if !IsUsingDeltaDistribution(kind) {
			t.Errorf("expected kind %v to be a delta distribution", kind)
		}
	}
	for _, kind := range []scenetables.LightKind{
		scenetables.LightKindArea,
		scenetables.LightKindLDRImage,
		scenetables.LightKindPerezSky,
	} {
		if IsUsingDeltaDistribution(kind) {
			t.Errorf("expected kind %v to not be a delta distribution", kind)
		}
	}
}

func TestSampleDirectionalPointsOppositeLightDirection(t *testing.T) {
	scene := &scenetables.Scene{
		DirectionalLights: []scenetables.DirectionalLight{{
			Direction: m.Vec3{Y: -1},
			Emission:  m.Vec3{X: 1, Y: 1, Z: 1},
		}},
	}
	ref := scenetables.LightRef{Kind: scenetables.LightKindDirectional, Offset: 0}

	sample := SampleIncoming(scene, nil, ref, m.Vec3{})
	if sample.Incoming.Sub(m.Vec3{Y: 1}).Length() > 1e-5 {
		t.Errorf("expected incoming direction (0,1,0), got %v", sample.Incoming)
	}
}

func TestAreaLightSampleRespectsOneSidedness(t *testing.T) {
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{{Color: m.Vec3{X: 5, Y: 5, Z: 5}}},
		MatteMaterials: []scenetables.MatteMaterial{{
			Emission: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
		}},
		Planes: []scenetables.Plane{{Point: m.Vec3{}, Normal: m.Vec3{Y: 1}}},
		Transforms: []scenetables.TransformPair{
			{ObjectToWorld: m.Mat4Identity(), WorldToObject: m.Mat4Identity()},
		},
		Primitives: []scenetables.Primitive{{
			ShapeKind:      scenetables.ShapeKindPlane,
			MaterialKind:   scenetables.MaterialKindMatte,
			AreaLightKind:  scenetables.LightKindArea,
			Transform:      0,
		}},
		AreaLights: []scenetables.AreaLight{{Primitive: 0, TwoSided: false}},
	}
	rng := sampling.NewRNG(3, 0)

	below := sampleArea(scene, rng, scene.AreaLights[0], m.Vec3{Y: -5})
	if below.Valid {
		t.Errorf("expected a one-sided area light to reject a reference point behind it, got %+v", below)
	}
}
