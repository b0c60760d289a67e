package material

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func sceneWithMatte(color m.Vec3) *scenetables.Scene {
	return &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{{Color: color}},
		MatteMaterials: []scenetables.MatteMaterial{{
			DiffuseReflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
		}},
	}
}

func TestSampleMatteStaysInSameHemisphere(t *testing.T) {
	scene := sceneWithMatte(m.Vec3{X: 0.8, Y: 0.8, Z: 0.8})
	rng := sampling.NewRNG(1, 0)
	outgoing := m.Vec3{Z: 1}

	result := SampleDistributionFunction(scene, rng, scenetables.MaterialKindMatte, 0, outgoing, m.Vec3{}, m.Vec3{Z: 1}, 0, 0)
	if !result.Valid {
		t.Fatalf("expected a valid sample")
	}
	if result.Incoming.Z <= 0 {
		t.Errorf("expected the sampled direction to stay on the outgoing side, got z=%v", result.Incoming.Z)
	}
	if result.Weight.X <= 0 || result.Weight.X > 1 {
		t.Errorf("expected diffuse weight in (0,1], got %v", result.Weight.X)
	}
}

func TestMirrorSampleIsSpecularReflection(t *testing.T) {
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{{Color: m.Vec3{X: 1, Y: 1, Z: 1}}},
		MirrorMaterials: []scenetables.MirrorMaterial{{
			Reflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
		}},
	}
	outgoing := m.Vec3{X: 0.3, Y: 0, Z: 0.95}.Normalize()

	result := SampleDistributionFunction(scene, nil, scenetables.MaterialKindMirror, 0, outgoing, m.Vec3{}, m.Vec3{Z: 1}, 0, 0)
	if !result.IsSpecular {
		t.Errorf("expected mirror sample to be flagged specular")
	}
	expected := m.Vec3{X: -outgoing.X, Y: -outgoing.Y, Z: outgoing.Z}
	if result.Incoming.Sub(expected).Length() > 1e-5 {
		t.Errorf("expected reflection %v, got %v", expected, result.Incoming)
	}
}

func TestEvaluateMatteMatchesCosinePDF(t *testing.T) {
	scene := sceneWithMatte(m.Vec3{X: 1, Y: 1, Z: 1})
	outgoing := m.Vec3{Z: 1}
	incoming := m.Vec3{Z: 0.6, X: 0.8}

	ev := EvaluateDistributionFunction(scene, scenetables.MaterialKindMatte, 0, outgoing, incoming, m.Vec3{}, m.Vec3{Z: 1}, 0, 0)
	expectedPDF := incoming.Z / 3.14159265
	if absf(ev.PDF-expectedPDF) > 1e-4 {
		t.Errorf("expected pdf %v, got %v", expectedPDF, ev.PDF)
	}
}

func TestGlassTotalInternalReflectionCollapsesToReflection(t *testing.T) {
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{
			{Color: m.Vec3{X: 1, Y: 1, Z: 1}},
		},
	}
	refTex := scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0}

	// A grazing ray exiting a dense medium (entering=false, eta=1.5) at
	// near-tangent incidence must total-internally-reflect.
	rng := sampling.NewRNG(7, 0)
	outgoing := m.Vec3{X: 0.99, Z: -0.01}.Normalize()

	result := sampleGlass(scene, rng, refTex, refTex, 1.5, outgoing, m.Vec3{}, m.Vec3{Z: 1}, 0, 0)
	if !result.Valid || !result.IsSpecular {
		t.Fatalf("expected a valid specular sample, got %+v", result)
	}
}
