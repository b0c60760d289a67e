package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// LightRef names a light by kind + offset into the matching kind-specific
// table, used by Scene.LightIndex to enumerate every light for sampling.
type LightRef struct {
	Kind   LightKind
	Offset int32
}

// PointLight is a light row: omnidirectional radiance from a single point,
// using a delta distribution (§4.H).
type PointLight struct {
	Position m.Point3
	Emission m.Vec3
}

// SpotLight is a light row: a point light masked by a cone, with a smooth
// falloff between the inner and outer cone angles.
type SpotLight struct {
	Position       m.Point3
	Direction      m.Vec3 // normalized, points from the light into the scene
	Emission       m.Vec3
	CosTotalWidth  float32 // cos(outer angle)
	CosFalloffStart float32 // cos(inner angle)
}

// DirectionalLight is a light row: parallel rays from an infinitely distant
// source, using a delta distribution.
type DirectionalLight struct {
	Direction m.Vec3 // normalized, points from the light into the scene
	Emission  m.Vec3
}

// AreaLight is a light row attached to a primitive's surface; the emission
// itself lives on the primitive's material (MatteMaterial.Emission /
// GlassMaterial.Emission / etc.), this row only records which primitive and
// its one-sided-ness.
type AreaLight struct {
	Primitive int32
	TwoSided  bool
}

// LDRImageLight is a light row: an equirectangular environment map sampled
// both for escaping rays (evaluateRadianceEmitted) and for direct light
// sampling, reusing the LDRImageTexture pixel storage convention.
type LDRImageLight struct {
	Image LDRImageTexture
	Scale float32
}

// PerezSkyLight is a light row: an analytic Perez-model sky, parameterized
// by turbidity and sun direction, with no inlined image data.
type PerezSkyLight struct {
	SunDirection m.Vec3
	Turbidity    float32
	Scale        float32
}
