// Package light implements the per-LightKind sampleRadianceIncoming /
// evaluateRadianceEmitted / pdf / isUsingDeltaDistribution operations
// spec.md §4.H describes, against point, spot, directional, area,
// LDR-image, and Perez-sky lights.
//
// Grounded on scene/scene.go's Light struct (a single Type-tagged struct
// covering directional/point/spot with Position/Direction/Color/Intensity/
// SpotAngle fields), generalized here into per-kind tables dispatched by
// LightKind and extended with the two infinite-light kinds the teacher's
// rasterizer never needed.
package light

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
	"github.com/dayflower-go/pathtracer/texture"
)

// Sample is the result of sampleRadianceIncoming: a direction from refPoint
// toward the light, the point sampled on the light (world space; for delta
// lights this is a nominal point at "infinity" along Incoming), the
// radiance arriving along that direction, and its pdf (solid angle
// measure; meaningless for delta lights, which integrator treats as
// weight 1 with no MIS partner).
type Sample struct {
	Incoming     m.Vec3
	PointOnLight m.Point3
	Radiance     m.Vec3
	PDF          float32
	Valid        bool
}

// IsUsingDeltaDistribution reports whether a light kind has zero extent
// (point, spot, directional) and so can never be hit by a traced ray or
// given a meaningful solid-angle pdf.
func IsUsingDeltaDistribution(kind scenetables.LightKind) bool {
	switch kind {
	case scenetables.LightKindPoint, scenetables.LightKindSpot, scenetables.LightKindDirectional:
		return true
	default:
		return false
	}
}

// SampleIncoming dispatches light sampling by kind.
func SampleIncoming(scene *scenetables.Scene, rng *sampling.RNG, ref scenetables.LightRef, refPoint m.Point3) Sample {
	switch ref.Kind {
	case scenetables.LightKindPoint:
		return samplePoint(scene.PointLights[ref.Offset], refPoint)
	case scenetables.LightKindSpot:
		return sampleSpot(scene.SpotLights[ref.Offset], refPoint)
	case scenetables.LightKindDirectional:
		return sampleDirectional(scene.DirectionalLights[ref.Offset], refPoint)
	case scenetables.LightKindArea:
		return sampleArea(scene, rng, scene.AreaLights[ref.Offset], refPoint)
	case scenetables.LightKindLDRImage:
		return sampleLDRImage(scene, rng, scene.LDRImageLights[ref.Offset], refPoint)
	case scenetables.LightKindPerezSky:
		return samplePerezSky(rng, scene.PerezSkyLights[ref.Offset], refPoint)
	default:
		return Sample{}
	}
}

// EvaluateEmitted evaluates an infinite light's contribution along a ray
// that escaped the scene (LDR-image and Perez-sky only; area lights are
// discovered by hitting their primitive and evaluated via
// material.Emission instead, point/spot/directional contribute nothing to
// an escaping ray).
func EvaluateEmitted(scene *scenetables.Scene, ref scenetables.LightRef, direction m.Vec3) m.Vec3 {
	switch ref.Kind {
	case scenetables.LightKindLDRImage:
		li := scene.LDRImageLights[ref.Offset]
		return texture.SampleEquirect(scene, li.Image, direction).Mul(li.Scale)
	case scenetables.LightKindPerezSky:
		return perezSkyRadiance(scene.PerezSkyLights[ref.Offset], direction)
	default:
		return m.Vec3{}
	}
}

// PDFIncoming evaluates the solid-angle pdf SampleIncoming would have
// assigned to a given direction, for the light side of MIS against BSDF
// sampling. Delta lights have no density and always return 0 (the
// integrator must not MIS-weight a delta light sample).
func PDFIncoming(ref scenetables.LightRef, incoming m.Vec3) float32 {
	switch ref.Kind {
	case scenetables.LightKindArea:
		return 0 // solid-angle pdf depends on the hit distance; computed by AreaPDF from the hit point instead.
	case scenetables.LightKindLDRImage:
		return 1 / (4 * math.Pi)
	case scenetables.LightKindPerezSky:
		if incoming.Y <= 0 {
			return 0
		}
		return 1 / (2 * math.Pi)
	default:
		return 0
	}
}

func samplePoint(l scenetables.PointLight, refPoint m.Point3) Sample {
	toLight := l.Position.Sub(refPoint)
	dist2 := toLight.LengthSqr()
	if dist2 <= 0 {
		return Sample{}
	}
	dir := toLight.Mul(1 / sqrtf(dist2))
	return Sample{
		Incoming:     dir,
		PointOnLight: l.Position,
		Radiance:     l.Emission.Mul(1 / dist2),
		PDF:          1,
		Valid:        true,
	}
}

func sampleSpot(l scenetables.SpotLight, refPoint m.Point3) Sample {
	toLight := l.Position.Sub(refPoint)
	dist2 := toLight.LengthSqr()
	if dist2 <= 0 {
		return Sample{}
	}
	dir := toLight.Mul(1 / sqrtf(dist2))

	cosAngle := dir.Negate().Dot(l.Direction.Normalize())
	falloff := smoothstep(l.CosTotalWidth, l.CosFalloffStart, cosAngle)
	if falloff <= 0 {
		return Sample{}
	}

	return Sample{
		Incoming:     dir,
		PointOnLight: l.Position,
		Radiance:     l.Emission.Mul(falloff / dist2),
		PDF:          1,
		Valid:        true,
	}
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x >= edge0 {
			return 1
		}
		return 0
	}
	t := m.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func sampleDirectional(l scenetables.DirectionalLight, refPoint m.Point3) Sample {
	dir := l.Direction.Normalize().Negate()
	return Sample{
		Incoming:     dir,
		PointOnLight: refPoint.Add(dir.Mul(1e6)),
		Radiance:     l.Emission,
		PDF:          1,
		Valid:        true,
	}
}

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }
