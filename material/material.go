// Package material implements the BSDF/BxDF sample/evaluate/pdf operations
// for every scenetables.MaterialKind. All directions are handled in the
// surface's shading frame (z along the shading normal); callers transform
// to and from world space via scenetables.Intersection.Shading, per
// spec.md §4.G's "shade space" framing.
//
// Grounded structurally on scene/material.go's Albedo/Specular/Roughness/
// Metallic fields, reinterpreted as texture-backed BxDF parameters rather
// than a GPU-uniform struct.
package material

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
	"github.com/dayflower-go/pathtracer/texture"
)

// Sample is the outcome of sampleDistributionFunction: the new path
// direction (in the shading frame), whether that lobe is a delta
// distribution (no probability density, can't be hit by light sampling),
// whether it transmitted through the surface, the multiplicative eta-scale
// update Russian roulette needs to stay unbiased across transmissions, and
// Weight = f(wo,wi)·|cosθᵢ|/pdf(wi) — the full per-bounce throughput
// multiplier, already combining the BxDF's own branch-selection
// probability when the material mixes lobes (ClearCoat, Glass).
type Sample struct {
	Incoming        m.Vec3
	Weight          m.Vec3
	IsSpecular      bool
	HasTransmission bool
	EtaScale        float32
	Valid           bool
}

// Eval is the non-delta evaluate/pdf pair used for MIS against light
// sampling. Delta lobes (Mirror, Glass's reflect/transmit branches) always
// return a zero pdf since they can never be hit by sampling a finite-area
// light direction.
type Eval struct {
	F   m.Vec3
	PDF float32
}

// Emission returns a material's self-emitted radiance, evaluated through
// the texture chain, or black for materials with no Emission field.
func Emission(scene *scenetables.Scene, kind scenetables.MaterialKind, offset int32, point m.Point3, normal m.Vec3, u, v float32) m.Vec3 {
	switch kind {
	case scenetables.MaterialKindMatte:
		mat := scene.MatteMaterials[offset]
		return texture.Eval(scene, mat.Emission, point, normal, u, v)
	case scenetables.MaterialKindGlass:
		mat := scene.GlassMaterials[offset]
		return texture.Eval(scene, mat.Emission, point, normal, u, v)
	case scenetables.MaterialKindGlassTextured:
		mat := scene.GlassTexturedMaterials[offset]
		return texture.Eval(scene, mat.Emission, point, normal, u, v)
	case scenetables.MaterialKindClearCoat:
		mat := scene.ClearCoatMaterials[offset]
		return texture.Eval(scene, mat.Emission, point, normal, u, v)
	default:
		return m.Vec3{}
	}
}

// SampleDistributionFunction picks a BxDF by the material's own rules,
// samples an incoming direction in the shading frame, and reports the
// combined sampling result.
func SampleDistributionFunction(
	scene *scenetables.Scene,
	rng *sampling.RNG,
	kind scenetables.MaterialKind,
	offset int32,
	outgoing m.Vec3, // shading-frame, points away from the surface
	point m.Point3,
	normal m.Vec3,
	u, v float32,
) Sample {
	switch kind {
	case scenetables.MaterialKindMatte:
		return sampleMatte(scene, rng, scene.MatteMaterials[offset], outgoing, point, normal, u, v)
	case scenetables.MaterialKindMirror:
		return sampleMirror(scene, scene.MirrorMaterials[offset], outgoing, point, normal, u, v)
	case scenetables.MaterialKindGlass:
		mat := scene.GlassMaterials[offset]
		return sampleGlass(scene, rng, mat.Reflectance, mat.Transmittance, mat.Eta, outgoing, point, normal, u, v)
	case scenetables.MaterialKindGlassTextured:
		mat := scene.GlassTexturedMaterials[offset]
		eta := texture.Eval(scene, mat.Eta, point, normal, u, v).X
		return sampleGlass(scene, rng, mat.Reflectance, mat.Transmittance, eta, outgoing, point, normal, u, v)
	case scenetables.MaterialKindMetal:
		return sampleMetal(scene, rng, scene.MetalMaterials[offset], outgoing, point, normal, u, v)
	case scenetables.MaterialKindClearCoat:
		return sampleClearCoat(scene, rng, scene.ClearCoatMaterials[offset], outgoing, point, normal, u, v)
	default:
		return Sample{}
	}
}

// EvaluateDistributionFunction evaluates f(wo,wi) and its pdf for a given
// pair of directions, used to compute the BSDF side of light-sampling MIS.
// Delta-distribution materials (Mirror, Glass) can never be evaluated this
// way and always report a zero pdf.
func EvaluateDistributionFunction(
	scene *scenetables.Scene,
	kind scenetables.MaterialKind,
	offset int32,
	outgoing, incoming m.Vec3,
	point m.Point3,
	normal m.Vec3,
	u, v float32,
) Eval {
	switch kind {
	case scenetables.MaterialKindMatte:
		mat := scene.MatteMaterials[offset]
		if outgoing.Z*incoming.Z <= 0 {
			return Eval{}
		}
		rho := texture.Eval(scene, mat.DiffuseReflectance, point, normal, u, v)
		cosTheta := absf(incoming.Z)
		return Eval{F: rho.Mul(invPi), PDF: cosTheta * invPi}
	case scenetables.MaterialKindMetal:
		mat := scene.MetalMaterials[offset]
		rough := texture.Eval(scene, mat.Roughness, point, normal, u, v).X
		exponent := roughnessToExponent(rough)
		return evaluatePhong(scene, mat.Reflectance, point, normal, u, v, exponent, outgoing, incoming)
	case scenetables.MaterialKindClearCoat:
		mat := scene.ClearCoatMaterials[offset]
		if outgoing.Z*incoming.Z <= 0 {
			return Eval{}
		}
		rho := texture.Eval(scene, mat.Diffuse, point, normal, u, v)
		cosTheta := absf(incoming.Z)
		fr := schlickFresnel(absf(outgoing.Z), 1.5)
		p := 0.25 + 0.5*fr
		return Eval{F: rho.Mul(invPi * (1 - fr)), PDF: (1 - p) * cosTheta * invPi}
	default:
		return Eval{}
	}
}

const invPi = 1 / (3.14159265358979323846)

func sampleMatte(scene *scenetables.Scene, rng *sampling.RNG, mat scenetables.MatteMaterial, outgoing m.Vec3, point m.Point3, normal m.Vec3, u, v float32) Sample {
	u1, u2 := rng.Float32Pair()
	local := sampling.CosineHemisphere(u1, u2)
	if outgoing.Z < 0 {
		local.Z = -local.Z
	}
	rho := texture.Eval(scene, mat.DiffuseReflectance, point, normal, u, v)
	return Sample{Incoming: local, Weight: rho, Valid: true}
}

func sampleMirror(scene *scenetables.Scene, mat scenetables.MirrorMaterial, outgoing m.Vec3, point m.Point3, normal m.Vec3, u, v float32) Sample {
	incoming := reflectLocal(outgoing)
	rho := texture.Eval(scene, mat.Reflectance, point, normal, u, v)
	return Sample{Incoming: incoming, Weight: rho, IsSpecular: true, Valid: true}
}

// reflectLocal mirrors wo across the shading normal (local z axis).
func reflectLocal(wo m.Vec3) m.Vec3 {
	return m.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
}

func sampleGlass(scene *scenetables.Scene, rng *sampling.RNG, reflectance, transmittance scenetables.TextureRef, eta float32, outgoing m.Vec3, point m.Point3, normal m.Vec3, u, v float32) Sample {
	if eta == 0 {
		eta = 1.5
	}

	entering := outgoing.Z > 0
	etaI, etaT := float32(1), eta
	n := m.Vec3{Z: 1}
	if !entering {
		etaI, etaT = eta, float32(1)
		n = m.Vec3{Z: -1}
	}

	cosThetaI := absf(outgoing.Z)
	fr := schlickFresnel(cosThetaI, etaT/etaI)

	if rng.Float32() < fr {
		incoming := reflectLocal(outgoing)
		rho := texture.Eval(scene, reflectance, point, normal, u, v)
		return Sample{Incoming: incoming, Weight: rho, IsSpecular: true, Valid: true}
	}

	wt, ok := refractLocal(outgoing, n, etaI/etaT)
	if !ok {
		// Total internal reflection collapses to the reflection branch.
		incoming := reflectLocal(outgoing)
		rho := texture.Eval(scene, reflectance, point, normal, u, v)
		return Sample{Incoming: incoming, Weight: rho, IsSpecular: true, Valid: true}
	}

	rho := texture.Eval(scene, transmittance, point, normal, u, v)
	etaScale := (etaT / etaI) * (etaT / etaI)
	weight := rho.Mul(etaScale)
	return Sample{Incoming: wt, Weight: weight, IsSpecular: true, HasTransmission: true, EtaScale: etaScale, Valid: true}
}

// refractLocal applies Snell's law in the shading frame; n is the local
// shading normal oriented against wo (so n·wo > 0), eta = etaIncident/etaTransmitted.
func refractLocal(wo, n m.Vec3, eta float32) (m.Vec3, bool) {
	cosThetaI := wo.Dot(n)
	sin2ThetaI := maxf(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return m.Vec3{}, false
	}
	cosThetaT := sqrtf(1 - sin2ThetaT)
	wt := wo.Negate().Mul(eta).Add(n.Mul(eta*cosThetaI - cosThetaT))
	return wt, true
}

func sampleMetal(scene *scenetables.Scene, rng *sampling.RNG, mat scenetables.MetalMaterial, outgoing m.Vec3, point m.Point3, normal m.Vec3, u, v float32) Sample {
	rough := texture.Eval(scene, mat.Roughness, point, normal, u, v).X
	exponent := roughnessToExponent(rough)

	u1, u2 := rng.Float32Pair()
	h := sampling.PowerCosineHemisphere(u1, u2, exponent)
	if outgoing.Z < 0 {
		h.Z = -h.Z
	}
	hDotO := h.Dot(outgoing)
	incoming := h.Mul(2 * hDotO).Sub(outgoing)

	ev := evaluatePhong(scene, mat.Reflectance, point, normal, u, v, exponent, outgoing, incoming)
	if ev.PDF <= 0 {
		return Sample{}
	}
	weight := ev.F.Mul(absf(incoming.Z) / ev.PDF)
	return Sample{Incoming: incoming, Weight: weight, Valid: true}
}

func evaluatePhong(scene *scenetables.Scene, reflectance scenetables.TextureRef, point m.Point3, normal m.Vec3, u, v float32, exponent float32, outgoing, incoming m.Vec3) Eval {
	if outgoing.Z*incoming.Z <= 0 {
		return Eval{}
	}
	h := outgoing.Add(incoming).Normalize()
	cosAlpha := maxf(0, h.Z)
	hDotO := maxf(1e-4, absf(h.Dot(outgoing)))

	rho := texture.Eval(scene, reflectance, point, normal, u, v)
	fr := schlickFresnel(hDotO, 1.5)

	d := (exponent + 2) * invHalfPi * powf(cosAlpha, exponent)
	denom := 4 * maxf(1e-4, absf(outgoing.Z)) * maxf(1e-4, absf(incoming.Z))
	f := rho.Mul(d * fr / denom)

	pdf := (exponent + 1) * invHalfPi * powf(cosAlpha, exponent) / (4 * hDotO)
	return Eval{F: f, PDF: pdf}
}

const invHalfPi = 1 / (2 * 3.14159265358979323846)

func sampleClearCoat(scene *scenetables.Scene, rng *sampling.RNG, mat scenetables.ClearCoatMaterial, outgoing m.Vec3, point m.Point3, normal m.Vec3, u, v float32) Sample {
	fr := schlickFresnel(absf(outgoing.Z), 1.5)
	p := 0.25 + 0.5*fr

	if rng.Float32() < p {
		incoming := reflectLocal(outgoing)
		rho := texture.Eval(scene, mat.Specular, point, normal, u, v)
		weight := rho.Mul(1 / p)
		return Sample{Incoming: incoming, Weight: weight, IsSpecular: true, Valid: true}
	}

	u1, u2 := rng.Float32Pair()
	local := sampling.CosineHemisphere(u1, u2)
	if outgoing.Z < 0 {
		local.Z = -local.Z
	}
	rho := texture.Eval(scene, mat.Diffuse, point, normal, u, v)
	weight := rho.Mul((1 - fr) / (1 - p))
	return Sample{Incoming: local, Weight: weight, Valid: true}
}

func roughnessToExponent(roughness float32) float32 {
	roughness = m.Clamp(roughness, 0.01, 1)
	return 2/(roughness*roughness) - 2
}

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func powf(base, exp float32) float32 { return float32(math.Pow(float64(base), float64(exp))) }

// schlickFresnel is Schlick's approximation to the Fresnel dielectric
// reflectance at normal-to-grazing incidence, used by Glass and ClearCoat
// in place of the full Fresnel equations (spec.md §4.G names "Fresnel"
// without pinning an approximation; Schlick's is the standard practical
// substitute and keeps the integrator allocation-free).
func schlickFresnel(cosTheta, eta float32) float32 {
	r0 := (eta - 1) / (eta + 1)
	r0 *= r0
	x := 1 - cosTheta
	return r0 + (1-r0)*x*x*x*x*x
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
