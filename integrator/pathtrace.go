package integrator

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/light"
	"github.com/dayflower-go/pathtracer/material"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
	"github.com/dayflower-go/pathtracer/traversal"
)

// PathTraceParams configures Russian-roulette path integration (§4.I).
type PathTraceParams struct {
	MaxBounces  int
	MinBounces  int // bounce count at which Russian roulette starts being considered
}

// DefaultPathTraceParams matches spec.md §4.I's stated defaults.
func DefaultPathTraceParams() PathTraceParams {
	return PathTraceParams{MaxBounces: 20, MinBounces: 5}
}

// PathTrace runs the full Monte Carlo path integrator for one camera ray
// and returns the estimated radiance along it. Any non-finite pdf or
// throughput component discards the remainder of the bounce (§7, §8): the
// function returns whatever radiance was accumulated up to that point
// rather than propagating an error, since the kernel never surfaces
// failures mid-pass.
func PathTrace(scene *scenetables.Scene, rng *sampling.RNG, ray scenetables.Ray, params PathTraceParams) m.Vec3 {
	L := m.Vec3{}
	beta := m.Vec3{X: 1, Y: 1, Z: 1}
	etaScale := float32(1)
	isSpecularBounce := false

	for bounce := 0; bounce < params.MaxBounces; bounce++ {
		isect, primIdx, hit := traversal.TraceClosest(scene, ray)
		if !hit {
			if bounce == 0 || isSpecularBounce {
				L = L.Add(beta.MulVec(environmentEmission(scene, ray.Direction)))
			}
			break
		}

		prim := scene.Primitives[primIdx]

		if bounce == 0 || isSpecularBounce {
			L = L.Add(beta.MulVec(material.Emission(scene, prim.MaterialKind, prim.MaterialOffset, isect.Point, isect.Shading.W, isect.U, isect.V)))
		}

		outgoing := isect.Shading.ToLocal(ray.Direction.Negate())

		if hasNonSpecularLobe(prim.MaterialKind) {
			direct := sampleOneLight(scene, rng, prim, isect, outgoing)
			L = L.Add(beta.MulVec(direct))
		}

		sample := material.SampleDistributionFunction(scene, rng, prim.MaterialKind, prim.MaterialOffset, outgoing, isect.Point, isect.Shading.W, isect.U, isect.V)
		if !sample.Valid || !isFiniteVec(sample.Weight) {
			break
		}

		beta = beta.MulVec(sample.Weight)
		if !isFiniteVec(beta) {
			break
		}

		if sample.HasTransmission {
			etaScale *= sample.EtaScale
		}
		isSpecularBounce = sample.IsSpecular

		if bounce >= params.MinBounces {
			rrBeta := beta.Mul(etaScale)
			maxComp := m.MaxComponent(rrBeta)
			if maxComp < 1 {
				q := maxf32(0.05, 1-maxComp)
				if rng.Float32() < q {
					break
				}
				beta = beta.Mul(1 / (1 - q))
			}
		}

		incomingWorld := isect.Shading.ToWorld(sample.Incoming).Normalize()
		ray = scenetables.Spawn(isect.Point, incomingWorld)
	}

	return L
}

// environmentEmission sums every infinite light's (LDR-image, Perez-sky)
// contribution along an escaping ray; point/spot/directional/area lights
// contribute nothing to a ray that left the scene.
func environmentEmission(scene *scenetables.Scene, direction m.Vec3) m.Vec3 {
	total := m.Vec3{}
	for _, ref := range scene.LightIndex {
		if ref.Kind == scenetables.LightKindLDRImage || ref.Kind == scenetables.LightKindPerezSky {
			total = total.Add(light.EvaluateEmitted(scene, ref, direction))
		}
	}
	return total
}

func hasNonSpecularLobe(kind scenetables.MaterialKind) bool {
	switch kind {
	case scenetables.MaterialKindMirror, scenetables.MaterialKindGlass, scenetables.MaterialKindGlassTextured:
		return false
	default:
		return true
	}
}

// sampleOneLight estimates direct lighting at a hit point with multiple
// importance sampling between a uniformly-picked light and the surface's
// own BSDF, using the balance heuristic (spec.md §4.I step c leaves the
// MIS weighting formula unpinned; balance heuristic is the simplest
// unbiased choice and is used throughout this kernel for consistency).
func sampleOneLight(scene *scenetables.Scene, rng *sampling.RNG, prim scenetables.Primitive, isect scenetables.Intersection, outgoing m.Vec3) m.Vec3 {
	n := len(scene.LightIndex)
	if n == 0 {
		return m.Vec3{}
	}
	idx := int(rng.Float32() * float32(n))
	if idx >= n {
		idx = n - 1
	}
	ref := scene.LightIndex[idx]
	nLights := float32(n)

	direct := m.Vec3{}

	// Light-sampling strategy.
	ls := light.SampleIncoming(scene, rng, ref, isect.Point)
	if ls.Valid && !isBlack(ls.Radiance) {
		wi := isect.Shading.ToLocal(ls.Incoming)
		eval := material.EvaluateDistributionFunction(scene, prim.MaterialKind, prim.MaterialOffset, outgoing, wi, isect.Point, isect.Shading.W, isect.U, isect.V)
		if eval.PDF > 0 && !isBlack(eval.F) {
			if unoccluded(scene, isect.Point, ls.PointOnLight) {
				var weight float32
				if light.IsUsingDeltaDistribution(ref.Kind) {
					weight = 1
				} else {
					lightPDF := ls.PDF
					weight = lightPDF / (lightPDF + eval.PDF)
				}
				contribution := eval.F.MulVec(ls.Radiance).Mul(absCosTheta(wi) * weight / ls.PDF)
				direct = direct.Add(contribution)
			}
		}
	}

	// BSDF-sampling strategy (skipped for delta lights: there is no area to hit).
	if !light.IsUsingDeltaDistribution(ref.Kind) {
		sample := material.SampleDistributionFunction(scene, rng, prim.MaterialKind, prim.MaterialOffset, outgoing, isect.Point, isect.Shading.W, isect.U, isect.V)
		if sample.Valid && !sample.IsSpecular {
			wiWorld := isect.Shading.ToWorld(sample.Incoming).Normalize()
			eval := material.EvaluateDistributionFunction(scene, prim.MaterialKind, prim.MaterialOffset, outgoing, sample.Incoming, isect.Point, isect.Shading.W, isect.U, isect.V)
			if eval.PDF > 0 {
				cosTheta := absCosTheta(sample.Incoming)
				shadowRay := scenetables.Spawn(isect.Point, wiWorld)
				if hitIsect, hitPrim, hit := traversal.TraceClosest(scene, shadowRay); hit {
					lightPDF := lightPDFAt(scene, ref, hitPrim, isect.Point, hitIsect)
					if lightPDF > 0 {
						le := material.Emission(scene, scene.Primitives[hitPrim].MaterialKind, scene.Primitives[hitPrim].MaterialOffset, hitIsect.Point, hitIsect.Shading.W, hitIsect.U, hitIsect.V)
						weight := eval.PDF / (eval.PDF + lightPDF)
						direct = direct.Add(eval.F.MulVec(le).Mul(cosTheta * weight / eval.PDF))
					}
				} else if ref.Kind == scenetables.LightKindLDRImage || ref.Kind == scenetables.LightKindPerezSky {
					le := light.EvaluateEmitted(scene, ref, wiWorld)
					lightPDF := light.PDFIncoming(ref, wiWorld)
					if lightPDF > 0 {
						weight := eval.PDF / (eval.PDF + lightPDF)
						direct = direct.Add(eval.F.MulVec(le).Mul(cosTheta * weight / eval.PDF))
					}
				}
			}
		}
	}

	return direct.Mul(nLights)
}

// lightPDFAt returns the solid-angle pdf SampleIncoming would have assigned
// to the direction that led to hitPrim, for the BSDF-sampling side of MIS.
// Only area lights can be hit this way; every other kind returns 0 here
// (infinite lights get their fixed density from light.PDFIncoming on a
// miss instead).
func lightPDFAt(scene *scenetables.Scene, ref scenetables.LightRef, hitPrim int32, refPoint m.Point3, hitIsect scenetables.Intersection) float32 {
	if ref.Kind != scenetables.LightKindArea {
		return 0
	}
	prim := scene.Primitives[hitPrim]
	if prim.AreaLightKind != scenetables.LightKindArea || prim.AreaLightOffset != ref.Offset {
		return 0
	}
	al := scene.AreaLightAt(ref.Offset)
	return light.AreaPDF(scene, al, refPoint, hitIsect.Point, hitIsect.Shading.W)
}

func unoccluded(scene *scenetables.Scene, from, to m.Point3) bool {
	toLight := to.Sub(from)
	dist := toLight.Length()
	if dist < 1e-6 {
		return true
	}
	dir := toLight.Mul(1 / dist)
	shadowRay := scenetables.Spawn(from, dir)
	shadowRay.TMax = dist * (1 - 1e-3)
	return !traversal.TraceAny(scene, shadowRay)
}

func absCosTheta(wi m.Vec3) float32 { return absf32(wi.Z) }

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func isFiniteVec(v m.Vec3) bool {
	return isFiniteF32(v.X) && isFiniteF32(v.Y) && isFiniteF32(v.Z)
}

func isBlack(v m.Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func isFiniteF32(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
