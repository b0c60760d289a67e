package integrator

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/material"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
	"github.com/dayflower-go/pathtracer/traversal"
)

// AmbientOcclusionParams configures the ambient-occlusion render mode
// (spec.md §6 render-mode selector: AmbientOcclusion[maxDist, samples]).
type AmbientOcclusionParams struct {
	MaxDistance float32
	Samples     int
}

// AmbientOcclusion casts Samples cosine-weighted hemisphere rays from the
// first hit and returns the fraction that escape within MaxDistance
// without hitting anything, as a greyscale Vec3. Cosine-weighted
// importance sampling cancels the cosθ/π factor of the AO integral exactly,
// so the estimator is a plain average of 0/1 visibility terms (spec.md §8
// scenario S4: fully unoccluded returns ≈1 on every channel).
func AmbientOcclusion(scene *scenetables.Scene, rng *sampling.RNG, ray scenetables.Ray, params AmbientOcclusionParams) m.Vec3 {
	isect, _, hit := traversal.TraceClosest(scene, ray)
	if !hit {
		return m.Vec3{}
	}
	if params.Samples <= 0 {
		return m.Vec3{}
	}

	sum := float32(0)
	for i := 0; i < params.Samples; i++ {
		u1, u2 := rng.Float32Pair()
		localDir := sampling.CosineHemisphere(u1, u2)
		dir := isect.Shading.ToWorld(localDir).Normalize()
		occRay := scenetables.Spawn(isect.Point, dir)
		occRay.TMax = params.MaxDistance
		if !traversal.TraceAny(scene, occRay) {
			sum++
		}
	}
	v := sum / float32(params.Samples)
	return m.Vec3{X: v, Y: v, Z: v}
}

// RayCasting returns a single bounce of direct lighting (emission plus
// one-light MIS) with no further recursion: the simplest debug render mode,
// useful for validating material/light wiring without path-tracing noise
// compounding across bounces.
func RayCasting(scene *scenetables.Scene, rng *sampling.RNG, ray scenetables.Ray) m.Vec3 {
	isect, primIdx, hit := traversal.TraceClosest(scene, ray)
	if !hit {
		return environmentEmission(scene, ray.Direction)
	}
	prim := scene.Primitives[primIdx]
	L := material.Emission(scene, prim.MaterialKind, prim.MaterialOffset, isect.Point, isect.Shading.W, isect.U, isect.V)
	if hasNonSpecularLobe(prim.MaterialKind) {
		outgoing := isect.Shading.ToLocal(ray.Direction.Negate())
		L = L.Add(sampleOneLight(scene, rng, prim, isect, outgoing))
	}
	return L
}

// DepthCamera returns the hit distance along the ray, replicated across all
// three channels and normalized by maxDistance, or black on a miss. It is
// a debug visualization, not a physically meaningful radiance.
func DepthCamera(scene *scenetables.Scene, ray scenetables.Ray, maxDistance float32) m.Vec3 {
	isect, _, hit := traversal.TraceClosest(scene, ray)
	if !hit {
		return m.Vec3{}
	}
	t := isect.Point.Sub(ray.Origin).Length()
	v := m.Clamp(t/maxDistance, 0, 1)
	return m.Vec3{X: v, Y: v, Z: v}
}

// RayTracingParams bounds the Whitted-style recursive ray-tracing mode.
type RayTracingParams struct {
	MaxDepth int
}

// DefaultRayTracingParams matches the path integrator's own bounce cap so
// the two modes are comparable in cost.
func DefaultRayTracingParams() RayTracingParams { return RayTracingParams{MaxDepth: 20} }

// RayTracing is a classic recursive Whitted integrator: direct lighting at
// every non-specular hit, plus a single recursive ray down each specular
// lobe a material samples (no Russian roulette, no indirect diffuse
// bounces — the distinguishing simplification from full path tracing).
func RayTracing(scene *scenetables.Scene, rng *sampling.RNG, ray scenetables.Ray, params RayTracingParams) m.Vec3 {
	return rayTraceRecursive(scene, rng, ray, params.MaxDepth)
}

func rayTraceRecursive(scene *scenetables.Scene, rng *sampling.RNG, ray scenetables.Ray, depth int) m.Vec3 {
	if depth <= 0 {
		return m.Vec3{}
	}
	isect, primIdx, hit := traversal.TraceClosest(scene, ray)
	if !hit {
		return environmentEmission(scene, ray.Direction)
	}
	prim := scene.Primitives[primIdx]
	L := material.Emission(scene, prim.MaterialKind, prim.MaterialOffset, isect.Point, isect.Shading.W, isect.U, isect.V)

	outgoing := isect.Shading.ToLocal(ray.Direction.Negate())
	if hasNonSpecularLobe(prim.MaterialKind) {
		L = L.Add(sampleOneLight(scene, rng, prim, isect, outgoing))
	}

	sample := material.SampleDistributionFunction(scene, rng, prim.MaterialKind, prim.MaterialOffset, outgoing, isect.Point, isect.Shading.W, isect.U, isect.V)
	if sample.Valid && sample.IsSpecular && !isBlack(sample.Weight) {
		incomingWorld := isect.Shading.ToWorld(sample.Incoming).Normalize()
		nextRay := scenetables.Spawn(isect.Point, incomingWorld)
		L = L.Add(sample.Weight.MulVec(rayTraceRecursive(scene, rng, nextRay, depth-1)))
	}
	return L
}
