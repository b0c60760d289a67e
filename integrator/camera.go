// Package integrator implements the per-pixel path-tracing kernel of
// spec.md §4.I: camera ray generation, the Russian-roulette bounce loop
// with direct-light MIS, and the simpler alternate render modes
// (ambient occlusion, ray casting, depth camera, Whitted ray tracing) the
// host's render-mode selector can choose instead of full path tracing.
//
// Grounded structurally on scene/particles.go's per-item simulate loop: a
// bounded, straight-line iteration over mutable per-item state (there,
// Particle.Life/Position/Velocity; here, bounce/throughput/radiance),
// terminating early on a local condition rather than running to a fixed
// count.
package integrator

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// GenerateCameraRay builds the camera ray for a given pixel and intra-pixel
// sample offset (px, py are pixel-space coordinates, e.g. x+0.5+jitter).
// Returns ok=false when the fisheye lens rejects the sample as falling
// outside the unit disk (spec.md §8 boundary behavior); the film must be
// left untouched for a rejected sample.
func GenerateCameraRay(cam scenetables.Camera, px, py float32, rng *sampling.RNG) (scenetables.Ray, bool) {
	ndcX := (2*px/float32(cam.ResX) - 1)
	ndcY := (1 - 2*py/float32(cam.ResY))

	var dirLocal m.Vec3
	switch cam.Lens {
	case scenetables.LensFisheye:
		r := sqrtf(ndcX*ndcX + ndcY*ndcY)
		if r > 1 {
			return scenetables.Ray{}, false
		}
		phi := fastAtan2(ndcY, ndcX)
		theta := r * (cam.FovX / 2)
		sinT, cosT := sinCos(theta)
		dirLocal = m.Vec3{X: sinT * cosf(phi), Y: sinT * sinf(phi), Z: cosT}

	default: // LensThin
		tanX := tanf(cam.FovX / 2)
		tanY := tanf(cam.FovY / 2)
		dirLocal = m.Vec3{X: ndcX * tanX, Y: ndcY * tanY, Z: 1}.Normalize()
	}

	dirWorld := cam.Basis.ToWorld(dirLocal).Normalize()
	origin := cam.Eye

	if cam.Lens == scenetables.LensThin && cam.ApertureRadius > 0 {
		focalPoint := origin.Add(dirWorld.Mul(cam.FocalDistance / dirWorld.Dot(cam.Basis.W)))
		u1, u2 := rng.Float32Pair()
		lx, ly := sampling.UniformDisk(u1, u2)
		lensOffset := cam.Basis.U.Mul(lx * cam.ApertureRadius).Add(cam.Basis.V.Mul(ly * cam.ApertureRadius))
		origin = origin.Add(lensOffset)
		dirWorld = focalPoint.Sub(origin).Normalize()
	}

	return scenetables.NewRay(origin, dirWorld), true
}

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func tanf(x float32) float32  { return float32(math.Tan(float64(x))) }
func cosf(x float32) float32  { return float32(math.Cos(float64(x))) }
func sinf(x float32) float32  { return float32(math.Sin(float64(x))) }

func sinCos(x float32) (float32, float32) {
	s, c := math.Sincos(float64(x))
	return float32(s), float32(c)
}

func fastAtan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
