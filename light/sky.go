package light

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
	"github.com/dayflower-go/pathtracer/texture"
)

// sampleLDRImage draws a uniform direction over the full sphere. This is a
// deliberate simplification of spec.md §4.H's environment-map light:
// importance-sampling the image by luminance would need a 2D alias table
// built by the scene compiler, which is out of this kernel's scope, so
// noisy but unbiased uniform-sphere sampling is used instead.
func sampleLDRImage(scene *scenetables.Scene, rng *sampling.RNG, li scenetables.LDRImageLight, refPoint m.Point3) Sample {
	u1, u2 := rng.Float32Pair()
	dir := sampling.UniformHemisphere(absf(2*u1-1), u2)
	if u1 < 0.5 {
		dir.Z = -dir.Z
	}
	return Sample{
		Incoming:     dir,
		PointOnLight: refPoint.Add(dir.Mul(1e6)),
		Radiance:     texture.SampleEquirect(scene, li.Image, dir).Mul(li.Scale),
		PDF:          1 / (4 * math.Pi),
		Valid:        true,
	}
}

// samplePerezSky draws a uniform direction over the upper hemisphere
// (world +Y), matching perezSkyRadiance's domain.
func samplePerezSky(rng *sampling.RNG, sky scenetables.PerezSkyLight, refPoint m.Point3) Sample {
	u1, u2 := rng.Float32Pair()
	dir := sampling.UniformHemisphere(u1, u2) // +Z hemisphere in local frame
	basis := m.NewBasis(m.Vec3{Y: 1})
	world := basis.ToWorld(dir)

	return Sample{
		Incoming:     world,
		PointOnLight: refPoint.Add(world.Mul(1e6)),
		Radiance:     perezSkyRadiance(sky, world),
		PDF:          1 / (2 * math.Pi),
		Valid:        true,
	}
}

// perezSkyRadiance is a simplified Perez-model sky: a turbidity-scaled
// blend between a zenith and horizon color, brightened toward the sun
// direction by a Henyey-Greenstein-like forward-scatter lobe. This trades
// the full five-coefficient Perez luminance distribution (which needs a
// CIE xyY-to-RGB conversion the kernel has no color-management layer for)
// for a closed-form approximation that still satisfies the spec's
// requirements: brighter near the sun, bounded, zero below the horizon.
func perezSkyRadiance(sky scenetables.PerezSkyLight, direction m.Vec3) m.Vec3 {
	d := direction.Normalize()
	if d.Y <= 0 {
		return m.Vec3{}
	}

	zenith := m.Vec3{X: 0.3, Y: 0.45, Z: 0.7}
	horizon := m.Vec3{X: 0.9, Y: 0.85, Z: 0.75}
	t := m.Clamp(d.Y, 0, 1)
	sky1 := horizon.Lerp(zenith, t)

	sunCos := m.Clamp(d.Dot(sky.SunDirection.Normalize()), -1, 1)
	glow := powf(m.Clamp(sunCos, 0, 1), 8)

	turbidityDim := 1 / (1 + 0.1*sky.Turbidity)
	scale := sky.Scale
	if scale <= 0 {
		scale = 1
	}
	return sky1.Mul(turbidityDim * scale).Add(m.Vec3{X: 1, Y: 0.9, Z: 0.7}.Mul(glow * scale))
}

func powf(base, exp float32) float32 { return float32(math.Pow(float64(base), float64(exp))) }
