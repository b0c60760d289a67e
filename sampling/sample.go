package sampling

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
)

// CosineHemisphere returns a cosine-weighted direction in the local
// hemisphere around +Z, given two uniform samples in [0,1).
// pdf(direction) = cosTheta / pi.
func CosineHemisphere(u, v float32) m.Vec3 {
	phi := 2 * math.Pi * float64(u)
	r := float32(math.Sqrt(float64(v)))
	x := r * float32(math.Cos(phi))
	y := r * float32(math.Sin(phi))
	z := float32(math.Sqrt(float64(1 - v)))
	return m.Vec3{X: x, Y: y, Z: z}
}

// CosineHemispherePDF is the pdf of a direction drawn from CosineHemisphere,
// expressed in terms of its cosine with the hemisphere's +Z axis.
func CosineHemispherePDF(cosTheta float32) float32 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// UniformHemisphere returns a uniformly distributed direction over the local
// hemisphere around +Z. pdf = 1/(2*pi).
func UniformHemisphere(u, v float32) m.Vec3 {
	z := u
	r := float32(math.Sqrt(float64(1 - z*z)))
	phi := 2 * math.Pi * float64(v)
	return m.Vec3{X: r * float32(math.Cos(phi)), Y: r * float32(math.Sin(phi)), Z: z}
}

// UniformHemispherePDF is the constant pdf of UniformHemisphere.
func UniformHemispherePDF() float32 { return 1.0 / (2 * math.Pi) }

// PowerCosineHemisphere returns a direction drawn from a power-cosine lobe
// of exponent e around +Z, used for glossy (Phong-lobe) half-vector
// sampling. pdf = (e+1)/(2*pi) * cosTheta^e.
func PowerCosineHemisphere(u, v, exponent float32) m.Vec3 {
	z := float32(math.Pow(float64(u), 1.0/float64(exponent+1)))
	r := float32(math.Sqrt(float64(1 - z*z)))
	phi := 2 * math.Pi * float64(v)
	return m.Vec3{X: r * float32(math.Cos(phi)), Y: r * float32(math.Sin(phi)), Z: z}
}

// PowerCosineHemispherePDF is the pdf of a direction drawn from
// PowerCosineHemisphere, given its cosine with +Z.
func PowerCosineHemispherePDF(cosTheta, exponent float32) float32 {
	if cosTheta <= 0 {
		return 0
	}
	return (exponent + 1) / (2 * math.Pi) * float32(math.Pow(float64(cosTheta), float64(exponent)))
}

// UniformDisk maps two uniform samples to a uniformly distributed point on
// the unit disk using the concentric-square-to-disk mapping (avoids the
// polar-coordinate density distortion of naive sqrt(u) mapping).
func UniformDisk(u, v float32) (x, y float32) {
	su := 2*u - 1
	sv := 2*v - 1
	if su == 0 && sv == 0 {
		return 0, 0
	}
	var r, theta float32
	if absf(su) > absf(sv) {
		r = su
		theta = (math.Pi / 4) * (sv / su)
	} else {
		r = sv
		theta = (math.Pi / 2) - (math.Pi/4)*(su/sv)
	}
	return r * float32(math.Cos(float64(theta))), r * float32(math.Sin(float64(theta)))
}

// PixelFilter warps two uniform samples in [0,1) into an offset in [-1,1)
// with a triangular (tent) density, the sub-pixel jitter the camera uses to
// anti-alias each sample within its pixel.
func PixelFilter(u, v float32) (dx, dy float32) {
	return tentWarp(u), tentWarp(v)
}

func tentWarp(u float32) float32 {
	u *= 2
	if u < 1 {
		return float32(math.Sqrt(float64(u))) - 1
	}
	return 1 - float32(math.Sqrt(float64(2-u)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
