package film

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
)

// ToneMapKind selects the tone-mapping operator applied by ToneMap
// (spec.md §6's tone-mapper selector).
type ToneMapKind int32

const (
	ToneMapNone ToneMapKind = iota
	ToneMapReinhardV1
	ToneMapReinhardV2
	ToneMapUnreal3
	ToneMapFilmicACESv1
)

// sRGBGammaBreak is the piecewise sRGB transfer curve's linear/power
// segment boundary (spec.md §4.J).
const sRGBGammaBreak = float32(0.00304)

// ToneMap applies the named operator to a linear HDR color, given an
// exposure multiplier. Every operator is evaluated per-channel.
func ToneMap(kind ToneMapKind, color m.Vec3, exposure float32) m.Vec3 {
	exposed := color.Mul(exposure)
	switch kind {
	case ToneMapReinhardV1:
		return m.Vec3{X: reinhardV1(exposed.X), Y: reinhardV1(exposed.Y), Z: reinhardV1(exposed.Z)}
	case ToneMapReinhardV2:
		return m.Vec3{X: reinhardV2(exposed.X), Y: reinhardV2(exposed.Y), Z: reinhardV2(exposed.Z)}
	case ToneMapUnreal3:
		return m.Vec3{X: unreal3(exposed.X), Y: unreal3(exposed.Y), Z: unreal3(exposed.Z)}
	case ToneMapFilmicACESv1:
		return m.Vec3{X: filmicACESv1(exposed.X), Y: filmicACESv1(exposed.Y), Z: filmicACESv1(exposed.Z)}
	default:
		return exposed
	}
}

// reinhardV1 is the classic x/(1+x) operator.
func reinhardV1(x float32) float32 {
	return x / (1 + x)
}

// reinhardV2 extends Reinhard with a white point, here fixed at a
// perceptually reasonable burn-out of 4.0 so very bright pixels still
// clip to white instead of the unmodified curve's asymptotic darkening.
func reinhardV2(x float32) float32 {
	const whitePoint2 = 4.0 * 4.0
	return x * (1 + x/whitePoint2) / (1 + x)
}

// unreal3 is Unreal Engine 3's filmic approximation (Epic Games' published
// "cheap" filmic curve). The published curve has its gamma baked in; raising
// it to 2.2 turns it back into a linear value, so the later
// imageRedoGammaCorrection pass per spec.md §4.J encodes it only once.
func unreal3(x float32) float32 {
	return powf(x/(x+0.155)*1.019, 2.2)
}

// filmicACESv1 is the Narkowicz fit of the ACES reference tone-mapping
// curve, the standard "modified filmic ACES" approximation.
func filmicACESv1(x float32) float32 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	return m.Clamp((x*(a*x+b))/(x*(c*x+d)+e), 0, 1)
}

// SRGBEncode applies the sRGB piecewise transfer curve to a single linear
// channel value.
func SRGBEncode(x float32) float32 {
	x = m.Clamp(x, 0, 1)
	if x <= sRGBGammaBreak {
		return x * 12.92
	}
	return 1.055*powf(x, 1/2.4) - 0.055
}

// SRGBDecode is SRGBEncode's inverse, used only by round-trip tests
// (spec.md §8: sRGBEncode ∘ sRGBDecode(x) ≈ x).
func SRGBDecode(x float32) float32 {
	x = m.Clamp(x, 0, 1)
	if x <= sRGBGammaBreak*12.92 {
		return x / 12.92
	}
	return powf((x+0.055)/1.055, 2.4)
}

func powf(base, exp float32) float32 { return float32(math.Pow(float64(base), float64(exp))) }
