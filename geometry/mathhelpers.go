package geometry

import "math"

const piF = float32(math.Pi)

func fastAtan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func fastAsin(x float32) float32 {
	return float32(math.Asin(float64(x)))
}

func sqrtf32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
