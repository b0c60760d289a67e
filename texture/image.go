package texture

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func sin64(x float64) float64 { return math.Sin(x) }
func cos64(x float64) float64 { return math.Cos(x) }

// SampleEquirect maps a world-space direction to equirectangular (u,v)
// (u=0.5+atan2(z,x)/2π, v=0.5−asin(y)/π, per spec.md §4.H) and bilinearly
// samples the image, for use as an environment map by both a surface
// texture lookup and light.EvaluateEmitted/SampleIncoming.
func SampleEquirect(scene *scenetables.Scene, img scenetables.LDRImageTexture, direction m.Vec3) m.Vec3 {
	d := direction.Normalize()
	u := 0.5 + float32(math.Atan2(float64(d.Z), float64(d.X)))/(2*math.Pi)
	v := 0.5 - float32(math.Asin(float64(clamp(d.Y, -1, 1))))/math.Pi
	return bilinearSampleLDR(scene, img, u, v)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// bilinearSampleLDR rotates (u,v) by the image's stored angle, scales it by
// the image's stored per-axis scale and resolution, wraps it periodically,
// and bilinearly filters the four surrounding texels. Grounded on the
// teacher's scene/texture.go RGBA8 pixel convention, narrowed to the RGB
// triples scenetables.Scene.LDRImagePixels stores.
func bilinearSampleLDR(scene *scenetables.Scene, img scenetables.LDRImageTexture, u, v float32) m.Vec3 {
	ca, sa := float32(cos64(float64(img.Angle))), float32(sin64(float64(img.Angle)))
	ru := u*ca - v*sa
	rv := u*sa + v*ca

	x := wrap01(ru*img.ScaleU) * float32(img.Width)
	y := wrap01(rv*img.ScaleV) * float32(img.Height)

	x0 := floorInt(x)
	y0 := floorInt(y)
	fx := x - float32(x0)
	fy := y - float32(y0)

	x1 := x0 + 1
	y1 := y0 + 1

	c00 := texel(scene, img, x0, y0)
	c10 := texel(scene, img, x1, y0)
	c01 := texel(scene, img, x0, y1)
	c11 := texel(scene, img, x1, y1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

func texel(scene *scenetables.Scene, img scenetables.LDRImageTexture, x, y int) m.Vec3 {
	w, h := int(img.Width), int(img.Height)
	x = ((x % w) + w) % w
	y = ((y % h) + h) % h
	index := int32(y*w + x)
	r, g, b := scene.LDRImagePixelAt(img.PixelStart, index)
	const inv255 = 1.0 / 255.0
	return m.Vec3{X: float32(r) * inv255, Y: float32(g) * inv255, Z: float32(b) * inv255}
}

func wrap01(x float32) float32 {
	x = x - float32(floorInt(x))
	if x < 0 {
		x++
	}
	return x
}
