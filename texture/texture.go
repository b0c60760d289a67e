// Package texture evaluates the scene's texture chain at a shading point:
// Constant, Checkerboard, Bullseye, Blend, Marble, SimplexFBM, LDRImage,
// SurfaceNormal, and UV textures, looping through Checkerboard/Bullseye/
// Blend's child selection until a leaf texture is reached. Grounded on
// the teacher's scene/texture.go Texture struct (RGBA8 pixel storage,
// bilinear-lookup shape) generalized from "one flat image texture" to the
// spec's full texture-kind chain.
package texture

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// Eval resolves a texture reference to an RGB color at the given shading
// point, surface normal, and UV coordinates. An unknown kind or a chain
// that exceeds scenetables.MaxTextureChainHops yields black (§7's
// deterministic no-op policy), never a panic.
func Eval(scene *scenetables.Scene, ref scenetables.TextureRef, point m.Point3, normal m.Vec3, u, v float32) m.Vec3 {
	for hop := 0; hop < scenetables.MaxTextureChainHops; hop++ {
		switch ref.Kind {
		case scenetables.TextureKindConstant:
			return scene.ConstantTextures[ref.Offset].Color

		case scenetables.TextureKindCheckerboard:
			c := scene.CheckerboardTextures[ref.Offset]
			cell := floorInt(point.X*c.Scale) + floorInt(point.Y*c.Scale) + floorInt(point.Z*c.Scale)
			if cell%2 == 0 {
				ref = c.A
			} else {
				ref = c.B
			}
			continue

		case scenetables.TextureKindBullseye:
			b := scene.BullseyeTextures[ref.Offset]
			dist := point.Sub(b.Center).Length() * b.Scale
			if floorInt(dist)%2 == 0 {
				ref = b.A
			} else {
				ref = b.B
			}
			continue

		case scenetables.TextureKindBlend:
			bl := scene.BlendTextures[ref.Offset]
			colorA := Eval(scene, bl.A, point, normal, u, v)
			colorB := Eval(scene, bl.B, point, normal, u, v)
			return colorA.Lerp(colorB, bl.Amount)

		case scenetables.TextureKindMarble:
			mb := scene.MarbleTextures[ref.Offset]
			turb := m.PerlinTurbulence(point.Mul(mb.Frequency), int(mb.Octaves))
			veins := sinf(point.X*mb.Scale + 10*turb)
			shade := 0.5 + 0.5*veins
			return mb.Color.Mul(shade)

		case scenetables.TextureKindSimplexFBM:
			sf := scene.SimplexFBMTextures[ref.Offset]
			n := m.SimplexFBM(point.Mul(sf.Frequency), int(sf.Octaves), sf.Frequency, sf.Gain, sf.Lacunarity)
			return sf.Color.Mul(0.5 + 0.5*n)

		case scenetables.TextureKindLDRImage:
			img := scene.LDRImageTextures[ref.Offset]
			return bilinearSampleLDR(scene, img, u, v)

		case scenetables.TextureKindSurfaceNormal:
			return normal.Mul(0.5).Add(m.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

		case scenetables.TextureKindUV:
			return m.Vec3{X: u, Y: v, Z: 0}

		case scenetables.TextureKindFunction:
			// Reserved for host-supplied procedural textures; the kernel
			// itself has no concrete function table to call into, so this
			// degrades to the UV debug color per §7's unknown-tag policy.
			return m.Vec3{X: u, Y: v, Z: 0}

		default:
			return m.Vec3{}
		}
	}
	return m.Vec3{}
}

func floorInt(x float32) int {
	i := int(x)
	if x < 0 && float32(i) != x {
		i--
	}
	return i
}

func sinf(x float32) float32 {
	return float32(sin64(float64(x)))
}
