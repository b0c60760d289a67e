package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// TextureRef names a texture by kind + offset into the matching kind-specific
// table, the same "(kind,offset)" addressing used throughout the scene
// tables.
type TextureRef struct {
	Kind   TextureKind
	Offset int32
}

// ConstantTexture is a texture row: a flat RGB color.
type ConstantTexture struct {
	Color m.Vec3
}

// CheckerboardTexture is a texture row selecting between two child textures
// based on which unit cell the shading point falls in.
type CheckerboardTexture struct {
	A, B  TextureRef
	Scale float32
}

// BullseyeTexture is a texture row selecting between two child textures
// based on concentric rings around a center point.
type BullseyeTexture struct {
	A, B   TextureRef
	Center m.Point3
	Scale  float32
}

// BlendTexture is a texture row linearly blending two child textures by a
// fixed amount.
type BlendTexture struct {
	A, B   TextureRef
	Amount float32
}

// MarbleTexture is a texture row: Perlin-turbulence-driven marble veining.
type MarbleTexture struct {
	Color     m.Vec3
	Frequency float32
	Scale     float32
	Octaves   int32
}

// SimplexFBMTexture is a texture row: simplex-noise fractional Brownian
// motion modulating a base color.
type SimplexFBMTexture struct {
	Color      m.Vec3
	Frequency  float32
	Gain       float32
	Lacunarity float32
	Octaves    int32
}

// LDRImageTexture is a texture row wrapping an inlined 8-bit image, used both
// as a surface texture and (reused by light.go) as an environment map.
type LDRImageTexture struct {
	Angle      float32 // radians, rotates the UV before lookup
	ScaleU     float32
	ScaleV     float32
	Width      int32
	Height     int32
	PixelStart int32 // offset into Scene.LDRImagePixels (RGB, row-major)
}
