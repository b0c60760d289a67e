// Package scenetables holds the read-only, per-pass-immutable numeric tables
// that the render kernel indexes: bounding volumes, shapes, textures,
// materials, lights, primitives, the per-primitive transform pairs, and the
// camera. See SPEC_FULL.md §3 for the wire contract these realize.
//
// The kernel never writes to a Scene. A new pass may swap the whole Scene
// for another; mid-pass mutation is not supported and not needed, since §5
// treats the tables as read-only for the duration of a pass.
package scenetables

// BVKind tags the kind of bounding volume stored at a primitive's
// BoundingVolumeOffset. An unknown tag is treated as a miss (§4.D/§7).
type BVKind int32

const (
	BVKindInfinite BVKind = iota
	BVKindAABB
	BVKindSphere
)

// ShapeKind tags the kind of shape stored at a primitive's ShapeOffset.
type ShapeKind int32

const (
	ShapeKindPlane ShapeKind = iota
	ShapeKindSphere
	ShapeKindCuboid
	ShapeKindTorus
	ShapeKindTriangle
	ShapeKindTriangleMesh
)

// MaterialKind tags the kind of material stored at a primitive's
// MaterialOffset. There is no "no material" kind: every primitive names a
// real material. An unknown tag, possible only in malformed input, is
// treated by the material package as black/no-op.
type MaterialKind int32

const (
	MaterialKindMatte MaterialKind = iota
	MaterialKindMirror
	MaterialKindGlass
	MaterialKindGlassTextured
	MaterialKindMetal
	MaterialKindClearCoat
)

// LightKind tags the kind of light stored at a light's Offset, both in the
// per-primitive AreaLightOffset field and in the scene-wide LightIndex.
type LightKind int32

const (
	LightKindNone LightKind = iota
	LightKindPoint
	LightKindSpot
	LightKindDirectional
	LightKindArea
	LightKindLDRImage
	LightKindPerezSky
)

// TextureKind tags the kind of texture stored at a texture offset.
type TextureKind int32

const (
	TextureKindConstant TextureKind = iota
	TextureKindCheckerboard
	TextureKindBullseye
	TextureKindBlend
	TextureKindMarble
	TextureKindSimplexFBM
	TextureKindLDRImage
	TextureKindSurfaceNormal
	TextureKindUV
	TextureKindFunction
)

// MeshNodeKind tags a TriangleMesh BVH node as internal or a leaf.
type MeshNodeKind int32

const (
	MeshNodeInternal MeshNodeKind = iota
	MeshNodeLeaf
)

// MaxTextureChainHops bounds the texture-chain evaluation loop (§4.F); the
// scene compiler is expected to forbid cycles, but the evaluator enforces
// this defensively regardless (open question in spec.md §9).
const MaxTextureChainHops = 16
