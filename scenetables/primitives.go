package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// TransformPair is a per-primitive row pairing a primitive's object-to-world
// transform with its precomputed inverse, so traversal never inverts a
// matrix per ray (§4.E).
type TransformPair struct {
	ObjectToWorld m.Mat4
	WorldToObject m.Mat4
}

// Primitive is the central row of the scene: it binds one shape, one
// bounding volume, one material, an optional area light, and one transform
// into a single traceable object. BoundingVolumeKind/Offset are checked
// first in traversal's InfiniteBoundingVolume-first ordering contract (§9
// Open Question #2): a primitive whose BoundingVolumeKind is
// BVKindInfinite is never culled by a bounds test and is always descended
// into.
type Primitive struct {
	BoundingVolumeKind   BVKind
	BoundingVolumeOffset int32

	ShapeKind   ShapeKind
	ShapeOffset int32

	MaterialKind   MaterialKind
	MaterialOffset int32

	// AreaLightKind is LightKindNone when the primitive emits no light of
	// its own (the common case); otherwise it is LightKindArea and
	// AreaLightOffset indexes Scene.AreaLights.
	AreaLightKind   LightKind
	AreaLightOffset int32

	Transform int32 // offset into Scene.Transforms

	InstanceID int32 // stable identity across passes, for AOVs/debugging
}
