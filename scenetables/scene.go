package scenetables

// Scene is the full set of packed tables for one render pass. It is built
// once by a scene compiler (the loader package is this repository's
// reference compiler) and is read-only for the duration of a pass; a new
// pass swaps in a different *Scene rather than mutating one in place.
//
// Every cross-table reference is an integer (kind, offset) pair resolved
// by the accessor methods below; there are no pointers between tables.
type Scene struct {
	Camera Camera

	Primitives []Primitive
	Transforms []TransformPair

	BoundingAABBs    []AABB
	BoundingSpheres  []BoundingSphere

	Planes         []Plane
	Spheres        []Sphere
	Cuboids        []Cuboid
	Toruses        []Torus
	Triangles      []Triangle
	MeshNodes      []MeshNode
	MeshTriangleOffsets []int32 // leaf indirection into Triangles

	ConstantTextures     []ConstantTexture
	CheckerboardTextures []CheckerboardTexture
	BullseyeTextures     []BullseyeTexture
	BlendTextures        []BlendTexture
	MarbleTextures       []MarbleTexture
	SimplexFBMTextures   []SimplexFBMTexture
	LDRImageTextures     []LDRImageTexture
	LDRImagePixels       []byte // RGB triples, row-major, referenced by PixelStart

	MatteMaterials         []MatteMaterial
	MirrorMaterials        []MirrorMaterial
	GlassMaterials         []GlassMaterial
	GlassTexturedMaterials []GlassTexturedMaterial
	MetalMaterials         []MetalMaterial
	ClearCoatMaterials     []ClearCoatMaterial

	PointLights       []PointLight
	SpotLights        []SpotLight
	DirectionalLights []DirectionalLight
	AreaLights        []AreaLight
	LDRImageLights    []LDRImageLight
	PerezSkyLights    []PerezSkyLight

	// LightIndex enumerates every light in the scene for light-sampling
	// purposes, including one LightRef per AreaLight row (area lights are
	// otherwise discovered only by hitting their primitive).
	LightIndex []LightRef
}

// AABBAt resolves a bounding-volume offset of kind BVKindAABB.
func (s *Scene) AABBAt(offset int32) AABB { return s.BoundingAABBs[offset] }

// BoundingSphereAt resolves a bounding-volume offset of kind BVKindSphere.
func (s *Scene) BoundingSphereAt(offset int32) BoundingSphere {
	return s.BoundingSpheres[offset]
}

// PlaneAt resolves a shape offset of kind ShapeKindPlane.
func (s *Scene) PlaneAt(offset int32) Plane { return s.Planes[offset] }

// SphereAt resolves a shape offset of kind ShapeKindSphere.
func (s *Scene) SphereAt(offset int32) Sphere { return s.Spheres[offset] }

// CuboidAt resolves a shape offset of kind ShapeKindCuboid.
func (s *Scene) CuboidAt(offset int32) Cuboid { return s.Cuboids[offset] }

// TorusAt resolves a shape offset of kind ShapeKindTorus.
func (s *Scene) TorusAt(offset int32) Torus { return s.Toruses[offset] }

// TriangleAt resolves a shape offset of kind ShapeKindTriangle.
func (s *Scene) TriangleAt(offset int32) Triangle { return s.Triangles[offset] }

// MeshNodeAt resolves a TriangleMesh BVH node offset.
func (s *Scene) MeshNodeAt(offset int32) MeshNode { return s.MeshNodes[offset] }

// MeshLeafTriangle resolves the i-th triangle of a leaf node's run.
func (s *Scene) MeshLeafTriangle(node MeshNode, i int32) Triangle {
	return s.Triangles[s.MeshTriangleOffsets[node.TriangleStart+i]]
}

// TransformAt resolves a primitive's Transform field.
func (s *Scene) TransformAt(offset int32) TransformPair { return s.Transforms[offset] }

// AreaLightAt resolves a primitive's AreaLightOffset when AreaLightKind is
// LightKindArea.
func (s *Scene) AreaLightAt(offset int32) AreaLight { return s.AreaLights[offset] }

// LDRImagePixelAt returns the RGB triple at byte offset start + 3*index
// within LDRImagePixels.
func (s *Scene) LDRImagePixelAt(start int32, index int32) (r, g, b byte) {
	base := start + 3*index
	return s.LDRImagePixels[base], s.LDRImagePixels[base+1], s.LDRImagePixels[base+2]
}
