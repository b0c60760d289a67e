// Package loader compiles a glTF (.gltf/.glb) asset into a
// scenetables.Scene. It is the repository's reference scene compiler, not
// an authoritative part of the wire contract (SPEC_FULL.md §3 names the
// scene tables; how they get populated is left to whoever writes a
// compiler). It is grounded on the teacher's scene/gltf_loader.go, with
// geometry re-targeted from a CPU rasterizer's Mesh/Node graph to packed,
// read-only scene tables, and PBR metallic-roughness approximated to the
// Matte material family rather than Blinn-Phong.
package loader

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// Load opens a glTF document and compiles it into a Scene. Every scene gets
// a default camera framing the whole asset's bounds (the asset's own
// cameras are not read), and a scene with no light gets a single
// directional fill light; both are loader conveniences, not part of any
// wire contract.
func Load(path string) (*scenetables.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	scene := &scenetables.Scene{}
	cache := newImageCache()

	texRefs, baseColorTexRefs := convertMaterialTextures(doc, dir, cache, scene)
	matRefs := convertMaterials(doc, texRefs, baseColorTexRefs, scene)

	meshPrimShapes := convertMeshes(doc, scene)

	bounds := scenetables.AABB{
		Min: m.Point3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: m.Point3{X: -1e30, Y: -1e30, Z: -1e30},
	}

	var walk func(nodeIdx int, parent m.Mat4)
	walk = func(nodeIdx int, parent m.Mat4) {
		gn := doc.Nodes[nodeIdx]
		local := nodeLocalTransform(gn)
		world := parent.Mul(local)

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrimShapes) {
			for _, prim := range meshPrimShapes[int(*gn.Mesh)] {
				addMeshInstance(scene, prim, world, matRefs)
				expandBounds(&bounds, prim.objectBounds, world)
			}
		}

		for _, c := range gn.Children {
			walk(int(c), world)
		}
	}

	for _, root := range rootNodeIndices(doc) {
		walk(root, m.Mat4Identity())
	}

	if len(scene.Primitives) == 0 {
		bounds = scenetables.AABB{Min: m.Point3{X: -1, Y: -1, Z: -1}, Max: m.Point3{X: 1, Y: 1, Z: 1}}
	}

	if len(scene.LightIndex) == 0 {
		addDefaultLight(scene)
	}
	scene.Camera = defaultCamera(bounds)

	return scene, nil
}

// rootNodeIndices mirrors the teacher's root-collection fallback: prefer
// the document's default scene, otherwise collect every parentless node.
func rootNodeIndices(doc *gltf.Document) []int {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		roots := doc.Scenes[*doc.Scene].Nodes
		out := make([]int, len(roots))
		for i, r := range roots {
			out[i] = int(r)
		}
		return out
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var out []int
	for i, has := range hasParent {
		if !has {
			out = append(out, i)
		}
	}
	return out
}

// nodeLocalTransform composes a glTF node's TRS into a local matrix, using
// the node's quaternion rotation directly (Mat4TRS expects Euler angles,
// which glTF does not provide) rather than converting through Euler
// angles and losing precision/introducing gimbal ambiguity.
func nodeLocalTransform(gn *gltf.Node) m.Mat4 {
	t := gn.TranslationOrDefault()
	translation := m.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}

	r := gn.RotationOrDefault() // [x, y, z, w]
	rotation := m.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}

	s := gn.ScaleOrDefault()
	scale := m.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}

	return m.Mat4Translation(translation).Mul(rotation.ToMat4()).Mul(m.Mat4Scale(scale))
}

// meshPrimitiveShape is a build-time record of one compiled mesh
// primitive: its root BVH node offset plus the object-space bounds used to
// both build a world-space AABB per instance and grow the scene-wide
// default-camera bounds.
type meshPrimitiveShape struct {
	bvhRoot      int32
	materialIdx  int // index into doc.Materials, or -1 for the default material
	objectBounds scenetables.AABB
}

func addMeshInstance(scene *scenetables.Scene, prim meshPrimitiveShape, world m.Mat4, matRefs []matRef) {
	transformIdx := int32(len(scene.Transforms))
	scene.Transforms = append(scene.Transforms, scenetables.TransformPair{
		ObjectToWorld: world,
		WorldToObject: world.Inverse(),
	})

	worldBounds := transformAABB(prim.objectBounds, world)
	bvOffset := int32(len(scene.BoundingAABBs))
	scene.BoundingAABBs = append(scene.BoundingAABBs, worldBounds)

	var mat matRef
	if prim.materialIdx >= 0 && prim.materialIdx < len(matRefs) {
		mat = matRefs[prim.materialIdx]
	} else {
		mat = defaultMatRef(scene)
	}

	scene.Primitives = append(scene.Primitives, scenetables.Primitive{
		BoundingVolumeKind:   scenetables.BVKindAABB,
		BoundingVolumeOffset: bvOffset,
		ShapeKind:            scenetables.ShapeKindTriangleMesh,
		ShapeOffset:          prim.bvhRoot,
		MaterialKind:         mat.kind,
		MaterialOffset:       mat.offset,
		AreaLightKind:        scenetables.LightKindNone,
		Transform:            transformIdx,
		InstanceID:           int32(len(scene.Primitives)),
	})
}

func transformAABB(b scenetables.AABB, world m.Mat4) scenetables.AABB {
	out := scenetables.AABB{
		Min: m.Point3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: m.Point3{X: -1e30, Y: -1e30, Z: -1e30},
	}
	for i := 0; i < 8; i++ {
		corner := m.Point3{
			X: pick(i&1 == 0, b.Min.X, b.Max.X),
			Y: pick(i&2 == 0, b.Min.Y, b.Max.Y),
			Z: pick(i&4 == 0, b.Min.Z, b.Max.Z),
		}
		wc := world.MulVec3(corner)
		out.Min = minVec(out.Min, wc)
		out.Max = maxVec(out.Max, wc)
	}
	return out
}

func expandBounds(total *scenetables.AABB, objectBounds scenetables.AABB, world m.Mat4) {
	wb := transformAABB(objectBounds, world)
	total.Min = minVec(total.Min, wb.Min)
	total.Max = maxVec(total.Max, wb.Max)
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

// convertMeshes converts every glTF mesh's primitives into a compiled BVH
// plus flat Triangle rows, returned as meshPrimShapes[meshIndex] =
// []meshPrimitiveShape, one entry per primitive (a node references a mesh,
// not a single primitive, mirroring the teacher's meshPrims indirection).
func convertMeshes(doc *gltf.Document, scene *scenetables.Scene) [][]meshPrimitiveShape {
	out := make([][]meshPrimitiveShape, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			shape, err := convertMeshPrimitive(doc, prim, scene)
			if err != nil {
				continue
			}
			out[mi] = append(out[mi], shape)
		}
	}
	return out
}

func convertMeshPrimitive(doc *gltf.Document, prim *gltf.Primitive, scene *scenetables.Scene) (meshPrimitiveShape, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return meshPrimitiveShape{}, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return meshPrimitiveShape{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return meshPrimitiveShape{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var tris []triangleRef
	bounds := scenetables.AABB{
		Min: m.Point3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: m.Point3{X: -1e30, Y: -1e30, Z: -1e30},
	}

	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		a := toPoint(positions[ia])
		b := toPoint(positions[ib])
		c := toPoint(positions[ic])

		fn := faceNormal(a, b, c)
		na, nb, nc := fn, fn, fn
		if int(ia) < len(normals) {
			na = toVec(normals[ia])
		}
		if int(ib) < len(normals) {
			nb = toVec(normals[ib])
		}
		if int(ic) < len(normals) {
			nc = toVec(normals[ic])
		}

		var uva, uvb, uvc [2]float32
		if int(ia) < len(uvs) {
			uva = uvs[ia]
		}
		if int(ib) < len(uvs) {
			uvb = uvs[ib]
		}
		if int(ic) < len(uvs) {
			uvc = uvs[ic]
		}

		tangent := triangleTangent(a, b, c, uva, uvb, uvc, na)

		tri := scenetables.Triangle{
			A: a, B: b, C: c,
			UVA: uva, UVB: uvb, UVC: uvc,
			NormalA: na, NormalB: nb, NormalC: nc,
			TangentA: tangent, TangentB: tangent, TangentC: tangent,
		}

		offset := int32(len(scene.Triangles))
		scene.Triangles = append(scene.Triangles, tri)

		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		triBounds := scenetables.AABB{Min: minVec(minVec(a, b), c), Max: maxVec(maxVec(a, b), c)}
		bounds.Min = minVec(bounds.Min, triBounds.Min)
		bounds.Max = maxVec(bounds.Max, triBounds.Max)

		tris = append(tris, triangleRef{tri: tri, offset: offset, centroid: centroid, bounds: triBounds})
	}

	if len(tris) == 0 {
		return meshPrimitiveShape{}, fmt.Errorf("mesh primitive has no triangles")
	}

	root := buildMeshBVH(tris, &scene.MeshNodes, &scene.MeshTriangleOffsets)

	matIdx := -1
	if prim.Material != nil {
		matIdx = int(*prim.Material)
	}

	return meshPrimitiveShape{bvhRoot: root, materialIdx: matIdx, objectBounds: bounds}, nil
}

func toPoint(p [3]float32) m.Point3 { return m.Point3{X: p[0], Y: p[1], Z: p[2]} }
func toVec(v [3]float32) m.Vec3     { return m.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func faceNormal(a, b, c m.Point3) m.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// triangleTangent computes one flat per-triangle tangent from UV
// derivatives, grounded on scene/tangents.go's accumulate-then-orthogonalize
// approach but simplified to a single tangent per triangle (this loader
// stores one tangent value per corner rather than averaging across shared
// vertices, so there is nothing to accumulate across triangles). Falls
// back to an arbitrary perpendicular axis for degenerate UVs, matching
// tangents.go's tangentAbs(n.X) < 0.9 fallback test.
func triangleTangent(a, b, c m.Point3, uva, uvb, uvc [2]float32, n m.Vec3) m.Vec3 {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	du1, dv1 := uvb[0]-uva[0], uvb[1]-uva[1]
	du2, dv2 := uvc[0]-uva[0], uvc[1]-uva[1]

	det := du1*dv2 - du2*dv1
	if absf32(det) < 1e-10 {
		if absf32(n.X) < 0.9 {
			return m.Vec3{X: 1}.Cross(n).Normalize()
		}
		return m.Vec3{Y: 1}.Cross(n).Normalize()
	}

	r := 1 / det
	tangent := edge1.Mul(dv2 * r).Sub(edge2.Mul(dv1 * r))
	return orthogonalizeTangent(tangent, n)
}

func orthogonalizeTangent(t, n m.Vec3) m.Vec3 {
	proj := t.Sub(n.Mul(t.Dot(n)))
	if proj.LengthSqr() < 1e-12 {
		if absf32(n.X) < 0.9 {
			return m.Vec3{X: 1}.Cross(n).Normalize()
		}
		return m.Vec3{Y: 1}.Cross(n).Normalize()
	}
	return proj.Normalize()
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
