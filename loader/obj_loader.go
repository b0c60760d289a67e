package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// objFaceVertex is one "v/vt/vn" face-vertex reference, 0-based, -1 for an
// absent component.
type objFaceVertex struct{ v, vt, vn int }

type objFace [3]objFaceVertex

type objObject struct {
	name    string
	matName string
	faces   []objFace
}

// LoadOBJ parses a Wavefront .obj asset (plus any referenced .mtl) into a
// Scene, fan-triangulating n-gons and synthesizing flat normals when the
// file carries none. It is this repository's second reference compiler,
// alongside Load's glTF path — neither is authoritative per SPEC_FULL.md §6.
//
// Grounded on scene/obj_loader.go's scan loop (v/vn/vt/f/o/g/usemtl/mtllib
// token dispatch, 0-based face-vertex indexing, fan triangulation,
// area-weighted flat-normal fallback) retargeted from building a
// rasterizer's indexed core.Vertex/Mesh pairs to building
// scenetables.Triangle rows and a BVH per object, with materials
// approximated to MatteMaterial the same way convertMaterials approximates
// glTF PBR materials.
func LoadOBJ(path string) (*scenetables.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []m.Point3
	var normals []m.Vec3
	var uvs [][2]float32
	mtls := map[string]objMTL{}

	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, m.Point3{X: parseF32(fields[1]), Y: parseF32(fields[2]), Z: parseF32(fields[3])})

		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, m.Vec3{X: parseF32(fields[1]), Y: parseF32(fields[2]), Z: parseF32(fields[3])})

		case "vt":
			if len(fields) < 3 {
				continue
			}
			uvs = append(uvs, [2]float32{parseF32(fields[1]), parseF32(fields[2])})

		case "o", "g":
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objObject{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 {
				loaded, err := loadMTL(filepath.Join(dir, fields[1]))
				if err == nil {
					for k, v := range loaded {
						mtls[k] = v
					}
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			var verts []objFaceVertex
			for _, tok := range fields[1:] {
				verts = append(verts, parseOBJFaceVertex(tok))
			}
			for i := 1; i+1 < len(verts); i++ {
				cur.faces = append(cur.faces, objFace{verts[0], verts[i], verts[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: scan %q: %w", path, err)
	}
	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("loader: no geometry in %q", path)
	}

	scene := &scenetables.Scene{}
	matCache := map[string]matRef{}
	bounds := scenetables.AABB{Min: m.Point3{X: 1e30, Y: 1e30, Z: 1e30}, Max: m.Point3{X: -1e30, Y: -1e30, Z: -1e30}}

	for _, obj := range objects {
		shape, ok := buildOBJMeshShape(obj, positions, normals, uvs, scene)
		if !ok {
			continue
		}
		mat := objMatRef(scene, mtls, matCache, obj.matName)
		addOBJMeshInstance(scene, shape, mat)
		expandBounds(&bounds, shape.objectBounds, m.Mat4Identity())
	}

	if len(scene.Primitives) == 0 {
		bounds = scenetables.AABB{Min: m.Point3{X: -1, Y: -1, Z: -1}, Max: m.Point3{X: 1, Y: 1, Z: 1}}
	}
	addDefaultLight(scene) // OBJ carries no light information at all
	scene.Camera = defaultCamera(bounds)

	return scene, nil
}

// buildOBJMeshShape triangulates one OBJ object's faces (already fan-split
// by LoadOBJ) into Triangle rows and a BVH, synthesizing flat normals when
// the object has none, matching scene/obj_loader.go's generateFlatNormals
// fallback but computed per-triangle here rather than accumulated and
// averaged per shared vertex, since Triangle rows already store one normal
// per corner rather than an indexed/deduplicated vertex buffer.
func buildOBJMeshShape(obj objObject, positions []m.Point3, normals []m.Vec3, uvs [][2]float32, scene *scenetables.Scene) (meshPrimitiveShape, bool) {
	var tris []triangleRef
	bounds := scenetables.AABB{Min: m.Point3{X: 1e30, Y: 1e30, Z: 1e30}, Max: m.Point3{X: -1e30, Y: -1e30, Z: -1e30}}

	for _, face := range obj.faces {
		a := safePosition(positions, face[0].v)
		b := safePosition(positions, face[1].v)
		c := safePosition(positions, face[2].v)

		fn := faceNormal(a, b, c)
		na := safeNormalOr(normals, face[0].vn, fn)
		nb := safeNormalOr(normals, face[1].vn, fn)
		nc := safeNormalOr(normals, face[2].vn, fn)

		uva := safeUV(uvs, face[0].vt)
		uvb := safeUV(uvs, face[1].vt)
		uvc := safeUV(uvs, face[2].vt)

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
		return meshPrimitiveShape{}, false
	}
	root := buildMeshBVH(tris, &scene.MeshNodes, &scene.MeshTriangleOffsets)
	return meshPrimitiveShape{bvhRoot: root, materialIdx: -1, objectBounds: bounds}, true
}

// addOBJMeshInstance is addMeshInstance specialized to a single already-
// resolved material rather than an index into a matRefs table, since OBJ
// materials are named (by "usemtl"), not indexed.
func addOBJMeshInstance(scene *scenetables.Scene, prim meshPrimitiveShape, mat matRef) {
	transformIdx := int32(len(scene.Transforms))
	scene.Transforms = append(scene.Transforms, scenetables.TransformPair{
		ObjectToWorld: m.Mat4Identity(),
		WorldToObject: m.Mat4Identity(),
	})

	bvOffset := int32(len(scene.BoundingAABBs))
	scene.BoundingAABBs = append(scene.BoundingAABBs, prim.objectBounds)

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

func safePosition(positions []m.Point3, i int) m.Point3 {
	if i >= 0 && i < len(positions) {
		return positions[i]
	}
	return m.Point3{}
}

func safeNormalOr(normals []m.Vec3, i int, fallback m.Vec3) m.Vec3 {
	if i >= 0 && i < len(normals) {
		return normals[i]
	}
	return fallback
}

func safeUV(uvs [][2]float32, i int) [2]float32 {
	if i >= 0 && i < len(uvs) {
		return uvs[i]
	}
	return [2]float32{}
}

// parseOBJFaceVertex parses one face-vertex token: "v", "v/vt", "v//vn", or
// "v/vt/vn". OBJ indices are 1-based; this returns 0-based, -1 if absent.
func parseOBJFaceVertex(tok string) objFaceVertex {
	parts := strings.Split(tok, "/")
	parseIdx := func(s string) int {
		if s == "" {
			return -1
		}
		n, _ := strconv.Atoi(s)
		if n > 0 {
			return n - 1
		}
		return n
	}
	fv := objFaceVertex{v: -1, vt: -1, vn: -1}
	if len(parts) > 0 {
		fv.v = parseIdx(parts[0])
	}
	if len(parts) > 1 {
		fv.vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		fv.vn = parseIdx(parts[2])
	}
	return fv
}

func parseF32(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}

// objMTL is one parsed "newmtl" block's fields this loader cares about; Ks
// and Ns (specular/shininess) have no analog in MatteMaterial and are
// dropped, the same diffuse-only approximation convertMaterials applies to
// glTF PBR materials.
type objMTL struct {
	diffuse m.Vec3
}

func loadMTL(path string) (map[string]objMTL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open mtl %q: %w", path, err)
	}
	defer f.Close()

	mats := map[string]objMTL{}
	cur := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = fields[1]
				mats[cur] = objMTL{diffuse: m.Vec3{X: 0.7, Y: 0.7, Z: 0.7}}
			}
		case "Kd":
			if cur != "" && len(fields) >= 4 {
				mats[cur] = objMTL{diffuse: m.Vec3{X: parseF32(fields[1]), Y: parseF32(fields[2]), Z: parseF32(fields[3])}}
			}
		}
	}
	return mats, scanner.Err()
}

// objMatRef resolves an OBJ material name to a compiled matRef, caching by
// name so a material referenced by several objects is only appended once.
func objMatRef(scene *scenetables.Scene, mtls map[string]objMTL, cache map[string]matRef, name string) matRef {
	if name == "" {
		return defaultMatRef(scene)
	}
	if ref, ok := cache[name]; ok {
		return ref
	}
	mtl, ok := mtls[name]
	if !ok {
		ref := defaultMatRef(scene)
		cache[name] = ref
		return ref
	}
	offset := int32(len(scene.MatteMaterials))
	scene.MatteMaterials = append(scene.MatteMaterials, scenetables.MatteMaterial{
		Emission:           scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{})},
		DiffuseReflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, mtl.diffuse)},
	})
	ref := matRef{kind: scenetables.MaterialKindMatte, offset: offset}
	cache[name] = ref
	return ref
}
