package loader

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// matRef names a compiled material by kind + offset, the same (kind,
// offset) addressing scenetables uses throughout.
type matRef struct {
	kind   scenetables.MaterialKind
	offset int32
}

// convertMaterialTextures decodes every glTF texture referenced by a
// baseColorTexture slot into an LDRImageTexture row, grounded on the
// teacher's texCache pass (gltf_loader.go step 1) but narrowed to the one
// texture role this loader's Matte-material approximation uses.
//
// Returns texRefs[gltfTextureIndex] = scenetables.TextureRef for every
// successfully decoded texture (zero value kind/offset for the rest), and
// ok[gltfTextureIndex] reporting which entries are real; convertMaterials
// checks ok, not the ref, to decide "no texture".
func convertMaterialTextures(doc *gltf.Document, dir string, cache *imageCache, scene *scenetables.Scene) (texRefs []scenetables.TextureRef, ok []bool) {
	texRefs = make([]scenetables.TextureRef, len(doc.Textures))
	ok = make([]bool, len(doc.Textures))

	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var decoded *decodedImage
		var err error
		switch {
		case img.BufferView != nil:
			raw, readErr := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if readErr != nil {
				continue
			}
			key := fmt.Sprintf("buffer:%d", *img.BufferView)
			decoded, err = cache.decodeBytes(key, raw)
		case img.URI != "" && !img.IsEmbeddedResource():
			decoded, err = cache.decodeFile(filepath.Join(dir, img.URI))
		default:
			continue
		}
		if err != nil || decoded == nil {
			continue
		}

		ldr := appendLDRImage(scene, decoded)
		offset := int32(len(scene.LDRImageTextures))
		scene.LDRImageTextures = append(scene.LDRImageTextures, ldr)
		texRefs[i] = scenetables.TextureRef{Kind: scenetables.TextureKindLDRImage, Offset: offset}
		ok[i] = true
	}
	return texRefs, ok
}

// convertMaterials approximates every glTF PBR metallic-roughness material
// as a MatteMaterial (§9 Open Question: the spec names no PBR material
// family, so a diffuse-only approximation is the loader's own choice,
// matching the teacher's own "PBR → Phong approximation" comment in
// gltf_loader.go, here targeting Matte instead of Phong since that's the
// only pure-diffuse family the scene tables define).
func convertMaterials(doc *gltf.Document, texRefs []scenetables.TextureRef, hasTex []bool, scene *scenetables.Scene) []matRef {
	out := make([]matRef, len(doc.Materials))
	for i, gm := range doc.Materials {
		diffuse := scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{X: 0.8, Y: 0.8, Z: 0.8})}
		emission := scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{})}

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			diffuse = scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{X: float32(cf[0]), Y: float32(cf[1]), Z: float32(cf[2])})}
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if int(idx) < len(hasTex) && hasTex[idx] {
					diffuse = texRefs[idx]
				}
			}
		}
		e := gm.EmissiveFactor
		if e[0] != 0 || e[1] != 0 || e[2] != 0 {
			emission = scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{X: float32(e[0]), Y: float32(e[1]), Z: float32(e[2])})}
		}

		offset := int32(len(scene.MatteMaterials))
		scene.MatteMaterials = append(scene.MatteMaterials, scenetables.MatteMaterial{
			Emission:           emission,
			DiffuseReflectance: diffuse,
		})
		out[i] = matRef{kind: scenetables.MaterialKindMatte, offset: offset}
	}
	return out
}

func addConstantTexture(scene *scenetables.Scene, color m.Vec3) int32 {
	offset := int32(len(scene.ConstantTextures))
	scene.ConstantTextures = append(scene.ConstantTextures, scenetables.ConstantTexture{Color: color})
	return offset
}

// defaultMatRef is the material assigned to a mesh primitive with no
// material index (a bare glTF asset is allowed to omit materials
// entirely): a flat grey diffuse surface.
func defaultMatRef(scene *scenetables.Scene) matRef {
	offset := int32(len(scene.MatteMaterials))
	scene.MatteMaterials = append(scene.MatteMaterials, scenetables.MatteMaterial{
		Emission:           scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{})},
		DiffuseReflectance: scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: addConstantTexture(scene, m.Vec3{X: 0.7, Y: 0.7, Z: 0.7})},
	})
	return matRef{kind: scenetables.MaterialKindMatte, offset: offset}
}
