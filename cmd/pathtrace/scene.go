package main

import (
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// builtinScene is a small hardcoded scene used whenever the config names no
// scene_file: a matte sphere on a matte ground plane, lit by one
// directional light. It exists so the driver is runnable with no external
// glTF asset, the way cmd/demo's game loop always had something to draw
// even before a .gorscene file was loaded.
func builtinScene() *scenetables.Scene {
	scene := &scenetables.Scene{}

	groundColor := addConstant(scene, m.Vec3{X: 0.6, Y: 0.6, Z: 0.65})
	sphereColor := addConstant(scene, m.Vec3{X: 0.8, Y: 0.25, Z: 0.2})

	groundMat := int32(len(scene.MatteMaterials))
	scene.MatteMaterials = append(scene.MatteMaterials, scenetables.MatteMaterial{DiffuseReflectance: groundColor})

	sphereMat := int32(len(scene.MatteMaterials))
	scene.MatteMaterials = append(scene.MatteMaterials, scenetables.MatteMaterial{DiffuseReflectance: sphereColor})

	identity := addTransform(scene, m.Mat4Identity(), m.Mat4Identity())

	groundPlane := int32(len(scene.Planes))
	scene.Planes = append(scene.Planes, scenetables.Plane{Point: m.Point3{Y: -1}, Normal: m.Vec3{Y: 1}})
	scene.Primitives = append(scene.Primitives, scenetables.Primitive{
		BoundingVolumeKind: scenetables.BVKindInfinite,
		ShapeKind:          scenetables.ShapeKindPlane,
		ShapeOffset:        groundPlane,
		MaterialKind:       scenetables.MaterialKindMatte,
		MaterialOffset:     groundMat,
		Transform:          identity,
		InstanceID:         0,
	})

	sphereShape := int32(len(scene.Spheres))
	scene.Spheres = append(scene.Spheres, scenetables.Sphere{Center: m.Point3{}, Radius: 1})
	sphereBV := int32(len(scene.BoundingSpheres))
	scene.BoundingSpheres = append(scene.BoundingSpheres, scenetables.BoundingSphere{Center: m.Point3{}, Radius: 1})
	scene.Primitives = append(scene.Primitives, scenetables.Primitive{
		BoundingVolumeKind:   scenetables.BVKindSphere,
		BoundingVolumeOffset: sphereBV,
		ShapeKind:            scenetables.ShapeKindSphere,
		ShapeOffset:          sphereShape,
		MaterialKind:         scenetables.MaterialKindMatte,
		MaterialOffset:       sphereMat,
		Transform:            identity,
		InstanceID:           1,
	})

	scene.DirectionalLights = append(scene.DirectionalLights, scenetables.DirectionalLight{
		Direction: m.Vec3{X: 0.3, Y: -0.8, Z: 0.4}.Normalize(),
		Emission:  m.Vec3{X: 4, Y: 4, Z: 4},
	})
	scene.LightIndex = append(scene.LightIndex, scenetables.LightRef{Kind: scenetables.LightKindDirectional, Offset: 0})

	scene.Camera = scenetables.Camera{
		FovX:  0.8,
		FovY:  0.8,
		Lens:  scenetables.LensThin,
		Basis: m.NewBasis(m.Vec3{X: -0.1, Y: -0.15, Z: 1}),
		Eye:   m.Point3{X: 0, Y: 0.5, Z: -4},
		ResX:  512,
		ResY:  512,
	}
	return scene
}

func addConstant(scene *scenetables.Scene, color m.Vec3) scenetables.TextureRef {
	offset := int32(len(scene.ConstantTextures))
	scene.ConstantTextures = append(scene.ConstantTextures, scenetables.ConstantTexture{Color: color})
	return scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: offset}
}

func addTransform(scene *scenetables.Scene, objectToWorld, worldToObject m.Mat4) int32 {
	offset := int32(len(scene.Transforms))
	scene.Transforms = append(scene.Transforms, scenetables.TransformPair{ObjectToWorld: objectToWorld, WorldToObject: worldToObject})
	return offset
}
