package loader

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// defaultCamera frames bounds with a thin-lens camera placed along -Z,
// far enough back to keep the whole bounding box in frame at a 50-degree
// field of view. A bare glTF asset may carry no camera at all, so the
// loader always supplies one; an asset's own camera nodes are not
// currently consumed (glTF cameras are an extension point the teacher's
// own loader also skipped).
func defaultCamera(bounds scenetables.AABB) scenetables.Camera {
	center := bounds.Min.Add(bounds.Max).Mul(0.5)
	extent := bounds.Max.Sub(bounds.Min)
	radius := extent.Length()*0.5 + 1e-3

	const fovDeg = float32(50)
	const degToRad = float32(3.14159265 / 180)
	fov := fovDeg * degToRad

	distance := radius / float32(math.Sin(float64(fov/2)))
	eye := center.Add(m.Vec3{Z: -distance})

	forward := center.Sub(eye).Normalize()
	basis := m.NewBasis(forward)

	return scenetables.Camera{
		FovX: fov,
		FovY: fov,
		Lens: scenetables.LensThin,
		Basis: basis,
		Eye:   eye,

		ApertureRadius: 0,
		FocalDistance:  distance,

		ResX: 512,
		ResY: 512,
	}
}

// addDefaultLight attaches a single directional fill light. Load calls it
// when the compiled scene's LightIndex is empty (emissive glTF materials do
// not add LightIndex entries), and LoadOBJ always calls it. This is a
// loader convenience, not a feature of any glTF asset.
func addDefaultLight(scene *scenetables.Scene) {
	offset := int32(len(scene.DirectionalLights))
	scene.DirectionalLights = append(scene.DirectionalLights, scenetables.DirectionalLight{
		Direction: m.Vec3{X: 0.3, Y: -0.8, Z: 0.3}.Normalize(),
		Emission:  m.Vec3{X: 3, Y: 3, Z: 3},
	})
	scene.LightIndex = append(scene.LightIndex, scenetables.LightRef{Kind: scenetables.LightKindDirectional, Offset: offset})
}
