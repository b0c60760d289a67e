package light

import (
	"math"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/material"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// sampleArea draws a point uniformly on the emitting primitive's shape and
// converts the area-measure sample into a solid-angle sample at refPoint.
// Sphere and Triangle are the two shapes sampled exactly; any other shape
// kind falls back to one fixed point with a nominal area of 1 (a Cuboid's
// center, a Plane's stored point and normal, the object-space origin with
// normal +Y for the rest), which is geometrically approximate but keeps
// the light usable rather than contributing nothing (documented
// simplification: the packed tables never flag which shapes a scene
// compiler intends to use as emitters).
func sampleArea(scene *scenetables.Scene, rng *sampling.RNG, al scenetables.AreaLight, refPoint m.Point3) Sample {
	prim := scene.Primitives[al.Primitive]
	tp := scene.TransformAt(prim.Transform)

	pointObj, normalObj, area := sampleShapeSurface(scene, rng, prim.ShapeKind, prim.ShapeOffset)
	pointWorld := tp.ObjectToWorld.MulVec3(pointObj)
	normalWorld := tp.WorldToObject.Transpose().MulDir3(normalObj).Normalize()

	toLight := pointWorld.Sub(refPoint)
	dist2 := toLight.LengthSqr()
	if dist2 <= 1e-12 {
		return Sample{}
	}
	dist := sqrtf(dist2)
	dir := toLight.Mul(1 / dist)

	cosLight := normalWorld.Dot(dir.Negate())
	if !al.TwoSided && cosLight <= 0 {
		return Sample{}
	}
	cosLight = absf(cosLight)
	if cosLight < 1e-6 || area <= 0 {
		return Sample{}
	}

	emission := material.Emission(scene, prim.MaterialKind, prim.MaterialOffset, pointObj, normalObj, 0, 0)
	pdf := dist2 / (cosLight * area)

	return Sample{
		Incoming:     dir,
		PointOnLight: pointWorld,
		Radiance:     emission,
		PDF:          pdf,
		Valid:        true,
	}
}

// AreaPDF computes the same solid-angle pdf sampleArea would have, given a
// hit already found by tracing the BSDF-sampled ray; used by the
// integrator's light side of MIS.
func AreaPDF(scene *scenetables.Scene, al scenetables.AreaLight, refPoint, hitPoint m.Point3, hitNormal m.Vec3) float32 {
	prim := scene.Primitives[al.Primitive]
	_, _, area := sampleShapeSurface(scene, nil, prim.ShapeKind, prim.ShapeOffset)
	if area <= 0 {
		return 0
	}
	toLight := hitPoint.Sub(refPoint)
	dist2 := toLight.LengthSqr()
	if dist2 <= 1e-12 {
		return 0
	}
	cosLight := absf(hitNormal.Dot(toLight.Mul(-1 / sqrtf(dist2))))
	if cosLight < 1e-6 {
		return 0
	}
	return dist2 / (cosLight * area)
}

func sampleShapeSurface(scene *scenetables.Scene, rng *sampling.RNG, kind scenetables.ShapeKind, offset int32) (point, normal m.Vec3, area float32) {
	switch kind {
	case scenetables.ShapeKindSphere:
		s := scene.SphereAt(offset)
		var u1, u2 float32
		if rng != nil {
			u1, u2 = rng.Float32Pair()
		}
		// A uniform direction over the full sphere: folding u1 around 0.5
		// makes |z| uniform in [0,1], and u1 < 0.5 mirrors z below the
		// equator, so z is uniform over [-1,1].
		dir := sampling.UniformHemisphere(absf(2*u1-1), u2)
		if u1 < 0.5 {
			dir.Z = -dir.Z
		}
		point = s.Center.Add(dir.Mul(s.Radius))
		normal = dir
		area = 4 * math.Pi * s.Radius * s.Radius
		return

	case scenetables.ShapeKindTriangle:
		tri := scene.TriangleAt(offset)
		var u1, u2 float32
		if rng != nil {
			u1, u2 = rng.Float32Pair()
		}
		if u1+u2 > 1 {
			u1, u2 = 1-u1, 1-u2
		}
		w := 1 - u1 - u2
		point = tri.A.Mul(w).Add(tri.B.Mul(u1)).Add(tri.C.Mul(u2))
		normal = tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
		edge1 := tri.B.Sub(tri.A)
		edge2 := tri.C.Sub(tri.A)
		area = edge1.Cross(edge2).Length() * 0.5
		return

	default:
		box := scenetables.AABB{}
		switch kind {
		case scenetables.ShapeKindCuboid:
			c := scene.CuboidAt(offset)
			box = scenetables.AABB{Min: c.Min, Max: c.Max}
		case scenetables.ShapeKindPlane:
			p := scene.PlaneAt(offset)
			return p.Point, p.Normal, 1
		}
		point = box.Min.Add(box.Max).Mul(0.5)
		normal = m.Vec3{Y: 1}
		area = 1
		return
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
