package scenetables

import m "github.com/dayflower-go/pathtracer/mathutil"

// LensKind selects the camera's ray-generation model.
type LensKind int32

const (
	LensFisheye LensKind = iota
	LensThin
)

// Camera is the single camera row. Field order mirrors the wire contract
// in SPEC_FULL.md §6: {fovX, fovY, lens, basisU(3), basisV(3), basisW(3),
// eye(3), apertureRadius, focalDistance, resX, resY}.
type Camera struct {
	FovX float32
	FovY float32
	Lens LensKind

	Basis m.Basis
	Eye   m.Point3

	ApertureRadius float32
	FocalDistance  float32

	ResX int32
	ResY int32
}
