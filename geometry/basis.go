package geometry

import m "github.com/dayflower-go/pathtracer/mathutil"

// basisFromNormal builds a shape's geometric orthonormal basis from its
// surface normal, per spec: the axis of largest |normal component| picks
// the reference vector to cross against (the next world axis after it:
// X→Y, Y→Z, Z→X), rather than mathutil.NewBasis's smallest-component rule
// (used for BSDF/sampling frames). Shapes with an analytic normal use this
// so the reference axis is always well separated from the normal's own
// dominant direction.
func basisFromNormal(normal m.Vec3) m.Basis {
	n := normal.Normalize()
	ax, ay, az := absf(n.X), absf(n.Y), absf(n.Z)

	var ref m.Vec3
	switch {
	case ax >= ay && ax >= az:
		ref = m.Vec3{Y: 1}
	case ay >= ax && ay >= az:
		ref = m.Vec3{Z: 1}
	default:
		ref = m.Vec3{X: 1}
	}

	v := ref.Cross(n).Normalize()
	u := n.Cross(v).Normalize()
	return m.Basis{U: u, V: v, W: n}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
