package mathutil

// Quaternion represents a glTF node's rotation. The kernel has no
// animation or interpolation path (scenetables.Scene is compiled once and
// read-only per pass, §3), so this carries only what loader.go's
// node-transform composition actually needs — decoding a glTF node's
// rotation into the Mat4 a TransformPair stores — and drops the teacher's
// axis-angle/Euler construction, Slerp/Lerp interpolation, and inverse/
// conjugate algebra that a live scene graph's animation system used.
type Quaternion struct {
	X, Y, Z, W float32
}

// ToMat4 expects a normalized quaternion, true of every rotation a glTF
// asset stores.
func (q Quaternion) ToMat4() Mat4 {
	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}
