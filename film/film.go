// Package film implements the moving-mean film accumulator and the
// image-processing pipeline (tone mapping, sRGB gamma, byte packing) of
// spec.md §4.J.
//
// Grounded on internal/opengl/postprocess.go's exposure/Reinhard/gamma GLSL
// fragment shader, translated from a per-fragment GPU shader into
// per-pixel CPU float32 math, and on scene/texture.go's byte-packing style
// for the final RGBA output stage.
package film

import m "github.com/dayflower-go/pathtracer/mathutil"

// Cell is one film accumulator: a running mean of every sample's radiance
// plus the count of samples folded into it (§3's Film buffer entity).
type Cell struct {
	Mean        m.Vec3
	SampleCount int32
}

// Film is the per-pass accumulator, one Cell per pixel, row-major.
type Film struct {
	Width, Height int
	Cells         []Cell
}

// New allocates a zeroed film of the given resolution.
func New(width, height int) *Film {
	return &Film{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// AddColor folds one sample's radiance into pixel (x,y)'s running mean
// (§4.I step 4 / §8 invariant: sample count increases by exactly 1, or
// resets to 1 when clear is set). color must already be componentwise
// finite and non-negative; the integrator guarantees this by discarding
// any bounce that produced a non-finite throughput before this is called.
func (f *Film) AddColor(x, y int, color m.Vec3, clear bool) {
	i := y*f.Width + x
	cell := &f.Cells[i]
	if clear {
		cell.Mean = color
		cell.SampleCount = 1
		return
	}
	n := cell.SampleCount + 1
	cell.Mean = cell.Mean.Add(color.Sub(cell.Mean).Mul(1 / float32(n)))
	cell.SampleCount = n
}

// At returns the current mean radiance and sample count at (x,y).
func (f *Film) At(x, y int) (m.Vec3, int32) {
	cell := f.Cells[y*f.Width+x]
	return cell.Mean, cell.SampleCount
}

// Clear resets every cell to sampleCount=0, black mean. Used by the host
// between render configurations, not between passes of the same config
// (passes accumulate via AddColor's clear flag on a per-sample basis).
func (f *Film) Clear() {
	for i := range f.Cells {
		f.Cells[i] = Cell{}
	}
}
