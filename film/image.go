package film

import m "github.com/dayflower-go/pathtracer/mathutil"

// Image is the RGB f32 staging buffer tone mapping and gamma correction
// operate on, plus the final RGBA 8-bit output buffer (§3's Image staging
// buffer / Image output entities).
type Image struct {
	Width, Height int
	Staging       []m.Vec3
	RGBA          []byte
}

// NewImage allocates a staging buffer and output buffer of the given
// resolution.
func NewImage(width, height int) *Image {
	return &Image{
		Width:   width,
		Height:  height,
		Staging: make([]m.Vec3, width*height),
		RGBA:    make([]byte, width*height*4),
	}
}

// Begin copies every film cell's mean into the staging buffer, the first
// step of the per-pass image pipeline (§4.J imageBegin).
func (img *Image) Begin(f *Film) {
	for i, cell := range f.Cells {
		img.Staging[i] = cell.Mean
	}
}

// ToneMapAll applies the named tone-mapping operator to every staging
// pixel (§4.J imageToneMap<Kind>).
func (img *Image) ToneMapAll(kind ToneMapKind, exposure float32) {
	for i, c := range img.Staging {
		img.Staging[i] = ToneMap(kind, c, exposure)
	}
}

// GammaCorrectAll applies the sRGB transfer curve to every staging pixel
// (§4.J imageRedoGammaCorrection).
func (img *Image) GammaCorrectAll() {
	for i, c := range img.Staging {
		img.Staging[i] = m.Vec3{X: SRGBEncode(c.X), Y: SRGBEncode(c.Y), Z: SRGBEncode(c.Z)}
	}
}

// End clamps every staging pixel to [0,1], scales to [0,255], rounds, and
// writes R,G,B,255 into the RGBA output buffer (§4.J imageEnd / §8
// invariant: every output byte is in [0,255] and alpha is always 255).
func (img *Image) End() {
	for i, c := range img.Staging {
		r := toByte(c.X)
		g := toByte(c.Y)
		b := toByte(c.Z)
		o := i * 4
		img.RGBA[o+0] = r
		img.RGBA[o+1] = g
		img.RGBA[o+2] = b
		img.RGBA[o+3] = 255
	}
}

func toByte(x float32) byte {
	x = m.Clamp(x, 0, 1)
	return byte(x*255 + 0.5)
}
