package texture

import (
	"testing"

	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func TestEvalConstant(t *testing.T) {
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{{Color: m.Vec3{X: 1, Y: 0.5, Z: 0.25}}},
	}
	ref := scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0}

	got := Eval(scene, ref, m.Vec3{}, m.Vec3{Y: 1}, 0, 0)
	want := m.Vec3{X: 1, Y: 0.5, Z: 0.25}
	if got != want {
		t.Errorf("Eval(Constant) = %v, want %v", got, want)
	}
}

func TestEvalCheckerboardAlternates(t *testing.T) {
	scene := &scenetables.Scene{
		ConstantTextures: []scenetables.ConstantTexture{
			{Color: m.Vec3{X: 1}},
			{Color: m.Vec3{Y: 1}},
		},
		CheckerboardTextures: []scenetables.CheckerboardTexture{{
			A:     scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 0},
			B:     scenetables.TextureRef{Kind: scenetables.TextureKindConstant, Offset: 1},
			Scale: 1,
		}},
	}
	ref := scenetables.TextureRef{Kind: scenetables.TextureKindCheckerboard, Offset: 0}

	a := Eval(scene, ref, m.Vec3{X: 0}, m.Vec3{Y: 1}, 0, 0)
	b := Eval(scene, ref, m.Vec3{X: 1}, m.Vec3{Y: 1}, 0, 0)
	if a == b {
		t.Errorf("expected adjacent checkerboard cells to differ, both got %v", a)
	}
}

func TestEvalUVPassthrough(t *testing.T) {
	scene := &scenetables.Scene{}
	ref := scenetables.TextureRef{Kind: scenetables.TextureKindUV}

	got := Eval(scene, ref, m.Vec3{}, m.Vec3{Y: 1}, 0.25, 0.75)
	want := m.Vec3{X: 0.25, Y: 0.75, Z: 0}
	if got != want {
		t.Errorf("Eval(UV) = %v, want %v", got, want)
	}
}

func TestBilinearSampleLDRWrapsPeriodically(t *testing.T) {
	scene := &scenetables.Scene{
		LDRImagePixels: []byte{
			255, 0, 0, 0, 255, 0,
			0, 0, 255, 255, 255, 0,
		},
	}
	img := scenetables.LDRImageTexture{ScaleU: 1, ScaleV: 1, Width: 2, Height: 2, PixelStart: 0}

	inBounds := bilinearSampleLDR(scene, img, 0.25, 0.25)
	wrapped := bilinearSampleLDR(scene, img, 1.25, 1.25)
	if inBounds.Sub(wrapped).Length() > 1e-5 {
		t.Errorf("expected periodic wrap to reproduce the in-bounds sample, got %v vs %v", inBounds, wrapped)
	}
}
