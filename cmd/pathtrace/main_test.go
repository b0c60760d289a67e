package main

import (
	"testing"

	"github.com/dayflower-go/pathtracer/config"
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func TestBasisLookAtFacesTarget(t *testing.T) {
	eye := m.Point3{Z: -5}
	target := m.Point3{}
	up := m.Vec3{Y: 1}

	basis := basisLookAt(eye, target, up)

	if basis.W.Dot(m.Vec3{Z: 1}) <= 0 {
		t.Errorf("expected forward to point from eye toward target, got %v", basis.W)
	}
	if basis.U.Dot(basis.V) > 1e-4 || basis.U.Dot(basis.W) > 1e-4 || basis.V.Dot(basis.W) > 1e-4 {
		t.Errorf("expected an orthonormal basis, got U=%v V=%v W=%v", basis.U, basis.V, basis.W)
	}
}

func TestCameraFromConfigKeepsFallbackResolution(t *testing.T) {
	cc := config.CameraConfig{
		Eye: [3]float32{0, 0, -3}, Target: [3]float32{0, 0, 0}, Up: [3]float32{0, 1, 0},
		FovX: 45, FovY: 45, Lens: "thin",
	}
	fallback := scenetables.Camera{ResX: 640, ResY: 480}

	cam := cameraFromConfig(cc, fallback)
	if cam.ResX != 640 || cam.ResY != 480 {
		t.Errorf("expected resolution to come from the compiled scene's camera, got %dx%d", cam.ResX, cam.ResY)
	}
	if cam.Lens != scenetables.LensThin {
		t.Errorf("expected the thin lens kind to be selected")
	}
}

func TestToneMapKindFromUnknownFallsBackToNone(t *testing.T) {
	if got := toneMapKindFrom(config.ToneMapper("nonsense")); got != 0 {
		t.Errorf("expected an unrecognized tone mapper to fall back to ToneMapNone, got %v", got)
	}
}

func TestOutputPathPrefersExplicitOverride(t *testing.T) {
	cfg := config.NewDefault()
	cfg.OutputDir = "./out"

	if got := outputPath(cfg, "explicit.png"); got != "explicit.png" {
		t.Errorf("expected explicit override to win, got %q", got)
	}
	if got := outputPath(cfg, ""); got != "out/render.png" {
		t.Errorf("expected config's output dir to be used, got %q", got)
	}
}
