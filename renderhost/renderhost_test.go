package renderhost

import (
	"context"
	"testing"

	"github.com/dayflower-go/pathtracer/config"
	"github.com/dayflower-go/pathtracer/film"
	"github.com/dayflower-go/pathtracer/integrator"
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func emptySceneWithCamera() *scenetables.Scene {
	return &scenetables.Scene{
		Camera: scenetables.Camera{
			FovX: 0.9, FovY: 0.9,
			Lens:  scenetables.LensThin,
			Basis: m.NewBasis(m.Vec3{Z: 1}),
			Eye:   m.Point3{Z: -3},
			ResX:  8, ResY: 8,
		},
	}
}

func TestRunPassFillsEveryFilmCell(t *testing.T) {
	scene := emptySceneWithCamera()
	f := film.New(8, 8)

	err := RunPass(context.Background(), scene, f, PassParams{
		Mode:      config.RenderModeDepthCamera,
		PassIndex: 0,
		Clear:     true,
		Workers:   3,
		DepthMaxDistance: 100,
	})
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			_, count := f.At(x, y)
			if count != 1 {
				t.Fatalf("pixel (%d,%d): expected sampleCount 1 after first pass, got %d", x, y, count)
			}
		}
	}
}

func TestRunPassAccumulatesAcrossPasses(t *testing.T) {
	scene := emptySceneWithCamera()
	f := film.New(4, 4)

	for pass := uint64(0); pass < 3; pass++ {
		err := RunPass(context.Background(), scene, f, PassParams{
			Mode:      config.RenderModeAmbientOcclusion,
			PassIndex: pass,
			Clear:     pass == 0,
			Workers:   2,
			AmbientOcclusion: integrator.AmbientOcclusionParams{MaxDistance: 10, Samples: 1},
		})
		if err != nil {
			t.Fatalf("RunPass pass %d: %v", pass, err)
		}
	}

	_, count := f.At(0, 0)
	if count != 3 {
		t.Errorf("expected sampleCount 3 after three passes, got %d", count)
	}
}

func TestRunPassUnknownModeProducesBlackNotPanic(t *testing.T) {
	scene := emptySceneWithCamera()
	f := film.New(2, 2)

	err := RunPass(context.Background(), scene, f, PassParams{
		Mode:    config.RenderMode("nonsense"),
		Clear:   true,
		Workers: 1,
	})
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	mean, _ := f.At(0, 0)
	if mean != (m.Vec3{}) {
		t.Errorf("expected black for an unrecognized render mode, got %v", mean)
	}
}

func TestRunPassRespectsCancelledContext(t *testing.T) {
	scene := emptySceneWithCamera()
	f := film.New(64, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunPass(ctx, scene, f, PassParams{
		Mode:    config.RenderModeDepthCamera,
		Clear:   true,
		Workers: 4,
	})
	if err == nil {
		t.Errorf("expected RunPass to report the cancellation")
	}
}
