// Package renderhost schedules one render pass across goroutines: a
// data-parallel, share-nothing sweep over every pixel (SPEC_FULL.md §5),
// row-banded across workers with golang.org/x/sync/errgroup, grounded on
// the errgroup.Group fan-out pattern used for x/image/draw resize work in
// the pack's gioui cmd/gogio/main.go (one goroutine per unit of
// independent work, a single Wait barrier at the end).
//
// Each pixel's work-item draws its own RNG seeded from (globalID,
// passIndex) per §5, so passes are reproducible and workers never share
// mutable state beyond the read-only *scenetables.Scene and each worker's
// exclusively-owned film rows.
package renderhost

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dayflower-go/pathtracer/config"
	"github.com/dayflower-go/pathtracer/film"
	"github.com/dayflower-go/pathtracer/integrator"
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/sampling"
	"github.com/dayflower-go/pathtracer/scenetables"
)

// PassParams carries everything a single pass needs beyond the scene and
// film: which render mode to run, its mode-specific parameters, and which
// pass index to seed the per-pixel RNGs with.
type PassParams struct {
	Mode       config.RenderMode
	PassIndex  uint64
	Clear      bool // true for the first pass of a fresh accumulation
	Workers    int  // 0 selects DefaultWorkers

	PathTrace        integrator.PathTraceParams
	RayTracing       integrator.RayTracingParams
	AmbientOcclusion integrator.AmbientOcclusionParams
	DepthMaxDistance float32
}

// DefaultWorkers is used when PassParams.Workers is 0; row-banding beyond
// this many goroutines buys nothing on typical hardware, and an explicit
// cap keeps a host driver's worker count predictable across machines.
const DefaultWorkers = 16

// RunPass renders one full pass over f, dispatching every pixel's
// work-item to a goroutine pool banded by row so each worker owns a
// contiguous, non-overlapping run of film cells (§5's "per-pixel film/image
// cell ownership is exclusive"). It returns the first error encountered by
// any worker, if any; a render mode never actually returns an error today,
// but the errgroup shape leaves room for one without changing callers.
func RunPass(ctx context.Context, scene *scenetables.Scene, f *film.Film, params PassParams) error {
	workers := params.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > f.Height {
		workers = f.Height
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	rowsPerWorker := (f.Height + workers - 1) / workers

	for w := 0; w < workers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > f.Height {
			endY = f.Height
		}
		if startY >= endY {
			continue
		}

		startY, endY := startY, endY
		g.Go(func() error {
			return renderRows(ctx, scene, f, params, startY, endY)
		})
	}

	return g.Wait()
}

func renderRows(ctx context.Context, scene *scenetables.Scene, f *film.Film, params PassParams, startY, endY int) error {
	for y := startY; y < endY; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for x := 0; x < f.Width; x++ {
			globalID := uint64(y)*uint64(f.Width) + uint64(x)
			rng := sampling.NewRNG(globalID, params.PassIndex)

			color, ok := renderPixel(scene, rng, float32(x), float32(y), params)
			if ok {
				f.AddColor(x, y, color, params.Clear)
			}
		}
	}
	return nil
}

// renderPixel dispatches one work-item's camera-ray generation plus the
// selected render mode, matching spec.md §6's render-mode selector set.
// A camera ray the lens model rejects (fisheye outside the unit disk)
// reports ok=false so the caller leaves the film cell untouched for that
// sample (§8); an unrecognized mode still produces black, per §7's "never
// panic on bad input" contract, since that case is a host misconfiguration
// rather than a per-sample lens rejection.
func renderPixel(scene *scenetables.Scene, rng *sampling.RNG, px, py float32, params PassParams) (m.Vec3, bool) {
	ray, ok := integrator.GenerateCameraRay(scene.Camera, px, py, rng)
	if !ok {
		return m.Vec3{}, false
	}

	switch params.Mode {
	case config.RenderModePathTracing:
		return integrator.PathTrace(scene, rng, ray, params.PathTrace), true
	case config.RenderModeRayTracing:
		return integrator.RayTracing(scene, rng, ray, params.RayTracing), true
	case config.RenderModeRayCasting:
		return integrator.RayCasting(scene, rng, ray), true
	case config.RenderModeAmbientOcclusion:
		return integrator.AmbientOcclusion(scene, rng, ray, params.AmbientOcclusion), true
	case config.RenderModeDepthCamera:
		return integrator.DepthCamera(scene, ray, params.DepthMaxDistance), true
	default:
		return m.Vec3{}, true
	}
}
