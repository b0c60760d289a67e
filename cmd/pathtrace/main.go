// Command pathtrace is the host driver: it loads a render configuration,
// compiles a scene (via loader for glTF assets, or a built-in default
// scene), runs render passes across the worker pool in renderhost, and
// writes the tone-mapped result to a PNG, optionally mirroring each pass
// to a live preview window.
//
// Grounded on cmd/demo/main.go's "parse nothing fancy, build the pieces,
// run the loop, defer Destroy" shape, generalized from a real-time game
// loop into a fixed-pass-count batch render.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dayflower-go/pathtracer/config"
	"github.com/dayflower-go/pathtracer/display"
	"github.com/dayflower-go/pathtracer/film"
	"github.com/dayflower-go/pathtracer/integrator"
	"github.com/dayflower-go/pathtracer/loader"
	m "github.com/dayflower-go/pathtracer/mathutil"
	"github.com/dayflower-go/pathtracer/renderhost"
	"github.com/dayflower-go/pathtracer/scenetables"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML render config; omitted means built-in defaults")
	scenePath := flag.String("scene", "", "path to a glTF asset; overrides config's scene_file")
	outPath := flag.String("out", "", "output PNG path; overrides config's output_dir")
	passes := flag.Int("passes", 0, "number of passes to accumulate; overrides config's samples_per_pixel")
	workers := flag.Int("workers", 0, "worker goroutine count; 0 selects renderhost's default")
	flag.Parse()

	if err := run(*configPath, *scenePath, *outPath, *passes, *workers); err != nil {
		log.Fatalf("pathtrace: %v", err)
	}
}

func run(configPath, scenePath, outPath string, passes, workers int) error {
	cfg := config.NewDefault()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if scenePath != "" {
		cfg.SceneFile = scenePath
	}
	if passes > 0 {
		cfg.SamplesPerPixel = passes
	}

	scene, err := compileScene(cfg)
	if err != nil {
		return fmt.Errorf("compile scene: %w", err)
	}
	scene.Camera = cameraFromConfig(cfg.Camera, scene.Camera)

	width, height := int(scene.Camera.ResX), int(scene.Camera.ResY)
	f := film.New(width, height)

	var preview *display.Preview
	if cfg.LivePreview {
		p, err := display.Open(width, height, "pathtrace")
		if err != nil {
			log.Printf("pathtrace: live preview unavailable: %v", err)
		} else {
			preview = p
			defer preview.Close()
		}
	}

	params := passParams(cfg, workers)
	log.Printf("pathtrace: rendering %dx%d, %d passes, mode=%s", width, height, cfg.SamplesPerPixel, cfg.RenderMode)

	start := time.Now()
	img := film.NewImage(width, height)
	for pass := 0; pass < cfg.SamplesPerPixel; pass++ {
		params.PassIndex = uint64(pass)
		params.Clear = pass == 0
		if err := renderhost.RunPass(context.Background(), scene, f, params); err != nil {
			return fmt.Errorf("render pass %d: %w", pass, err)
		}

		if preview != nil && preview.ShouldClose() {
			break
		}
		if preview != nil {
			finishImage(img, f, cfg)
			preview.Blit(img)
			preview.PollEvents()
		}
	}
	log.Printf("pathtrace: %d passes in %s", cfg.SamplesPerPixel, time.Since(start))

	finishImage(img, f, cfg)
	return writePNG(outputPath(cfg, outPath), img)
}

// compileScene compiles the configured scene asset, dispatching by file
// extension between the glTF and OBJ reference compilers, or falls back to
// a small built-in scene so the driver is runnable with no external asset.
func compileScene(cfg *config.Config) (*scenetables.Scene, error) {
	if cfg.SceneFile == "" {
		return builtinScene(), nil
	}
	if strings.EqualFold(filepath.Ext(cfg.SceneFile), ".obj") {
		return loader.LoadOBJ(cfg.SceneFile)
	}
	return loader.Load(cfg.SceneFile)
}

// cameraFromConfig turns the host's eye/target/up camera config into a
// scenetables.Camera, keeping whatever resolution the compiled scene's
// camera already carries (512×512 for the built-in scene); the config's
// resolution fields are not read here.
func cameraFromConfig(cc config.CameraConfig, fallback scenetables.Camera) scenetables.Camera {
	eye := m.Point3{X: cc.Eye[0], Y: cc.Eye[1], Z: cc.Eye[2]}
	target := m.Point3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]}
	up := m.Vec3{X: cc.Up[0], Y: cc.Up[1], Z: cc.Up[2]}

	lens := scenetables.LensThin
	if cc.Lens == "fisheye" {
		lens = scenetables.LensFisheye
	}

	degToRad := float32(3.14159265 / 180)
	return scenetables.Camera{
		FovX:           cc.FovX * degToRad,
		FovY:           cc.FovY * degToRad,
		Lens:           lens,
		Basis:          basisLookAt(eye, target, up),
		Eye:            eye,
		ApertureRadius: cc.ApertureRadius,
		FocalDistance:  cc.FocalDistance,
		ResX:           fallback.ResX,
		ResY:           fallback.ResY,
	}
}

// basisLookAt builds a camera-space orthonormal basis from an eye/target/up
// triple, matching the teacher's own Camera.QuaternionFromLookAt cross
// product convention (right = up × forward, upNew = forward × right).
func basisLookAt(eye, target, up m.Point3) m.Basis {
	forward := target.Sub(eye).Normalize()
	right := up.Cross(forward).Normalize()
	upNew := forward.Cross(right)
	return m.Basis{U: right, V: upNew, W: forward}
}

// passParams collects the mode-specific parameters the config carries into
// the single struct renderhost.RunPass expects, leaving PassIndex/Clear for
// the per-pass loop in run to fill in.
func passParams(cfg *config.Config, workers int) renderhost.PassParams {
	return renderhost.PassParams{
		Mode:    cfg.RenderMode,
		Workers: workers,
		PathTrace: integrator.PathTraceParams{
			MaxBounces: cfg.MaxBounces,
			MinBounces: cfg.MinBounces,
		},
		RayTracing:       integrator.DefaultRayTracingParams(),
		AmbientOcclusion: integrator.AmbientOcclusionParams{MaxDistance: cfg.AOMaxDistance, Samples: cfg.AOSamples},
		DepthMaxDistance: cfg.DepthMaxDistance,
	}
}

// finishImage runs the host's configured tone-mapper and gamma correction
// over the current film state and packs it into img's RGBA buffer (§4.J's
// imageBegin/imageToneMap/imageRedoGammaCorrection/imageEnd sequence).
func finishImage(img *film.Image, f *film.Film, cfg *config.Config) {
	img.Begin(f)
	img.ToneMapAll(toneMapKindFrom(cfg.ToneMapper), cfg.Exposure)
	img.GammaCorrectAll()
	img.End()
}

func toneMapKindFrom(name config.ToneMapper) film.ToneMapKind {
	switch name {
	case config.ToneMapperReinhardV1:
		return film.ToneMapReinhardV1
	case config.ToneMapperReinhardV2:
		return film.ToneMapReinhardV2
	case config.ToneMapperUnreal3:
		return film.ToneMapUnreal3
	case config.ToneMapperFilmicACESv1:
		return film.ToneMapFilmicACESv1
	default:
		return film.ToneMapNone
	}
}

func outputPath(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "render.png")
}

func writePNG(path string, img *film.Image) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	rgba := &image.RGBA{
		Pix:    img.RGBA,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	if err := png.Encode(f, rgba); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
