// Package config loads and saves the host driver's render configuration:
// render-mode selection, tone-mapper selection, camera parameters, and
// output settings (spec.md §6's "Inputs from the host driver").
//
// Grounded on io/scene_io.go's SceneFile Load/Save/NewDefault shape,
// ported from JSON to TOML (github.com/BurntSushi/toml) since the host
// config is a small, human-edited file rather than an editor's scene
// serialization format.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RenderMode names one of spec.md §6's render-mode selector values.
type RenderMode string

const (
	RenderModeAmbientOcclusion RenderMode = "ambient_occlusion"
	RenderModeDepthCamera      RenderMode = "depth_camera"
	RenderModePathTracing      RenderMode = "path_tracing"
	RenderModeRayCasting       RenderMode = "ray_casting"
	RenderModeRayTracing       RenderMode = "ray_tracing"
)

// ToneMapper names one of spec.md §6's tone-mapper selector values.
type ToneMapper string

const (
	ToneMapperNone         ToneMapper = "none"
	ToneMapperReinhardV1   ToneMapper = "reinhard_v1"
	ToneMapperReinhardV2   ToneMapper = "reinhard_v2"
	ToneMapperUnreal3      ToneMapper = "unreal3"
	ToneMapperFilmicACESv1 ToneMapper = "filmic_aces_v1"
)

// CameraConfig is the host-supplied camera setup (§6: "the camera
// parameters"). Eye/Target/Up describe an orbit-style camera the host
// driver turns into a scenetables.Camera basis at startup.
type CameraConfig struct {
	Eye            [3]float32 `toml:"eye"`
	Target         [3]float32 `toml:"target"`
	Up             [3]float32 `toml:"up"`
	FovX           float32    `toml:"fov_x"`
	FovY           float32    `toml:"fov_y"`
	Lens           string     `toml:"lens"` // "fisheye" or "thin"
	ApertureRadius float32    `toml:"aperture_radius"`
	FocalDistance  float32    `toml:"focal_distance"`
}

// Config is the complete host render configuration, loaded once at
// startup; the host driver turns it into renderhost.PassParams for each
// renderhost.RunPass.
type Config struct {
	Version string `toml:"version"`

	SceneFile string `toml:"scene_file"`
	OutputDir string `toml:"output_dir"`

	ResolutionX int `toml:"resolution_x"`
	ResolutionY int `toml:"resolution_y"`

	RenderMode RenderMode `toml:"render_mode"`
	MaxBounces int        `toml:"max_bounces"`
	MinBounces int        `toml:"min_bounces"`

	AOMaxDistance float32 `toml:"ao_max_distance"`
	AOSamples     int     `toml:"ao_samples"`

	DepthMaxDistance float32 `toml:"depth_max_distance"`

	SamplesPerPixel int `toml:"samples_per_pixel"`

	ToneMapper ToneMapper `toml:"tone_mapper"`
	Exposure   float32    `toml:"exposure"`

	Camera CameraConfig `toml:"camera"`

	LivePreview bool `toml:"live_preview"`
}

// NewDefault returns a Config with sensible defaults, matching spec.md's
// stated integrator defaults (20 max bounces, 5 min bounces for Russian
// roulette).
func NewDefault() *Config {
	return &Config{
		Version:          "1.0",
		OutputDir:        "./render_out",
		ResolutionX:      512,
		ResolutionY:      512,
		RenderMode:       RenderModePathTracing,
		MaxBounces:       20,
		MinBounces:       5,
		AOMaxDistance:    10,
		AOSamples:        8,
		DepthMaxDistance: 100,
		SamplesPerPixel:  16,
		ToneMapper:       ToneMapperFilmicACESv1,
		Exposure:         1.0,
		Camera: CameraConfig{
			Eye:            [3]float32{0, 0, -3},
			Target:         [3]float32{0, 0, 0},
			Up:             [3]float32{0, 1, 0},
			FovX:           45,
			FovY:           45,
			Lens:           "thin",
			ApertureRadius: 0,
			FocalDistance:  1,
		},
	}
}

// Load reads and parses a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config out as TOML.
func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
