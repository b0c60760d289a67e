package config

import (
	"path/filepath"
	"testing"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")

	cfg := NewDefault()
	cfg.ResolutionX = 128
	cfg.RenderMode = RenderModeAmbientOcclusion

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ResolutionX != 128 {
		t.Errorf("expected resolution_x 128, got %d", loaded.ResolutionX)
	}
	if loaded.RenderMode != RenderModeAmbientOcclusion {
		t.Errorf("expected render_mode %q, got %q", RenderModeAmbientOcclusion, loaded.RenderMode)
	}
	if loaded.MaxBounces != 20 {
		t.Errorf("expected default max_bounces 20 to survive round trip, got %d", loaded.MaxBounces)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/render.toml"); err == nil {
		t.Errorf("expected an error loading a missing config file")
	}
}

func TestNewDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := NewDefault()
	if cfg.MaxBounces != 20 || cfg.MinBounces != 5 {
		t.Errorf("expected defaults (20, 5), got (%d, %d)", cfg.MaxBounces, cfg.MinBounces)
	}
}
