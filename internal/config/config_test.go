package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedMatchesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config differs from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "game:\n  capacity: 3\naudio:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.Capacity != 3 || cfg.Audio.Enabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Game.TickRate != 60 {
		t.Errorf("unset fields should keep defaults, tick rate = %d", cfg.Game.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("game: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".superhex", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "superhex.yaml"), []byte("terminal:\n  hold_ms: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Terminal.HoldMillis != 200 {
		t.Errorf("hold_ms = %d, want 200", cfg.Terminal.HoldMillis)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.3},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled || cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("difficulty = %+v", cfg.Difficulty)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("hard = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset accepted")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := Default().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0); got != cfg.InitialLevel {
		t.Errorf("Level(0) = %v, want %v", got, cfg.InitialLevel)
	}
	if got := dm.Level(cfg.Progression.MaxAt * 2); got != 1 {
		t.Errorf("Level past max = %v, want 1", got)
	}
	if dm.WallScale(cfg.Progression.MaxAt) <= dm.WallScale(0) {
		t.Error("wall scale should grow with time")
	}
	if want := 1 + cfg.InitialLevel*cfg.Scaling.RotationSpeed; math.Abs(dm.RotationScale()-want) > 1e-12 {
		t.Errorf("RotationScale() = %v, want %v", dm.RotationScale(), want)
	}

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	if fixed.WallScale(100000) != fixed.WallScale(0) {
		t.Error("disabled progression should not ramp")
	}
}
