package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/superhex/internal/core"
)

const testPack = `
patterns:
  - name: one
    walls:
      - {side: 0, distance: 0, height: 10}
  - name: two
    walls:
      - {side: 1, distance: 0, height: 10}
      - {side: 3, distance: 30, height: 5}
levels:
  - id: test
    name: TEST
    difficulty: EASY
    mode: NORMAL
    creator: tests
    colors:
      fg: ["#FFFFFF"]
      bg1: ["#000000", "#111111"]
      bg2: ["#222222"]
    rotation_speed: 0.02
    pulse: 60
    wall_speed: 1
    spawn_interval: 50
    sides: 6
    patterns: [one, two]
`

func validLevel() Level {
	return Level{
		ID:            "valid",
		Name:          "VALID",
		ColorsFG:      []core.Color{core.ColorWhite},
		ColorsBG1:     []core.Color{core.ColorBlack},
		ColorsBG2:     []core.Color{core.ColorGrey},
		RotationSpeed: 0.02,
		PulsePeriod:   60,
		WallSpeed:     1,
		SpawnInterval: 60,
		Sides:         6,
		SidesMin:      6,
		SidesMax:      6,
		Order:         OrderSequential,
		Patterns: []Pattern{
			{Name: "p", Walls: []WallSpec{{Side: 0, Distance: 0, Height: 10}}},
		},
	}
}

func TestParseYAML(t *testing.T) {
	levels, err := ParseYAML([]byte(testPack))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("expected 1 level, got %d", len(levels))
	}

	lvl := levels[0]
	if lvl.ID != "test" || lvl.Name != "TEST" || lvl.Creator != "tests" {
		t.Errorf("unexpected metadata: %+v", lvl)
	}
	if len(lvl.ColorsBG1) != 2 || lvl.ColorsBG1[1] != core.RGB(0x11, 0x11, 0x11) {
		t.Errorf("bg1 palette = %v", lvl.ColorsBG1)
	}
	if lvl.SidesMin != 6 || lvl.SidesMax != 6 {
		t.Errorf("side range should default to sides, got [%d, %d]", lvl.SidesMin, lvl.SidesMax)
	}
	if lvl.Order != OrderSequential {
		t.Errorf("order should default to sequential, got %q", lvl.Order)
	}
	if len(lvl.Patterns) != 2 || lvl.Patterns[1].Walls[1] != (WallSpec{Side: 3, Distance: 30, Height: 5}) {
		t.Errorf("patterns = %+v", lvl.Patterns)
	}
	if err := lvl.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "levels: [unclosed"},
		{"unknown pattern", "levels:\n  - id: x\n    patterns: [missing]\n"},
		{"bad color", "levels:\n  - id: x\n    colors:\n      fg: ['#XYZXYZ']\n"},
		{"duplicate pattern", "patterns:\n  - name: a\n  - name: a\n"},
		{"unnamed pattern", "patterns:\n  - walls: []\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.data))
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Level)
		code   string
	}{
		{"missing name", func(l *Level) { l.Name = "" }, "MISSING_NAME"},
		{"empty palette", func(l *Level) { l.ColorsBG2 = nil }, "EMPTY_PALETTE"},
		{"zero pulse", func(l *Level) { l.PulsePeriod = 0 }, "BAD_PULSE"},
		{"zero wall speed", func(l *Level) { l.WallSpeed = 0 }, "BAD_WALL_SPEED"},
		{"zero spawn interval", func(l *Level) { l.SpawnInterval = 0 }, "BAD_SPAWN_INTERVAL"},
		{"two sides", func(l *Level) { l.Sides, l.SidesMin, l.SidesMax = 2, 2, 2 }, "BAD_SIDES"},
		{"sides outside range", func(l *Level) { l.SidesMax = 8; l.SidesMin = 7 }, "BAD_SIDE_RANGE"},
		{"bad chance", func(l *Level) { l.SideChangeChance = 2 }, "BAD_CHANCE"},
		{"bad jitter", func(l *Level) { l.SpeedJitter = 1 }, "BAD_JITTER"},
		{"bad order", func(l *Level) { l.Order = "shuffled" }, "BAD_ORDER"},
		{"no patterns", func(l *Level) { l.Patterns = nil }, "NO_PATTERNS"},
		{"empty pattern", func(l *Level) { l.Patterns[0].Walls = nil }, "EMPTY_PATTERN"},
		{"zero height", func(l *Level) { l.Patterns[0].Walls[0].Height = 0 }, "BAD_WALL"},
	}

	if err := func() *Level { l := validLevel(); return &l }().Validate(); err != nil {
		t.Fatalf("valid level rejected: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := validLevel()
			tc.modify(&lvl)
			err := lvl.Validate()
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			var verr ValidationError
			if !errors.As(err, &verr) || verr.Code != tc.code {
				t.Errorf("expected code %s, got %v", tc.code, err)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	levels, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() failed: %v", err)
	}
	if len(levels) < 3 {
		t.Fatalf("expected at least 3 built-in levels, got %d", len(levels))
	}
	if levels[0].ID != "hexagon" {
		t.Errorf("first level should be hexagon, got %q", levels[0].ID)
	}
	seen := make(map[string]bool)
	for _, lvl := range levels {
		if err := lvl.Validate(); err != nil {
			t.Errorf("built-in level invalid: %v", err)
		}
		if seen[lvl.ID] {
			t.Errorf("duplicate level id %q", lvl.ID)
		}
		seen[lvl.ID] = true
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(testPack), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte("levels: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	var skipped []string
	loader := &Loader{Root: dir, OnSkip: func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("skip error should wrap ErrConfiguration: %v", err)
		}
	}}

	levels, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != 1 || levels[0].ID != "test" {
		t.Fatalf("unexpected levels: %+v", levels)
	}
	if levels[0].Source != filepath.Join(dir, "b.yaml") {
		t.Errorf("Source = %q", levels[0].Source)
	}
	if len(skipped) != 1 || skipped[0] != "a.yml" {
		t.Errorf("skipped = %v", skipped)
	}

	if _, err := loader.LoadByID("nope"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("LoadByID(missing) = %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := []Level{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	extra := []Level{{ID: "b", Name: "B2"}, {ID: "c", Name: "C"}}

	got := Merge(base, extra)
	if len(got) != 3 {
		t.Fatalf("Merge returned %d levels", len(got))
	}
	if got[1].Name != "B2" || got[2].ID != "c" {
		t.Errorf("Merge = %+v", got)
	}
	if base[1].Name != "B" {
		t.Error("Merge must not modify base")
	}
}

func TestLoadWithUserMissingDir(t *testing.T) {
	levels, err := LoadWithUser(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("LoadWithUser failed: %v", err)
	}
	defaults, _ := Defaults()
	if len(levels) != len(defaults) {
		t.Errorf("expected only defaults, got %d levels", len(levels))
	}
}

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "new.yaml")
	if err := os.WriteFile(path, []byte(testPack), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for level file")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestWatcherReportsNestedLevelFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "packs", "extra")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(nested, "deep.yaml")
	if err := os.WriteFile(path, []byte(testPack), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for nested level file")
	}
}

func TestMaxPatternDepth(t *testing.T) {
	levels, _ := ParseYAML([]byte(testPack))
	if got := levels[0].MaxPatternDepth(); got != 35 {
		t.Errorf("MaxPatternDepth() = %v, want 35", got)
	}
}
