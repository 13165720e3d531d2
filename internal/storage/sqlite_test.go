package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Mode() != DefaultMode {
		t.Errorf("Mode() = %q, want %q", store.Mode(), DefaultMode)
	}
}

func TestBestTimeOnlyImproves(t *testing.T) {
	store := openTest(t)

	best, err := store.BestTime("hexagon")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("unplayed level best = %d, want 0", best)
	}

	for _, score := range []int{100, 50, 200, 150} {
		if err := store.SaveTime("hexagon", score); err != nil {
			t.Fatalf("SaveTime(%d) failed: %v", score, err)
		}
	}

	best, err = store.BestTime("hexagon")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if best != 200 {
		t.Errorf("best = %d, want 200", best)
	}
}

func TestTopRunsOrdered(t *testing.T) {
	store := openTest(t)

	for _, score := range []int{100, 50, 200} {
		if err := store.SaveTime("hexagon", score); err != nil {
			t.Fatalf("SaveTime() failed: %v", err)
		}
	}
	if err := store.SaveTime("square", 500); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}

	runs, err := store.TopRuns("hexagon", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	want := []int{200, 100, 50}
	for i, r := range runs {
		if r.Score != want[i] {
			t.Errorf("run %d score = %d, want %d", i, r.Score, want[i])
		}
		if r.LevelID != "hexagon" || r.Mode != DefaultMode {
			t.Errorf("run %d = %+v", i, r)
		}
	}

	limited, err := store.TopRuns("hexagon", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestModesAreSeparate(t *testing.T) {
	store := openTest(t)
	hyper := store.WithMode("hyper")

	if err := store.SaveTime("hexagon", 300); err != nil {
		t.Fatal(err)
	}
	if err := hyper.SaveTime("hexagon", 100); err != nil {
		t.Fatal(err)
	}

	classic, _ := store.BestTime("hexagon")
	fast, _ := hyper.BestTime("hexagon")
	if classic != 300 || fast != 100 {
		t.Errorf("classic=%d hyper=%d, want 300 and 100", classic, fast)
	}
}

func TestBestTimesAndStats(t *testing.T) {
	store := openTest(t)

	store.SaveTime("hexagon", 120)
	store.SaveTime("hexagon", 60)
	store.SaveTime("square", 600)

	bests, err := store.BestTimes()
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(bests) != 2 || bests[0].LevelID != "square" || bests[1].Score != 120 {
		t.Errorf("BestTimes() = %+v", bests)
	}

	stats, err := store.Stats("hexagon")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Best != 120 || stats.AvgScore != 90 || stats.TotalScore != 180 {
		t.Errorf("Stats() = %+v", stats)
	}

	empty, err := store.Stats("pentagon")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestClearLevel(t *testing.T) {
	store := openTest(t)

	store.SaveTime("hexagon", 100)
	store.SaveTime("square", 100)

	if err := store.ClearLevel("hexagon"); err != nil {
		t.Fatalf("ClearLevel() failed: %v", err)
	}
	if best, _ := store.BestTime("hexagon"); best != 0 {
		t.Errorf("best after clear = %d", best)
	}
	if runs, _ := store.TopRuns("hexagon", 10); len(runs) != 0 {
		t.Errorf("runs after clear = %d", len(runs))
	}
	if best, _ := store.BestTime("square"); best != 100 {
		t.Error("clear removed another level")
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store1.SaveTime("hexagon", 999); err != nil {
		t.Fatal(err)
	}
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Second Open() failed: %v", err)
	}
	defer store2.Close()

	best, err := store2.BestTime("hexagon")
	if err != nil {
		t.Fatal(err)
	}
	if best != 999 {
		t.Errorf("Expected persisted best of 999, got %d", best)
	}
}
