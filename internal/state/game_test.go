package state

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
)

type fakeDrawer struct {
	tris, rects int
}

func (d *fakeDrawer) DrawTriangle(core.Color, core.Triangle)      { d.tris++ }
func (d *fakeDrawer) DrawRect(core.Color, core.Point, core.Point) { d.rects++ }
func (d *fakeDrawer) ScreenDim() core.Point                       { return core.Pt(400, 240) }

type fakeFont struct {
	lines []string
}

func (f *fakeFont) DrawText(_ core.Color, _ core.Point, text string, _ core.FontSize) {
	f.lines = append(f.lines, text)
}
func (f *fakeFont) TextWidth(text string, _ core.FontSize) int { return len(text) * 8 }
func (f *fakeFont) LineHeight(core.FontSize) int               { return 16 }

type fakeAudio struct {
	sfx []core.Sound
	bgm []core.Sound
}

func (a *fakeAudio) PlaySFX(s core.Sound) { a.sfx = append(a.sfx, s) }
func (a *fakeAudio) PlayBGM(s core.Sound) { a.bgm = append(a.bgm, s) }
func (a *fakeAudio) StopBGM()             {}

func (a *fakeAudio) played(s core.Sound) bool {
	for _, got := range a.sfx {
		if got == s {
			return true
		}
	}
	return false
}

type memStore struct {
	best  map[string]int
	saves int
	err   error
}

func (s *memStore) BestTime(id string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.best[id], nil
}

func (s *memStore) SaveTime(id string, score int) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	if score > s.best[id] {
		s.best[id] = score
	}
	return nil
}

func testLevels() []level.Level {
	mk := func(id string, sides int) level.Level {
		return level.Level{
			ID:            id,
			Name:          id,
			ColorsFG:      []core.Color{core.ColorWhite},
			ColorsBG1:     []core.Color{core.ColorBlack},
			ColorsBG2:     []core.Color{core.ColorGrey},
			PulsePeriod:   60,
			WallSpeed:     1,
			SpawnInterval: 1000,
			Sides:         sides,
			SidesMin:      sides,
			SidesMax:      sides,
			Order:         level.OrderSequential,
			Patterns: []level.Pattern{
				{Name: "one", Walls: []level.WallSpec{{Side: 0, Distance: 0, Height: 10}}},
			},
		}
	}
	return []level.Level{mk("hex", 6), mk("square", 4), mk("pent", 5)}
}

type harness struct {
	g     *Game
	audio *fakeAudio
	store *memStore
	font  *fakeFont
	draw  *fakeDrawer
}

func newHarness(t *testing.T, levels []level.Level, frames float64) *harness {
	t.Helper()
	h := &harness{
		audio: &fakeAudio{},
		store: &memStore{best: map[string]int{}},
		font:  &fakeFont{},
		draw:  &fakeDrawer{},
	}
	g, err := New(Deps{
		Drawer:           h.draw,
		Font:             h.font,
		Audio:            h.audio,
		Store:            h.store,
		Logger:           log.New(io.Discard),
		Levels:           levels,
		Seed:             1,
		TransitionFrames: frames,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	h.g = g
	return h
}

func btn(bs ...core.Button) core.Buttons {
	var s core.Buttons
	for _, b := range bs {
		s = s.With(b)
	}
	return s
}

// press steps one frame with the buttons held and one frame released so the
// next press is a fresh edge.
func (h *harness) press(t *testing.T, bs ...core.Button) bool {
	t.Helper()
	if !h.g.Step(btn(bs...), 1) {
		return false
	}
	return h.g.Step(0, 1)
}

func TestNewRequiresLevels(t *testing.T) {
	_, err := New(Deps{Drawer: &fakeDrawer{}})
	if !errors.Is(err, level.ErrConfiguration) {
		t.Errorf("New() error = %v, want ErrConfiguration", err)
	}
}

func TestMenuTransitionReverses(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	menu := h.g.State().(*Menu)

	h.g.Step(btn(core.ButtonRight), 1)
	if menu.Selected() != 1 || menu.Transitioning() != 1 {
		t.Fatalf("after right: selected=%d direction=%d", menu.Selected(), menu.Transitioning())
	}
	h.g.Step(btn(core.ButtonLeft), 1)
	if menu.Transitioning() == 1 {
		t.Fatal("direction did not flip")
	}
	for i := 0; i < 40; i++ {
		h.g.Step(0, 1)
	}
	if menu.Selected() != 0 || menu.Transitioning() != 0 {
		t.Errorf("final selected=%d direction=%d, want 0 and settled", menu.Selected(), menu.Transitioning())
	}
}

func TestMenuTransitionReversesMidway(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	menu := h.g.State().(*Menu)

	h.g.Step(btn(core.ButtonRight), 1)
	for i := 0; i < 10; i++ {
		h.g.Step(0, 1)
	}
	before := menu.Progress()
	h.g.Step(btn(core.ButtonLeft), 1)
	if menu.Transitioning() != -1 {
		t.Fatalf("direction = %d, want -1", menu.Transitioning())
	}
	// The animation continues from the mirrored position.
	if after := menu.Progress(); after < 1-before {
		t.Errorf("progress jumped from %v to %v", before, after)
	}
	for i := 0; i < 30; i++ {
		h.g.Step(0, 1)
	}
	if menu.Selected() != 0 || menu.Transitioning() != 0 {
		t.Errorf("final selected=%d direction=%d", menu.Selected(), menu.Transitioning())
	}
}

func TestMenuWrapsLeft(t *testing.T) {
	h := newHarness(t, testLevels(), 2)
	menu := h.g.State().(*Menu)

	h.g.Step(btn(core.ButtonLeft), 1)
	for i := 0; i < 3; i++ {
		h.g.Step(0, 1)
	}
	if menu.Selected() != 2 {
		t.Errorf("selected = %d, want 2", menu.Selected())
	}
	if !h.audio.played(core.SoundSelect) {
		t.Error("no select sound")
	}
}

func TestMenuQuit(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	if h.g.Step(btn(core.ButtonQuit), 1) {
		t.Error("Step should report false after quit")
	}
	if h.g.State() != nil {
		t.Error("state should be nil after quit")
	}
	if h.g.Step(0, 1) {
		t.Error("Step after quit should stay false")
	}
}

func TestInvalidLevelStaysInMenu(t *testing.T) {
	levels := testLevels()
	levels[0].Patterns = nil
	h := newHarness(t, levels, 30)

	h.press(t, core.ButtonSelect)
	menu, ok := h.g.State().(*Menu)
	if !ok {
		t.Fatalf("state = %T, want *Menu", h.g.State())
	}
	if menu.Diagnostic() == "" {
		t.Error("no diagnostic shown")
	}

	h.g.Draw()
	found := false
	for _, l := range h.font.lines {
		if l == menu.Diagnostic() {
			found = true
		}
	}
	if !found {
		t.Error("diagnostic not drawn")
	}
}

func TestPlayToGameOverAndBack(t *testing.T) {
	h := newHarness(t, testLevels(), 30)

	h.press(t, core.ButtonSelect)
	play, ok := h.g.State().(*Play)
	if !ok {
		t.Fatalf("state = %T, want *Play", h.g.State())
	}
	if !h.audio.played(core.SoundBegin) {
		t.Error("no begin sound on entering play")
	}

	// The wall on side 0 reaches the cursor radius of 29 at tick 19.
	var over *GameOver
	for i := 0; i < 100; i++ {
		h.g.Step(0, 1)
		if o, ok := h.g.State().(*GameOver); ok {
			over = o
			break
		}
	}
	if over == nil {
		t.Fatal("never reached game over")
	}
	if play.Live().HitTick() != 19 {
		t.Errorf("hit tick = %d, want 19", play.Live().HitTick())
	}
	if !h.audio.played(core.SoundOver) {
		t.Error("no over sound")
	}
	if !over.NewRecord() || over.Best() != over.Score() {
		t.Errorf("first run should be a record: score=%d best=%d", over.Score(), over.Best())
	}
	if h.store.saves != 0 {
		t.Error("best time written before game over exit")
	}

	h.g.Step(0, 1)
	h.g.Step(0, 1)
	if over.Offset() <= 0 {
		t.Error("explosion offset did not grow")
	}
	h.g.Draw()

	h.press(t, core.ButtonSelect)
	if _, ok := h.g.State().(*Menu); !ok {
		t.Fatalf("state = %T, want *Menu", h.g.State())
	}
	if h.store.saves != 1 || h.store.best["hex"] != over.Score() {
		t.Errorf("store = %+v after game over exit", h.store.best)
	}
}

func TestHexagonRankPlaysHexagonCue(t *testing.T) {
	levels := testLevels()
	// Opposite the cursor, so the run survives to the last rank.
	levels[0].Patterns[0].Walls[0].Side = 3
	h := newHarness(t, levels, 30)

	h.press(t, core.ButtonSelect)
	play, ok := h.g.State().(*Play)
	if !ok {
		t.Fatalf("state = %T, want *Play", h.g.State())
	}
	for i := 0; i < 400; i++ {
		h.g.Step(0, 10)
	}
	if _, ok := h.g.State().(*Play); !ok {
		t.Fatalf("state = %T, want *Play", h.g.State())
	}
	if got := play.Live().Rank().Name; got != "HEXAGON" {
		t.Fatalf("rank = %s, want HEXAGON", got)
	}
	if !h.audio.played(core.SoundLevelUp) {
		t.Error("no level up cue for the intermediate ranks")
	}
	if !h.audio.played(core.SoundHexagon) {
		t.Error("no hexagon cue on reaching the last rank")
	}
}

func TestGameOverWithoutRecord(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	h.store.best["hex"] = 100000

	h.press(t, core.ButtonSelect)
	for i := 0; i < 100; i++ {
		h.g.Step(0, 1)
	}
	over, ok := h.g.State().(*GameOver)
	if !ok {
		t.Fatalf("state = %T", h.g.State())
	}
	if over.NewRecord() || over.Best() != 100000 {
		t.Errorf("newRecord=%v best=%d", over.NewRecord(), over.Best())
	}
	if h.g.Step(btn(core.ButtonBack), 1) {
		t.Error("back on game over should quit")
	}
	if h.store.best["hex"] != 100000 {
		t.Error("worse run replaced the best time")
	}
}

func TestStoreFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	h.store.err = errors.New("disk gone")

	h.press(t, core.ButtonSelect)
	for i := 0; i < 100; i++ {
		if !h.g.Step(0, 1) {
			t.Fatal("game quit on store failure")
		}
	}
	if _, ok := h.g.State().(*GameOver); !ok {
		t.Fatalf("state = %T", h.g.State())
	}
	h.press(t, core.ButtonSelect)
	if _, ok := h.g.State().(*Menu); !ok {
		t.Errorf("state = %T, want *Menu", h.g.State())
	}
}

func TestPlayBackReturnsToMenu(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	h.press(t, core.ButtonSelect)
	h.press(t, core.ButtonBack)
	if _, ok := h.g.State().(*Menu); !ok {
		t.Errorf("state = %T, want *Menu", h.g.State())
	}
}

func TestReloadWaitsForMenu(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	h.press(t, core.ButtonSelect)

	h.g.Reload(testLevels()[:1])
	h.g.Step(0, 1)
	if len(h.g.Levels()) != 3 {
		t.Fatal("levels swapped during play")
	}

	h.press(t, core.ButtonBack)
	h.g.Step(0, 1)
	if len(h.g.Levels()) != 1 {
		t.Errorf("levels = %d after returning to menu, want 1", len(h.g.Levels()))
	}
}

type fakePlatform struct {
	fakeDrawer
	core.RunFlag
	frames int
	limit  int
}

func (p *fakePlatform) Dilation() float64     { return 1 }
func (p *fakePlatform) Pressed() core.Buttons { return 0 }
func (p *fakePlatform) ScreenBegin()          {}
func (p *fakePlatform) ScreenFinalize() {
	p.frames++
	if p.frames >= p.limit {
		p.Stop()
	}
}

func TestRunStopsOnPlatformFlag(t *testing.T) {
	p := &fakePlatform{limit: 5}
	g, err := New(Deps{Drawer: p, Levels: testLevels(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	g.Run(p)
	if p.frames != 5 {
		t.Errorf("frames = %d, want 5", p.frames)
	}
	if p.tris == 0 {
		t.Error("nothing drawn")
	}
	if g.State() != nil {
		t.Error("state not closed after platform stop")
	}
}

func TestCloseFromAnotherGoroutine(t *testing.T) {
	h := newHarness(t, testLevels(), 30)
	h.press(t, core.ButtonSelect)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if !h.g.Step(0, 1) {
				return
			}
			h.g.Draw()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = h.g.State()
			_ = h.g.Levels()
			_ = h.g.FPS()
		}
		h.g.Close()
	}()
	wg.Wait()

	if h.g.State() != nil {
		t.Error("state not cleared after Close")
	}
	if h.g.Step(0, 1) {
		t.Error("Step should report false after Close")
	}
}
