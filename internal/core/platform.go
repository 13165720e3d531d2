package core

import (
	"errors"
	"math/rand"
	"sync/atomic"
)

// ErrResource marks failures of optional collaborators (audio, fonts, files).
// The game keeps running without the resource when it sees one.
var ErrResource = errors.New("resource unavailable")

// Drawer is the pair of drawing primitives every higher-level shape is built
// from, plus the size of the surface being drawn on.
type Drawer interface {
	DrawTriangle(c Color, t Triangle)
	DrawRect(c Color, pos, size Point)
	ScreenDim() Point
}

// FontSize selects one of the two text sizes the game uses.
type FontSize int

const (
	FontSmall FontSize = iota // 16px in the original layout
	FontLarge                 // 32px
)

// Font draws text. Implementations own glyph rasterization.
type Font interface {
	DrawText(c Color, pos Point, text string, size FontSize)
	// TextWidth returns the drawn width of text in pixels.
	TextWidth(text string, size FontSize) int
	// LineHeight returns the height of one line in pixels.
	LineHeight(size FontSize) int
}

// Sound identifies one of the game's audio cues.
type Sound int

const (
	SoundBegin Sound = iota
	SoundHexagon
	SoundOver
	SoundSelect
	SoundLevelUp
	SoundMenuBGM
	SoundPlayBGM
)

// String returns the sound's asset-style name.
func (s Sound) String() string {
	switch s {
	case SoundBegin:
		return "begin"
	case SoundHexagon:
		return "hexagon"
	case SoundOver:
		return "over"
	case SoundSelect:
		return "select"
	case SoundLevelUp:
		return "levelup"
	case SoundMenuBGM:
		return "bgm_menu"
	case SoundPlayBGM:
		return "bgm_play"
	default:
		return "unknown"
	}
}

// Audio plays cues. Implementations must not block the frame.
type Audio interface {
	PlaySFX(s Sound)
	PlayBGM(s Sound)
	StopBGM()
}

// ScoreStore persists the best time per level, in ticks.
type ScoreStore interface {
	BestTime(levelID string) (int, error)
	SaveTime(levelID string, score int) error
}

// Platform is everything the game loop needs from the host each frame.
type Platform interface {
	Drawer

	// Loop reports whether the game should keep running.
	Loop() bool
	// Dilation returns the elapsed time since the previous frame in
	// nominal 60 Hz ticks.
	Dilation() float64
	// Pressed returns the buttons held right now.
	Pressed() Buttons

	ScreenBegin()
	ScreenFinalize()
}

// NewTwister returns the seeded generator used for pattern selection.
func NewTwister(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RunFlag is the shutdown flag shared between a platform's signal listener
// and the frame loop. Stop may be called from any goroutine.
type RunFlag struct {
	stopped atomic.Bool
}

// Stop requests shutdown; the loop observes it at the next frame boundary.
func (f *RunFlag) Stop() {
	f.stopped.Store(true)
}

// Loop reports whether shutdown has not been requested.
func (f *RunFlag) Loop() bool {
	return !f.stopped.Load()
}

// NopAudio is the silent fallback used when audio could not be initialised.
type NopAudio struct{}

func (NopAudio) PlaySFX(Sound) {}
func (NopAudio) PlayBGM(Sound) {}
func (NopAudio) StopBGM()      {}

// NopFont draws nothing.
type NopFont struct{}

func (NopFont) DrawText(Color, Point, string, FontSize) {}
func (NopFont) TextWidth(string, FontSize) int          { return 0 }
func (NopFont) LineHeight(FontSize) int                 { return 0 }
