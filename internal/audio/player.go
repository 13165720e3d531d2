// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/superhex/internal/config"
	"github.com/vovakirdan/superhex/internal/core"
)

// Player implements core.Audio on top of a beep mixer.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	bgm    *beep.Ctrl
	closed bool
}

// New initializes the speaker and starts the mixer. Failures wrap
// core.ErrResource.
func New(cfg config.AudioConfig) (*Player, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("audio: disabled by config: %w", core.ErrResource)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %v: %w", err, core.ErrResource)
	}

	p := &Player{
		rate:   rate,
		volume: core.ClampF(cfg.Volume, 0, 1),
		mixer:  &beep.Mixer{},
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Open returns a Player, or silent audio when the speaker is unavailable.
func Open(cfg config.AudioConfig, logger *log.Logger) core.Audio {
	p, err := New(cfg)
	if err != nil {
		logger.Warn("continuing without sound", "err", err)
		return core.NopAudio{}
	}
	return p
}

// PlaySFX mixes a one-shot effect in.
func (p *Player) PlaySFX(s core.Sound) {
	st := Effect(s, p.rate)
	if st == nil {
		return
	}
	p.add(newVolume(st, p.volume))
}

// PlayBGM replaces the background music.
func (p *Player) PlayBGM(s core.Sound) {
	st := Music(s, p.rate)
	if st == nil {
		return
	}
	p.StopBGM()

	ctrl := &beep.Ctrl{Streamer: newVolume(st, p.volume*0.5)}
	p.mu.Lock()
	p.bgm = ctrl
	p.mu.Unlock()
	p.add(ctrl)
}

// StopBGM silences the background music.
func (p *Player) StopBGM() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bgm == nil {
		return
	}
	speaker.Lock()
	p.bgm.Paused = true
	p.bgm.Streamer = nil
	speaker.Unlock()
	p.bgm = nil
}

func (p *Player) add(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}
