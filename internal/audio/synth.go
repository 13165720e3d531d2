package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/superhex/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave of fixed length
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	seed     uint32
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		seed:     0x2545F491,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			// xorshift keeps noise deterministic and off the global source
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			val = float64(o.seed)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with an attack ramp and a release ramp.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so a zero gain
// becomes a silent stream.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a shaped note.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect returns the synthesized streamer for a one-shot sound, nil for
// sounds that are not effects.
func Effect(s core.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundBegin:
		// Rising fifth and octave
		return beep.Seq(
			tone(440, 80*time.Millisecond, WaveSquare, rate),
			tone(659.25, 80*time.Millisecond, WaveSquare, rate),
			tone(880, 160*time.Millisecond, WaveSquare, rate),
		)
	case core.SoundHexagon:
		return tone(523.25, 250*time.Millisecond, WaveSine, rate)
	case core.SoundOver:
		return beep.Mix(
			tone(110, 600*time.Millisecond, WaveSaw, rate),
			newVolume(tone(0, 400*time.Millisecond, WaveNoise, rate), 0.5),
		)
	case core.SoundSelect:
		return tone(1318.51, 40*time.Millisecond, WaveSquare, rate)
	case core.SoundLevelUp:
		return beep.Seq(
			tone(783.99, 90*time.Millisecond, WaveSine, rate),
			tone(1046.5, 180*time.Millisecond, WaveSine, rate),
		)
	default:
		return nil
	}
}

// pulseLoop is an endless kick and bass line used as background music.
type pulseLoop struct {
	rate beep.SampleRate
	beat int     // Samples per beat
	bass float64 // Bass frequency
	pos  int
}

// Music returns the endless background streamer for a music cue, nil for
// sounds that are not music.
func Music(s core.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundMenuBGM:
		return &pulseLoop{rate: rate, beat: rate.N(600 * time.Millisecond), bass: 110}
	case core.SoundPlayBGM:
		return &pulseLoop{rate: rate, beat: rate.N(400 * time.Millisecond), bass: 146.83}
	default:
		return nil
	}
}

func (g *pulseLoop) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.rate.N(100 * time.Millisecond)
	for i := range samples {
		beatPos := g.pos % g.beat
		t := float64(beatPos) / float64(g.rate)

		kick := 0.0
		if beatPos < kickLen {
			env := 1.0 - float64(beatPos)/float64(kickLen)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		bass := 0.15 * math.Sin(2*math.Pi*g.bass*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		g.pos++
	}
	return len(samples), true
}

func (g *pulseLoop) Err() error { return nil }
