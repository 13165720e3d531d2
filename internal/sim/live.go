// Package sim implements the running level: rotation, color tweening,
// pattern spawning, wall movement, the player cursor and collision.
// All state advances through Advance, scaled by the frame's dilation, so two
// runs fed the same dilation, input and seed sequences behave identically.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
)

// ErrInvariant marks internal consistency failures, such as a side count
// below three or the active pattern set overflowing.
var ErrInvariant = errors.New("simulation invariant violated")

// Tuning constants, in nominal 60 Hz ticks.
const (
	DefaultCapacity  = 8              // Maximum concurrent active patterns
	CursorStep       = core.Tau / 120 // Cursor rotation per tick while a direction is held
	SideChangeFrames = 30.0           // Ticks a side count transition takes
	OverflowOffset   = core.Tau / 900 // Angular overlap added to each wall edge
)

// Event reports what happened during one Advance call.
type Event uint8

const (
	EventPulse     Event = 1 << iota // A tween period completed
	EventSpawn                       // A pattern was stamped into the active set
	EventRankUp                      // The score crossed a rank threshold
	EventCollision                   // The cursor hit a wall
)

// Has reports whether e includes flag.
func (e Event) Has(flag Event) bool {
	return e&flag != 0
}

// Options tune a LiveLevel beyond its level data.
type Options struct {
	Metrics     core.Metrics            // Play-field sizes in simulation units
	Capacity    int                     // Maximum concurrent patterns
	WallScale   float64                 // Multiplier on the level's wall speed
	RotateScale float64                 // Multiplier on the level's rotation speed
	Ramp        func(ticks int) float64 // Extra wall speed multiplier by score, nil for none
	Strict      bool                    // Panic on invariant violations instead of clamping
	Logger      *log.Logger
}

// DefaultOptions returns options sized for the 400x240 design screen.
func DefaultOptions() Options {
	return Options{
		Metrics:     core.MetricsFor(core.Pt(400, 240)),
		Capacity:    DefaultCapacity,
		WallScale:   1,
		RotateScale: 1,
	}
}

// LivePattern is one spawned pattern and the walls it still has in play.
type LivePattern struct {
	Name  string
	Walls []core.Wall
}

// LiveLevel is the mutable state of one play session. It borrows its Level
// read-only and is owned by exactly one Play state.
type LiveLevel struct {
	lvl  *level.Level
	opts Options
	rng  *rand.Rand
	log  *log.Logger

	rotation      float64 // Wrapped to [0, Tau)
	rotationSpeed float64 // Signed radians per tick
	reversePend   bool    // Flip rotation sign at the next pulse boundary
	cursor        float64 // World-frame cursor angle, wrapped to [0, Tau)

	index      [level.PaletteCount]int
	nextIndex  [level.PaletteCount]int
	tweenFrame float64
	pulses     int

	sides       float64 // Current, fractional while transitioning
	targetSides int

	spawnTimer float64
	nextSpawn  int // Next pattern for sequential order
	patterns   []LivePattern
	evicted    int // Patterns force-retired to make room

	scoreAcc float64
	score    int
	rank     int
	dead     bool
	ticks    int // Advance calls so far
	hitTick  int // Tick of the collision, 0 while alive
}

// New creates a LiveLevel for lvl. The level must have passed Validate; rng is
// the seeded source used for random pattern order, side changes and jitter.
func New(lvl *level.Level, rng *rand.Rand, opts Options) (*LiveLevel, error) {
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.WallScale <= 0 {
		opts.WallScale = 1
	}
	if opts.RotateScale <= 0 {
		opts.RotateScale = 1
	}
	if opts.Metrics.RenderDistance <= 0 {
		opts.Metrics = DefaultOptions().Metrics
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if rng == nil {
		rng = core.NewTwister(0)
	}

	l := &LiveLevel{
		lvl:           lvl,
		opts:          opts,
		rng:           rng,
		log:           logger.WithPrefix("sim"),
		rotationSpeed: lvl.RotationSpeed * opts.RotateScale,
		cursor:        core.Tau / float64(lvl.Sides) / 2,
		sides:         float64(lvl.Sides),
		targetSides:   lvl.Sides,
		spawnTimer:    lvl.SpawnInterval,
		patterns:      make([]LivePattern, 0, opts.Capacity),
	}
	for p := level.Palette(0); p < level.PaletteCount; p++ {
		l.nextIndex[p] = 1 % lvl.PaletteLen(p)
	}
	return l, nil
}

// Advance steps the level by one frame of the given dilation. The order is
// fixed: rotation, tween, spawn, walls, cursor, collision, score.
func (l *LiveLevel) Advance(in core.Input, dilation float64) Event {
	if l.dead {
		return 0
	}
	if math.IsNaN(dilation) || dilation < 0 {
		l.violate("dilation %v out of range", dilation)
		dilation = 0
	}
	l.ticks++

	var ev Event
	l.rotation = core.AngleWrap(l.rotation + l.rotationSpeed*dilation)
	ev |= l.tween(dilation)
	ev |= l.schedule(dilation)
	l.advanceWalls(dilation)
	l.moveCursor(in, dilation)

	if l.collides() {
		l.dead = true
		l.hitTick = l.ticks
		return ev | EventCollision
	}

	l.scoreAcc += dilation
	l.score = int(math.Floor(l.scoreAcc))
	if r := RankIndex(l.score); r > l.rank {
		l.rank = r
		ev |= EventRankUp
	}
	return ev
}

// tween advances the pulse clock and applies everything that happens at a
// pulse boundary.
func (l *LiveLevel) tween(dilation float64) Event {
	l.stepSides(dilation)

	l.tweenFrame += dilation
	if l.tweenFrame < l.lvl.PulsePeriod {
		return 0
	}
	l.tweenFrame = 0
	l.pulses++

	for p := level.Palette(0); p < level.PaletteCount; p++ {
		n := l.lvl.PaletteLen(p)
		l.index[p] = l.nextIndex[p]
		l.nextIndex[p] = (l.nextIndex[p] + 1) % n
	}

	if l.lvl.ReverseEvery > 0 && l.pulses%l.lvl.ReverseEvery == 0 {
		l.reversePend = true
	}
	if l.reversePend {
		l.rotationSpeed = -l.rotationSpeed
		l.reversePend = false
	}

	if l.lvl.SpeedJitter > 0 {
		base := l.lvl.RotationSpeed * l.opts.RotateScale
		scale := 1 + l.lvl.SpeedJitter*(2*l.rng.Float64()-1)
		l.rotationSpeed = math.Copysign(base*scale, l.rotationSpeed)
	}

	if l.lvl.SidesMax > l.lvl.SidesMin && l.lvl.SideChangeChance > 0 &&
		l.rng.Float64() < l.lvl.SideChangeChance {
		l.targetSides = l.lvl.SidesMin + l.rng.Intn(l.lvl.SidesMax-l.lvl.SidesMin+1)
	}
	return EventPulse
}

// stepSides moves the fractional side count toward its target.
func (l *LiveLevel) stepSides(dilation float64) {
	target := float64(l.targetSides)
	if l.sides == target {
		return
	}
	step := dilation / SideChangeFrames
	if l.sides < target {
		l.sides = math.Min(l.sides+step, target)
	} else {
		l.sides = math.Max(l.sides-step, target)
	}
}

func (l *LiveLevel) advanceWalls(dilation float64) {
	speed := l.lvl.WallSpeed * l.opts.WallScale * dilation
	if l.opts.Ramp != nil {
		speed *= l.opts.Ramp(l.score)
	}
	bound := l.OuterBoundary()

	kept := l.patterns[:0]
	for _, p := range l.patterns {
		walls := p.Walls[:0]
		for _, w := range p.Walls {
			w.Distance += speed
			if w.Distance <= bound {
				walls = append(walls, w)
			}
		}
		p.Walls = walls
		if len(p.Walls) > 0 {
			kept = append(kept, p)
		}
	}
	clear(l.patterns[len(kept):])
	l.patterns = kept
}

func (l *LiveLevel) moveCursor(in core.Input, dilation float64) {
	step := CursorStep * dilation
	if in.Held.Has(core.ButtonLeft) {
		l.cursor -= step
	}
	if in.Held.Has(core.ButtonRight) {
		l.cursor += step
	}
	l.cursor = core.AngleWrap(l.cursor)
}

// CursorSide returns the side under the cursor in the level's rotating frame.
func (l *LiveLevel) CursorSide() int {
	n := l.SideCount()
	width := core.Tau / l.sides
	side := int(math.Floor(core.AngleWrap(l.cursor-l.rotation) / width))
	if side >= n {
		side = n - 1
	}
	return side
}

func (l *LiveLevel) collides() bool {
	side := l.CursorSide()
	n := l.SideCount()
	for _, p := range l.patterns {
		for _, w := range p.Walls {
			if w.Side%n == side && l.hits(w) {
				return true
			}
		}
	}
	return false
}

// hits reports whether the cursor radius lies inside the wall's closed
// radial interval.
func (l *LiveLevel) hits(w core.Wall) bool {
	r := l.CursorRadius()
	return w.Distance <= r && r <= w.Distance+w.Height
}

// violate handles a broken invariant: strict sessions panic, others log and
// let the caller clamp.
func (l *LiveLevel) violate(format string, args ...any) {
	err := fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
	if l.opts.Strict {
		panic(err)
	}
	l.log.Warn("clamping", "err", err, "level", l.lvl.ID, "tick", l.ticks)
}

// Level returns the level being played.
func (l *LiveLevel) Level() *level.Level { return l.lvl }

// Rotation returns the current rotation in [0, Tau).
func (l *LiveLevel) Rotation() float64 { return l.rotation }

// RotationSpeed returns the signed rotation speed in radians per tick.
func (l *LiveLevel) RotationSpeed() float64 { return l.rotationSpeed }

// Cursor returns the world-frame cursor angle in [0, Tau).
func (l *LiveLevel) Cursor() float64 { return l.cursor }

// Sides returns the side count, fractional during a transition.
func (l *LiveLevel) Sides() float64 { return l.sides }

// SideCount returns the number of addressable sides, never below three.
func (l *LiveLevel) SideCount() int {
	n := core.ExactSides(l.sides)
	if n < 3 {
		l.violate("side count %v below three", l.sides)
		l.sides = 3
		n = 3
	}
	return n
}

// Reverse schedules a rotation sign flip for the next pulse boundary.
func (l *LiveLevel) Reverse() { l.reversePend = true }

// Tween returns the interpolation factor of the current pulse in [0, 1].
func (l *LiveLevel) Tween() float64 {
	return core.ClampF(l.tweenFrame/l.lvl.PulsePeriod, 0, 1)
}

// PaletteIndex returns the current and next color index of palette p.
func (l *LiveLevel) PaletteIndex(p level.Palette) (int, int) {
	return l.index[p], l.nextIndex[p]
}

// Color returns the tweened color of palette p.
func (l *LiveLevel) Color(p level.Palette) core.Color {
	pal := l.lvl.Palette(p)
	return core.ColorLerp(pal[l.index[p]], pal[l.nextIndex[p]], l.Tween())
}

// Patterns returns the active patterns, oldest first. The slice is reused by
// the next Advance.
func (l *LiveLevel) Patterns() []LivePattern { return l.patterns }

// Metrics returns the play-field sizes used for collision.
func (l *LiveLevel) Metrics() core.Metrics { return l.opts.Metrics }

// CursorRadius is the fixed radius the cursor orbits at.
func (l *LiveLevel) CursorRadius() float64 {
	return l.opts.Metrics.HexLength + l.opts.Metrics.HumanPadding
}

// OuterBoundary is the distance past which walls are retired.
func (l *LiveLevel) OuterBoundary() float64 { return l.opts.Metrics.RenderDistance }

// Score returns the elapsed ticks survived.
func (l *LiveLevel) Score() int { return l.score }

// Rank returns the current rank.
func (l *LiveLevel) Rank() Rank { return Ranks[l.rank] }

// Dead reports whether the cursor has collided.
func (l *LiveLevel) Dead() bool { return l.dead }

// HitTick returns the Advance call on which the collision happened, 0 while
// alive.
func (l *LiveLevel) HitTick() int { return l.hitTick }

// Evicted returns how many patterns were retired early to respect capacity.
func (l *LiveLevel) Evicted() int { return l.evicted }

// Ticks returns the number of Advance calls so far.
func (l *LiveLevel) Ticks() int { return l.ticks }
