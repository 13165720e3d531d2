package sim

import (
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
)

// schedule counts down to the next spawn and stamps a pattern when it is due.
// The timer starts full so the first pattern arrives on the first update.
func (l *LiveLevel) schedule(dilation float64) Event {
	var ev Event
	if l.spawnTimer >= l.lvl.SpawnInterval {
		l.spawnTimer -= l.lvl.SpawnInterval
		if l.spawnTimer >= l.lvl.SpawnInterval {
			// A long stall spawns once, not in a burst.
			l.spawnTimer = 0
		}
		l.Spawn()
		ev = EventSpawn
	}
	l.spawnTimer += dilation
	return ev
}

// Spawn stamps the next pattern template into the active set. When the set is
// full the oldest pattern is retired first.
func (l *LiveLevel) Spawn() {
	templates := l.lvl.Patterns
	var idx, shift int
	if l.lvl.Order == level.OrderRandom {
		idx = l.rng.Intn(len(templates))
		shift = l.rng.Intn(l.SideCount())
	} else {
		idx = l.nextSpawn
		l.nextSpawn = (l.nextSpawn + 1) % len(templates)
	}
	tpl := templates[idx]

	if n := len(l.patterns); n >= l.opts.Capacity {
		if n > l.opts.Capacity {
			l.violate("active patterns %d over capacity %d", n, l.opts.Capacity)
		}
		drop := n - l.opts.Capacity + 1
		copy(l.patterns, l.patterns[drop:])
		clear(l.patterns[n-drop:])
		l.patterns = l.patterns[:n-drop]
		l.evicted += drop
	}

	walls := make([]core.Wall, len(tpl.Walls))
	for i, w := range tpl.Walls {
		walls[i] = core.Wall{
			Side:     w.Side + shift,
			Distance: -w.Distance,
			Height:   w.Height,
		}
	}
	l.patterns = append(l.patterns, LivePattern{Name: tpl.Name, Walls: walls})
}
