package render

import (
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
)

// MenuView is the level selector's animation state.
type MenuView struct {
	Current   *level.Level
	Previous  *level.Level // Level being transitioned away from, nil when settled
	Progress  float64      // Transition progress in [0, 1]
	Spin      float64      // Idle rotation in radians
	Direction int          // -1 when moving left, the unwinding spin is mirrored
	Metrics   core.Metrics
}

// MenuScene blends the previous and current level's look by the transition
// progress. Side counts blend too, which shows a partial side mid-transition.
func MenuScene(v MenuView) Scene {
	cur := v.Current
	prev := v.Previous
	if prev == nil {
		prev = cur
	}
	t := core.ClampF(v.Progress, 0, 1)
	unwind := (1 - t) * core.Tau / float64(cur.Sides)
	if v.Direction < 0 {
		unwind = -unwind
	}

	return Scene{
		Metrics:  v.Metrics,
		Rotation: core.AngleWrap(v.Spin + unwind),
		Sides:    core.Linear(float64(prev.Sides), float64(cur.Sides), t),
		FG:       core.ColorLerp(prev.ColorsFG[0], cur.ColorsFG[0], t),
		BG1:      core.ColorLerp(prev.ColorsBG1[0], cur.ColorsBG1[0], t),
		BG2:      core.ColorLerp(prev.ColorsBG2[0], cur.ColorsBG2[0], t),
		Shadows:  true,
		NoCursor: true,
	}
}

// Menu draws the selector background with the polygon below the title area.
func (r *Renderer) Menu(d core.Drawer, v MenuView) {
	dim := d.ScreenDim()
	s := MenuScene(v)
	focus := core.Pt(dim.X/2, dim.Y*2/3)
	s.Focus = &focus
	r.Play(d, s)
}
