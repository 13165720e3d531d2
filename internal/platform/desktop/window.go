// Package desktop runs the game in a window through Ebitengine.
package desktop

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/state"
)

// maxBatchVertices keeps batched triangle indices inside uint16.
const maxBatchVertices = 65532

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Options configure a Window.
type Options struct {
	Title    string
	Width    int // Initial window size
	Height   int
	TickRate int
}

// OptionsFor builds window options from the runtime config.
func OptionsFor(title string, rc core.RuntimeConfig) Options {
	return Options{
		Title:    title,
		Width:    rc.ScreenW,
		Height:   rc.ScreenH,
		TickRate: rc.TickRate,
	}
}

// Window implements ebiten.Game and core.Platform for one Game.
type Window struct {
	game *state.Game
	flag *core.RunFlag
	opts Options
	font *Font

	target *ebiten.Image
	dim    core.Point
	vs     []ebiten.Vertex
	is     []uint16
}

// NewWindow creates a window whose Game is built by newGame with the window
// as Drawer. flag stops the loop from outside, for example on SIGINT.
func NewWindow(opts Options, flag *core.RunFlag, newGame func(d core.Drawer, f core.Font) (*state.Game, error)) (*Window, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = core.NominalTickRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 480
	}
	if flag == nil {
		flag = &core.RunFlag{}
	}

	w := &Window{
		flag: flag,
		opts: opts,
		dim:  core.Pt(opts.Width, opts.Height),
	}
	w.font = NewFont(w)

	game, err := newGame(w, w.font)
	if err != nil {
		return nil, err
	}
	w.game = game
	return w, nil
}

// Run opens the window and blocks until the game quits or the window closes.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(w.opts.TickRate)

	err := ebiten.RunGame(w)
	w.game.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if !w.Loop() || !w.game.Step(w.Pressed(), w.Dilation()) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.target = screen
	w.ScreenBegin()
	w.game.Draw()
	w.ScreenFinalize()
	w.target = nil
}

// Layout implements ebiten.Game. One logical pixel is one window pixel.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.dim = core.Pt(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Loop implements core.Platform.
func (w *Window) Loop() bool {
	return w.flag.Loop()
}

// Dilation implements core.Platform. Ebitengine calls Update at a fixed
// rate, so every update is the same fraction of a nominal tick.
func (w *Window) Dilation() float64 {
	return float64(core.NominalTickRate) / float64(w.opts.TickRate)
}

// Pressed implements core.Platform.
func (w *Window) Pressed() core.Buttons {
	return buttonsFrom(ebiten.IsKeyPressed)
}

// ScreenBegin implements core.Platform.
func (w *Window) ScreenBegin() {
	w.vs = w.vs[:0]
	w.is = w.is[:0]
	if w.target != nil {
		w.target.Clear()
	}
}

// ScreenFinalize implements core.Platform.
func (w *Window) ScreenFinalize() {
	w.flush()
}

// ScreenDim implements core.Drawer.
func (w *Window) ScreenDim() core.Point {
	return w.dim
}

// DrawTriangle implements core.Drawer. Triangles are batched until the next
// rect, text or the end of the frame.
func (w *Window) DrawTriangle(c core.Color, t core.Triangle) {
	if len(w.vs)+3 > maxBatchVertices {
		w.flush()
	}
	w.vs, w.is = appendTriangle(w.vs, w.is, c, t)
}

// DrawRect implements core.Drawer.
func (w *Window) DrawRect(c core.Color, pos, size core.Point) {
	if w.target == nil {
		return
	}
	w.flush()
	vector.DrawFilledRect(w.target, float32(pos.X), float32(pos.Y), float32(size.X), float32(size.Y), nrgba(c), false)
}

func (w *Window) flush() {
	if len(w.is) == 0 {
		return
	}
	if w.target != nil {
		w.target.DrawTriangles(w.vs, w.is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}
	w.vs = w.vs[:0]
	w.is = w.is[:0]
}

// appendTriangle adds t as three vertices sampling the white pixel.
func appendTriangle(vs []ebiten.Vertex, is []uint16, c core.Color, t core.Triangle) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	r, g, b, a := float32(c.R)/0xFF, float32(c.G)/0xFF, float32(c.B)/0xFF, float32(c.A)/0xFF
	for _, p := range t {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	is = append(is, base, base+1, base+2)
	return vs, is
}

// buttonsFrom maps the keyboard state to buttons.
func buttonsFrom(pressed func(ebiten.Key) bool) core.Buttons {
	var held core.Buttons
	if pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyA) {
		held = held.With(core.ButtonLeft)
	}
	if pressed(ebiten.KeyArrowRight) || pressed(ebiten.KeyD) {
		held = held.With(core.ButtonRight)
	}
	if pressed(ebiten.KeyEnter) || pressed(ebiten.KeySpace) {
		held = held.With(core.ButtonSelect)
	}
	if pressed(ebiten.KeyEscape) || pressed(ebiten.KeyBackspace) {
		held = held.With(core.ButtonBack)
	}
	if pressed(ebiten.KeyQ) {
		held = held.With(core.ButtonQuit)
	}
	return held
}

func nrgba(c core.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
