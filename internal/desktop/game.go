// Package desktop runs Space Waves in an ebiten window.
package desktop

import (
	"image/color"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/spacewaves/internal/loop/config"
	"github.com/tomz197/spacewaves/internal/loop/session"
	"github.com/tomz197/spacewaves/internal/loop/ticker"
	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/physics"
	"github.com/tomz197/spacewaves/internal/scene"
)

// Fire key auto-repeat, in ebiten ticks (60 per second).
const (
	fireRepeatDelay    = 24
	fireRepeatInterval = 4
)

// Scale applied to labels at or above the game over font size.
const bigLabelScale = 3

var (
	background = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	boxColor   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// Options configures the desktop game.
type Options struct {
	Rand   *rand.Rand
	Logger *log.Logger
}

// Game implements ebiten.Game around one session at a time.
type Game struct {
	scene   *scene.Scene
	session *session.Session
	ticker  *ticker.FixedStep
	last    time.Time
	paused  bool
	games   int
	boxes   bool // Hitbox overlay, toggled with B

	rng    *rand.Rand
	logger *log.Logger

	face     font.Face
	fillImg  *ebiten.Image
	vs       []ebiten.Vertex
	is       []uint16
	bigLabel map[string]*ebiten.Image // Pre-scaled large labels by text
}

// New creates the game and starts the first session.
func New(opts Options) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	g := &Game{
		ticker:   ticker.NewFixedStep(config.TickInterval, config.MaxCatchUp, nil),
		rng:      rng,
		logger:   logger,
		face:     basicfont.Face7x13,
		fillImg:  fillImg,
		vs:       make([]ebiten.Vertex, 0, 8),
		is:       make([]uint16, 0, 8),
		bigLabel: make(map[string]*ebiten.Image),
	}
	g.restart()
	return g
}

// restart replaces the session with a fresh one.
func (g *Game) restart() {
	g.scene = scene.New()
	g.session = session.New(g.scene, session.Options{Rand: g.rng, Logger: g.logger})
	g.ticker.SetTarget(g.session)
	g.ticker.Start()
	g.paused = false
	g.last = time.Now()
	g.games++
	g.logger.Info("game started", "game", g.games)
}

// Update reads the keyboard and advances the session by the wall time since
// the previous call.
func (g *Game) Update() error {
	now := time.Now()
	elapsed := now.Sub(g.last)
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.boxes = !g.boxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.logger.Info("window closed", "games", g.games, "score", g.session.Score())
		return ebiten.Termination
	}

	if !g.session.Running() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart()
			return nil
		}
		g.ticker.Advance(elapsed)
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.ticker.Stop()
		} else {
			g.ticker.Start()
		}
	}
	if g.paused {
		return nil
	}

	g.session.SetControls(session.Controls{
		Left:  ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:    ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
	})
	if fireRepeat(inpututil.KeyPressDuration(ebiten.KeySpace)) {
		g.session.Fire()
	}

	g.ticker.Advance(elapsed)
	return nil
}

// fireRepeat reports whether a key held for d ticks fires this tick: once on
// press, then at a fixed rate after a delay, like terminal key repeat.
func fireRepeat(d int) bool {
	if d == 1 {
		return true
	}
	return d >= fireRepeatDelay && (d-fireRepeatDelay)%fireRepeatInterval == 0
}

// Draw renders the scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.scene.Each(func(_ object.Handle, s *scene.Shape) {
		clr := s.Color.RGB()
		switch s.Kind {
		case scene.KindPolygon:
			g.fillPolygon(screen, s, clr)
		case scene.KindOval:
			c := s.Box.Center()
			r := float32(min(s.Box.Width(), s.Box.Height()) / 2)
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), r, clr, true)
		case scene.KindRectangle:
			vector.DrawFilledRect(screen, float32(s.Box.Min.X), float32(s.Box.Min.Y),
				float32(s.Box.Width()), float32(s.Box.Height()), clr, false)
		case scene.KindText:
			g.drawLabel(screen, s, clr)
		}
	})

	if g.boxes {
		g.drawBoxes(screen)
	}
	if g.paused {
		g.drawCentered(screen, "PAUSED - press P to resume", config.GameWidth/2, config.GameHeight/2, object.ColorYellow.RGB())
	}
	if !g.session.Running() {
		g.drawCentered(screen, "Press ENTER to play again", config.GameWidth/2, config.GameHeight/2+80, object.ColorWhite.RGB())
	}
}

// drawBoxes outlines the bounding box of every shape inside the playfield.
// Enemies still waiting above the top edge are skipped.
func (g *Game) drawBoxes(screen *ebiten.Image) {
	field := physics.R(0, 0, config.GameWidth, config.GameHeight)
	for _, h := range g.scene.Overlapping(field) {
		b, ok := g.scene.Bounds(h)
		if !ok {
			continue
		}
		vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y),
			float32(b.Width()), float32(b.Height()), 1, boxColor, false)
	}
}

// fillPolygon fills a polygon shape through a vector path.
func (g *Game) fillPolygon(screen *ebiten.Image, s *scene.Shape, clr color.RGBA) {
	if len(s.Points) < 3 {
		return
	}
	path := vector.Path{}
	path.MoveTo(float32(s.Points[0].X), float32(s.Points[0].Y))
	for _, p := range s.Points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	g.vs, g.is = path.AppendVerticesAndIndicesForFilling(g.vs[:0], g.is[:0])
	for i := range g.vs {
		g.vs[i].ColorR = float32(clr.R) / 255
		g.vs[i].ColorG = float32(clr.G) / 255
		g.vs[i].ColorB = float32(clr.B) / 255
		g.vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(g.vs, g.is, g.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// drawLabel draws a text shape centred on its anchor. Large labels are
// rendered once at face size and scaled up.
func (g *Game) drawLabel(screen *ebiten.Image, s *scene.Shape, clr color.RGBA) {
	if s.Size < config.GameOverFontSize {
		lines := strings.Split(s.Text, "\n")
		lineHeight := g.face.Metrics().Height.Ceil()
		y := int(s.At.Y) - lineHeight*(len(lines)-1)/2
		for i, line := range lines {
			g.drawCentered(screen, line, int(s.At.X), y+i*lineHeight, clr)
		}
		return
	}

	img, ok := g.bigLabel[s.Text]
	if !ok {
		img = g.renderBlock(s.Text, clr)
		g.bigLabel[s.Text] = img
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bigLabelScale, bigLabelScale)
	op.GeoM.Translate(s.At.X-float64(b.Dx()*bigLabelScale)/2, s.At.Y-float64(b.Dy()*bigLabelScale)/2)
	screen.DrawImage(img, op)
}

// renderBlock draws multi-line text, each line centred, into a new image.
func (g *Game) renderBlock(s string, clr color.RGBA) *ebiten.Image {
	lines := strings.Split(s, "\n")
	lineHeight := g.face.Metrics().Height.Ceil()
	ascent := g.face.Metrics().Ascent.Ceil()

	width := 1
	for _, line := range lines {
		width = max(width, font.MeasureString(g.face, line).Ceil())
	}
	img := ebiten.NewImage(width, lineHeight*len(lines))
	for i, line := range lines {
		w := font.MeasureString(g.face, line).Ceil()
		text.Draw(img, line, g.face, (width-w)/2, i*lineHeight+ascent, clr)
	}
	return img
}

// drawCentered draws one line of text centred on (x, y).
func (g *Game) drawCentered(screen *ebiten.Image, line string, x, y int, clr color.Color) {
	w := font.MeasureString(g.face, line).Ceil()
	m := g.face.Metrics()
	baseline := y + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	text.Draw(screen, line, g.face, x-w/2, baseline, clr)
}

// Layout fixes the logical screen to the playfield size; ebiten scales it to
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWidth, config.GameHeight
}
