// Package object defines the entities of a game session and the per-tick
// context they are updated with.
package object

import (
	"image/color"

	"github.com/tomz197/spacewaves/internal/physics"
)

// Handle identifies a shape on a drawing surface. Zero is never issued.
type Handle uint64

// Color is a palette entry. Values are xterm-256 colour indices so terminal
// renderers can emit them directly; other renderers map them to RGB.
type Color uint8

// Palette used by the game.
const (
	ColorCyan   Color = 14
	ColorRed    Color = 9
	ColorLime   Color = 10
	ColorYellow Color = 11
	ColorWhite  Color = 15
)

// UpdateContext carries the session-scoped values an entity needs to advance
// one tick.
type UpdateContext struct {
	EnemySpeed float64 // Downward distance per tick, shared by every enemy
	LaserSpeed float64 // Upward distance per tick
	BreachLine float64 // Enemies whose bottom edge passes this line breach the defence
}

// Screen represents the logical playfield dimensions.
type Screen struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// NewScreen returns a screen of the given size with its centre filled in.
func NewScreen(width, height float64) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// Contains reports whether r fits strictly inside the screen.
func (s Screen) Contains(r physics.Rect) bool {
	return r.StrictlyInside(s.Width, s.Height)
}

// RGB returns the colour as a desktop renderer shows it. Indices outside the
// 16 standard xterm colours map to grey.
func (c Color) RGB() color.RGBA {
	switch c {
	case 9:
		return color.RGBA{R: 255, A: 255}
	case 10:
		return color.RGBA{G: 255, A: 255}
	case 11:
		return color.RGBA{R: 255, G: 255, A: 255}
	case 12:
		return color.RGBA{B: 255, A: 255}
	case 13:
		return color.RGBA{R: 255, B: 255, A: 255}
	case 14:
		return color.RGBA{G: 255, B: 255, A: 255}
	case 15:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}
