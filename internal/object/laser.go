package object

import "github.com/tomz197/spacewaves/internal/physics"

// Laser dimensions.
const (
	LaserHalfWidth = 3.0
	LaserLength    = 15.0
)

// Laser is a bolt fired straight up from the ship's nose.
type Laser struct {
	Handle Handle
	X, Y   float64 // Centre of the bottom edge
}

// NewLaser creates a laser whose bottom edge is centred at (x, y).
func NewLaser(x, y float64) *Laser {
	return &Laser{X: x, Y: y}
}

// Bounds returns the laser's rectangle.
func (l *Laser) Bounds() physics.Rect {
	return physics.R(l.X-LaserHalfWidth, l.Y-LaserLength, l.X+LaserHalfWidth, l.Y)
}

// Update moves the laser up. Returns true once its top edge has left the screen.
func (l *Laser) Update(ctx UpdateContext) (remove bool) {
	l.Y -= ctx.LaserSpeed
	return l.Y-LaserLength < 0
}
