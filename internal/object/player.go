package object

import "github.com/tomz197/spacewaves/internal/physics"

// Player is the ship at the bottom of the screen. It is drawn as a triangle
// with its nose pointing up.
type Player struct {
	Handle Handle
	X, Y   float64 // Centre of the ship
	Size   float64 // Half-size of the triangle
	Speed  float64 // Distance per tick on each axis
}

// NewPlayer creates a ship centred at (x, y).
func NewPlayer(x, y, size, speed float64) *Player {
	return &Player{X: x, Y: y, Size: size, Speed: speed}
}

// Points returns the triangle vertices: nose, left wing, right wing.
func (p *Player) Points() []physics.Point {
	return []physics.Point{
		{X: p.X, Y: p.Y - p.Size},
		{X: p.X - p.Size, Y: p.Y + p.Size},
		{X: p.X + p.Size, Y: p.Y + p.Size},
	}
}

// Bounds returns the bounding box of the triangle.
func (p *Player) Bounds() physics.Rect {
	return physics.R(p.X-p.Size, p.Y-p.Size, p.X+p.Size, p.Y+p.Size)
}

// Nose returns the forward tip of the ship, where lasers leave from.
func (p *Player) Nose() physics.Point {
	return physics.Point{X: p.X, Y: p.Y - p.Size}
}

// Bottom returns the y coordinate of the ship's lower edge.
func (p *Player) Bottom() float64 {
	return p.Y + p.Size
}

// Velocity turns held directions into a per-tick displacement. Directions are
// checked left, right, up, down and a later check overwrites an earlier one,
// so holding left and right together moves right.
func (p *Player) Velocity(left, right, up, down bool) (dx, dy float64) {
	if left {
		dx = -p.Speed
	}
	if right {
		dx = p.Speed
	}
	if up {
		dy = -p.Speed
	}
	if down {
		dy = p.Speed
	}
	return dx, dy
}

// TryMove moves the ship by (dx, dy) if the result stays inside the screen.
// A move that would leave the screen is rejected on both axes.
func (p *Player) TryMove(dx, dy float64, screen Screen) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	if !screen.Contains(p.Bounds().Translate(dx, dy)) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}
