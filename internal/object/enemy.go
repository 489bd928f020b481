package object

import (
	"math/rand"

	"github.com/tomz197/spacewaves/internal/physics"
)

// Enemy is a round invader falling from the top of the screen.
type Enemy struct {
	Handle Handle
	X, Y   float64 // Top-left corner of the bounding box
	Size   float64 // Width and height of the bounding box
}

// NewEnemy creates an enemy with its bounding box at (x, y).
func NewEnemy(x, y, size float64) *Enemy {
	return &Enemy{X: x, Y: y, Size: size}
}

// SpawnArea bounds where new enemies appear. All ranges are inclusive.
type SpawnArea struct {
	MinX, MaxX       int
	MinY, MaxY       int
	MinSize, MaxSize int
}

// NewEnemyIn creates an enemy at a random position and size within area.
func NewEnemyIn(area SpawnArea, rng *rand.Rand) *Enemy {
	x := randRange(rng, area.MinX, area.MaxX)
	y := randRange(rng, area.MinY, area.MaxY)
	size := randRange(rng, area.MinSize, area.MaxSize)
	return NewEnemy(float64(x), float64(y), float64(size))
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.R(e.X, e.Y, e.X+e.Size, e.Y+e.Size)
}

// Update moves the enemy down by the shared enemy speed. Returns true if the
// enemy crossed the breach line and must be removed.
func (e *Enemy) Update(ctx UpdateContext) (breached bool) {
	e.Y += ctx.EnemySpeed
	return e.Y+e.Size > ctx.BreachLine
}

// randRange returns a uniform integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
