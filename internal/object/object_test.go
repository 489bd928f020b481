package object

import (
	"math/rand"
	"testing"
)

func TestPlayerVelocityLaterDirectionWins(t *testing.T) {
	p := NewPlayer(400, 550, 20, 10)
	cases := []struct {
		name                  string
		left, right, up, down bool
		dx, dy                float64
	}{
		{"idle", false, false, false, false, 0, 0},
		{"left", true, false, false, false, -10, 0},
		{"left and right", true, true, false, false, 10, 0},
		{"up and down", false, false, true, true, 0, 10},
		{"diagonal", true, false, true, false, -10, -10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy := p.Velocity(tc.left, tc.right, tc.up, tc.down)
			if dx != tc.dx || dy != tc.dy {
				t.Fatalf("Velocity = (%v,%v), want (%v,%v)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestPlayerTryMoveRejectsWholeMove(t *testing.T) {
	screen := NewScreen(800, 600)

	p := NewPlayer(25, 300, 20, 10)
	if p.TryMove(-10, -10, screen) {
		t.Fatal("move past the left edge should be rejected")
	}
	if p.X != 25 || p.Y != 300 {
		t.Fatalf("position changed to (%v,%v) after a rejected move", p.X, p.Y)
	}

	if !p.TryMove(10, -10, screen) {
		t.Fatal("move inside the screen should be accepted")
	}
	if p.X != 35 || p.Y != 290 {
		t.Fatalf("position = (%v,%v), want (35,290)", p.X, p.Y)
	}

	// Touching the border is not strictly inside.
	edge := NewPlayer(400, 570, 20, 10)
	if edge.TryMove(0, 10, screen) {
		t.Fatal("move onto the bottom border should be rejected")
	}
}

func TestPlayerGeometry(t *testing.T) {
	p := NewPlayer(400, 550, 20, 10)
	pts := p.Points()
	if pts[0].X != 400 || pts[0].Y != 530 {
		t.Fatalf("nose = %+v, want (400,530)", pts[0])
	}
	if p.Nose() != pts[0] {
		t.Fatalf("Nose = %+v, want %+v", p.Nose(), pts[0])
	}
	if p.Bottom() != 570 {
		t.Fatalf("Bottom = %v, want 570", p.Bottom())
	}
}

func TestEnemyUpdateBreach(t *testing.T) {
	e := NewEnemy(100, 540, 20)
	ctx := UpdateContext{EnemySpeed: 3, BreachLine: 570}

	if e.Update(ctx) {
		t.Fatal("bottom at 563 should not breach 570")
	}
	if e.Y != 543 {
		t.Fatalf("Y = %v, want 543", e.Y)
	}
	e.Update(ctx)
	e.Update(ctx)
	// 552 + 20 = 572 > 570
	if !e.Update(ctx) {
		t.Fatal("bottom at 572 should breach 570")
	}
}

func TestNewEnemyInStaysInArea(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	area := SpawnArea{MinX: 50, MaxX: 750, MinY: -600, MaxY: -50, MinSize: 15, MaxSize: 25}
	for i := 0; i < 500; i++ {
		e := NewEnemyIn(area, rng)
		if e.X < 50 || e.X > 750 {
			t.Fatalf("x = %v out of range", e.X)
		}
		if e.Y < -600 || e.Y > -50 {
			t.Fatalf("y = %v out of range", e.Y)
		}
		if e.Size < 15 || e.Size > 25 {
			t.Fatalf("size = %v out of range", e.Size)
		}
	}
}

func TestLaserUpdate(t *testing.T) {
	l := NewLaser(400, 40)
	ctx := UpdateContext{LaserSpeed: 15}
	if l.Update(ctx) {
		t.Fatal("top edge at 10 is still on screen")
	}
	if !l.Update(ctx) {
		t.Fatal("top edge at -5 has left the screen")
	}
	b := NewLaser(400, 530).Bounds()
	if b.Min.X != 397 || b.Max.X != 403 || b.Min.Y != 515 || b.Max.Y != 530 {
		t.Fatalf("Bounds = %+v", b)
	}
}

func TestLabels(t *testing.T) {
	if got := ScoreLabel(50); got != "Score: 50" {
		t.Fatalf("ScoreLabel = %q", got)
	}
	if got := HealthLabel(2); got != "Health: 2" {
		t.Fatalf("HealthLabel = %q", got)
	}
	if got := WaveLabel(3); got != "Wave 3" {
		t.Fatalf("WaveLabel = %q", got)
	}
	if got := GameOverLabel(120); got != "GAME OVER\nFinal Score: 120" {
		t.Fatalf("GameOverLabel = %q", got)
	}
}

func TestPaletteRGB(t *testing.T) {
	if got := ColorRed.RGB(); got.R != 255 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Fatalf("ColorRed.RGB() = %+v", got)
	}
	if got := ColorCyan.RGB(); got.R != 0 || got.G != 255 || got.B != 255 {
		t.Fatalf("ColorCyan.RGB() = %+v", got)
	}
	if got := Color(200).RGB(); got.R != 128 {
		t.Fatalf("unknown colour = %+v, want grey", got)
	}
}
