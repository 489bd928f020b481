package scene

import (
	"slices"
	"testing"

	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/physics"
)

func TestCreateMoveDelete(t *testing.T) {
	sc := New()
	tri := sc.CreatePolygon([]physics.Point{{X: 400, Y: 530}, {X: 380, Y: 570}, {X: 420, Y: 570}}, object.ColorCyan)
	oval := sc.CreateOval(physics.R(100, 100, 120, 120), object.ColorRed)
	if tri == 0 || oval == 0 || tri == oval {
		t.Fatalf("handles must be unique and non-zero: %d %d", tri, oval)
	}

	sc.Move(tri, 10, -10)
	b, ok := sc.Bounds(tri)
	if !ok {
		t.Fatal("polygon not found")
	}
	if want := physics.R(390, 520, 430, 560); b != want {
		t.Fatalf("moved bounds = %+v, want %+v", b, want)
	}

	sc.Move(oval, 0, 3)
	if b, _ := sc.Bounds(oval); b != physics.R(100, 103, 120, 123) {
		t.Fatalf("oval bounds = %+v", b)
	}

	sc.Delete(oval)
	sc.Delete(oval) // idempotent
	if _, ok := sc.Bounds(oval); ok {
		t.Fatal("deleted oval still present")
	}
	if sc.Len() != 1 {
		t.Fatalf("Len = %d, want 1", sc.Len())
	}
	sc.Move(oval, 1, 1) // no panic on unknown handle
}

func TestPolygonPointsAreCopied(t *testing.T) {
	sc := New()
	pts := []physics.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}
	h := sc.CreatePolygon(pts, object.ColorCyan)
	pts[0].X = 99

	s, _ := sc.Shape(h)
	if s.Points[0].X != 0 {
		t.Fatal("scene shares the caller's point slice")
	}
	s.Points[1].X = 42
	again, _ := sc.Shape(h)
	if again.Points[1].X != 10 {
		t.Fatal("Shape returned a slice aliasing the scene")
	}
}

func TestOverlappingSkipsTextAndKeepsOrder(t *testing.T) {
	sc := New()
	label := sc.CreateText(physics.Point{X: 15, Y: 15}, "hi", object.ColorWhite, 16)
	a := sc.CreateOval(physics.R(10, 10, 20, 20), object.ColorRed)
	b := sc.CreateRectangle(physics.R(18, 18, 30, 30), object.ColorLime)
	sc.CreateOval(physics.R(100, 100, 110, 110), object.ColorRed)

	got := sc.Overlapping(physics.R(12, 12, 19, 19))
	want := []object.Handle{a, b}
	if !slices.Equal(got, want) {
		t.Fatalf("Overlapping = %v, want %v", got, want)
	}
	if slices.Contains(got, label) {
		t.Fatal("text must not take part in overlap queries")
	}
}

func TestSetTextAndCount(t *testing.T) {
	sc := New()
	h := sc.CreateText(physics.Point{X: 50, Y: 20}, "Score: 0", object.ColorWhite, 16)
	oval := sc.CreateOval(physics.R(0, 0, 1, 1), object.ColorRed)
	sc.SetText(h, "Score: 10")
	sc.SetText(oval, "ignored")

	s, _ := sc.Shape(h)
	if s.Text != "Score: 10" {
		t.Fatalf("Text = %q", s.Text)
	}
	if o, _ := sc.Shape(oval); o.Text != "" {
		t.Fatal("SetText changed a non-text shape")
	}
	if sc.Count(KindText) != 1 || sc.Count(KindOval) != 1 || sc.Count(KindPolygon) != 0 {
		t.Fatal("unexpected shape counts")
	}

	var order []object.Handle
	sc.Each(func(h object.Handle, _ *Shape) { order = append(order, h) })
	if !slices.Equal(order, []object.Handle{h, oval}) {
		t.Fatalf("Each order = %v", order)
	}
}

func TestPlayfieldBoxesTrackMovedShapes(t *testing.T) {
	sc := New()
	waiting := sc.CreateOval(physics.R(100, -200, 120, -180), object.ColorRed)
	falling := sc.CreateOval(physics.R(200, -30, 220, -10), object.ColorRed)
	sc.Move(falling, 0, 15)

	field := physics.R(0, 0, 800, 600)
	got := sc.Overlapping(field)
	if !slices.Equal(got, []object.Handle{falling}) {
		t.Fatalf("Overlapping(field) = %v, want only %v", got, falling)
	}
	if slices.Contains(got, waiting) {
		t.Fatal("shape above the playfield reported as visible")
	}

	b, ok := sc.Bounds(falling)
	if !ok || b != physics.R(200, -15, 220, 5) {
		t.Fatalf("Bounds = %v, %v; want moved box", b, ok)
	}
	sc.Delete(falling)
	if _, ok := sc.Bounds(falling); ok {
		t.Fatal("Bounds found a deleted shape")
	}
}
