// Package scene is a retained-mode shape store. Game code creates, moves and
// deletes shapes through handles; renderers walk the shapes in creation order
// each frame.
package scene

import (
	"slices"

	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/physics"
)

// Kind is the type of a shape.
type Kind int

const (
	KindPolygon Kind = iota
	KindOval
	KindRectangle
	KindText
)

// Shape is one drawable item.
type Shape struct {
	Kind   Kind
	Points []physics.Point // Polygon vertices
	Box    physics.Rect    // Bounding box for ovals and rectangles
	At     physics.Point   // Text centre
	Text   string
	Size   int // Font size hint for text
	Color  object.Color
}

// Bounds returns the shape's bounding box. Text has no extent and reports a
// zero-sized box at its anchor.
func (s *Shape) Bounds() physics.Rect {
	switch s.Kind {
	case KindPolygon:
		return physics.Bounds(s.Points)
	case KindText:
		return physics.Rect{Min: s.At, Max: s.At}
	default:
		return s.Box
	}
}

// Scene holds shapes keyed by handle. It is not safe for concurrent use.
type Scene struct {
	shapes map[object.Handle]*Shape
	order  []object.Handle
	next   object.Handle
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{shapes: make(map[object.Handle]*Shape)}
}

func (sc *Scene) add(s *Shape) object.Handle {
	sc.next++
	h := sc.next
	sc.shapes[h] = s
	sc.order = append(sc.order, h)
	return h
}

// CreatePolygon adds a polygon. The points are copied.
func (sc *Scene) CreatePolygon(points []physics.Point, color object.Color) object.Handle {
	return sc.add(&Shape{Kind: KindPolygon, Points: slices.Clone(points), Color: color})
}

// CreateOval adds an ellipse inscribed in bounds.
func (sc *Scene) CreateOval(bounds physics.Rect, color object.Color) object.Handle {
	return sc.add(&Shape{Kind: KindOval, Box: bounds, Color: color})
}

// CreateRectangle adds a filled rectangle.
func (sc *Scene) CreateRectangle(bounds physics.Rect, color object.Color) object.Handle {
	return sc.add(&Shape{Kind: KindRectangle, Box: bounds, Color: color})
}

// CreateText adds a text label centred at at.
func (sc *Scene) CreateText(at physics.Point, text string, color object.Color, size int) object.Handle {
	return sc.add(&Shape{Kind: KindText, At: at, Text: text, Size: size, Color: color})
}

// Move shifts a shape by (dx, dy). Unknown handles are ignored.
func (sc *Scene) Move(h object.Handle, dx, dy float64) {
	s, ok := sc.shapes[h]
	if !ok {
		return
	}
	switch s.Kind {
	case KindPolygon:
		for i := range s.Points {
			s.Points[i].X += dx
			s.Points[i].Y += dy
		}
	case KindText:
		s.At.X += dx
		s.At.Y += dy
	default:
		s.Box = s.Box.Translate(dx, dy)
	}
}

// Delete removes a shape. Deleting an unknown handle is a no-op.
func (sc *Scene) Delete(h object.Handle) {
	if _, ok := sc.shapes[h]; !ok {
		return
	}
	delete(sc.shapes, h)
	if i := slices.Index(sc.order, h); i >= 0 {
		sc.order = slices.Delete(sc.order, i, i+1)
	}
}

// SetText replaces the text of a label.
func (sc *Scene) SetText(h object.Handle, text string) {
	if s, ok := sc.shapes[h]; ok && s.Kind == KindText {
		s.Text = text
	}
}

// Shape returns a copy of the shape behind h.
func (sc *Scene) Shape(h object.Handle) (Shape, bool) {
	s, ok := sc.shapes[h]
	if !ok {
		return Shape{}, false
	}
	cp := *s
	cp.Points = slices.Clone(s.Points)
	return cp, true
}

// Bounds returns the bounding box of the shape behind h. Game code keeps its
// own positions; hosts use this for overlays such as hitboxes.
func (sc *Scene) Bounds(h object.Handle) (physics.Rect, bool) {
	s, ok := sc.shapes[h]
	if !ok {
		return physics.Rect{}, false
	}
	return s.Bounds(), true
}

// Overlapping returns every non-text shape whose bounds intersect r, in
// creation order.
func (sc *Scene) Overlapping(r physics.Rect) []object.Handle {
	var out []object.Handle
	for _, h := range sc.order {
		s := sc.shapes[h]
		if s.Kind == KindText {
			continue
		}
		if s.Bounds().Overlaps(r) {
			out = append(out, h)
		}
	}
	return out
}

// Each calls fn for every shape in creation order. fn must not modify the
// scene.
func (sc *Scene) Each(fn func(h object.Handle, s *Shape)) {
	for _, h := range sc.order {
		fn(h, sc.shapes[h])
	}
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.order)
}

// Count returns the number of shapes of the given kind.
func (sc *Scene) Count(kind Kind) int {
	n := 0
	for _, h := range sc.order {
		if sc.shapes[h].Kind == kind {
			n++
		}
	}
	return n
}
