// Package physics provides geometry and overlap utilities for the playfield.
package physics

// Point is a position on the logical canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box. Min is the top-left corner, Max the bottom-right
// (y grows downwards, like the canvas).
type Rect struct {
	Min, Max Point
}

// R builds a rectangle from two corners in any order.
func R(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{Min: Point{X: x1, Y: y1}, Max: Point{X: x2, Y: y2}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + dx, Y: r.Min.Y + dy},
		Max: Point{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// Overlaps reports whether two rectangles intersect. Touching edges count,
// matching how a canvas overlap query treats shared borders.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// StrictlyInside reports whether r lies inside the open box (0,0)-(width,height).
func (r Rect) StrictlyInside(width, height float64) bool {
	return r.Min.X > 0 && r.Max.X < width && r.Min.Y > 0 && r.Max.Y < height
}

// Bounds returns the bounding box of a set of points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}
