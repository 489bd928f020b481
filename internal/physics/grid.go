package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase overlap queries on a bounded
// playfield. Items are inserted by bounding box and index; a rectangle query
// visits only the cells the rectangle covers.
//
// Boxes outside the grid (enemies still above the visible area) are clamped
// into the border cells, so they are still found by queries that reach them.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell

	// stamp deduplicates items spanning several cells within one query.
	stamp []uint32
	epoch uint32
}

// gridCell stores the indices of items that touch a grid cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) to every cell its box touches.
func (g *SpatialGrid) Insert(r Rect, index int) {
	c0, r0 := g.posToCell(r.Min.X, r.Min.Y)
	c1, r1 := g.posToCell(r.Max.X, r.Max.Y)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			g.cells[rowOffset+col].items = append(g.cells[rowOffset+col].items, index)
		}
	}
	if index >= len(g.stamp) {
		g.stamp = append(g.stamp, make([]uint32, index+1-len(g.stamp))...)
	}
}

// Query calls fn once for each item index sharing a cell with r. Candidates
// still need an exact overlap test. If fn returns true, iteration stops early.
func (g *SpatialGrid) Query(r Rect, fn func(index int) bool) {
	g.epoch++
	if g.epoch == 0 {
		clear(g.stamp)
		g.epoch = 1
	}

	c0, r0 := g.posToCell(r.Min.X, r.Min.Y)
	c1, r1 := g.posToCell(r.Max.X, r.Max.Y)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if g.stamp[itemIdx] == g.epoch {
					continue
				}
				g.stamp[itemIdx] = g.epoch
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts coordinates to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
