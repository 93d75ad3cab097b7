package main

import "math"

// spatialGrid is a uniform broad-phase index over shapes. Cells store shape
// indices into the slice passed to rebuild, so the grid holds no pointers and
// can be rebuilt every tick without aliasing concerns.
type spatialGrid struct {
	params    *gridParams
	cellSize  float64
	gridW     int
	gridH     int
	cells     map[int][]int
	pairSeen  map[uint64]struct{}
	pairCache [][2]int
}

func newSpatialGrid(p *gridParams, cellSize float64) *spatialGrid {
	if cellSize <= 0 {
		cellSize = p.CellSize
	}
	return &spatialGrid{
		params:   p,
		cellSize: cellSize,
		gridW:    int(math.Ceil(windowW/cellSize)) + p.MarginCells,
		gridH:    int(math.Ceil(windowH/cellSize)) + p.MarginCells,
		cells:    make(map[int][]int),
		pairSeen: make(map[uint64]struct{}),
	}
}

// rebuild clears the grid and inserts every shape that lies within the
// viewport margin into each cell its circle overlaps.
func (g *spatialGrid) rebuild(shapes []shape) {
	for k, cell := range g.cells {
		g.cells[k] = cell[:0]
	}
	for i := range shapes {
		s := &shapes[i]
		if !circleNearScreen(s.center, s.radius, g.params.ViewportMargin) {
			continue
		}
		minCX, minCY := g.cellCoord(s.center.X-s.radius, s.center.Y-s.radius)
		maxCX, maxCY := g.cellCoord(s.center.X+s.radius, s.center.Y+s.radius)
		for cy := minCY; cy <= maxCY; cy++ {
			for cx := minCX; cx <= maxCX; cx++ {
				key := cy*g.gridW + cx
				g.cells[key] = append(g.cells[key], i)
			}
		}
	}
}

// potentialPairs returns every index pair (i < j) sharing at least one cell,
// deduped across cells. The returned slice is reused between calls.
func (g *spatialGrid) potentialPairs() [][2]int {
	for k := range g.pairSeen {
		delete(g.pairSeen, k)
	}
	g.pairCache = g.pairCache[:0]
	for _, cell := range g.cells {
		for a := 0; a < len(cell); a++ {
			for b := a + 1; b < len(cell); b++ {
				i, j := cell[a], cell[b]
				if i > j {
					i, j = j, i
				}
				key := uint64(i)<<32 | uint64(uint32(j))
				if _, dup := g.pairSeen[key]; dup {
					continue
				}
				g.pairSeen[key] = struct{}{}
				g.pairCache = append(g.pairCache, [2]int{i, j})
			}
		}
	}
	return g.pairCache
}

// cellCoord maps a point to cell coordinates, shifted by half the margin so
// slightly off-screen shapes land in valid cells.
func (g *spatialGrid) cellCoord(x, y float64) (int, int) {
	half := float64(g.params.MarginCells/2) * g.cellSize
	cx := int(math.Floor((x + half) / g.cellSize))
	cy := int(math.Floor((y + half) / g.cellSize))
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= g.gridW {
		cx = g.gridW - 1
	}
	if cy >= g.gridH {
		cy = g.gridH - 1
	}
	return cx, cy
}
