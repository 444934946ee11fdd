package game

// Cell is one fixed square of the stage in canvas space.
type Cell struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies inside the cell. Edges count as inside.
func (c Cell) Contains(x, y float64) bool {
	if x < c.Left || c.Left+c.Width < x {
		return false
	}
	if y < c.Top || c.Top+c.Height < y {
		return false
	}
	return true
}

// Center returns the centre point of the cell.
func (c Cell) Center() (float64, float64) {
	return c.Left + c.Width/2, c.Top + c.Height/2
}

// CellRef names a cell by row and column.
type CellRef struct {
	Row int
	Col int
}

// Grid is the 3x4 stage layout. It is built once and never mutated.
type Grid struct {
	cells [GridRows][GridCols]Cell
}

// NewGrid lays the cells out row-major from the stage origin.
func NewGrid() Grid {
	return NewGridAt(StageLeft, StageTop)
}

// NewGridAt lays the cells out row-major from (left, top).
func NewGridAt(left, top float64) Grid {
	var g Grid
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			g.cells[row][col] = Cell{
				Left:   left + float64(CellSize*col),
				Top:    top + float64(CellSize*row),
				Width:  CellSize,
				Height: CellSize,
			}
		}
	}
	return g
}

// Cell returns the geometry of ref. ref must be inside the grid.
func (g Grid) Cell(ref CellRef) Cell {
	return g.cells[ref.Row][ref.Col]
}

// CellCenter returns the canvas point at the middle of ref.
func (g Grid) CellCenter(ref CellRef) (float64, float64) {
	return g.Cell(ref).Center()
}

// HitTest returns every cell whose rectangle contains (x, y). Because edges
// are inclusive a point on a shared border matches both neighbours; a point
// outside the stage matches nothing.
func (g Grid) HitTest(x, y float64) []CellRef {
	var hits []CellRef
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			if g.cells[row][col].Contains(x, y) {
				hits = append(hits, CellRef{Row: row, Col: col})
			}
		}
	}
	return hits
}

// InBounds reports whether ref addresses a real cell.
func InBounds(ref CellRef) bool {
	return ref.Row >= 0 && ref.Row < GridRows && ref.Col >= 0 && ref.Col < GridCols
}
