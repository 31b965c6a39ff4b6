package tables

// CellState is the occupancy of one grid position.
type CellState int

const (
	Empty CellState = iota
	Data
	Covered
)

func (s CellState) String() string {
	switch s {
	case Data:
		return "Data"
	case Covered:
		return "Covered"
	default:
		return "Empty"
	}
}

// Region is a merged rectangle, inclusive on all sides.
type Region struct {
	Top, Left, Bottom, Right int
}

// Rows returns the number of rows the region spans
func (r Region) Rows() int { return r.Bottom - r.Top + 1 }

// Cols returns the number of columns the region spans
func (r Region) Cols() int { return r.Right - r.Left + 1 }

// Grid is the occupancy grid produced by Build.
type Grid struct {
	cells   [][]CellState
	cols    int
	regions []Region
}

// NewGrid creates an empty grid that is cols wide.
func NewGrid(cols int) *Grid {
	return &Grid{cols: cols}
}

// Rows returns the number of grid rows
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the grid width, the widest row seen
func (g *Grid) Cols() int { return g.cols }

// Regions returns the merged regions in placement order.
func (g *Grid) Regions() []Region { return g.regions }

// State returns the occupancy at (row, col). Positions outside the grid
// are Empty.
func (g *Grid) State(row, col int) CellState {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return Empty
	}
	return g.cells[row][col]
}

// Count returns the number of positions in the given state.
func (g *Grid) Count(state CellState) int {
	n := 0
	for r := range g.cells {
		for c := 0; c < g.cols; c++ {
			if g.State(r, c) == state {
				n++
			}
		}
	}
	return n
}

func (g *Grid) ensure(rows, cols int) {
	for len(g.cells) < rows {
		g.cells = append(g.cells, nil)
	}
	if cols > g.cols {
		g.cols = cols
	}
	for r := 0; r < rows; r++ {
		for len(g.cells[r]) < cols {
			g.cells[r] = append(g.cells[r], Empty)
		}
	}
}

// place marks the region anchored at (row, col) as occupied.
func (g *Grid) place(row, col, rowSpan, colSpan int) {
	g.ensure(row+rowSpan, col+colSpan)
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			g.cells[r][c] = Covered
		}
	}
	g.cells[row][col] = Data
	if rowSpan > 1 || colSpan > 1 {
		g.regions = append(g.regions, Region{
			Top:    row,
			Left:   col,
			Bottom: row + rowSpan - 1,
			Right:  col + colSpan - 1,
		})
	}
}

// clip shrinks a span anchored at (row, col) so that it only covers Empty
// positions. Columns are clipped first, then rows.
func (g *Grid) clip(row, col, rowSpan, colSpan int) (int, int) {
	cs := 1
	for cs < colSpan && g.State(row, col+cs) == Empty {
		cs++
	}
	rs := 1
	for rs < rowSpan && g.rowFree(row+rs, col, cs) {
		rs++
	}
	return rs, cs
}

func (g *Grid) rowFree(row, col, span int) bool {
	for c := col; c < col+span; c++ {
		if g.State(row, c) != Empty {
			return false
		}
	}
	return true
}
