package model

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Table.Merge.
var (
	ErrMergeOutOfRange = errors.New("merge region outside table")
	ErrMergeOverlap    = errors.New("merge region overlaps an existing merge")
)

// CellPos is a (row, column) position in a table, both 0-indexed.
type CellPos struct {
	Row int
	Col int
}

// Cell is one grid position of a table.
type Cell struct {
	Paragraph *Paragraph
	RowSpan   int // rows covered by this cell, 1 unless it owns a merge
	ColSpan   int // columns covered by this cell, 1 unless it owns a merge
	Header    bool

	// Covered is set on every position of a merged region except its
	// top-left; Origin then holds the top-left position.
	Covered bool
	Origin  CellPos
}

func newCell() Cell {
	return Cell{
		Paragraph: NewParagraph(StyleNormal),
		RowSpan:   1,
		ColSpan:   1,
	}
}

// IsMergeOwner reports whether the cell is the top-left of a merged region.
func (c *Cell) IsMergeOwner() bool {
	return !c.Covered && (c.RowSpan > 1 || c.ColSpan > 1)
}

// Table is a destination table that grows monotonically.
type Table struct {
	Cells [][]Cell
	cols  int
}

// NewTable creates a table with cols columns and no rows.
func NewTable(cols int) *Table {
	if cols < 0 {
		cols = 0
	}
	return &Table{
		Cells: make([][]Cell, 0),
		cols:  cols,
	}
}

func (t *Table) Kind() BlockKind { return BlockTable }

// GetText returns the cell text, tab separated, one row per line.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Cells {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("\t")
			}
			if !cell.Covered {
				sb.WriteString(cell.Paragraph.GetText())
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the table width, the widest row seen so far
func (t *Table) ColCount() int {
	return t.cols
}

// EnsureRows appends empty rows until the table has at least n rows.
func (t *Table) EnsureRows(n int) {
	for len(t.Cells) < n {
		t.Cells = append(t.Cells, make([]Cell, 0, t.cols))
	}
}

// EnsureCols pads row with empty cells until it has at least n cells,
// widening the table when n exceeds its current width. Rows that do not
// exist yet are created first.
func (t *Table) EnsureCols(row, n int) {
	if row < 0 {
		return
	}
	t.EnsureRows(row + 1)
	if n > t.cols {
		t.cols = n
	}
	for len(t.Cells[row]) < n {
		t.Cells[row] = append(t.Cells[row], newCell())
	}
}

// Pad fills every row up to the table width.
func (t *Table) Pad() {
	for i := range t.Cells {
		t.EnsureCols(i, t.cols)
	}
}

// Cell returns the cell at the given row and column (0-indexed), or nil when
// the position has not been created.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= len(t.Cells) {
		return nil
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return nil
	}
	return &t.Cells[row][col]
}

// Merge joins the rectangle from (top, left) to (bottom, right), inclusive,
// into its top-left cell. Every position of the rectangle must already exist.
func (t *Table) Merge(top, left, bottom, right int) error {
	if top > bottom || left > right || top < 0 || left < 0 {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrMergeOutOfRange, top, left, bottom, right)
	}
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			cell := t.Cell(r, c)
			if cell == nil {
				return fmt.Errorf("%w: (%d,%d)", ErrMergeOutOfRange, r, c)
			}
			if cell.Covered || cell.IsMergeOwner() {
				return fmt.Errorf("%w: (%d,%d)", ErrMergeOverlap, r, c)
			}
		}
	}

	origin := CellPos{Row: top, Col: left}
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			if r == top && c == left {
				continue
			}
			cell := &t.Cells[r][c]
			cell.Covered = true
			cell.Origin = origin
		}
	}
	owner := &t.Cells[top][left]
	owner.RowSpan = bottom - top + 1
	owner.ColSpan = right - left + 1
	return nil
}

// MergeCount returns the number of merged regions.
func (t *Table) MergeCount() int {
	n := 0
	for i := range t.Cells {
		for j := range t.Cells[i] {
			if t.Cells[i][j].IsMergeOwner() {
				n++
			}
		}
	}
	return n
}

// IndependentCells returns the number of cells that are not covered by a
// merge.
func (t *Table) IndependentCells() int {
	n := 0
	for _, row := range t.Cells {
		for _, c := range row {
			if !c.Covered {
				n++
			}
		}
	}
	return n
}

// HeaderRows returns the number of leading rows whose cells are all
// header cells.
func (t *Table) HeaderRows() int {
	n := 0
	for _, row := range t.Cells {
		if len(row) == 0 {
			break
		}
		for _, c := range row {
			if !c.Header && !c.Covered {
				return n
			}
		}
		n++
	}
	return n
}
