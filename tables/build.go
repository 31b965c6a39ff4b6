package tables

import "fmt"

// Cell is a source table cell as read from markup.
type Cell struct {
	RowSpan string // raw attribute value, empty when absent
	ColSpan string
}

// Row is a source table row.
type Row struct {
	Cells []Cell
}

// CellRef identifies a source cell by row and position within the row.
type CellRef struct {
	Row   int
	Index int
}

// Destination is a table that grows on demand and supports rectangular
// merges. *model.Table implements it.
type Destination interface {
	EnsureRows(n int)
	EnsureCols(row, n int)
	Merge(top, left, bottom, right int) error
	// Pad fills every row up to the table width.
	Pad()
}

// WriteFunc writes the content of source cell src at grid position
// (row, col) of the destination.
type WriteFunc func(row, col int, src CellRef) error

// ColumnCount returns the maximum over rows of the summed colspans.
func ColumnCount(rows []Row) (int, error) {
	widest := 0
	for i, row := range rows {
		n := 0
		for j, cell := range row.Cells {
			cs, err := ParseSpan(cell.ColSpan)
			if err != nil {
				return 0, fmt.Errorf("row %d cell %d colspan: %w", i, j, err)
			}
			n += cs
		}
		if n > widest {
			widest = n
		}
	}
	return widest, nil
}

// Build places every source cell on the grid, writing content through write
// and merging spanned regions on dst. The destination should already have
// ColumnCount(rows) columns. Rows without cells still produce a grid row.
func Build(rows []Row, dst Destination, write WriteFunc) (*Grid, error) {
	cols, err := ColumnCount(rows)
	if err != nil {
		return nil, err
	}

	g := NewGrid(cols)
	for r, row := range rows {
		g.ensure(r+1, 0)
		dst.EnsureRows(r + 1)

		col := 0
		for i, cell := range row.Cells {
			for g.State(r, col) != Empty {
				col++
			}

			rowSpan, err := ParseSpan(cell.RowSpan)
			if err != nil {
				return g, fmt.Errorf("row %d cell %d rowspan: %w", r, i, err)
			}
			colSpan, err := ParseSpan(cell.ColSpan)
			if err != nil {
				return g, fmt.Errorf("row %d cell %d colspan: %w", r, i, err)
			}
			rowSpan, colSpan = g.clip(r, col, rowSpan, colSpan)

			dst.EnsureCols(r, col+1)
			if err := write(r, col, CellRef{Row: r, Index: i}); err != nil {
				return g, err
			}

			if rowSpan > 1 || colSpan > 1 {
				bottom := r + rowSpan - 1
				right := col + colSpan - 1
				dst.EnsureRows(bottom + 1)
				for rr := r; rr <= bottom; rr++ {
					dst.EnsureCols(rr, right+1)
				}
				if err := dst.Merge(r, col, bottom, right); err != nil {
					return g, fmt.Errorf("merge at row %d col %d: %w", r, col, err)
				}
			}

			g.place(r, col, rowSpan, colSpan)
			col += colSpan
		}
	}

	g.ensure(g.Rows(), g.Cols())
	if g.Rows() > 0 {
		dst.EnsureRows(g.Rows())
		dst.EnsureCols(0, g.Cols())
		dst.Pad()
	}
	return g, nil
}
