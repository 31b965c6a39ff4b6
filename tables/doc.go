// Package tables reconstructs a dense row/column grid from HTML table rows
// whose cells carry rowspan and colspan attributes.
//
// # Building
//
// [Build] walks the source rows in order and places each cell at the first
// free grid position of its row, skipping positions covered by a rowspan
// from above. Content is written through a [WriteFunc] and spans become
// merges on a [Destination]:
//
//	cols, err := tables.ColumnCount(rows)
//	tbl := model.NewTable(cols)
//	grid, err := tables.Build(rows, tbl, func(row, col int, src tables.CellRef) error {
//		// write the source cell src into tbl.Cell(row, col)
//		return nil
//	})
//
// # Occupancy
//
// Every grid position is [Empty], [Data] or [Covered]. A span region has
// exactly one Data position, its top-left, and all other positions Covered.
// Spans that would run into an occupied position are clipped, so regions
// never overlap even on malformed tables.
//
// # Span values
//
// [ParseSpan] reads a rowspan or colspan attribute value. A missing value
// means 1 and values below 1 are raised to 1. A value that is not an integer
// is a hard error wrapping [ErrMalformedSpan].
package tables
