package htmldoc

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/tables"
)

// sourceTable is a table read from markup, before grid placement.
type sourceTable struct {
	rows   []tables.Row
	cells  [][]*html.Node
	header []bool
}

// readTable collects the rows of a table element. Rows of nested tables
// are not included.
func readTable(n *html.Node) *sourceTable {
	t := &sourceTable{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead:
			t.readRows(c, true)
		case atom.Tbody, atom.Tfoot:
			t.readRows(c, false)
		case atom.Tr:
			t.readRow(c, false)
		}
	}
	return t
}

func (t *sourceTable) readRows(section *html.Node, inHead bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			t.readRow(c, inHead)
		}
	}
}

func (t *sourceTable) readRow(tr *html.Node, inHead bool) {
	var (
		row     tables.Row
		nodes   []*html.Node
		allHead = true
	)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		if c.DataAtom != atom.Th {
			allHead = false
		}
		row.Cells = append(row.Cells, tables.Cell{
			RowSpan: getAttr(c, "rowspan"),
			ColSpan: getAttr(c, "colspan"),
		})
		nodes = append(nodes, c)
	}

	t.rows = append(t.rows, row)
	t.cells = append(t.cells, nodes)
	t.header = append(t.header, inHead || (len(nodes) > 0 && allHead))
}

// table places the table on a grid and emits it. A table without rows or
// without cells emits nothing.
func (w *walker) table(n *html.Node) error {
	src := readTable(n)
	if len(src.rows) == 0 {
		return nil
	}

	cols, err := tables.ColumnCount(src.rows)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if cols == 0 {
		return nil
	}
	tbl := model.NewTable(cols)

	_, err = tables.Build(src.rows, tbl, func(row, col int, ref tables.CellRef) error {
		cell := tbl.Cell(row, col)
		w.inlineChildren(cell.Paragraph, destTableCell, src.cells[ref.Row][ref.Index])
		return nil
	})
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}

	markHeaderRows(tbl, src.header)
	w.emit(tbl)
	return nil
}

// markHeaderRows flags every position of a header row, including empty
// padding cells, so that the row repeats as a whole.
func markHeaderRows(tbl *model.Table, header []bool) {
	for r, isHeader := range header {
		if !isHeader || r >= tbl.RowCount() {
			continue
		}
		for c := range tbl.Cells[r] {
			tbl.Cells[r][c].Header = true
		}
	}
}
