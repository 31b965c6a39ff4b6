package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/tsawler/docs2docx/model"
)

// table writes t followed by an empty paragraph, which keeps consecutive
// tables from being joined. Merged regions become gridSpan on their first
// row and vMerge restart/continue down their rows.
func (w *writer) table(body *etree.Element, t *model.Table) {
	cols := t.ColCount()
	if t.RowCount() == 0 || cols == 0 {
		return
	}
	colWidth := textWidth / cols

	tbl := add(body, "w:tbl")
	tblPr := add(tbl, "w:tblPr")
	add(tblPr, "w:tblStyle", "w:val", styleTableGrid)
	add(tblPr, "w:tblW", "w:w", strconv.Itoa(colWidth*cols), "w:type", "dxa")
	add(tblPr, "w:tblLayout", "w:type", "fixed")
	add(tblPr, "w:tblLook", "w:val", "04A0", "w:firstRow", "1", "w:lastRow", "0",
		"w:firstColumn", "0", "w:lastColumn", "0", "w:noHBand", "0", "w:noVBand", "1")

	grid := add(tbl, "w:tblGrid")
	for i := 0; i < cols; i++ {
		add(grid, "w:gridCol", "w:w", strconv.Itoa(colWidth))
	}

	headerRows := t.HeaderRows()
	for r := 0; r < t.RowCount(); r++ {
		tr := add(tbl, "w:tr")
		if r < headerRows {
			add(add(tr, "w:trPr"), "w:tblHeader")
		}

		for c := 0; c < cols; {
			cell := t.Cell(r, c)
			switch {
			case cell == nil:
				w.cell(tr, nil, 1, "", colWidth)
				c++
			case !cell.Covered:
				merge := ""
				if cell.RowSpan > 1 {
					merge = "restart"
				}
				span := max(cell.ColSpan, 1)
				w.cell(tr, cell, span, merge, colWidth)
				c += span
			default:
				owner := t.Cell(cell.Origin.Row, cell.Origin.Col)
				if owner == nil || cell.Origin.Col != c {
					// inside a region that was already written on this row
					c++
					continue
				}
				span := max(owner.ColSpan, 1)
				w.cell(tr, &model.Cell{Header: cell.Header}, span, "continue", colWidth)
				c += span
			}
		}
	}

	add(body, "w:p")
}

// cell writes one w:tc. A nil cell or a continuation writes an empty
// paragraph, which every cell needs.
func (w *writer) cell(tr *etree.Element, cell *model.Cell, span int, vMerge string, colWidth int) {
	tc := add(tr, "w:tc")
	tcPr := add(tc, "w:tcPr")
	add(tcPr, "w:tcW", "w:w", strconv.Itoa(colWidth*span), "w:type", "dxa")
	if span > 1 {
		add(tcPr, "w:gridSpan", "w:val", strconv.Itoa(span))
	}
	if vMerge != "" {
		add(tcPr, "w:vMerge", "w:val", vMerge)
	}
	header := cell != nil && cell.Header
	if header {
		add(tcPr, "w:shd", "w:val", "clear", "w:color", "auto", "w:fill", shadeHeader)
	}

	if cell == nil || cell.Paragraph == nil {
		add(tc, "w:p")
		return
	}
	w.paragraph(tc, cell.Paragraph, header)
}
