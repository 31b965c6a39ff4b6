// Package model provides the in-memory output document built from converted
// HTML pages.
//
// A [Document] is an append-only sequence of [Block] values:
//
//   - [Heading] - headings (levels 1-6)
//   - [Paragraph] - paragraphs made of styled [Run] values; list items, code
//     blocks, admonition labels and details summaries are paragraphs with a
//     distinguishing [ParagraphStyle]
//   - [Table] - tables whose cells may be merged into rectangular regions
//   - [Figure] - a single image at block width
//
// # Tables
//
// [Table] is a destination table that grows on demand. Rows are appended with
// EnsureRows, rows are padded with EnsureCols, and Merge joins a rectangle of
// cells into its top-left cell once that cell's content has been written:
//
//	t := model.NewTable(3)
//	t.EnsureRows(2)
//	t.Cell(0, 0).Paragraph.AddText(model.RunText, "merged")
//	err := t.Merge(0, 0, 1, 1)
//
// Cells inside a merged region other than its top-left are Covered and point
// back to the region's origin.
package model
