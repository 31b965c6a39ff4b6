package model

import "time"

// Document is the output document assembled from one or more source pages.
type Document struct {
	Metadata Metadata
	Blocks   []Block
}

// Metadata contains document-level information written to the package
// properties.
type Metadata struct {
	Title        string
	Subject      string
	Creator      string
	Keywords     []string
	CreationDate time.Time
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{
		Blocks: make([]Block, 0),
	}
}

// Append adds a block to the end of the document.
func (d *Document) Append(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Last returns the most recently appended block, or nil.
func (d *Document) Last() Block {
	if len(d.Blocks) == 0 {
		return nil
	}
	return d.Blocks[len(d.Blocks)-1]
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.Blocks)
}

// Headings returns all headings in document order.
func (d *Document) Headings() []*Heading {
	var headings []*Heading
	for _, b := range d.Blocks {
		if h, ok := b.(*Heading); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// Tables returns all tables in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Images returns every image in the document, including images inside
// paragraphs and table cells.
func (d *Document) Images() []*Image {
	var images []*Image
	collect := func(p *Paragraph) {
		for _, r := range p.Runs {
			if r.Kind == RunImage && r.Image != nil {
				images = append(images, r.Image)
			}
		}
	}
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Figure:
			images = append(images, v.Image)
		case *Paragraph:
			collect(v)
		case *Table:
			for _, row := range v.Cells {
				for _, c := range row {
					if c.Paragraph != nil {
						collect(c.Paragraph)
					}
				}
			}
		}
	}
	return images
}

// ExtractText returns the plain text of all blocks, one block per line.
func (d *Document) ExtractText() string {
	var text string
	for _, b := range d.Blocks {
		if te, ok := b.(TextBlock); ok {
			text += te.GetText() + "\n"
		}
	}
	return text
}
