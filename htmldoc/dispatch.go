package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/text"
)

// classify maps a node at block level to exactly one block kind.
func (c *Converter) classify(n *html.Node) blockKind {
	switch n.Type {
	case html.TextNode:
		return blockText
	case html.DocumentNode:
		return blockContainer
	case html.ElementNode:
	default:
		return blockSkip
	}
	if c.skipped(n) {
		return blockSkip
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return blockHeading
	case atom.Hr:
		return blockSkip
	case atom.P:
		return blockParagraph
	case atom.Ul, atom.Ol:
		return blockList
	case atom.Table:
		return blockTable
	case atom.Details:
		return blockDetails
	case atom.Img:
		return blockFigure
	case atom.Pre:
		return blockCode
	case atom.Div:
		if c.opts.AdmonitionClass != "" && hasClass(n, c.opts.AdmonitionClass) {
			return blockAdmonition
		}
		if c.opts.CodeBlockClass != "" && hasClass(n, c.opts.CodeBlockClass) {
			return blockCode
		}
	case atom.A, atom.Strong, atom.B, atom.Em, atom.I, atom.Span, atom.Code,
		atom.Kbd, atom.Br, atom.Sub, atom.Sup, atom.Mark, atom.Small, atom.U,
		atom.S, atom.Abbr, atom.Cite, atom.Q, atom.Time, atom.Label:
		return blockInline
	}
	return blockContainer
}

// block dispatches one node.
func (w *walker) block(n *html.Node) error {
	switch w.c.classify(n) {
	case blockSkip:
		return nil
	case blockHeading:
		w.heading(n)
	case blockParagraph:
		w.paragraph(n)
	case blockList:
		return w.list(n, 0)
	case blockTable:
		return w.table(n)
	case blockAdmonition:
		return w.admonition(n)
	case blockDetails:
		return w.details(n)
	case blockFigure:
		w.figure(n)
	case blockCode:
		w.code(n)
	case blockInline:
		w.stray(n)
	case blockText:
		w.bareText(n)
	case blockContainer:
		return w.children(n)
	}
	return nil
}

func (w *walker) heading(n *html.Node) {
	s := text.Normalize(w.c.textContent(n))
	if s == "" {
		return
	}
	w.emit(&model.Heading{Text: s, Level: headingLevel(n.DataAtom)})
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	default:
		return 6
	}
}

// paragraph emits a <p>; empty results are dropped.
func (w *walker) paragraph(n *html.Node) {
	p := model.NewParagraph(model.StyleNormal)
	w.inlineChildren(p, destParagraph, n)
	if p.IsEmpty() {
		w.open = nil
		return
	}
	w.emit(p)
	w.open = p
}

// stray assembles an inline element met at block level into the open
// paragraph, starting one when none is open.
func (w *walker) stray(n *html.Node) {
	w.withOpen(func(p *model.Paragraph) {
		w.inline(p, destParagraph, n)
	})
}

// bareText appends a text node to the open paragraph.
func (w *walker) bareText(n *html.Node) {
	s := text.Normalize(n.Data)
	if s == "" {
		return
	}
	w.withOpen(func(p *model.Paragraph) {
		appendText(p, model.RunText, s)
	})
}

func (w *walker) withOpen(fill func(p *model.Paragraph)) {
	if w.open != nil {
		fill(w.open)
		return
	}
	p := model.NewParagraph(model.StyleNormal)
	fill(p)
	if !p.IsEmpty() {
		w.emit(p)
		w.open = p
	}
}

// list emits one paragraph per direct <li>. Block content inside an item
// follows the item paragraph; nested lists go one level deeper.
func (w *walker) list(n *html.Node, level int) error {
	style := model.StyleListBullet
	if n.DataAtom == atom.Ol {
		style = model.StyleListNumber
	}
	id := w.nextListID()
	w.open = nil

	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode {
			continue
		}
		if li.DataAtom != atom.Li {
			if err := w.block(li); err != nil {
				return err
			}
			continue
		}

		p := model.NewParagraph(style)
		p.Level = min(level, maxListLevel)
		p.ListID = id

		var nested []*html.Node
		for ch := li.FirstChild; ch != nil; ch = ch.NextSibling {
			if w.c.itemBlock(ch) {
				nested = append(nested, ch)
				continue
			}
			w.inline(p, destListItem, ch)
		}
		if !p.IsEmpty() {
			w.emit(p)
		}

		for _, ch := range nested {
			var err error
			if w.c.classify(ch) == blockList {
				err = w.list(ch, level+1)
			} else {
				err = w.block(ch)
			}
			if err != nil {
				return err
			}
		}
		w.open = nil
	}
	return nil
}

// itemBlock reports whether a child of <li> is emitted as its own block.
func (c *Converter) itemBlock(n *html.Node) bool {
	switch c.classify(n) {
	case blockList, blockTable, blockCode, blockAdmonition, blockDetails, blockHeading:
		return true
	}
	return false
}

// admonition emits the callout label followed by the callout content.
func (w *walker) admonition(n *html.Node) error {
	heading := findByClass(n, w.c.opts.AdmonitionHeadingClass)
	if heading != nil {
		if label := text.Normalize(w.c.textContent(heading)); label != "" {
			p := model.NewParagraph(model.StyleAdmonition)
			p.AddText(model.RunBold, "["+label+"]")
			w.emit(p)
		}
	}

	content := findByClass(n, w.c.opts.AdmonitionContentClass)
	if content == nil {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch == heading || contains(ch, heading) {
				continue
			}
			if err := w.block(ch); err != nil {
				return err
			}
		}
		w.open = nil
		return nil
	}

	w.open = nil
	if err := w.children(content); err != nil {
		return err
	}
	w.open = nil
	return nil
}

// contains reports whether n is an ancestor of target.
func contains(n, target *html.Node) bool {
	if target == nil {
		return false
	}
	for p := target.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// details emits the summary as a paragraph and then the disclosed content.
func (w *walker) details(n *html.Node) error {
	var summary *html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.DataAtom == atom.Summary {
			summary = ch
			break
		}
	}

	if summary != nil {
		p := model.NewParagraph(model.StyleSummary)
		w.inlineChildren(p, destParagraph, summary)
		if !p.IsEmpty() {
			w.emit(p)
		}
	}
	w.open = nil

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch == summary {
			continue
		}
		if err := w.block(ch); err != nil {
			return err
		}
	}
	w.open = nil
	return nil
}

// figure emits a standalone image at block width.
func (w *walker) figure(n *html.Node) {
	img := w.resolveImage(imageSource(n))
	if img == nil {
		return
	}
	w.emit(&model.Figure{Image: img, Width: w.c.opts.BlockImageWidth})
}

// code emits a code block as one paragraph, keeping whitespace and line
// breaks.
func (w *walker) code(n *html.Node) {
	lines := strings.Split(text.StripControlKeepLines(w.c.rawText(n)), "\n")
	// leading and trailing blank lines only; the code lines stay verbatim
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return
	}

	p := model.NewParagraph(model.StyleCode)
	for i, line := range lines {
		if i > 0 {
			p.AddBreak()
		}
		if line != "" {
			p.AddText(model.RunCode, line)
		}
	}
	w.emit(p)
}
