package htmldoc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/resolver"
	"github.com/tsawler/docs2docx/text"
)

// classifyInline maps a node inside text-bearing content to its kind.
func (c *Converter) classifyInline(n *html.Node) inlineKind {
	switch n.Type {
	case html.TextNode:
		return inlineText
	case html.ElementNode:
	default:
		return inlineSkip
	}
	if c.skipped(n) {
		return inlineSkip
	}

	switch n.DataAtom {
	case atom.Strong, atom.B, atom.Em, atom.I:
		return inlineBold
	case atom.Span:
		if c.opts.UITextClass != "" && hasClass(n, c.opts.UITextClass) {
			return inlineUI
		}
	case atom.Code, atom.Kbd:
		return inlineCode
	case atom.A:
		return inlineLink
	case atom.Img:
		return inlineImage
	case atom.Br:
		return inlineBreak
	}
	return inlineContainer
}

// inlineChildren assembles the children of n into p.
func (w *walker) inlineChildren(p *model.Paragraph, dest destKind, n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		w.inline(p, dest, ch)
	}
}

// inline assembles a single node into p.
func (w *walker) inline(p *model.Paragraph, dest destKind, n *html.Node) {
	switch w.c.classifyInline(n) {
	case inlineSkip:
	case inlineText:
		appendText(p, model.RunText, text.Normalize(n.Data))
	case inlineBold:
		appendText(p, model.RunBold, text.Normalize(w.c.textContent(n)))
	case inlineUI:
		appendText(p, model.RunUI, text.Normalize(w.c.textContent(n)))
	case inlineCode:
		appendText(p, model.RunCode, text.Normalize(w.c.textContent(n)))
	case inlineLink:
		w.link(p, dest, n)
	case inlineImage:
		w.inlineImage(p, dest, n)
	case inlineBreak:
		p.AddBreak()
	case inlineContainer:
		w.inlineChildren(p, dest, n)
	}
}

func (w *walker) link(p *model.Paragraph, dest destKind, n *html.Node) {
	s := text.Normalize(w.c.textContent(n))
	if s == "" {
		// e.g. an image wrapped in a link
		w.inlineChildren(p, dest, n)
		return
	}

	href := strings.TrimSpace(getAttr(n, "href"))
	if href == "" {
		appendText(p, model.RunText, s)
		return
	}
	target, err := resolver.ResolveURL(w.c.origin, href)
	if err != nil {
		w.c.log.Debug("Unresolvable link kept as text", zap.String("href", href), zap.Error(err))
		appendText(p, model.RunText, s)
		return
	}

	if needsSeparator(p, s) {
		if last := p.LastRun(); last.Kind.IsText() {
			last.Text += " "
		} else {
			p.AddText(model.RunText, " ")
		}
	}
	p.AddLink(s, target)
}

func (w *walker) inlineImage(p *model.Paragraph, dest destKind, n *html.Node) {
	var width float64
	switch dest {
	case destTableCell:
		width = w.c.opts.CellImageWidth
	case destParagraph, destListItem:
		width = w.c.opts.BlockImageWidth
	default:
		w.c.log.Warn("Image skipped, unknown destination", zap.Int("destination", int(dest)))
		return
	}

	if img := w.resolveImage(imageSource(n)); img != nil {
		p.AddImage(img, width)
	}
}

// imageSource returns the image reference of an img element, preferring
// src over lazy-loading attributes.
func imageSource(n *html.Node) string {
	for _, key := range []string{"src", "data-src"} {
		if v := strings.TrimSpace(getAttr(n, key)); v != "" {
			return v
		}
	}
	return ""
}

// appendText adds s as a run of the given kind, inserting a single
// separating space when the paragraph ends in non-space text. The space
// extends the previous run when that run is plain text, otherwise it
// leads the new run.
func appendText(p *model.Paragraph, kind model.RunKind, s string) {
	if s == "" {
		return
	}
	if needsSeparator(p, s) {
		if last := p.LastRun(); last.Kind.IsText() {
			last.Text += " "
		} else {
			s = " " + s
		}
	}
	p.AddText(kind, s)
}

// needsSeparator reports whether a space belongs between the paragraph's
// current text and next.
func needsSeparator(p *model.Paragraph, next string) bool {
	last := p.LastRun()
	if last == nil {
		return false
	}
	if last.Kind == model.RunBreak {
		return false
	}

	prev := p.GetText()
	if strings.TrimSpace(prev) == "" {
		return false
	}
	end, _ := utf8.DecodeLastRuneInString(prev)
	if unicode.IsSpace(end) || opensGroup(end) {
		return false
	}
	start, _ := utf8.DecodeRuneInString(next)
	if unicode.IsSpace(start) || closesGroup(start) {
		return false
	}
	return true
}

func opensGroup(r rune) bool {
	switch r {
	case '(', '[', '{', '“', '‘', '「', '『', '（':
		return true
	}
	return false
}

func closesGroup(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', ')', ']', '}', '”', '’', '%',
		'」', '』', '）', '、', '。', '，', '：', '；', '！', '？':
		return true
	}
	return false
}
