package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/text"
)

// Page geometry in twips (A4, one inch margins).
const (
	pageWidth  = 11906
	pageHeight = 16838
	pageMargin = 1440
	textWidth  = pageWidth - 2*pageMargin
	textHeight = pageHeight - 2*pageMargin
)

// writer accumulates the parts of one package.
type writer struct {
	rels      []relationshipXML
	links     map[string]string // URL to relationship ID
	media     []mediaPart
	numbering *numbering
	drawings  int
}

func newWriter() *writer {
	return &writer{
		rels: []relationshipXML{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
		},
		links:     make(map[string]string),
		numbering: newNumbering(),
	}
}

func (w *writer) addRel(typ, target, mode string) string {
	id := "rId" + strconv.Itoa(len(w.rels)+1)
	w.rels = append(w.rels, relationshipXML{ID: id, Type: typ, Target: target, TargetMode: mode})
	return id
}

func (w *writer) linkRel(url string) string {
	if id, ok := w.links[url]; ok {
		return id
	}
	id := w.addRel(relHyperlink, url, "External")
	w.links[url] = id
	return id
}

func (w *writer) relationships() relationshipsXML {
	return relationshipsXML{Xmlns: nsRels, Relationships: w.rels}
}

func newPart() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// add creates a child element with alternating attribute key/value pairs.
func add(parent *etree.Element, tag string, attrs ...string) *etree.Element {
	el := parent.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.CreateAttr(attrs[i], attrs[i+1])
	}
	return el
}

// documentPart builds word/document.xml.
func (w *writer) documentPart(doc *model.Document) (*etree.Document, error) {
	part := newPart()
	root := part.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)
	body := add(root, "w:body")

	for i, b := range doc.Blocks {
		switch v := b.(type) {
		case *model.Heading:
			w.heading(body, v)
		case *model.Paragraph:
			w.paragraph(body, v, false)
		case *model.Table:
			w.table(body, v)
		case *model.Figure:
			w.figure(body, v)
		default:
			return nil, fmt.Errorf("block %d: unsupported kind %v", i, b.Kind())
		}
	}

	sect := add(body, "w:sectPr")
	add(sect, "w:pgSz", "w:w", strconv.Itoa(pageWidth), "w:h", strconv.Itoa(pageHeight))
	m := strconv.Itoa(pageMargin)
	add(sect, "w:pgMar", "w:top", m, "w:right", m, "w:bottom", m, "w:left", m,
		"w:header", "708", "w:footer", "708", "w:gutter", "0")
	return part, nil
}

func (w *writer) heading(body *etree.Element, h *model.Heading) {
	p := add(body, "w:p")
	pPr := add(p, "w:pPr")
	add(pPr, "w:pStyle", "w:val", headingStyle(h.Level))
	rtl := text.DetectDirection(h.Text) == text.RTL
	if rtl {
		add(pPr, "w:bidi")
	}
	w.textRun(p, model.Run{Kind: model.RunText, Text: h.Text}, false, rtl)
}

// paragraph writes p into parent. Runs of header cells are forced bold.
func (w *writer) paragraph(parent *etree.Element, p *model.Paragraph, header bool) {
	el := add(parent, "w:p")
	pPr := add(el, "w:pPr")

	switch p.Style {
	case model.StyleListBullet, model.StyleListNumber:
		id := styleListBullet
		if p.Style == model.StyleListNumber {
			id = styleListNumber
		}
		add(pPr, "w:pStyle", "w:val", id)
		numPr := add(pPr, "w:numPr")
		add(numPr, "w:ilvl", "w:val", strconv.Itoa(min(p.Level, levels-1)))
		add(numPr, "w:numId", "w:val", strconv.Itoa(w.numbering.numID(p)))
	case model.StyleCode:
		add(pPr, "w:pStyle", "w:val", styleCode)
	case model.StyleAdmonition:
		add(pPr, "w:pStyle", "w:val", styleAdmonition)
	case model.StyleSummary:
		add(pPr, "w:pStyle", "w:val", styleSummary)
	}

	rtl := p.Style != model.StyleCode && text.DetectDirection(p.GetText()) == text.RTL
	if rtl {
		add(pPr, "w:bidi")
	}
	if len(pPr.ChildElements()) == 0 {
		el.RemoveChild(pPr)
	}

	for _, r := range p.Runs {
		switch r.Kind {
		case model.RunLink:
			link := add(el, "w:hyperlink", "r:id", w.linkRel(r.URL), "w:history", "1")
			w.textRun(link, r, header, rtl)
		case model.RunImage:
			if r.Image != nil {
				w.drawing(add(el, "w:r"), r.Image, r.Width)
			}
		case model.RunBreak:
			add(add(el, "w:r"), "w:br")
		default:
			w.textRun(el, r, header, rtl)
		}
	}
}

// textRun writes a run with the run properties its kind implies, in
// schema order.
func (w *writer) textRun(parent *etree.Element, r model.Run, bold, rtl bool) {
	var (
		style, color string
		underline    bool
	)
	switch r.Kind {
	case model.RunBold:
		bold = true
	case model.RunUI:
		color = colorUIText
	case model.RunCode:
		style = styleCodeChar
	case model.RunLink:
		style = styleHyperlink
		color = colorHyperlink
		underline = true
	}

	run := add(parent, "w:r")
	if style != "" || bold || color != "" || underline || rtl {
		rPr := add(run, "w:rPr")
		if style != "" {
			add(rPr, "w:rStyle", "w:val", style)
		}
		if bold {
			add(rPr, "w:b")
			add(rPr, "w:bCs")
		}
		if color != "" {
			add(rPr, "w:color", "w:val", color)
		}
		if underline {
			add(rPr, "w:u", "w:val", "single")
		}
		if rtl {
			add(rPr, "w:rtl")
		}
	}

	for i, s := range strings.Split(xmlSafe(r.Text), "\t") {
		if i > 0 {
			add(run, "w:tab")
		}
		if s == "" {
			continue
		}
		t := add(run, "w:t")
		if s != strings.TrimSpace(s) {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
	}
}

func (w *writer) figure(body *etree.Element, f *model.Figure) {
	if f.Image == nil {
		return
	}
	p := add(body, "w:p")
	add(add(p, "w:pPr"), "w:pStyle", "w:val", styleCaption)
	w.drawing(add(p, "w:r"), f.Image, f.Width)
}
