package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Style IDs referenced from document.xml
const (
	styleNormal     = "Normal"
	styleListBullet = "ListBullet"
	styleListNumber = "ListNumber"
	styleCode       = "Code"
	styleCodeChar   = "CodeChar"
	styleAdmonition = "Admonition"
	styleSummary    = "Summary"
	styleHyperlink  = "Hyperlink"
	styleTableGrid  = "TableGrid"
	styleCaption    = "Figure"
)

// Colours
const (
	colorHyperlink  = "0563C1"
	colorUIText     = "D9480F"
	colorAdmonition = "1F4E79"
	shadeCode       = "F2F2F2"
	shadeHeader     = "D9D9D9"
	shadeAdmonition = "EAF1FB"
)

const (
	fontBody      = "Calibri"
	fontEastAsia  = "Malgun Gothic"
	fontCode      = "Consolas"
	sizeBody      = 22 // half-points
	sizeCode      = 19
	headingLevels = 6
)

// headingSizes are the half-point sizes of Heading1..Heading6.
var headingSizes = [headingLevels]int{36, 30, 26, 24, 22, 22}

func headingStyle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > headingLevels {
		level = headingLevels
	}
	return "Heading" + strconv.Itoa(level)
}

// stylesPart builds word/styles.xml.
func stylesPart() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := add(root, "w:docDefaults")
	rPr := add(add(defaults, "w:rPrDefault"), "w:rPr")
	add(rPr, "w:rFonts", "w:ascii", fontBody, "w:hAnsi", fontBody, "w:eastAsia", fontEastAsia, "w:cs", fontBody)
	add(rPr, "w:sz", "w:val", strconv.Itoa(sizeBody))
	add(rPr, "w:szCs", "w:val", strconv.Itoa(sizeBody))
	add(rPr, "w:lang", "w:val", "en-US", "w:eastAsia", "ko-KR")
	pPr := add(add(defaults, "w:pPrDefault"), "w:pPr")
	add(pPr, "w:spacing", "w:after", "120", "w:line", "264", "w:lineRule", "auto")

	normal := style(root, "paragraph", styleNormal, "Normal", "")
	normal.CreateAttr("w:default", "1")
	add(normal, "w:qFormat")

	for level := 1; level <= headingLevels; level++ {
		s := style(root, "paragraph", headingStyle(level), "heading "+strconv.Itoa(level), styleNormal)
		add(s, "w:next", "w:val", styleNormal)
		add(s, "w:qFormat")
		sp := add(s, "w:pPr")
		add(sp, "w:keepNext")
		add(sp, "w:spacing", "w:before", "240", "w:after", "120")
		add(sp, "w:outlineLvl", "w:val", strconv.Itoa(level-1))
		sr := add(s, "w:rPr")
		add(sr, "w:b")
		add(sr, "w:sz", "w:val", strconv.Itoa(headingSizes[level-1]))
		add(sr, "w:szCs", "w:val", strconv.Itoa(headingSizes[level-1]))
	}

	for _, id := range []string{styleListBullet, styleListNumber} {
		name := "List Bullet"
		if id == styleListNumber {
			name = "List Number"
		}
		s := style(root, "paragraph", id, name, styleNormal)
		add(add(s, "w:pPr"), "w:contextualSpacing")
	}

	code := style(root, "paragraph", styleCode, "Code", styleNormal)
	cp := add(code, "w:pPr")
	add(cp, "w:shd", "w:val", "clear", "w:color", "auto", "w:fill", shadeCode)
	add(cp, "w:spacing", "w:before", "60", "w:after", "120", "w:line", "240", "w:lineRule", "auto")
	codeRun(add(code, "w:rPr"))

	codeChar := style(root, "character", styleCodeChar, "Code Char", "")
	cr := add(codeChar, "w:rPr")
	codeRun(cr)
	add(cr, "w:shd", "w:val", "clear", "w:color", "auto", "w:fill", shadeCode)

	adm := style(root, "paragraph", styleAdmonition, "Admonition", styleNormal)
	ap := add(adm, "w:pPr")
	add(ap, "w:keepNext")
	add(ap, "w:shd", "w:val", "clear", "w:color", "auto", "w:fill", shadeAdmonition)
	add(ap, "w:spacing", "w:before", "120", "w:after", "60")
	add(add(adm, "w:rPr"), "w:color", "w:val", colorAdmonition)

	sum := style(root, "paragraph", styleSummary, "Summary", styleNormal)
	add(add(sum, "w:pPr"), "w:keepNext")
	sr := add(sum, "w:rPr")
	add(sr, "w:b")
	add(sr, "w:i")

	fig := style(root, "paragraph", styleCaption, "Figure", styleNormal)
	add(add(fig, "w:pPr"), "w:jc", "w:val", "center")

	link := style(root, "character", styleHyperlink, "Hyperlink", "")
	lr := add(link, "w:rPr")
	add(lr, "w:color", "w:val", colorHyperlink)
	add(lr, "w:u", "w:val", "single")

	grid := style(root, "table", styleTableGrid, "Table Grid", "")
	tp := add(grid, "w:tblPr")
	borders := add(tp, "w:tblBorders")
	for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
		add(borders, side, "w:val", "single", "w:sz", "4", "w:space", "0", "w:color", "auto")
	}
	margins := add(tp, "w:tblCellMar")
	add(margins, "w:left", "w:w", "108", "w:type", "dxa")
	add(margins, "w:right", "w:w", "108", "w:type", "dxa")

	return doc
}

func style(root *etree.Element, typ, id, name, basedOn string) *etree.Element {
	s := add(root, "w:style", "w:type", typ, "w:styleId", id)
	add(s, "w:name", "w:val", name)
	if basedOn != "" {
		add(s, "w:basedOn", "w:val", basedOn)
	}
	return s
}

func codeRun(rPr *etree.Element) {
	add(rPr, "w:rFonts", "w:ascii", fontCode, "w:hAnsi", fontCode, "w:cs", fontCode)
	add(rPr, "w:sz", "w:val", strconv.Itoa(sizeCode))
	add(rPr, "w:szCs", "w:val", strconv.Itoa(sizeCode))
}
