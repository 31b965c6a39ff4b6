package docx

import (
	"encoding/xml"
	"strconv"

	"github.com/tsawler/docs2docx/model"
)

// Abstract numbering definitions shared by every list.
const (
	abstractBullet  = 0
	abstractDecimal = 1

	bulletNumID = 1 // all bullet lists share one instance
	levels      = 9
)

var bulletGlyphs = []string{"•", "◦", "▪"}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"w:numbering"`
	XmlnsW       string           `xml:"xmlns:w,attr"`
	AbstractNums []abstractNumXML `xml:"w:abstractNum"`
	Nums         []numXML         `xml:"w:num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"w:abstractNumId,attr"`
	MultiLevel    valXML   `xml:"w:multiLevelType"`
	Levels        []lvlXML `xml:"w:lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl    string `xml:"w:ilvl,attr"`
	Start   valXML `xml:"w:start"`
	NumFmt  valXML `xml:"w:numFmt"`
	LvlText valXML `xml:"w:lvlText"`
	LvlJc   valXML `xml:"w:lvlJc"`
	PPr     lvlPPr `xml:"w:pPr"`
}

type lvlPPr struct {
	Ind indXML `xml:"w:ind"`
}

type indXML struct {
	Left    string `xml:"w:left,attr"`
	Hanging string `xml:"w:hanging,attr"`
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string           `xml:"w:numId,attr"`
	AbstractNumID valXML           `xml:"w:abstractNumId"`
	Overrides     []lvlOverrideXML `xml:"w:lvlOverride"`
}

type lvlOverrideXML struct {
	ILvl          string `xml:"w:ilvl,attr"`
	StartOverride valXML `xml:"w:startOverride"`
}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

// numbering assigns numbering instances to lists. Every numbered list gets
// its own instance so that its numbering restarts at 1.
type numbering struct {
	byList map[int]int
	order  []int
}

func newNumbering() *numbering {
	return &numbering{byList: make(map[int]int)}
}

// numID returns the numbering instance for a list paragraph.
func (n *numbering) numID(p *model.Paragraph) int {
	if p.Style != model.StyleListNumber {
		return bulletNumID
	}
	if id, ok := n.byList[p.ListID]; ok {
		return id
	}
	id := bulletNumID + 1 + len(n.order)
	n.byList[p.ListID] = id
	n.order = append(n.order, p.ListID)
	return id
}

func (n *numbering) xml() numberingXML {
	out := numberingXML{
		XmlnsW: nsW,
		AbstractNums: []abstractNumXML{
			abstractNum(abstractBullet, func(lvl int) (string, string) {
				return "bullet", bulletGlyphs[lvl%len(bulletGlyphs)]
			}),
			abstractNum(abstractDecimal, func(lvl int) (string, string) {
				return "decimal", "%" + strconv.Itoa(lvl+1) + "."
			}),
		},
		Nums: []numXML{{
			NumID:         strconv.Itoa(bulletNumID),
			AbstractNumID: valXML{Val: strconv.Itoa(abstractBullet)},
		}},
	}

	for i := range n.order {
		num := numXML{
			NumID:         strconv.Itoa(bulletNumID + 1 + i),
			AbstractNumID: valXML{Val: strconv.Itoa(abstractDecimal)},
		}
		for lvl := 0; lvl < levels; lvl++ {
			num.Overrides = append(num.Overrides, lvlOverrideXML{
				ILvl:          strconv.Itoa(lvl),
				StartOverride: valXML{Val: "1"},
			})
		}
		out.Nums = append(out.Nums, num)
	}
	return out
}

func abstractNum(id int, format func(lvl int) (numFmt, text string)) abstractNumXML {
	a := abstractNumXML{
		AbstractNumID: strconv.Itoa(id),
		MultiLevel:    valXML{Val: "hybridMultilevel"},
	}
	for lvl := 0; lvl < levels; lvl++ {
		numFmt, text := format(lvl)
		a.Levels = append(a.Levels, lvlXML{
			ILvl:    strconv.Itoa(lvl),
			Start:   valXML{Val: "1"},
			NumFmt:  valXML{Val: numFmt},
			LvlText: valXML{Val: text},
			LvlJc:   valXML{Val: "left"},
			PPr: lvlPPr{Ind: indXML{
				Left:    strconv.Itoa(720 * (lvl + 1)),
				Hanging: "360",
			}},
		})
	}
	return a
}
