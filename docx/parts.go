package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/docs2docx/model"
)

// XML namespaces used in DOCX files
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtProp = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsCT      = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Relationship types
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Part names
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

// Application is recorded in the extended properties.
const Application = "docs2docx"

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	XMLName   xml.Name        `xml:"Types"`
	Xmlns     string          `xml:"xmlns,attr"`
	Defaults  []ctDefaultXML  `xml:"Default"`
	Overrides []ctOverrideXML `xml:"Override"`
}

type ctDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func contentTypes() contentTypesXML {
	return contentTypesXML{
		Xmlns: nsCT,
		Defaults: []ctDefaultXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "png", ContentType: "image/png"},
		},
		Overrides: []ctOverrideXML{
			{PartName: "/" + partDocument, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/" + partStyles, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
			{PartName: "/" + partNumbering, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"},
			{PartName: "/" + partCore, ContentType: "application/vnd.openxmlformats-package.core-properties+xml"},
			{PartName: "/" + partApp, ContentType: "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
		},
	}
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"` // External or empty (internal)
}

func rootRelationships() relationshipsXML {
	return relationshipsXML{
		Xmlns: nsRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
			{ID: "rId2", Type: relCoreProps, Target: partCore},
			{ID: "rId3", Type: relExtendedProps, Target: partApp},
		},
	}
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata).
// Element names carry their prefixes so the output matches what Word
// writes.
type corePropertiesXML struct {
	XMLName      xml.Name   `xml:"cp:coreProperties"`
	XmlnsCP      string     `xml:"xmlns:cp,attr"`
	XmlnsDC      string     `xml:"xmlns:dc,attr"`
	XmlnsDCTerms string     `xml:"xmlns:dcterms,attr"`
	XmlnsXSI     string     `xml:"xmlns:xsi,attr"`
	Title        string     `xml:"dc:title,omitempty"`
	Subject      string     `xml:"dc:subject,omitempty"`
	Creator      string     `xml:"dc:creator,omitempty"`
	Keywords     string     `xml:"cp:keywords,omitempty"`
	Created      *w3cdtfXML `xml:"dcterms:created,omitempty"`
	Modified     *w3cdtfXML `xml:"dcterms:modified,omitempty"`
}

type w3cdtfXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func coreProperties(meta model.Metadata) corePropertiesXML {
	core := corePropertiesXML{
		XmlnsCP:      nsCP,
		XmlnsDC:      nsDC,
		XmlnsDCTerms: nsDCTerms,
		XmlnsXSI:     nsXSI,
		Title:        xmlSafe(meta.Title),
		Subject:      xmlSafe(meta.Subject),
		Creator:      xmlSafe(meta.Creator),
		Keywords:     xmlSafe(strings.Join(meta.Keywords, ", ")),
	}
	if !meta.CreationDate.IsZero() {
		stamp := meta.CreationDate.UTC().Format(time.RFC3339)
		core.Created = &w3cdtfXML{Type: "dcterms:W3CDTF", Value: stamp}
		core.Modified = &w3cdtfXML{Type: "dcterms:W3CDTF", Value: stamp}
	}
	return core
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	Words       string   `xml:"Words"`
	Characters  string   `xml:"Characters"`
	Paragraphs  string   `xml:"Paragraphs"`
}

func appProperties(doc *model.Document) appPropertiesXML {
	text := doc.ExtractText()
	return appPropertiesXML{
		Xmlns:       nsExtProp,
		Application: Application,
		Words:       strconv.Itoa(len(strings.Fields(text))),
		Characters:  strconv.Itoa(len([]rune(text))),
		Paragraphs:  strconv.Itoa(doc.Len()),
	}
}

// xmlSafe drops characters that XML 1.0 cannot represent.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20:
			return -1
		case r >= 0xD800 && r <= 0xDFFF:
			return -1
		case r == 0xFFFE || r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
