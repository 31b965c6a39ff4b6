package model

import "strings"

// BlockKind represents the type of a document block
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockHeading
	BlockParagraph
	BlockTable
	BlockFigure
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "Heading"
	case BlockParagraph:
		return "Paragraph"
	case BlockTable:
		return "Table"
	case BlockFigure:
		return "Figure"
	default:
		return "Unknown"
	}
}

// Block is the interface for all top-level document units
type Block interface {
	Kind() BlockKind
}

// TextBlock is an interface for blocks containing text
type TextBlock interface {
	Block
	GetText() string
}

// Heading represents a heading
type Heading struct {
	Text  string
	Level int // 1-6
}

func (h *Heading) Kind() BlockKind  { return BlockHeading }
func (h *Heading) GetText() string { return h.Text }

// ParagraphStyle selects how a paragraph is rendered.
type ParagraphStyle int

const (
	StyleNormal ParagraphStyle = iota
	StyleListBullet
	StyleListNumber
	StyleCode
	StyleAdmonition
	StyleSummary
)

func (s ParagraphStyle) String() string {
	switch s {
	case StyleListBullet:
		return "ListBullet"
	case StyleListNumber:
		return "ListNumber"
	case StyleCode:
		return "Code"
	case StyleAdmonition:
		return "Admonition"
	case StyleSummary:
		return "Summary"
	default:
		return "Normal"
	}
}

// IsList reports whether the style renders as a list item.
func (s ParagraphStyle) IsList() bool {
	return s == StyleListBullet || s == StyleListNumber
}

// Paragraph is a sequence of styled runs.
type Paragraph struct {
	Style ParagraphStyle
	Runs  []Run

	// List placement, used when Style is a list style.
	Level  int // 0-based nesting depth
	ListID int // items of the same list share an ID; numbering restarts per ID
}

// NewParagraph creates an empty paragraph with the given style.
func NewParagraph(style ParagraphStyle) *Paragraph {
	return &Paragraph{Style: style}
}

func (p *Paragraph) Kind() BlockKind { return BlockParagraph }

// GetText returns the paragraph text without styling; images are omitted
// and line breaks become newlines.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		switch r.Kind {
		case RunImage:
		case RunBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// AddRun appends a run.
func (p *Paragraph) AddRun(r Run) {
	p.Runs = append(p.Runs, r)
}

// AddText appends a text run of the given kind.
func (p *Paragraph) AddText(kind RunKind, s string) {
	p.Runs = append(p.Runs, Run{Kind: kind, Text: s})
}

// AddLink appends a hyperlink run.
func (p *Paragraph) AddLink(s, url string) {
	p.Runs = append(p.Runs, Run{Kind: RunLink, Text: s, URL: url})
}

// AddImage appends an inline image displayed at width inches.
func (p *Paragraph) AddImage(img *Image, width float64) {
	p.Runs = append(p.Runs, Run{Kind: RunImage, Image: img, Width: width})
}

// AddBreak appends a line break.
func (p *Paragraph) AddBreak() {
	p.Runs = append(p.Runs, Run{Kind: RunBreak})
}

// LastRun returns a pointer to the final run, or nil.
func (p *Paragraph) LastRun() *Run {
	if len(p.Runs) == 0 {
		return nil
	}
	return &p.Runs[len(p.Runs)-1]
}

// IsEmpty reports whether the paragraph has no visible content.
func (p *Paragraph) IsEmpty() bool {
	for _, r := range p.Runs {
		switch r.Kind {
		case RunImage:
			if r.Image != nil {
				return false
			}
		case RunBreak:
		default:
			if strings.TrimSpace(r.Text) != "" {
				return false
			}
		}
	}
	return true
}

// RunKind represents the styling of a run
type RunKind int

const (
	RunText RunKind = iota
	RunBold
	RunUI // highlighted user-interface label
	RunLink
	RunCode
	RunBreak
	RunImage
)

func (k RunKind) String() string {
	switch k {
	case RunText:
		return "Text"
	case RunBold:
		return "Bold"
	case RunUI:
		return "UI"
	case RunLink:
		return "Link"
	case RunCode:
		return "Code"
	case RunBreak:
		return "Break"
	case RunImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// IsText reports whether runs of this kind carry text that a separator
// space may be appended to. Hyperlinks carry their own styling and are
// never extended.
func (k RunKind) IsText() bool {
	switch k {
	case RunText, RunBold, RunUI, RunCode:
		return true
	}
	return false
}

// Run is a unit of inline content
type Run struct {
	Kind  RunKind
	Text  string
	URL   string  // RunLink target
	Image *Image  // RunImage content
	Width float64 // RunImage display width in inches
}

// Figure is a block holding a single image
type Figure struct {
	Image *Image
	Width float64 // display width in inches
}

func (f *Figure) Kind() BlockKind { return BlockFigure }

// Image represents a decoded image ready for embedding
type Image struct {
	Data   []byte // PNG encoded
	Width  int    // pixels
	Height int    // pixels
	Format ImageFormat
	Source string // reference the image was resolved from
}

// AspectRatio returns height divided by width, or 1 when unknown.
func (i *Image) AspectRatio() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 1
	}
	return float64(i.Height) / float64(i.Width)
}

// ImageFormat represents the format an image was decoded from
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJPEG
	ImageFormatPNG
	ImageFormatGIF
	ImageFormatWebP
	ImageFormatBMP
	ImageFormatTIFF
	ImageFormatSVG
)

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatJPEG:
		return "JPEG"
	case ImageFormatPNG:
		return "PNG"
	case ImageFormatGIF:
		return "GIF"
	case ImageFormatWebP:
		return "WebP"
	case ImageFormatBMP:
		return "BMP"
	case ImageFormatTIFF:
		return "TIFF"
	case ImageFormatSVG:
		return "SVG"
	default:
		return "Unknown"
	}
}
