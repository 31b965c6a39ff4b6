package docx

import (
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/tsawler/docs2docx/model"
)

// emuPerInch converts inches to English Metric Units.
const emuPerInch = 914400

// Images are kept inside the text area, in inches.
const (
	maxImageWidth  = float64(textWidth) / 1440
	maxImageHeight = float64(textHeight) / 1440
)

// mediaPart is one embedded image file.
type mediaPart struct {
	name string // word/media/imageN.png
	data []byte
}

// embed stores the image data and returns its relationship ID.
func (w *writer) embed(img *model.Image) string {
	n := len(w.media) + 1
	file := "image" + strconv.Itoa(n) + ".png"
	w.media = append(w.media, mediaPart{name: "word/media/" + file, data: img.Data})
	return w.addRel(relImage, "media/"+file, "")
}

// extent returns the drawing size in EMU for a display width in inches and
// a height/width ratio. The width is clamped to the text column, then both
// sides shrink together until the height fits the text area.
func extent(width, aspect float64) (cx, cy int64) {
	if width <= 0 || width > maxImageWidth {
		width = maxImageWidth
	}
	height := width * aspect
	if height > maxImageHeight {
		height = maxImageHeight
		width = height / aspect
	}
	return int64(math.Round(width * emuPerInch)), int64(math.Round(height * emuPerInch))
}

// drawing writes an inline picture of the given display width into run.
func (w *writer) drawing(run *etree.Element, img *model.Image, width float64) {
	cx, cy := extent(width, img.AspectRatio())
	ext := []string{"cx", strconv.FormatInt(cx, 10), "cy", strconv.FormatInt(cy, 10)}

	relID := w.embed(img)
	w.drawings++
	id := strconv.Itoa(w.drawings)
	name := "Picture " + id

	inline := add(add(run, "w:drawing"), "wp:inline",
		"distT", "0", "distB", "0", "distL", "0", "distR", "0")
	add(inline, "wp:extent", ext...)
	add(inline, "wp:effectExtent", "l", "0", "t", "0", "r", "0", "b", "0")
	add(inline, "wp:docPr", "id", id, "name", name)
	add(add(inline, "wp:cNvGraphicFramePr"), "a:graphicFrameLocks", "noChangeAspect", "1")

	data := add(add(inline, "a:graphic"), "a:graphicData", "uri", nsPic)
	pic := add(data, "pic:pic")
	nv := add(pic, "pic:nvPicPr")
	add(nv, "pic:cNvPr", "id", id, "name", name)
	add(nv, "pic:cNvPicPr")

	fill := add(pic, "pic:blipFill")
	add(fill, "a:blip", "r:embed", relID)
	add(add(fill, "a:stretch"), "a:fillRect")

	sp := add(pic, "pic:spPr")
	xfrm := add(sp, "a:xfrm")
	add(xfrm, "a:off", "x", "0", "y", "0")
	add(xfrm, "a:ext", ext...)
	add(add(sp, "a:prstGeom", "prst", "rect"), "a:avLst")
}
