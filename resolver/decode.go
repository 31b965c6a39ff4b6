package resolver

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// decoders registered with image.Decode
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/tsawler/docs2docx/format"
	"github.com/tsawler/docs2docx/model"
)

const (
	// defaultSVGSize is used when an SVG declares no usable viewBox.
	defaultSVGSize = 256
	maxSVGSize     = 4096
)

// Decode identifies, decodes and re-encodes data as PNG, downscaling images
// wider than maxWidth pixels. maxWidth <= 0 keeps the original size.
func Decode(data []byte, maxWidth int) (*model.Image, error) {
	f := format.DetectImage(data)

	var (
		img image.Image
		err error
	)
	switch f {
	case model.ImageFormatUnknown:
		return nil, fmt.Errorf("%w: content type %s", ErrUnsupported, format.ContentType(data))
	case model.ImageFormatSVG:
		img, err = rasterizeSVG(data)
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, f, err)
	}

	img = downscale(img, maxWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: png encode: %v", ErrDecode, err)
	}

	b := img.Bounds()
	return &model.Image{
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: f,
	}, nil
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = defaultSVGSize, defaultSVGSize
	}
	if w > maxSVGSize || h > maxSVGSize {
		scale := float64(maxSVGSize) / float64(max(w, h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
