// Package format identifies image payloads before decoding.
package format

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tsawler/docs2docx/model"
)

// DetectImage determines the image format of data from its content.
// Returns ImageFormatUnknown for anything that is not a supported image.
func DetectImage(data []byte) model.ImageFormat {
	if len(data) == 0 {
		return model.ImageFormatUnknown
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/png"):
		return model.ImageFormatPNG
	case mt.Is("image/jpeg"):
		return model.ImageFormatJPEG
	case mt.Is("image/gif"):
		return model.ImageFormatGIF
	case mt.Is("image/webp"):
		return model.ImageFormatWebP
	case mt.Is("image/bmp"):
		return model.ImageFormatBMP
	case mt.Is("image/tiff"):
		return model.ImageFormatTIFF
	case mt.Is("image/svg+xml"):
		return model.ImageFormatSVG
	}
	return model.ImageFormatUnknown
}

// ContentType returns the detected media type of data without parameters,
// for diagnostics.
func ContentType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

// Extension returns the file extension used for the format.
func Extension(f model.ImageFormat) string {
	switch f {
	case model.ImageFormatJPEG:
		return ".jpg"
	case model.ImageFormatPNG:
		return ".png"
	case model.ImageFormatGIF:
		return ".gif"
	case model.ImageFormatWebP:
		return ".webp"
	case model.ImageFormatBMP:
		return ".bmp"
	case model.ImageFormatTIFF:
		return ".tiff"
	case model.ImageFormatSVG:
		return ".svg"
	default:
		return ""
	}
}
