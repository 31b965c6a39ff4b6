package docs2docx

import (
	"time"

	"github.com/tsawler/docs2docx/htmldoc"
	"github.com/tsawler/docs2docx/resolver"
)

// Defaults for a run.
const (
	DefaultSelector = ".theme-doc-markdown"
	DefaultSideFile = "content.txt"
	DefaultOutput   = "output.docx"
)

// ConvertOptions holds configuration for a run.
type ConvertOptions struct {
	// Content location and side output
	selector string
	sideFile string // empty disables the side file
	output   string

	// Fetching
	failFast  bool
	timeout   time.Duration // per page, zero means none
	encoding  string        // forced page encoding, empty detects
	userAgent string
	browser   bool

	// Images
	maxPixelWidth int

	// Markup recognition and rendering
	markup htmldoc.Options
}

// defaultOptions returns the default run options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		selector:      DefaultSelector,
		sideFile:      DefaultSideFile,
		output:        DefaultOutput,
		failFast:      false,
		timeout:       0,
		maxPixelWidth: resolver.DefaultMaxPixelWidth,
		markup:        htmldoc.DefaultOptions(),
	}
}

// clone creates a copy of ConvertOptions. No field shares memory.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
