// Package docs2docx converts HTML documentation pages into a single DOCX
// document.
//
// Basic usage:
//
//	warnings, err := docs2docx.FromFile("urls.txt").Run(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docs2docx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := docs2docx.New(urls...).
//	    Origin("https://docs.example.com").
//	    Selector("article").
//	    Output("guide.docx").
//	    FailFast().
//	    Run(ctx)
//
// Each page is fetched, its content region located, and the region walked
// into headings, paragraphs, lists, tables and figures appended to one
// document. The lower-level htmldoc, fetch and docx packages are also
// available.
package docs2docx

import (
	"fmt"
	"os"
)

// New returns a Converter for the given page URLs, in order.
//
// Example:
//
//	warnings, err := docs2docx.New("https://docs.example.com/intro").Run(ctx)
func New(urls ...string) *Converter {
	return &Converter{
		urls:    append([]string(nil), urls...),
		options: defaultOptions(),
	}
}

// FromFile returns a Converter for the URLs listed in path, one per line.
// Read errors surface from the terminal operation.
//
// Example:
//
//	warnings, err := docs2docx.FromFile("urls.txt").Output("out.docx").Run(ctx)
func FromFile(path string) *Converter {
	f, err := os.Open(path)
	if err != nil {
		c := New()
		c.err = fmt.Errorf("%w: %v", ErrInput, err)
		return c
	}
	defer f.Close()

	urls, err := ReadURLs(f)
	c := New(urls...)
	if err != nil {
		c.err = fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	urls := docs2docx.Must(docs2docx.ReadURLs(os.Stdin))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
