// Package fetch retrieves HTML pages and returns their bodies as UTF-8.
//
// Two fetchers are provided. HTTP issues plain GET requests and decodes the
// body using the declared or sniffed charset, or a forced encoding when the
// server lies about it. Browser loads the page in headless Chrome and returns
// the rendered DOM, for sites that build their content client-side.
package fetch

import (
	"context"
	"errors"
)

var (
	ErrFetch    = errors.New("page fetch failed")
	ErrEncoding = errors.New("unknown encoding")
	ErrBrowser  = errors.New("browser unavailable")
)

// DefaultUserAgent is sent with every page request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; docs2docx/1.0)"

// Page is a fetched document.
type Page struct {
	URL      string
	Body     string // UTF-8
	Encoding string // name of the encoding the body was decoded from
}

// Fetcher retrieves a page body by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Compile-time interface checks
var (
	_ Fetcher = (*HTTP)(nil)
	_ Fetcher = (*Browser)(nil)
)
