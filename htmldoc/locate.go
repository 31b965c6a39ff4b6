package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoContent is returned by Locate when the page has no content region.
var ErrNoContent = errors.New("content region not found")

// Region is the located content region of a page.
type Region struct {
	Node *html.Node
	HTML string // outer HTML of Node

	// Page metadata from the document head.
	Title       string
	Description string
	Keywords    []string
}

// Locate parses a page and returns the first element matching selector.
func Locate(r io.Reader, selector string) (*Region, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, selector)
	}

	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, fmt.Errorf("rendering content region: %w", err)
	}

	region := &Region{
		Node:  sel.Get(0),
		HTML:  outer,
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}
	extractMeta(doc, region)
	return region, nil
}

// extractMeta reads the description and keywords meta tags.
func extractMeta(doc *goquery.Document, region *Region) {
	doc.Find("head meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			name, _ = s.Attr("property")
		}
		content, _ := s.Attr("content")
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}

		switch strings.ToLower(name) {
		case "description", "og:description":
			if region.Description == "" {
				region.Description = content
			}
		case "keywords":
			for _, kw := range strings.Split(content, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					region.Keywords = append(region.Keywords, kw)
				}
			}
		}
	})
}
