// Package htmldoc converts the content region of a documentation page into
// blocks of a [model.Document].
//
// [Locate] finds the content region of a page. A [Converter] then walks the
// region depth-first, classifying every node into exactly one block kind and
// appending headings, paragraphs, list items, tables and figures to the
// document. Text-bearing nodes are assembled into styled runs with the
// whitespace joining rules of the inline assembler.
//
//	region, err := htmldoc.Locate(body, ".theme-doc-markdown")
//	conv, err := htmldoc.NewConverter(htmldoc.DefaultOptions(), images, log)
//	failures, err := conv.Convert(ctx, region.Node, doc)
//
// Images that cannot be resolved are logged, reported in the returned
// failures and left out. The only error that stops a conversion is a
// malformed table span.
package htmldoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/docs2docx/model"
)

// Options configures how markup is recognized and rendered.
type Options struct {
	// Origin is the site origin relative links and images resolve against.
	Origin string

	// UITextClass marks spans rendered as highlighted interface labels.
	UITextClass string

	// AdmonitionClass marks callout containers. Their heading and content
	// children are found by class substring, since class names may carry a
	// generated suffix.
	AdmonitionClass        string
	AdmonitionHeadingClass string
	AdmonitionContentClass string

	// CodeBlockClass marks code block containers; bare <pre> is always a
	// code block.
	CodeBlockClass string

	// SpacerClass marks wrappers skipped together with their content.
	SpacerClass string

	// Display widths in inches.
	BlockImageWidth float64
	CellImageWidth  float64

	// Navigation controls removal of navigation chrome inside the region.
	Navigation NavigationExclusionMode
}

// DefaultOptions returns options matching Docusaurus generated pages.
func DefaultOptions() Options {
	return Options{
		Origin:                 "https://docs.whatap.io",
		UITextClass:            "uitext",
		AdmonitionClass:        "theme-admonition",
		AdmonitionHeadingClass: "admonitionHeading",
		AdmonitionContentClass: "admonitionContent",
		CodeBlockClass:         "theme-code-block",
		SpacerClass:            "margin-bottom--lg",
		BlockImageWidth:        5.0,
		CellImageWidth:         1.0,
		Navigation:             NavigationExclusionNone,
	}
}

// ImageResolver produces a decoded image for a reference taken from an
// img src attribute.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (*model.Image, error)
}

// ImageFailure records an image left out of the document.
type ImageFailure struct {
	Ref string
	Err error
}

// NavigationExclusionMode controls how navigation chrome inside the content
// region is filtered.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone keeps everything in the region.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips <nav> and <aside> elements and the
	// navigation/complementary ARIA roles.
	NavigationExclusionExplicit

	// NavigationExclusionStandard also skips elements whose class or id
	// names a breadcrumb, pagination, table of contents or edit/footer bar.
	NavigationExclusionStandard
)

// ParseNavigationExclusionMode parses the String form of a mode.
func ParseNavigationExclusionMode(s string) (NavigationExclusionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NavigationExclusionNone, nil
	case "explicit":
		return NavigationExclusionExplicit, nil
	case "standard":
		return NavigationExclusionStandard, nil
	}
	return NavigationExclusionNone, fmt.Errorf("unknown navigation exclusion mode %q", s)
}

func (m NavigationExclusionMode) String() string {
	switch m {
	case NavigationExclusionExplicit:
		return "explicit"
	case NavigationExclusionStandard:
		return "standard"
	default:
		return "none"
	}
}

// destKind is where assembled inline content lands.
type destKind int

const (
	destParagraph destKind = iota
	destListItem
	destTableCell
)

// blockKind is the closed classification of a node at block level.
type blockKind int

const (
	blockSkip blockKind = iota
	blockHeading
	blockParagraph
	blockList
	blockTable
	blockAdmonition
	blockDetails
	blockFigure
	blockCode
	blockInline // inline element met at block level
	blockText   // bare text node
	blockContainer
)

// inlineKind is the closed classification of a node inside text-bearing
// content.
type inlineKind int

const (
	inlineSkip inlineKind = iota
	inlineText
	inlineBold
	inlineUI
	inlineCode
	inlineLink
	inlineImage
	inlineBreak
	inlineContainer
)
