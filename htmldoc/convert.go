package htmldoc

import (
	"context"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/resolver"
)

// maxListLevel is the deepest list nesting written to the document.
const maxListLevel = 8

// Converter turns content regions into document blocks. A Converter is
// used by one goroutine at a time; list numbering state carries across
// Convert calls so that lists from different pages never share numbering.
type Converter struct {
	opts   Options
	origin *url.URL
	images ImageResolver
	log    *zap.Logger
	lists  int
}

// NewConverter creates a converter. images may be nil, in which case every
// image is left out. A nil logger disables logging.
func NewConverter(opts Options, images ImageResolver, log *zap.Logger) (*Converter, error) {
	origin, err := resolver.ParseOrigin(opts.Origin)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		opts:   opts,
		origin: origin,
		images: images,
		log:    log,
	}, nil
}

// walker is the state threaded through one conversion.
type walker struct {
	c   *Converter
	ctx context.Context
	doc *model.Document

	// open is the paragraph bare text and stray inline elements join;
	// any other block closes it.
	open *model.Paragraph

	failures []ImageFailure
}

// Convert walks n and appends its blocks to doc. Images that could not be
// resolved are returned as failures. The returned error is non-nil only
// for a malformed table, in which case the blocks before the table are
// already in doc.
func (c *Converter) Convert(ctx context.Context, n *html.Node, doc *model.Document) ([]ImageFailure, error) {
	if n == nil {
		return nil, nil
	}
	w := &walker{c: c, ctx: ctx, doc: doc}
	err := w.children(n)
	return w.failures, err
}

func (w *walker) children(n *html.Node) error {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := w.block(ch); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) emit(b model.Block) {
	w.doc.Append(b)
	w.open = nil
}

func (w *walker) nextListID() int {
	w.c.lists++
	return w.c.lists
}

// resolveImage resolves ref, logging and recording failures.
func (w *walker) resolveImage(ref string) *model.Image {
	if ref == "" {
		w.c.log.Debug("Image without source skipped")
		return nil
	}
	if w.c.images == nil {
		w.c.log.Debug("Image skipped, no resolver configured", zap.String("src", ref))
		return nil
	}

	img, err := w.c.images.Resolve(w.ctx, ref)
	if err != nil {
		w.c.log.Warn("Image omitted", zap.String("src", shortRef(ref)), zap.Error(err))
		w.failures = append(w.failures, ImageFailure{Ref: shortRef(ref), Err: err})
		return nil
	}
	return img
}

// shortRef keeps data URIs out of logs.
func shortRef(ref string) string {
	if resolver.IsDataURI(ref) && len(ref) > 40 {
		return ref[:40] + "..."
	}
	return ref
}
