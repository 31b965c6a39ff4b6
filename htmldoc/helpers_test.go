package htmldoc

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/resolver"
)

const testOrigin = "https://docs.example.com"

// fakeImages resolves every reference to a small image, or fails all of
// them.
type fakeImages struct {
	fail bool
	refs []string
}

func (f *fakeImages) Resolve(_ context.Context, ref string) (*model.Image, error) {
	f.refs = append(f.refs, ref)
	if f.fail {
		return nil, fmt.Errorf("%w: HTTP 404", resolver.ErrFetch)
	}
	return &model.Image{Source: ref, Width: 10, Height: 5, Format: model.ImageFormatPNG}, nil
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Origin = testOrigin
	return opts
}

// convert wraps body in a page, locates the region and converts it.
func convert(t *testing.T, body string, opts Options, images ImageResolver, log *zap.Logger) (*model.Document, []ImageFailure, error) {
	t.Helper()
	page := `<html><head><title>T</title></head><body><nav>menu</nav><div class="theme-doc-markdown markdown">` +
		body + `</div></body></html>`
	region, err := Locate(strings.NewReader(page), ".theme-doc-markdown")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	conv, err := NewConverter(opts, images, log)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	doc := model.NewDocument()
	failures, err := conv.Convert(context.Background(), region.Node, doc)
	return doc, failures, err
}

// mustConvert is convert with default options that fails the test on error.
func mustConvert(t *testing.T, body string) *model.Document {
	t.Helper()
	doc, _, err := convert(t, body, testOptions(), &fakeImages{}, nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return doc
}

func paragraphAt(t *testing.T, doc *model.Document, i int) *model.Paragraph {
	t.Helper()
	if i >= doc.Len() {
		t.Fatalf("document has %d blocks, want index %d", doc.Len(), i)
	}
	p, ok := doc.Blocks[i].(*model.Paragraph)
	if !ok {
		t.Fatalf("block %d is %v, want Paragraph", i, doc.Blocks[i].Kind())
	}
	return p
}

// runKinds renders runs as "Kind:text" for compact comparison.
func runKinds(p *model.Paragraph) []string {
	var out []string
	for _, r := range p.Runs {
		out = append(out, r.Kind.String()+":"+r.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
