package docs2docx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docs2docx/docx"
	"github.com/tsawler/docs2docx/fetch"
	"github.com/tsawler/docs2docx/htmldoc"
	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/resolver"
)

var (
	// ErrInput is returned when the URL list cannot be read.
	ErrInput = errors.New("reading URL list")

	// ErrOutput is returned when the document or side file cannot be
	// written.
	ErrOutput = errors.New("writing output")
)

// Converter provides a fluent interface for converting documentation pages.
// Each configuration method returns a new Converter instance, making it
// safe to share a base configuration and allowing method chaining.
type Converter struct {
	urls []string

	// Configuration
	options ConvertOptions

	// Collaborators, created per run when nil
	fetcher fetch.Fetcher
	images  htmldoc.ImageResolver
	log     *zap.Logger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with its own URL list.
func (c *Converter) clone() *Converter {
	return &Converter{
		urls:    append([]string(nil), c.urls...),
		options: c.options.clone(),
		fetcher: c.fetcher,
		images:  c.images,
		log:     c.log,
		err:     c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// URLs appends page URLs to the run.
func (c *Converter) URLs(urls ...string) *Converter {
	n := c.clone()
	n.urls = append(n.urls, urls...)
	return n
}

// Origin sets the site origin relative links and images resolve against.
//
// Example:
//
//	docs2docx.New(urls...).Origin("https://docs.example.com")
func (c *Converter) Origin(origin string) *Converter {
	n := c.clone()
	n.options.markup.Origin = origin
	return n
}

// Selector sets the CSS selector of the content region. The first match
// on each page is converted.
func (c *Converter) Selector(selector string) *Converter {
	n := c.clone()
	n.options.selector = selector
	return n
}

// SideFile sets the file the raw content regions are written to. An empty
// path disables it.
func (c *Converter) SideFile(path string) *Converter {
	n := c.clone()
	n.options.sideFile = path
	return n
}

// Output sets the path Run writes the document to.
func (c *Converter) Output(path string) *Converter {
	n := c.clone()
	n.options.output = path
	return n
}

// FailFast makes a page that cannot be fetched abort the run instead of
// being skipped with a warning.
func (c *Converter) FailFast() *Converter {
	n := c.clone()
	n.options.failFast = true
	return n
}

// Timeout bounds the fetch of each page. Zero means no limit.
func (c *Converter) Timeout(d time.Duration) *Converter {
	n := c.clone()
	n.options.timeout = d
	return n
}

// Encoding decodes every page with the named encoding instead of the one
// the server declares.
func (c *Converter) Encoding(name string) *Converter {
	n := c.clone()
	n.options.encoding = name
	return n
}

// UserAgent sets the User-Agent sent for pages and images.
func (c *Converter) UserAgent(ua string) *Converter {
	n := c.clone()
	n.options.userAgent = ua
	return n
}

// Browser renders pages in headless Chrome before conversion. The browser
// waits for the content selector to appear.
func (c *Converter) Browser() *Converter {
	n := c.clone()
	n.options.browser = true
	return n
}

// MaxPixelWidth downscales images wider than px before embedding. Zero
// keeps every image at full resolution.
func (c *Converter) MaxPixelWidth(px int) *Converter {
	n := c.clone()
	n.options.maxPixelWidth = px
	return n
}

// ImageWidths sets the display width in inches of block images and of
// images inside table cells.
func (c *Converter) ImageWidths(block, cell float64) *Converter {
	n := c.clone()
	if block > 0 {
		n.options.markup.BlockImageWidth = block
	}
	if cell > 0 {
		n.options.markup.CellImageWidth = cell
	}
	return n
}

// Navigation sets how navigation chrome inside the content region is
// filtered.
func (c *Converter) Navigation(mode htmldoc.NavigationExclusionMode) *Converter {
	n := c.clone()
	n.options.markup.Navigation = mode
	return n
}

// Markup replaces the markup recognition options. The origin set by
// Origin is kept when opts carries none.
func (c *Converter) Markup(opts htmldoc.Options) *Converter {
	n := c.clone()
	if opts.Origin == "" {
		opts.Origin = n.options.markup.Origin
	}
	n.options.markup = opts
	return n
}

// Fetcher replaces the page fetcher.
func (c *Converter) Fetcher(f fetch.Fetcher) *Converter {
	n := c.clone()
	n.fetcher = f
	return n
}

// Images replaces the image resolver.
func (c *Converter) Images(r htmldoc.ImageResolver) *Converter {
	n := c.clone()
	n.images = r
	return n
}

// Logger sets the logger. Each page is logged at Info as it begins.
func (c *Converter) Logger(log *zap.Logger) *Converter {
	n := c.clone()
	n.log = log
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document fetches and converts every page, in order, into one document.
//
// A non-nil error means the run was aborted: a page could not be fetched
// with FailFast set, a table carried a malformed span, or the side file
// could not be written. The document built up to that point is returned
// with the error. When the run cannot start at all, because the URL list
// was unreadable or the configuration is invalid, the document is nil.
func (c *Converter) Document(ctx context.Context) (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	r, err := c.newRun()
	if err != nil {
		return nil, nil, err
	}
	defer r.close()

	doc := model.NewDocument()
	doc.Metadata.CreationDate = time.Now()
	err = r.convert(ctx, c.urls, doc)
	return doc, r.warnings, err
}

// Write converts every page and writes the document to w. The document is
// written even when the run is aborted, so that the pages converted before
// the failure are kept; the run error is returned in that case.
func (c *Converter) Write(ctx context.Context, w io.Writer) ([]Warning, error) {
	doc, warnings, runErr := c.Document(ctx)
	if doc == nil {
		return warnings, runErr
	}
	if err := docx.Write(w, doc); err != nil {
		return warnings, errors.Join(runErr, fmt.Errorf("%w: %v", ErrOutput, err))
	}
	return warnings, runErr
}

// Run converts every page and writes the document to the output path.
//
// Example:
//
//	warnings, err := docs2docx.FromFile("urls.txt").Run(ctx)
func (c *Converter) Run(ctx context.Context) ([]Warning, error) {
	var buf bytes.Buffer
	warnings, runErr := c.Write(ctx, &buf)
	if buf.Len() == 0 {
		return warnings, runErr
	}
	if err := os.WriteFile(c.options.output, buf.Bytes(), 0o644); err != nil {
		return warnings, errors.Join(runErr, fmt.Errorf("%w: %s: %v", ErrOutput, c.options.output, err))
	}
	return warnings, runErr
}

// run is the state of one Document call.
type run struct {
	opts     ConvertOptions
	log      *zap.Logger
	fetcher  fetch.Fetcher
	conv     *htmldoc.Converter
	side     *os.File
	closers  []io.Closer
	warnings []Warning
}

func (c *Converter) newRun() (*run, error) {
	r := &run{opts: c.options, log: c.log, fetcher: c.fetcher}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	ua := r.opts.userAgent
	if ua == "" {
		ua = fetch.DefaultUserAgent
	}

	if r.fetcher == nil {
		if r.opts.browser {
			b := fetch.NewBrowser(
				fetch.WithBrowserTimeout(r.opts.timeout),
				fetch.WithWaitSelector(r.opts.selector),
				fetch.WithBrowserLogger(r.log))
			r.fetcher = b
			r.closers = append(r.closers, b)
		} else {
			h, err := fetch.NewHTTP(
				fetch.WithUserAgent(ua),
				fetch.WithEncoding(r.opts.encoding),
				fetch.WithLogger(r.log))
			if err != nil {
				return nil, err
			}
			r.fetcher = h
		}
	}

	images := c.images
	if images == nil {
		res, err := resolver.New(r.opts.markup.Origin,
			resolver.WithUserAgent(ua),
			resolver.WithMaxPixelWidth(r.opts.maxPixelWidth),
			resolver.WithLogger(r.log))
		if err != nil {
			return nil, err
		}
		images = res
	}

	conv, err := htmldoc.NewConverter(r.opts.markup, images, r.log)
	if err != nil {
		return nil, err
	}
	r.conv = conv

	if r.opts.sideFile != "" {
		f, err := os.Create(r.opts.sideFile)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("%w: side file: %v", ErrOutput, err)
		}
		r.side = f
		r.closers = append(r.closers, f)
	}
	return r, nil
}

func (r *run) close() {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			r.log.Warn("Close failed", zap.Error(err))
		}
	}
	r.closers = nil
}

func (r *run) convert(ctx context.Context, urls []string, doc *model.Document) error {
	var pageTitle string
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.log.Info("Converting page",
			zap.Int("page", i+1),
			zap.Int("total", len(urls)),
			zap.String("url", u))

		region, err := r.locate(ctx, u)
		if err != nil {
			if r.opts.failFast {
				return fmt.Errorf("page %s: %w", u, err)
			}
			r.log.Warn("Page skipped", zap.String("url", u), zap.Error(err))
			r.warnings = append(r.warnings, Warning{
				Kind: WarningPage, URL: u, Message: "page skipped", Err: err,
			})
			continue
		}
		if region == nil {
			continue
		}

		if err := r.dump(region.HTML); err != nil {
			return err
		}
		if pageTitle == "" {
			pageTitle = region.Title
		}
		mergeMetadata(&doc.Metadata, region)

		failures, err := r.conv.Convert(ctx, region.Node, doc)
		for _, f := range failures {
			r.warnings = append(r.warnings, Warning{
				Kind: WarningImage, URL: u, Ref: f.Ref, Message: "image omitted", Err: f.Err,
			})
		}
		if err != nil {
			return fmt.Errorf("page %s: %w", u, err)
		}
	}

	if headings := doc.Headings(); len(headings) > 0 {
		doc.Metadata.Title = headings[0].Text
	} else {
		doc.Metadata.Title = pageTitle
	}
	return nil
}

// locate fetches a page and finds its content region. A page without one
// yields a nil region and no error.
func (r *run) locate(ctx context.Context, u string) (*htmldoc.Region, error) {
	if r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}

	page, err := r.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	region, err := htmldoc.Locate(strings.NewReader(page.Body), r.opts.selector)
	if errors.Is(err, htmldoc.ErrNoContent) {
		r.log.Debug("No content region", zap.String("url", u), zap.String("selector", r.opts.selector))
		return nil, nil
	}
	return region, err
}

// dump appends a content region to the side file, pages separated by a
// blank line.
func (r *run) dump(regionHTML string) error {
	if r.side == nil {
		return nil
	}
	if _, err := io.WriteString(r.side, regionHTML+"\n\n"); err != nil {
		return fmt.Errorf("%w: side file: %v", ErrOutput, err)
	}
	return nil
}

// mergeMetadata fills document metadata from the first page that has it.
func mergeMetadata(meta *model.Metadata, region *htmldoc.Region) {
	if meta.Subject == "" {
		meta.Subject = region.Description
	}
	seen := make(map[string]bool, len(meta.Keywords))
	for _, kw := range meta.Keywords {
		seen[strings.ToLower(kw)] = true
	}
	for _, kw := range region.Keywords {
		if !seen[strings.ToLower(kw)] {
			seen[strings.ToLower(kw)] = true
			meta.Keywords = append(meta.Keywords, kw)
		}
	}
}
