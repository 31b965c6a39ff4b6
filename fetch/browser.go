package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// DefaultBrowserTimeout bounds the load of one page when the context has no
// deadline.
const DefaultBrowserTimeout = 60 * time.Second

// readReserve is the part of the page budget kept back from the wait
// selector so the rendered HTML can still be read when the selector never
// appears.
const readReserve = 5 * time.Second

// Browser fetches pages by rendering them in headless Chrome. The browser
// is launched on the first Fetch and released by Close.
type Browser struct {
	browser *rod.Browser
	bin     string
	timeout time.Duration
	waitFor string
	log     *zap.Logger

	// launch starts the browser process and returns its control URL and a
	// function that kills it. connect attaches to a control URL.
	launch  func() (string, func(), error)
	connect func(controlURL string) (*rod.Browser, error)
}

// BrowserOption configures a Browser
type BrowserOption func(*Browser)

// WithBrowserBin uses a pre-installed Chrome or Chromium binary instead of
// the one rod downloads.
func WithBrowserBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// WithBrowserTimeout sets the per-page load timeout.
func WithBrowserTimeout(d time.Duration) BrowserOption {
	return func(b *Browser) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithWaitSelector waits until an element matching selector exists before
// the DOM is read. Client-rendered sites insert the content region late.
func WithWaitSelector(selector string) BrowserOption {
	return func(b *Browser) {
		b.waitFor = selector
	}
}

// WithBrowserLogger sets the logger (default: no logging)
func WithBrowserLogger(log *zap.Logger) BrowserOption {
	return func(b *Browser) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBrowser creates a browser fetcher. No process is started until the
// first Fetch.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{
		bin:     os.Getenv("ROD_BROWSER_BIN"),
		timeout: DefaultBrowserTimeout,
		log:     zap.NewNop(),
		connect: connectRod,
	}
	b.launch = b.launchChrome
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// launchChrome starts headless Chrome.
func (b *Browser) launchChrome() (string, func(), error) {
	l := launcher.New()
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	// sandboxing is unavailable in most containers
	if os.Getenv("CI") == "true" || b.bin != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return "", nil, err
	}
	return u, l.Kill, nil
}

func connectRod(controlURL string) (*rod.Browser, error) {
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return browser, nil
}

// ensureBrowser lazily launches and connects to the browser.
func (b *Browser) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	u, kill, err := b.launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowser, err)
	}

	browser, err := b.connect(u)
	if err != nil {
		kill()
		return fmt.Errorf("%w: %v", ErrBrowser, err)
	}
	b.browser = browser
	b.log.Debug("Browser started", zap.String("control", u))
	return nil
}

// Fetch loads url and returns the rendered document.
func (b *Browser) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	start := time.Now()

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrFetch, url, err)
	}
	defer page.Close()

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: loading %s: %v", ErrFetch, url, err)
	}
	if b.waitFor != "" {
		wait := selectorWait(timeout - time.Since(start))
		_, err := page.Timeout(wait).Element(b.waitFor)
		if err := waitResult(ctx, err); err != nil {
			return nil, fmt.Errorf("%w: waiting for %q on %s: %v", ErrFetch, b.waitFor, url, err)
		}
		if err != nil {
			// pages without the region are skipped once parsed
			b.log.Debug("Wait selector not found",
				zap.String("url", url),
				zap.String("selector", b.waitFor))
		}
	}

	remaining := timeout - time.Since(start)
	if remaining <= 0 {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, url, context.DeadlineExceeded)
	}
	body, err := page.Timeout(remaining).HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, url, err)
	}

	b.log.Debug("Page rendered", zap.String("url", url), zap.Int("bytes", len(body)))
	return &Page{URL: url, Body: body, Encoding: "utf-8"}, nil
}

// selectorWait is how long to wait for the selector out of the remaining
// page budget.
func selectorWait(remaining time.Duration) time.Duration {
	if remaining > 2*readReserve {
		return remaining - readReserve
	}
	return remaining / 2
}

// waitResult reports whether a failed selector wait should fail the fetch.
// Only the wait's own timeout is tolerated; cancellation of ctx and other
// browser errors are returned.
func waitResult(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close shuts the browser down if it was started.
func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil
	return err
}
