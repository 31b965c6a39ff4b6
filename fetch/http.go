package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultMaxBytes limits a single page download.
const DefaultMaxBytes = 16 << 20

// HTTP fetches pages with net/http.
type HTTP struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	forced    encoding.Encoding
	forcedTag string
	log       *zap.Logger
}

// Option configures an HTTP fetcher
type Option func(*HTTP) error

// WithHTTPClient sets the client used for requests
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) error {
		h.client = c
		return nil
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(h *HTTP) error {
		h.userAgent = ua
		return nil
	}
}

// WithMaxBytes limits the size of a page body.
func WithMaxBytes(n int64) Option {
	return func(h *HTTP) error {
		h.maxBytes = n
		return nil
	}
}

// WithEncoding decodes every body with the named encoding (a WHATWG label
// such as "utf-8" or "windows-1252"), ignoring what the server declares.
// An empty name keeps detection.
func WithEncoding(name string) Option {
	return func(h *HTTP) error {
		if name == "" {
			h.forced, h.forcedTag = nil, ""
			return nil
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrEncoding, name)
		}
		tag, err := htmlindex.Name(enc)
		if err != nil {
			tag = name
		}
		h.forced, h.forcedTag = enc, tag
		return nil
	}
}

// WithLogger sets the logger (default: no logging)
func WithLogger(log *zap.Logger) Option {
	return func(h *HTTP) error {
		if log != nil {
			h.log = log
		}
		return nil
	}
}

// NewHTTP creates an HTTP fetcher.
func NewHTTP(opts ...Option) (*HTTP, error) {
	h := &HTTP{
		client:    &http.Client{Timeout: 60 * time.Second},
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Fetch downloads url and decodes its body to UTF-8. Any status outside
// 2xx is an error.
func (h *HTTP) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrFetch, url, resp.StatusCode)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, url, err)
	}
	if n > h.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, url, h.maxBytes)
	}

	body, name, err := h.decode(buf.Bytes(), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrFetch, url, err)
	}

	h.log.Debug("Page fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int64("bytes", n),
		zap.String("encoding", name))
	return &Page{URL: url, Body: body, Encoding: name}, nil
}

// decode converts data to UTF-8 using the forced encoding, or the one
// found in the Content-Type header, a BOM or a meta tag.
func (h *HTTP) decode(data []byte, contentType string) (string, string, error) {
	enc, name := h.forced, h.forcedTag
	if enc == nil {
		enc, name, _ = charset.DetermineEncoding(data, contentType)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", name, err
	}
	return string(out), name, nil
}
