package resolver

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docs2docx/model"
)

var (
	ErrFetch       = errors.New("image fetch failed")
	ErrDecode      = errors.New("image decode failed")
	ErrUnsupported = errors.New("unsupported image")
)

const (
	// DefaultMaxPixelWidth is the widest image kept at full resolution.
	DefaultMaxPixelWidth = 1600

	// DefaultMaxBytes limits a single image download.
	DefaultMaxBytes = 32 << 20

	DefaultUserAgent = "Mozilla/5.0 (compatible; docs2docx/1.0)"
)

// Resolver fetches and decodes image references.
type Resolver struct {
	origin    *url.URL
	client    *http.Client
	userAgent string
	maxWidth  int
	maxBytes  int64
	log       *zap.Logger
}

// Option configures the resolver
type Option func(*Resolver)

// WithHTTPClient sets the client used for image downloads
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.client = c
	}
}

// WithUserAgent sets the User-Agent header sent with downloads
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		r.userAgent = ua
	}
}

// WithMaxPixelWidth sets the width above which images are downscaled.
// Zero or negative disables downscaling.
func WithMaxPixelWidth(px int) Option {
	return func(r *Resolver) {
		r.maxWidth = px
	}
}

// WithMaxBytes limits the size of a downloaded image.
func WithMaxBytes(n int64) Option {
	return func(r *Resolver) {
		r.maxBytes = n
	}
}

// WithLogger sets the logger (default: no logging)
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a resolver for pages served from origin, e.g.
// "https://docs.example.com".
func New(origin string, opts ...Option) (*Resolver, error) {
	u, err := ParseOrigin(origin)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		origin:    u,
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: DefaultUserAgent,
		maxWidth:  DefaultMaxPixelWidth,
		maxBytes:  DefaultMaxBytes,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ParseOrigin parses and validates a site origin.
func ParseOrigin(origin string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: want http(s)://host", origin)
	}
	return u, nil
}

// Origin returns the site origin references are resolved against
func (r *Resolver) Origin() *url.URL {
	return r.origin
}

// URL returns the absolute form of ref.
func (r *Resolver) URL(ref string) (string, error) {
	return ResolveURL(r.origin, ref)
}

// ResolveURL applies the reference resolution rules against origin. data:
// URIs and references that already carry a scheme are returned unchanged.
func ResolveURL(origin *url.URL, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnsupported)
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupported, ref, err)
	}
	if u.Scheme != "" {
		return ref, nil
	}
	if strings.HasPrefix(ref, "/") {
		return strings.TrimRight(origin.String(), "/") + ref, nil
	}

	root := *origin
	root.Path = "/"
	root.RawPath = ""
	return root.ResolveReference(u).String(), nil
}

// Resolve fetches or decodes the image behind ref.
func (r *Resolver) Resolve(ctx context.Context, ref string) (*model.Image, error) {
	data, source, err := r.load(ctx, ref)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data, r.maxWidth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	img.Source = source

	r.log.Debug("Image resolved",
		zap.String("source", source),
		zap.Stringer("format", img.Format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return img, nil
}

func (r *Resolver) load(ctx context.Context, ref string) ([]byte, string, error) {
	if IsDataURI(ref) {
		data, err := DecodeDataURI(ref)
		if err != nil {
			return nil, "data URI", err
		}
		return data, "data URI", nil
	}

	u, err := r.URL(ref)
	if err != nil {
		return nil, ref, err
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return nil, u, fmt.Errorf("%w: scheme of %q", ErrUnsupported, u)
	}

	data, err := r.download(ctx, u)
	if err != nil {
		return nil, u, err
	}
	return data, u, nil
}

func (r *Resolver) download(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrFetch, u, resp.StatusCode)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, u, err)
	}
	if n > r.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, u, r.maxBytes)
	}
	return buf.Bytes(), nil
}

// IsDataURI reports whether ref is an inline data: URI.
func IsDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// DecodeDataURI returns the payload of a data: URI.
func DecodeDataURI(ref string) ([]byte, error) {
	if !IsDataURI(ref) {
		return nil, fmt.Errorf("%w: not a data URI", ErrUnsupported)
	}
	meta, payload, ok := strings.Cut(ref[5:], ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without payload", ErrDecode)
	}

	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		payload = strings.Join(strings.Fields(payload), "")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some generators drop the padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: data URI base64: %v", ErrDecode, err)
		}
		return data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: data URI escape: %v", ErrDecode, err)
	}
	return []byte(data), nil
}
