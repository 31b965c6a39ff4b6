package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>héllo</p></body></html>"))
	}))
	defer srv.Close()

	f, err := NewHTTP(WithUserAgent("test-agent"))
	if err != nil {
		t.Fatalf("NewHTTP() error = %v", err)
	}
	page, err := f.Fetch(context.Background(), srv.URL+"/docs/intro")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if page.URL != srv.URL+"/docs/intro" {
		t.Errorf("URL = %q, want %q", page.URL, srv.URL+"/docs/intro")
	}
	if !strings.Contains(page.Body, "héllo") {
		t.Errorf("Body = %q, want it to contain %q", page.Body, "héllo")
	}
	if page.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", page.Encoding)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want test-agent", gotUA)
	}
}

func TestHTTPFetchDeclaredCharset(t *testing.T) {
	// "café" in windows-1252
	body := []byte("<html><body>caf\xe9</body></html>")
	srv := serve(t, "text/html; charset=windows-1252", body)

	f, _ := NewHTTP()
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(page.Body, "café") {
		t.Errorf("Body = %q, want decoded café", page.Body)
	}
	if page.Encoding != "windows-1252" {
		t.Errorf("Encoding = %q, want windows-1252", page.Encoding)
	}
}

func TestHTTPFetchMetaCharset(t *testing.T) {
	body := []byte(`<html><head><meta charset="iso-8859-1"></head><body>na\xefve</body></html>`)
	srv := serve(t, "text/html", body)

	f, _ := NewHTTP()
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(page.Body, "naïve") {
		t.Errorf("Body = %q, want decoded naïve", page.Body)
	}
}

func TestHTTPFetchForcedEncoding(t *testing.T) {
	// UTF-8 bytes served with a wrong declaration
	body := []byte("<html><body>한국어</body></html>")
	srv := serve(t, "text/html; charset=iso-8859-1", body)

	plain, _ := NewHTTP()
	page, err := plain.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if strings.Contains(page.Body, "한국어") {
		t.Fatal("declared charset was not applied")
	}

	forced, err := NewHTTP(WithEncoding("utf-8"))
	if err != nil {
		t.Fatalf("NewHTTP() error = %v", err)
	}
	page, err = forced.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(page.Body, "한국어") {
		t.Errorf("Body = %q, want forced UTF-8 text", page.Body)
	}
	if page.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", page.Encoding)
	}
}

func TestWithEncodingUnknown(t *testing.T) {
	_, err := NewHTTP(WithEncoding("klingon-8"))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("NewHTTP() error = %v, want ErrEncoding", err)
	}
}

func TestHTTPFetchErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	big := serve(t, "text/html", []byte(strings.Repeat("x", 100)))

	tests := []struct {
		name string
		url  string
		opts []Option
	}{
		{"status", notFound.URL, nil},
		{"too large", big.URL, []Option{WithMaxBytes(10)}},
		{"bad url", "http://[::1", nil},
		{"unreachable", "http://127.0.0.1:1/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewHTTP(tt.opts...)
			if err != nil {
				t.Fatalf("NewHTTP() error = %v", err)
			}
			_, err = f.Fetch(context.Background(), tt.url)
			if !errors.Is(err, ErrFetch) {
				t.Errorf("Fetch() error = %v, want ErrFetch", err)
			}
		})
	}
}

func TestHTTPFetchCancelled(t *testing.T) {
	srv := serve(t, "text/html", []byte("<p>x</p>"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := NewHTTP()
	if _, err := f.Fetch(ctx, srv.URL); err == nil {
		t.Error("Fetch() with cancelled context succeeded")
	}
}

func TestHTTPFetchLogs(t *testing.T) {
	srv := serve(t, "text/html; charset=utf-8", []byte("<p>x</p>"))
	core, logs := observer.New(zapcore.DebugLevel)

	f, _ := NewHTTP(WithLogger(zap.New(core)))
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	entries := logs.FilterMessage("Page fetched").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["url"]; got != srv.URL {
		t.Errorf("logged url = %v, want %q", got, srv.URL)
	}
}

func TestBrowserWithoutLaunch(t *testing.T) {
	b := NewBrowser(WithBrowserTimeout(0), WithWaitSelector(".theme-doc-markdown"))
	if b.timeout != DefaultBrowserTimeout {
		t.Errorf("timeout = %v, want %v", b.timeout, DefaultBrowserTimeout)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() before Fetch error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Fetch(ctx, "https://example.com"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
	if b.browser != nil {
		t.Error("cancelled Fetch launched a browser")
	}
}

func TestSelectorWait(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      time.Duration
	}{
		{60 * time.Second, 55 * time.Second},
		{11 * time.Second, 6 * time.Second},
		{10 * time.Second, 5 * time.Second},
		{4 * time.Second, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := selectorWait(tt.remaining); got != tt.want {
			t.Errorf("selectorWait(%v) = %v, want %v", tt.remaining, got, tt.want)
		}
		if got := selectorWait(tt.remaining); got >= tt.remaining {
			t.Errorf("selectorWait(%v) = %v leaves no time to read the page", tt.remaining, got)
		}
	}
}

func TestWaitResult(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	boom := errors.New("target closed")

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want error
	}{
		{"found", context.Background(), nil, nil},
		{"selector timed out", context.Background(), fmt.Errorf("element: %w", context.DeadlineExceeded), nil},
		{"run cancelled", cancelled, context.Canceled, context.Canceled},
		{"cancelled while timing out", cancelled, context.DeadlineExceeded, context.Canceled},
		{"browser error", context.Background(), boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := waitResult(tt.ctx, tt.err); !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("waitResult() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrowserKillsProcessWhenConnectFails(t *testing.T) {
	b := NewBrowser()
	killed := 0
	b.launch = func() (string, func(), error) {
		return "ws://127.0.0.1:9222/devtools/browser/x", func() { killed++ }, nil
	}
	b.connect = func(string) (*rod.Browser, error) {
		return nil, errors.New("connection refused")
	}

	_, err := b.Fetch(context.Background(), "https://example.com")
	if !errors.Is(err, ErrBrowser) {
		t.Fatalf("Fetch() error = %v, want ErrBrowser", err)
	}
	if killed != 1 {
		t.Errorf("kill called %d times, want 1", killed)
	}
	if b.browser != nil {
		t.Error("browser kept after a failed connect")
	}

	b.launch = func() (string, func(), error) {
		return "", nil, errors.New("no chrome")
	}
	if _, err := b.Fetch(context.Background(), "https://example.com"); !errors.Is(err, ErrBrowser) {
		t.Errorf("Fetch() with failed launch error = %v, want ErrBrowser", err)
	}
}
