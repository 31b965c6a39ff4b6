package resolver

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tsawler/docs2docx/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestURL(t *testing.T) {
	r, err := New("https://docs.example.com/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"/img/a.png", "https://docs.example.com/img/a.png"},
		{"https://cdn.example.org/x.png", "https://cdn.example.org/x.png"},
		{"http://cdn.example.org/x.png", "http://cdn.example.org/x.png"},
		{"//cdn.example.org/x.png", "https://cdn.example.org/x.png"},
		{"img/a.png", "https://docs.example.com/img/a.png"},
		{"../img/a.png", "https://docs.example.com/img/a.png"},
		{"mailto:someone@example.com", "mailto:someone@example.com"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := r.URL(tt.ref)
			if err != nil {
				t.Fatalf("URL(%q) error = %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}

	if _, err := r.URL("  "); !errors.Is(err, ErrUnsupported) {
		t.Errorf("URL(blank) error = %v, want ErrUnsupported", err)
	}
}

func TestNewInvalidOrigin(t *testing.T) {
	for _, origin := range []string{"", "docs.example.com", "ftp://docs.example.com", "https://"} {
		if _, err := New(origin); err == nil {
			t.Errorf("New(%q) error = nil, want error", origin)
		}
	}
}

func TestResolveSiteRelative(t *testing.T) {
	data := pngBytes(t, 8, 4)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotUA = req.Header.Get("User-Agent")
		if req.URL.Path != "/img/a.png" {
			http.NotFound(w, req)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	r, err := New(srv.URL, WithUserAgent("test-agent"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img, err := r.Resolve(context.Background(), "/img/a.png")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Width != 8 || img.Height != 4 {
		t.Errorf("image size = %dx%d, want 8x4", img.Width, img.Height)
	}
	if img.Format != model.ImageFormatPNG {
		t.Errorf("Format = %v, want PNG", img.Format)
	}
	if img.Source != srv.URL+"/img/a.png" {
		t.Errorf("Source = %q, want %q", img.Source, srv.URL+"/img/a.png")
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent")
	}
}

func TestResolveFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r, _ := New(srv.URL)
	img, err := r.Resolve(context.Background(), "/missing.png")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Resolve() error = %v, want ErrFetch", err)
	}
	if img != nil {
		t.Errorf("Resolve() image = %v, want nil", img)
	}
}

func TestResolveTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	r, _ := New(srv.URL, WithMaxBytes(1024))
	if _, err := r.Resolve(context.Background(), "/big.png"); !errors.Is(err, ErrFetch) {
		t.Errorf("Resolve() error = %v, want ErrFetch", err)
	}
}

func TestResolveNotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<!DOCTYPE html><html><body>login</body></html>"))
	}))
	defer srv.Close()

	r, _ := New(srv.URL)
	if _, err := r.Resolve(context.Background(), "/a.png"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Resolve() error = %v, want ErrUnsupported", err)
	}
}

func TestResolveDataURI(t *testing.T) {
	data := pngBytes(t, 3, 2)
	r, _ := New("https://docs.example.com")

	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	img, err := r.Resolve(context.Background(), ref)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Errorf("image size = %dx%d, want 3x2", img.Width, img.Height)
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"base64", "data:text/plain;base64,aGVsbG8=", "hello", nil},
		{"base64 unpadded", "data:text/plain;base64,aGVsbG8", "hello", nil},
		{"base64 wrapped", "data:text/plain;base64,aGVs\nbG8=", "hello", nil},
		{"percent", "data:image/svg+xml,%3Csvg%3E", "<svg>", nil},
		{"uppercase scheme", "DATA:,abc", "abc", nil},
		{"no comma", "data:image/png;base64", "", ErrDecode},
		{"bad base64", "data:image/png;base64,***", "", ErrDecode},
		{"not data", "https://x", "", ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDataURI(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeDataURI() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDataURI() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeDataURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeDownscales(t *testing.T) {
	img, err := Decode(pngBytes(t, 400, 200), 100)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Width != 100 || img.Height != 50 {
		t.Errorf("image size = %dx%d, want 100x50", img.Width, img.Height)
	}

	img, err = Decode(pngBytes(t, 400, 200), 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Width != 400 {
		t.Errorf("Width = %d, want 400 with downscaling disabled", img.Width)
	}
}

func TestDecodeSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20" width="40" height="20">
  <rect x="0" y="0" width="40" height="20" fill="#ff0000"/>
</svg>`)

	img, err := Decode(svg, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Format != model.ImageFormatSVG {
		t.Errorf("Format = %v, want SVG", img.Format)
	}
	if img.Width != 40 || img.Height != 20 {
		t.Errorf("image size = %dx%d, want 40x20", img.Width, img.Height)
	}
	if _, err := png.Decode(bytes.NewReader(img.Data)); err != nil {
		t.Errorf("Data is not PNG: %v", err)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	data := pngBytes(t, 4, 4)
	if _, err := Decode(data[:20], 0); !errors.Is(err, ErrDecode) {
		t.Errorf("Decode(truncated) error = %v, want ErrDecode", err)
	}
}
