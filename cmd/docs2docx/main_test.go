package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/docs2docx"
	"github.com/tsawler/docs2docx/fetch"
	"github.com/tsawler/docs2docx/internal/config"
	"github.com/tsawler/docs2docx/tables"
)

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/intro":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><body><div class="theme-doc-markdown"><h1>Intro</h1><p>Hello.</p></div></body></html>`)
		case "/broken":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><body><div class="theme-doc-markdown"><table><tr><td rowspan="?">x</td></tr></table></div></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// invoke runs the command and returns its exit code and stderr.
func invoke(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String() + stderr.String()
}

func TestRunConvertsURLs(t *testing.T) {
	srv := newSite(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.docx")
	side := filepath.Join(dir, "side.txt")

	code, output := invoke(t, "", "--origin", srv.URL, "-o", out, "--side-file", side, srv.URL+"/intro")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; output:\n%s", code, ExitSuccess, output)
	}
	if !strings.Contains(output, "Converting page") {
		t.Errorf("progress not logged:\n%s", output)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a docx: %v", err)
	}
	zr.Close()
	if data, _ := os.ReadFile(side); !strings.Contains(string(data), "<h1>Intro</h1>") {
		t.Errorf("side file = %q", data)
	}
}

func TestRunReadsURLListFromStdin(t *testing.T) {
	srv := newSite(t)
	out := filepath.Join(t.TempDir(), "out.docx")

	code, output := invoke(t, "# list\n"+srv.URL+"/intro\n",
		"-q", "-i", "-", "--origin", srv.URL, "-o", out, "--no-side-file")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, output)
	}
	if strings.Contains(output, "Converting page") {
		t.Error("--quiet still logs progress")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunExitCodes(t *testing.T) {
	srv := newSite(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.docx")

	badConfig := filepath.Join(dir, "bad.yaml")
	os.WriteFile(badConfig, []byte("nonsense: true\n"), 0o644)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"--help"}, ExitSuccess},
		{"version", []string{"--version"}, ExitSuccess},
		{"unknown flag", []string{"--bogus"}, ExitUsage},
		{"quiet and verbose", []string{"-q", "-v"}, ExitUsage},
		{"bad config", []string{"-c", badConfig}, ExitUsage},
		{"missing config", []string{"-c", filepath.Join(dir, "none.yaml")}, ExitUsage},
		{"bad selector", []string{"-s", "div[", "https://a.example"}, ExitUsage},
		{"bad navigation", []string{"--navigation", "all", "https://a.example"}, ExitUsage},
		{"missing URL list", []string{"-i", filepath.Join(dir, "none.txt"), "-o", out}, ExitInput},
		{"fail fast", []string{"-q", "--fail-fast", "--no-side-file", "--origin", srv.URL, "-o", out, srv.URL + "/missing"}, ExitFetch},
		{"skipped page", []string{"-q", "--no-side-file", "--origin", srv.URL, "-o", out, srv.URL + "/missing"}, ExitSuccess},
		{"malformed span", []string{"-q", "--no-side-file", "--origin", srv.URL, "-o", out, srv.URL + "/broken"}, ExitInput},
		{"unwritable output", []string{"-q", "--no-side-file", "--origin", srv.URL, "-o", filepath.Join(dir, "no", "such", "dir", "x.docx"), srv.URL + "/intro"}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, output := invoke(t, "", tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d; output:\n%s", code, tt.want, output)
			}
		})
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	os.WriteFile(path, []byte("output: from-config.docx\nselector: article\nfetch:\n  timeout: 10s\n"), 0o644)

	flags, _, err := parseFlags([]string{"-c", path, "-o", "from-flag.docx", "--fail-fast", "--block-image-width", "4.5"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Output != "from-flag.docx" {
		t.Errorf("Output = %q, want flag value", cfg.Output)
	}
	if cfg.Selector != "article" {
		t.Errorf("Selector = %q, want config value", cfg.Selector)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want config value", cfg.Fetch.Timeout)
	}
	if !cfg.FailFast || cfg.Images.BlockWidth != 4.5 {
		t.Errorf("FailFast = %v, BlockWidth = %v", cfg.FailFast, cfg.Images.BlockWidth)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneral},
		{fmt.Errorf("x: %w", errUsage), ExitUsage},
		{fmt.Errorf("x: %w", config.ErrInvalid), ExitUsage},
		{fmt.Errorf("x: %w", docs2docx.ErrInput), ExitInput},
		{fmt.Errorf("x: %w", tables.ErrMalformedSpan), ExitInput},
		{fmt.Errorf("x: %w", fetch.ErrFetch), ExitFetch},
		{fmt.Errorf("x: %w", fetch.ErrBrowser), ExitFetch},
		{fmt.Errorf("x: %w", docs2docx.ErrOutput), ExitIO},
		{errors.Join(fmt.Errorf("x: %w", fetch.ErrFetch), docs2docx.ErrOutput), ExitFetch},
	}

	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
