package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/tsawler/docs2docx/htmldoc"
	"github.com/tsawler/docs2docx/internal/config"
)

// errUsage marks invalid command lines.
var errUsage = errors.New("invalid usage")

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// fetchFlags holds page retrieval flags.
type fetchFlags struct {
	timeout   time.Duration
	encoding  string
	userAgent string
	browser   bool
	failFast  bool
}

// imageFlags holds image sizing flags.
type imageFlags struct {
	maxPixelWidth int
	blockWidth    float64
	cellWidth     float64
}

// runFlags holds all flags of a run.
type runFlags struct {
	common     commonFlags
	input      string
	output     string
	sideFile   string
	origin     string
	selector   string
	navigation string
	fetch      fetchFlags
	images     imageFlags

	fs *flag.FlagSet
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

// addFetchFlags adds page retrieval flags to a FlagSet.
func addFetchFlags(fs *flag.FlagSet, f *fetchFlags) {
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-page fetch timeout (e.g. 30s, 0 = none)")
	fs.StringVar(&f.encoding, "encoding", "", "force page encoding (e.g. utf-8, windows-1252)")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent for page and image requests")
	fs.BoolVar(&f.browser, "browser", false, "render pages in headless Chrome")
	fs.BoolVar(&f.failFast, "fail-fast", false, "abort when a page cannot be fetched")
}

// addImageFlags adds image sizing flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.IntVar(&f.maxPixelWidth, "max-pixel-width", 0, "downscale images wider than this (0 = never)")
	fs.Float64Var(&f.blockWidth, "block-image-width", 0, "display width of block images in inches")
	fs.Float64Var(&f.cellWidth, "cell-image-width", 0, "display width of table cell images in inches")
}

// parseFlags parses the command line (without the program name) and returns
// the positional URLs.
func parseFlags(args []string, stderr io.Writer) (*runFlags, []string, error) {
	fs := flag.NewFlagSet("docs2docx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &runFlags{fs: fs}

	fs.StringVarP(&f.input, "input", "i", "", `URL list file, one per line ("-" = stdin)`)
	fs.StringVarP(&f.output, "output", "o", "", "output .docx path")
	fs.StringVar(&f.sideFile, "side-file", "", `raw content dump ("" with --no-side-file disables)`)
	fs.StringVar(&f.origin, "origin", "", "site origin for relative links and images")
	fs.StringVarP(&f.selector, "selector", "s", "", "CSS selector of the content region")
	fs.StringVar(&f.navigation, "navigation", "", "navigation filtering: none, explicit, standard")
	fs.Bool("no-side-file", false, "do not write the side file")

	addCommonFlags(fs, &f.common)
	addFetchFlags(fs, &f.fetch)
	addImageFlags(fs, &f.images)

	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", errUsage)
	}
	return f, fs.Args(), nil
}

// apply overrides cfg with every flag set on the command line.
func (f *runFlags) apply(cfg *config.Config) {
	set := f.fs.Changed
	if set("input") {
		cfg.Input = f.input
	}
	if set("output") {
		cfg.Output = f.output
	}
	if set("side-file") {
		cfg.SideFile = f.sideFile
	}
	if noSide, _ := f.fs.GetBool("no-side-file"); noSide {
		cfg.SideFile = ""
	}
	if set("origin") {
		cfg.Origin = f.origin
	}
	if set("selector") {
		cfg.Selector = f.selector
	}
	if set("navigation") {
		cfg.Markup.Navigation = f.navigation
	}
	if set("timeout") {
		cfg.Fetch.Timeout = f.fetch.timeout
	}
	if set("encoding") {
		cfg.Fetch.Encoding = f.fetch.encoding
	}
	if set("user-agent") {
		cfg.Fetch.UserAgent = f.fetch.userAgent
	}
	if set("browser") {
		cfg.Fetch.Browser = f.fetch.browser
	}
	if set("fail-fast") {
		cfg.FailFast = f.fetch.failFast
	}
	if set("max-pixel-width") {
		cfg.Images.MaxPixelWidth = f.images.maxPixelWidth
	}
	if set("block-image-width") {
		cfg.Images.BlockWidth = f.images.blockWidth
	}
	if set("cell-image-width") {
		cfg.Images.CellWidth = f.images.cellWidth
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `Usage: docs2docx [flags] [URL...]

Converts documentation pages into one .docx file. Pages are read from the
URLs given as arguments, or from the URL list file (default urls.txt).

Navigation modes: %s, %s, %s

Flags:
`, htmldoc.NavigationExclusionNone, htmldoc.NavigationExclusionExplicit, htmldoc.NavigationExclusionStandard)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Exit codes:
  %d  success
  %d  general error
  %d  invalid flags or config
  %d  output not writable
  %d  page fetch failed
  %d  URL list unreadable or malformed page content
`, ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitFetch, ExitInput)
}
