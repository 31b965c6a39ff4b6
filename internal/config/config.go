// Package config loads the optional YAML configuration of the docs2docx
// command. Unknown fields are rejected; command-line flags override
// loaded values.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/tsawler/docs2docx"
	"github.com/tsawler/docs2docx/htmldoc"
	"github.com/tsawler/docs2docx/resolver"
)

// MaxInputSize limits the configuration file size.
const MaxInputSize = 1 << 20

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalid        = errors.New("invalid config")
)

// Config holds the settings of one run.
type Config struct {
	Input    string       `yaml:"input"`    // URL list
	Output   string       `yaml:"output"`   // .docx path
	SideFile string       `yaml:"sideFile"` // raw region dump, empty disables
	Origin   string       `yaml:"origin"`
	Selector string       `yaml:"selector"`
	FailFast bool         `yaml:"failFast"`
	Fetch    FetchConfig  `yaml:"fetch"`
	Images   ImageConfig  `yaml:"images"`
	Markup   MarkupConfig `yaml:"markup"`
}

// FetchConfig defines page retrieval options.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`  // per page, 0 = none
	Encoding  string        `yaml:"encoding"` // forced encoding label, empty = detect
	UserAgent string        `yaml:"userAgent"`
	Browser   bool          `yaml:"browser"` // render with headless Chrome
}

// ImageConfig defines image sizing.
type ImageConfig struct {
	MaxPixelWidth int     `yaml:"maxPixelWidth"` // downscale threshold, 0 = never
	BlockWidth    float64 `yaml:"blockWidth"`    // inches
	CellWidth     float64 `yaml:"cellWidth"`     // inches
}

// MarkupConfig names the classes the converter recognizes.
type MarkupConfig struct {
	UITextClass            string `yaml:"uiTextClass"`
	AdmonitionClass        string `yaml:"admonitionClass"`
	AdmonitionHeadingClass string `yaml:"admonitionHeadingClass"`
	AdmonitionContentClass string `yaml:"admonitionContentClass"`
	CodeBlockClass         string `yaml:"codeBlockClass"`
	SpacerClass            string `yaml:"spacerClass"`
	Navigation             string `yaml:"navigation"` // none, explicit, standard
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	m := htmldoc.DefaultOptions()
	return &Config{
		Input:    "urls.txt",
		Output:   docs2docx.DefaultOutput,
		SideFile: docs2docx.DefaultSideFile,
		Origin:   m.Origin,
		Selector: docs2docx.DefaultSelector,
		Images: ImageConfig{
			MaxPixelWidth: resolver.DefaultMaxPixelWidth,
			BlockWidth:    m.BlockImageWidth,
			CellWidth:     m.CellImageWidth,
		},
		Markup: MarkupConfig{
			UITextClass:            m.UITextClass,
			AdmonitionClass:        m.AdmonitionClass,
			AdmonitionHeadingClass: m.AdmonitionHeadingClass,
			AdmonitionContentClass: m.AdmonitionContentClass,
			CodeBlockClass:         m.CodeBlockClass,
			SpacerClass:            m.SpacerClass,
			Navigation:             m.Navigation.String(),
		},
	}
}

// Load reads path over the defaults, so a file only needs the fields it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}

	cfg := Default()
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	if _, err := resolver.ParseOrigin(c.Origin); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Selector == "" {
		return fmt.Errorf("%w: selector is empty", ErrInvalid)
	}
	if _, err := cascadia.Compile(c.Selector); err != nil {
		return fmt.Errorf("%w: selector %q: %v", ErrInvalid, c.Selector, err)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("%w: fetch.timeout is negative", ErrInvalid)
	}
	if c.Fetch.Encoding != "" {
		if _, err := htmlindex.Get(c.Fetch.Encoding); err != nil {
			return fmt.Errorf("%w: unknown encoding %q", ErrInvalid, c.Fetch.Encoding)
		}
	}
	if c.Images.MaxPixelWidth < 0 {
		return fmt.Errorf("%w: images.maxPixelWidth is negative", ErrInvalid)
	}
	if c.Images.BlockWidth <= 0 || c.Images.CellWidth <= 0 {
		return fmt.Errorf("%w: image widths must be positive", ErrInvalid)
	}
	if _, err := htmldoc.ParseNavigationExclusionMode(c.Markup.Navigation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// HTMLOptions returns the markup options the config describes.
func (c *Config) HTMLOptions() htmldoc.Options {
	nav, _ := htmldoc.ParseNavigationExclusionMode(c.Markup.Navigation)
	return htmldoc.Options{
		Origin:                 c.Origin,
		UITextClass:            c.Markup.UITextClass,
		AdmonitionClass:        c.Markup.AdmonitionClass,
		AdmonitionHeadingClass: c.Markup.AdmonitionHeadingClass,
		AdmonitionContentClass: c.Markup.AdmonitionContentClass,
		CodeBlockClass:         c.Markup.CodeBlockClass,
		SpacerClass:            c.Markup.SpacerClass,
		BlockImageWidth:        c.Images.BlockWidth,
		CellImageWidth:         c.Images.CellWidth,
		Navigation:             nav,
	}
}

// Apply configures conv from the config.
func (c *Config) Apply(conv *docs2docx.Converter) *docs2docx.Converter {
	conv = conv.
		Markup(c.HTMLOptions()).
		Origin(c.Origin).
		Selector(c.Selector).
		SideFile(c.SideFile).
		Output(c.Output).
		Timeout(c.Fetch.Timeout).
		Encoding(c.Fetch.Encoding).
		UserAgent(c.Fetch.UserAgent).
		MaxPixelWidth(c.Images.MaxPixelWidth)
	if c.FailFast {
		conv = conv.FailFast()
	}
	if c.Fetch.Browser {
		conv = conv.Browser()
	}
	return conv
}
