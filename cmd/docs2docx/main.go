// Command docs2docx converts documentation pages into a single .docx file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tsawler/docs2docx"
	"github.com/tsawler/docs2docx/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns its exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, urls, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}
	if flags.common.version {
		fmt.Fprintln(stdout, "docs2docx", Version)
		return ExitSuccess
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	log := newLogger(stderr, flags.common.verbose, flags.common.quiet)
	defer log.Sync() //nolint:errcheck

	if len(urls) == 0 {
		urls, err = readURLs(cfg.Input, stdin)
		if err != nil {
			log.Error("Cannot read URL list", zap.String("input", cfg.Input), zap.Error(err))
			return exitCodeFor(err)
		}
	}

	log.Info("Starting conversion",
		zap.Int("pages", len(urls)),
		zap.String("output", cfg.Output))

	conv := cfg.Apply(docs2docx.New(urls...).Logger(log))
	warnings, err := conv.Run(ctx)
	if err != nil {
		log.Error("Conversion aborted", zap.Error(err))
		return exitCodeFor(err)
	}

	log.Info("Document written",
		zap.String("output", cfg.Output),
		zap.Int("warnings", len(warnings)))
	return ExitSuccess
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(flags *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.common.config != "" {
		loaded, err := config.Load(flags.common.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readURLs reads the URL list from path, or from stdin when path is "-".
func readURLs(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", docs2docx.ErrInput, err)
		}
		defer f.Close()
		r = f
	}
	urls, err := docs2docx.ReadURLs(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", docs2docx.ErrInput, path, err)
	}
	return urls, nil
}
