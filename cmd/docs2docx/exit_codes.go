package main

import (
	"errors"
	"os"

	"github.com/tsawler/docs2docx"
	"github.com/tsawler/docs2docx/fetch"
	"github.com/tsawler/docs2docx/internal/config"
	"github.com/tsawler/docs2docx/tables"
)

// Exit codes for the docs2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Output or side file not writable
	ExitFetch   = 4 // Page could not be fetched (with --fail-fast) or browser errors
	ExitInput   = 5 // URL list unreadable or malformed page content
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalid) ||
		errors.Is(err, fetch.ErrEncoding) {
		return ExitUsage
	}

	// Input errors (exit 5)
	if errors.Is(err, docs2docx.ErrInput) ||
		errors.Is(err, tables.ErrMalformedSpan) {
		return ExitInput
	}

	// Fetch errors (exit 4)
	if errors.Is(err, fetch.ErrFetch) ||
		errors.Is(err, fetch.ErrBrowser) {
		return ExitFetch
	}

	// I/O errors (exit 3)
	if errors.Is(err, docs2docx.ErrOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
