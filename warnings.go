package docs2docx

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal issue.
type WarningKind int

const (
	// WarningPage means a page could not be fetched or parsed and was
	// skipped.
	WarningPage WarningKind = iota

	// WarningImage means an image was left out of the document.
	WarningImage
)

func (k WarningKind) String() string {
	switch k {
	case WarningPage:
		return "page"
	case WarningImage:
		return "image"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue met during a run. The document is still
// produced, without the affected page or image.
type Warning struct {
	Kind    WarningKind
	URL     string // page the issue occurred on
	Ref     string // image reference, for WarningImage
	Message string
	Err     error
}

func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(w.Message)
	if w.Ref != "" {
		fmt.Fprintf(&sb, " %q", w.Ref)
	}
	if w.URL != "" {
		sb.WriteString(" on ")
		sb.WriteString(w.URL)
	}
	if w.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(w.Err.Error())
	}
	return sb.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
