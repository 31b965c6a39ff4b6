package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marker glyphs substituted for mojibake check and cross marks.
const (
	OKMarker    = "○"
	NotOKMarker = "×"
)

// mojibake maps UTF-8 sequences that were decoded as Windows-1252.
// strings.Replacer prefers the earliest pair at a given offset, so the
// longer sequences must come before the bare "â".
var mojibake = strings.NewReplacer(
	"â\u00ad•", OKMarker, // U+2B55 heavy large circle
	"âœ…", OKMarker, // U+2705 check mark button
	"âœ“", OKMarker, // U+2713 check mark
	"âœ”", OKMarker, // U+2714 heavy check mark
	"â\u009dŒ", NotOKMarker, // U+274C cross mark, 0x9D kept as C1 control
	"âŒ", NotOKMarker, // U+274C cross mark, 0x9D dropped
	"âœ—", NotOKMarker, // U+2717 ballot x
	"âœ˜", NotOKMarker, // U+2718 heavy ballot x
	"â€‹", " ", // U+200B zero width space
	"\u200b", "",
	"â", " ",
)

const maxPasses = 4

// Normalize strips ASCII control characters, replaces mojibake markers,
// composes the result to NFC and trims surrounding whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = StripControl(s)
	// Composition can produce a new "â" and removing U+200B can join a
	// base letter with a combining mark, so repeat until stable.
	for i := 0; i < maxPasses; i++ {
		next := mojibake.Replace(norm.NFC.String(s))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// StripControl removes ASCII control characters (0x00-0x1F and 0x7F).
func StripControl(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if isControl(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isControl(s[i]) {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// StripControlKeepLines is StripControl for preformatted text: newlines are
// kept along with tabs, and carriage returns are dropped.
func StripControlKeepLines(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b == '\n' || b == '\t':
			sb.WriteByte(b)
		case !isControl(b):
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
