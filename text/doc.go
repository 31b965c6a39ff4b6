// Package text cleans text extracted from HTML documentation pages.
//
// Pages converted by this module were authored in an editor that saved
// check and cross marks through a mis-declared code page, so the extracted
// text can carry mojibake such as "â­•" instead of "⭕". [Normalize] removes
// control characters, maps the known mojibake sequences onto the circle and
// cross glyphs used as "ok" and "not ok" markers, and trims the result:
//
//	clean := text.Normalize(node.Data)
//
// Normalize is total and idempotent, so it can be applied to text that has
// already been cleaned.
//
// [DetectDirection] reports whether a string is dominated by right-to-left
// script, which the document writer uses to mark bidirectional paragraphs.
package text
