package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// chromePattern matches class/id names of navigation chrome that
// documentation generators place next to the article text.
var chromePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(breadcrumbs?|pagination-nav|pagination|toc|table-of-contents|` +
		`doc-footer|edit-this-page|last-updated|navbar|sidebar)([^a-z]|$)`)

// skipTag reports element types whose subtree never contributes content.
func skipTag(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Button:
		return true
	}
	return false
}

// skipped reports whether n and its subtree are left out of the output.
func (c *Converter) skipped(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if skipTag(n.DataAtom) {
		return true
	}
	// heading anchors
	if n.DataAtom == atom.A && hasClass(n, "hash-link") {
		return true
	}
	if c.opts.SpacerClass != "" && hasClass(n, c.opts.SpacerClass) {
		return true
	}
	return c.isChrome(n)
}

// isChrome applies the navigation exclusion mode.
func (c *Converter) isChrome(n *html.Node) bool {
	if c.opts.Navigation == NavigationExclusionNone {
		return false
	}

	switch n.DataAtom {
	case atom.Nav, atom.Aside:
		return true
	}
	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	}

	if c.opts.Navigation >= NavigationExclusionStandard {
		if class := getAttr(n, "class"); class != "" && chromePattern.MatchString(class) {
			return true
		}
		if id := getAttr(n, "id"); id != "" && chromePattern.MatchString(id) {
			return true
		}
	}
	return false
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether the class attribute lists name exactly.
func hasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

// classContains reports whether any class of n contains substr.
func classContains(n *html.Node, substr string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// findByClass returns the first descendant element of n with a class
// containing substr.
func findByClass(n *html.Node, substr string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if classContains(c, substr) {
			return c
		}
		if found := findByClass(c, substr); found != nil {
			return found
		}
	}
	return nil
}

// textContent returns the concatenated text of n, leaving out skipped
// subtrees. Line breaks become spaces.
func (c *Converter) textContent(n *html.Node) string {
	var sb strings.Builder
	c.textContentRecursive(n, &sb)
	return sb.String()
}

func (c *Converter) textContentRecursive(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if c.skipped(n) {
			return
		}
		if n.DataAtom == atom.Br {
			sb.WriteString(" ")
			return
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.textContentRecursive(ch, sb)
	}
}

// rawText returns the text of a code block verbatim, with <br> as newline.
func (c *Converter) rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTag(n.DataAtom) {
				return
			}
			if n.DataAtom == atom.Br {
				sb.WriteString("\n")
				return
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return sb.String()
}
