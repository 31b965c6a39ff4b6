package htmldoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/docs2docx/model"
	"github.com/tsawler/docs2docx/tables"
)

func TestConvertSkippedBlocks(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"rule", `<hr>`},
		{"spacer", `<div class="margin-bottom--lg"><p>Tags: install</p></div>`},
		{"script", `<script>var x = 1;</script>`},
		{"empty paragraph", `<p>  </p>`},
		{"whitespace", "\n   \n"},
		{"comment", `<!-- note -->`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustConvert(t, tt.html)
			if doc.Len() != 0 {
				t.Errorf("Convert() produced %d blocks, want 0", doc.Len())
			}
		})
	}
}

func TestConvertHeadings(t *testing.T) {
	doc := mustConvert(t, `<h1>Guide</h1><h3 class="anchor" id="setup">Set up<a class="hash-link" href="#setup">&#8203;</a></h3><h6>Deep</h6>`)

	headings := doc.Headings()
	if len(headings) != 3 {
		t.Fatalf("Headings() = %d, want 3", len(headings))
	}
	tests := []struct {
		text  string
		level int
	}{
		{"Guide", 1},
		{"Set up", 3},
		{"Deep", 6},
	}
	for i, tt := range tests {
		if headings[i].Text != tt.text || headings[i].Level != tt.level {
			t.Errorf("heading %d = %q level %d, want %q level %d",
				i, headings[i].Text, headings[i].Level, tt.text, tt.level)
		}
	}
}

func TestConvertBareText(t *testing.T) {
	t.Run("joins open paragraph", func(t *testing.T) {
		doc := mustConvert(t, `<p>first</p>second <strong>bold</strong>`)
		if doc.Len() != 1 {
			t.Fatalf("Convert() produced %d blocks, want 1", doc.Len())
		}
		if got := paragraphAt(t, doc, 0).GetText(); got != "first second bold" {
			t.Errorf("text = %q, want %q", got, "first second bold")
		}
	})

	t.Run("starts paragraph after heading", func(t *testing.T) {
		doc := mustConvert(t, `<h2>Title</h2>loose text`)
		if doc.Len() != 2 {
			t.Fatalf("Convert() produced %d blocks, want 2", doc.Len())
		}
		if got := paragraphAt(t, doc, 1).GetText(); got != "loose text" {
			t.Errorf("text = %q, want %q", got, "loose text")
		}
	})

	t.Run("inside container", func(t *testing.T) {
		doc := mustConvert(t, `<div><section>a <a href="/x">link</a></section></div>`)
		p := paragraphAt(t, doc, 0)
		if got := runKinds(p); !equalStrings(got, []string{"Text:a ", "Link:link"}) {
			t.Errorf("runs = %q", got)
		}
	})
}

func TestConvertLists(t *testing.T) {
	doc := mustConvert(t, `
<ul>
  <li>apple</li>
  <li>banana
    <ol>
      <li>ripe</li>
      <li><p>green</p></li>
    </ol>
  </li>
</ul>
<ol><li>again</li></ol>`)

	want := []struct {
		style model.ParagraphStyle
		text  string
		level int
	}{
		{model.StyleListBullet, "apple", 0},
		{model.StyleListBullet, "banana", 0},
		{model.StyleListNumber, "ripe", 1},
		{model.StyleListNumber, "green", 1},
		{model.StyleListNumber, "again", 0},
	}
	if doc.Len() != len(want) {
		t.Fatalf("Convert() produced %d blocks, want %d", doc.Len(), len(want))
	}
	for i, w := range want {
		p := paragraphAt(t, doc, i)
		if p.Style != w.style || p.GetText() != w.text || p.Level != w.level {
			t.Errorf("item %d = %v %q level %d, want %v %q level %d",
				i, p.Style, p.GetText(), p.Level, w.style, w.text, w.level)
		}
	}

	outer := paragraphAt(t, doc, 0).ListID
	nested := paragraphAt(t, doc, 2).ListID
	second := paragraphAt(t, doc, 4).ListID
	if paragraphAt(t, doc, 1).ListID != outer {
		t.Error("items of one list should share a ListID")
	}
	if nested == outer || second == nested {
		t.Errorf("ListIDs outer=%d nested=%d second=%d, want distinct lists", outer, nested, second)
	}
}

func TestConvertListItemBlocks(t *testing.T) {
	doc := mustConvert(t, `<ul><li>run this<pre>make</pre></li></ul>`)
	if doc.Len() != 2 {
		t.Fatalf("Convert() produced %d blocks, want 2", doc.Len())
	}
	if p := paragraphAt(t, doc, 1); p.Style != model.StyleCode || p.GetText() != "make" {
		t.Errorf("block 1 = %v %q, want Code %q", p.Style, p.GetText(), "make")
	}
}

func TestConvertAdmonition(t *testing.T) {
	doc := mustConvert(t, `
<div class="theme-admonition theme-admonition-note admonition_xJq3 alert alert--secondary">
  <div class="admonitionHeading_Gvgb"><span class="admonitionIcon_Rf37"><svg><path d="M0"></path></svg></span>note</div>
  <div class="admonitionContent_BuS1"><p>Read this first.</p><ul><li>one</li></ul></div>
</div>`)

	if doc.Len() != 3 {
		t.Fatalf("Convert() produced %d blocks, want 3", doc.Len())
	}
	label := paragraphAt(t, doc, 0)
	if label.Style != model.StyleAdmonition || label.GetText() != "[note]" {
		t.Errorf("label = %v %q, want Admonition %q", label.Style, label.GetText(), "[note]")
	}
	if got := paragraphAt(t, doc, 1).GetText(); got != "Read this first." {
		t.Errorf("content = %q", got)
	}
	if got := paragraphAt(t, doc, 2).Style; got != model.StyleListBullet {
		t.Errorf("block 2 style = %v, want ListBullet", got)
	}
}

func TestConvertDetails(t *testing.T) {
	doc := mustConvert(t, `<details><summary>More <strong>info</strong></summary><div><p>Hidden text</p></div></details>`)

	if doc.Len() != 2 {
		t.Fatalf("Convert() produced %d blocks, want 2", doc.Len())
	}
	summary := paragraphAt(t, doc, 0)
	if summary.Style != model.StyleSummary || summary.GetText() != "More info" {
		t.Errorf("summary = %v %q", summary.Style, summary.GetText())
	}
	if got := paragraphAt(t, doc, 1).GetText(); got != "Hidden text" {
		t.Errorf("body = %q", got)
	}
}

func TestConvertCodeBlock(t *testing.T) {
	doc := mustConvert(t, `<div class="language-bash theme-code-block"><div><pre tabindex="0"><code>`+
		`<span class="token-line"><span>cd  /opt</span><br></span>`+
		`<span class="token-line"><span>	ls -al</span><br></span>`+
		`</code></pre><div><button aria-label="Copy">copy</button></div></div></div>`)

	if doc.Len() != 1 {
		t.Fatalf("Convert() produced %d blocks, want 1", doc.Len())
	}
	p := paragraphAt(t, doc, 0)
	if p.Style != model.StyleCode {
		t.Errorf("style = %v, want Code", p.Style)
	}
	want := []string{"Code:cd  /opt", "Break:", "Code:\tls -al"}
	if got := runKinds(p); !equalStrings(got, want) {
		t.Errorf("runs = %q, want %q", got, want)
	}
}

func TestConvertPreKeepsWhitespace(t *testing.T) {
	doc := mustConvert(t, "<pre>\nfunc f() {\n\treturn  1   \n}\n\n</pre>")

	if doc.Len() != 1 {
		t.Fatalf("Convert() produced %d blocks, want 1", doc.Len())
	}
	want := []string{"Code:func f() {", "Break:", "Code:\treturn  1   ", "Break:", "Code:}"}
	if got := runKinds(paragraphAt(t, doc, 0)); !equalStrings(got, want) {
		t.Errorf("runs = %q, want %q", got, want)
	}
}

func TestConvertFigure(t *testing.T) {
	doc := mustConvert(t, `<p>text</p><img src="/img/arch.png" alt="architecture">`)

	if doc.Len() != 2 {
		t.Fatalf("Convert() produced %d blocks, want 2", doc.Len())
	}
	fig, ok := doc.Blocks[1].(*model.Figure)
	if !ok {
		t.Fatalf("block 1 is %v, want Figure", doc.Blocks[1].Kind())
	}
	if fig.Width != 5.0 || fig.Image.Source != "/img/arch.png" {
		t.Errorf("figure = %+v", fig)
	}
}

func TestConvertTable(t *testing.T) {
	doc := mustConvert(t, `
<table>
  <thead><tr><th>Name</th><th colspan="2">Value</th></tr></thead>
  <tbody>
    <tr><td rowspan="2">cpu</td><td>user</td><td><img src="/img/ok.png"></td></tr>
    <tr><td>system</td><td>5%</td></tr>
  </tbody>
</table>
<p>after</p>`)

	tbls := doc.Tables()
	if len(tbls) != 1 {
		t.Fatalf("Tables() = %d, want 1", len(tbls))
	}
	tbl := tbls[0]
	if tbl.RowCount() != 3 || tbl.ColCount() != 3 {
		t.Fatalf("table = %dx%d, want 3x3", tbl.RowCount(), tbl.ColCount())
	}
	if got := tbl.HeaderRows(); got != 1 {
		t.Errorf("HeaderRows() = %d, want 1", got)
	}
	if c := tbl.Cell(0, 1); c.ColSpan != 2 || c.Paragraph.GetText() != "Value" {
		t.Errorf("Cell(0, 1) = span %d text %q", c.ColSpan, c.Paragraph.GetText())
	}
	if c := tbl.Cell(1, 0); c.RowSpan != 2 {
		t.Errorf("Cell(1, 0).RowSpan = %d, want 2", c.RowSpan)
	}
	if !tbl.Cell(2, 0).Covered {
		t.Error("Cell(2, 0) should be covered")
	}
	if got := tbl.Cell(2, 1).Paragraph.GetText(); got != "system" {
		t.Errorf("Cell(2, 1) = %q, want system", got)
	}

	img := tbl.Cell(1, 2).Paragraph.LastRun()
	if img == nil || img.Kind != model.RunImage || img.Width != 1.0 {
		t.Errorf("Cell(1, 2) should hold a 1.0in image, got %+v", img)
	}
	if got := paragraphAt(t, doc, 1).GetText(); got != "after" {
		t.Errorf("block after table = %q", got)
	}
}

func TestConvertTableWithoutRows(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no rows", `<table><caption>empty</caption></table>`},
		{"rows without cells", `<table><tr></tr><tr></tr></table>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustConvert(t, tt.body)
			if doc.Len() != 0 || len(doc.Tables()) != 0 {
				t.Errorf("Convert() produced %d blocks, %d tables, want 0", doc.Len(), len(doc.Tables()))
			}
		})
	}
}

func TestConvertMalformedSpan(t *testing.T) {
	doc, _, err := convert(t, `<p>kept</p><table><tr><td rowspan="two">x</td></tr></table><p>never</p>`,
		testOptions(), &fakeImages{}, nil)

	if !errors.Is(err, tables.ErrMalformedSpan) {
		t.Fatalf("Convert() error = %v, want ErrMalformedSpan", err)
	}
	if doc.Len() != 1 || paragraphAt(t, doc, 0).GetText() != "kept" {
		t.Errorf("document = %d blocks, want only the paragraph before the table", doc.Len())
	}
}

func TestConvertNavigationExclusion(t *testing.T) {
	body := `<nav class="pagination-nav"><a href="/prev">Previous</a></nav>` +
		`<div class="theme-doc-breadcrumbs">Home</div><p>content</p>`

	tests := []struct {
		mode NavigationExclusionMode
		want int
	}{
		{NavigationExclusionNone, 2},
		{NavigationExclusionExplicit, 2},
		{NavigationExclusionStandard, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			opts := testOptions()
			opts.Navigation = tt.mode
			doc, _, err := convert(t, body, opts, nil, nil)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if doc.Len() != tt.want {
				t.Errorf("Convert() produced %d blocks, want %d: %q", doc.Len(), tt.want, doc.ExtractText())
			}
		})
	}
}

func TestParseNavigationExclusionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    NavigationExclusionMode
		wantErr bool
	}{
		{"", NavigationExclusionNone, false},
		{"none", NavigationExclusionNone, false},
		{"Explicit", NavigationExclusionExplicit, false},
		{" standard ", NavigationExclusionStandard, false},
		{"aggressive", NavigationExclusionNone, true},
	}

	for _, tt := range tests {
		got, err := ParseNavigationExclusionMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNavigationExclusionMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNavigationExclusionMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && got.String() != strings.ToLower(strings.TrimSpace(tt.in)) {
			t.Errorf("String() = %q does not round-trip %q", got.String(), tt.in)
		}
	}
}
