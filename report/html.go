package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ZaguanLabs/tlaudit"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse}
td,th{border:1px solid #ccc;padding:4px 8px;text-align:left}
.context{color:#666;margin-left:.5em}
.verdict-pass{color:#1a7f37}
.verdict-fail{color:#cf222e}`

// WriteHTML renders the findings report as a standalone HTML page.
func WriteHTML(w io.Writer, result *tlaudit.Result, meta Meta) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), "Translation audit"))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), "Translation audit"))
	if meta.TargetLanguage != "" {
		body.AppendChild(withText(element(atom.P, attr("class", "meta")),
			fmt.Sprintf("Target language: %s (%s)", meta.TargetLanguage, tlaudit.GetLanguageName(meta.TargetLanguage))))
	}

	if result == nil || result.Clean() {
		body.AppendChild(withText(element(atom.P, attr("id", "clean")), NoFindingsMessage))
		return html.Render(w, doc)
	}

	body.AppendChild(summaryTable(result))

	if len(result.Pages) > 0 {
		section := element(atom.Section, attr("id", "pages"))
		section.AppendChild(withText(element(atom.H2), fmt.Sprintf("Untranslated page names (%d)", len(result.Pages))))
		list := element(atom.Ul)
		for _, p := range result.Pages {
			item := withText(element(atom.Li, attr("data-page", p.PageID)), p.DisplayName)
			item.AppendChild(withText(element(atom.Span, attr("class", "context")), p.PageID))
			list.AppendChild(item)
		}
		section.AppendChild(list)
		body.AppendChild(section)
	}

	for _, vf := range result.Visuals {
		body.AppendChild(fileSection(vf))
	}

	return html.Render(w, doc)
}

func summaryTable(result *tlaudit.Result) *html.Node {
	table := element(atom.Table, attr("id", "summary"))
	header := element(atom.Tr)
	header.AppendChild(withText(element(atom.Th), "Category"))
	header.AppendChild(withText(element(atom.Th), "Count"))
	table.AppendChild(header)

	addRow := func(label string, n int) {
		row := element(atom.Tr)
		row.AppendChild(withText(element(atom.Td), label))
		row.AppendChild(withText(element(atom.Td), strconv.Itoa(n)))
		table.AppendChild(row)
	}

	if len(result.Pages) > 0 {
		addRow("Page names", len(result.Pages))
	}
	totals := result.Totals()
	for _, cat := range tlaudit.AllCategories {
		if totals[cat] > 0 {
			addRow(cat.Label(), totals[cat])
		}
	}
	addRow("TOTAL", result.IssueCount())
	return table
}

func fileSection(vf tlaudit.FileFindings) *html.Node {
	section := element(atom.Section, attr("class", "file"), attr("data-file", vf.File))
	section.AppendChild(withText(element(atom.H3), vf.File))

	for _, cat := range tlaudit.AllCategories {
		items := vf.Categories.Items(cat)
		if len(items) == 0 {
			continue
		}
		section.AppendChild(withText(element(atom.H4), fmt.Sprintf("%s (%d)", cat.Label(), len(items))))
		list := element(atom.Ul, attr("data-category", string(cat)))
		for _, f := range items {
			list.AppendChild(findingItem(f))
		}
		section.AppendChild(list)
	}
	return section
}

func findingItem(f tlaudit.Finding) *html.Node {
	if f.Text == "" {
		item := withText(element(atom.Li), f.NativeQueryRef)
		item.AppendChild(withText(element(atom.Span, attr("class", "context")), "bucket: "+f.Bucket))
		return item
	}

	item := withText(element(atom.Li), f.Text)
	context := ""
	switch {
	case f.Section != "":
		context = f.Section
	case f.NativeQueryRef != "":
		context = "nqr: " + f.NativeQueryRef
	case f.Property != "":
		context = f.Property
	}
	if context != "" {
		item.AppendChild(withText(element(atom.Span, attr("class", "context")), context))
	}
	return item
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
