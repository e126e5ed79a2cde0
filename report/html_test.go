package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/tlaudit"
)

func renderHTML(t *testing.T, result *tlaudit.Result) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteHTML(&buf, result, Meta{TargetLanguage: "sv-SE"}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40s", buf.String())
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return doc
}

func TestWriteHTML(t *testing.T) {
	doc := renderHTML(t, sampleResult())

	if got := doc.Find("title").Text(); got != "Translation audit" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("p.meta").Text(); !strings.Contains(got, "Swedish (Sweden)") {
		t.Errorf("meta line = %q", got)
	}

	if n := doc.Find("section.file").Length(); n != 2 {
		t.Errorf("expected 2 file sections, got %d", n)
	}

	chart := doc.Find(`section[data-file="p1/visuals/chart/visual.json"]`)
	if chart.Length() != 1 {
		t.Fatal("chart section not found")
	}
	if got := chart.Find(`ul[data-category="title_subtitle"] li`).First().Contents().First().Text(); got != "Revenue by Region" {
		t.Errorf("title finding = %q", got)
	}
	if got := chart.Find(`ul[data-category="missing_displayname"] li .context`).Text(); got != "bucket: Category" {
		t.Errorf("missing context = %q", got)
	}

	if got := doc.Find(`#pages li[data-page="p1"]`).Length(); got != 1 {
		t.Errorf("page item count = %d", got)
	}

	lastRow := doc.Find("#summary tr").Last()
	if got := lastRow.Find("td").Last().Text(); got != "6" {
		t.Errorf("summary total = %q, want 6", got)
	}
}

func TestWriteHTML_EscapesText(t *testing.T) {
	r := &tlaudit.Result{Pages: []tlaudit.PageFinding{{PageID: "p1", DisplayName: "<script>alert(1)</script>"}}}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, r, Meta{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert") {
		t.Error("finding text must be escaped")
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("script").Length() != 0 {
		t.Error("no script element should be rendered")
	}
}

func TestWriteHTML_Clean(t *testing.T) {
	doc := renderHTML(t, &tlaudit.Result{})

	if got := doc.Find("#clean").Text(); got != NoFindingsMessage {
		t.Errorf("clean message = %q", got)
	}
	if doc.Find("#summary").Length() != 0 {
		t.Error("a clean report has no summary table")
	}
}
