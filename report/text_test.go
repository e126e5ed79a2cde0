package report

import (
	"strings"
	"testing"

	"github.com/ZaguanLabs/tlaudit"
)

func sampleResult() *tlaudit.Result {
	chart := tlaudit.Categories{
		tlaudit.CategoryTitleSubtitle:      {{Text: "Revenue by Region", Section: "title"}},
		tlaudit.CategoryDisplayName:        {{Text: "Amount", NativeQueryRef: "Amount"}},
		tlaudit.CategoryMissingDisplayName: {{NativeQueryRef: "Region", Bucket: "Category"}},
	}
	button := tlaudit.Categories{
		tlaudit.CategoryButtonText: {{Text: "Back", Property: "text"}, {Text: "Go home", Property: "label"}},
	}
	return &tlaudit.Result{
		Visuals: []tlaudit.FileFindings{
			{File: "p1/visuals/chart/visual.json", Categories: chart},
			{File: "p2/visuals/button/visual.json", Categories: button},
		},
		Pages: []tlaudit.PageFinding{{PageID: "p1", DisplayName: "Sales Overview"}},
	}
}

func TestFormatFindings(t *testing.T) {
	want := strings.Join([]string{
		"TRANSLATION AUDIT — DETAILED FINDINGS",
		"=======================================================",
		"",
		"UNTRANSLATED PAGE NAMES (1):",
		`  p1: "Sales Overview"`,
		"",
		"File: p1/visuals/chart/visual.json",
		"  Title/Subtitle (1):",
		`    - "Revenue by Region"  [title]`,
		"  DisplayName (no target-lang chars) (1):",
		`    - "Amount"  (nqr: Amount)`,
		"  Missing displayName (1):",
		`    - nqr: "Region"  [bucket: Category]`,
		"",
		"File: p2/visuals/button/visual.json",
		"  Button text (2):",
		`    - "Back"`,
		`    - "Go home"`,
		"",
		"-------------------------------------------------------",
		"SUMMARY:",
		"  Page names: 1",
		"  Title/Subtitle: 1",
		"  DisplayName (no target-lang chars): 1",
		"  Missing displayName: 1",
		"  Button text: 2",
		"  TOTAL: 6",
		"",
	}, "\n")

	got := FormatFindings(sampleResult())
	if got != want {
		t.Errorf("FormatFindings mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatFindings_Clean(t *testing.T) {
	clean := &tlaudit.Result{Visuals: []tlaudit.FileFindings{}, Pages: []tlaudit.PageFinding{}}
	if got := FormatFindings(clean); got != "No suspected untranslated content found." {
		t.Errorf("unexpected clean output %q", got)
	}
	if got := FormatFindings(nil); got != NoFindingsMessage {
		t.Errorf("unexpected nil output %q", got)
	}
}

func TestFormatFindings_PagesOnly(t *testing.T) {
	r := &tlaudit.Result{Pages: []tlaudit.PageFinding{{PageID: "abc", DisplayName: "Details"}}}

	got := FormatFindings(r)
	if !strings.Contains(got, "UNTRANSLATED PAGE NAMES (1):\n  abc: \"Details\"\n") {
		t.Errorf("missing page section:\n%s", got)
	}
	if !strings.HasSuffix(got, "  Page names: 1\n  TOTAL: 1\n") {
		t.Errorf("unexpected summary:\n%s", got)
	}
	if strings.Contains(got, "File:") {
		t.Errorf("no file sections expected:\n%s", got)
	}
}

func TestFormatFindings_Idempotent(t *testing.T) {
	r := sampleResult()
	if FormatFindings(r) != FormatFindings(r) {
		t.Error("formatting the same result twice should give identical text")
	}
}

func TestFormatCoverage(t *testing.T) {
	fail := &tlaudit.CoverageReport{TotalProjections: 3, WithDisplayName: 2, Percent: 200.0 / 3, IssueCount: 9, Verdict: tlaudit.VerdictFail}

	want := strings.Join([]string{
		"TRANSLATION COVERAGE VALIDATION",
		"=======================================================",
		"",
		"Projections total: 3",
		"Projections with displayName: 2 (66.7%)",
		"Projections missing displayName: 1",
		"",
		"Total suspected untranslated strings: 9",
		"",
		"VERDICT: FAIL",
		"",
		"Run scan_english_remaining for details.",
	}, "\n")
	if got := FormatCoverage(fail); got != want {
		t.Errorf("FormatCoverage mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	pass := &tlaudit.CoverageReport{Verdict: tlaudit.VerdictPass}
	got := FormatCoverage(pass)
	if !strings.Contains(got, "Projections with displayName: 0 (0.0%)") {
		t.Errorf("zero projections should print 0.0%%:\n%s", got)
	}
	if !strings.HasSuffix(got, "VERDICT: PASS\n\nNo suspected untranslated content found!") {
		t.Errorf("unexpected PASS output:\n%s", got)
	}
}

func TestFormatMissing(t *testing.T) {
	if got := FormatMissing(nil); got != "All projections have displayName overrides." {
		t.Errorf("unexpected empty output %q", got)
	}

	got := FormatMissing([]tlaudit.MissingProjection{
		{File: "a/visual.json", Bucket: "Category", NativeQueryRef: "Region"},
		{File: "b/visual.json", Bucket: "Y", NativeQueryRef: "Sum(Sales)"},
	})
	want := "MISSING DISPLAYNAME: 2 projections\n\n" +
		"  a/visual.json  nqr: \"Region\"  [bucket: Category]\n" +
		"  b/visual.json  nqr: \"Sum(Sales)\"  [bucket: Y]"
	if got != want {
		t.Errorf("FormatMissing mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDiff(t *testing.T) {
	old := sampleResult()
	newer := &tlaudit.Result{
		Visuals: []tlaudit.FileFindings{old.Visuals[0]},
		Pages:   []tlaudit.PageFinding{{PageID: "p3", DisplayName: "Archive"}},
	}

	got := FormatDiff(tlaudit.DiffResults(old, newer))

	for _, want := range []string{
		"  Unchanged: 3\n",
		"  Added:     1\n",
		"  Resolved:  3\n",
		"  + page p3  Page name  \"Archive\"\n",
		"  - p2/visuals/button/visual.json  Button text  \"Back\"\n",
		"  - page p1  Page name  \"Sales Overview\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatDiff output missing %q:\n%s", want, got)
		}
	}

	same := FormatDiff(tlaudit.DiffResults(old, old))
	if !strings.Contains(same, "No changes since the baseline.") {
		t.Errorf("unexpected output for identical results:\n%s", same)
	}
}
