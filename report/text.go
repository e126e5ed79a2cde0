// Package report renders scan results for people and machines.
package report

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/tlaudit"
)

const ruleWidth = 55

// NoFindingsMessage is the whole findings report when a scan is clean.
const NoFindingsMessage = "No suspected untranslated content found."

// FormatFindings renders a scan result as the detailed audit report.
func FormatFindings(result *tlaudit.Result) string {
	if result == nil || result.Clean() {
		return NoFindingsMessage
	}

	lines := []string{
		"TRANSLATION AUDIT — DETAILED FINDINGS",
		strings.Repeat("=", ruleWidth),
		"",
	}

	if len(result.Pages) > 0 {
		lines = append(lines, fmt.Sprintf("UNTRANSLATED PAGE NAMES (%d):", len(result.Pages)))
		for _, p := range result.Pages {
			lines = append(lines, fmt.Sprintf("  %s: \"%s\"", p.PageID, p.DisplayName))
		}
		lines = append(lines, "")
	}

	totals := make(map[tlaudit.Category]int, len(tlaudit.AllCategories))
	for _, vf := range result.Visuals {
		var fileLines []string
		for _, cat := range tlaudit.AllCategories {
			items := vf.Categories.Items(cat)
			if len(items) == 0 {
				continue
			}
			totals[cat] += len(items)
			fileLines = append(fileLines, fmt.Sprintf("  %s (%d):", cat.Label(), len(items)))
			for _, f := range items {
				if line, ok := findingLine(f); ok {
					fileLines = append(fileLines, line)
				}
			}
		}
		if len(fileLines) > 0 {
			lines = append(lines, "File: "+vf.File)
			lines = append(lines, fileLines...)
			lines = append(lines, "")
		}
	}

	total := len(result.Pages)
	for _, n := range totals {
		total += n
	}

	lines = append(lines, strings.Repeat("-", ruleWidth), "SUMMARY:")
	if len(result.Pages) > 0 {
		lines = append(lines, fmt.Sprintf("  Page names: %d", len(result.Pages)))
	}
	for _, cat := range tlaudit.AllCategories {
		if totals[cat] > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", cat.Label(), totals[cat]))
		}
	}
	lines = append(lines, fmt.Sprintf("  TOTAL: %d", total), "")
	return strings.Join(lines, "\n")
}

func findingLine(f tlaudit.Finding) (string, bool) {
	switch {
	case f.Text != "":
		extra := ""
		if f.Section != "" {
			extra = fmt.Sprintf("  [%s]", f.Section)
		} else if f.NativeQueryRef != "" {
			extra = fmt.Sprintf("  (nqr: %s)", f.NativeQueryRef)
		}
		return fmt.Sprintf("    - \"%s\"%s", f.Text, extra), true
	case f.NativeQueryRef != "":
		return fmt.Sprintf("    - nqr: \"%s\"  [bucket: %s]", f.NativeQueryRef, f.Bucket), true
	default:
		return "", false
	}
}

// FormatCoverage renders a coverage report with its verdict.
func FormatCoverage(c *tlaudit.CoverageReport) string {
	lines := []string{
		"TRANSLATION COVERAGE VALIDATION",
		strings.Repeat("=", ruleWidth),
		"",
		fmt.Sprintf("Projections total: %d", c.TotalProjections),
		fmt.Sprintf("Projections with displayName: %d (%.1f%%)", c.WithDisplayName, c.Percent),
		fmt.Sprintf("Projections missing displayName: %d", c.Missing()),
		"",
		fmt.Sprintf("Total suspected untranslated strings: %d", c.IssueCount),
		"",
		fmt.Sprintf("VERDICT: %s", c.Verdict),
		"",
	}
	if c.Verdict == tlaudit.VerdictFail {
		lines = append(lines, "Run scan_english_remaining for details.")
	} else {
		lines = append(lines, "No suspected untranslated content found!")
	}
	return strings.Join(lines, "\n")
}

// FormatMissing renders the missing-displayName listing.
func FormatMissing(missing []tlaudit.MissingProjection) string {
	if len(missing) == 0 {
		return "All projections have displayName overrides."
	}
	lines := make([]string, len(missing))
	for i, m := range missing {
		lines[i] = fmt.Sprintf("  %s  nqr: \"%s\"  [bucket: %s]", m.File, m.NativeQueryRef, m.Bucket)
	}
	return fmt.Sprintf("MISSING DISPLAYNAME: %d projections\n\n", len(missing)) + strings.Join(lines, "\n")
}

// FormatDiff renders the difference between a baseline and a new scan.
func FormatDiff(d *tlaudit.Diff) string {
	var b strings.Builder
	stats := d.Stats()

	fmt.Fprintf(&b, "Summary:\n")
	fmt.Fprintf(&b, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(&b, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(&b, "  Resolved:  %d\n", stats.Resolved)
	fmt.Fprintf(&b, "\n")

	if !d.HasChanges() {
		fmt.Fprintf(&b, "No changes since the baseline.\n")
		return b.String()
	}

	if len(d.Added) > 0 {
		fmt.Fprintf(&b, "Added:\n")
		for _, e := range d.Added {
			fmt.Fprintf(&b, "  + %s\n", entryLine(e))
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(d.Resolved) > 0 {
		fmt.Fprintf(&b, "Resolved:\n")
		for _, e := range d.Resolved {
			fmt.Fprintf(&b, "  - %s\n", entryLine(e))
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

func entryLine(e tlaudit.DiffEntry) string {
	where := e.File
	if e.Category == tlaudit.CategoryPageName {
		where = "page " + e.PageID
	}
	value := e.Finding.Text
	if value == "" {
		value = "nqr: " + e.Finding.NativeQueryRef
	}
	return fmt.Sprintf("%s  %s  %q", where, e.Category.Label(), value)
}
