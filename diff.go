package tlaudit

import "strings"

// CategoryPageName tags page display names in a flattened result.
// It is not part of AllCategories because pages are reported separately.
const CategoryPageName Category = "page_name"

// DiffEntry is one finding of a result, flattened with its location.
type DiffEntry struct {
	File     string   `json:"file,omitempty"`    // Visual file; empty for page names
	PageID   string   `json:"page_id,omitempty"` // Page directory; empty for visual findings
	Category Category `json:"category"`
	Finding  Finding  `json:"finding"`
}

func (e DiffEntry) key() string {
	f := e.Finding
	return strings.Join([]string{
		e.File, e.PageID, string(e.Category),
		f.Text, f.Section, f.Bucket, f.NativeQueryRef, f.Property,
	}, "\x00")
}

// Entries flattens a result in report order: page names first, then every
// file's findings category by category.
func Entries(r *Result) []DiffEntry {
	if r == nil {
		return nil
	}
	var entries []DiffEntry
	for _, p := range r.Pages {
		entries = append(entries, DiffEntry{
			PageID:   p.PageID,
			Category: CategoryPageName,
			Finding:  Finding{Text: p.DisplayName},
		})
	}
	for _, vf := range r.Visuals {
		for _, cat := range AllCategories {
			for _, f := range vf.Categories.Items(cat) {
				entries = append(entries, DiffEntry{File: vf.File, Category: cat, Finding: f})
			}
		}
	}
	return entries
}

// Diff represents the difference between two scans of the same report.
type Diff struct {
	// Added contains findings that are new since the baseline.
	Added []DiffEntry `json:"added"`

	// Resolved contains baseline findings that no longer occur.
	Resolved []DiffEntry `json:"resolved"`

	// Unchanged contains findings present in both scans.
	Unchanged []DiffEntry `json:"unchanged"`
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int `json:"added"`
	Resolved  int `json:"resolved"`
	Unchanged int `json:"unchanged"`
}

// Stats returns summary statistics for the diff.
func (d *Diff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Resolved:  len(d.Resolved),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges returns true if there are any differences.
func (d *Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Resolved) > 0
}

// DiffResults compares a baseline result with a newer one. Identical
// findings are matched one to one, so a string that appears twice in a file
// and once in the baseline counts as one unchanged and one added.
// Added and Unchanged follow the order of newer, Resolved the order of old.
func DiffResults(old, newer *Result) *Diff {
	d := &Diff{Added: []DiffEntry{}, Resolved: []DiffEntry{}, Unchanged: []DiffEntry{}}

	oldEntries := Entries(old)
	remaining := make(map[string]int, len(oldEntries))
	for _, e := range oldEntries {
		remaining[e.key()]++
	}

	for _, e := range Entries(newer) {
		k := e.key()
		if remaining[k] > 0 {
			remaining[k]--
			d.Unchanged = append(d.Unchanged, e)
		} else {
			d.Added = append(d.Added, e)
		}
	}

	// Whatever is left unmatched in the baseline was resolved.
	for i := len(oldEntries) - 1; i >= 0; i-- {
		e := oldEntries[i]
		k := e.key()
		if remaining[k] > 0 {
			remaining[k]--
			d.Resolved = append(d.Resolved, e)
		}
	}
	for i, j := 0, len(d.Resolved)-1; i < j; i, j = i+1, j-1 {
		d.Resolved[i], d.Resolved[j] = d.Resolved[j], d.Resolved[i]
	}

	return d
}
