package tlaudit

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaguanLabs/tlaudit/exceptions"
	"github.com/bmatcuk/doublestar/v4"
)

const (
	pagePattern   = "*/page.json"
	visualPattern = "**/visual.json"
)

// ScanPageNames reports the display names of pages directly under root
// that look untranslated. Unreadable page files are skipped.
func ScanPageNames(root string, profile Profile, ex exceptions.Exceptions) []PageFinding {
	pages, _ := scanPageNames(root, NewClassifier(profile, ex.KnownGood))
	return pages
}

// scanPageNames returns the findings plus the per-file errors met on the way.
func scanPageNames(root string, classifier *Classifier) ([]PageFinding, []error) {
	files, err := globSorted(root, pagePattern)
	if err != nil {
		return []PageFinding{}, []error{&FileError{Path: root, Op: "glob", Cause: err}}
	}

	findings := []PageFinding{}
	var errs []error
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel))) // #nosec G304
		if err != nil {
			errs = append(errs, &FileError{Path: rel, Op: "read", Cause: err})
			continue
		}
		doc, err := decodeDocument(data)
		if err != nil {
			errs = append(errs, &FileError{Path: rel, Op: "decode", Cause: err})
			continue
		}
		name := stringAt(doc, "displayName")
		if classifier.Reportable(name) {
			findings = append(findings, PageFinding{
				PageID:      path.Base(path.Dir(rel)),
				DisplayName: name,
			})
		}
	}
	return findings, errs
}

// globSorted matches pattern under root and returns root-relative,
// slash-separated paths in lexicographic order. Paths with a hidden
// component are skipped. A missing root matches nothing.
func globSorted(root, pattern string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return []string{}, nil
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	visible := matches[:0]
	for _, m := range matches {
		if !isHidden(m) {
			visible = append(visible, m)
		}
	}
	sort.Strings(visible)
	return visible, nil
}

func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
