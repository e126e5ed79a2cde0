package tlaudit

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// projectionStats counts projections that carry a nativeQueryRef.
// A displayName key counts as an override whatever its value.
type projectionStats struct {
	total           int
	withDisplayName int
}

func countProjections(doc any) projectionStats {
	var st projectionStats
	forEachProjection(objectAt(doc, "visual"), func(_ string, proj any) {
		if stringAt(proj, "nativeQueryRef") == "" {
			return
		}
		st.total++
		if hasDisplayName(proj) {
			st.withDisplayName++
		}
	})
	return st
}

// Coverage runs a full scan and measures how many projections carry an
// explicit displayName. The verdict depends on the issue count only;
// the percentage is informational.
func (a *Auditor) Coverage(ctx context.Context, root string) (*CoverageReport, error) {
	result, err := a.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	s := a.newScan(root)
	var st projectionStats
	err = a.walkDocuments(ctx, s, func(_ string, doc any) {
		fileStats := countProjections(doc)
		st.total += fileStats.total
		st.withDisplayName += fileStats.withDisplayName
	})
	if err != nil {
		return nil, err
	}

	return newCoverageReport(st, result.IssueCount()), nil
}

func hasDisplayName(proj any) bool {
	_, ok := lookup(proj, "displayName")
	return ok
}

func newCoverageReport(st projectionStats, issues int) *CoverageReport {
	report := &CoverageReport{
		TotalProjections: st.total,
		WithDisplayName:  st.withDisplayName,
		IssueCount:       issues,
		Verdict:          VerdictFail,
	}
	if st.total > 0 {
		report.Percent = float64(st.withDisplayName) / float64(st.total) * 100
	}
	if issues == 0 {
		report.Verdict = VerdictPass
	}
	return report
}

// MissingDisplayNames lists every projection with a nativeQueryRef and no
// displayName key, skipping references in skip_nqr, in file then document order.
func (a *Auditor) MissingDisplayNames(ctx context.Context, root string) ([]MissingProjection, error) {
	s := a.newScan(root)
	missing := []MissingProjection{}
	err := a.walkDocuments(ctx, s, func(rel string, doc any) {
		forEachProjection(objectAt(doc, "visual"), func(bucket string, proj any) {
			ref := stringAt(proj, "nativeQueryRef")
			if ref == "" || hasDisplayName(proj) || s.ex.SkipNQR.Has(ref) {
				return
			}
			missing = append(missing, MissingProjection{File: rel, Bucket: bucket, NativeQueryRef: ref})
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Missing displayName listing complete", zap.Int("missing", len(missing)))
	return missing, nil
}

// walkDocuments decodes every discovered visual document in order and hands
// it to fn. Undecodable files are logged and skipped.
func (a *Auditor) walkDocuments(ctx context.Context, s *scan, fn func(rel string, doc any)) error {
	for _, rel := range s.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel))) // #nosec G304
		if err != nil {
			s.log.Debug("Skipping file", zap.Error(&FileError{Path: rel, Op: "read", Cause: err}))
			continue
		}
		doc, err := decodeDocument(data)
		if err != nil {
			s.log.Debug("Skipping file", zap.Error(&FileError{Path: rel, Op: "decode", Cause: err}))
			continue
		}
		fn(rel, doc)
	}
	return nil
}
