package tlaudit

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func buildLargeReport(t testing.TB, pages, visualsPerPage int) string {
	t.Helper()
	root := t.TempDir()
	docs := []string{visualChart, visualTextboxLegacy, visualTextboxCurrent, visualButton, visualSlicer, `{`}
	for p := 0; p < pages; p++ {
		writeReportFile(t, root, fmt.Sprintf("page%02d/page.json", p), fmt.Sprintf(`{"displayName": "Page %d"}`, p))
		for v := 0; v < visualsPerPage; v++ {
			doc := docs[(p+v)%len(docs)]
			writeReportFile(t, root, fmt.Sprintf("page%02d/visuals/v%03d/visual.json", p, v), doc)
		}
	}
	return root
}

func TestParallelScanMatchesSequential(t *testing.T) {
	root := buildLargeReport(t, 6, 25)

	sequential, err := NewAuditor("sv-SE").Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{2, 4, 16, 500} {
		parallel, err := NewAuditor("sv-SE", WithConcurrency(n)).Scan(context.Background(), root)
		if err != nil {
			t.Fatalf("concurrency %d: %v", n, err)
		}
		if !reflect.DeepEqual(sequential, parallel) {
			t.Errorf("concurrency %d: result differs from sequential scan", n)
		}
	}
}

func TestParallelScanWithCache(t *testing.T) {
	root := buildLargeReport(t, 3, 10)
	cache := newMapCache()

	sequential, err := NewAuditor("sv-SE").Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	a := NewAuditor("sv-SE", WithConcurrency(4), WithCache(cache))
	for i := 0; i < 2; i++ {
		result, err := a.Scan(context.Background(), root)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(sequential, result) {
			t.Errorf("run %d: cached parallel scan differs from sequential scan", i)
		}
	}
	if cache.hits == 0 {
		t.Error("second run should hit the cache")
	}
}

func TestAuditor_Scan_ParallelPoolSize(t *testing.T) {
	root := buildReport(t)
	core, logs := observer.New(zap.DebugLevel)

	if _, err := NewAuditor("sv-SE", WithConcurrency(16), WithLogger(zap.New(core))).Scan(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("Extracting in parallel").All()
	if len(entries) != 1 {
		t.Fatalf("expected one pool entry, got %d", len(entries))
	}
	// The pool never exceeds the number of discovered files.
	if got := entries[0].ContextMap()["workers"]; got != int64(5) {
		t.Errorf("workers = %v, want 5", got)
	}
}
