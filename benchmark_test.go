package tlaudit

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZaguanLabs/tlaudit/exceptions"
)

func BenchmarkHashContent(b *testing.B) {
	data := []byte(visualChart)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HashContent(data)
	}
}

func BenchmarkCacheKey(b *testing.B) {
	hash := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e"
	fp := exceptions.Empty().Fingerprint()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CacheKey(hash, "sv-SE", fp)
	}
}

func BenchmarkClassifier_Reportable(b *testing.B) {
	c := NewClassifier(ResolveProfile("sv-SE"), exceptions.NewSet("Revenue"))
	inputs := []string{"Revenue by Region", "#FF00AA", "Försäljning", "12.5%", "_internal", "Segoe UI, sans-serif"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reportable(inputs[i%len(inputs)])
	}
}

func BenchmarkDecodeDocument(b *testing.B) {
	data := []byte(visualChart)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := decodeDocument(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanVisualDocument(b *testing.B) {
	data := []byte(visualChart)
	profile := ResolveProfile("sv-SE")
	ex := exceptions.Empty()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ScanVisualDocument(data, profile, ex); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuditor_Scan(b *testing.B) {
	root := buildLargeReport(b, 4, 50)
	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			a := NewAuditor("sv-SE", WithConcurrency(workers))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.Scan(context.Background(), root); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAuditor_Scan_Cached(b *testing.B) {
	root := buildLargeReport(b, 4, 50)
	a := NewAuditor("sv-SE", WithCache(newMapCache()))
	if _, err := a.Scan(context.Background(), root); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Scan(context.Background(), root); err != nil {
			b.Fatal(err)
		}
	}
}
