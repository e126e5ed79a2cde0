package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ZaguanLabs/tlaudit"
)

// Meta describes the scan a report was produced from.
type Meta struct {
	TargetLanguage string
	Root           string
	GeneratedAt    time.Time // Omitted from output when zero
}

// Summary holds per-category totals.
type Summary struct {
	PageNames  int                      `json:"page_names"`
	Categories map[tlaudit.Category]int `json:"categories"`
	Total      int                      `json:"total"`
}

// Document is the JSON form of a findings report. It is also what the CLI
// accepts as a baseline.
type Document struct {
	Tool           string                 `json:"tool"`
	Version        string                 `json:"version"`
	TargetLanguage string                 `json:"target_language,omitempty"`
	Root           string                 `json:"root,omitempty"`
	GeneratedAt    string                 `json:"generated_at,omitempty"`
	Summary        Summary                `json:"summary"`
	Visuals        []tlaudit.FileFindings `json:"visuals"`
	Pages          []tlaudit.PageFinding  `json:"pages"`
}

// NewDocument builds the JSON document for a result.
func NewDocument(result *tlaudit.Result, meta Meta) *Document {
	doc := &Document{
		Tool:           tlaudit.Name,
		Version:        tlaudit.Version,
		TargetLanguage: meta.TargetLanguage,
		Root:           meta.Root,
		Visuals:        []tlaudit.FileFindings{},
		Pages:          []tlaudit.PageFinding{},
	}
	if !meta.GeneratedAt.IsZero() {
		doc.GeneratedAt = meta.GeneratedAt.UTC().Format(time.RFC3339)
	}
	if result == nil {
		doc.Summary = Summary{Categories: map[tlaudit.Category]int{}}
		return doc
	}
	if result.Visuals != nil {
		doc.Visuals = result.Visuals
	}
	if result.Pages != nil {
		doc.Pages = result.Pages
	}
	doc.Summary = Summary{
		PageNames:  len(result.Pages),
		Categories: result.Totals(),
		Total:      result.IssueCount(),
	}
	return doc
}

// Result converts the document back into a scan result.
func (d *Document) Result() *tlaudit.Result {
	r := &tlaudit.Result{Visuals: d.Visuals, Pages: d.Pages}
	if r.Visuals == nil {
		r.Visuals = []tlaudit.FileFindings{}
	}
	if r.Pages == nil {
		r.Pages = []tlaudit.PageFinding{}
	}
	return r
}

// WriteJSON writes the findings report as indented JSON.
func WriteJSON(w io.Writer, result *tlaudit.Result, meta Meta) error {
	return Encode(w, NewDocument(result, meta))
}

// ReadJSON reads a report written by WriteJSON.
func ReadJSON(r io.Reader) (*tlaudit.Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return doc.Result(), nil
}

// Encode writes any value as indented JSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
