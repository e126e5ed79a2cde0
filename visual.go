package tlaudit

import (
	"os"
	"strings"

	"github.com/ZaguanLabs/tlaudit/exceptions"
)

// Visual types with type-gated extraction rules.
const (
	visualTypeTextbox      = "textbox"
	visualTypeActionButton = "actionButton"
	visualTypeButton       = "button"
)

// Container sections that carry a title literal.
var titleSections = []string{"title", "subTitle"}

// Button properties that carry user-facing text.
var buttonProperties = []string{"text", "label"}

// newCategories returns a Categories value with every category present and empty.
func newCategories() Categories {
	cats := make(Categories, len(AllCategories))
	for _, cat := range AllCategories {
		cats[cat] = []Finding{}
	}
	return cats
}

// visualScanner applies the extraction rules of a visual document for one
// target language and exceptions set.
type visualScanner struct {
	classifier *Classifier
	skipNQR    exceptions.Set
}

func newVisualScanner(profile Profile, ex exceptions.Exceptions) *visualScanner {
	return &visualScanner{
		classifier: NewClassifier(profile, ex.KnownGood),
		skipNQR:    ex.SkipNQR,
	}
}

// ScanVisual extracts suspected untranslated strings from one visual.json
// file. A file that cannot be read or decoded yields empty categories.
func ScanVisual(path string, profile Profile, ex exceptions.Exceptions) Categories {
	data, err := os.ReadFile(path) // #nosec G304 - scanning user-provided report trees
	if err != nil {
		return newCategories()
	}
	cats, _ := ScanVisualDocument(data, profile, ex)
	return cats
}

// ScanVisualDocument is ScanVisual over in-memory contents. The returned
// Categories is always usable; err only explains why it is empty.
func ScanVisualDocument(data []byte, profile Profile, ex exceptions.Exceptions) (Categories, error) {
	return newVisualScanner(profile, ex).scanBytes(data)
}

func (s *visualScanner) scanBytes(data []byte) (Categories, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return newCategories(), err
	}
	return s.scan(doc), nil
}

func (s *visualScanner) scan(doc any) Categories {
	cats := newCategories()
	visual := objectAt(doc, "visual")
	visualType := stringAt(doc, "visualType")

	s.scanTitles(cats, visual)
	s.scanProjections(cats, visual)
	if visualType == visualTypeTextbox {
		s.scanTextbox(cats, visual)
	}
	s.scanPlaceholders(cats, visual)
	s.scanHeaders(cats, visual)
	if visualType == visualTypeActionButton || visualType == visualTypeButton {
		s.scanButtons(cats, visual)
	}
	return cats
}

func (s *visualScanner) scanTitles(cats Categories, visual *object) {
	for _, section := range titleSections {
		for _, obj := range listAt(visual, "visualContainerObjects", section) {
			if text, ok := s.classifier.Literal(literalValue(obj, "text")); ok {
				cats.add(CategoryTitleSubtitle, Finding{Text: text, Section: section})
			}
		}
	}
}

func (s *visualScanner) scanProjections(cats Categories, visual *object) {
	forEachProjection(visual, func(bucket string, proj any) {
		ref := stringAt(proj, "nativeQueryRef")
		if ref == "" {
			return
		}
		name := stringAt(proj, "displayName")
		switch {
		case name == "":
			if !s.skipNQR.Has(ref) {
				cats.add(CategoryMissingDisplayName, Finding{NativeQueryRef: ref, Bucket: bucket})
			}
		case name == ref:
			// Renamed fields are assumed translated; only self-referential names are checked.
			if !s.skipNQR.Has(ref) && s.classifier.Reportable(name) {
				cats.add(CategoryDisplayName, Finding{Text: name, NativeQueryRef: ref})
			}
		}
	})
}

// forEachProjection walks visual.query.queryState buckets in document order.
func forEachProjection(visual *object, fn func(bucket string, proj any)) {
	objectAt(visual, "query", "queryState").each(func(bucket string, data any) {
		if _, ok := data.(*object); !ok {
			return
		}
		for _, proj := range listAt(data, "projections") {
			fn(bucket, proj)
		}
	})
}

func (s *visualScanner) scanTextbox(cats Categories, visual *object) {
	// Legacy exports nest paragraphs under objects.general, current ones
	// put them directly on the visual.
	for _, general := range listAt(visual, "objects", "general") {
		s.scanParagraphs(cats, listAt(general, "properties", "paragraphs"))
	}
	s.scanParagraphs(cats, listAt(visual, "paragraphs"))
}

func (s *visualScanner) scanParagraphs(cats Categories, paragraphs []any) {
	for _, para := range paragraphs {
		for _, run := range listAt(para, "textRuns") {
			value := strings.TrimSpace(stringAt(run, "value"))
			if s.classifier.Reportable(value) {
				cats.add(CategoryTextbox, Finding{Text: value})
			}
		}
	}
}

// eachObjectEntry calls fn for every element of every list-valued section
// of visual.objects.
func eachObjectEntry(visual *object, fn func(section string, entry any)) {
	objectAt(visual, "objects").each(func(section string, items any) {
		list, ok := items.([]any)
		if !ok {
			return
		}
		for _, entry := range list {
			fn(section, entry)
		}
	})
}

func (s *visualScanner) scanPlaceholders(cats Categories, visual *object) {
	eachObjectEntry(visual, func(_ string, entry any) {
		if text, ok := s.classifier.Literal(literalValue(entry, "placeholder")); ok {
			cats.add(CategoryPlaceholder, Finding{Text: text})
		}
	})
}

func (s *visualScanner) scanHeaders(cats Categories, visual *object) {
	for _, entry := range listAt(visual, "objects", "header") {
		if text, ok := s.classifier.Literal(literalValue(entry, "text")); ok {
			cats.add(CategoryHeaderText, Finding{Text: text})
		}
	}
}

func (s *visualScanner) scanButtons(cats Categories, visual *object) {
	eachObjectEntry(visual, func(_ string, entry any) {
		for _, prop := range buttonProperties {
			if text, ok := s.classifier.Literal(literalValue(entry, prop)); ok {
				cats.add(CategoryButtonText, Finding{Text: text, Property: prop})
			}
		}
	})
}
