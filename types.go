package tlaudit

// Category tags the kind of report element a finding was extracted from.
type Category string

const (
	// CategoryTitleSubtitle covers visual container titles and subtitles.
	CategoryTitleSubtitle Category = "title_subtitle"
	// CategoryDisplayName covers projections whose displayName was never renamed.
	CategoryDisplayName Category = "displayname"
	// CategoryMissingDisplayName covers projections without any displayName.
	CategoryMissingDisplayName Category = "missing_displayname"
	// CategoryTextbox covers text runs of textbox visuals.
	CategoryTextbox Category = "textbox"
	// CategoryPlaceholder covers placeholder literals on any object.
	CategoryPlaceholder Category = "placeholder"
	// CategoryHeaderText covers slicer/filter header labels.
	CategoryHeaderText Category = "header_text"
	// CategoryButtonText covers text and label literals of buttons.
	CategoryButtonText Category = "button_text"
)

// AllCategories lists every category in report order.
var AllCategories = []Category{
	CategoryTitleSubtitle,
	CategoryDisplayName,
	CategoryMissingDisplayName,
	CategoryTextbox,
	CategoryPlaceholder,
	CategoryHeaderText,
	CategoryButtonText,
}

var categoryLabels = map[Category]string{
	CategoryTitleSubtitle:      "Title/Subtitle",
	CategoryDisplayName:        "DisplayName (no target-lang chars)",
	CategoryMissingDisplayName: "Missing displayName",
	CategoryTextbox:            "Textbox content",
	CategoryPlaceholder:        "Placeholder text",
	CategoryHeaderText:         "Header/label text",
	CategoryButtonText:         "Button text",
	CategoryPageName:           "Page name",
}

// Label returns the human readable name used in reports.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Finding is a single suspected untranslated string and where it was found.
type Finding struct {
	Text           string `json:"text,omitempty"`           // Extracted value (de-quoted)
	Section        string `json:"section,omitempty"`        // title or subTitle
	Bucket         string `json:"bucket,omitempty"`         // queryState bucket name
	NativeQueryRef string `json:"nativeQueryRef,omitempty"` // Field reference of a projection
	Property       string `json:"property,omitempty"`       // text or label (buttons)
}

// Categories groups the findings of one visual document by category.
type Categories map[Category][]Finding

// Items returns the findings recorded under cat.
func (c Categories) Items(cat Category) []Finding {
	return c[cat]
}

// Count returns the number of findings across all categories.
func (c Categories) Count() int {
	n := 0
	for _, items := range c {
		n += len(items)
	}
	return n
}

// Empty reports whether no category holds a finding.
func (c Categories) Empty() bool {
	return c.Count() == 0
}

func (c Categories) add(cat Category, f Finding) {
	c[cat] = append(c[cat], f)
}

// FileFindings holds the findings of one visual.json file.
type FileFindings struct {
	File       string     `json:"file"` // Path relative to the scan root, slash separated
	Categories Categories `json:"categories"`
}

// PageFinding is a page whose display name looks untranslated.
type PageFinding struct {
	PageID      string `json:"page_id"`
	DisplayName string `json:"displayName"`
}

// Result is the outcome of a full scan of a report definition.
type Result struct {
	Visuals []FileFindings `json:"visuals"`
	Pages   []PageFinding  `json:"pages"`
}

// Totals returns the number of findings per category across all files.
func (r *Result) Totals() map[Category]int {
	totals := make(map[Category]int, len(AllCategories))
	for _, vf := range r.Visuals {
		for _, cat := range AllCategories {
			totals[cat] += len(vf.Categories.Items(cat))
		}
	}
	return totals
}

// IssueCount is the sum of every category of every file plus page findings.
func (r *Result) IssueCount() int {
	n := len(r.Pages)
	for _, vf := range r.Visuals {
		n += vf.Categories.Count()
	}
	return n
}

// Clean reports whether the scan found nothing.
func (r *Result) Clean() bool {
	return len(r.Visuals) == 0 && len(r.Pages) == 0
}

// CoverageVerdict is the pass/fail outcome of a coverage validation.
type CoverageVerdict string

const (
	VerdictPass CoverageVerdict = "PASS"
	VerdictFail CoverageVerdict = "FAIL"
)

// CoverageReport summarizes projection coverage and the overall verdict.
type CoverageReport struct {
	TotalProjections int             `json:"total_projections"`
	WithDisplayName  int             `json:"with_displayname"`
	Percent          float64         `json:"coverage_percent"`
	IssueCount       int             `json:"issue_count"`
	Verdict          CoverageVerdict `json:"verdict"`
}

// Missing returns the number of projections without a displayName.
func (c *CoverageReport) Missing() int {
	return c.TotalProjections - c.WithDisplayName
}

// MissingProjection is a projection that has a nativeQueryRef but no displayName.
type MissingProjection struct {
	File           string `json:"file"`
	Bucket         string `json:"bucket"`
	NativeQueryRef string `json:"nativeQueryRef"`
}
