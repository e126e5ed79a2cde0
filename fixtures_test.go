package tlaudit

import (
	"os"
	"path/filepath"
	"testing"
)

// writeReportFile writes content to root/rel, creating directories.
func writeReportFile(t testing.TB, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

const pageSalesOverview = `{"name": "p1", "displayName": "Sales Overview"}`

const pageSwedish = `{"name": "p2", "displayName": "Försäljningsöversikt"}`

// visualChart has an English title, a Swedish subtitle, an unrenamed
// projection, a renamed one and one without displayName.
const visualChart = `{
  "name": "chart1",
  "visual": {
    "visualType": "clusteredColumnChart",
    "query": {
      "queryState": {
        "Category": {
          "projections": [
            {"field": {}, "queryRef": "Region.Name", "nativeQueryRef": "Region"},
            {"field": {}, "queryRef": "Sales.Amount", "nativeQueryRef": "Amount", "displayName": "Amount"}
          ]
        },
        "Y": {
          "projections": [
            {"field": {}, "queryRef": "Sum(Sales.Total)", "nativeQueryRef": "Sum of Total", "displayName": "Totalt belopp"}
          ]
        }
      }
    },
    "visualContainerObjects": {
      "title": [{"properties": {"text": {"expr": {"Literal": {"Value": "'Revenue by Region'"}}}}}],
      "subTitle": [{"properties": {"text": {"expr": {"Literal": {"Value": "'Försäljning per region'"}}}}}]
    }
  }
}`

// visualTextboxLegacy keeps paragraphs under objects.general.
const visualTextboxLegacy = `{
  "visualType": "textbox",
  "visual": {
    "objects": {
      "general": [{"properties": {"paragraphs": [{"textRuns": [{"value": "Click here"}, {"value": "  "}, {"value": "2024"}]}]}}]
    }
  }
}`

// visualTextboxCurrent keeps paragraphs directly on the visual.
const visualTextboxCurrent = `{
  "visualType": "textbox",
  "visual": {
    "paragraphs": [{"textRuns": [{"value": "Read the notes"}, {"value": "Läs mer"}]}]
  }
}`

const visualButton = `{
  "visualType": "actionButton",
  "visual": {
    "objects": {
      "text": [{"properties": {"text": {"expr": {"Literal": {"Value": "'Back'"}}}}}],
      "icon": [{"properties": {"label": {"expr": {"Literal": {"Value": "'Go home'"}}}}}],
      "fill": [{"properties": {"fillColor": {"expr": {"Literal": {"Value": "'#FFFFFF'"}}}}}]
    }
  }
}`

const visualSlicer = `{
  "visualType": "slicer",
  "visual": {
    "objects": {
      "header": [{"properties": {"text": {"expr": {"Literal": {"Value": "'Select year'"}}}}}],
      "data": [{"properties": {"placeholder": {"expr": {"Literal": {"Value": "'Search'"}}}}}],
      "general": {"properties": {"placeholder": {"expr": {"Literal": {"Value": "'Not a list'"}}}}}
    }
  }
}`

// buildReport lays out a small report definition under a temp dir.
func buildReport(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	writeReportFile(t, root, "p1/page.json", pageSalesOverview)
	writeReportFile(t, root, "p2/page.json", pageSwedish)
	writeReportFile(t, root, "p1/visuals/chart/visual.json", visualChart)
	writeReportFile(t, root, "p1/visuals/text/visual.json", visualTextboxLegacy)
	writeReportFile(t, root, "p2/visuals/button/visual.json", visualButton)
	writeReportFile(t, root, "p2/visuals/slicer/visual.json", visualSlicer)
	writeReportFile(t, root, "p2/visuals/broken/visual.json", `{"visual": `)
	return root
}
