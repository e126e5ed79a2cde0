package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/tlaudit"
)

func TestWriteJSON_RoundTrip(t *testing.T) {
	result := sampleResult()

	var buf bytes.Buffer
	meta := Meta{TargetLanguage: "sv-SE", Root: "/reports/sales", GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	if err := WriteJSON(&buf, result, meta); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if raw["tool"] != tlaudit.Name || raw["target_language"] != "sv-SE" {
		t.Errorf("unexpected header fields: %v", raw)
	}
	if raw["generated_at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("generated_at = %v", raw["generated_at"])
	}
	summary := raw["summary"].(map[string]any)
	if summary["total"] != float64(6) || summary["page_names"] != float64(1) {
		t.Errorf("unexpected summary: %v", summary)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(tlaudit.Entries(result), tlaudit.Entries(back)) {
		t.Error("findings changed across a JSON round trip")
	}
	if diff := tlaudit.DiffResults(result, back); diff.HasChanges() {
		t.Errorf("round trip should not change findings: %+v", diff.Stats())
	}
}

func TestWriteJSON_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &tlaudit.Result{}, Meta{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"visuals": []`) || !strings.Contains(out, `"pages": []`) {
		t.Errorf("empty lists should be encoded as []:\n%s", out)
	}
	if strings.Contains(out, "generated_at") {
		t.Errorf("zero time should be omitted:\n%s", out)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("expected an error for truncated JSON")
	}

	r, err := ReadJSON(strings.NewReader(`{"tool": "tlaudit"}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.Visuals == nil || r.Pages == nil || !r.Clean() {
		t.Errorf("missing lists should decode as empty, got %+v", r)
	}
}
