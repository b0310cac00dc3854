package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/lapidary/internal/model"
)

func f64(v float64) *float64 {
	return &v
}

func sampleReport() *model.Report {
	dev := 0.002
	return &model.Report{
		Criteria:      model.Criteria{RI: f64(1.548), SG: f64(2.65)},
		Tolerances:    model.DefaultTolerances(),
		CatalogSource: "minerals.yaml",
		CatalogSize:   3,
		GeneratedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Matches: []model.MatchResult{
			{
				Mineral:           model.Mineral{Name: "Quartz", Hardness: "7"},
				MatchedProperties: []string{model.PropRI, model.PropSG},
				Confidence:        100,
				MatchedWeight:     45,
				TotalWeight:       45,
				Properties: []model.PropertyMatch{
					{Property: model.PropRI, Measured: "1.548", Expected: "1.544-1.553", Deviation: &dev, Matched: true},
					{Property: model.PropSG, Measured: "2.65", Expected: "2.65-2.66", Matched: true},
				},
			},
		},
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := NewRenderer(true, 10)
	md := r.Markdown(sampleReport())

	for _, want := range []string{
		"# Gemstone Identification Report",
		"Quartz — 100/100",
		"| ri | 1.548 | 1.544-1.553 | 0.002 | ✓ |",
		"Matched weight 45 of 45.",
		"- Refractive index: 1.548",
		"decision-support ranking tool",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_Markdown_NoFooter(t *testing.T) {
	r := NewRenderer(false, 10)
	md := r.Markdown(sampleReport())
	if strings.Contains(md, "decision-support ranking tool") {
		t.Error("Expected no footer when disabled")
	}
}

func TestRenderer_Markdown_NoMatches(t *testing.T) {
	r := NewRenderer(true, 10)
	report := sampleReport()
	report.Matches = nil
	md := r.Markdown(report)
	if !strings.Contains(md, "No candidate reached the minimum confidence.") {
		t.Error("Expected empty-result message")
	}
}

func TestRenderer_RenderJSON_RoundTrip(t *testing.T) {
	r := NewRenderer(true, 10)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if decoded.Matches[0].Mineral.Name != "Quartz" {
		t.Errorf("Expected Quartz in decoded report, got %q", decoded.Matches[0].Mineral.Name)
	}
	if decoded.Matches[0].Properties[0].Deviation == nil {
		t.Error("Expected deviation to survive the round trip")
	}
}

func TestRenderer_RenderMarkdown_WritesNotesSeparately(t *testing.T) {
	r := NewRenderer(true, 10)
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")

	report := sampleReport()
	report.LLM = &model.LLMNotes{
		Enabled:  true,
		Provider: "openai",
		NotesMD:  "Consistent with Quartz.",
	}

	if err := r.RenderMarkdown(report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	main, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(main), "Consistent with Quartz.") {
		t.Error("Expected notes kept out of the scored report")
	}

	notes, err := os.ReadFile(filepath.Join(dir, "report.llm.md"))
	if err != nil {
		t.Fatalf("Expected separate notes file: %v", err)
	}
	if !strings.Contains(string(notes), "never affect scores") {
		t.Error("Expected separation disclaimer in notes file")
	}
}
