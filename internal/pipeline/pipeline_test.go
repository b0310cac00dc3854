package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/lapidary/internal/model"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()

	catalogYAML := `
- name: Diamond
  ri_min: 2.417
  ri_max: 2.417
  sg_min: 3.52
  sg_max: 3.52
  hardness: "10"
  system: cubic
- name: Quartz
  ri_min: 1.544
  ri_max: 1.553
  sg_min: 2.65
  sg_max: 2.66
  hardness: 7-7.5
  system: trigonal
  optical_character: uniaxial positive
`
	path := filepath.Join(t.TempDir(), "minerals.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cfg := model.DefaultConfig()
	cfg.Catalog.Path = path
	return cfg
}

func TestPipeline_Identify(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	report, err := p.Identify(context.Background(), model.Criteria{
		RI: f64(2.417),
		SG: f64(3.52),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.CatalogSize != 2 {
		t.Errorf("Expected catalog size 2, got %d", report.CatalogSize)
	}
	if len(report.Matches) == 0 {
		t.Fatal("Expected at least one match")
	}
	if report.Matches[0].Mineral.Name != "Diamond" {
		t.Errorf("Expected Diamond first, got %s", report.Matches[0].Mineral.Name)
	}
	if report.Matches[0].Confidence != 100 {
		t.Errorf("Expected confidence 100, got %d", report.Matches[0].Confidence)
	}
	if report.LLM != nil {
		t.Error("Expected no LLM notes by default")
	}
}

func TestPipeline_Identify_EmptyCriteria(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	report, err := p.Identify(context.Background(), model.Criteria{})
	if err != nil {
		t.Fatalf("Expected empty criteria to be data, not an error: %v", err)
	}
	if len(report.Matches) != 0 {
		t.Errorf("Expected no matches for empty criteria, got %d", len(report.Matches))
	}
}

func TestPipeline_IdentifyWithOverrides(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 1.560 matches Quartz [1.544, 1.553] under the default 0.01 RI
	// tolerance but not under a zero override.
	zero := 0.0
	report, err := p.IdentifyWithOverrides(context.Background(),
		model.Criteria{RI: f64(1.560)},
		model.ToleranceOverrides{RI: &zero})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, m := range report.Matches {
		if m.Mineral.Name == "Quartz" {
			t.Error("Expected Quartz filtered out under zero RI tolerance")
		}
	}
	if report.Tolerances.RI != 0 {
		t.Errorf("Expected effective RI tolerance 0 in report, got %v", report.Tolerances.RI)
	}
	// Other tolerances keep their defaults.
	if report.Tolerances.SG != model.DefaultTolerances().SG {
		t.Errorf("Expected SG tolerance untouched, got %v", report.Tolerances.SG)
	}
}

func TestPipeline_MaxResults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Matching.MaxResults = 1

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// RI matches Quartz, SG matches Diamond: both score above zero.
	report, err := p.Identify(context.Background(), model.Criteria{
		RI: f64(1.55),
		SG: f64(3.52),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report.Matches) > 1 {
		t.Errorf("Expected at most 1 result, got %d", len(report.Matches))
	}
}

func TestPipeline_BadCatalogPath(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Catalog.Path = ""
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("Expected error for missing catalog path")
	}

	cfg.Catalog.Path = "minerals.csv"
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("Expected error for unsupported catalog format")
	}
}
