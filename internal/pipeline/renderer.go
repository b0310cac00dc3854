package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/lapidary/internal/llm"
	"github.com/ppiankov/lapidary/internal/model"
)

// Renderer writes identification reports as JSON, Markdown and a stdout
// summary. Every output is derived from the report alone; nothing is
// recomputed.
type Renderer struct {
	includeFooter bool
	topN          int
}

// NewRenderer creates a renderer. topN limits the stdout summary table;
// non-positive falls back to 10.
func NewRenderer(includeFooter bool, topN int) *Renderer {
	if topN <= 0 {
		topN = 10
	}
	return &Renderer{includeFooter: includeFooter, topN: topN}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable comparison report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md := r.Markdown(report)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	// Notes render to a separate file, clearly apart from the scored report.
	if report.LLM != nil && report.LLM.Enabled {
		notesPath := strings.TrimSuffix(path, ".md") + ".llm.md"
		notesMD := llm.RenderSeparateMarkdown(report.LLM)
		if err := os.WriteFile(notesPath, []byte(notesMD), 0644); err != nil {
			return fmt.Errorf("write notes: %w", err)
		}
	}

	return nil
}

// Markdown builds the markdown document for a report.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Gemstone Identification Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Catalog: %s (%d records)\n\n", report.CatalogSource, report.CatalogSize)

	b.WriteString("## Measured Criteria\n\n")
	writeCriteria(&b, report.Criteria)

	fmt.Fprintf(&b, "\n## Candidates (%d)\n", len(report.Matches))
	if len(report.Matches) == 0 {
		b.WriteString("\nNo candidate reached the minimum confidence.\n")
	}

	for i, m := range report.Matches {
		fmt.Fprintf(&b, "\n### %d. %s — %d/100\n\n", i+1, m.Mineral.Name, m.Confidence)
		fmt.Fprintf(&b, "Matched weight %d of %d.\n\n", m.MatchedWeight, m.TotalWeight)

		b.WriteString("| Property | Measured | Expected | Deviation | Verdict |\n")
		b.WriteString("|----------|----------|----------|-----------|---------|\n")
		for _, p := range m.Properties {
			deviation := "—"
			if p.Deviation != nil {
				deviation = fmt.Sprintf("%.4g", *p.Deviation)
			}
			verdict := "✗"
			if p.Matched {
				verdict = "✓"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				p.Property, p.Measured, p.Expected, deviation, verdict)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n\nlapidary is a decision-support ranking tool, not a classifier: ")
		b.WriteString("scores measure property agreement against reference data, never identity.\n")
	}

	return b.String()
}

// RenderSummary prints a top-N table to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Identification Results")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()

	if len(report.Matches) == 0 {
		fmt.Println("  No candidate reached the minimum confidence.")
		fmt.Println()
		return
	}

	limit := len(report.Matches)
	if limit > r.topN {
		limit = r.topN
	}

	fmt.Printf("  %-4s %-20s %-12s %s\n", "#", "Mineral", "Confidence", "Matched")
	for i := 0; i < limit; i++ {
		m := report.Matches[i]
		fmt.Printf("  %-4d %-20s %-12s %s\n",
			i+1, m.Mineral.Name,
			fmt.Sprintf("%d/100", m.Confidence),
			strings.Join(m.MatchedProperties, ", "))
	}

	if len(report.Matches) > limit {
		fmt.Printf("\n  … and %d more below the top %d\n", len(report.Matches)-limit, limit)
	}
	fmt.Println()
}

// writeCriteria lists only the supplied fields.
func writeCriteria(b *strings.Builder, c model.Criteria) {
	writeNum := func(label string, v *float64) {
		if v != nil {
			fmt.Fprintf(b, "- %s: %g\n", label, *v)
		}
	}
	writeStr := func(label, v string) {
		if v != "" {
			fmt.Fprintf(b, "- %s: %s\n", label, v)
		}
	}

	writeNum("Refractive index", c.RI)
	writeNum("Refractive index (min reading)", c.RIMin)
	writeNum("Refractive index (max reading)", c.RIMax)
	writeNum("Specific gravity", c.SG)
	writeNum("Birefringence", c.Birefringence)
	writeNum("Dispersion", c.Dispersion)
	writeNum("Mohs hardness", c.Hardness)
	writeStr("Crystal system", c.CrystalSystem)
	writeStr("Optic sign", c.OpticSign)
	writeStr("Optic character", c.OpticCharacter)
}
