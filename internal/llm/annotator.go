package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// Annotator generates optional identification notes for a report.
// Notes are generated AFTER ranking and never affect it.
type Annotator struct {
	provider Provider
	config   Config
}

// NewAnnotator creates an annotator from configuration. A missing
// provider name yields a disabled annotator, not an error.
func NewAnnotator(config Config) (*Annotator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Annotator{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (a *Annotator) IsEnabled() bool {
	return a != nil && a.provider != nil
}

// Annotate generates notes for the report. The allowlist is built from
// the ranked candidates; in strict mode, responses naming none of them
// are flagged in Warnings rather than rejected.
func (a *Annotator) Annotate(ctx context.Context, report model.Report) (*model.LLMNotes, error) {
	if !a.IsEnabled() {
		return nil, nil
	}

	allowed := make([]string, 0, len(report.Matches))
	for _, m := range report.Matches {
		allowed = append(allowed, m.Mineral.Name)
	}

	resp, err := a.provider.Notes(ctx, NotesRequest{
		Report:          report,
		AllowedMinerals: allowed,
		Model:           a.config.Model,
		MaxTokens:       a.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate notes: %w", err)
	}

	notes := &model.LLMNotes{
		Enabled:  true,
		Provider: a.provider.Name(),
		Model:    resp.Model,
		NotesMD:  resp.Notes,
	}

	if a.config.StrictCatalog {
		notes.Warnings = verifyNotes(resp.Notes, allowed)
	}

	return notes, nil
}

// verifyNotes checks the generated text against the allowlist and returns
// human-readable warnings for anything suspicious.
func verifyNotes(notes string, allowed []string) []string {
	var warnings []string

	if strings.TrimSpace(notes) == "" {
		return append(warnings, "empty notes returned by provider")
	}

	if strings.Contains(notes, "http://") || strings.Contains(notes, "https://") {
		warnings = append(warnings, "notes contain external links; lapidary notes must stand on the report alone")
	}

	lower := strings.ToLower(notes)
	mentioned := false
	for _, name := range allowed {
		if strings.Contains(lower, strings.ToLower(name)) {
			mentioned = true
			break
		}
	}
	if len(allowed) > 0 && !mentioned {
		warnings = append(warnings, "notes mention none of the ranked candidates")
	}

	return warnings
}

// RenderSeparateMarkdown renders the notes as a standalone markdown
// document, clearly separated from the scored report.
func RenderSeparateMarkdown(notes *model.LLMNotes) string {
	var b strings.Builder

	b.WriteString("# Identification Notes (LLM-generated)\n\n")
	b.WriteString("> These notes are generated after ranking and never affect scores.\n\n")
	fmt.Fprintf(&b, "Provider: %s", notes.Provider)
	if notes.Model != "" {
		fmt.Fprintf(&b, " (%s)", notes.Model)
	}
	b.WriteString("\n\n")
	b.WriteString(notes.NotesMD)
	b.WriteString("\n")

	if len(notes.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range notes.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
