package model

import "time"

// Report is the complete output of one identification run.
type Report struct {
	Criteria   Criteria   `json:"criteria"`
	Tolerances Tolerances `json:"tolerances"` // effective values after overrides

	CatalogSource string    `json:"catalog_source"`
	CatalogSize   int       `json:"catalog_size"`
	GeneratedAt   time.Time `json:"generated_at"`

	// Matches is ordered: descending confidence, catalog order on ties.
	Matches []MatchResult `json:"matches"`

	// LLM holds optional generated notes. Never affects ranking.
	LLM *LLMNotes `json:"llm,omitempty"`
}

// LLMNotes contains optional LLM-generated identification notes.
// CRITICAL: notes never affect scoring or ranking and are clearly separated.
type LLMNotes struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	NotesMD  string   `json:"notes_md,omitempty"`
	Warnings []string `json:"warnings,omitempty"` // e.g. references outside the result list
}
