package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Notes generates identification notes with strict catalog mode
	Notes(ctx context.Context, req NotesRequest) (*NotesResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// NotesRequest contains the input for notes generation.
type NotesRequest struct {
	// Report is the identification report to annotate
	Report model.Report

	// AllowedMinerals is the STRICT allowlist of mineral names the LLM
	// may discuss. This prevents hallucination: the model cannot
	// introduce candidates the engine never ranked.
	AllowedMinerals []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// NotesResponse contains the generated notes.
type NotesResponse struct {
	// Notes is the generated markdown text
	Notes string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g. an Ollama OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictCatalog enforces the mineral allowlist (should always be true)
	StrictCatalog bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictCatalog: true, // CRITICAL: Always enforce
		MaxTokens:     1000,
	}
}

// NewProvider creates a new LLM provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		// Ollama exposes an OpenAI-compatible chat API; no key required.
		if config.BaseURL == "" {
			config.BaseURL = "http://localhost:11434/v1"
		}
		if config.APIKey == "" {
			config.APIKey = "ollama"
		}
		return NewOpenAIProvider(config)

	case "":
		// No provider configured - notes disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:      modelConfig.Provider,
		Model:         modelConfig.Model,
		APIKey:        modelConfig.APIKey,
		BaseURL:       modelConfig.BaseURL,
		Timeout:       modelConfig.Timeout,
		StrictCatalog: modelConfig.StrictCatalog,
		MaxTokens:     modelConfig.MaxTokens,
	}
}

// BuildPrompt constructs the default prompt for notes generation with
// strict catalog mode.
func BuildPrompt(report model.Report, allowedMinerals []string) string {
	var b strings.Builder

	b.WriteString(`You are annotating a gemstone identification report. The engine ranks candidate minerals by how well measured properties match reference data - it NEVER proves identity.

CRITICAL RULES:
1. You MUST ONLY discuss minerals from this allowed list:
`)
	b.WriteString(joinMinerals(allowedMinerals))
	b.WriteString(`

2. DO NOT introduce, speculate about, or compare against minerals outside this list.
3. If the evidence is ambiguous, state that explicitly.
4. Focus on MATCH QUALITY, not certainty. Use phrases like:
   - "The refractive index reading is consistent with..."
   - "Specific gravity separates X from Y here because..."
   - "A follow-up dispersion reading would distinguish..."
5. Never declare a definitive identification - only describe the match evidence.

`)

	fmt.Fprintf(&b, "Report Summary:\n- Criteria supplied: %d\n- Candidates ranked: %d\n",
		criteriaCount(report.Criteria), len(report.Matches))

	limit := len(report.Matches)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		m := report.Matches[i]
		fmt.Fprintf(&b, "- %s: confidence %d/100, matched %s\n",
			m.Mineral.Name, m.Confidence, strings.Join(m.MatchedProperties, ", "))
	}

	b.WriteString("\nProvide a 3-4 sentence note on what the property evidence supports and which follow-up measurement would best narrow the list.")

	return b.String()
}

func joinMinerals(names []string) string {
	if len(names) == 0 {
		return "(No candidates ranked)"
	}
	return "- " + strings.Join(names, "\n- ")
}

func criteriaCount(c model.Criteria) int {
	count := 0
	for _, present := range []bool{
		c.RI != nil, c.RIMin != nil, c.RIMax != nil, c.SG != nil,
		c.Birefringence != nil, c.Dispersion != nil, c.Hardness != nil,
		c.CrystalSystem != "", c.OpticSign != "", c.OpticCharacter != "",
	} {
		if present {
			count++
		}
	}
	return count
}
