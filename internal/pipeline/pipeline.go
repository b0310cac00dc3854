package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/lapidary/internal/catalog"
	"github.com/ppiankov/lapidary/internal/engine"
	"github.com/ppiankov/lapidary/internal/llm"
	"github.com/ppiankov/lapidary/internal/model"
)

// Pipeline orchestrates one identification: load catalog, rank candidates,
// build the report, optionally attach notes.
type Pipeline struct {
	store      catalog.Store
	identifier *engine.Identifier
	renderer   *Renderer
	annotator  *llm.Annotator // nil if disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled {
		store = catalog.NewCachedStore(store, cfg.Cache.TTL)
	}

	// Notes are optional; a misconfigured provider degrades to a warning.
	var annotator *llm.Annotator
	if cfg.LLM.Provider != "" {
		a, err := llm.NewAnnotator(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			annotator = a
		}
	}

	return &Pipeline{
		store:      store,
		identifier: engine.NewIdentifier(cfg.Matching.MinConfidence),
		renderer:   NewRenderer(cfg.Output.IncludeFooter, cfg.Output.TopN),
		annotator:  annotator,
		config:     cfg,
	}, nil
}

// Identify runs the engine against the configured catalog.
func (p *Pipeline) Identify(ctx context.Context, c model.Criteria) (*model.Report, error) {
	return p.IdentifyWithOverrides(ctx, c, model.ToleranceOverrides{})
}

// IdentifyWithOverrides runs the engine with per-call tolerance overrides
// merged onto the configured base tolerances.
func (p *Pipeline) IdentifyWithOverrides(ctx context.Context, c model.Criteria, overrides model.ToleranceOverrides) (*model.Report, error) {
	minerals, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	tolerances := p.config.Tolerances.Merge(overrides)
	matches := p.identifier.FindMatches(minerals, c, tolerances)

	if max := p.config.Matching.MaxResults; max > 0 && len(matches) > max {
		matches = matches[:max]
	}

	report := &model.Report{
		Criteria:      c,
		Tolerances:    tolerances,
		CatalogSource: p.store.Source(),
		CatalogSize:   len(minerals),
		GeneratedAt:   time.Now().UTC(),
		Matches:       matches,
	}

	// Notes come AFTER ranking and never affect it.
	if p.annotator.IsEnabled() {
		notes, err := p.annotator.Annotate(ctx, *report)
		if err != nil {
			fmt.Printf("Warning: LLM notes generation failed: %v\n", err)
		} else if notes != nil {
			report.LLM = notes
		}
	}

	return report, nil
}

// RenderReport renders the report to the requested outputs.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
