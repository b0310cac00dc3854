package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/lapidary/internal/model"
)

// fakeProvider returns a canned response for annotator tests.
type fakeProvider struct {
	response string
	gotReq   NotesRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Notes(ctx context.Context, req NotesRequest) (*NotesResponse, error) {
	f.gotReq = req
	return &NotesResponse{Notes: f.response, Model: "fake-model"}, nil
}

func sampleReport() model.Report {
	return model.Report{
		Matches: []model.MatchResult{
			{Mineral: model.Mineral{Name: "Quartz"}, Confidence: 92, MatchedProperties: []string{"ri", "sg"}},
			{Mineral: model.Mineral{Name: "Topaz"}, Confidence: 40, MatchedProperties: []string{"sg"}},
		},
	}
}

func TestBuildPrompt_ContainsAllowlistAndRules(t *testing.T) {
	report := sampleReport()
	prompt := BuildPrompt(report, []string{"Quartz", "Topaz"})

	if !strings.Contains(prompt, "- Quartz") || !strings.Contains(prompt, "- Topaz") {
		t.Error("Expected prompt to list allowed minerals")
	}
	if !strings.Contains(prompt, "MUST ONLY discuss minerals") {
		t.Error("Expected strict catalog rule in prompt")
	}
	if !strings.Contains(prompt, "confidence 92/100") {
		t.Error("Expected top candidate summary in prompt")
	}
}

func TestBuildPrompt_NoCandidates(t *testing.T) {
	prompt := BuildPrompt(model.Report{}, nil)
	if !strings.Contains(prompt, "(No candidates ranked)") {
		t.Error("Expected empty allowlist placeholder")
	}
}

func TestAnnotator_Annotate_StrictWarnings(t *testing.T) {
	provider := &fakeProvider{response: "The readings are consistent with Quartz rather than Topaz."}
	a := &Annotator{provider: provider, config: Config{StrictCatalog: true}}

	notes, err := a.Annotate(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !notes.Enabled {
		t.Error("Expected notes to be marked enabled")
	}
	if len(notes.Warnings) != 0 {
		t.Errorf("Expected no warnings for on-list notes, got %v", notes.Warnings)
	}

	if len(provider.gotReq.AllowedMinerals) != 2 {
		t.Errorf("Expected allowlist built from ranked candidates, got %v", provider.gotReq.AllowedMinerals)
	}
}

func TestAnnotator_Annotate_FlagsOffListNotes(t *testing.T) {
	provider := &fakeProvider{response: "This is certainly Moissanite, see https://example.com for details."}
	a := &Annotator{provider: provider, config: Config{StrictCatalog: true}}

	notes, err := a.Annotate(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(notes.Warnings) != 2 {
		t.Errorf("Expected warnings for external link and off-list candidates, got %v", notes.Warnings)
	}
}

func TestAnnotator_Disabled(t *testing.T) {
	a, err := NewAnnotator(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error for disabled annotator, got %v", err)
	}
	if a.IsEnabled() {
		t.Error("Expected annotator without provider to be disabled")
	}

	notes, err := a.Annotate(context.Background(), sampleReport())
	if err != nil || notes != nil {
		t.Errorf("Expected disabled annotator to return nil, nil; got %v, %v", notes, err)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "azure"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	md := RenderSeparateMarkdown(&model.LLMNotes{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		NotesMD:  "Consistent with Quartz.",
		Warnings: []string{"notes mention none of the ranked candidates"},
	})

	if !strings.Contains(md, "never affect scores") {
		t.Error("Expected separation disclaimer in markdown")
	}
	if !strings.Contains(md, "## Warnings") {
		t.Error("Expected warnings section")
	}
}
