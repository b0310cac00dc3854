package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lapidary/internal/model"
	"github.com/ppiankov/lapidary/internal/pipeline"
)

var (
	// Criteria flags. Presence is detected via cobra's Changed, so an
	// unset flag means "not evaluated", never "fails".
	riFlag, riMinFlag, riMaxFlag         float64
	sgFlag, birefFlag, dispFlag          float64
	hardnessFlag                         float64
	systemFlag, opticSignFlag, opticFlag string

	// Tolerance override flags
	tolRI, tolSG, tolBiref, tolDisp, tolHardness float64

	catalogPath   string
	minConfidence int
	maxResults    int
	outJSON       string
	outMD         string
	noCache       bool
	noFooter      bool
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// identifyCmd represents the identify command
var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Rank catalog minerals against measured properties",
	Long: `Identify scores every catalog record against the supplied measurements:
- Continuous properties (RI, SG, birefringence, dispersion, hardness)
  match within tolerance-expanded reference ranges
- Crystal system matches exactly (case-insensitive)
- Optic sign and character are derived from catalog descriptions
- Candidates are ranked by a weighted 0-100 confidence score

Only supplied flags participate in scoring.

Example:
  lapidary identify --ri 2.417 --sg 3.52
  lapidary identify --ri-min 1.614 --ri-max 1.666 --system trigonal
  lapidary identify --ri 1.544 --tol-ri 0.005 --json report.json --md report.md
  lapidary identify --sg 3.5 --hardness 8 --llm --llm-provider openai`,
	Args: cobra.NoArgs,
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)

	// Criteria flags
	identifyCmd.Flags().Float64Var(&riFlag, "ri", 0, "refractive index (single reading)")
	identifyCmd.Flags().Float64Var(&riMinFlag, "ri-min", 0, "lower refractive index reading (anisotropic mode)")
	identifyCmd.Flags().Float64Var(&riMaxFlag, "ri-max", 0, "upper refractive index reading (anisotropic mode)")
	identifyCmd.Flags().Float64Var(&sgFlag, "sg", 0, "specific gravity")
	identifyCmd.Flags().Float64Var(&birefFlag, "birefringence", 0, "birefringence")
	identifyCmd.Flags().Float64Var(&dispFlag, "dispersion", 0, "dispersion")
	identifyCmd.Flags().Float64Var(&hardnessFlag, "hardness", 0, "Mohs hardness")
	identifyCmd.Flags().StringVar(&systemFlag, "system", "", "crystal system (e.g. cubic, trigonal)")
	identifyCmd.Flags().StringVar(&opticSignFlag, "optic-sign", "", "optic sign: + or -")
	identifyCmd.Flags().StringVar(&opticFlag, "optic-character", "", "optic character: isotropic, uniaxial or biaxial")

	// Tolerance overrides
	identifyCmd.Flags().Float64Var(&tolRI, "tol-ri", 0, "RI tolerance override (default 0.01)")
	identifyCmd.Flags().Float64Var(&tolSG, "tol-sg", 0, "SG tolerance override (default 0.05)")
	identifyCmd.Flags().Float64Var(&tolBiref, "tol-biref", 0, "birefringence tolerance override (default 0.005)")
	identifyCmd.Flags().Float64Var(&tolDisp, "tol-disp", 0, "dispersion tolerance override (default 0.003)")
	identifyCmd.Flags().Float64Var(&tolHardness, "tol-hardness", 0, "hardness tolerance override (default 0.5)")

	// Catalog and output flags
	identifyCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog path (.db, .sqlite, .yaml, .json)")
	identifyCmd.Flags().IntVar(&minConfidence, "min-confidence", 1, "minimum confidence score (0-100)")
	identifyCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum results (0 = unlimited)")
	identifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	identifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	identifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable catalog cache (force fresh load)")
	identifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	identifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM identification notes")
	identifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	identifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")

	_ = viper.BindPFlag("catalog.path", identifyCmd.Flags().Lookup("catalog"))
}

func runIdentify(cmd *cobra.Command, args []string) error {
	criteria := criteriaFromFlags(cmd)
	if criteria.IsEmpty() {
		return fmt.Errorf("no criteria supplied (see 'lapidary identify --help' for available measurements)")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Catalog: %s\n", cfg.Catalog.Path)
		fmt.Fprintf(os.Stderr, "Min confidence: %d\n", cfg.Matching.MinConfidence)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := p.IdentifyWithOverrides(ctx, criteria, overridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("identify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Evaluated %d catalog records\n", report.CatalogSize)
		fmt.Fprintf(os.Stderr, "✓ %d candidates above minimum confidence\n", len(report.Matches))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated notes using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// criteriaFromFlags builds the sparse criteria from explicitly set flags.
func criteriaFromFlags(cmd *cobra.Command) model.Criteria {
	var c model.Criteria

	set := func(name string, value float64) *float64 {
		if cmd.Flags().Changed(name) {
			return &value
		}
		return nil
	}

	c.RI = set("ri", riFlag)
	c.RIMin = set("ri-min", riMinFlag)
	c.RIMax = set("ri-max", riMaxFlag)
	c.SG = set("sg", sgFlag)
	c.Birefringence = set("birefringence", birefFlag)
	c.Dispersion = set("dispersion", dispFlag)
	c.Hardness = set("hardness", hardnessFlag)
	c.CrystalSystem = systemFlag
	c.OpticSign = opticSignFlag
	c.OpticCharacter = opticFlag

	return c
}

// overridesFromFlags collects explicitly set tolerance overrides.
func overridesFromFlags(cmd *cobra.Command) model.ToleranceOverrides {
	var o model.ToleranceOverrides

	set := func(name string, value float64) *float64 {
		if cmd.Flags().Changed(name) {
			return &value
		}
		return nil
	}

	o.RI = set("tol-ri", tolRI)
	o.SG = set("tol-sg", tolSG)
	o.Birefringence = set("tol-biref", tolBiref)
	o.Dispersion = set("tol-disp", tolDisp)
	o.Hardness = set("tol-hardness", tolHardness)

	return o
}

// buildConfig assembles the effective configuration from defaults, the
// config file/environment (via viper) and flags.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Catalog.Path = catalogPath
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = viper.GetString("catalog.path")
	}
	if cfg.Catalog.Path == "" {
		return nil, fmt.Errorf("no catalog configured (use --catalog or set catalog.path in ~/.lapidary/config.yaml)")
	}

	cfg.Matching.MinConfidence = minConfidence
	cfg.Matching.MaxResults = maxResults
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// configureLLM fills LLM settings from flags and environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictCatalog = true // Always enforce

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
