package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lapidary/internal/pipeline"
	"github.com/ppiankov/lapidary/internal/worker"
)

var (
	concurrency  int
	maxEvalRate  float64
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Identify multiple measurement sets from a file in parallel",
	Long: `Batch processes multiple measurement sets concurrently:
- Read criteria from a JSON Lines input file (one object per line,
  blank lines and # comments skipped)
- Identify sets in parallel with a configurable worker count
- Optionally cap identifications per second on shared machines
- Write an individual JSON report per input line

Example input line:
  {"ri": 1.548, "sg": 2.65, "hardness": 7}

Example:
  lapidary batch measurements.jsonl --catalog minerals.db
  lapidary batch measurements.jsonl --concurrency 8 --output-dir ./reports
  lapidary batch measurements.jsonl --max-eval-rate 50`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Float64Var(&maxEvalRate, "max-eval-rate", 0, "max identifications per second (0 = unlimited)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lapidary-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared identify flags relevant in batch mode
	batchCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog path (.db, .sqlite, .yaml, .json)")
	batchCmd.Flags().IntVar(&minConfidence, "min-confidence", 1, "minimum confidence score (0-100)")
	batchCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum results per report (0 = unlimited)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable catalog cache (force fresh load)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Lapidary Batch Identification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if maxEvalRate > 0 {
		fmt.Fprintf(os.Stderr, "  Rate cap:     %.1f/s\n", maxEvalRate)
	}
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Concurrency.MaxEvalRate = maxEvalRate

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.Concurrency.MaxEvalRate)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter, cfg.Output.TopN)
	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ line %d: %v\n", result.Line, result.Err)
			continue
		}

		path := filepath.Join(outputDir, fmt.Sprintf("line-%04d.json", result.Line))
		if err := renderer.RenderJSON(result.Report, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ line %d: %v\n", result.Line, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ line %d: %d candidates -> %s\n",
				result.Line, len(result.Report.Matches), path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d measurement sets (%d failed)\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(results))
	}
	return nil
}
