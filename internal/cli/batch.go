package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/malwinabelczewska/strenpy/internal/figure"
	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/malwinabelczewska/strenpy/internal/pipeline"
	"github.com/malwinabelczewska/strenpy/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency     int
	comparisonTitle string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Analyze multiple specimens from a manifest in parallel",
	Long: `Batch analyzes every specimen listed in a YAML manifest:
- Each specimen names its instrument file and geometry
- Specimens are processed in parallel with configurable worker count
- Individual reports, CSV tables and figures are written per specimen
- A comparison figure overlays all successfully analyzed materials

Manifest format:
  gauge_length_mm: 25
  specimens:
    - name: CuNiSi
      file: data/Tensile_C_08.lis
      diameter_mm: 8.0
    - name: CuSn12
      file: data/Tensile_E_01.lis
      area_mm2: 50.27

Example:
  strenpy batch specimens.yaml
  strenpy batch specimens.yaml --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default from config)")
	batchCmd.Flags().BoolVar(&noFigures, "no-figures", false, "skip figure generation")
	batchCmd.Flags().Float64Var(&elasticLimit, "elastic-limit", 0, "elastic-region strain cutoff for the modulus fit (default 0.002)")
	batchCmd.Flags().StringVar(&comparisonTitle, "comparison-title", "Material Comparison", "title of the comparison figure")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	cfg := loadConfig()
	applyAnalyzeFlags(cfg)
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  strenpy Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifestPath)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	results, err := processor.ProcessManifest(context.Background(), manifestPath)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	// Pool completion order is nondeterministic; report in a stable order.
	sort.Slice(results, func(i, j int) bool { return results[i].Spec.Name < results[j].Spec.Name })

	successCount := 0
	failureCount := 0
	var reports []*model.Report

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Spec.Name, result.Error)
			continue
		}

		successCount++
		reports = append(reports, result.Report)

		if err := writeOutputs(cfg, result.Report); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Spec.Name, err)
			continue
		}

		props := result.Report.Properties
		fmt.Fprintf(os.Stderr, "✓ %s (E: %.0f GPa, yield: %.1f MPa, UTS: %.1f MPa)\n",
			result.Spec.Name, props.YoungsModulus/1000, props.YieldStress, props.UTS)
	}

	if cfg.Output.Figures && len(reports) > 1 {
		path := filepath.Join(cfg.Output.Dir, "figure_comparison.png")
		if err := figure.Comparison(reports, comparisonTitle, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ comparison figure: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote figure: %s\n", path)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d specimens\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d specimens failed", failureCount, len(results))
	}
	return nil
}
