package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/malwinabelczewska/strenpy/internal/figure"
	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/malwinabelczewska/strenpy/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	specimenName string
	gaugeLength  float64
	diameter     float64
	area         float64
	elasticLimit float64
	outputDir    string
	noFigures    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.lis>",
	Short: "Analyze a single tensile-test instrument file",
	Long: `Analyze parses one instrument .lis file and derives the full set of
material properties:
- Engineering and true stress-strain series (post-failure tail removed)
- Young's modulus from the elastic region
- 0.2% offset yield stress
- Ultimate tensile strength
- Power-law hardening fit
- Moduli of resilience and toughness

Example:
  strenpy analyze data/Tensile_E_01.lis --name CuSn12 --diameter 8
  strenpy analyze data/Tensile_C_08.lis --area 50.3 --output-dir reports`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Geometry flags
	analyzeCmd.Flags().StringVar(&specimenName, "name", "", "specimen name (default: file basename)")
	analyzeCmd.Flags().Float64Var(&gaugeLength, "gauge-length", 0, "original gauge length L0 in mm (default from config, 25)")
	analyzeCmd.Flags().Float64Var(&diameter, "diameter", 0, "specimen diameter in mm (round cross-section)")
	analyzeCmd.Flags().Float64Var(&area, "area", 0, "cross-sectional area A0 in mm² (overrides --diameter)")

	// Analysis flags
	analyzeCmd.Flags().Float64Var(&elasticLimit, "elastic-limit", 0, "elastic-region strain cutoff for the modulus fit (default 0.002)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default from config)")
	analyzeCmd.Flags().BoolVar(&noFigures, "no-figures", false, "skip figure generation")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg := loadConfig()
	applyAnalyzeFlags(cfg)

	name := specimenName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	spec := model.SpecimenConfig{
		Name:        name,
		File:        file,
		DiameterMM:  diameter,
		AreaMM2:     area,
		GaugeLength: gaugeLength,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Specimen: %s\n", name)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.AnalyzeFile(context.Background(), spec)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}
	report := result.Report

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Retained %d samples after filtering\n", report.Samples)
		fmt.Fprintf(os.Stderr, "✓ E = %.0f GPa, yield = %.1f MPa, UTS = %.1f MPa\n",
			report.Properties.YoungsModulus/1000, report.Properties.YieldStress, report.Properties.UTS)
		fmt.Fprintln(os.Stderr)
	}

	if err := writeOutputs(cfg, report); err != nil {
		return err
	}

	pipeline.NewRenderer().RenderTable(report, os.Stdout)
	return nil
}

func applyAnalyzeFlags(cfg *model.Config) {
	if elasticLimit > 0 {
		cfg.Analysis.ElasticLimitStrain = elasticLimit
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if noFigures {
		cfg.Output.Figures = false
	}
	cfg.Output.Verbose = verbose
}

// writeOutputs renders the JSON report, the stress-strain CSV and, unless
// disabled, the per-specimen figures into the output directory.
func writeOutputs(cfg *model.Config, report *model.Report) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	slug := sanitizeFilename(report.Specimen)
	renderer := pipeline.NewRenderer()

	jsonPath := filepath.Join(cfg.Output.Dir, slug+".json")
	if err := renderer.RenderJSON(report, jsonPath); err != nil {
		return fmt.Errorf("render JSON: %w", err)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
	}

	csvPath := filepath.Join(cfg.Output.Dir, slug+"_stress_strain.csv")
	if err := renderer.RenderCSV(report, csvPath); err != nil {
		return fmt.Errorf("render CSV: %w", err)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s\n", csvPath)
	}

	if !cfg.Output.Figures {
		return nil
	}

	for _, fig := range []struct {
		name   string
		render func(*model.Report, string) error
	}{
		{"engineering", figure.EngineeringCurve},
		{"eng_vs_true", figure.EngineeringVsTrue},
		{"power_law", figure.PowerLawCurve},
		{"strain_energy", figure.StrainEnergy},
	} {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("figure_%s_%s.png", slug, fig.name))
		if err := fig.render(report, path); err != nil {
			return fmt.Errorf("render %s figure: %w", fig.name, err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote figure: %s\n", path)
		}
	}
	return nil
}

// sanitizeFilename sanitizes a specimen name for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	s = replacer.Replace(s)
	if s == "" {
		s = "specimen"
	}
	return s
}
