package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/malwinabelczewska/strenpy/internal/pipeline"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and analyze instrument files as they appear",
	Long: `Watch monitors a directory for new or updated .lis files - the usual
setup when the instrument drops one file per completed test - and runs the
full analysis on each. Geometry comes from flags or the configured defaults,
so all specimens in the watched directory share one cross-section.

Example:
  strenpy watch /srv/instrument/export --diameter 8 --output-dir reports
  strenpy watch ./incoming --area 50.27`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Float64Var(&gaugeLength, "gauge-length", 0, "original gauge length L0 in mm (default from config, 25)")
	watchCmd.Flags().Float64Var(&diameter, "diameter", 0, "specimen diameter in mm (round cross-section)")
	watchCmd.Flags().Float64Var(&area, "area", 0, "cross-sectional area A0 in mm² (overrides --diameter)")
	watchCmd.Flags().Float64Var(&elasticLimit, "elastic-limit", 0, "elastic-region strain cutoff for the modulus fit (default 0.002)")
	watchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default from config)")
	watchCmd.Flags().BoolVar(&noFigures, "no-figures", false, "skip figure generation")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg := loadConfig()
	applyAnalyzeFlags(cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg)

	fmt.Fprintf(os.Stderr, "Watching %s for .lis files (Ctrl-C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "\nStopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".lis") {
				continue
			}
			analyzeWatched(ctx, p, cfg, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "✗ watch error: %v\n", err)
		}
	}
}

// analyzeWatched analyzes one dropped file; failures are reported but do not
// stop the watch loop.
func analyzeWatched(ctx context.Context, p *pipeline.Pipeline, cfg *model.Config, path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	spec := model.SpecimenConfig{
		Name:        name,
		File:        path,
		DiameterMM:  diameter,
		AreaMM2:     area,
		GaugeLength: gaugeLength,
	}

	result, err := p.AnalyzeFile(ctx, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
		return
	}

	if err := writeOutputs(cfg, result.Report); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
		return
	}

	props := result.Report.Properties
	fmt.Fprintf(os.Stderr, "✓ %s (E: %.0f GPa, yield: %.1f MPa, UTS: %.1f MPa)\n",
		name, props.YoungsModulus/1000, props.YieldStress, props.UTS)
}
