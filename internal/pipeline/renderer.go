package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/olekukonko/tablewriter"
)

// Renderer writes analysis reports in the supported output formats.
type Renderer struct{}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the scalar report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderCSV writes the retained stress-strain series, one row per sample:
// engineering strain/stress and the index-aligned true strain/stress.
func (r *Renderer) RenderCSV(report *model.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close CSV: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"strain_e", "stress_e_mpa", "strain_t", "stress_t_mpa"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	eng, truth := report.Engineering, report.True
	for i := 0; i < eng.Len(); i++ {
		row := []string{
			formatFloat(eng.Strain[i]),
			formatFloat(eng.Stress[i]),
			formatFloat(truth.Strain[i]),
			formatFloat(truth.Stress[i]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}

// RenderTable prints the material-property summary as an ASCII table.
func (r *Renderer) RenderTable(report *model.Report, out io.Writer) {
	p := report.Properties

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Property", "Value", "Unit"})
	table.Append([]string{"Young's modulus E", fmt.Sprintf("%.0f", p.YoungsModulus/1000), "GPa"})
	table.Append([]string{"Yield stress (0.2% offset)", fmt.Sprintf("%.1f", p.YieldStress), "MPa"})
	table.Append([]string{"Ultimate tensile strength", fmt.Sprintf("%.1f", p.UTS), "MPa"})
	table.Append([]string{"Strain at UTS", fmt.Sprintf("%.1f", p.UTSStrain*100), "%"})
	table.Append([]string{"Fracture strain", fmt.Sprintf("%.1f", p.FractureStrain*100), "%"})
	table.Append([]string{"Power-law A", fmt.Sprintf("%.0f", p.PowerLawA), "MPa"})
	table.Append([]string{"Power-law n", fmt.Sprintf("%.3f", p.PowerLawN), ""})
	table.Append([]string{"Modulus of resilience", fmt.Sprintf("%.2f", p.Resilience), "MJ/m³"})
	table.Append([]string{"Modulus of toughness", fmt.Sprintf("%.1f", p.Toughness), "MJ/m³"})
	table.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
