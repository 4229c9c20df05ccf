// Package figure renders the standard tensile-test figures from analysis
// reports: engineering curve with annotated key points, engineering vs true
// overlay, power-law fit, strain-energy regions and multi-material comparison.
package figure

import (
	"fmt"
	"image/color"
	"math"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorCurve   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorTrue    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorElastic = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorOffset  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorFit     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorFill    = color.RGBA{R: 31, G: 119, B: 180, A: 60}

	palette = []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
	}
)

const (
	figWidth  = 8 * vg.Inch
	figHeight = 5 * vg.Inch
)

// EngineeringCurve plots the engineering stress-strain curve with the Hooke
// line, the 0.2% offset construction line and the yield/UTS markers.
func EngineeringCurve(report *model.Report, path string) error {
	eng := report.Engineering
	props := report.Properties

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Engineering Stress-Strain Curve: %s", report.Specimen)
	p.X.Label.Text = "Engineering Strain"
	p.Y.Label.Text = "Engineering Stress (MPa)"
	p.Add(plotter.NewGrid())

	curve, err := line(xys(eng.Strain, eng.Stress), colorCurve, 2, nil)
	if err != nil {
		return err
	}
	p.Add(curve)
	p.Legend.Add(report.Specimen, curve)

	maxStrain := eng.Strain[eng.Len()-1]

	// Hooke's law line over the initial region.
	hooke, err := syntheticLine(0, math.Min(0.01, maxStrain*0.3), func(e float64) float64 {
		return props.YoungsModulus * e
	}, colorElastic)
	if err != nil {
		return err
	}
	p.Add(hooke)
	p.Legend.Add(fmt.Sprintf("Hooke's law (E = %.0f GPa)", props.YoungsModulus/1000), hooke)

	// Offset construction line from (offset, 0) up to just past yield.
	offsetEnd := math.Min(props.YieldStrain*1.5, maxStrain*0.4)
	offset, err := syntheticLine(props.OffsetStrain, offsetEnd, func(e float64) float64 {
		return props.YoungsModulus * (e - props.OffsetStrain)
	}, colorOffset)
	if err != nil {
		return err
	}
	p.Add(offset)
	p.Legend.Add(fmt.Sprintf("%.1f%% offset line", props.OffsetStrain*100), offset)

	if err := addMarker(p, props.YieldStrain, props.YieldStress,
		fmt.Sprintf("Yield stress (%.1f%% offset)", props.OffsetStrain*100)); err != nil {
		return err
	}
	if err := addMarker(p, props.UTSStrain, props.UTS, "UTS"); err != nil {
		return err
	}

	return p.Save(figWidth, figHeight, path)
}

// EngineeringVsTrue overlays the engineering and true curves up to necking.
func EngineeringVsTrue(report *model.Report, path string) error {
	end := report.Properties.UTSIndex + 1

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Engineering vs True Stress-Strain: %s", report.Specimen)
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Stress (MPa)"
	p.Add(plotter.NewGrid())

	eng, err := line(xys(report.Engineering.Strain[:end], report.Engineering.Stress[:end]), colorCurve, 2, nil)
	if err != nil {
		return err
	}
	truth, err := line(xys(report.True.Strain[:end], report.True.Stress[:end]), colorTrue, 2, nil)
	if err != nil {
		return err
	}

	p.Add(eng, truth)
	p.Legend.Add("engineering", eng)
	p.Legend.Add("true", truth)

	return p.Save(figWidth, figHeight, path)
}

// PowerLawCurve plots the plastic-region true curve against the fitted
// hardening law σt = A·εt^n.
func PowerLawCurve(report *model.Report, path string) error {
	props := report.Properties
	end := props.UTSIndex + 1

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Power-Law Hardening: %s", report.Specimen)
	p.X.Label.Text = "True Strain"
	p.Y.Label.Text = "True Stress (MPa)"
	p.Add(plotter.NewGrid())

	data, err := line(xys(report.True.Strain[:end], report.True.Stress[:end]), colorCurve, 2, nil)
	if err != nil {
		return err
	}
	p.Add(data)
	p.Legend.Add("measured", data)

	maxStrain := report.True.Strain[end-1]
	fit, err := syntheticLine(maxStrain/100, maxStrain, func(e float64) float64 {
		return props.PowerLawA * math.Pow(e, props.PowerLawN)
	}, colorFit)
	if err != nil {
		return err
	}
	p.Add(fit)
	p.Legend.Add(fmt.Sprintf("fit: %.0f·ε^%.3f", props.PowerLawA, props.PowerLawN), fit)

	return p.Save(figWidth, figHeight, path)
}

// StrainEnergy plots the engineering curve with the resilience region (area
// to yield) shaded.
func StrainEnergy(report *model.Report, path string) error {
	eng := report.Engineering
	props := report.Properties

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Strain Energy: %s", report.Specimen)
	p.X.Label.Text = "Engineering Strain"
	p.Y.Label.Text = "Engineering Stress (MPa)"
	p.Add(plotter.NewGrid())

	// Shade the area under the curve up to the yield index.
	shade := make(plotter.XYs, 0, props.YieldIndex+3)
	for i := 0; i <= props.YieldIndex && i < eng.Len(); i++ {
		shade = append(shade, plotter.XY{X: eng.Strain[i], Y: eng.Stress[i]})
	}
	if len(shade) > 0 {
		shade = append(shade,
			plotter.XY{X: shade[len(shade)-1].X, Y: 0},
			plotter.XY{X: shade[0].X, Y: 0},
		)
		poly, err := plotter.NewPolygon(shade)
		if err != nil {
			return err
		}
		poly.Color = colorFill
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(fmt.Sprintf("resilience %.2f MJ/m³", props.Resilience), poly)
	}

	curve, err := line(xys(eng.Strain, eng.Stress), colorCurve, 2, nil)
	if err != nil {
		return err
	}
	p.Add(curve)
	p.Legend.Add(fmt.Sprintf("toughness %.1f MJ/m³", props.Toughness), curve)

	return p.Save(figWidth, figHeight, path)
}

// Comparison overlays the engineering curves of several materials.
func Comparison(reports []*model.Report, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Engineering Strain"
	p.Y.Label.Text = "Engineering Stress (MPa)"
	p.Add(plotter.NewGrid())

	for i, report := range reports {
		c := palette[i%len(palette)]
		curve, err := line(xys(report.Engineering.Strain, report.Engineering.Stress), c, 2, nil)
		if err != nil {
			return err
		}
		p.Add(curve)
		p.Legend.Add(report.Specimen, curve)
	}

	return p.Save(figWidth, figHeight, path)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

func line(pts plotter.XYs, c color.RGBA, width float64, dashes []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(width)
	l.Dashes = dashes
	return l, nil
}

// syntheticLine samples fn over [from, to] and renders it dashed.
func syntheticLine(from, to float64, fn func(float64) float64, c color.RGBA) (*plotter.Line, error) {
	const steps = 50
	pts := make(plotter.XYs, steps)
	for i := 0; i < steps; i++ {
		x := from + (to-from)*float64(i)/float64(steps-1)
		pts[i] = plotter.XY{X: x, Y: fn(x)}
	}
	return line(pts, c, 1, []vg.Length{vg.Points(4), vg.Points(2)})
}

func addMarker(p *plot.Plot, x, y float64, label string) error {
	s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(s)
	p.Legend.Add(label, s)
	return nil
}
