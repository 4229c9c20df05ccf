package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/malwinabelczewska/strenpy/internal/mech"
	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/malwinabelczewska/strenpy/internal/parse"
)

// Pipeline orchestrates the complete analysis of one specimen: raw instrument
// file in, material-property report out. It holds no per-specimen state, so a
// single Pipeline is safe to share across concurrent batch workers.
type Pipeline struct {
	config *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{config: cfg}
}

// AnalyzeResult contains the complete analysis result.
type AnalyzeResult struct {
	Report *model.Report
	Error  error
}

// AnalyzeFile analyzes a single specimen file and generates a complete report.
func (p *Pipeline) AnalyzeFile(ctx context.Context, spec model.SpecimenConfig) (*AnalyzeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	geom, err := p.resolveGeometry(spec)
	if err != nil {
		return nil, err
	}

	// 1. Parse the instrument file
	samples, err := parse.ReadFile(spec.File)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return p.Analyze(spec, geom, samples)
}

// Analyze runs the calculation stages over already-parsed samples.
func (p *Pipeline) Analyze(spec model.SpecimenConfig, geom model.Geometry, samples []model.Sample) (*AnalyzeResult, error) {
	// 2. Engineering series (includes post-failure filtering)
	eng := mech.NewEngineeringSeries(samples, geom)

	// 3. Young's modulus over the elastic prefix
	modulus, err := mech.YoungsModulus(eng, p.config.Analysis.ElasticLimitStrain)
	if err != nil {
		return nil, fmt.Errorf("youngs modulus: %w", err)
	}

	// 4. 0.2% offset yield
	yp, err := mech.OffsetYield(eng, modulus, p.config.Analysis.OffsetStrain)
	if err != nil {
		return nil, fmt.Errorf("offset yield: %w", err)
	}

	// 5. Ultimate tensile strength
	uts, utsIdx, err := mech.UltimateStrength(eng)
	if err != nil {
		return nil, fmt.Errorf("ultimate strength: %w", err)
	}

	// 6. True stress-strain conversion
	truth := mech.TrueFromEngineering(eng)

	// 7. Power-law hardening fit over the plastic region
	pl, err := mech.FitPowerLaw(truth, yp.Index, utsIdx)
	if err != nil {
		return nil, fmt.Errorf("fit power law: %w", err)
	}

	// 8. Strain-energy integrals
	resilience, err := mech.Resilience(eng, yp.Index)
	if err != nil {
		return nil, fmt.Errorf("resilience: %w", err)
	}
	toughness, err := mech.Toughness(eng)
	if err != nil {
		return nil, fmt.Errorf("toughness: %w", err)
	}

	report := &model.Report{
		Specimen:   spec.Name,
		SourceFile: spec.File,
		AnalyzedAt: time.Now().UTC(),
		Geometry:   geom,
		Samples:    eng.Len(),
		Properties: model.Properties{
			YoungsModulus:  modulus,
			OffsetStrain:   p.config.Analysis.OffsetStrain,
			YieldStress:    yp.Stress,
			YieldStrain:    yp.Strain,
			YieldIndex:     yp.Index,
			UTS:            uts,
			UTSStrain:      eng.Strain[utsIdx],
			UTSIndex:       utsIdx,
			FractureStrain: eng.Strain[eng.Len()-1],
			PowerLawA:      pl.A,
			PowerLawN:      pl.N,
			Resilience:     resilience,
			Toughness:      toughness,
		},
		Engineering: eng,
		True:        truth,
	}

	return &AnalyzeResult{Report: report}, nil
}

// resolveGeometry combines the manifest entry with configured defaults.
func (p *Pipeline) resolveGeometry(spec model.SpecimenConfig) (model.Geometry, error) {
	geom := model.Geometry{
		GaugeLength: spec.GaugeLength,
		Area:        spec.Area(),
	}
	if geom.GaugeLength <= 0 {
		geom.GaugeLength = p.config.Geometry.GaugeLengthMM
	}
	if geom.Area <= 0 {
		if p.config.Geometry.AreaMM2 > 0 {
			geom.Area = p.config.Geometry.AreaMM2
		} else if p.config.Geometry.DiameterMM > 0 {
			geom.Area = model.AreaFromDiameter(p.config.Geometry.DiameterMM)
		}
	}

	if geom.GaugeLength <= 0 {
		return model.Geometry{}, fmt.Errorf("specimen %q: gauge length not configured", spec.Name)
	}
	if geom.Area <= 0 {
		return model.Geometry{}, fmt.Errorf("specimen %q: cross-sectional area not configured (set area_mm2 or diameter_mm)", spec.Name)
	}
	return geom, nil
}
