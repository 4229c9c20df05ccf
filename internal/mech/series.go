// Package mech implements the tensile-test property calculations: engineering
// and true stress-strain series, Young's modulus, 0.2% offset yield, UTS,
// power-law hardening fit and strain-energy integrals.
//
// Reference: Roylance, D. (2001), "Stress-Strain Curves", MIT Department of
// Materials Science and Engineering.
package mech

import (
	"math"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"gonum.org/v1/gonum/floats"
)

// NewEngineeringSeries builds the engineering stress-strain series from raw
// samples and the original geometry:
//
//	εe[i] = δ[i] / L0
//	σe[i] = P[i] / A0
//
// Stress is computed from the measured force, not the instrument-reported
// stress, so the pipeline stays independent of instrument calibration.
//
// After fracture the instrument keeps sampling and records negative or
// erratic loads. The series is truncated at the first negative-stress sample
// after the stress peak (inclusive); samples before the peak are never
// dropped, whatever their sign.
func NewEngineeringSeries(samples []model.Sample, geom model.Geometry) model.EngineeringSeries {
	n := len(samples)
	s := model.EngineeringSeries{
		Strain: make([]float64, n),
		Stress: make([]float64, n),
	}
	for i, sm := range samples {
		s.Strain[i] = sm.Displacement / geom.GaugeLength
		s.Stress[i] = sm.Force / geom.Area
	}
	return filterPostFailure(s)
}

// filterPostFailure discards the post-fracture tail: everything from the
// first negative-stress sample after the peak onward.
func filterPostFailure(s model.EngineeringSeries) model.EngineeringSeries {
	if s.Len() == 0 {
		return s
	}
	peak := floats.MaxIdx(s.Stress)
	for i := peak + 1; i < s.Len(); i++ {
		if s.Stress[i] < 0 {
			return model.EngineeringSeries{
				Strain: s.Strain[:i],
				Stress: s.Stress[:i],
			}
		}
	}
	return s
}

// TrueFromEngineering converts the engineering series pointwise:
//
//	εt[i] = ln(1 + εe[i])
//	σt[i] = σe[i] · (1 + εe[i])
//
// Index alignment with the input is preserved; the input is assumed to be
// already filtered. The conversion is physically valid only up to necking,
// so callers restrict fits to the region before the UTS index.
func TrueFromEngineering(s model.EngineeringSeries) model.TrueSeries {
	n := s.Len()
	t := model.TrueSeries{
		Strain: make([]float64, n),
		Stress: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t.Strain[i] = math.Log(1 + s.Strain[i])
		t.Stress[i] = s.Stress[i] * (1 + s.Strain[i])
	}
	return t
}

// UltimateStrength returns the maximum engineering stress and its index.
func UltimateStrength(s model.EngineeringSeries) (float64, int, error) {
	if s.Len() == 0 {
		return 0, 0, &CalculationError{Kind: KindEmptySeries, Op: "ultimate strength"}
	}
	idx := floats.MaxIdx(s.Stress)
	return s.Stress[idx], idx, nil
}
