package model

import "math"

// Sample is one time-step measurement taken from the instrument file.
// Samples keep their acquisition order; post-failure filtering depends on it.
type Sample struct {
	Displacement     float64 `json:"displacement_mm"` // crosshead displacement (mm)
	Force            float64 `json:"force_n"`         // measured load (N)
	InstrumentStress float64 `json:"stress_mpa"`      // instrument-reported stress (MPa), display/cross-check only
}

// Geometry holds the original (undeformed) specimen dimensions.
// Supplied by the caller, never inferred from the data file.
type Geometry struct {
	GaugeLength float64 `json:"gauge_length_mm"` // L0 (mm)
	Area        float64 `json:"area_mm2"`        // A0 (mm²)
}

// AreaFromDiameter returns the cross-sectional area of a round specimen.
func AreaFromDiameter(diameter float64) float64 {
	return math.Pi * diameter * diameter / 4
}

// EngineeringSeries holds index-aligned strain/stress computed against the
// original geometry. Strain and Stress always have equal length.
type EngineeringSeries struct {
	Strain []float64 `json:"strain"`
	Stress []float64 `json:"stress_mpa"`
}

// Len returns the number of retained samples.
func (s EngineeringSeries) Len() int { return len(s.Strain) }

// TrueSeries holds index-aligned logarithmic strain and true stress.
type TrueSeries struct {
	Strain []float64 `json:"strain"`
	Stress []float64 `json:"stress_mpa"`
}

// Len returns the number of points in the series.
func (s TrueSeries) Len() int { return len(s.Strain) }

// SpecimenConfig identifies one specimen in a batch manifest.
// Either AreaMM2 or DiameterMM must be set; AreaMM2 wins when both are.
type SpecimenConfig struct {
	Name        string  `yaml:"name" json:"name"`
	File        string  `yaml:"file" json:"file"`
	DiameterMM  float64 `yaml:"diameter_mm,omitempty" json:"diameter_mm,omitempty"`
	AreaMM2     float64 `yaml:"area_mm2,omitempty" json:"area_mm2,omitempty"`
	GaugeLength float64 `yaml:"gauge_length_mm,omitempty" json:"gauge_length_mm,omitempty"`
}

// Area resolves the cross-sectional area from the manifest entry.
// Returns 0 when neither area nor diameter is given.
func (s SpecimenConfig) Area() float64 {
	if s.AreaMM2 > 0 {
		return s.AreaMM2
	}
	if s.DiameterMM > 0 {
		return AreaFromDiameter(s.DiameterMM)
	}
	return 0
}
