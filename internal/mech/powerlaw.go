package mech

import (
	"math"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"gonum.org/v1/gonum/stat"
)

// PowerLaw holds the hardening fit σt = A·εt^n.
type PowerLaw struct {
	A float64 // strength coefficient (MPa)
	N float64 // hardening exponent, expected in (0, 1) for ductile metals
}

// FitPowerLaw fits the hardening law over the plastic region [start, end] of
// the true series (yield index up to the UTS index, where power-law behavior
// is expected). The fit linearizes to ln σt = ln A + n·ln εt and runs
// ordinary least squares on the logs.
//
// Points with εt ≤ 0 or σt ≤ 0 are excluded before taking logarithms. An
// out-of-range exponent is returned, not rejected: it usually signals a
// region-selection problem the caller should diagnose.
func FitPowerLaw(s model.TrueSeries, start, end int) (PowerLaw, error) {
	if start < 0 {
		start = 0
	}
	if end >= s.Len() {
		end = s.Len() - 1
	}

	var logStrain, logStress []float64
	for i := start; i <= end; i++ {
		if s.Strain[i] <= 0 || s.Stress[i] <= 0 {
			continue
		}
		logStrain = append(logStrain, math.Log(s.Strain[i]))
		logStress = append(logStress, math.Log(s.Stress[i]))
	}

	if len(logStrain) < 2 {
		return PowerLaw{}, &CalculationError{
			Kind:   KindInsufficientData,
			Op:     "power law",
			Detail: "fewer than 2 valid points in the plastic region",
		}
	}

	if floatsEqual(logStrain) {
		return PowerLaw{}, &CalculationError{
			Kind:   KindDegenerateFit,
			Op:     "power law",
			Detail: "plastic region has zero strain variance",
		}
	}

	logA, n := stat.LinearRegression(logStrain, logStress, nil, false)
	return PowerLaw{A: math.Exp(logA), N: n}, nil
}

func floatsEqual(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
