package mech

import (
	"github.com/malwinabelczewska/strenpy/internal/model"
	"gonum.org/v1/gonum/stat"
)

// YoungsModulus fits the elastic slope E through the prefix of the series
// where strain ≤ elasticLimit. The fit is ordinary least squares forced
// through the origin: zero strain means zero stress.
//
// The cutoff directly determines offset-yield accuracy; the configured
// default is 0.002 (0.2% strain).
func YoungsModulus(s model.EngineeringSeries, elasticLimit float64) (float64, error) {
	end := 0
	for end < s.Len() && s.Strain[end] <= elasticLimit {
		end++
	}

	if end < 2 {
		return 0, &CalculationError{
			Kind:   KindInsufficientData,
			Op:     "youngs modulus",
			Detail: "fewer than 2 points in the elastic region",
		}
	}

	allZero := true
	for _, e := range s.Strain[:end] {
		if e != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return 0, &CalculationError{
			Kind:   KindDegenerateFit,
			Op:     "youngs modulus",
			Detail: "elastic region has zero strain variance",
		}
	}

	_, slope := stat.LinearRegression(s.Strain[:end], s.Stress[:end], nil, true)
	return slope, nil
}
