package mech

import (
	"github.com/malwinabelczewska/strenpy/internal/model"
)

// Resilience integrates the engineering curve from the first sample up to
// the yield index: the elastic energy storage capacity per unit volume
// (MPa ≡ MJ/m³). A yield at the first retained sample gives a zero-width
// integration region and therefore zero resilience, not an error.
func Resilience(s model.EngineeringSeries, yieldIndex int) (float64, error) {
	if s.Len() < 2 {
		return 0, &CalculationError{
			Kind:   KindInsufficientData,
			Op:     "resilience",
			Detail: "fewer than 2 points",
		}
	}
	if yieldIndex >= s.Len() {
		yieldIndex = s.Len() - 1
	}
	if yieldIndex < 0 {
		yieldIndex = 0
	}
	return trapezoid(s.Strain[:yieldIndex+1], s.Stress[:yieldIndex+1]), nil
}

// Toughness integrates the full (filtered) engineering curve to fracture.
func Toughness(s model.EngineeringSeries) (float64, error) {
	if s.Len() < 2 {
		return 0, &CalculationError{
			Kind:   KindInsufficientData,
			Op:     "toughness",
			Detail: "fewer than 2 points",
		}
	}
	return trapezoid(s.Strain, s.Stress), nil
}

// trapezoid integrates y over x by the trapezoidal rule. Written out rather
// than delegated to gonum/integrate, which panics on non-sorted abscissae:
// sensor noise can make strain locally non-monotonic and the integral must
// tolerate that.
func trapezoid(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += (y[i-1] + y[i]) * (x[i] - x[i-1]) / 2
	}
	return sum
}
