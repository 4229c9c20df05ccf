package mech

import (
	"math"
	"testing"

	"github.com/malwinabelczewska/strenpy/internal/model"
)

// powerLawSeries generates σt = A·εt^n exactly over [minStrain, maxStrain].
func powerLawSeries(a, n, minStrain, maxStrain float64, points int) model.TrueSeries {
	s := model.TrueSeries{
		Strain: make([]float64, points),
		Stress: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		e := minStrain + (maxStrain-minStrain)*float64(i)/float64(points-1)
		s.Strain[i] = e
		s.Stress[i] = a * math.Pow(e, n)
	}
	return s
}

func TestFitPowerLaw_ExactRecovery(t *testing.T) {
	s := powerLawSeries(100, 0.3, 0.01, 0.3, 50)

	pl, err := FitPowerLaw(s, 0, s.Len()-1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(pl.A-100)/100 > 1e-9 {
		t.Errorf("Expected A 100, got %v", pl.A)
	}
	if math.Abs(pl.N-0.3)/0.3 > 1e-9 {
		t.Errorf("Expected n 0.3, got %v", pl.N)
	}
}

func TestFitPowerLaw_ExcludesNonPositiveStrain(t *testing.T) {
	s := powerLawSeries(500, 0.474, 0.01, 0.3, 50)
	// Prepend points the logarithm is undefined for.
	s.Strain = append([]float64{-0.001, 0.0}, s.Strain...)
	s.Stress = append([]float64{10.0, 20.0}, s.Stress...)

	pl, err := FitPowerLaw(s, 0, s.Len()-1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(pl.A-500)/500 > 1e-6 {
		t.Errorf("Expected A 500, got %v", pl.A)
	}
	if math.Abs(pl.N-0.474)/0.474 > 1e-6 {
		t.Errorf("Expected n 0.474, got %v", pl.N)
	}
}

func TestFitPowerLaw_OutOfRangeExponentReturned(t *testing.T) {
	// n outside (0, 1) signals a region-selection problem, but the fit
	// result is still handed back for the caller to diagnose.
	s := powerLawSeries(100, 1.5, 0.01, 0.3, 50)

	pl, err := FitPowerLaw(s, 0, s.Len()-1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(pl.N-1.5)/1.5 > 1e-9 {
		t.Errorf("Expected n 1.5 returned as-is, got %v", pl.N)
	}
}

func TestFitPowerLaw_InsufficientData(t *testing.T) {
	s := model.TrueSeries{
		Strain: []float64{-0.1, 0.0, 0.1},
		Stress: []float64{10, 20, 30},
	}

	_, err := FitPowerLaw(s, 0, s.Len()-1)
	if !IsKind(err, KindInsufficientData) {
		t.Errorf("Expected %s error, got %v", KindInsufficientData, err)
	}
}

func TestFitPowerLaw_DegenerateFit(t *testing.T) {
	s := model.TrueSeries{
		Strain: []float64{0.1, 0.1, 0.1},
		Stress: []float64{10, 20, 30},
	}

	_, err := FitPowerLaw(s, 0, s.Len()-1)
	if !IsKind(err, KindDegenerateFit) {
		t.Errorf("Expected %s error, got %v", KindDegenerateFit, err)
	}
}

func TestFitPowerLaw_ClampsRegion(t *testing.T) {
	s := powerLawSeries(100, 0.3, 0.01, 0.3, 20)

	pl, err := FitPowerLaw(s, -5, s.Len()+10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(pl.A-100)/100 > 1e-9 {
		t.Errorf("Expected A 100, got %v", pl.A)
	}
}
