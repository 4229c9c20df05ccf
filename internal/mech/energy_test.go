package mech

import (
	"math"
	"testing"

	"github.com/malwinabelczewska/strenpy/internal/model"
)

func TestToughness_LinearCurve(t *testing.T) {
	// Area under σ = 8000·ε over [0, 0.5] is 8000·0.5²/2 = 1000.
	var s model.EngineeringSeries
	for i := 0; i <= 100; i++ {
		e := 0.5 * float64(i) / 100
		s.Strain = append(s.Strain, e)
		s.Stress = append(s.Stress, 8000*e)
	}

	got, err := Toughness(s)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(got-1000)/1000 > 1e-9 {
		t.Errorf("Expected toughness 1000, got %v", got)
	}
}

func TestResilience_UpToYieldIndex(t *testing.T) {
	// Elastic ramp to index 19, flat beyond: resilience integrates only the
	// triangle under the ramp.
	var s model.EngineeringSeries
	for i := 0; i < 100; i++ {
		e := 0.05 * float64(i) / 99
		s.Strain = append(s.Strain, e)
		if i < 20 {
			s.Stress = append(s.Stress, 100000*e)
		} else {
			s.Stress = append(s.Stress, s.Stress[19])
		}
	}

	resilience, err := Resilience(s, 19)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	toughness, err := Toughness(s)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resilience <= 0 {
		t.Errorf("Expected positive resilience, got %v", resilience)
	}
	if resilience >= toughness {
		t.Errorf("Expected resilience %v < toughness %v", resilience, toughness)
	}
}

func TestToughness_GreaterOrEqualResilience(t *testing.T) {
	// The toughness integral covers a superset of the resilience region for
	// every yield index.
	var s model.EngineeringSeries
	for i := 0; i <= 60; i++ {
		e := 0.3 * float64(i) / 60
		s.Strain = append(s.Strain, e)
		s.Stress = append(s.Stress, 400*math.Sqrt(e))
	}

	toughness, err := Toughness(s)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for yieldIdx := 1; yieldIdx < s.Len(); yieldIdx++ {
		resilience, err := Resilience(s, yieldIdx)
		if err != nil {
			t.Fatalf("yield index %d: expected no error, got %v", yieldIdx, err)
		}
		if resilience > toughness+1e-12 {
			t.Errorf("yield index %d: resilience %v exceeds toughness %v", yieldIdx, resilience, toughness)
		}
	}
}

func TestToughness_EqualsResilienceAtFracture(t *testing.T) {
	// Fracture at yield: both integrals cover the same region.
	s := linearSeries(100000, 0.002, 10)

	resilience, err := Resilience(s, s.Len()-1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	toughness, err := Toughness(s)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(resilience-toughness) > 1e-12 {
		t.Errorf("Expected resilience %v == toughness %v", resilience, toughness)
	}
}

func TestResilience_YieldAtFirstSample(t *testing.T) {
	// A yield at index 0 on a valid series is a zero-width region, not a
	// calculation failure.
	s := linearSeries(100000, 0.002, 10)

	got, err := Resilience(s, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != 0 {
		t.Errorf("Expected zero resilience for yield at the first sample, got %v", got)
	}
}

func TestEnergy_ToleratesNonMonotonicStrain(t *testing.T) {
	// Sensor noise can make strain locally non-monotonic; the integral must
	// not reject or panic on it.
	s := model.EngineeringSeries{
		Strain: []float64{0, 0.01, 0.009, 0.02, 0.03},
		Stress: []float64{0, 100, 95, 200, 300},
	}

	if _, err := Toughness(s); err != nil {
		t.Errorf("Expected no error on non-monotonic strain, got %v", err)
	}
}

func TestEnergy_InsufficientData(t *testing.T) {
	s := model.EngineeringSeries{Strain: []float64{0}, Stress: []float64{0}}

	if _, err := Toughness(s); !IsKind(err, KindInsufficientData) {
		t.Errorf("Expected %s error from toughness, got %v", KindInsufficientData, err)
	}
	if _, err := Resilience(s, 0); !IsKind(err, KindInsufficientData) {
		t.Errorf("Expected %s error from resilience, got %v", KindInsufficientData, err)
	}
}
