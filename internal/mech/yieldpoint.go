package mech

import (
	"math"

	"github.com/malwinabelczewska/strenpy/internal/model"
)

// YieldPoint is the intersection of the stress-strain curve with the offset
// construction line.
type YieldPoint struct {
	Stress float64 // σy (MPa)
	Strain float64
	Index  int // nearest series index, bound for the resilience integral
}

// OffsetYield locates the yield stress by the offset method: the crossing of
// the curve with a line of slope E through (offset, 0).
//
// For each consecutive pair the sign of d(ε) = σe − E·(ε − offset) is
// tested; a sign change brackets the intersection. The crossing is then
// linearly interpolated on the difference function rather than on stress,
// which is better conditioned near the crossing.
func OffsetYield(s model.EngineeringSeries, modulus, offset float64) (YieldPoint, error) {
	if s.Len() < 2 {
		return YieldPoint{}, &CalculationError{
			Kind:   KindInsufficientData,
			Op:     "offset yield",
			Detail: "fewer than 2 points",
		}
	}

	diff := func(i int) float64 {
		return s.Stress[i] - modulus*(s.Strain[i]-offset)
	}

	for i := 0; i < s.Len()-1; i++ {
		d0, d1 := diff(i), diff(i+1)
		if d0 == 0 {
			return YieldPoint{Stress: s.Stress[i], Strain: s.Strain[i], Index: i}, nil
		}
		if math.Signbit(d0) == math.Signbit(d1) {
			continue
		}

		// d0 and d1 straddle zero; t is the crossing fraction within the pair.
		t := d0 / (d0 - d1)
		yp := YieldPoint{
			Stress: s.Stress[i] + t*(s.Stress[i+1]-s.Stress[i]),
			Strain: s.Strain[i] + t*(s.Strain[i+1]-s.Strain[i]),
			Index:  i,
		}
		if t > 0.5 {
			yp.Index = i + 1
		}
		return yp, nil
	}

	return YieldPoint{}, &CalculationError{
		Kind:   KindNoOffsetIntersection,
		Op:     "offset yield",
		Detail: "curve never crosses the offset line; material may have a sharp yield point",
	}
}
