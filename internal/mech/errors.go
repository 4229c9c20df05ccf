package mech

import (
	"errors"
	"fmt"
)

// ErrorKind classifies property-calculation failures.
type ErrorKind string

const (
	KindInsufficientData     ErrorKind = "insufficient-data"
	KindEmptySeries          ErrorKind = "empty-series"
	KindNoOffsetIntersection ErrorKind = "no-offset-intersection"
	KindDegenerateFit        ErrorKind = "degenerate-fit"
)

// CalculationError reports a failed property computation. Failures are always
// surfaced to the caller; a failed analysis never yields zero-filled results.
type CalculationError struct {
	Kind   ErrorKind
	Op     string // which computation failed, e.g. "youngs modulus"
	Detail string
}

func (e *CalculationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mech: %s: %s: %s", e.Op, e.Kind, e.Detail)
	}
	return fmt.Sprintf("mech: %s: %s", e.Op, e.Kind)
}

// IsKind reports whether err is a CalculationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CalculationError
	return errors.As(err, &ce) && ce.Kind == kind
}
