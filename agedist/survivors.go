// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package agedist estimates how many people born in each year are still
// alive and describes the resulting distribution of birth years.
package agedist

import (
	"errors"
	"fmt"
	"math"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/vital"
)

// ErrRangeMismatch is returned when a birth series and a survival curve
// don't cover the same years. It indicates a programming error.
var ErrRangeMismatch = errors.New("birth series and survival curve cover different years")

// Survivors multiplies each year's births by the probability that someone
// born that year is still alive. births must be aligned with years, and
// curve must cover exactly the same years.
func Survivors(years vital.Range, births []int64, curve actuarial.Curve) ([]float64, error) {
	if len(births) != years.Len() {
		return nil, fmt.Errorf("%w: %d births for %v", ErrRangeMismatch, len(births), years)
	}
	if curve.Years != years || len(curve.Probs) != years.Len() {
		return nil, fmt.Errorf("%w: curve covers %v (%d values), births cover %v",
			ErrRangeMismatch, curve.Years, len(curve.Probs), years)
	}
	surv := make([]float64, len(births))
	for i, n := range births {
		surv[i] = float64(n) * curve.Probs[i]
	}
	return surv, nil
}

// Weights truncates each expected-survivor count to a whole number of people.
// Counts below 1 contribute nobody.
func Weights(surv []float64) []float64 {
	ws := make([]float64, len(surv))
	for i, s := range surv {
		ws[i] = math.Trunc(s)
	}
	return ws
}
