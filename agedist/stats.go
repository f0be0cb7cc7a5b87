// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package agedist

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/vital"
)

// ErrDegenerateDistribution is returned when nobody is estimated to be alive,
// leaving no distribution to describe.
var ErrDegenerateDistribution = errors.New("no survivors")

// Moments describes a distribution of birth years.
type Moments struct {
	Mean     float64 // mean birth year
	Median   float64 // median birth year
	StdDev   float64 // population standard deviation in years
	Skewness float64 // third standardized moment
	Kurtosis float64 // excess kurtosis, i.e. fourth standardized moment minus 3
	N        int64   // number of people in the distribution
}

// Describe treats counts (aligned with years) as a sample in which year i
// was observed trunc(counts[i]) times and returns the sample's moments.
// Moments are computed directly from the weighted years rather than by
// materializing the sample.
//
// If every count is below 1, ErrDegenerateDistribution is returned.
// If the whole sample lies in a single year, Skewness is 0 and Kurtosis is -3.
func Describe(years vital.Range, counts []float64) (Moments, error) {
	if len(counts) != years.Len() {
		return Moments{}, fmt.Errorf("%w: %d counts for %v", ErrRangeMismatch, len(counts), years)
	}

	ws := Weights(counts)
	xs := make([]float64, len(ws))
	var n int64
	for i, w := range ws {
		xs[i] = float64(years.First + i)
		n += int64(w)
	}
	if n == 0 {
		return Moments{}, ErrDegenerateDistribution
	}

	m := Moments{N: n}
	var variance float64
	m.Mean, variance = stat.PopMeanVariance(xs, ws)
	m.StdDev = math.Sqrt(variance)
	m.Median = median(xs, ws, n)
	if variance == 0 {
		m.Kurtosis = -3
		return m, nil
	}
	m.Skewness = stat.MomentAbout(3, xs, m.Mean, ws) / math.Pow(variance, 1.5)
	m.Kurtosis = stat.MomentAbout(4, xs, m.Mean, ws)/(variance*variance) - 3
	return m, nil
}

// median returns the median of the sample in which xs[i] (ascending) was
// observed ws[i] times. n is the sum of ws. For even n, the two middle
// observations are averaged.
func median(xs, ws []float64, n int64) float64 {
	lo := nth(xs, ws, (n-1)/2)
	if n%2 == 1 {
		return lo
	}
	return (lo + nth(xs, ws, n/2)) / 2
}

// nth returns the k-th (0-based) observation of the sample.
func nth(xs, ws []float64, k int64) float64 {
	var seen int64
	for i, w := range ws {
		seen += int64(w)
		if seen > k {
			return xs[i]
		}
	}
	return xs[len(xs)-1]
}

// Stats describes the expected survivors with a given name.
type Stats struct {
	Moments
	Total     int64   // babies ever given the name, ignoring mortality
	Survivors float64 // expected number still alive
}

// Estimate combines Survivors and Describe for a single name's births.
// Errors from either are returned unchanged.
func Estimate(years vital.Range, births []int64, curve actuarial.Curve) (Stats, error) {
	surv, err := Survivors(years, births, curve)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for i, n := range births {
		s.Total += n
		s.Survivors += surv[i]
	}
	if s.Moments, err = Describe(years, surv); err != nil {
		return s, err
	}
	return s, nil
}

// MeanAge returns how old the mean survivor is in refYear.
func (m Moments) MeanAge(refYear int) float64 { return float64(refYear) - m.Mean }

// MedianAge returns how old the median survivor is in refYear.
func (m Moments) MedianAge(refYear int) float64 { return float64(refYear) - m.Median }
