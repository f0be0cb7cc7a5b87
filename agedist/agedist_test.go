// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package agedist

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/montanaflynn/stats"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/vital"
)

var years1990 = vital.Range{First: 1990, Last: 1992}

func TestSurvivors_ConstantCurve(t *testing.T) {
	births := []int64{7, 0, 123456}
	surv, err := Survivors(years1990, births, actuarial.Constant(years1990, 1))
	if err != nil {
		t.Fatal("Survivors failed: ", err)
	}
	if diff := cmp.Diff([]float64{7, 0, 123456}, surv); diff != "" {
		t.Error("Survivors changed births with all-1 curve:\n" + diff)
	}
}

func TestSurvivors_RangeMismatch(t *testing.T) {
	for _, tc := range []struct {
		desc   string
		births []int64
		curve  actuarial.Curve
	}{
		{"short births", []int64{1, 2}, actuarial.Constant(years1990, 1)},
		{"short curve", []int64{1, 2, 3}, actuarial.Constant(vital.Range{First: 1990, Last: 1991}, 1)},
		{"shifted curve", []int64{1, 2, 3}, actuarial.Constant(vital.Range{First: 1991, Last: 1993}, 1)},
	} {
		if _, err := Survivors(years1990, tc.births, tc.curve); !errors.Is(err, ErrRangeMismatch) {
			t.Errorf("Survivors returned %v for %v; want ErrRangeMismatch", err, tc.desc)
		}
	}
}

func TestEstimate(t *testing.T) {
	curve := actuarial.Curve{Years: years1990, Probs: []float64{1, 0.5, 0.25}}

	surv, err := Survivors(years1990, []int64{100, 0, 50}, curve)
	if err != nil {
		t.Fatal("Survivors failed: ", err)
	}
	if diff := cmp.Diff([]float64{100, 0, 12}, Weights(surv)); diff != "" {
		t.Error("Truncated survivors mismatch:\n" + diff)
	}

	ada, err := Estimate(years1990, []int64{100, 0, 50}, curve)
	if err != nil {
		t.Fatal("Estimate(Ada) failed: ", err)
	}
	if ada.Median != 1990 {
		t.Errorf("Ada median = %v; want 1990", ada.Median)
	}
	if ada.N != 112 || ada.Total != 150 || ada.Survivors != 112.5 {
		t.Errorf("Ada N = %v, total = %v, survivors = %v; want 112, 150, 112.5",
			ada.N, ada.Total, ada.Survivors)
	}
	if want := 1990 + 24.0/112; math.Abs(ada.Mean-want) > 1e-9 {
		t.Errorf("Ada mean = %v; want %v", ada.Mean, want)
	}
	if age := ada.MedianAge(2017); age != 27 {
		t.Errorf("Ada median age = %v; want 27", age)
	}

	sam, err := Estimate(years1990, []int64{0, 0, 0}, curve)
	if !errors.Is(err, ErrDegenerateDistribution) {
		t.Errorf("Estimate(Sam) returned %v; want ErrDegenerateDistribution", err)
	}
	if sam.Total != 0 {
		t.Errorf("Sam total = %v; want 0", sam.Total)
	}
}

func TestDescribe_Truncation(t *testing.T) {
	// A fraction of a person in an extreme year vanishes from the sample.
	m, err := Describe(years1990, []float64{0.99, 10, 0})
	if err != nil {
		t.Fatal("Describe failed: ", err)
	}
	if diff := cmp.Diff(Moments{Mean: 1991, Median: 1991, Kurtosis: -3, N: 10}, m); diff != "" {
		t.Error("Describe mismatch:\n" + diff)
	}

	if _, err := Describe(years1990, []float64{0.5, 0.999, 0}); !errors.Is(err, ErrDegenerateDistribution) {
		t.Errorf("Describe returned %v for fractional counts; want ErrDegenerateDistribution", err)
	}
}

func TestDescribe_Bimodal(t *testing.T) {
	years := vital.Range{First: 1900, Last: 2000}
	counts := make([]float64, years.Len())
	counts[0] = 1000
	counts[len(counts)-1] = 1000

	m, err := Describe(years, counts)
	if err != nil {
		t.Fatal("Describe failed: ", err)
	}
	opt := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(Moments{Mean: 1950, Median: 1950, StdDev: 50, Skewness: 0, Kurtosis: -2, N: 2000}, m, opt); diff != "" {
		t.Error("Describe mismatch:\n" + diff)
	}
}

func TestDescribe_EvenMedian(t *testing.T) {
	m, err := Describe(years1990, []float64{2, 0, 2})
	if err != nil {
		t.Fatal("Describe failed: ", err)
	}
	if m.Median != 1991 {
		t.Errorf("Median = %v; want 1991", m.Median)
	}
}

// TestDescribe_ImplicitSample checks that the closed-form weighted moments
// match classical statistics over the explicitly repeated years.
func TestDescribe_ImplicitSample(t *testing.T) {
	years := vital.Range{First: 1950, Last: 1979}
	counts := make([]float64, years.Len())
	for i := range counts {
		// Lopsided hump with fractional parts that get truncated.
		x := float64(i) - 8
		counts[i] = 300*math.Exp(-x*x/40) + 17.7*float64(i%3)
	}

	got, err := Describe(years, counts)
	if err != nil {
		t.Fatal("Describe failed: ", err)
	}

	var sample []float64
	for i, c := range counts {
		for j := 0; j < int(c); j++ {
			sample = append(sample, float64(years.First+i))
		}
	}
	mean, _ := stats.Mean(sample)
	median, _ := stats.Median(sample)
	sd, _ := stats.StandardDeviationPopulation(sample)
	var m3, m4 float64
	for _, v := range sample {
		d := v - mean
		m3 += d * d * d
		m4 += d * d * d * d
	}
	n := float64(len(sample))
	m3 /= n
	m4 /= n

	want := Moments{
		Mean:     mean,
		Median:   median,
		StdDev:   sd,
		Skewness: m3 / math.Pow(sd, 3),
		Kurtosis: m4/math.Pow(sd, 4) - 3,
		N:        int64(len(sample)),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1e-9, 1e-9)); diff != "" {
		t.Error("Closed-form moments differ from implicit sample:\n" + diff)
	}
}
