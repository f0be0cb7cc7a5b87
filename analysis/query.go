// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package analysis

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/agedist"
	"github.com/derat/nameage/births"
	"github.com/derat/nameage/vital"
)

// Profile describes the likely ages of people with a single name.
type Profile struct {
	Name string
	Sex  vital.Sex
	agedist.Stats

	RefYear          int
	CurrentMeanAge   float64 // RefYear minus mean birth year
	CurrentMedianAge float64 // RefYear minus median birth year

	Years     vital.Range
	Births    []int64   // aligned with Years
	Survivors []float64 // aligned with Years
}

// Query computes a Profile for name in tbl. If name doesn't appear in tbl
// verbatim, its capitalized form ("mary" -> "Mary") is tried as well.
// agedist.ErrDegenerateDistribution is returned (wrapped) if nobody with
// the name is expected to be alive.
func Query(tbl *births.Table, curve actuarial.Curve, name string, refYear int) (*Profile, error) {
	if !tbl.Has(name) {
		if c := capitalize(name); tbl.Has(c) {
			name = c
		}
	}

	p := &Profile{Name: name, Sex: tbl.Sex, RefYear: refYear, Years: tbl.Years, Births: tbl.Series(name)}
	var err error
	if p.Survivors, err = agedist.Survivors(tbl.Years, p.Births, curve); err != nil {
		return nil, err
	}
	if p.Stats, err = agedist.Estimate(tbl.Years, p.Births, curve); err != nil {
		return nil, fmt.Errorf("%v (%v): %w", name, tbl.Sex, err)
	}
	p.CurrentMeanAge = p.MeanAge(refYear)
	p.CurrentMedianAge = p.MedianAge(refYear)
	return p, nil
}

// capitalize uppercases the first letter of s and lowercases the rest.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}
