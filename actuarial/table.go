// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package actuarial converts a period life table into the probability that
// someone born in a given year is still alive in a reference year.
package actuarial

import (
	"fmt"

	"github.com/derat/nameage/vital"
)

// SexEntry holds one sex's mortality data for a birth year.
type SexEntry struct {
	DeathProb        float64 // probability of dying at the cohort's current age
	LifeExpectancy   float64 // remaining years
	SurvivalThisYear float64 // 1 - DeathProb
	AliveProb        float64 // probability of being alive in the reference year
}

// Entry holds mortality data for people born in a single year.
type Entry struct {
	BirthYear    int
	Male, Female SexEntry
}

// For returns the half of e describing s.
func (e *Entry) For(s vital.Sex) SexEntry {
	if s == vital.Female {
		return e.Female
	}
	return e.Male
}

// padding describes cohorts older than the life table covers.
// Nobody survives them.
var padding = SexEntry{DeathProb: 1}

// Table contains mortality data indexed by birth year rather than age.
// Entries are in ascending order by birth year and span Years exactly.
type Table struct {
	Years   vital.Range
	Entries []Entry
}

// Build converts rows (as returned by ReadRaw) into a Table covering years,
// anchored to refYear: someone born in year y is refYear-y years old.
// Birth years older than the life table covers get an alive probability of 0.
func Build(rows []AgeRow, refYear int, years vital.Range) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty life table")
	}
	if years.Last > refYear {
		return nil, fmt.Errorf("years %v extend past reference year %d", years, refYear)
	}
	for i, r := range rows {
		if r.Age != i {
			return nil, fmt.Errorf("row %d has age %d", i, r.Age)
		}
		if !validProb(r.MaleDeathProb) || !validProb(r.FemaleDeathProb) {
			return nil, fmt.Errorf("death probability outside [0, 1] for age %d", r.Age)
		}
	}

	male := survival(rows, func(r AgeRow) float64 { return r.MaleDeathProb })
	female := survival(rows, func(r AgeRow) float64 { return r.FemaleDeathProb })

	t := &Table{Years: years, Entries: make([]Entry, 0, years.Len())}
	for _, y := range years.Years() {
		e := Entry{BirthYear: y, Male: padding, Female: padding}
		if age := refYear - y; age < len(rows) {
			r := rows[age]
			e.Male = SexEntry{r.MaleDeathProb, r.MaleLifeExp, 1 - r.MaleDeathProb, male[age]}
			e.Female = SexEntry{r.FemaleDeathProb, r.FemaleLifeExp, 1 - r.FemaleDeathProb, female[age]}
		}
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

// survival returns, for each age a in rows, the product of 1-dp over ages 0
// through a, i.e. the probability of surviving every year of risk from birth
// through the current one.
func survival(rows []AgeRow, dp func(AgeRow) float64) []float64 {
	alive := make([]float64, len(rows))
	p := 1.0
	for i, r := range rows {
		p *= 1 - dp(r)
		alive[i] = p
	}
	return alive
}

// Curve returns the alive probabilities for s.
func (t *Table) Curve(s vital.Sex) Curve {
	c := Curve{Years: t.Years, Probs: make([]float64, len(t.Entries))}
	for i := range t.Entries {
		c.Probs[i] = t.Entries[i].For(s).AliveProb
	}
	return c
}

// Curve holds the probability that someone born in each of a range of years
// is alive in the reference year. Probs is aligned with Years.
type Curve struct {
	Years vital.Range
	Probs []float64
}

// Prob returns the alive probability for people born in year y,
// or 0 if y is outside c.Years.
func (c Curve) Prob(y int) float64 {
	if i := c.Years.Index(y); i >= 0 {
		return c.Probs[i]
	}
	return 0
}

// Sub returns the portion of c covering r, which must lie within c.Years.
func (c Curve) Sub(r vital.Range) (Curve, error) {
	if !c.Years.Contains(r.First) || !c.Years.Contains(r.Last) {
		return Curve{}, fmt.Errorf("years %v not within %v", r, c.Years)
	}
	start := c.Years.Index(r.First)
	return Curve{Years: r, Probs: c.Probs[start : start+r.Len()]}, nil
}

// Constant returns a curve assigning p to every year in r.
func Constant(r vital.Range, p float64) Curve {
	c := Curve{Years: r, Probs: make([]float64, r.Len())}
	for i := range c.Probs {
		c.Probs[i] = p
	}
	return c
}
