// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package births assembles SSA baby name registrations into dense
// (year x name) tables.
package births

import (
	"fmt"

	"github.com/derat/nameage/vital"
)

// YearCounts maps names to the number of babies given them in one year.
type YearCounts map[string]int64

// Table holds per-year name counts for a single sex.
//
// Names are remembered in the order they were first set, which is the order
// used by Names and by ties in downstream rankings.
type Table struct {
	Sex   vital.Sex
	Years vital.Range

	years map[int]YearCounts
	names []string
	known map[string]struct{}
}

// NewTable returns an empty table for sex spanning years.
func NewTable(sex vital.Sex, years vital.Range) *Table {
	t := &Table{
		Sex:   sex,
		Years: years,
		years: make(map[int]YearCounts, years.Len()),
		known: make(map[string]struct{}),
	}
	for _, y := range years.Years() {
		t.years[y] = make(YearCounts)
	}
	return t
}

// Set records n births for name in year. If name was already set for year,
// the earlier value is replaced: the last write wins.
func (t *Table) Set(year int, name string, n int64) error {
	yc, ok := t.years[year]
	if !ok {
		return fmt.Errorf("year %d outside %v", year, t.Years)
	}
	if n < 0 {
		return fmt.Errorf("negative count %d for %v in %d", n, name, year)
	}
	yc[name] = n
	if _, ok := t.known[name]; !ok {
		t.known[name] = struct{}{}
		t.names = append(t.names, name)
	}
	return nil
}

// Names returns every name that has been set in any year.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// NumNames returns the number of distinct names in t.
func (t *Table) NumNames() int { return len(t.names) }

// Year returns the counts for y, or nil if y is outside t.Years.
// The returned map must not be modified.
func (t *Table) Year(y int) YearCounts { return t.years[y] }

// Count returns the number of births for name in year.
// ok is false if no entry exists (i.e. the table hasn't been patched).
func (t *Table) Count(year int, name string) (n int64, ok bool) {
	n, ok = t.years[year][name]
	return n, ok
}

// Patch adds a zero entry for every (year, name) pair that is missing so that
// every name appears in every year. It returns the number of entries added.
// Patching a dense table is a no-op.
func (t *Table) Patch() int {
	added := 0
	for _, name := range t.names {
		for _, yc := range t.years {
			if _, ok := yc[name]; !ok {
				yc[name] = 0
				added++
			}
		}
	}
	return added
}

// Dense returns true if every name has an entry in every year.
func (t *Table) Dense() bool {
	for _, yc := range t.years {
		if len(yc) != len(t.names) {
			return false
		}
	}
	return true
}

// Series returns name's births for each year in t.Years, in ascending order.
// Missing entries are reported as 0.
func (t *Table) Series(name string) []int64 {
	s := make([]int64, t.Years.Len())
	for i, y := range t.Years.Years() {
		s[i] = t.years[y][name]
	}
	return s
}

// Total returns the number of babies ever given name.
func (t *Table) Total(name string) int64 {
	var total int64
	for _, yc := range t.years {
		total += yc[name]
	}
	return total
}

// Has returns true if name appears in any year.
func (t *Table) Has(name string) bool {
	_, ok := t.known[name]
	return ok
}

// Tables holds a Table for each sex.
type Tables struct {
	Male, Female *Table
}

// NewTables returns empty tables spanning years.
func NewTables(years vital.Range) *Tables {
	return &Tables{NewTable(vital.Male, years), NewTable(vital.Female, years)}
}

// For returns the table for s.
func (ts *Tables) For(s vital.Sex) *Table {
	if s == vital.Female {
		return ts.Female
	}
	return ts.Male
}
