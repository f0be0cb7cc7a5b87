// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package cohort places names into generations by the median birth year of
// the people carrying them and picks out names characteristic of each one.
package cohort

import (
	"fmt"
	"sort"

	"github.com/derat/nameage/agedist"
	"github.com/derat/nameage/vital"
)

// Generation is a named range of birth years.
type Generation int

const (
	GenZ Generation = iota
	Millennials
	GenX
	BabyBoomers
	SilentGen
	GreatestGen
	DeadGen
)

// Generations lists all generations from most to least recent.
var Generations = []Generation{GenZ, Millennials, GenX, BabyBoomers, SilentGen, GreatestGen, DeadGen}

var genNames = map[Generation]string{
	GenZ:        "Gen Z",
	Millennials: "Millennials",
	GenX:        "Gen X",
	BabyBoomers: "Baby Boomers",
	SilentGen:   "Silent Gen",
	GreatestGen: "Greatest Gen",
	DeadGen:     "Dead Gen",
}

func (g Generation) String() string {
	if s, ok := genNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Generation(%d)", int(g))
}

// Exclusive lower bounds on median birth year, checked in this order.
// Anything not above the last bound belongs to DeadGen.
var bounds = []struct {
	gen   Generation
	after float64
}{
	{GenZ, 2000},
	{Millennials, 1980},
	{GenX, 1964},
	{BabyBoomers, 1944},
	{SilentGen, 1926},
	{GreatestGen, 1900},
}

// Classify returns the generation containing median. A median of exactly
// 2000 belongs to Millennials rather than GenZ, and so on down.
func Classify(median float64) Generation {
	for _, b := range bounds {
		if median > b.after {
			return b.gen
		}
	}
	return DeadGen
}

// Characteristic returns true if s describes a single, reasonably narrow
// peak: standard deviation under MaxStdDev years and positive excess kurtosis.
func Characteristic(s agedist.Stats) bool {
	return s.StdDev < MaxStdDev && s.Kurtosis > 0
}

// MaxStdDev is the exclusive upper bound on a characteristic name's
// standard deviation, in years.
const MaxStdDev = 15

// Entry holds a name's statistics.
type Entry struct {
	Name  string
	Sex   vital.Sex
	Stats agedist.Stats
}

// Bucket holds the entries classified into one generation,
// in the order they were supplied to Partition.
type Bucket struct {
	Gen     Generation
	Entries []Entry
}

// Partition classifies entries by median birth year. The returned buckets
// are ordered like Generations, and every entry lands in exactly one.
func Partition(entries []Entry) []Bucket {
	bs := make([]Bucket, len(Generations))
	for i, g := range Generations {
		bs[i].Gen = g
	}
	for _, e := range entries {
		g := Classify(e.Stats.Median)
		bs[g].Entries = append(bs[g].Entries, e)
	}
	return bs
}

// Filter returns a copy of b containing only characteristic entries.
func (b Bucket) Filter() Bucket {
	fb := Bucket{Gen: b.Gen}
	for _, e := range b.Entries {
		if Characteristic(e.Stats) {
			fb.Entries = append(fb.Entries, e)
		}
	}
	return fb
}

// Ranked is a line of a generation's listing.
type Ranked struct {
	Rank      int // 1-based
	Name      string
	Sex       vital.Sex
	Age       int     // refYear minus the truncated mean birth year
	Survivors float64 // expected number still alive
	Total     int64   // babies ever given the name
}

// Rank orders b's entries by total births, most popular first.
// Ties keep the order in which entries were added to b.
func (b Bucket) Rank(refYear int) []Ranked {
	es := append([]Entry(nil), b.Entries...)
	sort.SliceStable(es, func(i, j int) bool { return es[i].Stats.Total > es[j].Stats.Total })

	rs := make([]Ranked, len(es))
	for i, e := range es {
		rs[i] = Ranked{
			Rank:      i + 1,
			Name:      e.Name,
			Sex:       e.Sex,
			Age:       refYear - int(e.Stats.Mean),
			Survivors: e.Stats.Survivors,
			Total:     e.Stats.Total,
		}
	}
	return rs
}
