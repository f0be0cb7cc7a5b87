// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package vital contains types shared by the birth and mortality tables.
package vital

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSex is returned when a sex other than "M" or "F" is supplied.
var ErrUnsupportedSex = errors.New("unsupported sex")

// Sex identifies which half of the birth and mortality data to use.
type Sex int

const (
	Male Sex = iota
	Female
)

// Sexes lists all supported sexes in the order that reports use.
var Sexes = []Sex{Female, Male}

// ParseSex parses "M" or "F". Lowercase letters are accepted.
func ParseSex(s string) (Sex, error) {
	switch s {
	case "M", "m":
		return Male, nil
	case "F", "f":
		return Female, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnsupportedSex, s)
}

// String returns "M" or "F".
func (s Sex) String() string {
	switch s {
	case Male:
		return "M"
	case Female:
		return "F"
	}
	return fmt.Sprintf("Sex(%d)", int(s))
}

// Range is an inclusive range of calendar years.
type Range struct {
	First, Last int
}

// NewRange returns a range covering first through last.
// An error is returned if the range is empty.
func NewRange(first, last int) (Range, error) {
	if first > last {
		return Range{}, fmt.Errorf("first year %d after last year %d", first, last)
	}
	return Range{first, last}, nil
}

// Len returns the number of years in r.
func (r Range) Len() int { return r.Last - r.First + 1 }

// Contains returns true if y is within r.
func (r Range) Contains(y int) bool { return y >= r.First && y <= r.Last }

// Index returns y's zero-based offset within r, or -1 if it is outside r.
func (r Range) Index(y int) int {
	if !r.Contains(y) {
		return -1
	}
	return y - r.First
}

// Years returns all years in r in ascending order.
func (r Range) Years() []int {
	ys := make([]int, 0, r.Len())
	for y := r.First; y <= r.Last; y++ {
		ys = append(ys, y)
	}
	return ys
}

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.First, r.Last) }

// MissingFileError is returned when an input file doesn't exist.
type MissingFileError struct {
	Path string
	Year int // year whose birth data is missing, or 0 for non-yearly files
	Err  error
}

func (e *MissingFileError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("missing data for %d: %v", e.Year, e.Err)
	}
	return fmt.Sprintf("missing data file %v: %v", e.Path, e.Err)
}

func (e *MissingFileError) Unwrap() error { return e.Err }
