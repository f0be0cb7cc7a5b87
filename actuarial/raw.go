// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package actuarial

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/derat/nameage/vital"
)

// AgeRow holds one row of a period life table such as the SSA's
// https://www.ssa.gov/oact/STATS/table4c6.html.
type AgeRow struct {
	Age             int
	MaleDeathProb   float64 // probability of dying within one year
	MaleLifeExp     float64 // remaining life expectancy in years
	FemaleDeathProb float64
	FemaleLifeExp   float64
}

// ReadRaw reads a life table from r. Each CSV record has the form
//
//	age, male_death_prob, male_life_expectancy, female_death_prob, female_life_expectancy
//
// An optional header line is skipped, as are lines starting with '#'.
// Ages must start at 0 and increase by 1.
func ReadRaw(r io.Reader) ([]AgeRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []AgeRow
	for line := 1; ; line++ {
		vals, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		age, err := strconv.Atoi(vals[0])
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("bad age %q on line %d", vals[0], line)
		}
		if age != len(rows) {
			return nil, fmt.Errorf("got age %d on line %d; want %d", age, line, len(rows))
		}

		row := AgeRow{Age: age}
		for i, dst := range []*float64{
			&row.MaleDeathProb, &row.MaleLifeExp, &row.FemaleDeathProb, &row.FemaleLifeExp,
		} {
			if *dst, err = strconv.ParseFloat(vals[i+1], 64); err != nil {
				return nil, fmt.Errorf("bad value %q on line %d: %v", vals[i+1], line, err)
			}
		}
		if !validProb(row.MaleDeathProb) || !validProb(row.FemaleDeathProb) {
			return nil, fmt.Errorf("death probability outside [0, 1] for age %d", age)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no ages in life table")
	}
	return rows, nil
}

// ReadRawFile is a wrapper around ReadRaw that reads the file at p.
func ReadRawFile(p string) ([]AgeRow, error) {
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, &vital.MissingFileError{Path: p, Err: err}
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRaw(f)
}

func validProb(p float64) bool { return p >= 0 && p <= 1 }
