// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package actuarial

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/derat/nameage/filewriter"
	"github.com/derat/nameage/vital"
)

// Columns in the adjusted-table file written by Write.
const (
	colBirthYear = iota
	colMaleDeathProb
	colMaleLifeExp
	colMaleSurvival
	colMaleAlive
	colFemaleDeathProb
	colFemaleLifeExp
	colFemaleSurvival
	colFemaleAlive
	numCols
)

// Write writes t to w as comma-separated lines, one per birth year:
//
//	birth_year, m_dp, m_le, m_survival, m_alive, f_dp, f_le, f_survival, f_alive
//
// Values are formatted so that Read reproduces them exactly.
func (t *Table) Write(w io.Writer) error {
	var writeErr error
	write := func(s string) {
		if writeErr == nil {
			_, writeErr = io.WriteString(w, s)
		}
	}

	vals := make([]string, numCols)
	for _, e := range t.Entries {
		vals[colBirthYear] = strconv.Itoa(e.BirthYear)
		for i, v := range []float64{
			e.Male.DeathProb, e.Male.LifeExpectancy, e.Male.SurvivalThisYear, e.Male.AliveProb,
			e.Female.DeathProb, e.Female.LifeExpectancy, e.Female.SurvivalThisYear, e.Female.AliveProb,
		} {
			vals[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		write(strings.Join(vals, ", ") + "\n")
	}
	return writeErr
}

// WriteFile atomically writes t to the file at p.
func (t *Table) WriteFile(p string) error {
	fw, err := filewriter.New(p)
	if err != nil {
		return err
	}
	defer fw.Abort()
	if err := t.Write(fw); err != nil {
		return err
	}
	return fw.Close()
}

// Read reads a table previously written by Write.
// Birth years must be consecutive and ascending.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numCols
	cr.TrimLeadingSpace = true

	var t Table
	for {
		vals, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		var e Entry
		if e.BirthYear, err = strconv.Atoi(vals[colBirthYear]); err != nil {
			return nil, fmt.Errorf("bad birth year %q", vals[colBirthYear])
		}
		if n := len(t.Entries); n > 0 && e.BirthYear != t.Entries[n-1].BirthYear+1 {
			return nil, fmt.Errorf("birth year %d follows %d", e.BirthYear, t.Entries[n-1].BirthYear)
		}
		for i, dst := range []*float64{
			&e.Male.DeathProb, &e.Male.LifeExpectancy, &e.Male.SurvivalThisYear, &e.Male.AliveProb,
			&e.Female.DeathProb, &e.Female.LifeExpectancy, &e.Female.SurvivalThisYear, &e.Female.AliveProb,
		} {
			if *dst, err = strconv.ParseFloat(vals[i+1], 64); err != nil {
				return nil, fmt.Errorf("bad value %q for %d: %v", vals[i+1], e.BirthYear, err)
			}
		}
		if !validProb(e.Male.AliveProb) || !validProb(e.Female.AliveProb) {
			return nil, fmt.Errorf("alive probability outside [0, 1] for %d", e.BirthYear)
		}
		t.Entries = append(t.Entries, e)
	}

	if len(t.Entries) == 0 {
		return nil, fmt.Errorf("no birth years in table")
	}
	t.Years = vital.Range{First: t.Entries[0].BirthYear, Last: t.Entries[len(t.Entries)-1].BirthYear}
	return &t, nil
}

// ReadFile is a wrapper around Read that reads the file at p.
func ReadFile(p string) (*Table, error) {
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, &vital.MissingFileError{Path: p, Err: err}
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", p, err)
	}
	return t, nil
}
