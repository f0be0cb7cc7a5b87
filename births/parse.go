// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package births

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/derat/nameage/vital"
)

// Record is a single line from an SSA baby names file, e.g. "Mary,F,7065".
type Record struct {
	Name  string
	Sex   vital.Sex
	Count int64
}

// Skip describes a line that ParseYear ignored.
type Skip struct {
	Line   int // 1-based
	Text   string
	Reason error
}

// Reasons for skipping lines.
var (
	errFieldCount  = errors.New("want name,sex,count")
	errBadName     = errors.New("name must be letters")
	errBadSexField = errors.New("sex must be a single character")
	errBadCount    = errors.New("count must be a non-negative integer")
)

// ParseStats summarizes the lines read by ParseYear.
type ParseStats struct {
	Records   int    // lines returned as records
	Malformed int    // lines that didn't parse as name,sex,count
	BadSex    int    // lines with a sex other than M or F
	Skips     []Skip // details for Malformed and BadSex lines
}

// ParseYear reads a single year's records from r, returning them in the
// order they appear. Blank lines are ignored. Malformed lines and lines with
// unsupported sexes are skipped and described in the returned ParseStats;
// only read errors are returned.
func ParseYear(r io.Reader) ([]Record, ParseStats, error) {
	var recs []Record
	var ps ParseStats

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			if errors.Is(err, vital.ErrUnsupportedSex) {
				ps.BadSex++
			} else {
				ps.Malformed++
			}
			ps.Skips = append(ps.Skips, Skip{line, text, err})
			continue
		}
		recs = append(recs, rec)
		ps.Records++
	}
	return recs, ps, sc.Err()
}

func parseRecord(s string) (Record, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return Record{}, errFieldCount
	}
	name := fields[0]
	if name == "" || strings.IndexFunc(name, func(r rune) bool { return !unicode.IsLetter(r) }) != -1 {
		return Record{}, errBadName
	}
	if len(fields[1]) != 1 {
		return Record{}, errBadSexField
	}
	// The SSA files always use uppercase.
	var sex vital.Sex
	switch fields[1] {
	case "M":
		sex = vital.Male
	case "F":
		sex = vital.Female
	default:
		return Record{}, fmt.Errorf("%w %q", vital.ErrUnsupportedSex, fields[1])
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || n < 0 {
		return Record{}, errBadCount
	}
	return Record{name, sex, n}, nil
}
