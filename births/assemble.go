// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package births

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/derat/nameage/vital"
)

// Source supplies the raw records for each year.
type Source interface {
	// Open returns the records for year. If they don't exist, the returned
	// error should be a *vital.MissingFileError.
	Open(year int) (io.ReadCloser, error)
}

// Dir is a Source reading files named like "yob1999.txt" from a directory,
// as distributed in https://www.ssa.gov/oact/babynames/names.zip.
type Dir string

// Path returns the path of year's file within d.
func (d Dir) Path(year int) string {
	return filepath.Join(string(d), fmt.Sprintf("yob%d.txt", year))
}

func (d Dir) Open(year int) (io.ReadCloser, error) {
	p := d.Path(year)
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, &vital.MissingFileError{Path: p, Year: year, Err: err}
	}
	return f, err
}

// Assemble reads every year in years from src and returns patched
// (i.e. dense) tables for both sexes. A missing year aborts assembly.
// Skipped lines are logged to log at debug level; log may be nil.
func Assemble(src Source, years vital.Range, log logrus.FieldLogger) (*Tables, error) {
	if log == nil {
		log = discardLogger()
	}

	ts := NewTables(years)
	var malformed, badSex int
	for _, y := range years.Years() {
		recs, ps, err := readYear(src, y)
		if err != nil {
			return nil, err
		}
		for _, sk := range ps.Skips {
			log.WithFields(logrus.Fields{
				"year":   y,
				"line":   sk.Line,
				"reason": sk.Reason,
			}).Debugf("Skipping %q", sk.Text)
		}
		malformed += ps.Malformed
		badSex += ps.BadSex

		for _, r := range recs {
			if err := ts.For(r.Sex).Set(y, r.Name, r.Count); err != nil {
				return nil, err
			}
		}
	}

	log.WithFields(logrus.Fields{
		"years":     years.String(),
		"female":    ts.Female.NumNames(),
		"male":      ts.Male.NumNames(),
		"malformed": malformed,
		"bad_sex":   badSex,
	}).Info("Read baby names")

	for _, t := range []*Table{ts.Female, ts.Male} {
		n := t.Patch()
		log.WithFields(logrus.Fields{"sex": t.Sex.String(), "added": n}).Debug("Patched missing entries")
	}
	return ts, nil
}

func readYear(src Source, y int) ([]Record, ParseStats, error) {
	rc, err := src.Open(y)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer rc.Close()

	recs, ps, err := ParseYear(rc)
	if err != nil {
		return nil, ps, fmt.Errorf("failed reading %d: %v", y, err)
	}
	return recs, ps, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
