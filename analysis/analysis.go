// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package analysis runs the full pipeline: survivors and statistics for
// every popular name, followed by generational classification.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/agedist"
	"github.com/derat/nameage/births"
	"github.com/derat/nameage/cohort"
	"github.com/derat/nameage/vital"
)

// Options configures Analyze and Demographics.
type Options struct {
	// Threshold excludes names given to Threshold or fewer babies in total.
	Threshold int64
	// Workers is the number of names analyzed concurrently.
	// Results don't depend on it.
	Workers int
	// RefYear is the year in which ages are reported.
	RefYear int
	// Log receives progress messages. It may be nil.
	Log logrus.FieldLogger
}

func (o *Options) log() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Result holds the statistics for one sex's names.
type Result struct {
	Sex vital.Sex
	// Entries holds names over the threshold with non-degenerate
	// distributions, in the table's name order.
	Entries []cohort.Entry
	// OverThreshold is the number of names over the threshold,
	// including degenerate ones.
	OverThreshold int
	// Degenerate lists names over the threshold with no expected survivors.
	Degenerate []string
}

// Analyze computes statistics for every name in tbl with more than
// opts.Threshold lifetime births. curve must cover exactly tbl.Years.
// Names whose expected survivors all truncate to zero are reported in
// Result.Degenerate rather than Result.Entries.
func Analyze(ctx context.Context, tbl *births.Table, curve actuarial.Curve, opts Options) (*Result, error) {
	if curve.Years != tbl.Years {
		return nil, fmt.Errorf("%w: curve covers %v, births cover %v",
			agedist.ErrRangeMismatch, curve.Years, tbl.Years)
	}

	var names []string
	for _, name := range tbl.Names() {
		if tbl.Total(name) > opts.Threshold {
			names = append(names, name)
		}
	}
	log := opts.log().WithField("sex", tbl.Sex.String())
	log.Infof("Analyzing %d of %d names with more than %d births", len(names), tbl.NumNames(), opts.Threshold)

	// Each task writes only its own slot so output order matches names.
	entries := make([]cohort.Entry, len(names))
	degen := make([]bool, len(names))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := agedist.Estimate(tbl.Years, tbl.Series(name), curve)
			if errors.Is(err, agedist.ErrDegenerateDistribution) {
				degen[i] = true
				return nil
			} else if err != nil {
				return fmt.Errorf("%v: %w", name, err)
			}
			entries[i] = cohort.Entry{Name: name, Sex: tbl.Sex, Stats: s}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Sex: tbl.Sex, OverThreshold: len(names)}
	for i, name := range names {
		if degen[i] {
			res.Degenerate = append(res.Degenerate, name)
			log.WithField("name", name).Debug("Skipping name with no expected survivors")
		} else {
			res.Entries = append(res.Entries, entries[i])
		}
	}
	return res, nil
}

// SexReport holds one sex's generational breakdown.
type SexReport struct {
	*Result
	// Buckets holds every analyzed name, ordered like cohort.Generations.
	Buckets []cohort.Bucket
	// Characteristic holds the filtered version of each of Buckets.
	Characteristic []cohort.Bucket
}

// Listing returns the ranked characteristic names for g.
func (sr *SexReport) Listing(g cohort.Generation, refYear int) []cohort.Ranked {
	return sr.Characteristic[g].Rank(refYear)
}

// Report holds the generational breakdown for both sexes.
type Report struct {
	RefYear int
	Female  *SexReport
	Male    *SexReport
}

// For returns r's report for s.
func (r *Report) For(s vital.Sex) *SexReport {
	if s == vital.Female {
		return r.Female
	}
	return r.Male
}

// Demographics analyzes both sexes' names in ts using the alive
// probabilities in mort, which must cover ts's years, and classifies
// the results by generation.
func Demographics(ctx context.Context, ts *births.Tables, mort *actuarial.Table, opts Options) (*Report, error) {
	rep := &Report{RefYear: opts.RefYear}
	for _, s := range vital.Sexes {
		tbl := ts.For(s)
		curve, err := mort.Curve(s).Sub(tbl.Years)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", agedist.ErrRangeMismatch, err)
		}
		res, err := Analyze(ctx, tbl, curve, opts)
		if err != nil {
			return nil, err
		}

		sr := &SexReport{Result: res, Buckets: cohort.Partition(res.Entries)}
		for _, b := range sr.Buckets {
			sr.Characteristic = append(sr.Characteristic, b.Filter())
		}
		opts.log().WithFields(logrus.Fields{
			"sex":        s.String(),
			"analyzed":   len(res.Entries),
			"degenerate": len(res.Degenerate),
		}).Info("Classified names")

		if s == vital.Female {
			rep.Female = sr
		} else {
			rep.Male = sr
		}
	}
	return rep, nil
}
