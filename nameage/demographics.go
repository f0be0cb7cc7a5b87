// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/analysis"
	"github.com/derat/nameage/births"
	"github.com/derat/nameage/cohort"
	"github.com/derat/nameage/vital"
)

func newDemographicsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demographics",
		Short: "List names characteristic of each generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemographics(cmd.Context())
		},
	}
}

func (a *app) runDemographics(ctx context.Context) error {
	dc, ac := a.cfg.Data, a.cfg.Analysis
	ts, err := births.Assemble(births.Dir(dc.NamesDir), ac.Years(), a.log)
	if err != nil {
		return err
	}
	mort, err := actuarial.ReadFile(dc.Artifact)
	if err != nil {
		return err
	}
	rep, err := analysis.Demographics(ctx, ts, mort, analysis.Options{
		Threshold: ac.Threshold,
		Workers:   ac.Workers,
		RefYear:   ac.ReferenceYear,
		Log:       a.log,
	})
	if err != nil {
		return err
	}
	return writeReport(a.out, rep, ac.Threshold)
}

// reportWriter latches the first error from a series of writes.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...interface{}) {
	if rw.err == nil {
		_, rw.err = fmt.Fprintf(rw.w, format, args...)
	}
}

// writeReport writes rep as a human-readable listing to w.
func writeReport(w io.Writer, rep *analysis.Report, threshold int64) error {
	rw := &reportWriter{w: w}
	for _, s := range vital.Sexes {
		rw.printf("%v names with more than %s births: %d\n",
			sexName(s), humanize.Comma(threshold), rep.For(s).OverThreshold)
	}

	rw.printf("\nCharacteristic names (std. dev. < %d years, kurtosis > 0):\n", cohort.MaxStdDev)
	for _, s := range vital.Sexes {
		sr := rep.For(s)
		counts := make([]string, len(cohort.Generations))
		for i, g := range cohort.Generations {
			counts[i] = fmt.Sprintf("%v: %d", g, len(sr.Characteristic[g].Entries))
		}
		rw.printf("%v: %s\n", sexName(s), strings.Join(counts, ", "))
	}

	for _, g := range cohort.Generations {
		rw.printf("\nCharacteristic %v names\n", g)
		rw.printf("Rank. Name, Sex, Age, Likely alive, Total born\n")
		for _, s := range vital.Sexes {
			rs := rep.For(s).Listing(g, rep.RefYear)
			if len(rs) == 0 {
				rw.printf("%v: NONE\n", s)
				continue
			}
			for _, r := range rs {
				rw.printf("%d. %s, %v, %d, %s, %s\n", r.Rank, r.Name, r.Sex, r.Age,
					humanize.Comma(int64(math.Round(r.Survivors))), humanize.Comma(r.Total))
			}
		}
	}
	return rw.err
}

func sexName(s vital.Sex) string {
	if s == vital.Female {
		return "Female"
	}
	return "Male"
}
