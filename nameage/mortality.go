// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/gnuplot"
)

func newMortalityCmd(a *app) *cobra.Command {
	var plot bool
	cmd := &cobra.Command{
		Use:   "mortality",
		Short: "Convert the life table into a table indexed by birth year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMortality(plot)
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", false, "Plot death probabilities by age")
	return cmd
}

func (a *app) runMortality(plot bool) error {
	dc, ac := a.cfg.Data, a.cfg.Analysis
	rows, err := actuarial.ReadRawFile(dc.RawMortality)
	if err != nil {
		return err
	}
	a.log.WithField("path", dc.RawMortality).Infof("Read life table covering ages 0-%d", len(rows)-1)

	tbl, err := actuarial.Build(rows, ac.ReferenceYear, ac.Years())
	if err != nil {
		return err
	}
	if err := tbl.WriteFile(dc.Artifact); err != nil {
		return fmt.Errorf("failed writing %v: %v", dc.Artifact, err)
	}
	a.log.WithField("path", dc.Artifact).Infof("Wrote mortality table for %v", tbl.Years)

	if plot {
		return plotMortality(rows, ac.ReferenceYear)
	}
	return nil
}

func plotMortality(rows []actuarial.AgeRow, refYear int) error {
	data := make([][]float64, len(rows))
	for i, r := range rows {
		data[i] = []float64{float64(r.Age), r.MaleDeathProb, r.FemaleDeathProb}
	}
	dp, err := gnuplot.WriteData([]string{"Age", "Male", "Female"}, data)
	if err != nil {
		return fmt.Errorf("failed writing data file: %v", err)
	}
	defer os.Remove(dp)

	if err := gnuplot.ExecTemplate(mortalityTmpl, struct {
		DataPath string
		RefYear  int
	}{dp, refYear}); err != nil {
		return fmt.Errorf("failed running gnuplot: %v", err)
	}
	return nil
}
