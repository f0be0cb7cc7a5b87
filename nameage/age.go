// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/derat/nameage/actuarial"
	"github.com/derat/nameage/analysis"
	"github.com/derat/nameage/births"
	"github.com/derat/nameage/gnuplot"
	"github.com/derat/nameage/vital"
)

func newAgeCmd(a *app) *cobra.Command {
	var plot bool
	cmd := &cobra.Command{
		Use:   "age NAME SEX",
		Short: "Estimate the age of people with a name",
		Long:  "Estimate the age of people with a name.\nSEX must be M or F.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sex, err := vital.ParseSex(args[1])
			if err != nil {
				return err
			}
			return a.runAge(args[0], sex, plot)
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", false, "Plot births and likely survivors by year")
	return cmd
}

func (a *app) runAge(name string, sex vital.Sex, plot bool) error {
	dc, ac := a.cfg.Data, a.cfg.Analysis
	ts, err := births.Assemble(births.Dir(dc.NamesDir), ac.Years(), a.log)
	if err != nil {
		return err
	}
	mort, err := actuarial.ReadFile(dc.Artifact)
	if err != nil {
		return err
	}
	tbl := ts.For(sex)
	curve, err := mort.Curve(sex).Sub(tbl.Years)
	if err != nil {
		return err
	}
	p, err := analysis.Query(tbl, curve, name, ac.ReferenceYear)
	if err != nil {
		return err
	}
	if err := writeProfile(a.out, p); err != nil {
		return err
	}
	if plot {
		return plotProfile(p)
	}
	return nil
}

// writeProfile writes a summary of p to w.
func writeProfile(w io.Writer, p *analysis.Profile) error {
	rw := &reportWriter{w: w}
	rw.printf("The average age for %s, %v is %0.1f.\n", p.Name, p.Sex, p.CurrentMeanAge)
	rw.printf("The median age for %s, %v is %0.1f.\n", p.Name, p.Sex, p.CurrentMedianAge)
	rw.printf("The std dev is %0.1f, skewness is %0.3f, and kurtosis is %0.3f.\n",
		p.StdDev, p.Skewness, p.Kurtosis)
	return rw.err
}

// profilePlot is passed to ageTmpl.
type profilePlot struct {
	DataPath    string
	Name        string
	Sex         vital.Sex
	First, Last int
	Mean        float64
	Median      float64
	Low, High   float64 // mean -/+ std dev
}

func plotProfile(p *analysis.Profile) error {
	data := make([][]float64, p.Years.Len())
	for i, y := range p.Years.Years() {
		data[i] = []float64{float64(y), float64(p.Births[i]), p.Survivors[i]}
	}
	dp, err := gnuplot.WriteData([]string{"Year", "Born", "Alive"}, data)
	if err != nil {
		return fmt.Errorf("failed writing data file: %v", err)
	}
	defer os.Remove(dp)

	if err := gnuplot.ExecTemplate(ageTmpl, newProfilePlot(p, dp)); err != nil {
		return fmt.Errorf("failed running gnuplot: %v", err)
	}
	return nil
}

func newProfilePlot(p *analysis.Profile, dataPath string) profilePlot {
	return profilePlot{
		DataPath: dataPath,
		Name:     p.Name,
		Sex:      p.Sex,
		First:    p.Years.First,
		Last:     p.Years.Last,
		Mean:     p.Mean,
		Median:   p.Median,
		Low:      p.Mean - p.StdDev,
		High:     p.Mean + p.StdDev,
	}
}
