// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Program nameage estimates how old people with a given first name are
// likely to be, using SSA baby name counts and an actuarial life table.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/derat/nameage/config"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// app holds state shared by subcommands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	out io.Writer // report output
	err io.Writer // log output
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, err: errOut}
	var cfgPath string

	root := &cobra.Command{
		Use:           "nameage",
		Short:         "Estimate the ages of people with a given name",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if a.cfg, err = config.Load(cfgPath, cmd.Flags()); err != nil {
				return err
			}
			a.log, err = newLogger(a.cfg.Logging, a.err)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Configuration file (YAML, TOML or JSON)")
	pf.String(config.Flags["data.names_dir"], "", "Directory containing yobYYYY.txt files")
	pf.String(config.Flags["data.raw_mortality"], "", "Life table CSV indexed by age")
	pf.String(config.Flags["data.artifact"], "", "Mortality table indexed by birth year")
	pf.Int(config.Flags["analysis.first_year"], 0, "First birth year to analyze")
	pf.Int(config.Flags["analysis.last_year"], 0, "Last birth year to analyze")
	pf.Int(config.Flags["analysis.reference_year"], 0, "Year in which ages are reported")
	pf.Int64(config.Flags["analysis.threshold"], 0, "Minimum lifetime births (exclusive)")
	pf.Int(config.Flags["analysis.workers"], 0, "Names analyzed concurrently")
	pf.String(config.Flags["logging.level"], "", "Log level (debug, info, warn, error)")
	pf.String(config.Flags["logging.format"], "", "Log format (text, json)")

	root.AddCommand(newMortalityCmd(a), newDemographicsCmd(a), newAgeCmd(a))
	return root
}

// newLogger returns a logger writing to w as described by lc.
func newLogger(lc config.LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	switch lc.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("bad log format %q", lc.Format)
	}
	return l, nil
}
