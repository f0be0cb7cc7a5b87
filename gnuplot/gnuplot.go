// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package gnuplot makes it slightly easier to generate plots using gnuplot.
package gnuplot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"text/template"
)

// Render executes the Go template tmpl with data and writes the resulting
// gnuplot commands to w.
func Render(w io.Writer, tmpl string, data interface{}) error {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// WriteData writes a temp file containing a header line followed by rows,
// with tab-separated values. The file's path is returned.
// The caller is responsible for removing it.
func WriteData(header []string, rows [][]float64) (string, error) {
	f, err := os.CreateTemp("", "gnuplot.data.")
	if err != nil {
		return "", err
	}
	if err := writeRows(f, header, rows); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), f.Close()
}

func writeRows(w io.Writer, header []string, rows [][]float64) error {
	var writeErr error
	write := func(s string) {
		if writeErr == nil {
			_, writeErr = io.WriteString(w, s)
		}
	}

	write(strings.Join(header, "\t") + "\n")
	vals := make([]string, 0, len(header))
	for _, row := range rows {
		vals = vals[:0]
		for _, v := range row {
			vals = append(vals, strconv.FormatFloat(v, 'g', -1, 64))
		}
		write(strings.Join(vals, "\t") + "\n")
	}
	return writeErr
}

// ExecTemplate executes the supplied Go template and data to write a .gnuplot file,
// which it then passes to gnuplot. The plot window persists after gnuplot exits.
func ExecTemplate(tmpl string, data interface{}) error {
	gf, err := os.CreateTemp("", "gnuplot.")
	if err != nil {
		return err
	}
	defer os.Remove(gf.Name())

	terr := Render(gf, tmpl, data)
	cerr := gf.Close()
	if terr != nil {
		return terr
	}
	if cerr != nil {
		return cerr
	}

	var stderr bytes.Buffer
	cmd := exec.Command("gnuplot", "-p", gf.Name())
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %q", err, msg)
		}
		return err
	}
	return nil
}
