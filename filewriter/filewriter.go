// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package filewriter writes files atomically so that readers of derived
// tables never observe a partially-written file.
package filewriter

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes to a temp file in the destination's directory and
// renames it over the destination in Close.
// After a write error, further writes are no-ops and Close reports the error.
type FileWriter struct {
	p    string   // target filename
	f    *os.File // temp file
	werr error    // first error encountered while writing
	done bool     // Close or Abort was called
}

// New returns a new FileWriter that will write to p.
func New(p string) (*FileWriter, error) {
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*")
	if err != nil {
		return nil, err
	}
	return &FileWriter{p: p, f: f}, nil
}

// Write implements io.Writer.
func (fw *FileWriter) Write(b []byte) (int, error) {
	if fw.werr != nil {
		return 0, fw.werr
	}
	var n int
	n, fw.werr = fw.f.Write(b)
	return n, fw.werr
}

// Printf writes formatted data and returns the number of bytes written.
func (fw *FileWriter) Printf(format string, args ...interface{}) int {
	var n int
	if fw.werr == nil {
		n, fw.werr = fmt.Fprintf(fw.f, format, args...)
	}
	return n
}

// Close renames the temp file to the path originally supplied to New.
// If a write error occurred earlier, it is returned and the destination
// is left untouched.
func (fw *FileWriter) Close() error {
	if fw.done {
		return nil
	}
	fw.done = true

	defer os.Remove(fw.f.Name()) // no-op on success
	cerr := fw.f.Close()
	if fw.werr != nil {
		return fw.werr
	}
	if cerr != nil {
		return cerr
	}
	return os.Rename(fw.f.Name(), fw.p)
}

// Abort discards everything written so far. It is safe to defer Abort
// and call Close on success.
func (fw *FileWriter) Abort() {
	if fw.done {
		return
	}
	fw.done = true
	fw.f.Close()
	os.Remove(fw.f.Name())
}
