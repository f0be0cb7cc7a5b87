// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package births

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/derat/nameage/vital"
)

func TestParseYear(t *testing.T) {
	const in = "Mary,F,7065\n" +
		"John,M,9655\n" +
		"\n" +
		"Anna,F,2604\r\n" +
		"Bad Name,F,3\n" +
		"X7,M,3\n" +
		"Pat,X,12\n" +
		"Pat,MF,12\n" +
		"Lou,M,-1\n" +
		"Lou,M\n" +
		"Mary,F,7000\n"

	recs, ps, err := ParseYear(strings.NewReader(in))
	if err != nil {
		t.Fatal("ParseYear failed: ", err)
	}
	want := []Record{
		{"Mary", vital.Female, 7065},
		{"John", vital.Male, 9655},
		{"Anna", vital.Female, 2604},
		{"Mary", vital.Female, 7000},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Error("ParseYear returned bad records:\n" + diff)
	}
	if ps.Records != 4 || ps.Malformed != 5 || ps.BadSex != 1 {
		t.Errorf("ParseYear returned %d records, %d malformed, %d bad sex; want 4, 5, 1",
			ps.Records, ps.Malformed, ps.BadSex)
	}

	var lines []int
	for _, sk := range ps.Skips {
		lines = append(lines, sk.Line)
		if sk.Text == "Pat,X,12" && !errors.Is(sk.Reason, vital.ErrUnsupportedSex) {
			t.Errorf("Line %d skipped for %v; want ErrUnsupportedSex", sk.Line, sk.Reason)
		}
	}
	if diff := cmp.Diff([]int{5, 6, 7, 8, 9, 10}, lines); diff != "" {
		t.Error("Skipped lines mismatch:\n" + diff)
	}
}

func TestTable_SetLastWriteWins(t *testing.T) {
	tbl := NewTable(vital.Female, vital.Range{First: 2000, Last: 2001})
	recs, _, err := ParseYear(strings.NewReader("Ada,F,5\nAda,F,8\n"))
	if err != nil {
		t.Fatal("ParseYear failed: ", err)
	}
	for _, r := range recs {
		if err := tbl.Set(2000, r.Name, r.Count); err != nil {
			t.Fatal("Set failed: ", err)
		}
	}
	if n, ok := tbl.Count(2000, "Ada"); !ok || n != 8 {
		t.Errorf("Count(2000, Ada) = %v, %v; want 8, true", n, ok)
	}
	if n := tbl.Total("Ada"); n != 8 {
		t.Errorf("Total(Ada) = %v; want 8", n)
	}
	if err := tbl.Set(1999, "Ada", 1); err == nil {
		t.Error("Set unexpectedly succeeded for year outside range")
	}
}

func TestTable_Patch(t *testing.T) {
	years := vital.Range{First: 1990, Last: 1992}
	tbl := NewTable(vital.Male, years)
	for _, e := range []struct {
		y    int
		name string
		n    int64
	}{
		{1990, "Sam", 4},
		{1992, "Ada", 6},
		{1991, "Lou", 1},
		{1992, "Sam", 2},
	} {
		if err := tbl.Set(e.y, e.name, e.n); err != nil {
			t.Fatal("Set failed: ", err)
		}
	}

	if tbl.Dense() {
		t.Error("Table is dense before patching")
	}
	if _, ok := tbl.Count(1991, "Ada"); ok {
		t.Error("Count(1991, Ada) exists before patching")
	}
	if n := tbl.Patch(); n != 5 {
		t.Errorf("Patch() = %v; want 5", n)
	}
	if !tbl.Dense() {
		t.Error("Table isn't dense after patching")
	}
	for _, y := range years.Years() {
		for _, name := range tbl.Names() {
			if _, ok := tbl.Count(y, name); !ok {
				t.Errorf("No entry for (%d, %v) after patching", y, name)
			}
		}
	}

	before := copyYears(tbl)
	if n := tbl.Patch(); n != 0 {
		t.Errorf("Second Patch() = %v; want 0", n)
	}
	if diff := cmp.Diff(before, copyYears(tbl)); diff != "" {
		t.Error("Second Patch changed table:\n" + diff)
	}

	if diff := cmp.Diff([]string{"Sam", "Ada", "Lou"}, tbl.Names()); diff != "" {
		t.Error("Names() not in first-appearance order:\n" + diff)
	}
	if diff := cmp.Diff([]int64{4, 0, 2}, tbl.Series("Sam")); diff != "" {
		t.Error("Series(Sam) mismatch:\n" + diff)
	}
	if diff := cmp.Diff([]int64{0, 0, 0}, tbl.Series("Nobody")); diff != "" {
		t.Error("Series(Nobody) mismatch:\n" + diff)
	}
}

func copyYears(t *Table) map[int]YearCounts {
	m := make(map[int]YearCounts)
	for _, y := range t.Years.Years() {
		yc := make(YearCounts)
		for k, v := range t.Year(y) {
			yc[k] = v
		}
		m[y] = yc
	}
	return m
}

// fakeSource supplies records from in-memory strings keyed by year.
type fakeSource map[int]string

func (src fakeSource) Open(year int) (io.ReadCloser, error) {
	s, ok := src[year]
	if !ok {
		return nil, &vital.MissingFileError{Path: "fake", Year: year, Err: os.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(s)), nil
}

func TestAssemble(t *testing.T) {
	src := fakeSource{
		1990: "Ada,F,100\nSam,M,3\n",
		1991: "Zed,M,1\nJo,Q,4\n",
		1992: "Ada,F,50\nAda,M,7\n",
	}
	ts, err := Assemble(src, vital.Range{First: 1990, Last: 1992}, nil)
	if err != nil {
		t.Fatal("Assemble failed: ", err)
	}
	if !ts.Female.Dense() || !ts.Male.Dense() {
		t.Error("Assembled tables aren't dense")
	}
	if diff := cmp.Diff([]int64{100, 0, 50}, ts.For(vital.Female).Series("Ada")); diff != "" {
		t.Error("Female Ada mismatch:\n" + diff)
	}
	if diff := cmp.Diff([]string{"Sam", "Zed", "Ada"}, ts.Male.Names()); diff != "" {
		t.Error("Male names mismatch:\n" + diff)
	}
	if ts.Female.Has("Jo") || ts.Male.Has("Jo") {
		t.Error("Record with unsupported sex was kept")
	}
}

func TestAssemble_MissingYear(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "yob1990.txt"), []byte("Ada,F,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Assemble(Dir(dir), vital.Range{First: 1990, Last: 1991}, nil)
	var mfe *vital.MissingFileError
	if !errors.As(err, &mfe) {
		t.Fatalf("Assemble returned %v; want MissingFileError", err)
	}
	if mfe.Year != 1991 || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Assemble returned %+v; want year 1991", mfe)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "yob2017.txt"), []byte("Emma,F,19738\nLiam,M,18728\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ts, err := Assemble(Dir(dir), vital.Range{First: 2017, Last: 2017}, nil)
	if err != nil {
		t.Fatal("Assemble failed: ", err)
	}
	got := map[string]int64{"Emma": ts.Female.Total("Emma"), "Liam": ts.Male.Total("Liam")}
	if diff := cmp.Diff(map[string]int64{"Emma": 19738, "Liam": 18728}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Error("Totals mismatch:\n" + diff)
	}
}
