// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report provides GO slim frequency summaries and their plots.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// DefaultTop is the number of rows retained in a summary.
const DefaultTop = 20

// ErrEmpty is returned when a frequency table is requested for no values.
var ErrEmpty = errors.New("report: no values to count")

// Merge returns the concatenation of lists, preserving order.
func Merge(lists [][]string) []string {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	merged := make([]string, 0, n)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

// Frequency is the number of occurrences of a name and the fraction of
// all occurrences it represents.
type Frequency struct {
	Name     string
	Count    int
	Fraction float64
}

// Table is a frequency table.
type Table []Frequency

// Frequencies returns the frequency table for names sorted by descending
// fraction. Names with equal counts are ordered by first occurrence.
func Frequencies(names []string) (Table, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	idx := make(map[string]int)
	var t Table
	for _, n := range names {
		i, ok := idx[n]
		if !ok {
			i = len(t)
			idx[n] = i
			t = append(t, Frequency{Name: n})
		}
		t[i].Count++
	}
	total := float64(len(names))
	for i := range t {
		t[i].Fraction = float64(t[i].Count) / total
	}
	sort.SliceStable(t, func(i, j int) bool { return t[i].Fraction > t[j].Fraction })
	return t, nil
}

// Top returns the first n rows of the table.
func (t Table) Top(n int) Table {
	if n < 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

// Summarise returns the frequency table for names truncated to n rows.
func Summarise(names []string, n int) (Table, error) {
	t, err := Frequencies(names)
	if err != nil {
		return nil, err
	}
	return t.Top(n), nil
}

// WriteTo writes the table to w as tab-separated values with a header.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	var n int64
	c, err := fmt.Fprintln(w, "goslim\tcount\tpercentage")
	n += int64(c)
	if err != nil {
		return n, err
	}
	for _, f := range t {
		c, err = fmt.Fprintf(w, "%s\t%d\t%v\n", f.Name, f.Count, f.Fraction)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
