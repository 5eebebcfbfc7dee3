// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"

	"github.com/kortschak/tairgo/internal/ontology"
	"github.com/kortschak/tairgo/internal/report"
)

// summariseNamespaces writes a frequency table for the slim terms of each
// GO namespace held by the records and plots the tables side by side to
// namespaces.png in dir. Namespaces without slim terms are skipped.
func summariseNamespaces(dir string, records []*record, onto *ontology.Context, retain ontology.Retention, top int) error {
	var plots []*plot.Plot
	for _, ns := range ontology.Namespaces {
		var names []string
		for _, r := range records {
			_, n := onto.SpecificSlims(r.SlimTerms, ns, retain)
			names = append(names, n...)
		}
		p, err := summarise(filepath.Join(dir, ns+".tsv"), names, ns, top)
		if err != nil {
			if errors.Is(err, report.ErrEmpty) {
				log.Printf("no GO slim terms for %s", ns)
				continue
			}
			return err
		}
		plots = append(plots, p)
	}
	if len(plots) == 0 {
		return report.ErrEmpty
	}
	return report.SavePanels(plots, filepath.Join(dir, "namespaces.png"))
}

// summariseAll writes a frequency table for all the slim terms held by
// the records and plots it to goslim.png in dir.
func summariseAll(dir string, records []*record, top int) error {
	var names []string
	for _, r := range records {
		names = append(names, report.Merge(r.SlimNames)...)
	}
	p, err := summarise(filepath.Join(dir, "goslim.tsv"), names, "", top)
	if err != nil {
		return err
	}
	return report.Save(p, filepath.Join(dir, "goslim.png"))
}

// summarise writes the top frequencies of names to the file at path
// and returns their bar chart.
func summarise(path string, names []string, title string, top int) (p *plot.Plot, err error) {
	table, err := report.Summarise(names, top)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = table.WriteTo(f)
	if err != nil {
		return nil, err
	}
	return report.BarChart(table, title)
}
