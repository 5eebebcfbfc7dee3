// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/kortschak/tairgo/internal/uniprot"
)

// record holds the GO annotation data for a gene/accession pair.
type record struct {
	Gene      string
	Accession string

	// GOTerms are the GO terms cross-referenced
	// by the accession's UniProtKB entry.
	GOTerms []string

	// SlimTerms and SlimNames are the slim
	// term and slim name lists derived from
	// GOTerms. They are set once.
	SlimTerms [][]string
	SlimNames [][]string
}

// geneIDs returns the gene identifiers held in the named column of the
// tab-delimited table at path. Tables with a .gz suffix are decompressed.
// Empty and repeated identifiers are omitted.
func geneIDs(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	c := csv.NewReader(r)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = -1

	labels, err := c.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	col := -1
	for i, l := range labels {
		if l == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no %q column in %s", column, path)
	}

	seen := make(map[string]bool)
	var ids []string
	c.ReuseRecord = true
	for {
		fields, err := c.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		if col >= len(fields) {
			continue
		}
		id := strings.TrimSpace(fields[col])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchRecords returns a record holding the GO terms of each mapped
// accession, in mapping order. Accessions whose GO terms cannot be
// fetched are logged and given no terms. An error is returned only if
// ctx is done.
func fetchRecords(ctx context.Context, up *uniprot.Client, mappings []uniprot.Mapping) ([]*record, error) {
	records := make([]*record, 0, len(mappings))
	for _, m := range mappings {
		terms, err := up.GOTerms(ctx, m.To)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("failed to fetch GO terms for %s: %v", m.To, err)
		}
		records = append(records, &record{Gene: m.From, Accession: m.To, GOTerms: terms})
	}
	return records, nil
}

// writeRecords writes the records to the file at path as tab-separated
// values. GO term lists are comma-separated and lists of lists are
// separated by semicolons.
func writeRecords(path string, records []*record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	return encodeRecords(f, records)
}

func encodeRecords(dst io.Writer, records []*record) error {
	w := csv.NewWriter(dst)
	w.Comma = '\t'
	err := w.Write([]string{"gene", "accession", "go_terms", "goslim_terms", "goslim_names"})
	if err != nil {
		return err
	}
	for _, r := range records {
		err = w.Write([]string{
			r.Gene,
			r.Accession,
			strings.Join(r.GOTerms, ","),
			joinLists(r.SlimTerms),
			joinLists(r.SlimNames),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func joinLists(lists [][]string) string {
	s := make([]string, len(lists))
	for i, l := range lists {
		s[i] = strings.Join(l, ",")
	}
	return strings.Join(s, ";")
}
