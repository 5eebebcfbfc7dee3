// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/diff"
	"github.com/pkg/diff/write"

	"github.com/kortschak/tairgo/internal/uniprot"
)

const genesTSV = `# Arabidopsis genes of interest.
tair_id	symbol
AT1G01010	NAC001
AT1G01020	ARV1

AT1G01010	NAC001
	UNKNOWN
AT1G01030	NGA3
`

func TestGeneIDs(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "genes.tsv")
	err := os.WriteFile(plain, []byte(genesTSV), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write([]byte(genesTSV))
	w.Close()
	compressed := filepath.Join(dir, "genes.tsv.gz")
	err = os.WriteFile(compressed, buf.Bytes(), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"AT1G01010", "AT1G01020", "AT1G01030"}
	for _, path := range []string{plain, compressed} {
		got, err := geneIDs(path, "tair_id")
		if err != nil {
			t.Errorf("unexpected error reading %s: %v", path, err)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected gene identifiers from %s: got:%v want:%v", path, got, want)
		}
	}

	_, err = geneIDs(plain, "locus")
	if err == nil {
		t.Error("expected error for missing column")
	}
}

func TestEncodeRecords(t *testing.T) {
	records := []*record{
		{
			Gene:      "AT1G01010",
			Accession: "Q0WV96",
			GOTerms:   []string{"GO:0005634", "GO:0003700"},
			SlimTerms: [][]string{{"GO:0005634", "GO:0005575"}, {"GO:0003700"}},
			SlimNames: [][]string{{"nucleus", "cellular_component"}, {"DNA-binding transcription factor activity"}},
		},
		{
			Gene:      "AT1G01020",
			Accession: "Q9C5K1",
		},
	}
	var buf bytes.Buffer
	err := encodeRecords(&buf, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "gene\taccession\tgo_terms\tgoslim_terms\tgoslim_names\n" +
		"AT1G01010\tQ0WV96\tGO:0005634,GO:0003700\tGO:0005634,GO:0005575;GO:0003700\tnucleus,cellular_component;DNA-binding transcription factor activity\n" +
		"AT1G01020\tQ9C5K1\t\t\t\n"
	if buf.String() != want {
		var d bytes.Buffer
		err := diff.Text("got", "want", buf.String(), want, &d, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected records output:\n%s", &d)
	}
}

func TestFetchRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uniprotkb/Q0WV96.json":
			fmt.Fprint(w, `{"primaryAccession":"Q0WV96","uniProtKBCrossReferences":[{"database":"GO","id":"GO:0005634"}]}`)
		case "/uniprotkb/Q9C5K1.json":
			fmt.Fprint(w, `{"primaryAccession":"Q9C5K1","uniProtKBCrossReferences":[{"database":"GO","id":"GO:0003700"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"messages":["Resource not found"]}`)
		}
	}))
	defer srv.Close()
	up, err := uniprot.NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	mappings := []uniprot.Mapping{
		{From: "AT1G01010", To: "Q0WV96"},
		{From: "AT1G01030", To: "Q00000"},
		{From: "AT1G01020", To: "Q9C5K1"},
	}
	got, err := fetchRecords(context.Background(), up, mappings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*record{
		{Gene: "AT1G01010", Accession: "Q0WV96", GOTerms: []string{"GO:0005634"}},
		{Gene: "AT1G01030", Accession: "Q00000"},
		{Gene: "AT1G01020", Accession: "Q9C5K1", GOTerms: []string{"GO:0003700"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected records:\ngot: %+v\nwant:%+v", got, want)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err = fetchRecords(ctx, up, mappings)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got:%v", err)
	}
	if got != nil {
		t.Errorf("unexpected records after cancellation: %+v", got)
	}
}
