// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/diff"
	"github.com/pkg/diff/write"

	"github.com/kortschak/tairgo/internal/ontology"
)

const fullOBO = `format-version: 1.2

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component

[Term]
id: GO:0005634
name: nucleus
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0005694
name: chromosome
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0003674
name: molecular_function
namespace: molecular_function

[Term]
id: GO:0003700
name: DNA-binding transcription factor activity
namespace: molecular_function
is_a: GO:0003674 ! molecular_function

[Term]
id: GO:0008150
name: biological_process
namespace: biological_process
`

const slimOBO = `format-version: 1.2

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component

[Term]
id: GO:0005634
name: nucleus
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0005694
name: chromosome
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0003674
name: molecular_function
namespace: molecular_function
`

func testOntology(t *testing.T) *ontology.Context {
	t.Helper()
	onto, err := ontology.Load(strings.NewReader(fullOBO), strings.NewReader(slimOBO), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("failed to load test ontology: %v", err)
	}
	return onto
}

func testRecords(onto *ontology.Context, p ontology.Policy) []*record {
	records := []*record{
		{Gene: "AT1G01010", Accession: "Q0WV96", GOTerms: []string{"GO:0005634", "GO:0003700"}},
		{Gene: "AT1G01020", Accession: "Q9C5K1", GOTerms: []string{"GO:0005634", "GO:0009999"}},
	}
	for _, r := range records {
		r.SlimTerms, r.SlimNames = onto.Reduce(r.GOTerms, p)
	}
	return records
}

func TestWriteTriples(t *testing.T) {
	onto := testOntology(t)
	p := ontology.Policy{Ancestors: ontology.DirectAncestors}
	g := annotationGraph(testRecords(onto, p), onto, p)

	var buf bytes.Buffer
	err := writeTriples(&buf, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<obo:GO_0003700> <local:annotates> <uniprot:Q0WV96> .
<obo:GO_0003700> <local:slims_to> <obo:GO_0003674> .
<obo:GO_0005634> <local:annotates> <uniprot:Q0WV96> .
<obo:GO_0005634> <local:annotates> <uniprot:Q9C5K1> .
<obo:GO_0005634> <local:slims_to> <obo:GO_0005634> .
<obo:GO_0009999> <local:annotates> <uniprot:Q9C5K1> .
<uniprot:Q0WV96> <local:encoded_by> <tair:AT1G01010> .
<uniprot:Q9C5K1> <local:encoded_by> <tair:AT1G01020> .
`
	if buf.String() != want {
		var d bytes.Buffer
		err := diff.Text("got", "want", buf.String(), want, &d, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected triples:\n%s", &d)
	}
}

func TestWriteDebug(t *testing.T) {
	onto := testOntology(t)
	p := ontology.Policy{}
	g := annotationGraph(testRecords(onto, p), onto, p)

	var buf bytes.Buffer
	err := writeDebug(&buf, g, onto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"digraph goslim {",
		"rankdir=LR",
		"DNA-binding transcription factor activity",
		"slims_to",
		"AT1G01020",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in debug output:\n%s", want, got)
		}
	}
}

func TestSummarise(t *testing.T) {
	onto := testOntology(t)
	p := ontology.Policy{}
	records := testRecords(onto, p)
	chromosome := &record{Gene: "AT1G01030", Accession: "Q9MAN1", GOTerms: []string{"GO:0005694"}}
	chromosome.SlimTerms, chromosome.SlimNames = onto.Reduce(chromosome.GOTerms, p)
	records = append(records, chromosome)
	dir := t.TempDir()

	err := summariseNamespaces(dir, records, onto, ontology.RetainLast, 20)
	if err != nil {
		t.Fatalf("unexpected error summarising namespaces: %v", err)
	}
	err = summariseAll(dir, records, 20)
	if err != nil {
		t.Fatalf("unexpected error summarising slims: %v", err)
	}
	for _, name := range []string{"namespaces.png", "goslim.png", "molecular_function.tsv", "cellular_component.tsv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "biological_process.tsv")); err == nil {
		t.Error("unexpected output for namespace without slims")
	}

	b, err := os.ReadFile(filepath.Join(dir, "cellular_component.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "goslim\tcount\tpercentage\nnucleus\t2\t0.6666666666666666\nchromosome\t1\t0.3333333333333333\n"
	if string(b) != want {
		t.Errorf("unexpected cellular_component summary: got:%q want:%q", b, want)
	}

	b, err = os.ReadFile(filepath.Join(dir, "molecular_function.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	want = "goslim\tcount\tpercentage\nmolecular_function\t1\t1\n"
	if string(b) != want {
		t.Errorf("unexpected molecular_function summary: got:%q want:%q", b, want)
	}

	b, err = os.ReadFile(filepath.Join(dir, "goslim.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n")[1:] {
		f := strings.Split(line, "\t")
		got = append(got, f[0]+" "+f[1])
	}
	wantRows := []string{"cellular_component 3", "nucleus 2", "molecular_function 1", "chromosome 1"}
	if !reflect.DeepEqual(got, wantRows) {
		t.Errorf("unexpected all slim summary rows: got:%v want:%v", got, wantRows)
	}
}
