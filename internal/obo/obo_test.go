// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obo

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/pkg/diff"
	"github.com/pkg/diff/write"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

const fixture = `format-version: 1.2
data-version: releases/2026-10-01
ontology: go

[Term]
id: GO:0000001
name: mitochondrion inheritance
namespace: biological_process
alt_id: GO:0000091
def: "The distribution of \"mitochondria\" into daughter cells." [GOC:mcc]
is_a: GO:0048308 ! organelle inheritance
is_a: GO:0048308 ! organelle inheritance
relationship: part_of GO:0000002 ! mitochondrial genome maintenance
subset: goslim_generic
xref: Wikipedia:Mitochondrion {source="x"}
synonym: "mitochondrial inheritance" EXACT []

! Obsolete terms are retained.
[Term]
id: GO:0000003
name: obsolete reproduction
namespace: biological_process
is_obsolete: true
replaced_by: GO:0000004

[Typedef]
id: part_of
name: part of
is_transitive: true

[Instance]
id: example
`

func TestDecoder(t *testing.T) {
	dec, err := NewDecoder(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("unexpected error creating decoder: %v", err)
	}

	wantHeader := map[string][]string{
		"format-version": {"1.2"},
		"data-version":   {"releases/2026-10-01"},
		"ontology":       {"go"},
	}
	if !reflect.DeepEqual(dec.Header(), wantHeader) {
		t.Errorf("unexpected header: got:%v want:%v", dec.Header(), wantHeader)
	}

	var got []string
	uids := make(map[string]int64)
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("error during decoding: %v", err)
			}
			break
		}
		for _, term := range []rdf.Term{s.Subject, s.Predicate, s.Object} {
			if term.UID == 0 {
				t.Errorf("unset UID for %s", term.Value)
			}
			if uid, ok := uids[term.Value]; ok && uid != term.UID {
				t.Errorf("inconsistent UID for %s: %d != %d", term.Value, uid, term.UID)
			}
			uids[term.Value] = term.UID
		}
		got = append(got, s.String())
	}
	sort.Strings(got)

	want := []string{
		statement("obo:GO_0000001", "rdf:type", iri("owl:Class")),
		statement("obo:GO_0000001", "rdfs:label", literal("mitochondrion inheritance")),
		statement("obo:GO_0000001", "oboInOwl:hasOBONamespace", literal("biological_process")),
		statement("obo:GO_0000001", "oboInOwl:hasAlternativeId", literal("GO:0000091")),
		statement("obo:GO_0000001", "obo:IAO_0000115", literal(`The distribution of "mitochondria" into daughter cells.`)),
		statement("obo:GO_0000001", "rdfs:subClassOf", iri("obo:GO_0048308")),
		statement("obo:GO_0000001", "obo:go#part_of", iri("obo:GO_0000002")),
		statement("obo:GO_0000001", "oboInOwl:inSubset", iri("obo:go#goslim_generic")),
		statement("obo:GO_0000001", "oboInOwl:hasDbXref", literal("Wikipedia:Mitochondrion")),
		statement("obo:GO_0000003", "rdf:type", iri("owl:Class")),
		statement("obo:GO_0000003", "rdfs:label", literal("obsolete reproduction")),
		statement("obo:GO_0000003", "oboInOwl:hasOBONamespace", literal("biological_process")),
		statement("obo:GO_0000003", "owl:deprecated", literal("true")),
		statement("obo:GO_0000003", "obo:IAO_0100001", iri("obo:GO_0000004")),
		statement("obo:go#part_of", "rdf:type", iri("owl:ObjectProperty")),
		statement("obo:go#part_of", "rdfs:label", literal("part of")),
	}
	sort.Strings(want)

	if !reflect.DeepEqual(got, want) {
		var buf bytes.Buffer
		err := diff.Text("got", "want", strings.Join(got, "\n")+"\n", strings.Join(want, "\n")+"\n", &buf, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected statements:\n%s", &buf)
	}
}

func TestDecoderReset(t *testing.T) {
	dec, err := NewDecoder(strings.NewReader("[Term]\nid: GO:0000001\nname: a\n"))
	if err != nil {
		t.Fatalf("unexpected error creating decoder: %v", err)
	}
	first, err := dec.Unmarshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = dec.Reset(strings.NewReader("ontology: go\n\n[Term]\nid: GO:0000001\nis_a: GO:0000002\n"))
	if err != nil {
		t.Fatalf("unexpected error resetting decoder: %v", err)
	}
	if got := dec.Header()["ontology"]; !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("unexpected header after reset: %v", got)
	}
	var n int
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("error during decoding: %v", err)
			}
			break
		}
		n++
		if s.Subject.Value == first.Subject.Value && s.Subject.UID != first.Subject.UID {
			t.Errorf("term ID mapping not retained over reset: %d != %d", s.Subject.UID, first.Subject.UID)
		}
	}
	// The rdf:type statement was seen before the reset.
	if n != 1 {
		t.Errorf("unexpected number of statements after reset: got:%d want:1", n)
	}
}

var malformedTests = []string{
	"[Term]\nid: GO:0000001\nnot a tag\n",
	"[Term]\nname: no identifier\n",
	"[Term]\nid: GO:0000001\nrelationship: part_of\n",
}

func TestDecoderMalformed(t *testing.T) {
	for _, test := range malformedTests {
		dec, err := NewDecoder(strings.NewReader(test))
		if err != nil {
			t.Fatalf("unexpected error creating decoder: %v", err)
		}
		_, err = dec.Unmarshal()
		if err == nil || err == io.EOF {
			t.Errorf("expected error for %q, got:%v", test, err)
		}
	}
}

var iriTests = []struct {
	id  string
	iri string
}{
	{id: "GO:0005739", iri: "<obo:GO_0005739>"},
	{id: "part_of", iri: "<obo:go#part_of>"},
	{id: "BFO:0000050", iri: "<obo:BFO_0000050>"},
}

func TestIRI(t *testing.T) {
	for _, test := range iriTests {
		got := IRI(test.id)
		if got != test.iri {
			t.Errorf("unexpected IRI for %q: got:%q want:%q", test.id, got, test.iri)
		}
		back := ID(got)
		if back != test.id {
			t.Errorf("unexpected ID for %q: got:%q want:%q", got, back, test.id)
		}
	}
}

var valueTests = []struct {
	in   string
	want string
}{
	{in: "GO:0048308 ! organelle inheritance", want: "GO:0048308"},
	{in: "GO:0048308", want: "GO:0048308"},
	{in: `Wikipedia:Mitochondrion {source="x"}`, want: "Wikipedia:Mitochondrion"},
	{in: "GO:0048308 {cardinality=\"1\"} ! organelle inheritance", want: "GO:0048308"},
	{in: "signal!transduction", want: "signal!transduction"},
}

func TestValue(t *testing.T) {
	for _, test := range valueTests {
		got := value(test.in)
		if got != test.want {
			t.Errorf("unexpected value for %q: got:%q want:%q", test.in, got, test.want)
		}
	}
}

func iri(s string) rdf.Term {
	return mustTerm(rdf.NewIRITerm(s))
}

func literal(s string) rdf.Term {
	return mustTerm(rdf.NewLiteralTerm(s, ""))
}

func statement(subj, pred string, obj rdf.Term) string {
	return fmt.Sprint(&rdf.Statement{Subject: iri(subj), Predicate: iri(pred), Object: obj})
}
