// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obo

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// This file contains the logic required to map OBO tag-value pairs to
// RDF N-Triples. The mapping follows the spirit of the OBO to OWL
// mapping at http://owlcollab.github.io/oboformat/doc/obo-syntax.html
// but with local namespaces and without axiom annotations.

// Term texts emitted by the decoder. These are the forms that are
// queried by clients of the decoded graph.
const (
	Type           = "<rdf:type>"
	SubClassOf     = "<rdfs:subClassOf>"
	Label          = "<rdfs:label>"
	Namespace      = "<oboInOwl:hasOBONamespace>"
	AlternativeID  = "<oboInOwl:hasAlternativeId>"
	InSubset       = "<oboInOwl:inSubset>"
	Consider       = "<oboInOwl:consider>"
	DbXref         = "<oboInOwl:hasDbXref>"
	Deprecated     = "<owl:deprecated>"
	Definition     = "<obo:IAO_0000115>"
	ReplacedBy     = "<obo:IAO_0100001>"
	Class          = "<owl:Class>"
	ObjectProperty = "<owl:ObjectProperty>"
)

var (
	rdfType    = mustTerm(rdf.NewIRITerm("rdf:type"))
	owlClass   = mustTerm(rdf.NewIRITerm("owl:Class"))
	owlObjProp = mustTerm(rdf.NewIRITerm("owl:ObjectProperty"))
	deprecated = mustTerm(rdf.NewIRITerm("owl:deprecated"))
	isTrue     = mustTerm(rdf.NewLiteralTerm("true", ""))
)

// predicates maps OBO tags to the predicates they are collected with.
// Tags that are not listed and that are not handled specially are
// ignored.
var predicates = map[string]struct {
	iri     string
	literal bool
}{
	"name":        {iri: "rdfs:label", literal: true},
	"namespace":   {iri: "oboInOwl:hasOBONamespace", literal: true},
	"alt_id":      {iri: "oboInOwl:hasAlternativeId", literal: true},
	"consider":    {iri: "oboInOwl:consider", literal: true},
	"xref":        {iri: "oboInOwl:hasDbXref", literal: true},
	"comment":     {iri: "rdfs:comment", literal: true},
	"is_a":        {iri: "rdfs:subClassOf"},
	"subset":      {iri: "oboInOwl:inSubset"},
	"replaced_by": {iri: "obo:IAO_0100001"},
}

type term []tag

func (t term) collect(dst []*rdf.Statement) []*rdf.Statement {
	id := t.id()
	if id == "" {
		panic(errors.New("term stanza without id"))
	}
	subj := mustTerm(rdf.NewIRITerm(localIRI(id)))
	dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdfType, Object: owlClass})
	for _, tv := range t {
		switch tv.key {
		case "id":
			continue
		case "def":
			text, _ := quoted(tv.value)
			pred := mustTerm(rdf.NewIRITerm("obo:IAO_0000115"))
			obj := mustTerm(rdf.NewLiteralTerm(text, ""))
			dst = append(dst, &rdf.Statement{Subject: subj, Predicate: pred, Object: obj})
		case "is_obsolete":
			if value(tv.value) == "true" {
				dst = append(dst, &rdf.Statement{Subject: subj, Predicate: deprecated, Object: isTrue})
			}
		case "relationship":
			fields := strings.Fields(value(tv.value))
			if len(fields) < 2 {
				panic(errors.New("malformed relationship: " + tv.value))
			}
			pred := mustTerm(rdf.NewIRITerm(localIRI(fields[0])))
			obj := mustTerm(rdf.NewIRITerm(localIRI(fields[1])))
			dst = append(dst, &rdf.Statement{Subject: subj, Predicate: pred, Object: obj})
		default:
			p, ok := predicates[tv.key]
			if !ok {
				continue
			}
			pred := mustTerm(rdf.NewIRITerm(p.iri))
			var obj rdf.Term
			if p.literal {
				obj = mustTerm(rdf.NewLiteralTerm(value(tv.value), ""))
			} else {
				obj = mustTerm(rdf.NewIRITerm(localIRI(value(tv.value))))
			}
			dst = append(dst, &rdf.Statement{Subject: subj, Predicate: pred, Object: obj})
		}
	}
	return dst
}

func (t term) id() string {
	for _, tv := range t {
		if tv.key == "id" {
			return value(tv.value)
		}
	}
	return ""
}

type typedef []tag

func (t typedef) collect(dst []*rdf.Statement) []*rdf.Statement {
	id := term(t).id()
	if id == "" {
		panic(errors.New("typedef stanza without id"))
	}
	subj := mustTerm(rdf.NewIRITerm(localIRI(id)))
	dst = append(dst, &rdf.Statement{Subject: subj, Predicate: rdfType, Object: owlObjProp})
	for _, tv := range t {
		if tv.key != "name" {
			continue
		}
		pred := mustTerm(rdf.NewIRITerm("rdfs:label"))
		obj := mustTerm(rdf.NewLiteralTerm(value(tv.value), ""))
		dst = append(dst, &rdf.Statement{Subject: subj, Predicate: pred, Object: obj})
	}
	return dst
}

// IRI returns the local IRI term text for an OBO identifier, so
// GO:0005739 is returned as <obo:GO_0005739>. Unprefixed identifiers
// such as relationship types are placed in the obo:go# namespace.
func IRI(id string) string {
	return "<" + localIRI(id) + ">"
}

func localIRI(id string) string {
	idx := strings.Index(id, ":")
	if idx < 0 {
		return "obo:go#" + id
	}
	return "obo:" + id[:idx] + "_" + id[idx+1:]
}

// ID returns the OBO identifier for a local IRI term text. It is the
// inverse of IRI.
func ID(iri string) string {
	local := strings.TrimSuffix(strings.TrimPrefix(iri, "<"), ">")
	if strings.HasPrefix(local, "obo:go#") {
		return strings.TrimPrefix(local, "obo:go#")
	}
	local = strings.TrimPrefix(local, "obo:")
	idx := strings.Index(local, "_")
	if idx < 0 {
		return local
	}
	return local[:idx] + ":" + local[idx+1:]
}

// value returns the value of a tag with trailing qualifier blocks
// and comments removed.
func value(v string) string {
	v = stripComment(v)
	if strings.HasSuffix(v, "}") {
		if idx := strings.LastIndex(v, "{"); idx >= 0 {
			v = strings.TrimSpace(v[:idx])
		}
	}
	return v
}

// stripComment removes a trailing "! comment" that is not within a
// quoted string.
func stripComment(v string) string {
	var inQuote, escaped bool
	for i, r := range v {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case r == '!' && !inQuote && (i == 0 || v[i-1] == ' ' || v[i-1] == '\t'):
			return strings.TrimSpace(v[:i])
		}
	}
	return v
}

// quoted returns the unescaped text of the quoted string leading v
// and the remainder of v.
func quoted(v string) (text, rest string) {
	if !strings.HasPrefix(v, `"`) {
		return value(v), ""
	}
	var (
		buf     strings.Builder
		escaped bool
	)
	for i, r := range v[1:] {
		switch {
		case escaped:
			switch r {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			default:
				buf.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return buf.String(), strings.TrimSpace(v[i+2:])
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String(), ""
}

func mustTerm(t rdf.Term, err error) rdf.Term {
	if err != nil {
		panic(err)
	}
	return t
}
