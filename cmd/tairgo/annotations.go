// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/kortschak/gogo"
	"github.com/kortschak/tairgo/internal/obo"
	"github.com/kortschak/tairgo/internal/ontology"
)

// Annotation predicates.
const (
	annotates  = "<local:annotates>"
	encodedBy  = "<local:encoded_by>"
	slimsTo    = "<local:slims_to>"
	uniprotNS  = "<uniprot:"
	tairNS     = "<tair:"
	goTermNS   = "<obo:GO_"
	termSuffix = ">"
)

// annotationGraph returns a graph holding the GO annotations of the
// records in the form:
//
//  <uniprot:Q0WV96> <local:encoded_by> <tair:AT1G01010> .
//  <obo:GO_0005634> <local:annotates> <uniprot:Q0WV96> .
//  <obo:GO_0005634> <local:slims_to> <obo:GO_0005634> .
//
// Slim mappings are included for each GO term with slims under the
// given policy.
func annotationGraph(records []*record, onto *ontology.Context, p ontology.Policy) *gogo.Graph {
	g := gogo.NewGraph()
	for _, r := range records {
		protein := rdf.Term{Value: uniprotNS + r.Accession + termSuffix}
		g.AddStatement(&rdf.Statement{
			Subject:   protein,
			Predicate: rdf.Term{Value: encodedBy},
			Object:    rdf.Term{Value: tairNS + r.Gene + termSuffix},
		})
		for _, id := range r.GOTerms {
			term := rdf.Term{Value: obo.IRI(id)}
			g.AddStatement(&rdf.Statement{
				Subject:   term,
				Predicate: rdf.Term{Value: annotates},
				Object:    protein,
			})
			slims, err := onto.Slims(id, p)
			if err != nil {
				continue
			}
			for _, s := range slims {
				g.AddStatement(&rdf.Statement{
					Subject:   term,
					Predicate: rdf.Term{Value: slimsTo},
					Object:    rdf.Term{Value: obo.IRI(s)},
				})
			}
		}
	}
	return g
}

// writeTriples writes the statements of g to w as N-Triples, sorted
// for stable output.
func writeTriples(w io.Writer, g *gogo.Graph) error {
	var lines []string
	it := g.AllStatements()
	for it.Next() {
		lines = append(lines, it.Statement().String())
	}
	sort.Strings(lines)
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeDebug writes g to w as a DOT graph with GO terms labeled by name.
func writeDebug(w io.Writer, g *gogo.Graph, onto *ontology.Context) error {
	b, err := dot.MarshalMulti(debugGraph{Graph: g, onto: onto}, "goslim", "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

type debugGraph struct {
	*gogo.Graph

	onto *ontology.Context
}

func (g debugGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attr{{Key: "rankdir", Value: "LR"}}, attr{}, attr{}
}

type attr []encoding.Attribute

func (a attr) Attributes() []encoding.Attribute {
	return a
}

func (g debugGraph) Nodes() graph.Nodes {
	return g.labeled(g.Graph.Nodes())
}

func (g debugGraph) From(uid int64) graph.Nodes {
	return g.labeled(g.Graph.From(uid))
}

func (g debugGraph) labeled(it graph.Nodes) graph.Nodes {
	var dotNodes []graph.Node
	for it.Next() {
		term := it.Node().(rdf.Term)
		dotNodes = append(dotNodes, dotNode{Term: term, label: g.label(term)})
	}
	if len(dotNodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(dotNodes)
}

func (g debugGraph) label(t rdf.Term) string {
	switch {
	case strings.HasPrefix(t.Value, goTermNS):
		id := obo.ID(t.Value)
		return fmt.Sprintf("%s\n%s", id, g.onto.Name(id))
	case strings.HasPrefix(t.Value, uniprotNS):
		return strip(t.Value, uniprotNS, termSuffix)
	case strings.HasPrefix(t.Value, tairNS):
		return strip(t.Value, tairNS, termSuffix)
	default:
		return t.Value
	}
}

func (g debugGraph) Lines(uid, vid int64) graph.Lines {
	it := g.Graph.Lines(uid, vid)
	lines := make([]graph.Line, 0, it.Len())
	for it.Next() {
		l := it.Line().(*rdf.Statement)
		lines = append(lines, dotLine{
			Statement: l,
			attrs: []encoding.Attribute{
				{Key: "label", Value: strip(l.Predicate.Value, "<local:", termSuffix)},
			},
		})
	}
	return iterator.NewOrderedLines(lines)
}

// dotNode implements graph.Node and dot.Node to allow the
// RDF term value to be given to the DOT encoder.
type dotNode struct {
	rdf.Term
	label string
}

func (n dotNode) DOTID() string { return n.Term.Value }
func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: n.label}}
}

// dotLine implements graph.Line and encoding.Attributer to
// allow the line's RDF term value to be given to the DOT
// encoder.
//
// Because the graph here is directed and we are not performing
// any line reversals, it is safe not to implement the
// ReversedLine method on dotLine; it will never be called.
type dotLine struct {
	*rdf.Statement
	attrs []encoding.Attribute
}

func (l dotLine) From() graph.Node                 { return l.Subject }
func (l dotLine) To() graph.Node                   { return l.Object }
func (l dotLine) Attributes() []encoding.Attribute { return l.attrs }

func strip(s, prefix, suffix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, prefix), suffix)
}
