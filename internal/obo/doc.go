// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obo implements decoding the OBO flat file encoding of a Gene
// Ontology dataset into RDF statements. It is not a complete OBO 1.4
// parser implementation; Term and Typedef stanzas are mapped to statements
// and Instance stanzas are ignored.
//
// Statements use local IRI namespaces in the form used for the OWL
// encoding of GO:
//
//  <obo:GO_0005739> <rdfs:subClassOf> <obo:GO_0043231> .
//  <obo:GO_0005739> <rdfs:label> "mitochondrion" .
//  <obo:GO_0005739> <oboInOwl:hasOBONamespace> "cellular_component" .
package obo
