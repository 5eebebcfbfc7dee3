// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ontology provides an immutable Gene Ontology context holding the
// full GO DAG and the GO slim DAG, with term lookup and slim reduction.
package ontology

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"
	"github.com/kortschak/tairgo/internal/obo"
)

// Snapshot locations and the file names they are stored under.
const (
	GOURL             = "http://purl.obolibrary.org/obo/go.obo"
	GOSlimGenericURL  = "https://current.geneontology.org/ontology/subsets/goslim_generic.obo"
	GOFile            = "go.obo"
	GOSlimGenericFile = "goslim_generic.obo"
)

// Namespaces is the set of GO namespaces in reporting order.
var Namespaces = []string{
	"molecular_function",
	"biological_process",
	"cellular_component",
}

// Context holds the full and slim ontology graphs. A Context is not
// mutated after construction and is safe for concurrent use.
type Context struct {
	full *gogo.Graph
	slim *gogo.Graph

	// alt maps alternative GO identifiers
	// to their primary identifier.
	alt map[string]string

	fullVersion string
	slimVersion string

	log *log.Logger
}

// Load returns a Context for the OBO encoded full and slim ontologies read
// from full and slim. Skipped term diagnostics are written to logger, or
// to the standard logger if logger is nil.
func Load(full, slim io.Reader, logger *log.Logger) (*Context, error) {
	if logger == nil {
		logger = log.Default()
	}
	alt := make(map[string]string)
	g, fullVersion, err := graphFrom(full, func(s *rdf.Statement) {
		if s.Predicate.Value != obo.AlternativeID {
			return
		}
		text, _, kind, err := s.Object.Parts()
		if err == nil && kind == rdf.Literal {
			alt[text] = obo.ID(s.Subject.Value)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ontology: %w", err)
	}
	s, slimVersion, err := graphFrom(slim, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load slim ontology: %w", err)
	}
	return &Context{
		full:        g,
		slim:        s,
		alt:         alt,
		fullVersion: fullVersion,
		slimVersion: slimVersion,
		log:         logger,
	}, nil
}

// LoadFiles returns a Context for the OBO files at the provided paths.
// Files with a .gz suffix are decompressed.
func LoadFiles(fullPath, slimPath string, logger *log.Logger) (*Context, error) {
	full, err := open(fullPath)
	if err != nil {
		return nil, err
	}
	defer full.Close()
	slim, err := open(slimPath)
	if err != nil {
		return nil, err
	}
	defer slim.Close()
	return Load(full, slim, logger)
}

// DataVersions returns the data-version header values of the full and
// slim ontologies.
func (c *Context) DataVersions() (full, slim string) {
	return c.fullVersion, c.slimVersion
}

// graphFrom returns the graph for the ontology stored in the OBO stream r
// and its data-version. If fn is not nil it is called with each statement
// before it is added to the graph.
func graphFrom(r io.Reader, fn func(*rdf.Statement)) (*gogo.Graph, string, error) {
	dec, err := obo.NewDecoder(r)
	if err != nil {
		return nil, "", err
	}
	var version string
	if v := dec.Header()["data-version"]; len(v) != 0 {
		version = v[0]
	}
	g := gogo.NewGraph()
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err != io.EOF {
				return nil, "", err
			}
			break
		}
		if fn != nil {
			fn(s)
		}
		g.AddStatement(s)
	}
	return g, version, nil
}

type file struct {
	io.Reader
	closers []io.Closer
}

func (f *file) Close() error {
	var err error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if cerr := f.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// open returns a reader for the file at path, decompressing it if the
// path has a .gz suffix.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	r, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &file{Reader: r, closers: []io.Closer{f, r}}, nil
}
