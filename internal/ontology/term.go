// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"
	"github.com/kortschak/tairgo/internal/obo"
)

var (
	// ErrUnknownTerm is returned when a GO identifier is
	// not present in the ontology.
	ErrUnknownTerm = errors.New("unknown GO term")

	// ErrObsolete is returned when a GO identifier refers
	// to an obsolete term.
	ErrObsolete = errors.New("obsolete GO term")
)

// LookupError is the error returned when a GO term cannot be resolved
// in the ontology.
type LookupError struct {
	ID  string
	Err error
}

func (e *LookupError) Error() string { return fmt.Sprintf("%s: %v", e.ID, e.Err) }
func (e *LookupError) Unwrap() error { return e.Err }

// Term is a GO term.
type Term struct {
	// ID is the primary identifier of the term.
	ID string

	// Name and Namespace are the name and
	// namespace of the term.
	Name      string
	Namespace string

	// Obsolete indicates the term is obsolete.
	Obsolete bool
}

// Term returns the GO term for id. Alternative identifiers are resolved to
// their primary term. Obsolete terms are returned with Obsolete set.
func (c *Context) Term(id string) (Term, bool) {
	t, ok := c.termFor(id)
	if !ok {
		return Term{}, false
	}
	return Term{
		ID:        obo.ID(t.Value),
		Name:      literalOf(t, obo.Label, c.full),
		Namespace: nameSpaceOf(t, c.full),
		Obsolete:  c.isDeprecated(t),
	}, true
}

// Name returns the name of the GO term id, or id if the term is not known.
func (c *Context) Name(id string) string {
	t, ok := c.termFor(id)
	if !ok {
		return id
	}
	name := literalOf(t, obo.Label, c.full)
	if name == "" {
		return id
	}
	return name
}

// Names returns the names of the GO terms in ids.
func (c *Context) Names(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.Name(id)
	}
	return names
}

// IsSlim returns whether id is a term of the slim ontology.
func (c *Context) IsSlim(id string) bool {
	t, ok := c.termFor(id)
	if !ok {
		return false
	}
	return c.isSlim(t)
}

// lookup returns the live full ontology term for id.
func (c *Context) lookup(id string) (rdf.Term, error) {
	t, ok := c.termFor(id)
	if !ok {
		return rdf.Term{}, &LookupError{ID: id, Err: ErrUnknownTerm}
	}
	if c.isDeprecated(t) {
		return rdf.Term{}, &LookupError{ID: id, Err: ErrObsolete}
	}
	return t, nil
}

// termFor returns the full ontology term for id, resolving alternative
// identifiers. Terms only referenced by other terms are not returned.
func (c *Context) termFor(id string) (rdf.Term, bool) {
	t, ok := c.full.TermFor(obo.IRI(id))
	if !ok || !isClass(t, c.full) {
		primary, isAlt := c.alt[id]
		if !isAlt {
			return rdf.Term{}, false
		}
		t, ok = c.full.TermFor(obo.IRI(primary))
		if !ok || !isClass(t, c.full) {
			return rdf.Term{}, false
		}
	}
	return t, true
}

func (c *Context) isSlim(t rdf.Term) bool {
	s, ok := c.slim.TermFor(t.Value)
	if !ok || !isClass(s, c.slim) {
		return false
	}
	return !c.isDeprecated(t)
}

func (c *Context) isDeprecated(t rdf.Term) bool {
	return literalOf(t, obo.Deprecated, c.full) == "true"
}

// isClass returns whether t is declared as a class in g.
func isClass(t rdf.Term, in *gogo.Graph) bool {
	types := in.Query(t).Out(func(s *rdf.Statement) bool {
		return s.Predicate.Value == obo.Type && s.Object.Value == obo.Class
	}).Result()
	return len(types) != 0
}

// nameSpaceOf returns the ontology namespace for the term t which is expected
// to be an <obo:GO_*> term.
func nameSpaceOf(t rdf.Term, in *gogo.Graph) string {
	ns := literalOf(t, obo.Namespace, in)
	if ns == "" {
		return "NA"
	}
	return ns
}

// literalOf returns the text of the first literal object of a statement
// with t as its subject and the given predicate. The empty string is
// returned if no such statement exists.
func literalOf(t rdf.Term, predicate string, in *gogo.Graph) string {
	objects := in.Query(t).Out(func(s *rdf.Statement) bool {
		return s.Predicate.Value == predicate
	}).Result()
	for _, o := range objects {
		text, _, kind, err := o.Parts()
		if err != nil {
			panic(fmt.Errorf("invalid term in graph: %w", err))
		}
		if kind == rdf.Literal {
			return text
		}
	}
	return ""
}
