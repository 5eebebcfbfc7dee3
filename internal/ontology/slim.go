// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/kortschak/gogo"
	"github.com/kortschak/tairgo/internal/obo"
)

// Ancestors specifies which slim ancestors of a term are reported.
type Ancestors int

const (
	// AllAncestors reports every slim term that is an
	// ancestor of, or is, the term.
	AllAncestors Ancestors = iota

	// DirectAncestors reports only the slim ancestors
	// that are not covered by a closer slim term on
	// any path to the root.
	DirectAncestors
)

func (a Ancestors) String() string {
	switch a {
	case AllAncestors:
		return "all"
	case DirectAncestors:
		return "direct"
	default:
		return fmt.Sprintf("Ancestors(%d)", int(a))
	}
}

// Set implements the flag.Value interface.
func (a *Ancestors) Set(s string) error {
	switch strings.ToLower(s) {
	case "all":
		*a = AllAncestors
	case "direct":
		*a = DirectAncestors
	default:
		return fmt.Errorf("invalid ancestor policy %q: must be all or direct", s)
	}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (a *Ancestors) UnmarshalText(text []byte) error { return a.Set(string(text)) }

// Retention specifies which of the slim terms of a single GO term are kept.
type Retention int

const (
	// RetainAll keeps all slim terms.
	RetainAll Retention = iota

	// RetainLast keeps only the last slim term that
	// is not an ontology root, the most distant such
	// slim from the GO term. A root is kept only when
	// it is the sole slim term.
	RetainLast
)

func (r Retention) String() string {
	switch r {
	case RetainAll:
		return "all"
	case RetainLast:
		return "last"
	default:
		return fmt.Sprintf("Retention(%d)", int(r))
	}
}

// Set implements the flag.Value interface.
func (r *Retention) Set(s string) error {
	switch strings.ToLower(s) {
	case "all":
		*r = RetainAll
	case "last":
		*r = RetainLast
	default:
		return fmt.Errorf("invalid retention policy %q: must be all or last", s)
	}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (r *Retention) UnmarshalText(text []byte) error { return r.Set(string(text)) }

// Policy is the slim mapping policy.
type Policy struct {
	Ancestors Ancestors
	Retain    Retention
}

// Slims returns the slim terms that the GO term id maps to under the
// given policy. The mapping follows the is_a paths from the term to the
// roots of the full ontology; slim terms on those paths are ancestors,
// and an ancestor is covered when another slim term lies below it on
// some path. Slim terms are ordered by distance from the term, nearest
// first, with ties ordered by identifier.
//
// A *LookupError is returned if id cannot be resolved to a live term.
// A term without slim ancestors returns no slims and a nil error.
func (c *Context) Slims(id string, p Policy) ([]string, error) {
	t, err := c.lookup(id)
	if err != nil {
		return nil, err
	}

	var slims []ancestor
	for _, a := range c.ancestorsOf(t) {
		if c.isSlim(a.term) {
			slims = append(slims, a)
		}
	}
	if len(slims) == 0 {
		return nil, nil
	}

	if p.Ancestors == DirectAncestors {
		covered := make(map[int64]bool)
		for _, s := range slims {
			for _, a := range c.ancestorsOf(s.term) {
				if a.depth != 0 {
					covered[a.term.UID] = true
				}
			}
		}
		direct := slims[:0]
		for _, s := range slims {
			if !covered[s.term.UID] {
				direct = append(direct, s)
			}
		}
		slims = direct
	}

	ids := make([]string, len(slims))
	for i, s := range slims {
		ids[i] = obo.ID(s.term.Value)
	}
	if p.Retain == RetainLast {
		ids = c.last(ids)
	}
	return ids, nil
}

// last returns a single element slice holding the last of the slim
// terms in ids that is not an ontology root, or the last slim term if
// all are roots.
func (c *Context) last(ids []string) []string {
	for i := len(ids) - 1; i >= 0; i-- {
		t, ok := c.termFor(ids[i])
		if ok && !c.isRoot(t) {
			return ids[i : i+1]
		}
	}
	return ids[len(ids)-1:]
}

// isRoot returns whether t has no is_a parent in the full ontology.
func (c *Context) isRoot(t rdf.Term) bool {
	parents := c.full.Query(t).Out(func(s *rdf.Statement) bool {
		return s.Predicate.Value == obo.SubClassOf &&
			strings.HasPrefix(s.Object.Value, "<obo:GO_")
	}).Result()
	return len(parents) == 0
}

// ancestor is a GO term and its distance from
// a query term.
type ancestor struct {
	term  rdf.Term
	depth int
}

// ancestorsOf returns the GO terms reachable from t by is_a edges,
// including t at depth zero, sorted by depth and then identifier.
func (c *Context) ancestorsOf(t rdf.Term) []ancestor {
	var ancestors []ancestor
	bf := traverse.BreadthFirst{Traverse: isSubClassOfGO}
	bf.Walk(c.full, t, func(n graph.Node, d int) bool {
		ancestors = append(ancestors, ancestor{term: n.(rdf.Term), depth: d})
		return false
	})
	sort.Slice(ancestors, func(i, j int) bool {
		a, b := ancestors[i], ancestors[j]
		if a.depth != b.depth {
			return a.depth < b.depth
		}
		return a.term.Value < b.term.Value
	})
	return ancestors
}

// isSubClassOfGO is a traverse edge filter. It accepts statements where
//
//  any -- <rdfs:subClassOf> -> <obo:GO_*
//
// for out queries from a term.
func isSubClassOfGO(e graph.Edge) bool {
	return gogo.ConnectedByAny(e, func(s *rdf.Statement) bool {
		return s.Predicate.Value == obo.SubClassOf &&
			strings.HasPrefix(s.Object.Value, "<obo:GO_")
	})
}

// Reduce returns the slim terms and slim term names for each of the GO terms
// in terms under the given policy. Terms that cannot be resolved are logged
// and skipped, and terms without slims are omitted, so the returned lists
// need not be parallel to terms.
func (c *Context) Reduce(terms []string, p Policy) (slims, names [][]string) {
	for _, id := range terms {
		s, err := c.Slims(id, p)
		if err != nil {
			c.log.Printf("could not get goslim from %s: %v", id, err)
			continue
		}
		if len(s) == 0 {
			continue
		}
		slims = append(slims, s)
		names = append(names, c.Names(s))
	}
	return slims, names
}

// SpecificSlims returns the distinct slim terms of the given namespace held
// in the lists of slims, in first-seen order, and their names. When retain
// is RetainLast, only the last slim term of each list that is not an
// ontology root is considered.
func (c *Context) SpecificSlims(lists [][]string, namespace string, retain Retention) (slims, names []string) {
	seen := make(map[string]bool)
	for _, l := range lists {
		if len(l) == 0 {
			continue
		}
		if retain == RetainLast {
			l = c.last(l)
		}
		for _, id := range l {
			if seen[id] {
				continue
			}
			t, ok := c.Term(id)
			if !ok || t.Namespace != namespace {
				continue
			}
			seen[id] = true
			slims = append(slims, id)
			names = append(names, t.Name)
		}
	}
	return slims, names
}

// CorrespondsTo returns whether the GO term id maps to a slim term with
// the given name. Terms that cannot be resolved do not correspond to any
// slim term.
func (c *Context) CorrespondsTo(id, slimName string, p Policy) bool {
	slims, err := c.Slims(id, p)
	if err != nil {
		return false
	}
	for _, s := range slims {
		if c.Name(s) == slimName {
			return true
		}
	}
	return false
}

// KeepCorresponding returns the GO terms in terms that map to a slim term
// with the given name, preserving order.
func (c *Context) KeepCorresponding(terms []string, slimName string, p Policy) []string {
	var kept []string
	for _, id := range terms {
		if c.CorrespondsTo(id, slimName, p) {
			kept = append(kept, id)
		}
	}
	return kept
}
