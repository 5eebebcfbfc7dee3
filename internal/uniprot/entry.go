// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniprot

import (
	"context"
	"encoding/json"
)

// GO is the cross-reference database name for Gene Ontology annotations.
const GO = "GO"

// Entry is a UniProtKB entry. Only the fields used for annotation are
// decoded.
type Entry struct {
	PrimaryAccession string `json:"primaryAccession"`

	// CrossReferences holds the raw
	// uniProtKBCrossReferences value.
	CrossReferences json.RawMessage `json:"uniProtKBCrossReferences"`
}

// CrossReference is a link from a UniProtKB entry to an external database.
type CrossReference struct {
	Database   string     `json:"database"`
	ID         string     `json:"id"`
	Properties []Property `json:"properties,omitempty"`
}

// Property is a cross-reference property.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry returns the UniProtKB entry for the accession.
func (c *Client) Entry(ctx context.Context, accession string) (*Entry, error) {
	var e Entry
	_, err := c.getJSON(ctx, c.endpoint("uniprotkb", accession+".json"), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GOTerms returns the GO term identifiers cross-referenced by the entry
// for the accession, in entry order.
func (c *Client) GOTerms(ctx context.Context, accession string) ([]string, error) {
	e, err := c.Entry(ctx, accession)
	if err != nil {
		return nil, err
	}
	return e.GOTerms(), nil
}

// GOTerms returns the GO term identifiers cross-referenced by the entry.
func (e *Entry) GOTerms() []string {
	var ids []string
	for _, x := range SpecificCrossReferences(e.CrossReferences, GO) {
		if x.ID != "" {
			ids = append(ids, x.ID)
		}
	}
	return ids
}

// SpecificCrossReferences returns the cross-references in raw that refer to
// the named database, preserving order. If raw is not a JSON array, no
// cross-references are returned. Array elements that are not
// cross-reference objects are ignored.
func SpecificCrossReferences(raw json.RawMessage, database string) []CrossReference {
	var elems []json.RawMessage
	err := json.Unmarshal(raw, &elems)
	if err != nil {
		return nil
	}
	var refs []CrossReference
	for _, e := range elems {
		var x CrossReference
		err := json.Unmarshal(e, &x)
		if err != nil {
			continue
		}
		if x.Database == database {
			refs = append(refs, x)
		}
	}
	return refs
}
