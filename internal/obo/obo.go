// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// maxLine is the longest line accepted by the Decoder. Definitions in
// go.obo are occasionally several kilobytes long.
const maxLine = 1 << 20

// Decoder is a Gene Ontology OBO decoder. rdf.Statements returned by
// calls to the Unmarshal method have their Terms' UID fields set so that
// unique terms will have unique IDs and so can be used directly in a
// graph.Multi. Term UIDs are based from 1 to allow RDF-aware client
// graphs to assign ID if no ID has been assigned.
type Decoder struct {
	lines *bufio.Scanner
	line  int

	header map[string][]string

	// next is the kind of the stanza whose
	// header line has been consumed.
	next string
	done bool

	strings store
	ids     map[string]int64

	curr int
	buf  []*rdf.Statement
	seen map[[3]int64]bool
}

// NewDecoder returns a new Decoder that takes input from r. The OBO
// header is read before NewDecoder returns.
func NewDecoder(r io.Reader) (*Decoder, error) {
	dec := &Decoder{
		strings: make(store),
		ids:     make(map[string]int64),
		seen:    make(map[[3]int64]bool),
	}
	err := dec.reset(r)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// Reset resets the decoder to use the provided io.Reader, retaining
// the existing Term ID mapping. The header is obtained from the stream
// in r.
func (dec *Decoder) Reset(r io.Reader) error {
	for i := range dec.buf[dec.curr:] {
		dec.buf[dec.curr+i] = nil
	}
	dec.curr = 0
	dec.buf = dec.buf[:0]
	dec.strings = make(store)
	return dec.reset(r)
}

func (dec *Decoder) reset(r io.Reader) error {
	dec.lines = bufio.NewScanner(r)
	dec.lines.Buffer(make([]byte, 0, 64<<10), maxLine)
	dec.line = 0
	dec.next = ""
	dec.done = false
	dec.header = make(map[string][]string)

	kind, tags, err := dec.readStanza()
	if err != nil && err != io.EOF {
		return err
	}
	if kind != "" {
		return fmt.Errorf("obo: unexpected stanza before header: %q", kind)
	}
	for _, t := range tags {
		dec.header[t.key] = append(dec.header[t.key], t.value)
	}
	return nil
}

// Header returns the values of the OBO header tags, keyed by tag name.
// The value returned by Header is valid after the Decoder is returned
// by NewDecoder or a successful Reset.
func (dec *Decoder) Header() map[string][]string {
	return dec.header
}

// Unmarshal returns the next unique statement from the input stream.
func (dec *Decoder) Unmarshal() (*rdf.Statement, error) {
	for {
		for len(dec.buf[dec.curr:]) == 0 {
			err := dec.fillBuffer()
			if err != nil {
				return nil, err
			}
		}
		s := dec.buf[dec.curr]
		dec.buf[dec.curr] = nil
		dec.curr++
		if len(dec.buf[dec.curr:]) == 0 {
			dec.curr = 0
			dec.buf = dec.buf[:0]
		}
		s.Subject.Value = dec.strings.intern(s.Subject.Value)
		s.Predicate.Value = dec.strings.intern(s.Predicate.Value)
		s.Object.Value = dec.strings.intern(s.Object.Value)
		s.Subject.UID = dec.idFor(s.Subject.Value)
		s.Object.UID = dec.idFor(s.Object.Value)
		s.Predicate.UID = dec.idFor(s.Predicate.Value)
		triple := [3]int64{s.Subject.UID, s.Predicate.UID, s.Object.UID}
		if !dec.seen[triple] {
			dec.seen[triple] = true
			return s, nil
		}
	}
}

func (dec *Decoder) idFor(s string) int64 {
	id, ok := dec.ids[s]
	if ok {
		return id
	}
	id = int64(len(dec.ids)) + 1
	dec.ids[s] = id
	return id
}

// fillBuffer reads stanzas until one yields statements or the
// input is exhausted.
func (dec *Decoder) fillBuffer() (err error) {
	defer func() {
		r := recover()
		switch r := r.(type) {
		case nil:
			return
		case error:
			err = fmt.Errorf("obo: line %d: %w", dec.line, r)
		default:
			panic(r)
		}
	}()
	for len(dec.buf) == 0 {
		kind, tags, err := dec.readStanza()
		if err != nil {
			if err == io.EOF {
				dec.strings = nil
			}
			return err
		}
		switch kind {
		case "Term":
			dec.buf = term(tags).collect(dec.buf)
		case "Typedef":
			dec.buf = typedef(tags).collect(dec.buf)
		default:
			// Instance and unknown stanzas are skipped.
		}
	}
	return nil
}

type tag struct {
	key   string
	value string
}

// readStanza returns the tag-value pairs of the stanza following the
// last consumed stanza header. The kind of the header stanza is empty.
func (dec *Decoder) readStanza() (kind string, tags []tag, err error) {
	if dec.done {
		return "", nil, io.EOF
	}
	kind = dec.next
	for dec.lines.Scan() {
		dec.line++
		line := strings.TrimSpace(dec.lines.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			dec.next = line[1 : len(line)-1]
			return kind, tags, nil
		}
		idx := strings.Index(line, ":")
		if idx < 1 {
			return kind, tags, fmt.Errorf("obo: line %d: malformed tag-value pair: %q", dec.line, line)
		}
		tags = append(tags, tag{
			key:   strings.TrimSpace(line[:idx]),
			value: strings.TrimSpace(line[idx+1:]),
		})
	}
	err = dec.lines.Err()
	if err != nil {
		return kind, tags, err
	}
	dec.done = true
	return kind, tags, nil
}

// store is a string internment implementation.
type store map[string]string

// intern returns an interned version of the parameter.
func (is store) intern(s string) string {
	if s == "" {
		return ""
	}
	t, ok := is[s]
	if ok {
		return t
	}
	is[s] = s
	return s
}
