// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tairgo maps TAIR gene identifiers to UniProtKB accessions, retrieves the
// GO annotations of the accessions and reduces them to the generic GO slim
// for summary plotting.
//
// The input table is a tab-delimited file with a header row naming its
// columns. Gene identifiers are read from the column named by -column.
//
// The GO and generic GO slim ontologies are downloaded in OBO format to
// the scratch directory from http://purl.obolibrary.org/obo/go.obo and
// https://current.geneontology.org/ontology/subsets/goslim_generic.obo
// unless -offline is set.
//
// Results are written to the output directory:
//
//  records.tsv             per-accession GO terms, slim terms and slim names
//  <namespace>.tsv         top slim frequencies for each GO namespace
//  namespaces.png          bar charts of the namespace frequencies
//  goslim.tsv, goslim.png  top slim frequencies over all namespaces
//  annotations.nt          GO annotations as N-Triples (with -triples)
//  debug.dot               GO annotation and slim graph (with -debug)
//
// Settings may be given in a YAML file with -config using the keys in, column,
// out, scratch, go_url, goslim_url, offline, uniprot, poll, timeout,
// ancestors, retain, namespace_retain, top, triples and debug. Flags given
// on the command line override the file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kortschak/tairgo/internal/report"
	"github.com/kortschak/tairgo/internal/uniprot"
)

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s maps TAIR gene identifiers to UniProtKB accessions, retrieves the
GO annotations of the accessions and reduces them to the generic GO slim
for summary plotting.

The input table is a tab-delimited file with a header row naming its
columns. Gene identifiers are read from the column named by -column.
Files with a .gz suffix are decompressed.

The GO and generic GO slim ontologies are downloaded in OBO format to
the scratch directory unless -offline is set.

Slim mapping follows the is_a paths from each GO term to the ontology
roots. With -ancestors=all every slim term on those paths is reported,
and with -ancestors=direct only the slims not covered by a closer slim.
With -retain=last only the most distant slim of each term that is not a
namespace root is kept. Namespace summaries count only that slim of each
term unless -namespace-retain=all.

Results are written to the output directory as TSV tables and PNG bar
charts.

Copyright ©2026 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if cfg.In == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = os.MkdirAll(cfg.Out, 0o755)
	if err != nil {
		log.Fatal(err)
	}

	client := &http.Client{}

	log.Println("[loading ontologies]")
	onto, err := ontologyContext(ctx, cfg, client)
	if err != nil {
		log.Fatalf("failed to load ontology: %v", err)
	}

	log.Println("[loading gene identifiers]")
	genes, err := geneIDs(cfg.In, cfg.Column)
	if err != nil {
		log.Fatalf("failed to load gene identifiers: %v", err)
	}
	log.Printf("%d gene identifiers", len(genes))

	log.Println("[mapping gene identifiers to UniProtKB]")
	up, err := uniprot.NewClient(cfg.UniProt, client)
	if err != nil {
		log.Fatalf("invalid UniProt API root: %v", err)
	}
	mapCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		mapCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	mapped, err := up.MapIDs(mapCtx, uniprot.GeneName, uniprot.UniProtKB, genes, cfg.Poll)
	if err != nil {
		log.Fatalf("failed to map gene identifiers: %v", err)
	}
	for _, id := range mapped.Failed {
		log.Printf("no UniProtKB accession for %s", id)
	}

	log.Println("[fetching GO terms]")
	records, err := fetchRecords(ctx, up, mapped.Mappings)
	if err != nil {
		log.Fatalf("failed to fetch GO terms: %v", err)
	}

	log.Println("[mapping GO terms to GO slims]")
	for _, r := range records {
		r.SlimTerms, r.SlimNames = onto.Reduce(r.GOTerms, cfg.policy())
	}
	err = writeRecords(filepath.Join(cfg.Out, "records.tsv"), records)
	if err != nil {
		log.Fatalf("failed to write records: %v", err)
	}

	log.Println("[summarising GO slims]")
	err = summariseNamespaces(cfg.Out, records, onto, cfg.NamespaceRetain, cfg.Top)
	if err != nil {
		if !errors.Is(err, report.ErrEmpty) {
			log.Fatalf("failed to summarise namespaces: %v", err)
		}
		log.Println("no GO slim terms to summarise")
	}
	err = summariseAll(cfg.Out, records, cfg.Top)
	if err != nil && !errors.Is(err, report.ErrEmpty) {
		log.Fatalf("failed to summarise GO slims: %v", err)
	}

	if !cfg.Triples && !cfg.Debug {
		return
	}
	log.Println("[writing annotation graph]")
	g := annotationGraph(records, onto, cfg.policy())
	for _, out := range []struct {
		enabled bool
		name    string
		write   func(*os.File) error
	}{
		{
			enabled: cfg.Triples,
			name:    "annotations.nt",
			write:   func(f *os.File) error { return writeTriples(f, g) },
		},
		{
			enabled: cfg.Debug,
			name:    "debug.dot",
			write:   func(f *os.File) error { return writeDebug(f, g, onto) },
		},
	} {
		if !out.enabled {
			continue
		}
		f, err := os.Create(filepath.Join(cfg.Out, out.name))
		if err != nil {
			log.Fatal(err)
		}
		err = out.write(f)
		if err != nil {
			log.Fatalf("failed to write %s: %v", out.name, err)
		}
		err = f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}
}
