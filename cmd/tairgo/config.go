// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kortschak/tairgo/internal/ontology"
	"github.com/kortschak/tairgo/internal/report"
	"github.com/kortschak/tairgo/internal/uniprot"
)

// config holds the tairgo settings. Settings are read from flags and
// optionally from a YAML file given by -config. Flags that are set
// explicitly take precedence over values in the file.
type config struct {
	// In is the gene identifier table and Column
	// is the name of its identifier column.
	In     string `yaml:"in"`
	Column string `yaml:"column"`

	// Out is the output directory.
	Out string `yaml:"out"`

	// Scratch is the directory that ontology
	// snapshots are stored in. Offline uses
	// existing snapshots without downloading.
	Scratch   string `yaml:"scratch"`
	GOURL     string `yaml:"go_url"`
	GOSlimURL string `yaml:"goslim_url"`
	Offline   bool   `yaml:"offline"`

	// UniProt is the UniProt REST API root.
	UniProt string        `yaml:"uniprot"`
	Poll    time.Duration `yaml:"poll"`
	Timeout time.Duration `yaml:"timeout"`

	// Ancestors and Retain specify the slim
	// mapping policy for each GO term, and
	// NamespaceRetain specifies which slims
	// of each term are counted in namespace
	// summaries.
	Ancestors       ontology.Ancestors `yaml:"ancestors"`
	Retain          ontology.Retention `yaml:"retain"`
	NamespaceRetain ontology.Retention `yaml:"namespace_retain"`

	// Top is the number of slim terms shown
	// in each summary.
	Top int `yaml:"top"`

	Triples bool `yaml:"triples"`
	Debug   bool `yaml:"debug"`

	path string
	help bool
}

func defaultConfig() *config {
	return &config{
		Column:          "tair_id",
		Out:             "goslim",
		Scratch:         os.TempDir(),
		GOURL:           ontology.GOURL,
		GOSlimURL:       ontology.GOSlimGenericURL,
		UniProt:         uniprot.DefaultBaseURL,
		Poll:            uniprot.DefaultPollInterval,
		Timeout:         30 * time.Minute,
		Ancestors:       ontology.AllAncestors,
		Retain:          ontology.RetainAll,
		NamespaceRetain: ontology.RetainLast,
		Top:             report.DefaultTop,
	}
}

// loadConfig returns the configuration described by the command line
// arguments in args, parsed with fs.
func loadConfig(fs *flag.FlagSet, args []string) (*config, error) {
	cfg := defaultConfig()
	fs.StringVar(&cfg.path, "config", "", "specify a YAML configuration file")
	fs.StringVar(&cfg.In, "in", cfg.In, "specify the gene identifier table (.tsv/.tsv.gz - required)")
	fs.StringVar(&cfg.Column, "column", cfg.Column, "specify the gene identifier column name")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "specify the output directory")
	fs.StringVar(&cfg.Scratch, "scratch", cfg.Scratch, "specify the ontology snapshot directory")
	fs.StringVar(&cfg.GOURL, "go", cfg.GOURL, "specify the GO ontology URL")
	fs.StringVar(&cfg.GOSlimURL, "goslim", cfg.GOSlimURL, "specify the GO slim ontology URL")
	fs.BoolVar(&cfg.Offline, "offline", cfg.Offline, "use existing ontology snapshots")
	fs.StringVar(&cfg.UniProt, "uniprot", cfg.UniProt, "specify the UniProt REST API root")
	fs.DurationVar(&cfg.Poll, "poll", cfg.Poll, "specify the ID mapping status poll interval")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "specify the ID mapping timeout (0 for none)")
	fs.Var(&cfg.Ancestors, "ancestors", "specify the slim ancestors to map to (all or direct)")
	fs.Var(&cfg.Retain, "retain", "specify the slims retained per GO term (all or last)")
	fs.Var(&cfg.NamespaceRetain, "namespace-retain", "specify the slims per GO term counted in namespace summaries (all or last)")
	fs.IntVar(&cfg.Top, "top", cfg.Top, "specify the number of slims in each summary")
	fs.BoolVar(&cfg.Triples, "triples", cfg.Triples, "write GO annotations as N-Triples")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a DOT graph of GO slim mappings")
	fs.BoolVar(&cfg.help, "help", false, "print help text")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if cfg.path == "" {
		return cfg.validated()
	}

	// Collect explicitly set flags so they can be
	// reapplied over the configuration file.
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	b, err := os.ReadFile(cfg.path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", cfg.path, err)
	}
	for name, value := range set {
		err = fs.Set(name, value)
		if err != nil {
			return nil, err
		}
	}
	return cfg.validated()
}

// validated returns c if its settings are usable.
func (c *config) validated() (*config, error) {
	if c.Top < 1 {
		return nil, fmt.Errorf("invalid summary size %d: must be at least 1", c.Top)
	}
	return c, nil
}

func (c *config) policy() ontology.Policy {
	return ontology.Policy{Ancestors: c.Ancestors, Retain: c.Retain}
}
