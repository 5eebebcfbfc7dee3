// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/kortschak/tairgo/internal/ontology"
)

// ontologyContext returns the ontology context for the GO and GO slim
// snapshots described by cfg, downloading them to the scratch directory
// unless cfg.Offline is set.
func ontologyContext(ctx context.Context, cfg *config, client *http.Client) (*ontology.Context, error) {
	err := os.MkdirAll(cfg.Scratch, 0o755)
	if err != nil {
		return nil, err
	}
	fullPath := filepath.Join(cfg.Scratch, ontology.GOFile)
	slimPath := filepath.Join(cfg.Scratch, ontology.GOSlimGenericFile)
	if !cfg.Offline {
		for _, s := range []struct{ url, path string }{
			{url: cfg.GOURL, path: fullPath},
			{url: cfg.GOSlimURL, path: slimPath},
		} {
			log.Printf("downloading %s", s.url)
			n, err := ontology.Download(ctx, client, s.url, s.path)
			if err != nil {
				return nil, fmt.Errorf("failed to download ontology: %w", err)
			}
			log.Printf("wrote %s to %s", humanize.Bytes(uint64(n)), s.path)
		}
	}
	onto, err := ontology.LoadFiles(fullPath, slimPath, nil)
	if err != nil {
		return nil, err
	}
	full, slim := onto.DataVersions()
	log.Printf("GO data-version: %s", full)
	log.Printf("GO slim data-version: %s", slim)
	return onto, nil
}
