// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ontology

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Download retrieves the ontology snapshot at url and writes it to path,
// returning the number of bytes written. The file at path is only replaced
// when the complete snapshot has been received.
func Download(ctx context.Context, client *http.Client, url, path string) (n int64, err error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	n, err = io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	err = f.Close()
	if err != nil {
		return n, err
	}
	return n, os.Rename(f.Name(), path)
}
