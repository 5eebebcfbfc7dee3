// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uniprot provides a client for the UniProt REST API ID mapping and
// UniProtKB entry services.
//
// See https://www.uniprot.org/help/api for details of the API.
package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DefaultBaseURL is the root of the UniProt REST API.
const DefaultBaseURL = "https://rest.uniprot.org"

// Client is a UniProt REST API client.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a new Client using the API rooted at base. If base is
// empty, DefaultBaseURL is used. If client is nil, http.DefaultClient is
// used.
func NewClient(base string, client *http.Client) (*Client, error) {
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{base: u, http: client}, nil
}

// StatusError is returned when the API responds with an unexpected
// HTTP status.
type StatusError struct {
	URL    string
	Status string
	Code   int

	// Messages holds any error messages
	// returned by the service.
	Messages []string
}

func (e *StatusError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("uniprot: %s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("uniprot: %s: %s: %s", e.URL, e.Status, strings.Join(e.Messages, "; "))
}

// endpoint returns the URL for the API path elements in p.
func (c *Client) endpoint(p ...string) *url.URL {
	u := *c.base
	u.Path = path.Join(append([]string{c.base.Path}, p...)...)
	return &u
}

// do performs the request and returns the response if it has the
// wanted status code. Otherwise a *StatusError is returned.
func (c *Client) do(client *http.Client, req *http.Request, want ...int) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	for _, code := range want {
		if resp.StatusCode == code {
			return resp, nil
		}
	}
	defer resp.Body.Close()
	return nil, statusError(req.URL.String(), resp)
}

func statusError(u string, resp *http.Response) error {
	serr := &StatusError{URL: u, Status: resp.Status, Code: resp.StatusCode}
	var body struct {
		Messages []string `json:"messages"`
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(b, &body) == nil {
		serr.Messages = body.Messages
	}
	return serr
}

func (c *Client) getJSON(ctx context.Context, u *url.URL, dst interface{}) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.do(c.http, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return nil, fmt.Errorf("uniprot: failed to decode %s: %w", u, err)
	}
	return resp.Header, nil
}
