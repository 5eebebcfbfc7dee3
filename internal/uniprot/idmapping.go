// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Database names for ID mapping.
const (
	GeneName  = "Gene_Name"
	UniProtKB = "UniProtKB"
)

// DefaultPollInterval is the default time between job status checks.
const DefaultPollInterval = time.Second

// resultsPageSize is the number of results requested per page.
const resultsPageSize = 500

// Status is an ID mapping job status.
type Status string

// Job statuses reported by the ID mapping service.
const (
	New      Status = "NEW"
	Running  Status = "RUNNING"
	Finished Status = "FINISHED"
	Failed   Status = "FAILED"
	Error    Status = "ERROR"
)

// ErrJobFailed is returned when an ID mapping job ends without finishing.
var ErrJobFailed = errors.New("uniprot: id mapping job failed")

// Job is a submitted ID mapping job.
type Job struct {
	ID string

	client *Client
}

// Mapping is a single ID mapping result.
type Mapping struct {
	From string
	To   string
}

// Results holds the complete results of an ID mapping job.
type Results struct {
	Mappings []Mapping

	// Failed holds the identifiers
	// that could not be mapped.
	Failed []string
}

// Submit submits an ID mapping job for ids from the from database to the
// to database.
func (c *Client) Submit(ctx context.Context, from, to string, ids []string) (*Job, error) {
	if len(ids) == 0 {
		return nil, errors.New("uniprot: no identifiers to map")
	}
	form := url.Values{
		"from": {from},
		"to":   {to},
		"ids":  {strings.Join(ids, ",")},
	}
	u := c.endpoint("idmapping", "run")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err := c.do(c.http, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var job struct {
		JobID string `json:"jobId"`
	}
	err = json.NewDecoder(resp.Body).Decode(&job)
	if err != nil {
		return nil, fmt.Errorf("uniprot: failed to decode job submission: %w", err)
	}
	if job.JobID == "" {
		return nil, errors.New("uniprot: no job identifier returned")
	}
	return &Job{ID: job.JobID, client: c}, nil
}

// Status returns the current status of the job. A job whose status
// request is redirected to its results is finished.
func (j *Job) Status(ctx context.Context) (Status, error) {
	u := j.client.endpoint("idmapping", "status", j.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	// Do not follow the redirect to the results.
	noRedirect := *j.client.http
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := j.client.do(&noRedirect, req, http.StatusOK, http.StatusSeeOther, http.StatusFound)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Finished, nil
	}

	var status struct {
		JobStatus Status            `json:"jobStatus"`
		Results   []json.RawMessage `json:"results"`
		FailedIDs []string          `json:"failedIds"`
		Messages  []string          `json:"messages"`
	}
	err = json.NewDecoder(resp.Body).Decode(&status)
	if err != nil {
		return "", fmt.Errorf("uniprot: failed to decode job status: %w", err)
	}
	switch {
	case status.JobStatus != "":
		return status.JobStatus, nil
	case status.Results != nil, status.FailedIDs != nil:
		return Finished, nil
	case len(status.Messages) != 0:
		return Error, fmt.Errorf("%w: %s", ErrJobFailed, strings.Join(status.Messages, "; "))
	default:
		return "", errors.New("uniprot: no job status returned")
	}
}

// Wait polls the job status every interval until the job is finished, the
// job fails or ctx is done. If interval is not positive, DefaultPollInterval
// is used.
func (j *Job) Wait(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := j.Status(ctx)
		if err != nil {
			return err
		}
		switch status {
		case Finished:
			return nil
		case Failed, Error:
			return fmt.Errorf("%w: job %s status %s", ErrJobFailed, j.ID, status)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Results returns the complete results of a finished job, following
// result pagination.
func (j *Job) Results(ctx context.Context) (*Results, error) {
	u := j.client.endpoint("idmapping", "results", j.ID)
	q := u.Query()
	q.Set("format", "json")
	q.Set("size", fmt.Sprint(resultsPageSize))
	u.RawQuery = q.Encode()

	var res Results
	for u != nil {
		var page struct {
			Results []struct {
				From string          `json:"from"`
				To   json.RawMessage `json:"to"`
			} `json:"results"`
			FailedIDs []string `json:"failedIds"`
		}
		header, err := j.client.getJSON(ctx, u, &page)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Results {
			to, err := accessionOf(r.To)
			if err != nil {
				return nil, fmt.Errorf("uniprot: invalid mapping for %s: %w", r.From, err)
			}
			res.Mappings = append(res.Mappings, Mapping{From: r.From, To: to})
		}
		res.Failed = append(res.Failed, page.FailedIDs...)

		u, err = nextPage(header)
		if err != nil {
			return nil, err
		}
	}
	return &res, nil
}

// accessionOf returns the accession of a mapping target which is either
// an accession string or a UniProtKB entry.
func accessionOf(to json.RawMessage) (string, error) {
	var acc string
	err := json.Unmarshal(to, &acc)
	if err == nil {
		return acc, nil
	}
	var entry struct {
		PrimaryAccession string `json:"primaryAccession"`
	}
	err = json.Unmarshal(to, &entry)
	if err != nil {
		return "", err
	}
	if entry.PrimaryAccession == "" {
		return "", errors.New("no primary accession")
	}
	return entry.PrimaryAccession, nil
}

// nextPage returns the URL of the next results page given in the Link
// header, or nil if there is none.
//
//  Link: <https://rest.uniprot.org/idmapping/results/ID?cursor=X&size=500>; rel="next"
func nextPage(h http.Header) (*url.URL, error) {
	for _, link := range h.Values("Link") {
		for _, l := range strings.Split(link, ",") {
			parts := strings.Split(l, ";")
			target := strings.TrimSpace(parts[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, p := range parts[1:] {
				if strings.TrimSpace(p) == `rel="next"` {
					return url.Parse(target[1 : len(target)-1])
				}
			}
		}
	}
	return nil, nil
}

// MapIDs submits ids for mapping from the from database to the to
// database, waits for the job to finish, polling at the given interval,
// and returns the results.
func (c *Client) MapIDs(ctx context.Context, from, to string, ids []string, interval time.Duration) (*Results, error) {
	job, err := c.Submit(ctx, from, to, ids)
	if err != nil {
		return nil, err
	}
	err = job.Wait(ctx, interval)
	if err != nil {
		return nil, err
	}
	return job.Results(ctx)
}
