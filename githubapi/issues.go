// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// CreateIssueOptions are the fields for opening an issue. Optional fields
// left at their zero value are omitted from the request body.
type CreateIssueOptions struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Milestone *int     `json:"milestone,omitempty"`
}

// ListIssuesOptions filter the issue listing. Since is an RFC 3339
// timestamp; only issues updated at or after it are returned.
type ListIssuesOptions struct {
	State     string
	Labels    []string
	Sort      string
	Direction string
	Since     string
	ListOptions
}

// GetIssue fetches a single issue.
//
// GET /repos/{owner}/{repo}/issues/{number}
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number), nil)
}

// CreateIssue opens a new issue on owner/repo.
//
// POST /repos/{owner}/{repo}/issues
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, opts CreateIssueOptions) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), opts)
}

// ListIssues lists issues on owner/repo. Note that GitHub includes pull
// requests in this listing.
//
// GET /repos/{owner}/{repo}/issues
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts ListIssuesOptions) (json.RawMessage, error) {
	q := url.Values{}
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	if len(opts.Labels) > 0 {
		q.Set("labels", strings.Join(opts.Labels, ","))
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Direction != "" {
		q.Set("direction", opts.Direction)
	}
	if opts.Since != "" {
		q.Set("since", opts.Since)
	}
	opts.ListOptions.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), q)
}

// CreateIssueComment adds a comment to an issue or pull request.
//
// POST /repos/{owner}/{repo}/issues/{number}/comments
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number),
		map[string]string{"body": body})
}

// ListIssueComments lists the comments on an issue or pull request.
//
// GET /repos/{owner}/{repo}/issues/{number}/comments
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int, lo ListOptions) (json.RawMessage, error) {
	q := url.Values{}
	lo.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number), q)
}
