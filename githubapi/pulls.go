// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Merge methods accepted by [Client.MergePull].
const (
	MergeMethodMerge  = "merge"
	MergeMethodSquash = "squash"
	MergeMethodRebase = "rebase"
)

// CreatePullOptions are the fields for opening a pull request.
type CreatePullOptions struct {
	Title               string `json:"title"`
	Head                string `json:"head"`
	Base                string `json:"base"`
	Body                string `json:"body,omitempty"`
	Draft               *bool  `json:"draft,omitempty"`
	MaintainerCanModify *bool  `json:"maintainer_can_modify,omitempty"`
}

// UpdatePullOptions are the fields for editing a pull request. Nil fields
// are left untouched.
type UpdatePullOptions struct {
	Title               *string `json:"title,omitempty"`
	Body                *string `json:"body,omitempty"`
	State               *string `json:"state,omitempty"`
	Base                *string `json:"base,omitempty"`
	MaintainerCanModify *bool   `json:"maintainer_can_modify,omitempty"`
}

// ListPullsOptions filter the pull request listing.
type ListPullsOptions struct {
	State     string
	Head      string
	Base      string
	Sort      string
	Direction string
	ListOptions
}

// MergePullOptions are the fields for merging a pull request. An empty
// MergeMethod means "merge".
type MergePullOptions struct {
	CommitTitle   string `json:"commit_title,omitempty"`
	CommitMessage string `json:"commit_message,omitempty"`
	MergeMethod   string `json:"merge_method,omitempty"`
}

// CreatePull opens a pull request on owner/repo.
//
// POST /repos/{owner}/{repo}/pulls
func (c *Client) CreatePull(ctx context.Context, owner, repo string, opts CreatePullOptions) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/repos/%s/%s/pulls", owner, repo), opts)
}

// GetPull fetches a single pull request.
//
// GET /repos/{owner}/{repo}/pulls/{number}
func (c *Client) GetPull(ctx context.Context, owner, repo string, number int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number), nil)
}

// UpdatePull edits a pull request.
//
// PATCH /repos/{owner}/{repo}/pulls/{number}
func (c *Client) UpdatePull(ctx context.Context, owner, repo string, number int, opts UpdatePullOptions) (json.RawMessage, error) {
	return c.patch(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number), opts)
}

// ListPulls lists pull requests on owner/repo.
//
// GET /repos/{owner}/{repo}/pulls
func (c *Client) ListPulls(ctx context.Context, owner, repo string, opts ListPullsOptions) (json.RawMessage, error) {
	q := url.Values{}
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	if opts.Head != "" {
		q.Set("head", opts.Head)
	}
	if opts.Base != "" {
		q.Set("base", opts.Base)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Direction != "" {
		q.Set("direction", opts.Direction)
	}
	opts.ListOptions.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls", owner, repo), q)
}

// MergePull merges a pull request.
//
// PUT /repos/{owner}/{repo}/pulls/{number}/merge
func (c *Client) MergePull(ctx context.Context, owner, repo string, number int, opts MergePullOptions) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d/merge", owner, repo, number), opts)
}

// ListPullFiles lists the files changed in a pull request.
//
// GET /repos/{owner}/{repo}/pulls/{number}/files
func (c *Client) ListPullFiles(ctx context.Context, owner, repo string, number int, lo ListOptions) (json.RawMessage, error) {
	q := url.Values{}
	lo.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d/files", owner, repo, number), q)
}
