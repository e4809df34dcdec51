// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
)

// CreateRepositoryOptions are the fields for creating a repository under the
// authenticated user.
type CreateRepositoryOptions struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Private     *bool  `json:"private,omitempty"`
	AutoInit    *bool  `json:"auto_init,omitempty"`
}

// CreateRepository creates a repository for the authenticated user.
//
// POST /user/repos
func (c *Client) CreateRepository(ctx context.Context, opts CreateRepositoryOptions) (json.RawMessage, error) {
	return c.post(ctx, "/user/repos", opts)
}

// ForkRepository forks owner/repo for the authenticated user, or into the
// given organization when organization is non-empty.
//
// POST /repos/{owner}/{repo}/forks
func (c *Client) ForkRepository(ctx context.Context, owner, repo, organization string) (json.RawMessage, error) {
	body := map[string]string{}
	if organization != "" {
		body["organization"] = organization
	}
	return c.post(ctx, fmt.Sprintf("/repos/%s/%s/forks", owner, repo), body)
}

// CommitFileOptions are the fields for creating or updating a file through
// the contents API. Content is the raw file content; it is base64-encoded on
// the wire as the API requires. SHA must be set to the blob SHA of the file
// being replaced for updates, and left empty for creates.
type CommitFileOptions struct {
	Message string
	Content string
	Branch  string
	SHA     string
}

// CreateOrUpdateFile creates or updates a file at path in owner/repo.
// Whether this is a create or an update is decided by opts.SHA.
//
// PUT /repos/{owner}/{repo}/contents/{path}
func (c *Client) CreateOrUpdateFile(ctx context.Context, owner, repo, path string, opts CommitFileOptions) (json.RawMessage, error) {
	body := map[string]string{
		"message": opts.Message,
		"content": base64.StdEncoding.EncodeToString([]byte(opts.Content)),
		"branch":  opts.Branch,
	}
	if opts.SHA != "" {
		body["sha"] = opts.SHA
	}
	return c.put(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), body)
}

// GetCommit fetches a single commit. ref may be a commit SHA, branch name,
// or tag name.
//
// GET /repos/{owner}/{repo}/commits/{ref}
func (c *Client) GetCommit(ctx context.Context, owner, repo, ref string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, ref), nil)
}

// ListCommits lists commits on owner/repo, newest first. sha optionally
// restricts the listing to a branch or starting SHA.
//
// GET /repos/{owner}/{repo}/commits
func (c *Client) ListCommits(ctx context.Context, owner, repo, sha string, lo ListOptions) (json.RawMessage, error) {
	q := url.Values{}
	if sha != "" {
		q.Set("sha", sha)
	}
	lo.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), q)
}

// ListBranches lists branches on owner/repo.
//
// GET /repos/{owner}/{repo}/branches
func (c *Client) ListBranches(ctx context.Context, owner, repo string, lo ListOptions) (json.RawMessage, error) {
	q := url.Values{}
	lo.apply(q)
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/branches", owner, repo), q)
}

// GetCombinedStatus fetches the combined commit status for a ref
// (e.g. CI results for a pull request head SHA).
//
// GET /repos/{owner}/{repo}/commits/{ref}/status
func (c *Client) GetCombinedStatus(ctx context.Context, owner, repo, ref string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits/%s/status", owner, repo, ref), nil)
}
