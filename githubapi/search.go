// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/json"
	"net/url"
)

// SearchOptions carries the qualifiers shared by the search endpoints.
// Sort and Order are forwarded verbatim when set; valid values are
// endpoint-specific (see the GitHub search documentation).
type SearchOptions struct {
	Sort  string
	Order string
	ListOptions
}

func (so SearchOptions) values(q string) url.Values {
	v := url.Values{}
	v.Set("q", q)
	if so.Sort != "" {
		v.Set("sort", so.Sort)
	}
	if so.Order != "" {
		v.Set("order", so.Order)
	}
	so.ListOptions.apply(v)
	return v
}

// RepositoryMatch is a curated repository search hit.
type RepositoryMatch struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
}

// RepositorySearchResult is the curated result of a repository search.
type RepositorySearchResult struct {
	TotalCount   int               `json:"total_count"`
	Repositories []RepositoryMatch `json:"repositories"`
}

// CodeMatch is a curated code search hit.
type CodeMatch struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Repository string `json:"repository"`
	HTMLURL    string `json:"html_url"`
}

// CodeSearchResult is the curated result of a code search.
type CodeSearchResult struct {
	TotalCount  int         `json:"total_count"`
	CodeResults []CodeMatch `json:"code_results"`
}

// UserMatch is a curated user search hit.
type UserMatch struct {
	Login   string  `json:"login"`
	HTMLURL string  `json:"html_url"`
	Type    string  `json:"type"`
	Score   float64 `json:"score"`
}

// UserSearchResult is the curated result of a user search.
type UserSearchResult struct {
	TotalCount int         `json:"total_count"`
	Users      []UserMatch `json:"users"`
}

// SearchRepositories searches repositories and returns a curated summary of
// each hit rather than the full API objects.
//
// GET /search/repositories
func (c *Client) SearchRepositories(ctx context.Context, query string, opts SearchOptions) (*RepositorySearchResult, error) {
	raw, err := c.get(ctx, "/search/repositories", opts.values(query))
	if err != nil {
		return nil, err
	}

	var envelope struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			FullName    string `json:"full_name"`
			HTMLURL     string `json:"html_url"`
			Description string `json:"description"`
			Stars       int    `json:"stargazers_count"`
			Language    string `json:"language"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	out := &RepositorySearchResult{
		TotalCount:   envelope.TotalCount,
		Repositories: make([]RepositoryMatch, 0, len(envelope.Items)),
	}
	for _, it := range envelope.Items {
		out.Repositories = append(out.Repositories, RepositoryMatch{
			Name:        it.FullName,
			URL:         it.HTMLURL,
			Description: it.Description,
			Stars:       it.Stars,
			Language:    it.Language,
		})
	}
	return out, nil
}

// SearchCode searches file contents.
//
// GET /search/code
func (c *Client) SearchCode(ctx context.Context, query string, opts SearchOptions) (*CodeSearchResult, error) {
	raw, err := c.get(ctx, "/search/code", opts.values(query))
	if err != nil {
		return nil, err
	}

	var envelope struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			Name       string `json:"name"`
			Path       string `json:"path"`
			HTMLURL    string `json:"html_url"`
			Repository struct {
				FullName string `json:"full_name"`
			} `json:"repository"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	out := &CodeSearchResult{
		TotalCount:  envelope.TotalCount,
		CodeResults: make([]CodeMatch, 0, len(envelope.Items)),
	}
	for _, it := range envelope.Items {
		out.CodeResults = append(out.CodeResults, CodeMatch{
			Name:       it.Name,
			Path:       it.Path,
			Repository: it.Repository.FullName,
			HTMLURL:    it.HTMLURL,
		})
	}
	return out, nil
}

// SearchUsers searches users and organizations.
//
// GET /search/users
func (c *Client) SearchUsers(ctx context.Context, query string, opts SearchOptions) (*UserSearchResult, error) {
	raw, err := c.get(ctx, "/search/users", opts.values(query))
	if err != nil {
		return nil, err
	}

	var envelope struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			Login   string  `json:"login"`
			HTMLURL string  `json:"html_url"`
			Type    string  `json:"type"`
			Score   float64 `json:"score"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	out := &UserSearchResult{
		TotalCount: envelope.TotalCount,
		Users:      make([]UserMatch, 0, len(envelope.Items)),
	}
	for _, it := range envelope.Items {
		out.Users = append(out.Users, UserMatch{
			Login:   it.Login,
			HTMLURL: it.HTMLURL,
			Type:    it.Type,
			Score:   it.Score,
		})
	}
	return out, nil
}

// SearchIssues searches issues and pull requests, returning the raw API
// response envelope.
//
// GET /search/issues
func (c *Client) SearchIssues(ctx context.Context, query string, opts SearchOptions) (json.RawMessage, error) {
	return c.get(ctx, "/search/issues", opts.values(query))
}
