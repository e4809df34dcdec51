// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package githubapi provides a thin client for the GitHub REST API v3.
//
// Every method maps to exactly one documented endpoint. There is no retry,
// batching, or caching: failures surface directly as [*APIError].
package githubapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public GitHub API endpoint. Override with
// [WithBaseURL] for GitHub Enterprise or tests.
const DefaultBaseURL = "https://api.github.com"

const apiVersion = "2022-11-28"

// Client is a GitHub REST API v3 client.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the Authorization bearer token. An empty token leaves the
// client unauthenticated (GitHub then applies the anonymous rate limit).
func WithToken(tok string) Option {
	return func(c *Client) {
		if tok != "" {
			c.http.SetAuthToken(tok)
		}
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.http.SetBaseURL(strings.TrimRight(base, "/"))
		}
	}
}

// WithTimeout sets the request timeout. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.http.SetHeader("User-Agent", ua)
		}
	}
}

// New returns a Client for the given options.
func New(opts ...Option) *Client {
	c := &Client{http: resty.New()}
	c.http.SetBaseURL(DefaultBaseURL)
	c.http.SetHeader("Accept", "application/vnd.github+json")
	c.http.SetHeader("X-GitHub-Api-Version", apiVersion)
	c.http.SetHeader("User-Agent", "githubmcp")
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListOptions carries the pagination parameters shared by list and search
// endpoints. Zero values are not forwarded; GitHub then applies its own
// defaults (per_page=30, page=1).
type ListOptions struct {
	PerPage int
	Page    int
}

func (lo ListOptions) apply(q url.Values) {
	if lo.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(lo.PerPage))
	}
	if lo.Page > 0 {
		q.Set("page", strconv.Itoa(lo.Page))
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	return decode(req.Get(path))
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return decode(c.http.R().SetContext(ctx).SetBody(body).Post(path))
}

func (c *Client) put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return decode(c.http.R().SetContext(ctx).SetBody(body).Put(path))
}

func (c *Client) patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return decode(c.http.R().SetContext(ctx).SetBody(body).Patch(path))
}

func decode(resp *resty.Response, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return json.RawMessage(resp.Body()), nil
}
