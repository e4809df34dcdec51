// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status line (e.g. "404 Not Found").
	Status string

	// Message is GitHub's error message, if the body carried one.
	Message string

	// DocumentationURL points at the relevant API documentation, if given.
	DocumentationURL string

	// RateLimitRemaining is the X-RateLimit-Remaining header value,
	// or -1 when the header was absent.
	RateLimitRemaining int
}

// errorBody is GitHub's error response envelope.
type errorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("github: %s", e.Status)
}

// RateLimited reports whether the error is a rate limit rejection.
func (e *APIError) RateLimited() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode == http.StatusForbidden && e.RateLimitRemaining == 0
}

func newAPIError(resp *resty.Response) *APIError {
	e := &APIError{
		StatusCode:         resp.StatusCode(),
		Status:             resp.Status(),
		RateLimitRemaining: -1,
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		e.Message = body.Message
		e.DocumentationURL = body.DocumentationURL
	}

	if v := resp.Header().Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			e.RateLimitRemaining = n
		}
	}

	return e
}
