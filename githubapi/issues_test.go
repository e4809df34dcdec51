// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIssue(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"number":42,"title":"bug"}`)

	raw, err := client.GetIssue(context.Background(), "octocat", "hello", 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":42,"title":"bug"}`, string(raw))
	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/issues/42", rec.Path)
}

func TestCreateIssue(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{"number":43}`)

	milestone := 7
	_, err := client.CreateIssue(context.Background(), "octocat", "hello", CreateIssueOptions{
		Title:     "something broke",
		Body:      "details here",
		Assignees: []string{"octocat"},
		Labels:    []string{"bug", "urgent"},
		Milestone: &milestone,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/issues", rec.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "something broke", body["title"])
	assert.Equal(t, []any{"bug", "urgent"}, body["labels"])
	assert.Equal(t, float64(7), body["milestone"])
}

func TestCreateIssue_OmitsUnsetFields(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{}`)

	_, err := client.CreateIssue(context.Background(), "octocat", "hello",
		CreateIssueOptions{Title: "title only"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, map[string]any{"title": "title only"}, body)
}

func TestListIssues(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `[{"number":1}]`)

	_, err := client.ListIssues(context.Background(), "octocat", "hello", ListIssuesOptions{
		State:       "closed",
		Labels:      []string{"bug", "p1"},
		Sort:        "updated",
		Direction:   "asc",
		Since:       "2025-01-01T00:00:00Z",
		ListOptions: ListOptions{PerPage: 20, Page: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/hello/issues", rec.Path)
	assert.Equal(t, "closed", rec.Query["state"])
	assert.Equal(t, "bug,p1", rec.Query["labels"])
	assert.Equal(t, "updated", rec.Query["sort"])
	assert.Equal(t, "asc", rec.Query["direction"])
	assert.Equal(t, "2025-01-01T00:00:00Z", rec.Query["since"])
	assert.Equal(t, "20", rec.Query["per_page"])
	assert.Equal(t, "2", rec.Query["page"])
}

func TestCreateIssueComment(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{"id":1}`)

	_, err := client.CreateIssueComment(context.Background(), "octocat", "hello", 42, "looks good")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/issues/42/comments", rec.Path)
	assert.JSONEq(t, `{"body":"looks good"}`, string(rec.Body))
}

func TestListIssueComments(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `[{"id":1},{"id":2}]`)

	raw, err := client.ListIssueComments(context.Background(), "octocat", "hello", 42,
		ListOptions{PerPage: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(raw))
	assert.Equal(t, "/repos/octocat/hello/issues/42/comments", rec.Path)
	assert.Equal(t, "5", rec.Query["per_page"])
}
