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

func strPtr(s string) *string { return &s }

func TestCreatePull(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{"number":7}`)

	_, err := client.CreatePull(context.Background(), "octocat", "hello", CreatePullOptions{
		Title: "add feature",
		Head:  "feature-branch",
		Base:  "main",
		Body:  "implements the feature",
		Draft: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/pulls", rec.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "add feature", body["title"])
	assert.Equal(t, "feature-branch", body["head"])
	assert.Equal(t, "main", body["base"])
	assert.Equal(t, true, body["draft"])
	assert.NotContains(t, body, "maintainer_can_modify")
}

func TestGetPull(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"number":7,"state":"open"}`)

	raw, err := client.GetPull(context.Background(), "octocat", "hello", 7)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":7,"state":"open"}`, string(raw))
	assert.Equal(t, "/repos/octocat/hello/pulls/7", rec.Path)
}

func TestUpdatePull(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"number":7}`)

	_, err := client.UpdatePull(context.Background(), "octocat", "hello", 7, UpdatePullOptions{
		Title: strPtr("new title"),
		State: strPtr("closed"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/pulls/7", rec.Path)
	assert.JSONEq(t, `{"title":"new title","state":"closed"}`, string(rec.Body))
}

func TestListPulls(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `[{"number":7}]`)

	_, err := client.ListPulls(context.Background(), "octocat", "hello", ListPullsOptions{
		State:       "all",
		Head:        "octocat:feature",
		Base:        "main",
		Sort:        "updated",
		Direction:   "asc",
		ListOptions: ListOptions{PerPage: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/hello/pulls", rec.Path)
	assert.Equal(t, "all", rec.Query["state"])
	assert.Equal(t, "octocat:feature", rec.Query["head"])
	assert.Equal(t, "main", rec.Query["base"])
	assert.Equal(t, "updated", rec.Query["sort"])
	assert.Equal(t, "asc", rec.Query["direction"])
}

func TestMergePull(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"merged":true,"sha":"abc123"}`)

	raw, err := client.MergePull(context.Background(), "octocat", "hello", 7, MergePullOptions{
		CommitTitle: "merge the feature",
		MergeMethod: MergeMethodSquash,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"merged":true,"sha":"abc123"}`, string(raw))

	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/pulls/7/merge", rec.Path)
	assert.JSONEq(t, `{"commit_title":"merge the feature","merge_method":"squash"}`, string(rec.Body))
}

func TestListPullFiles(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `[{"filename":"main.go"}]`)

	raw, err := client.ListPullFiles(context.Background(), "octocat", "hello", 7,
		ListOptions{Page: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"filename":"main.go"}]`, string(raw))
	assert.Equal(t, "/repos/octocat/hello/pulls/7/files", rec.Path)
	assert.Equal(t, "2", rec.Query["page"])
}
