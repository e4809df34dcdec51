// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateRepository(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{"full_name":"octocat/hello"}`)

	raw, err := client.CreateRepository(context.Background(), CreateRepositoryOptions{
		Name:        "hello",
		Description: "demo repo",
		Private:     boolPtr(true),
		AutoInit:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name":"octocat/hello"}`, string(raw))

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/user/repos", rec.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "hello", body["name"])
	assert.Equal(t, "demo repo", body["description"])
	assert.Equal(t, true, body["private"])
	assert.Equal(t, true, body["auto_init"])
}

func TestCreateRepository_OmitsUnsetFields(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{}`)

	_, err := client.CreateRepository(context.Background(), CreateRepositoryOptions{Name: "hello"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.NotContains(t, body, "private")
	assert.NotContains(t, body, "auto_init")
	assert.NotContains(t, body, "description")
}

func TestForkRepository(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusAccepted, `{"full_name":"me/hello"}`)

	_, err := client.ForkRepository(context.Background(), "octocat", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/forks", rec.Path)
	assert.JSONEq(t, `{}`, string(rec.Body))

	_, err = client.ForkRepository(context.Background(), "octocat", "hello", "my-org")
	require.NoError(t, err)
	assert.JSONEq(t, `{"organization":"my-org"}`, string(rec.Body))
}

func TestCreateOrUpdateFile(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusCreated, `{"content":{"path":"docs/readme.md"}}`)

	content := "# Hello\n\nplain text content"
	_, err := client.CreateOrUpdateFile(context.Background(), "octocat", "hello", "docs/readme.md",
		CommitFileOptions{
			Message: "add readme",
			Content: content,
			Branch:  "main",
		})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/contents/docs/readme.md", rec.Path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "add readme", body["message"])
	assert.Equal(t, "main", body["branch"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(content)), body["content"])
	assert.NotContains(t, body, "sha", "sha omitted for creates")
}

func TestCreateOrUpdateFile_UpdateSendsSHA(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{}`)

	_, err := client.CreateOrUpdateFile(context.Background(), "octocat", "hello", "readme.md",
		CommitFileOptions{
			Message: "update readme",
			Content: "new content",
			Branch:  "main",
			SHA:     "abc123",
		})
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "abc123", body["sha"])
}

func TestGetCommit(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"sha":"abc123"}`)

	raw, err := client.GetCommit(context.Background(), "octocat", "hello", "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sha":"abc123"}`, string(raw))
	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/repos/octocat/hello/commits/abc123", rec.Path)
}

func TestListCommits(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `[{"sha":"abc123"}]`)

	_, err := client.ListCommits(context.Background(), "octocat", "hello", "develop",
		ListOptions{PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/hello/commits", rec.Path)
	assert.Equal(t, "develop", rec.Query["sha"])
	assert.Equal(t, "10", rec.Query["per_page"])
}

func TestGetCombinedStatus(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"state":"success","total_count":2}`)

	raw, err := client.GetCombinedStatus(context.Background(), "octocat", "hello", "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"success","total_count":2}`, string(raw))
	assert.Equal(t, "/repos/octocat/hello/commits/abc123/status", rec.Path)
}
