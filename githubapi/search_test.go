// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package githubapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRepositories(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{
		"total_count": 2,
		"items": [
			{"full_name":"golang/go","html_url":"https://github.com/golang/go","description":"The Go programming language","stargazers_count":120000,"language":"Go"},
			{"full_name":"torvalds/linux","html_url":"https://github.com/torvalds/linux","description":null,"stargazers_count":160000,"language":"C"}
		]
	}`)

	res, err := client.SearchRepositories(context.Background(), "language:go stars:>1000",
		SearchOptions{Order: "desc", ListOptions: ListOptions{PerPage: 2}})
	require.NoError(t, err)

	assert.Equal(t, "/search/repositories", rec.Path)
	assert.Equal(t, "language:go stars:>1000", rec.Query["q"])
	assert.Equal(t, "desc", rec.Query["order"])
	assert.Equal(t, "2", rec.Query["per_page"])
	assert.NotContains(t, rec.Query, "sort")

	assert.Equal(t, 2, res.TotalCount)
	require.Len(t, res.Repositories, 2)
	assert.Equal(t, RepositoryMatch{
		Name:        "golang/go",
		URL:         "https://github.com/golang/go",
		Description: "The Go programming language",
		Stars:       120000,
		Language:    "Go",
	}, res.Repositories[0])
	assert.Empty(t, res.Repositories[1].Description, "null description maps to empty string")
}

func TestSearchCode(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{
		"total_count": 1,
		"items": [
			{"name":"main.go","path":"cmd/main.go","html_url":"https://github.com/octocat/hello/blob/main/cmd/main.go","repository":{"full_name":"octocat/hello"}}
		]
	}`)

	res, err := client.SearchCode(context.Background(), "func main repo:octocat/hello",
		SearchOptions{Sort: "indexed"})
	require.NoError(t, err)

	assert.Equal(t, "/search/code", rec.Path)
	assert.Equal(t, "indexed", rec.Query["sort"])

	assert.Equal(t, 1, res.TotalCount)
	require.Len(t, res.CodeResults, 1)
	assert.Equal(t, CodeMatch{
		Name:       "main.go",
		Path:       "cmd/main.go",
		Repository: "octocat/hello",
		HTMLURL:    "https://github.com/octocat/hello/blob/main/cmd/main.go",
	}, res.CodeResults[0])
}

func TestSearchUsers(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{
		"total_count": 1,
		"items": [
			{"login":"octocat","html_url":"https://github.com/octocat","type":"User","score":1.0}
		]
	}`)

	res, err := client.SearchUsers(context.Background(), "octocat", SearchOptions{Sort: "followers"})
	require.NoError(t, err)

	assert.Equal(t, "/search/users", rec.Path)
	assert.Equal(t, "followers", rec.Query["sort"])

	assert.Equal(t, 1, res.TotalCount)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "octocat", res.Users[0].Login)
	assert.Equal(t, "User", res.Users[0].Type)
	assert.InDelta(t, 1.0, res.Users[0].Score, 0.001)
}

func TestSearchIssues_Raw(t *testing.T) {
	client, rec := fakeGitHub(t, http.StatusOK, `{"total_count":1,"items":[{"number":7}]}`)

	raw, err := client.SearchIssues(context.Background(), "is:open label:bug repo:octocat/hello",
		SearchOptions{Sort: "created", Order: "asc"})
	require.NoError(t, err)

	assert.Equal(t, "/search/issues", rec.Path)
	assert.Equal(t, "created", rec.Query["sort"])
	assert.Equal(t, "asc", rec.Query["order"])
	assert.JSONEq(t, `{"total_count":1,"items":[{"number":7}]}`, string(raw))
}

func TestSearch_PropagatesAPIError(t *testing.T) {
	client, _ := fakeGitHub(t, http.StatusUnprocessableEntity,
		`{"message":"Validation Failed"}`)

	_, err := client.SearchRepositories(context.Background(), "", SearchOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}
