// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentplexus/githubmcp/githubapi"
	"github.com/agentplexus/githubmcp/runtime"
)

// fakeGitHub is a fake GitHub API that records the last request and counts
// how many it served.
type fakeGitHub struct {
	srv      *httptest.Server
	requests atomic.Int64

	lastMethod string
	lastPath   string
	lastQuery  map[string]string
	lastBody   []byte

	status int
	body   string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{status: http.StatusOK, body: `{"ok":true}`}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		f.lastQuery = map[string]string{}
		for k, vals := range r.URL.Query() {
			f.lastQuery[k] = vals[0]
		}
		f.lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGitHub) respond(status int, body string) {
	f.status = status
	f.body = body
}

func newTestRuntime(t *testing.T) (*runtime.Runtime, *fakeGitHub) {
	t.Helper()
	fake := newFakeGitHub(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	rt := runtime.New(&mcp.Implementation{Name: "githubmcp-test", Version: "test"}, nil)
	Register(rt, Deps{
		Client: githubapi.New(githubapi.WithBaseURL(fake.srv.URL)),
		Token:  "test-token",
		Log:    log,
	})
	return rt, fake
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestRegister_AllTools(t *testing.T) {
	rt, _ := newTestRuntime(t)

	expected := []string{
		"add_issue_comment",
		"create_issue",
		"create_or_update_file",
		"create_pull_request",
		"create_repository",
		"fork_repository",
		"get_commit",
		"get_issue",
		"get_issue_comments",
		"get_pull_request",
		"get_pull_request_files",
		"get_pull_request_status",
		"list_branches",
		"list_commits",
		"list_issues",
		"list_pull_requests",
		"merge_pull_request",
		"push_to_github",
		"search_code",
		"search_issues",
		"search_repositories",
		"search_users",
		"update_pull_request",
	}
	assert.Equal(t, expected, rt.Tools())
}

func TestValidation_RejectsBeforeNetwork(t *testing.T) {
	rt, fake := newTestRuntime(t)

	// Missing required fields must not reach GitHub.
	res, err := rt.CallTool(context.Background(), "create_issue", map[string]any{
		"owner": "octocat",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "repo is required")
	assert.Contains(t, text, "title is required")
	assert.Equal(t, int64(0), fake.requests.Load())
}

func TestValidation_RejectsBadEnum(t *testing.T) {
	rt, fake := newTestRuntime(t)

	res, err := rt.CallTool(context.Background(), "merge_pull_request", map[string]any{
		"owner":        "octocat",
		"repo":         "hello",
		"pull_number":  7,
		"merge_method": "fast-forward",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "merge_method must be one of")
	assert.Equal(t, int64(0), fake.requests.Load())
}

func TestValidation_RejectsBadTimestamp(t *testing.T) {
	rt, fake := newTestRuntime(t)

	res, err := rt.CallTool(context.Background(), "list_issues", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
		"since": "yesterday",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "RFC 3339")
	assert.Equal(t, int64(0), fake.requests.Load())
}

func TestCreateIssue_Success(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusCreated, `{"number":43,"title":"something broke"}`)

	res, err := rt.CallTool(context.Background(), "create_issue", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"title":  "something broke",
		"labels": []string{"bug"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"number":43,"title":"something broke"}`, resultText(t, res))

	assert.Equal(t, http.MethodPost, fake.lastMethod)
	assert.Equal(t, "/repos/octocat/hello/issues", fake.lastPath)

	var body map[string]any
	require.NoError(t, json.Unmarshal(fake.lastBody, &body))
	assert.NotContains(t, body, "assignees")
	assert.NotContains(t, body, "milestone")
}

func TestAPIError_BecomesErrorResult(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusNotFound, `{"message":"Not Found"}`)

	res, err := rt.CallTool(context.Background(), "get_issue", map[string]any{
		"owner":        "octocat",
		"repo":         "hello",
		"issue_number": 42,
	})
	require.NoError(t, err, "API failures are tool results, not protocol errors")
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Not Found")
}

func TestMergePullRequest_DefaultsToMerge(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusOK, `{"merged":true}`)

	res, err := rt.CallTool(context.Background(), "merge_pull_request", map[string]any{
		"owner":       "octocat",
		"repo":        "hello",
		"pull_number": 7,
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var body map[string]any
	require.NoError(t, json.Unmarshal(fake.lastBody, &body))
	assert.Equal(t, "merge", body["merge_method"])
}

func TestListPullRequests_AppliesDefaults(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusOK, `[]`)

	_, err := rt.CallTool(context.Background(), "list_pull_requests", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "open", fake.lastQuery["state"])
	assert.Equal(t, "created", fake.lastQuery["sort"])
	assert.Equal(t, "desc", fake.lastQuery["direction"])
}

func TestSearchRepositories_CuratedShape(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusOK, `{
		"total_count": 1,
		"items": [
			{"full_name":"golang/go","html_url":"https://github.com/golang/go","description":"The Go programming language","stargazers_count":120000,"language":"Go"}
		]
	}`)

	res, err := rt.CallTool(context.Background(), "search_repositories", map[string]any{
		"q": "language:go",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out githubapi.RepositorySearchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, 1, out.TotalCount)
	require.Len(t, out.Repositories, 1)
	assert.Equal(t, "golang/go", out.Repositories[0].Name)
	assert.Equal(t, 120000, out.Repositories[0].Stars)
}

func TestGetPullRequestStatus_TwoCalls(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusOK, `{"head":{"sha":"abc123"},"state":"success"}`)

	res, err := rt.CallTool(context.Background(), "get_pull_request_status", map[string]any{
		"owner":       "octocat",
		"repo":        "hello",
		"pull_number": 7,
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, int64(2), fake.requests.Load())
	assert.Equal(t, "/repos/octocat/hello/commits/abc123/status", fake.lastPath)
}

func TestGetPullRequestStatus_MalformedBody(t *testing.T) {
	rt, fake := newTestRuntime(t)
	fake.respond(http.StatusOK, `{"head":"not-an-object"}`)

	res, err := rt.CallTool(context.Background(), "get_pull_request_status", map[string]any{
		"owner":       "octocat",
		"repo":        "hello",
		"pull_number": 7,
	})
	require.NoError(t, err, "decode failures are tool results, not protocol errors")
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Error:")
	assert.Equal(t, int64(1), fake.requests.Load(), "no status call after a bad pull request body")
}
