// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentplexus/githubmcp/githubapi"
	"github.com/agentplexus/githubmcp/runtime"
)

// CreateRepositoryParams create a repository under the authenticated user.
type CreateRepositoryParams struct {
	Name        string `json:"name" jsonschema:"Repository name" validate:"required"`
	Description string `json:"description,omitempty" jsonschema:"Repository description"`
	Private     *bool  `json:"private,omitempty" jsonschema:"Whether repo should be private"`
	AutoInit    *bool  `json:"autoInit,omitempty" jsonschema:"Initialize with README"`
}

// ForkRepositoryParams fork an existing repository.
type ForkRepositoryParams struct {
	Owner        string `json:"owner" jsonschema:"Owner of the repository to fork" validate:"required"`
	Repo         string `json:"repo" jsonschema:"Repository name to fork" validate:"required"`
	Organization string `json:"organization,omitempty" jsonschema:"Organization to fork into (optional)"`
}

// CreateOrUpdateFileParams create or update a single file via the contents API.
type CreateOrUpdateFileParams struct {
	Owner   string `json:"owner" jsonschema:"Repository owner (username or organization)" validate:"required"`
	Repo    string `json:"repo" jsonschema:"Repository name" validate:"required"`
	Path    string `json:"path" jsonschema:"Path where to create/update the file" validate:"required"`
	Content string `json:"content" jsonschema:"Content of the file (will be base64-encoded)" validate:"required"`
	Message string `json:"message" jsonschema:"Commit message" validate:"required"`
	Branch  string `json:"branch" jsonschema:"Branch to create/update the file in" validate:"required"`
	SHA     string `json:"sha,omitempty" jsonschema:"SHA of file being replaced (for updates)"`
}

// GetCommitParams fetch one commit by SHA, branch, or tag.
type GetCommitParams struct {
	Owner string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo  string `json:"repo" jsonschema:"Repository name" validate:"required"`
	SHA   string `json:"sha" jsonschema:"Commit SHA, branch name, or tag name" validate:"required"`
}

// ListCommitsParams list commits on a repository.
type ListCommitsParams struct {
	Owner   string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo    string `json:"repo" jsonschema:"Repository name" validate:"required"`
	SHA     string `json:"sha,omitempty" jsonschema:"SHA or branch name to start listing from"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// ListBranchesParams list branches on a repository.
type ListBranchesParams struct {
	Owner   string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo    string `json:"repo" jsonschema:"Repository name" validate:"required"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

func registerRepoTools(rt *runtime.Runtime, deps Deps) {
	runtime.AddTool(rt, &mcp.Tool{
		Name:        "create_repository",
		Description: "Create a new GitHub repository for the authenticated user",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p CreateRepositoryParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.CreateRepository(ctx, githubapi.CreateRepositoryOptions{
			Name:        p.Name,
			Description: p.Description,
			Private:     p.Private,
			AutoInit:    p.AutoInit,
		})
		return deps.result("create_repository", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "fork_repository",
		Description: "Fork a GitHub repository for the authenticated user or into an organization",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p ForkRepositoryParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ForkRepository(ctx, p.Owner, p.Repo, p.Organization)
		return deps.result("fork_repository", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "create_or_update_file",
		Description: "Create or update a single file in a GitHub repository. Pass the blob sha to update an existing file.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p CreateOrUpdateFileParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.CreateOrUpdateFile(ctx, p.Owner, p.Repo, p.Path, githubapi.CommitFileOptions{
			Message: p.Message,
			Content: p.Content,
			Branch:  p.Branch,
			SHA:     p.SHA,
		})
		return deps.result("create_or_update_file", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_commit",
		Description: "Get a commit from a GitHub repository by SHA, branch name, or tag name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetCommitParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.GetCommit(ctx, p.Owner, p.Repo, p.SHA)
		return deps.result("get_commit", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "list_commits",
		Description: "List commits in a GitHub repository",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p ListCommitsParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ListCommits(ctx, p.Owner, p.Repo, p.SHA,
			githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page})
		return deps.result("list_commits", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "list_branches",
		Description: "List branches in a GitHub repository",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p ListBranchesParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ListBranches(ctx, p.Owner, p.Repo,
			githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page})
		return deps.result("list_branches", raw, err)
	})
}
