// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentplexus/githubmcp/githubapi"
	"github.com/agentplexus/githubmcp/runtime"
)

// GetPullRequestParams identify a single pull request.
type GetPullRequestParams struct {
	Owner      string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo       string `json:"repo" jsonschema:"Repository name" validate:"required"`
	PullNumber int    `json:"pull_number" jsonschema:"Pull request number" validate:"required,min=1"`
}

// CreatePullRequestParams open a new pull request.
type CreatePullRequestParams struct {
	Owner               string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo                string `json:"repo" jsonschema:"Repository name" validate:"required"`
	Title               string `json:"title" jsonschema:"Pull request title" validate:"required"`
	Body                string `json:"body,omitempty" jsonschema:"Pull request body"`
	Head                string `json:"head" jsonschema:"Branch with the changes" validate:"required"`
	Base                string `json:"base" jsonschema:"Branch to merge into" validate:"required"`
	Draft               *bool  `json:"draft,omitempty" jsonschema:"Open as draft"`
	MaintainerCanModify *bool  `json:"maintainer_can_modify,omitempty" jsonschema:"Allow maintainers to edit"`
}

// UpdatePullRequestParams edit an existing pull request.
type UpdatePullRequestParams struct {
	Owner               string  `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo                string  `json:"repo" jsonschema:"Repository name" validate:"required"`
	PullNumber          int     `json:"pull_number" jsonschema:"Pull request number" validate:"required,min=1"`
	Title               *string `json:"title,omitempty" jsonschema:"New title"`
	Body                *string `json:"body,omitempty" jsonschema:"New body"`
	State               *string `json:"state,omitempty" jsonschema:"New state ('open' or 'closed')" validate:"omitempty,oneof=open closed"`
	Base                *string `json:"base,omitempty" jsonschema:"New base branch"`
	MaintainerCanModify *bool   `json:"maintainer_can_modify,omitempty" jsonschema:"Allow maintainers to edit"`
}

// ListPullRequestsParams list pull requests in a repository.
type ListPullRequestsParams struct {
	Owner     string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo      string `json:"repo" jsonschema:"Repository name" validate:"required"`
	State     string `json:"state,omitempty" jsonschema:"Filter by state ('open', 'closed', or 'all')" validate:"omitempty,oneof=open closed all"`
	Head      string `json:"head,omitempty" jsonschema:"Filter by head user/branch (user:ref-name)"`
	Base      string `json:"base,omitempty" jsonschema:"Filter by base branch"`
	Sort      string `json:"sort,omitempty" jsonschema:"Sort field ('created', 'updated', 'popularity', or 'long-running')" validate:"omitempty,oneof=created updated popularity long-running"`
	Direction string `json:"direction,omitempty" jsonschema:"Sort direction ('asc' or 'desc')" validate:"omitempty,oneof=asc desc"`
	PerPage   int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page      int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// MergePullRequestParams merge a pull request.
type MergePullRequestParams struct {
	Owner         string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo          string `json:"repo" jsonschema:"Repository name" validate:"required"`
	PullNumber    int    `json:"pull_number" jsonschema:"Pull request number" validate:"required,min=1"`
	CommitTitle   string `json:"commit_title,omitempty" jsonschema:"Title of the merge commit"`
	CommitMessage string `json:"commit_message,omitempty" jsonschema:"Body of the merge commit"`
	MergeMethod   string `json:"merge_method,omitempty" jsonschema:"Merge method ('merge', 'squash', or 'rebase')" validate:"omitempty,oneof=merge squash rebase"`
}

// GetPullRequestFilesParams list the files changed in a pull request.
type GetPullRequestFilesParams struct {
	Owner      string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo       string `json:"repo" jsonschema:"Repository name" validate:"required"`
	PullNumber int    `json:"pull_number" jsonschema:"Pull request number" validate:"required,min=1"`
	PerPage    int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page       int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

func registerPullTools(rt *runtime.Runtime, deps Deps) {
	runtime.AddTool(rt, &mcp.Tool{
		Name:        "create_pull_request",
		Description: "Create a new pull request",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p CreatePullRequestParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.CreatePull(ctx, p.Owner, p.Repo, githubapi.CreatePullOptions{
			Title:               p.Title,
			Head:                p.Head,
			Base:                p.Base,
			Body:                p.Body,
			Draft:               p.Draft,
			MaintainerCanModify: p.MaintainerCanModify,
		})
		return deps.result("create_pull_request", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_pull_request",
		Description: "Get details of a specific pull request",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetPullRequestParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.GetPull(ctx, p.Owner, p.Repo, p.PullNumber)
		return deps.result("get_pull_request", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "update_pull_request",
		Description: "Update an existing pull request's title, body, state, or base branch",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p UpdatePullRequestParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.UpdatePull(ctx, p.Owner, p.Repo, p.PullNumber, githubapi.UpdatePullOptions{
			Title:               p.Title,
			Body:                p.Body,
			State:               p.State,
			Base:                p.Base,
			MaintainerCanModify: p.MaintainerCanModify,
		})
		return deps.result("update_pull_request", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "list_pull_requests",
		Description: "List pull requests in a repository",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p ListPullRequestsParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		// GitHub's own defaults, made explicit so listings are stable.
		state := p.State
		if state == "" {
			state = "open"
		}
		sort := p.Sort
		if sort == "" {
			sort = "created"
		}
		direction := p.Direction
		if direction == "" {
			direction = "desc"
		}
		raw, err := deps.Client.ListPulls(ctx, p.Owner, p.Repo, githubapi.ListPullsOptions{
			State:       state,
			Head:        p.Head,
			Base:        p.Base,
			Sort:        sort,
			Direction:   direction,
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.result("list_pull_requests", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "merge_pull_request",
		Description: "Merge a pull request using the merge, squash, or rebase method",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p MergePullRequestParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		method := p.MergeMethod
		if method == "" {
			method = githubapi.MergeMethodMerge
		}
		raw, err := deps.Client.MergePull(ctx, p.Owner, p.Repo, p.PullNumber, githubapi.MergePullOptions{
			CommitTitle:   p.CommitTitle,
			CommitMessage: p.CommitMessage,
			MergeMethod:   method,
		})
		return deps.result("merge_pull_request", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_pull_request_files",
		Description: "List the files changed in a pull request",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetPullRequestFilesParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ListPullFiles(ctx, p.Owner, p.Repo, p.PullNumber,
			githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page})
		return deps.result("get_pull_request_files", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_pull_request_status",
		Description: "Get the combined commit status of a pull request's head commit",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetPullRequestParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		// Two calls by necessity: the head SHA comes from the pull request.
		raw, err := deps.Client.GetPull(ctx, p.Owner, p.Repo, p.PullNumber)
		if err != nil {
			return deps.result("get_pull_request_status", nil, err)
		}
		var pr struct {
			Head struct {
				SHA string `json:"sha"`
			} `json:"head"`
		}
		if err := json.Unmarshal(raw, &pr); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err = deps.Client.GetCombinedStatus(ctx, p.Owner, p.Repo, pr.Head.SHA)
		return deps.result("get_pull_request_status", raw, err)
	})
}
