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

// GetIssueParams identify a single issue.
type GetIssueParams struct {
	Owner       string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo        string `json:"repo" jsonschema:"Repository name" validate:"required"`
	IssueNumber int    `json:"issue_number" jsonschema:"Issue number" validate:"required,min=1"`
}

// CreateIssueParams open a new issue.
type CreateIssueParams struct {
	Owner     string   `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo      string   `json:"repo" jsonschema:"Repository name" validate:"required"`
	Title     string   `json:"title" jsonschema:"Issue title" validate:"required"`
	Body      string   `json:"body,omitempty" jsonschema:"Issue body"`
	Assignees []string `json:"assignees,omitempty" jsonschema:"Logins to assign"`
	Labels    []string `json:"labels,omitempty" jsonschema:"Labels to apply"`
	Milestone *int     `json:"milestone,omitempty" jsonschema:"Milestone number"`
}

// AddIssueCommentParams comment on an issue.
type AddIssueCommentParams struct {
	Owner       string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo        string `json:"repo" jsonschema:"Repository name" validate:"required"`
	IssueNumber int    `json:"issue_number" jsonschema:"Issue number" validate:"required,min=1"`
	Body        string `json:"body" jsonschema:"Comment body" validate:"required"`
}

// SearchIssuesParams search issues and pull requests.
type SearchIssuesParams struct {
	Query   string `json:"q" jsonschema:"Search query (GitHub search syntax)" validate:"required"`
	Sort    string `json:"sort,omitempty" jsonschema:"Sort field"`
	Order   string `json:"order,omitempty" jsonschema:"Sort order ('asc' or 'desc')" validate:"omitempty,oneof=asc desc"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// ListIssuesParams list issues in a repository.
type ListIssuesParams struct {
	Owner     string   `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo      string   `json:"repo" jsonschema:"Repository name" validate:"required"`
	State     string   `json:"state,omitempty" jsonschema:"Filter by state ('open', 'closed', or 'all')" validate:"omitempty,oneof=open closed all"`
	Labels    []string `json:"labels,omitempty" jsonschema:"Filter by labels"`
	Sort      string   `json:"sort,omitempty" jsonschema:"Sort field ('created', 'updated', or 'comments')" validate:"omitempty,oneof=created updated comments"`
	Direction string   `json:"direction,omitempty" jsonschema:"Sort direction ('asc' or 'desc')" validate:"omitempty,oneof=asc desc"`
	Since     string   `json:"since,omitempty" jsonschema:"Only issues updated at or after this RFC 3339 timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	PerPage   int      `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page      int      `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// GetIssueCommentsParams list comments on an issue.
type GetIssueCommentsParams struct {
	Owner       string `json:"owner" jsonschema:"Repository owner" validate:"required"`
	Repo        string `json:"repo" jsonschema:"Repository name" validate:"required"`
	IssueNumber int    `json:"issue_number" jsonschema:"Issue number" validate:"required,min=1"`
	PerPage     int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page        int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

func registerIssueTools(rt *runtime.Runtime, deps Deps) {
	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_issue",
		Description: "Retrieve a GitHub issue",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetIssueParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.GetIssue(ctx, p.Owner, p.Repo, p.IssueNumber)
		return deps.result("get_issue", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "create_issue",
		Description: "Create a new GitHub issue",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p CreateIssueParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.CreateIssue(ctx, p.Owner, p.Repo, githubapi.CreateIssueOptions{
			Title:     p.Title,
			Body:      p.Body,
			Assignees: p.Assignees,
			Labels:    p.Labels,
			Milestone: p.Milestone,
		})
		return deps.result("create_issue", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "list_issues",
		Description: "List GitHub issues in a repository",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p ListIssuesParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ListIssues(ctx, p.Owner, p.Repo, githubapi.ListIssuesOptions{
			State:       p.State,
			Labels:      p.Labels,
			Sort:        p.Sort,
			Direction:   p.Direction,
			Since:       p.Since,
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.result("list_issues", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "add_issue_comment",
		Description: "Add a comment to a GitHub issue",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p AddIssueCommentParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.CreateIssueComment(ctx, p.Owner, p.Repo, p.IssueNumber, p.Body)
		return deps.result("add_issue_comment", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "get_issue_comments",
		Description: "Get comments from a GitHub issue",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p GetIssueCommentsParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.ListIssueComments(ctx, p.Owner, p.Repo, p.IssueNumber,
			githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page})
		return deps.result("get_issue_comments", raw, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "search_issues",
		Description: "Search GitHub issues and pull requests",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p SearchIssuesParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		raw, err := deps.Client.SearchIssues(ctx, p.Query, githubapi.SearchOptions{
			Sort:        p.Sort,
			Order:       p.Order,
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.result("search_issues", raw, err)
	})
}
