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

// SearchRepositoriesParams search repositories by query.
type SearchRepositoriesParams struct {
	Query   string `json:"q" jsonschema:"Search query (GitHub search syntax)" validate:"required"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// SearchCodeParams search file contents by query.
type SearchCodeParams struct {
	Query   string `json:"q" jsonschema:"Search query (GitHub code search syntax)" validate:"required"`
	Sort    string `json:"sort,omitempty" jsonschema:"Sort field ('indexed' only)" validate:"omitempty,oneof=indexed"`
	Order   string `json:"order,omitempty" jsonschema:"Sort order ('asc' or 'desc')" validate:"omitempty,oneof=asc desc"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

// SearchUsersParams search users and organizations by query.
type SearchUsersParams struct {
	Query   string `json:"q" jsonschema:"Search query (GitHub search syntax)" validate:"required"`
	Sort    string `json:"sort,omitempty" jsonschema:"Sort field ('followers', 'repositories', or 'joined')" validate:"omitempty,oneof=followers repositories joined"`
	Order   string `json:"order,omitempty" jsonschema:"Sort order ('asc' or 'desc')" validate:"omitempty,oneof=asc desc"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (default 30, max 100)" validate:"omitempty,min=1,max=100"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number (default 1)" validate:"omitempty,min=1"`
}

func registerSearchTools(rt *runtime.Runtime, deps Deps) {
	runtime.AddTool(rt, &mcp.Tool{
		Name:        "search_repositories",
		Description: "Search GitHub repositories",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p SearchRepositoriesParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		res, err := deps.Client.SearchRepositories(ctx, p.Query, githubapi.SearchOptions{
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.marshalResult("search_repositories", res, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "search_code",
		Description: "Search file contents across GitHub repositories",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p SearchCodeParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		res, err := deps.Client.SearchCode(ctx, p.Query, githubapi.SearchOptions{
			Sort:        p.Sort,
			Order:       p.Order,
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.marshalResult("search_code", res, err)
	})

	runtime.AddTool(rt, &mcp.Tool{
		Name:        "search_users",
		Description: "Search GitHub users and organizations",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p SearchUsersParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		res, err := deps.Client.SearchUsers(ctx, p.Query, githubapi.SearchOptions{
			Sort:        p.Sort,
			Order:       p.Order,
			ListOptions: githubapi.ListOptions{PerPage: p.PerPage, Page: p.Page},
		})
		return deps.marshalResult("search_users", res, err)
	})
}
