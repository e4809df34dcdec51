// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package githubmcp provides an MCP (Model Context Protocol) server that
// exposes GitHub operations as tools.
//
// Each tool validates its input, issues a single GitHub REST API call (or a
// single local git push sequence), and returns the response JSON as text
// content. The server is stateless: nothing is cached, retried, or scheduled.
//
// The repository is organized into focused packages:
//
//   - runtime: Library-first MCP server runtime with stdio, HTTP, and SSE
//     transports, plus direct in-process tool invocation
//   - githubapi: Typed GitHub REST v3 client (repos, contents, search,
//     issues, pull requests)
//   - gitpush: Local repository staging, commit, and push via go-git
//   - tools: The tool definitions binding the two together
//
// # Quick Start
//
// Run the server as an MCP subprocess over stdio:
//
//	rt := runtime.New(&mcp.Implementation{
//	    Name:    "githubmcp",
//	    Version: "v1.0.0",
//	}, nil)
//
//	client := githubapi.New(githubapi.WithToken(os.Getenv("GITHUB_TOKEN")))
//	tools.Register(rt, tools.Deps{Client: client})
//
//	if err := rt.ServeStdio(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Or call tools directly in-process, without transport serialization:
//
//	result, err := rt.CallTool(ctx, "search_repositories", map[string]any{
//	    "q": "language:go mcp",
//	})
//
// For network deployments, ServeHTTP exposes the Streamable HTTP transport
// with optional OAuth 2.0 client-credentials protection and ngrok tunneling.
// Authentication to GitHub itself is always a token supplied by the
// environment; the OAuth layer only guards the MCP endpoint.
package githubmcp
