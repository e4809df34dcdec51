// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package tools defines the GitHub MCP tools.
//
// Every tool follows the same shape: validate the input, issue one call, and
// return the response JSON as text content. Validation failures and GitHub
// API failures are returned as error results on the tool call, not as
// protocol errors, so the calling model can see and react to them.
package tools

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/agentplexus/githubmcp/githubapi"
	"github.com/agentplexus/githubmcp/runtime"
)

// Deps are the collaborators shared by all tools.
type Deps struct {
	// Client is the GitHub API client.
	Client *githubapi.Client

	// Token is forwarded to git pushes over HTTPS remotes.
	Token string

	// Log receives per-call diagnostics. Nil falls back to the standard
	// logrus logger.
	Log *logrus.Logger
}

// Register registers every GitHub tool on the runtime.
func Register(rt *runtime.Runtime, deps Deps) {
	registerRepoTools(rt, deps)
	registerSearchTools(rt, deps)
	registerIssueTools(rt, deps)
	registerPullTools(rt, deps)
	registerPushTools(rt, deps)
}

func (d Deps) log() *logrus.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logrus.StandardLogger()
}

// result converts a client call outcome into a tool result. API failures
// become IsError results carrying the error text.
func (d Deps) result(tool string, raw json.RawMessage, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		d.log().WithField("tool", tool).WithError(err).Warn("github call failed")
		return errorResult(err), nil, nil
	}
	d.log().WithField("tool", tool).Debug("github call ok")
	return textResult(string(raw)), nil, nil
}

// marshalResult is like result for calls that return typed values.
func (d Deps) marshalResult(tool string, v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		d.log().WithField("tool", tool).WithError(err).Warn("github call failed")
		return errorResult(err), nil, nil
	}
	data, merr := json.Marshal(v)
	if merr != nil {
		return nil, nil, merr
	}
	d.log().WithField("tool", tool).Debug("github call ok")
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
	}
}
