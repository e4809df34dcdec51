// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentplexus/githubmcp/gitpush"
	"github.com/agentplexus/githubmcp/runtime"
)

// PushToGitHubParams push a local repository to a GitHub remote.
type PushToGitHubParams struct {
	RepoPath  string `json:"repo_path" jsonschema:"Full local path to the Git repository" validate:"required"`
	RemoteURL string `json:"remote_url" jsonschema:"GitHub repository URL to push to" validate:"required"`
	Branch    string `json:"branch" jsonschema:"Branch to push to (e.g., 'main')" validate:"required"`
	CommitMsg string `json:"commit_msg,omitempty" jsonschema:"Optional commit message. Defaults to 'Initial commit'"`
}

func registerPushTools(rt *runtime.Runtime, deps Deps) {
	runtime.AddTool(rt, &mcp.Tool{
		Name:        "push_to_github",
		Description: "Stage, commit, and push a local repository to a GitHub remote. Initializes the repository if needed.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, p PushToGitHubParams) (*mcp.CallToolResult, any, error) {
		if err := checkParams(p); err != nil {
			return errorResult(err), nil, nil
		}
		res, err := gitpush.Push(ctx, gitpush.PushOptions{
			RepoPath:      p.RepoPath,
			RemoteURL:     p.RemoteURL,
			Branch:        p.Branch,
			CommitMessage: p.CommitMsg,
			Token:         deps.Token,
		})
		if err != nil {
			deps.log().WithField("tool", "push_to_github").WithError(err).Warn("push failed")
			return errorResult(err), nil, nil
		}
		deps.log().WithField("tool", "push_to_github").WithField("branch", res.Branch).Debug("push ok")
		msg := fmt.Sprintf("Successfully pushed to %s on branch '%s' (commit %s).",
			res.RemoteURL, res.Branch, res.CommitSHA)
		return textResult(msg), nil, nil
	})
}
