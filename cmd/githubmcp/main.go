// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command githubmcp runs the GitHub MCP server.
//
// With no arguments it serves MCP over stdio, the standard deployment as a
// subprocess of an MCP host. The serve subcommand exposes the Streamable
// HTTP transport instead.
package main

import (
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agentplexus/githubmcp/githubapi"
	"github.com/agentplexus/githubmcp/internal/config"
	"github.com/agentplexus/githubmcp/runtime"
	"github.com/agentplexus/githubmcp/tools"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "githubmcp",
		Short: "GitHub MCP server",
		Long: "githubmcp exposes GitHub operations (repositories, search, issues,\n" +
			"pull requests, local pushes) as MCP tools.\n\n" +
			"Without a subcommand it serves MCP over stdio. Authentication uses the\n" +
			"GITHUB_TOKEN environment variable.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStdio,
	}
	cmd.AddCommand(newServeCmd(), newPushCmd(), newVersionCmd())
	return cmd
}

// newRuntime wires config, client, and tools into a ready-to-serve runtime.
func newRuntime() (*runtime.Runtime, *config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := config.NewLogger(cfg)

	if cfg.Token == "" {
		log.Warn("no GitHub token configured; requests will be unauthenticated and heavily rate limited")
	}

	client := githubapi.New(
		githubapi.WithToken(cfg.Token),
		githubapi.WithBaseURL(cfg.APIBaseURL),
		githubapi.WithTimeout(cfg.Timeout),
		githubapi.WithUserAgent(cfg.UserAgent+"/"+version),
	)

	rt := runtime.New(&mcp.Implementation{
		Name:    "githubmcp",
		Version: version,
	}, nil)
	tools.Register(rt, tools.Deps{Client: client, Token: cfg.Token, Log: log})

	return rt, cfg, log, nil
}

func runStdio(cmd *cobra.Command, args []string) error {
	rt, _, log, err := newRuntime()
	if err != nil {
		return err
	}
	log.WithField("tools", len(rt.Tools())).Info("serving MCP over stdio")
	return rt.ServeStdio(cmd.Context())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "githubmcp", version)
		},
	}
}
