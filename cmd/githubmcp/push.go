// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/agentplexus/githubmcp/gitpush"
	"github.com/agentplexus/githubmcp/internal/config"
)

func newPushCmd() *cobra.Command {
	var (
		message string
		remote  string
		branch  string
	)

	cmd := &cobra.Command{
		Use:   "push [path]",
		Short: "Stage, commit, and push a local repository",
		Long: "Push stages all changes in the repository at path (default \".\"),\n" +
			"commits them, and pushes to the named remote. The same operation is\n" +
			"available as the push_to_github MCP tool.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg)

			repoPath := "."
			if len(args) == 1 {
				repoPath = args[0]
			}

			res, err := gitpush.CommitAndPush(cmd.Context(), gitpush.CommitOptions{
				RepoPath: repoPath,
				Message:  message,
				Remote:   remote,
				Branch:   branch,
				Token:    cfg.Token,
			})
			if err != nil {
				return err
			}

			entry := log.WithField("branch", res.Branch)
			if res.Committed {
				entry = entry.WithField("commit", res.CommitSHA)
			}
			entry.Info("pushed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&remote, "remote", "origin", "remote to push to")
	cmd.Flags().StringVar(&branch, "branch", "", "branch to push (default: current branch)")

	return cmd
}
