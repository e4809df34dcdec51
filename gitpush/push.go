// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package gitpush stages, commits, and pushes local repositories with go-git.
//
// This is the one tool surface that does not call the GitHub REST API: it
// operates on a repository on the local filesystem and pushes it to a remote
// over git's own transport.
package gitpush

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	defaultBranch  = "main"
	defaultMessage = "Initial commit"
	defaultRemote  = "origin"
)

// PushOptions configure [Push].
type PushOptions struct {
	// RepoPath is the local path of the repository. The path must exist;
	// if it is not yet a git repository it is initialized.
	RepoPath string

	// RemoteURL is the remote to push to. The origin remote is created or
	// repointed to this URL.
	RemoteURL string

	// Branch is the branch to push. The current branch is renamed to it.
	// Defaults to "main".
	Branch string

	// CommitMessage is used when a commit is needed.
	// Defaults to "Initial commit".
	CommitMessage string

	// Token authenticates HTTPS remotes. Ignored for other transports.
	Token string
}

// CommitOptions configure [CommitAndPush].
type CommitOptions struct {
	// RepoPath is the local path of an existing git repository.
	RepoPath string

	// Message is the commit message.
	Message string

	// Remote is the remote name to push to. Defaults to "origin".
	Remote string

	// Branch is the branch to push. Defaults to the current branch.
	Branch string

	// Token authenticates HTTPS remotes. Ignored for other transports.
	Token string
}

// Result describes a completed push.
type Result struct {
	// Branch is the branch that was pushed.
	Branch string

	// RemoteURL is the first URL of the remote that was pushed to.
	RemoteURL string

	// CommitSHA is the commit at the branch head.
	CommitSHA string

	// Committed reports whether a new commit was created.
	Committed bool
}

// Push stages all changes in opts.RepoPath, commits them if needed, ensures
// the branch name and origin remote, and pushes the branch to
// opts.RemoteURL. A path that is not yet a repository is initialized first.
func Push(ctx context.Context, opts PushOptions) (*Result, error) {
	if _, err := os.Stat(opts.RepoPath); err != nil {
		return nil, fmt.Errorf("repo path %s: %w", opts.RepoPath, err)
	}

	branch := opts.Branch
	if branch == "" {
		branch = defaultBranch
	}
	message := opts.CommitMessage
	if message == "" {
		message = defaultMessage
	}

	repo, err := git.PlainOpen(opts.RepoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(opts.RepoPath, false)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	committed, err := stageAndCommit(repo, message)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	// Equivalent of `git branch -M <branch>`.
	target := plumbing.NewBranchReferenceName(branch)
	if head.Name() != target {
		if err := repo.Storer.SetReference(plumbing.NewHashReference(target, head.Hash())); err != nil {
			return nil, fmt.Errorf("renaming branch: %w", err)
		}
		if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, target)); err != nil {
			return nil, fmt.Errorf("updating HEAD: %w", err)
		}
		if err := repo.Storer.RemoveReference(head.Name()); err != nil {
			return nil, fmt.Errorf("removing old branch: %w", err)
		}
	}

	if err := ensureRemote(repo, defaultRemote, opts.RemoteURL); err != nil {
		return nil, err
	}

	if err := push(ctx, repo, defaultRemote, branch, opts.RemoteURL, opts.Token); err != nil {
		return nil, err
	}

	return &Result{
		Branch:    branch,
		RemoteURL: opts.RemoteURL,
		CommitSHA: head.Hash().String(),
		Committed: committed,
	}, nil
}

// CommitAndPush stages all changes in an existing repository, commits them,
// and pushes the branch to the named remote.
func CommitAndPush(ctx context.Context, opts CommitOptions) (*Result, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	remoteName := opts.Remote
	if remoteName == "" {
		remoteName = defaultRemote
	}
	message := opts.Message
	if message == "" {
		message = defaultMessage
	}

	committed, err := stageAndCommit(repo, message)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	branch := opts.Branch
	if branch == "" {
		branch = head.Name().Short()
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return nil, fmt.Errorf("remote %s: %w", remoteName, err)
	}
	remoteURL := ""
	if urls := remote.Config().URLs; len(urls) > 0 {
		remoteURL = urls[0]
	}

	if err := push(ctx, repo, remoteName, branch, remoteURL, opts.Token); err != nil {
		return nil, err
	}

	return &Result{
		Branch:    branch,
		RemoteURL: remoteURL,
		CommitSHA: head.Hash().String(),
		Committed: committed,
	}, nil
}

// stageAndCommit stages everything and commits when the worktree is dirty or
// HEAD is unborn. It reports whether a commit was created.
func stageAndCommit(repo *git.Repository, message string) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("staging changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}

	_, headErr := repo.Head()
	unborn := errors.Is(headErr, plumbing.ErrReferenceNotFound)
	if headErr != nil && !unborn {
		return false, fmt.Errorf("resolving HEAD: %w", headErr)
	}

	if status.IsClean() && !unborn {
		return false, nil
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "githubmcp",
			Email: "githubmcp@localhost",
			When:  time.Now(),
		},
		AllowEmptyCommits: unborn,
	})
	if err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return true, nil
}

// ensureRemote creates the named remote, repointing it when it already
// exists with a different URL.
func ensureRemote(repo *git.Repository, name, url string) error {
	remote, err := repo.Remote(name)
	switch {
	case errors.Is(err, git.ErrRemoteNotFound):
		// Created below.
	case err != nil:
		return fmt.Errorf("remote %s: %w", name, err)
	default:
		urls := remote.Config().URLs
		if len(urls) > 0 && urls[0] == url {
			return nil
		}
		if err := repo.DeleteRemote(name); err != nil {
			return fmt.Errorf("repointing remote %s: %w", name, err)
		}
	}

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("creating remote %s: %w", name, err)
	}
	return nil
}

func push(ctx context.Context, repo *git.Repository, remote, branch, remoteURL, token string) error {
	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))

	var auth transport.AuthMethod
	if token != "" && strings.HasPrefix(remoteURL, "http") {
		// GitHub accepts any username with a token as the password.
		auth = &githttp.BasicAuth{Username: "git", Password: token}
	}

	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
		Auth:       auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing %s to %s: %w", branch, remote, err)
	}
	return nil
}
