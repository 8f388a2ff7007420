// Package testutil provides test helpers shared across oasnotes packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepo initializes a git repository in dir.
func InitRepo(t *testing.T, dir string) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initializing repository: %v", err)
	}
	return repo
}

// CommitFile writes content to name inside dir and commits it to repo.
func CommitFile(t *testing.T, repo *git.Repository, dir, name, content, message string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	CommitPaths(t, repo, message, name)
}

// CommitPaths stages the given repo-relative paths as they are on disk and commits.
func CommitPaths(t *testing.T, repo *git.Repository, message string, paths ...string) {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			t.Fatalf("staging %s: %v", p, err)
		}
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Release Bot",
			Email: "release@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("committing: %v", err)
	}
}

// TagHead creates a lightweight tag at HEAD.
func TagHead(t *testing.T, repo *git.Repository, name string) {
	t.Helper()

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("resolving HEAD: %v", err)
	}
	if _, err := repo.CreateTag(name, head.Hash(), nil); err != nil {
		t.Fatalf("tagging %s: %v", name, err)
	}
}
