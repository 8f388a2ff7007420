package openapi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git-backed loading.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// LoadFromGit reads the document at path as committed at revision rev.
// repoDir may be any directory inside the repository; an empty repoDir
// means the current working directory. path is resolved relative to the
// current working directory and must lie inside the repository.
func LoadFromGit(repoDir, rev, path string) (*Document, error) {
	source := rev + ":" + path

	data, err := readGitFile(repoDir, rev, path)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return LoadBytes(source, data)
}

func readGitFile(repoDir, rev, path string) ([]byte, error) {
	repo, root, err := openRepo(repoDir)
	if err != nil {
		return nil, err
	}

	relPath, err := repoRelativePath(root, path)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	logDebug("[git] %s resolved to %s", rev, hash)

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}

	file, err := commit.File(relPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", relPath, rev, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading contents of %s at %s: %w", relPath, rev, err)
	}
	return []byte(contents), nil
}

// openRepo opens the git repository containing dir and returns it along
// with the worktree root.
func openRepo(dir string) (*git.Repository, string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", dir)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", fmt.Errorf("getting worktree: %w", err)
	}

	return repo, worktree.Filesystem.Root(), nil
}

// repoRelativePath converts path to a slash-separated path relative to root.
func repoRelativePath(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	// Resolve symlinks on both sides so temp dirs like /var → /private/var match.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("%s is not inside repository %s: %w", path, root, err)
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("%s is outside repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
