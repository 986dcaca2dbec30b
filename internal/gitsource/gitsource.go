package gitsource

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsGitURL reports whether a deck source string names a git repository
// rather than a local directory.
func IsGitURL(source string) bool {
	return strings.HasSuffix(source, ".git") ||
		strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://")
}

// Fetch makes the deck repository available at localPath: a clone when the
// path does not exist yet, a pull otherwise. Returns the local path the
// deck files can be read from.
func Fetch(url, localPath string) (string, error) {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Info("cloning deck repository", "url", url, "path", localPath)
		if _, err := git.PlainClone(localPath, false, &git.CloneOptions{URL: url}); err != nil {
			return "", fmt.Errorf("failed to clone deck repository %s: %w", url, err)
		}
	case err == nil:
		slog.Info("updating deck repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return "", fmt.Errorf("failed to open deck repository at %s: %w", localPath, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("failed to get worktree at %s: %w", localPath, err)
		}
		if err := worktree.Pull(&git.PullOptions{RemoteName: "origin"}); err != nil && err != git.NoErrAlreadyUpToDate {
			return "", fmt.Errorf("failed to pull deck repository at %s: %w", localPath, err)
		}
	default:
		return "", fmt.Errorf("error checking path %s: %w", localPath, err)
	}

	return localPath, nil
}
