package git

import (
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// WorktreeRoot returns the root of the git worktree containing path.
// It walks up parent directories looking for a .git entry.
func WorktreeRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}
