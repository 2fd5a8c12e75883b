package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

const cmdRevParse = "rev-parse"

// RepoRoot returns the absolute path to the root of the repository containing dir.
func RepoRoot(r Runner, dir string) (string, error) {
	out, err := r.RunInDir(dir, cmdRevParse, "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute path to the git directory of the repository
// containing dir. For linked worktrees this is the per-worktree directory.
func GitDir(r Runner, dir string) (string, error) {
	out, err := r.RunInDir(dir, cmdRevParse, "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CommonDir returns the git directory shared by all worktrees (where refs/
// and packed-refs live). --git-common-dir may be relative to dir.
func CommonDir(r Runner, dir string) (string, error) {
	out, err := r.RunInDir(dir, cmdRevParse, "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	common := strings.TrimSpace(out)
	if !filepath.IsAbs(common) {
		common = filepath.Join(dir, common)
	}
	abs, err := filepath.Abs(common)
	if err != nil {
		return "", fmt.Errorf("resolve git common dir: %w", err)
	}
	return abs, nil
}
