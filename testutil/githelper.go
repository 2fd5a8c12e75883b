package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

// Author identity used for every fixture commit.
const (
	AuthorName  = "Test Author"
	AuthorEmail = "author@test.com"
)

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// NewTestRepo creates an empty temporary git repository with a fixed
// identity. The repo is cleaned up when the test finishes.
func NewTestRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	repo := filepath.Join(t.TempDir(), "test-repo")
	if err := os.MkdirAll(repo, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	GitCmd(t, repo, "init", "-b", "main")
	GitCmd(t, repo, "config", "user.email", AuthorEmail)
	GitCmd(t, repo, "config", "user.name", AuthorName)
	GitCmd(t, repo, "config", "commit.gpgsign", "false")
	return repo
}

// Commit writes a file unique to n and commits it with message. Commit
// dates advance with n so log order is deterministic.
func Commit(t *testing.T, dir string, n int, message string) {
	t.Helper()
	name := "file" + strconv.Itoa(n) + ".txt"
	CreateFile(t, dir, name, message+"\n")
	GitCmd(t, dir, "add", name)

	date := strconv.Itoa(1700000000+n*60) + " +0000"
	cmd := exec.Command("git", "commit", "--cleanup=verbatim", "-m", message)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit: %s: %v", out, err)
	}
}

// CreateFile creates a file in the given directory with the given content.
func CreateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// GitCmd runs a git command in the given directory.
func GitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %s: %v", args, out, err)
	}
	return string(out)
}
