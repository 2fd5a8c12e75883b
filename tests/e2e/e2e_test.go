package e2e_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lugassawan/gitlogjson/testutil"
)

const (
	skipE2E    = "skipping e2e test"
	configFile = ".gitlogjson.toml"

	// Flags reused across tests.
	flagFormat = "--format"
	flagLimit  = "--limit"
	flagForce  = "--force"
)

var (
	binaryPath string
	coverDir   string
)

func TestMain(m *testing.M) {
	// Find the project root (two levels up from tests/e2e/)
	projRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve project root: %v\n", err)
		os.Exit(1)
	}

	// Create a temp directory for the binary
	binDir, err := os.MkdirTemp("", "gitlogjson-e2e-bin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binaryPath = filepath.Join(binDir, "gitlogjson")

	// Create coverage directory
	coverDir, err = os.MkdirTemp("", "gitlogjson-e2e-cover-*")
	if err != nil {
		os.RemoveAll(binDir)
		fmt.Fprintf(os.Stderr, "failed to create cover dir: %v\n", err)
		os.Exit(1)
	}

	// Build the binary with coverage instrumentation
	build := exec.Command("go", "build", "-cover", "-o", binaryPath, ".")
	build.Dir = projRoot
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build gitlogjson binary:\n%s\n%v\n", out, err)
		os.Exit(1)
	}

	code := m.Run()

	// Merge coverage data
	coverOut := filepath.Join(projRoot, "coverage-e2e.out")
	merge := exec.Command("go", "tool", "covdata", "textfmt", "-i="+coverDir, "-o="+coverOut)
	if out, err := merge.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "coverage merge (non-fatal): %s: %v\n", out, err)
	} else {
		fmt.Fprintf(os.Stdout, "E2E coverage written to %s\n", coverOut)
	}

	os.RemoveAll(binDir)
	os.RemoveAll(coverDir)
	os.Exit(code)
}

// result holds the captured output and exit code from a command invocation.
type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// gitlogjson runs the compiled binary with the given arguments in the specified directory.
func gitlogjson(t *testing.T, dir string, args ...string) result {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOCOVERDIR="+coverDir, "NO_COLOR=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	r := result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.ExitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run gitlogjson: %v", err)
		}
	}

	return r
}

// gitlogjsonSuccess runs the binary and fails the test if the exit code is not 0.
func gitlogjsonSuccess(t *testing.T, dir string, args ...string) result {
	t.Helper()
	r := gitlogjson(t, dir, args...)
	if r.ExitCode != 0 {
		t.Fatalf("gitlogjson %v: expected exit 0, got %d\nstdout: %s\nstderr: %s",
			args, r.ExitCode, r.Stdout, r.Stderr)
	}
	return r
}

// gitlogjsonFail runs the binary and fails the test if the exit code is 0.
func gitlogjsonFail(t *testing.T, dir string, args ...string) result {
	t.Helper()
	r := gitlogjson(t, dir, args...)
	if r.ExitCode == 0 {
		t.Fatalf("gitlogjson %v: expected non-zero exit, got 0\nstdout: %s\nstderr: %s",
			args, r.Stdout, r.Stderr)
	}
	return r
}

// setupRepo creates a temp git repository holding three commits:
// "third" (newest), "second" with a body, and "first".
func setupRepo(t *testing.T) string {
	t.Helper()
	repo := testutil.NewTestRepo(t)
	testutil.Commit(t, repo, 1, "first")
	testutil.Commit(t, repo, 2, "second\n\nline one\nline two")
	testutil.Commit(t, repo, 3, "third")
	return repo
}

// assertContains fails the test if s does not contain substr.
func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}

// assertNotContains fails the test if s contains substr.
func assertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("expected output NOT to contain %q, got:\n%s", substr, s)
	}
}
