package git

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner abstracts git command execution for testability.
type Runner interface {
	Run(args ...string) (string, error)
	RunInDir(dir string, args ...string) (string, error)
}

// ProcessError reports a git invocation that could not start or exited
// non-zero. Stderr holds the captured diagnostic output.
type ProcessError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("git %s", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ExecRunner is the production implementation of Runner.
// Stdout is returned untouched; callers decide how to split it.
type ExecRunner struct {
	// Dir is the working directory for git commands. If empty, uses the current directory.
	Dir string
	// Logger receives one debug record per invocation. Nil disables logging.
	Logger *slog.Logger
}

func (r *ExecRunner) Run(args ...string) (string, error) {
	return r.RunInDir(r.Dir, args...)
}

func (r *ExecRunner) RunInDir(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.Logger != nil {
		r.Logger.Debug("running git", "dir", dir, "args", args)
	}

	if err := cmd.Run(); err != nil {
		pe := &ProcessError{
			Args:     args,
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: -1,
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			pe.ExitCode = exitErr.ExitCode()
		}
		return "", pe
	}
	return stdout.String(), nil
}
