package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/spf13/cobra"
)

const (
	cmdRevParse     = "rev-parse"
	cmdShowToplevel = "--show-toplevel"
	repoPath        = "/repo"
	prettyPrefix    = "--pretty=tformat:"
	errExpected     = "expected error"
	errContainsFmt  = "error = %q, want substring %q"
)

var errGitFailed = errors.New("git failed")

// mockRunner implements git.Runner with configurable closures for testing.
type mockRunner struct {
	run      func(args ...string) (string, error)
	runInDir func(dir string, args ...string) (string, error)
}

func (m *mockRunner) Run(args ...string) (string, error) {
	return m.run(args...)
}

func (m *mockRunner) RunInDir(dir string, args ...string) (string, error) {
	return m.runInDir(dir, args...)
}

// noopRun is a default run that returns empty output.
func noopRun(_ ...string) (string, error) {
	return "", nil
}

type testCommit struct {
	hash, subject, date, name, email string
}

var testCommits = []testCommit{
	{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "Add watch mode", "2024-05-02T12:00:00+00:00", "Ada", "ada@example.com"},
	{"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "Initial commit", "2024-05-01T12:00:00+00:00", "Grace", "grace@example.com"},
}

// logRunner answers rev-parse --show-toplevel with root and renders
// testCommits for git log. Every log invocation's dir and args are recorded.
type logRunner struct {
	root    string
	logErr  error
	logDir  string
	logArgs []string
}

func (l *logRunner) Run(args ...string) (string, error) {
	return l.RunInDir("", args...)
}

func (l *logRunner) RunInDir(dir string, args ...string) (string, error) {
	if len(args) >= 2 && args[0] == cmdRevParse && args[1] == cmdShowToplevel {
		return l.root + "\n", nil
	}
	if len(args) == 0 || args[0] != "log" {
		return "", nil
	}
	l.logDir = dir
	l.logArgs = args
	if l.logErr != nil {
		return "", l.logErr
	}

	var format string
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, prettyPrefix); ok {
			format = v
		}
	}

	var b strings.Builder
	for i, c := range testCommits {
		if format == "" {
			if i > 0 {
				b.WriteString(history.RecordDelim)
			}
			b.WriteString("commit " + c.hash + "\nAuthor: " + c.name + " <" + c.email + ">\n\n    " + c.subject + "\n")
			continue
		}
		values := map[string]string{"%H": c.hash, "%s": c.subject, "%ad": c.date, "%b": "", "%an": c.name, "%ae": c.email}
		var parts []string
		for p := range strings.SplitSeq(format, "%x1e%x1f") {
			parts = append(parts, values[p])
		}
		b.WriteString(strings.Join(parts, history.FieldDelim) + history.RecordDelim)
	}
	return b.String(), nil
}

// newTestCmd creates a cobra.Command with the --no-color flag set, a
// background context and a bytes.Buffer for output capture.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool(flagNoColor, true, "")
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

// newLogTestCmd creates a test command carrying the log flags and cfg.
func newLogTestCmd(cfg *config.Config) (*cobra.Command, *bytes.Buffer) {
	cmd, buf := newTestCmd()
	addLogFlags(cmd)
	if cfg != nil {
		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
	}
	return cmd, buf
}

// overrideNewRunner temporarily replaces the newRunner function for testing.
func overrideNewRunner(r git.Runner) func() {
	orig := newRunner
	newRunner = func() git.Runner { return r }
	return func() { newRunner = orig }
}
