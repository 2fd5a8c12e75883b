package cmd

import (
	"io"
	"log/slog"

	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/lugassawan/gitlogjson/internal/output"
	"github.com/spf13/cobra"
)

const (
	flagNoColor = "no-color"
	flagVerbose = "verbose"
)

// logger is replaced in PersistentPreRunE once --verbose is known.
var logger = slog.New(slog.DiscardHandler)

// newRunner is a variable so tests can substitute a mock runner.
var newRunner = func() git.Runner {
	return &git.ExecRunner{Logger: logger}
}

// executedCmd is the command chosen by the last Execute call.
var executedCmd *cobra.Command

var rootCmd = &cobra.Command{
	Use:           "gitlogjson",
	Short:         "Git history as structured records",
	Long:          "gitlogjson runs git log with a delimiter-based format and turns its output into JSON, YAML or table records holding only the fields you ask for.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool(flagVerbose)
		logger = newLogger(cmd.ErrOrStderr(), verbose)

		// Skip config for Cobra internals (completion, __complete, help)
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Skip config if any command in the chain is annotated
		for c := cmd; c != nil; c = c.Parent() {
			if c.Annotations != nil && c.Annotations["skipConfig"] == "true" {
				return nil
			}
		}

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		r := newRunner()
		repoRoot, err := git.RepoRoot(r, dir)
		if err != nil {
			return err
		}

		cfg, err := config.Resolve(repoRoot)
		if err != nil {
			return err
		}
		logger.Debug("config resolved", "repo", repoRoot, "fields", cfg.Fields, "format", cfg.Format)
		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool(flagNoColor, false, "disable colored output")
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "log git invocations and watch events to stderr")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Execute() error {
	c, err := rootCmd.ExecuteC()
	executedCmd = c
	return err
}

// CommandName returns the name of the last executed command.
func CommandName() string {
	if executedCmd == nil {
		return rootCmd.Name()
	}
	return executedCmd.Name()
}

// IsJSONMode reports whether errors should be written as a JSON envelope.
func IsJSONMode() bool {
	return executedCmd != nil && output.IsJSON(executedCmd)
}
