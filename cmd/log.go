package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/lugassawan/gitlogjson/internal/output"
	"github.com/lugassawan/gitlogjson/internal/termcolor"
	"github.com/lugassawan/gitlogjson/internal/watch"
	"github.com/spf13/cobra"
)

const (
	flagPretty     = "pretty"
	flagLimit      = "limit"
	flagFields     = "fields"
	flagDateFormat = "date-format"
	flagFormat     = "format"
	flagWatch      = "watch"
)

var fieldUsage = map[history.Field]string{
	history.FieldHash:        "Include the full commit hash",
	history.FieldSubject:     "Include the subject line",
	history.FieldDate:        "Include the author date",
	history.FieldBody:        "Include the message body",
	history.FieldAuthorName:  "Include author.name",
	history.FieldAuthorEmail: "Include author.email",
}

func init() {
	addLogFlags(logCmd)
	rootCmd.AddCommand(logCmd)
}

// addLogFlags registers the log flags on cmd. One boolean flag per field,
// named after the field.
func addLogFlags(cmd *cobra.Command) {
	for _, f := range history.FieldOrder {
		cmd.Flags().Bool(f.String(), false, fieldUsage[f])
	}
	cmd.Flags().Bool(flagPretty, false, "Print git's native log text per commit when no field is selected")
	cmd.Flags().Int(flagLimit, 0, "Maximum number of commits, most recent first (0 = all)")
	cmd.Flags().StringSlice(flagFields, nil, "Comma-separated fields to include (e.g. hash,subject,author-name)")
	cmd.Flags().String(flagDateFormat, "", "git --date format (default from config, iso-strict)")
	cmd.Flags().StringP(flagFormat, "o", "", "Output format: json, yaml or table (default from config, json)")
	cmd.Flags().BoolP(flagWatch, "w", false, "Print again whenever HEAD or refs change")

	_ = cmd.RegisterFlagCompletionFunc(flagFields, completeFieldNames)
	_ = cmd.RegisterFlagCompletionFunc(flagFormat, completeFormats)
}

var logCmd = &cobra.Command{
	Use:   "log [path]",
	Short: "Print commit history as structured records",
	Long: `Runs git log in path (default: current directory) and prints one record per
commit, newest first. Each record holds only the selected fields; author name
and email are nested under "author".

With no field selected, the fields from .gitlogjson.toml are used. With
--pretty and no field flag, git's native text for each commit is printed.`,
	Example: `  gitlogjson log --hash --subject --limit 5
  gitlogjson log --fields hash,author-name,author-email -o yaml
  gitlogjson log --pretty ../other-repo`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		cfg := config.FromContext(commandContext(cmd))
		opts, err := logOptions(cmd, cfg)
		if err != nil {
			return err
		}
		format, err := logFormat(cmd, cfg)
		if err != nil {
			return err
		}
		// Record the resolved format so error output matches it.
		_ = cmd.Flags().Set(flagFormat, string(format))

		noColor, _ := cmd.Flags().GetBool(flagNoColor)
		p := termcolor.NewPainter(cmd.OutOrStdout(), noColor)
		r := newRunner()

		show := func() error {
			return printLog(cmd.OutOrStdout(), r, path, opts, format, p)
		}
		if err := show(); err != nil {
			return err
		}

		if w, _ := cmd.Flags().GetBool(flagWatch); !w {
			return nil
		}
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchLog(ctx, r, path, show)
	},
}

// logOptions merges the field flags and --fields over the config. Config
// fields apply only when neither a field nor --pretty was given.
func logOptions(cmd *cobra.Command, cfg *config.Config) (history.Options, error) {
	var opts history.Options
	for _, f := range history.FieldOrder {
		if on, _ := cmd.Flags().GetBool(f.String()); on {
			opts.Select(f)
		}
	}

	names, _ := cmd.Flags().GetStringSlice(flagFields)
	named, err := history.ParseFieldNames(names)
	if err != nil {
		return opts, err
	}
	for _, f := range named.Fields() {
		opts.Select(f)
	}

	opts.Pretty, _ = cmd.Flags().GetBool(flagPretty)
	defaults := cfg.Options()
	if opts.Passthrough() && !opts.Pretty {
		for _, f := range defaults.Fields() {
			opts.Select(f)
		}
	}

	opts.Limit = defaults.Limit
	if cmd.Flags().Changed(flagLimit) {
		opts.Limit, _ = cmd.Flags().GetInt(flagLimit)
	}
	opts.DateFormat = defaults.DateFormat
	if cmd.Flags().Changed(flagDateFormat) {
		opts.DateFormat, _ = cmd.Flags().GetString(flagDateFormat)
	}

	return opts, opts.Validate()
}

// logFormat returns --format when set, else the configured format.
func logFormat(cmd *cobra.Command, cfg *config.Config) (output.Format, error) {
	name, _ := cmd.Flags().GetString(flagFormat)
	if name == "" {
		name = cfg.Format
	}
	return output.ParseFormat(name)
}

func printLog(w io.Writer, r git.Runner, path string, opts history.Options, format output.Format, p *termcolor.Painter) error {
	res, err := history.Compute(r, path, opts)
	if err != nil {
		return err
	}
	logger.Debug("history computed", "path", path, "commits", res.Len(), "passthrough", res.Passthrough())
	return output.Render(w, res, format, p)
}

// watchLog calls show after every debounced change to the repository's
// git metadata until ctx is done. Failures while watching are logged and
// the previous output stays on screen.
func watchLog(ctx context.Context, r git.Runner, path string, show func() error) error {
	gitDir, err := git.GitDir(r, path)
	if err != nil {
		return err
	}
	commonDir, err := git.CommonDir(r, path)
	if err != nil {
		return err
	}

	w, err := watch.New(gitDir, commonDir, watch.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", gitDir, err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	logger.Debug("watching", "git_dir", gitDir, "common_dir", commonDir)

	for {
		select {
		case <-ctx.Done():
			return <-done
		case <-w.Changes():
			if err := show(); err != nil {
				logger.Error("refresh failed", "err", err)
			}
		}
	}
}

// commandContext returns cmd's context, or Background when the command was
// not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
