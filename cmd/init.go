package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/spf13/cobra"
)

const flagForce = "force"

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP(flagForce, "f", false, "Overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "Write a default .gitlogjson.toml at the repository root",
	Long:        "Detects the repository root of path (default: current directory) and writes a .gitlogjson.toml holding the default fields, limit, date format and output format.",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"skipConfig": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		repoRoot, err := git.RepoRoot(newRunner(), dir)
		if err != nil {
			return err
		}

		configPath := filepath.Join(repoRoot, config.FileName)
		force, _ := cmd.Flags().GetBool(flagForce)
		_, statErr := os.Stat(configPath)
		exists := statErr == nil
		if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("failed to check config: %w", statErr)
		}
		if exists && !force {
			return fmt.Errorf("config %s already exists (use --force to overwrite)", configPath)
		}

		cfg := config.DefaultConfig()
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exists {
			fmt.Fprintf(out, "Overwrote config in %s\n", repoRoot)
		} else {
			fmt.Fprintf(out, "Initialized gitlogjson in %s\n", repoRoot)
		}
		fmt.Fprintf(out, "  Config: %s\n", configPath)
		fmt.Fprintf(out, "  Fields: %v\n", cfg.Fields)
		fmt.Fprintf(out, "  Format: %s\n", cfg.Format)
		return nil
	},
}
