package cmd

import (
	"fmt"
	"os"

	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
	mcppkg "github.com/lugassawan/gitlogjson/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Starts a Model Context Protocol (MCP) server over stdio exposing the git_log
tool. Relative paths in tool calls resolve against the working directory the
server was started in.

To configure in Claude Code, add to .claude/settings.json:
  {"mcpServers": {"gitlogjson": {"command": "gitlogjson", "args": ["mcp"]}}}`,
	Annotations: map[string]string{"skipConfig": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		hctx, err := newHandlerContext(newRunner())
		if err != nil {
			return err
		}
		s := mcppkg.NewServer(hctx)
		return server.ServeStdio(s)
	},
}

// newHandlerContext builds the MCP handler context for the working
// directory. Outside a repository the server still starts with defaults.
func newHandlerContext(r git.Runner) (*mcppkg.HandlerContext, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := config.DefaultConfig()
	if repoRoot, err := git.RepoRoot(r, wd); err == nil {
		loaded, err := config.Resolve(repoRoot)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		logger.Debug("mcp server started outside a repository", "dir", wd, "err", err)
	}

	return &mcppkg.HandlerContext{
		Runner:  r,
		Config:  cfg,
		WorkDir: wd,
		Version: version,
	}, nil
}
