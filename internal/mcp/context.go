package mcp

import (
	"github.com/lugassawan/gitlogjson/internal/config"
	"github.com/lugassawan/gitlogjson/internal/git"
)

// HandlerContext holds shared dependencies for MCP tool handlers.
// Created once in cmd/mcp.go, captured by handler closures.
type HandlerContext struct {
	Runner  git.Runner
	Config  *config.Config // date format when the tool call gives none
	WorkDir string         // base for relative path arguments
	Version string
}
