package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with all gitlogjson tools registered.
func NewServer(hctx *HandlerContext) *server.MCPServer {
	s := server.NewMCPServer("gitlogjson", hctx.Version,
		server.WithToolCapabilities(false),
	)

	registerLogTool(s, hctx)

	return s
}
