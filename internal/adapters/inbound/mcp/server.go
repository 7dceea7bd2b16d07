package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewBotverifyMCPServer creates a new MCP server with all botverify tools
// registered. storePath is the submission store file; registryURL is the
// tournament registry base URL (the configured default is used when empty).
func NewBotverifyMCPServer(storePath, registryURL string) *server.MCPServer {
	s := server.NewMCPServer(
		"botverify",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, storePath, registryURL)

	return s
}
