package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/filegate/filegate/internal/application"
)

// NewFilegateMCPServer creates an MCP server exposing validation, schema
// lint and rule listing as tools, plus the rule registry and run history as
// resources.
func NewFilegateMCPServer(validate *application.ValidateService, schemas *application.SchemaService) *server.MCPServer {
	s := server.NewMCPServer(
		"filegate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, validate, schemas)
	registerResources(s, validate, schemas)

	return s
}
