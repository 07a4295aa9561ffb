package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/filegate/filegate/internal/application"
)

// registerResources registers all filegate MCP resources on the given server.
func registerResources(s *server.MCPServer, validate *application.ValidateService, schemas *application.SchemaService) {
	// 1. filegate://rules - registered rule kinds
	s.AddResource(
		mcplib.NewResource(
			"filegate://rules",
			"Rule Kinds",
			mcplib.WithResourceDescription("Rule kinds a schema may declare under validations"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(schemas),
	)

	// 2. filegate://history/{dir} - runs recorded in a directory (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"filegate://history/{dir}",
			"Run History",
			mcplib.WithTemplateDescription("Validation runs recorded in a directory; dir is URL-escaped"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleHistoryResource(validate),
	)
}

func handleRulesResource(schemas *application.SchemaService) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(request.Params.URI, schemas.Registry().Kinds())
	}
}

func handleHistoryResource(validate *application.ValidateService) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Populated by template matching
		raw, ok := request.Params.Arguments["dir"].(string)
		if !ok || raw == "" {
			return nil, fmt.Errorf("dir is required")
		}
		dir, err := url.PathUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding dir: %w", err)
		}

		entries, err := validate.History(dir)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return jsonContents(request.Params.URI, entries)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
