package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/filegate/filegate/internal/application"
	"github.com/filegate/filegate/internal/domain"
)

// registerTools registers all filegate MCP tools on the given server.
func registerTools(s *server.MCPServer, validate *application.ValidateService, schemas *application.SchemaService) {
	// 1. filegate_validate
	s.AddTool(
		mcplib.NewTool("filegate_validate",
			mcplib.WithDescription("Validate a delimited data file against a YAML schema and return the report as JSON"),
			mcplib.WithString("data_file",
				mcplib.Required(),
				mcplib.Description("Path to the data file"),
			),
			mcplib.WithString("schema",
				mcplib.Required(),
				mcplib.Description("Path to the YAML schema"),
			),
		),
		handleValidate(validate),
	)

	// 2. filegate_lint_schema
	s.AddTool(
		mcplib.NewTool("filegate_lint_schema",
			mcplib.WithDescription("Check a YAML schema without any data and list its configuration issues"),
			mcplib.WithString("schema",
				mcplib.Required(),
				mcplib.Description("Path to the YAML schema"),
			),
		),
		handleLint(schemas),
	)

	// 3. filegate_list_rules
	s.AddTool(
		mcplib.NewTool("filegate_list_rules",
			mcplib.WithDescription("List the rule kinds a schema may declare under validations"),
		),
		handleListRules(schemas),
	)
}

func handleValidate(validate *application.ValidateService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dataFile, err := request.RequireString("data_file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		schema, err := request.RequireString("schema")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := validate.ValidateFile(ctx, dataFile, schema)
		if err != nil {
			var ce *domain.ConfigurationError
			if errors.As(err, &ce) {
				return jsonErrorResult(ce)
			}
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleLint(schemas *application.SchemaService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		schema, err := request.RequireString("schema")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := schemas.Lint(schema)
		if err != nil {
			return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleListRules(schemas *application.SchemaService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(schemas.Registry().Kinds())
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// jsonErrorResult is jsonResult flagged as an error, for structured failures
// such as schema issues.
func jsonErrorResult(v any) (*mcplib.CallToolResult, error) {
	res, err := jsonResult(v)
	if err != nil {
		return nil, err
	}
	res.IsError = true
	return res, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
