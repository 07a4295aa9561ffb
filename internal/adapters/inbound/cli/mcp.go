package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/filegate/filegate/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the filegate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start filegate MCP server (stdio)",
		Long:  "Start the filegate MCP server using stdio transport. This lets AI assistants validate data files, lint schemas and read run history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(cmd, o)
			if err != nil {
				return err
			}
			defer func() { _ = svc.log.Sync() }()

			svc.log.Infow("mcp server starting", "transport", "stdio")
			return server.ServeStdio(mcpadapter.NewFilegateMCPServer(svc.validate, svc.schemas))
		},
	}

	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "Do not record runs")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "Rebuild schemas instead of using the cache")

	return cmd
}
