package cli

import (
	mcpadapter "github.com/inbar-marom/botverify/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the botverify MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		storePath   string
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the botverify MCP server (stdio)",
		Long:  "Start the botverify MCP server using stdio transport. This lets AI assistants verify submissions, query the registry and upload archives.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewBotverifyMCPServer(storePath, registryURL)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&storePath, "store", defaultStorePath, "Path to the submission store file")
	cmd.Flags().StringVar(&registryURL, "registry", "", "Registry base URL (defaults to the configured registry)")

	return cmd
}
