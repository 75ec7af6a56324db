package main

import (
	"github.com/phrazzld/mathsheet/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve worksheet tools over the Model Context Protocol on stdio",
		Long: `Starts an MCP server on stdin/stdout with the tools:
  ping                 connectivity check
  generate_worksheet   returns a worksheet LaTeX document (or JSON)

Logs go to stderr so they do not interfere with the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(c.config, c.logger)
			if err != nil {
				return err
			}

			app.logger.Info("Starting MCP server", "version", Version)
			return mcpserver.New(app.worksheetService, app.config.Worksheet, Version, app.logger).ServeStdio()
		},
	}

	addWorksheetFlags(cmd.Flags())

	return cmd
}
