package main

import (
	"fmt"

	"github.com/panbanda/tally/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes tally's summaries
as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "tally": {
        "command": "tally",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - summarize_reports    Project-wide summary of metric reports
  - list_report_files    Per-file headline metrics with distribution
  - report_coverage      Which reports lacked each metric family`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP registry server.json manifest",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version, rc.cfg)
	return server.Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
