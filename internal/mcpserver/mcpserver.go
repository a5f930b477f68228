// Package mcpserver exposes report summarization to agents over the Model
// Context Protocol.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/pkg/config"
)

// Server wraps the MCP server and registers all tally tools.
type Server struct {
	server *mcp.Server
	config *config.Config
	memory *cache.Memory
}

// NewServer creates a new MCP server with all tally tools registered.
// Decoded reports are kept in memory between tool calls.
func NewServer(version string, cfg *config.Config) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tally",
			Version: version,
		},
		nil,
	)

	// A cache that cannot be built only costs re-decoding.
	memory, _ := cache.NewMemory(cfg.Cache.MemoryEntries)

	s := &Server{server: server, config: cfg, memory: memory}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_reports",
		Description: describeSummarize(),
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_report_files",
		Description: describeFiles(),
	}, s.handleFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "report_coverage",
		Description: describeCoverage(),
	}, s.handleCoverage)
}
