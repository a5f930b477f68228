package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/internal/service/analysis"
	"github.com/panbanda/tally/pkg/analyzer/summary"
)

// AnalyzeInput is the base input for all tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Directories containing report files. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// SummarizeInput adds presentation options.
type SummarizeInput struct {
	AnalyzeInput
	ClassMetrics bool     `json:"class_metrics,omitempty" jsonschema:"Include the class families wmc, npm and npa."`
	Categories   []string `json:"categories,omitempty" jsonschema:"Only these metric families, by key (loc, cyclomatic, halstead, ...). Overrides class_metrics."`
	Precision    *int     `json:"precision,omitempty" jsonschema:"Decimals shown for float fields. Default 2."`
}

// FilesInput adds listing options.
type FilesInput struct {
	AnalyzeInput
	Sort string `json:"sort,omitempty" jsonschema:"Sort by: path, sloc, cyclomatic, cognitive, mi, or bugs. Default sloc."`
	Top  int    `json:"top,omitempty" jsonschema:"Show top N files. Default 20, negative lists all."`
}

// CoverageInput adds category selection.
type CoverageInput struct {
	AnalyzeInput
	ClassMetrics bool     `json:"class_metrics,omitempty" jsonschema:"Include the class families wmc, npm and npa."`
	Categories   []string `json:"categories,omitempty" jsonschema:"Only these metric families, by key (loc, cyclomatic, halstead, ...). Overrides class_metrics."`
}

const defaultTop = 20

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(input AnalyzeInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := output.Marshal(format, data)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) analyze(ctx context.Context, input AnalyzeInput) (*summary.Analysis, error) {
	svc := analysis.New(
		analysis.WithConfig(s.config),
		analysis.WithMemoryCache(s.memory),
	)
	return svc.AnalyzeDirectory(ctx, getPaths(input))
}

// options merges per-call category selection into the configured options.
func (s *Server) options(classMetrics bool, categories []string) (report.Options, error) {
	opts := report.OptionsFromConfig(s.config)
	opts.ClassMetrics = opts.ClassMetrics || classMetrics
	only, err := report.ParseCategories(categories)
	if err != nil {
		return opts, err
	}
	opts.Only = only
	return opts, nil
}

// handleSummarize renders the summary. A directory without reports is a
// valid, all-absent summary rather than an error.
func (s *Server) handleSummarize(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, any, error) {
	opts, err := s.options(input.ClassMetrics, input.Categories)
	if err != nil {
		return toolError(err.Error())
	}
	result, err := s.analyze(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	if input.Precision != nil {
		opts.Precision = *input.Precision
	}
	return toolResult(report.Summary(result, opts), getFormat(input.AnalyzeInput))
}

func (s *Server) handleFiles(ctx context.Context, req *mcp.CallToolRequest, input FilesInput) (*mcp.CallToolResult, any, error) {
	key := summary.SortBySloc
	if input.Sort != "" {
		k, ok := summary.ParseFileSortKey(input.Sort)
		if !ok {
			return toolError("unknown sort key " + input.Sort)
		}
		key = k
	}
	top := input.Top
	switch {
	case top == 0:
		top = defaultTop
	case top < 0:
		top = 0
	}

	result, err := s.analyze(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report.Files(result, key, top, report.OptionsFromConfig(s.config)), getFormat(input.AnalyzeInput))
}

func (s *Server) handleCoverage(ctx context.Context, req *mcp.CallToolRequest, input CoverageInput) (*mcp.CallToolResult, any, error) {
	opts, err := s.options(input.ClassMetrics, input.Categories)
	if err != nil {
		return toolError(err.Error())
	}
	result, err := s.analyze(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report.Coverage(result, opts), getFormat(input.AnalyzeInput))
}
