package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	return NewServer("1.0.0-test", cfg)
}

func writeReports(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"name":"a.rs","kind":"unit","metrics":{"loc":{"sloc":10},"cyclomatic":{"sum":4,"average":2,"min":1,"max":3}}}`,
		"b.json": `{"name":"b.rs","kind":"unit","metrics":{"loc":{"sloc":20}}}`,
		"c.json": `{"name":"c.rs","kind":"unit","metrics":{"loc":{"sloc":30},"mi":{"mi_visual_studio":40}}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServerCreation(t *testing.T) {
	s := NewServer("", nil)
	require.NotNil(t, s)
	require.NotNil(t, s.server)
	assert.NotNil(t, s.memory)
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"summarize": describeSummarize,
		"files":     describeFiles,
		"coverage":  describeCoverage,
	}
	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			assert.Contains(t, desc, "USE WHEN:")
			assert.Contains(t, desc, "INTERPRETING RESULTS:")
			assert.Contains(t, desc, "METRICS RETURNED:")
		})
	}
}

func TestGetPaths(t *testing.T) {
	assert.Equal(t, []string{"."}, getPaths(AnalyzeInput{}))
	assert.Equal(t, []string{"/a", "/b"}, getPaths(AnalyzeInput{Paths: []string{"/a", "/b"}}))
}

func TestGetFormat(t *testing.T) {
	tests := map[string]output.Format{
		"":         output.FormatTOON,
		"toon":     output.FormatTOON,
		"json":     output.FormatJSON,
		"markdown": output.FormatMarkdown,
		"md":       output.FormatMarkdown,
		"text":     output.FormatTOON,
	}
	for in, want := range tests {
		assert.Equal(t, want, getFormat(AnalyzeInput{Format: in}), in)
	}
}

func TestHandleSummarize_JSON(t *testing.T) {
	s := newTestServer(t)
	dir := writeReports(t)

	res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{dir}, Format: "json"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var data report.SummaryData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	assert.Equal(t, 3, data.Reports)

	var loc *struct{}
	for _, row := range data.Categories {
		if row.Label == "Lines of Code" {
			loc = &struct{}{}
			assert.True(t, row.Present)
			assert.Equal(t, "SLOC", row.Fields[0].Label)
			assert.Equal(t, "60.00", row.Fields[0].Value)
		}
	}
	assert.NotNil(t, loc)
}

func TestHandleSummarize_Options(t *testing.T) {
	s := newTestServer(t)
	dir := writeReports(t)
	precision := 0

	res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{dir}, Format: "markdown"},
		ClassMetrics: true,
		Precision:    &precision,
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "| Metric | Summary |")
	assert.Contains(t, text, "SLOC: 60<br>")
	assert.Contains(t, text, "Weighted Methods per Class")
}

func TestHandleSummarize_TOONDefault(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{writeReports(t)}},
	})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Lines of Code")
	assert.Contains(t, text, "60.00")
}

func TestHandleSummarize_Errors(t *testing.T) {
	s := newTestServer(t)

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(writeReports(t), "a.json")
		res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
			AnalyzeInput: AnalyzeInput{Paths: []string{file}},
		})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "not a directory")
	})

	t.Run("unknown category", func(t *testing.T) {
		res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
			AnalyzeInput: AnalyzeInput{Paths: []string{writeReports(t)}},
			Categories:   []string{"effort"},
		})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), `unknown category "effort"`)
	})
}

func TestHandleSummarize_NoReports(t *testing.T) {
	s := newTestServer(t)

	res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{t.TempDir()}, Format: "json"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var data report.SummaryData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	assert.Equal(t, 0, data.Reports)
	require.NotEmpty(t, data.Categories)
	for _, row := range data.Categories {
		assert.False(t, row.Present, row.Label)
		assert.Empty(t, row.Fields, row.Label)
	}

	res, _, err = s.handleCoverage(context.Background(), nil, CoverageInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{t.TempDir()}, Format: "json"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))
}

func TestHandleSummarize_Categories(t *testing.T) {
	s := newTestServer(t)

	res, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{writeReports(t)}, Format: "json"},
		Categories:   []string{"mi", "loc"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var data report.SummaryData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	require.Len(t, data.Categories, 2)
	assert.Equal(t, "Maintainability Index", data.Categories[0].Label)
	assert.Equal(t, "Lines of Code", data.Categories[1].Label)
}

func TestHandleFiles(t *testing.T) {
	s := newTestServer(t)
	dir := writeReports(t)

	res, _, err := s.handleFiles(context.Background(), nil, FilesInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{dir}, Format: "json"},
		Sort:         "sloc",
		Top:          2,
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var data report.FilesData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	require.Len(t, data.Files, 2)
	assert.Equal(t, "c.rs", data.Files[0].Name)
	assert.Equal(t, 3, data.Stats.Sloc.N)

	res, _, err = s.handleFiles(context.Background(), nil, FilesInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{dir}},
		Sort:         "effort",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleCoverage(t *testing.T) {
	s := newTestServer(t)
	dir := writeReports(t)

	res, _, err := s.handleCoverage(context.Background(), nil, CoverageInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{dir}, Format: "json"},
	})
	require.NoError(t, err)

	var data report.CoverageData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	for _, cc := range data.Categories {
		if cc.Key == "mi" {
			assert.Equal(t, 1, cc.Present)
			assert.Len(t, cc.Missing, 2)
		}
	}
}

func TestMemoryCacheReused(t *testing.T) {
	s := newTestServer(t)
	dir := writeReports(t)

	for i := 0; i < 2; i++ {
		_, _, err := s.handleSummarize(context.Background(), nil, SummarizeInput{
			AnalyzeInput: AnalyzeInput{Paths: []string{dir}},
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.memory.Len())
}

func TestParseFrontmatter(t *testing.T) {
	desc, body := parseFrontmatter([]byte("---\ndescription: Check things\n---\nDo it.\n"))
	assert.Equal(t, "Check things", desc)
	assert.Equal(t, "Do it.\n", body)

	desc, body = parseFrontmatter([]byte("plain"))
	assert.Empty(t, desc)
	assert.Equal(t, "plain", body)

	_, body = parseFrontmatter([]byte("---\nunterminated"))
	assert.Equal(t, "---\nunterminated", body)
}

func TestEmbeddedPrompts(t *testing.T) {
	entries, err := promptFiles.ReadDir("prompts")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		content, err := promptFiles.ReadFile("prompts/" + e.Name())
		require.NoError(t, err)
		desc, body := parseFrontmatter(content)
		assert.NotEmpty(t, desc, e.Name())
		assert.NotEmpty(t, body, e.Name())
	}
}

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "io.github.panbanda/tally", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "ghcr.io/panbanda/tally:1.2.3", m.Packages[0].Identifier)

	data, err = GenerateManifest("")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "0.0.0", m.Version)
}
