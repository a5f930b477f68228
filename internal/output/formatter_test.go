package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormat(tt.input))
		})
	}
}

func TestValid(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, Valid(string(f)), f)
	}
	assert.True(t, Valid(""))
	assert.False(t, Valid("yaml"))
}

func TestUseColor(t *testing.T) {
	assert.False(t, UseColor(false, ""))
	assert.False(t, UseColor(true, "out.txt"), "files are never colored")
}

func TestNewFormatter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	f, err := NewFormatter(FormatJSON, path, true)
	require.NoError(t, err)
	assert.False(t, f.Colored(), "file output is never colored")

	require.NoError(t, f.Output(map[string]int{"reports": 3}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reports": 3}`, string(data))
}

func TestNewFormatter_InvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, filepath.Join(t.TempDir(), "missing", "out.txt"), false)
	assert.Error(t, err)
}

func TestFormatter_Getters(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatMarkdown, &buf, true)
	defer f.Close()

	assert.Equal(t, FormatMarkdown, f.Format())
	assert.True(t, f.Colored())
	assert.Same(t, &buf, f.Writer())
}

func summaryTable() *Table {
	return NewTable(
		"Summary",
		[]string{"Metric", "Summary"},
		[][]string{
			{"Lines of Code", "SLOC: 60.00\nCount: 3"},
			{"NArgs", "Total Functions: 4.00"},
		},
		[]string{"Reports", "3"},
		nil,
	)
}

func TestTable_RenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, summaryTable().RenderText(&buf, false))

	out := buf.String()
	for _, want := range []string{"Summary", "METRIC", "Lines of Code", "SLOC: 60.00", "Count: 3", "NArgs", "Reports"} {
		assert.Contains(t, out, want)
	}
}

func TestTable_RenderText_NoTitle(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable("", []string{"A", "B"}, [][]string{{"1", "2"}}, nil, nil)
	require.NoError(t, table.RenderText(&buf, false))
	assert.NotContains(t, buf.String(), "===")
	assert.Contains(t, buf.String(), "1")
}

func TestTable_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, summaryTable().RenderMarkdown(&buf))

	out := buf.String()
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| Metric | Summary |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| Lines of Code | SLOC: 60.00<br>Count: 3 |")
	assert.Contains(t, out, "| Reports | 3 |")
}

func TestMarkdownCells_EscapesPipes(t *testing.T) {
	assert.Equal(t, []string{`a\|b`, "x<br>y"}, markdownCells([]string{"a|b", "x\ny"}))
}

func TestTable_RenderData(t *testing.T) {
	t.Run("explicit data", func(t *testing.T) {
		data := map[string]any{"reports": 2}
		table := NewTable("T", []string{"H"}, [][]string{{"R"}}, nil, data)
		assert.Equal(t, data, table.RenderData())
	})

	t.Run("rows keyed by header", func(t *testing.T) {
		table := NewTable("T", []string{"Name", "Value"}, [][]string{{"sloc", "10"}, {"ploc", "8"}}, nil, nil)
		rows, ok := table.RenderData().([]map[string]string)
		require.True(t, ok)
		require.Len(t, rows, 2)
		assert.Equal(t, map[string]string{"Name": "sloc", "Value": "10"}, rows[0])
	})

	t.Run("short rows", func(t *testing.T) {
		table := NewTable("T", []string{"A", "B", "C"}, [][]string{{"1", "2"}}, nil, nil)
		rows := table.RenderData().([]map[string]string)
		assert.Len(t, rows[0], 2)
	})
}

func TestSection_Render(t *testing.T) {
	s := &Section{
		Title:   "Coverage",
		Content: "3 reports",
		Sections: []Section{
			{Title: "Halstead Metrics", Content: "missing in 1"},
		},
	}

	var text bytes.Buffer
	require.NoError(t, s.RenderText(&text, false))
	for _, want := range []string{"Coverage", "========", "3 reports", "Halstead Metrics", "----------------", "missing in 1"} {
		assert.Contains(t, text.String(), want)
	}

	var md bytes.Buffer
	require.NoError(t, s.RenderMarkdown(&md))
	assert.Contains(t, md.String(), "## Coverage")
	assert.Contains(t, md.String(), "### Halstead Metrics")

	assert.Same(t, s, s.RenderData())
	s.Data = []int{1}
	assert.Equal(t, []int{1}, s.RenderData())
}

func TestReport_Render(t *testing.T) {
	r := &Report{
		Title:    "Report Summary",
		Sections: []Renderable{summaryTable(), &Section{Title: "Notes", Content: "none"}},
	}

	var text bytes.Buffer
	require.NoError(t, r.RenderText(&text, false))
	assert.True(t, strings.HasPrefix(text.String(), "Report Summary\n"))
	assert.Contains(t, text.String(), "Notes")

	var md bytes.Buffer
	require.NoError(t, r.RenderMarkdown(&md))
	assert.True(t, strings.HasPrefix(md.String(), "# Report Summary"))

	data, ok := r.RenderData().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Report Summary", data["title"])
	assert.Len(t, data["sections"], 2)
}

func TestFormatter_Output(t *testing.T) {
	type row struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}
	data := []row{{Category: "Lines of Code", Count: 3}}
	table := NewTable("Summary", []string{"Metric", "Count"}, [][]string{{"Lines of Code", "3"}}, nil, data)

	t.Run("json uses render data", func(t *testing.T) {
		out, err := Marshal(FormatJSON, table)
		require.NoError(t, err)
		var got []row
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, data, got)
	})

	t.Run("toon", func(t *testing.T) {
		out, err := Marshal(FormatTOON, table)
		require.NoError(t, err)
		assert.Contains(t, out, "Lines of Code")
		assert.NotContains(t, out, `"category"`)
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := Marshal(FormatMarkdown, table)
		require.NoError(t, err)
		assert.Contains(t, out, "| Lines of Code | 3 |")
	})

	t.Run("text", func(t *testing.T) {
		out, err := Marshal(FormatText, table)
		require.NoError(t, err)
		assert.Contains(t, out, "Lines of Code")
	})

	t.Run("raw markdown is fenced json", func(t *testing.T) {
		out, err := Marshal(FormatMarkdown, map[string]int{"n": 1})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "```json\n"))
		assert.True(t, strings.HasSuffix(out, "```\n"))
	})
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(&buf)

	d.Warning("skipped %s", "a.json")
	d.Error("failed")
	d.Info("loaded %d", 2)

	assert.Equal(t, "WARNING: skipped a.json\nERROR: failed\nloaded 2\n", buf.String())
}
