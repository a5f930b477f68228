package summary

import (
	"testing"

	"github.com/panbanda/tally/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRows(t *testing.T) {
	reports := []*models.Report{
		report("b.json", &models.Metrics{
			Loc:        &models.Loc{Sloc: f(50)},
			Cyclomatic: &models.Basic{Sum: f(9)},
			Mi:         &models.Mi{VisualStudio: f(40)},
		}),
		report("a.json", &models.Metrics{Loc: &models.Loc{Sloc: f(120)}}),
		report("c.json", nil),
	}
	reports[0].Spaces = []models.Space{{Name: "f", Kind: "function"}}

	rows := FileRows(reports, SortByPath)
	require.Len(t, rows, 3)
	assert.Equal(t, "a.json", rows[0].Path)
	assert.Equal(t, "c.json", rows[2].Path)

	rows = FileRows(reports, SortBySloc)
	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, paths(rows))

	rows = FileRows(reports, SortByCyclomatic)
	assert.Equal(t, []string{"b.json", "a.json", "c.json"}, paths(rows), "absent values sort last")
	assert.Equal(t, 2, rows[0].Spaces)
	assert.Equal(t, 40.0, *rows[0].MI)
	assert.Nil(t, rows[0].Bugs)
}

func TestDescribeFiles(t *testing.T) {
	rows := FileRows([]*models.Report{
		locReport("a", 10),
		locReport("b", 20),
		locReport("c", 30),
		report("d", nil),
	}, SortByPath)

	st := DescribeFiles(rows)
	assert.Equal(t, 3, st.Sloc.N)
	assert.InDelta(t, 20.0, st.Sloc.Mean, 1e-9)
	assert.Equal(t, 30.0, st.Sloc.Max)
	assert.Equal(t, 0, st.Cyclomatic.N)
}

func paths(rows []FileRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Path
	}
	return out
}

func TestParseFileSortKey(t *testing.T) {
	for _, k := range FileSortKeys() {
		got, ok := ParseFileSortKey(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseFileSortKey("effort")
	assert.False(t, ok)
}
