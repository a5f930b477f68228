// Package report turns analysis results into renderable documents shared by
// the CLI and the MCP server.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/panbanda/tally/pkg/config"
)

// Options controls which categories are shown and how numbers are printed.
type Options struct {
	ClassMetrics bool
	Precision    int
	// Only, when set, replaces the default selection and its order.
	Only []summary.Category
}

// OptionsFromConfig reads the presentation settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ClassMetrics: cfg.Output.ClassMetrics,
		Precision:    cfg.Output.Precision,
	}
}

// Categories returns the categories to display.
func (o Options) Categories() []summary.Category {
	if len(o.Only) > 0 {
		return o.Only
	}
	if o.ClassMetrics {
		return summary.Categories()
	}
	return summary.DefaultCategories()
}

// ParseCategories resolves category keys such as "loc" or "halstead".
// Duplicates are dropped; the first occurrence keeps its place.
func ParseCategories(keys []string) ([]summary.Category, error) {
	var cats []summary.Category
	seen := make(map[summary.Category]bool)
	for _, key := range keys {
		c, ok := summary.ParseCategory(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			return nil, fmt.Errorf("unknown category %q (want one of %s)", key, strings.Join(categoryKeys(), ", "))
		}
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats, nil
}

func categoryKeys() []string {
	all := summary.Categories()
	keys := make([]string, len(all))
	for i, c := range all {
		keys[i] = c.Key()
	}
	return keys
}

// FailedFile is a report that was dropped during loading.
type FailedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func failedFiles(a *summary.Analysis) []FailedFile {
	if len(a.Failed) == 0 {
		return nil
	}
	out := make([]FailedFile, len(a.Failed))
	for i, f := range a.Failed {
		out[i] = FailedFile{Path: f.Path, Error: f.Err.Error()}
	}
	return out
}

// SummaryData is the serialized form of a summary.
type SummaryData struct {
	Reports    int           `json:"reports"`
	Failed     []FailedFile  `json:"failed,omitempty"`
	Categories []summary.Row `json:"categories"`
}

// Summary renders the two-column Metric/Summary table.
func Summary(a *summary.Analysis, opts Options) *output.Table {
	rows := summary.RowsWithPrecision(a.Summary, opts.Categories(), opts.Precision)

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Label, r.Text()}
	}

	footer := []string{"Reports", strconv.Itoa(a.Summary.Reports)}
	if n := len(a.Failed); n > 0 {
		footer = []string{"Reports", strconv.Itoa(a.Summary.Reports) + " (" + strconv.Itoa(n) + " skipped)"}
	}

	return output.NewTable(
		"Report Summary",
		[]string{"Metric", "Summary"},
		cells,
		footer,
		SummaryData{
			Reports:    a.Summary.Reports,
			Failed:     failedFiles(a),
			Categories: rows,
		},
	)
}
