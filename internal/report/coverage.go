package report

import (
	"strconv"
	"strings"

	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/pkg/analyzer/summary"
)

// maxListedMissing caps the paths listed per category in text output.
const maxListedMissing = 5

// CategoryCoverage records which reports lacked one category.
type CategoryCoverage struct {
	Category string   `json:"category"`
	Key      string   `json:"key"`
	Present  int      `json:"present"`
	Missing  []string `json:"missing,omitempty"`
}

// CoverageData is the serialized form of the coverage listing.
type CoverageData struct {
	Reports    int                `json:"reports"`
	Categories []CategoryCoverage `json:"categories"`
}

// CoverageOf computes per-category presence for every displayed category.
func CoverageOf(a *summary.Analysis, opts Options) CoverageData {
	cov := a.Summary.Coverage()
	total := a.Summary.Reports

	data := CoverageData{Reports: total}
	for _, c := range opts.Categories() {
		cc := CategoryCoverage{
			Category: c.Label(),
			Key:      c.Key(),
			Present:  int(cov.Cardinality(c)),
		}
		for _, idx := range cov.Missing(c, total) {
			if int(idx) < len(a.Reports) {
				cc.Missing = append(cc.Missing, a.Reports[idx].Path)
			}
		}
		data.Categories = append(data.Categories, cc)
	}
	return data
}

// Coverage renders how many reports supplied each category and which did not.
func Coverage(a *summary.Analysis, opts Options) *output.Table {
	data := CoverageOf(a, opts)

	cells := make([][]string, len(data.Categories))
	for i, cc := range data.Categories {
		cells[i] = []string{
			cc.Category,
			strconv.Itoa(cc.Present) + "/" + strconv.Itoa(data.Reports),
			listMissing(cc.Missing),
		}
	}

	return output.NewTable(
		"Category Coverage",
		[]string{"Metric", "Present", "Missing In"},
		cells,
		nil,
		data,
	)
}

func listMissing(paths []string) string {
	if len(paths) == 0 {
		return "-"
	}
	if len(paths) <= maxListedMissing {
		return strings.Join(paths, "\n")
	}
	return strings.Join(paths[:maxListedMissing], "\n") + "\n... and " + strconv.Itoa(len(paths)-maxListedMissing) + " more"
}
