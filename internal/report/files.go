package report

import (
	"strconv"

	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/panbanda/tally/pkg/stats"
)

// FilesData is the serialized form of the per-file listing.
type FilesData struct {
	Files []summary.FileRow `json:"files"`
	Stats summary.FileStats `json:"stats"`
}

// Files renders one row per loaded report plus a distribution table. A
// positive top limits the listing; the statistics always cover every file.
func Files(a *summary.Analysis, key summary.FileSortKey, top int, opts Options) *output.Report {
	rows := summary.FileRows(a.Reports, key)
	fileStats := summary.DescribeFiles(rows)
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	num := func(v *float64) string {
		if v == nil {
			return summary.NotAvailable
		}
		return formatFloat(*v, opts.Precision)
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.Path,
			r.Kind,
			num(r.Sloc),
			num(r.Cyclomatic),
			num(r.Cognitive),
			num(r.MI),
			num(r.Bugs),
		}
	}

	files := output.NewTable(
		"Report Files",
		[]string{"Path", "Kind", "SLOC", "Cyclomatic", "Cognitive", "MI", "Bugs"},
		cells,
		nil,
		nil,
	)

	dist := func(label string, d stats.Distribution) []string {
		if d.N == 0 {
			return []string{label, "0", summary.NotAvailable, summary.NotAvailable, summary.NotAvailable, summary.NotAvailable}
		}
		return []string{
			label,
			strconv.Itoa(d.N),
			formatFloat(d.Mean, opts.Precision),
			formatFloat(d.P50, opts.Precision),
			formatFloat(d.P90, opts.Precision),
			formatFloat(d.Max, opts.Precision),
		}
	}
	distribution := output.NewTable(
		"Distribution",
		[]string{"Metric", "Files", "Mean", "P50", "P90", "Max"},
		[][]string{
			dist("SLOC", fileStats.Sloc),
			dist("Cyclomatic", fileStats.Cyclomatic),
			dist("Cognitive", fileStats.Cognitive),
			dist("MI", fileStats.MI),
		},
		nil,
		nil,
	)

	return &output.Report{
		Sections: []output.Renderable{files, distribution},
		Data:     FilesData{Files: rows, Stats: fileStats},
	}
}

func formatFloat(v float64, precision int) string {
	if precision < 0 {
		precision = summary.DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
