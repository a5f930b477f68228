package summary

import (
	"sort"

	"github.com/panbanda/tally/pkg/models"
	"github.com/panbanda/tally/pkg/stats"
)

// FileRow is the headline metrics of a single report.
type FileRow struct {
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Spaces     int      `json:"spaces"`
	Sloc       *float64 `json:"sloc,omitempty"`
	Cyclomatic *float64 `json:"cyclomatic,omitempty"`
	Cognitive  *float64 `json:"cognitive,omitempty"`
	MI         *float64 `json:"mi,omitempty"`
	Bugs       *float64 `json:"bugs,omitempty"`
}

// FileSortKey selects the column FileRows sorts by.
type FileSortKey string

// Supported sort keys.
const (
	SortByPath       FileSortKey = "path"
	SortBySloc       FileSortKey = "sloc"
	SortByCyclomatic FileSortKey = "cyclomatic"
	SortByCognitive  FileSortKey = "cognitive"
	SortByMI         FileSortKey = "mi"
	SortByBugs       FileSortKey = "bugs"
)

// FileSortKeys lists the accepted sort keys.
func FileSortKeys() []FileSortKey {
	return []FileSortKey{SortByPath, SortBySloc, SortByCyclomatic, SortByCognitive, SortByMI, SortByBugs}
}

// ParseFileSortKey returns the sort key named s.
func ParseFileSortKey(s string) (FileSortKey, bool) {
	for _, k := range FileSortKeys() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// FileRows returns one row per report, sorted by key. Numeric keys sort
// descending with absent values last; ties fall back to path.
func FileRows(reports []*models.Report, key FileSortKey) []FileRow {
	rows := make([]FileRow, 0, len(reports))
	for _, r := range reports {
		row := FileRow{
			Path:   r.Path,
			Name:   r.Name,
			Kind:   r.Kind,
			Spaces: r.CountSpaces(),
		}
		if m := r.Metrics; m != nil {
			if m.Loc != nil {
				row.Sloc = m.Loc.Sloc
			}
			if m.Cyclomatic != nil {
				row.Cyclomatic = m.Cyclomatic.Sum
			}
			if m.Cognitive != nil {
				row.Cognitive = m.Cognitive.Sum
			}
			if m.Mi != nil {
				row.MI = m.Mi.VisualStudio
			}
			if m.Halstead != nil {
				row.Bugs = m.Halstead.Bugs
			}
		}
		rows = append(rows, row)
	}

	value := func(r FileRow) *float64 {
		switch key {
		case SortBySloc:
			return r.Sloc
		case SortByCyclomatic:
			return r.Cyclomatic
		case SortByCognitive:
			return r.Cognitive
		case SortByMI:
			return r.MI
		case SortByBugs:
			return r.Bugs
		}
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := value(rows[i]), value(rows[j])
		switch {
		case vi != nil && vj != nil && *vi != *vj:
			return *vi > *vj
		case vi != nil && vj == nil:
			return true
		case vi == nil && vj != nil:
			return false
		}
		return rows[i].Path < rows[j].Path
	})
	return rows
}

// FileStats summarizes the distribution of the per-file headline metrics.
// Files without a value are not counted.
type FileStats struct {
	Sloc       stats.Distribution `json:"sloc"`
	Cyclomatic stats.Distribution `json:"cyclomatic"`
	Cognitive  stats.Distribution `json:"cognitive"`
	MI         stats.Distribution `json:"mi"`
}

// DescribeFiles computes FileStats over rows.
func DescribeFiles(rows []FileRow) FileStats {
	var sloc, cyc, cog, mi []float64
	for _, r := range rows {
		if r.Sloc != nil {
			sloc = append(sloc, *r.Sloc)
		}
		if r.Cyclomatic != nil {
			cyc = append(cyc, *r.Cyclomatic)
		}
		if r.Cognitive != nil {
			cog = append(cog, *r.Cognitive)
		}
		if r.MI != nil {
			mi = append(mi, *r.MI)
		}
	}
	return FileStats{
		Sloc:       stats.Describe(sloc),
		Cyclomatic: stats.Describe(cyc),
		Cognitive:  stats.Describe(cog),
		MI:         stats.Describe(mi),
	}
}
