package summary

import (
	"strconv"
	"strings"
)

// NotAvailable is shown for absent categories and unset extremum fields.
const NotAvailable = "N/A"

// Field is one labeled, formatted value of a category.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is the presentation of one category.
type Row struct {
	Category Category `json:"-"`
	Label    string   `json:"category"`
	Present  bool     `json:"present"`
	Fields   []Field  `json:"fields,omitempty"`
}

// Text renders the row value as one "label: value" line per field, or the
// placeholder when the category is absent.
func (r Row) Text() string {
	if !r.Present {
		return NotAvailable
	}
	var b strings.Builder
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	return b.String()
}

// DefaultPrecision is the number of decimals shown for float fields.
const DefaultPrecision = 2

// Rows projects s into one row per category, in the order given.
// A nil cats means DefaultCategories. Rows never fails on a well-formed
// summary and does not modify it.
func Rows(s *Summary, cats []Category) []Row {
	return RowsWithPrecision(s, cats, DefaultPrecision)
}

// RowsWithPrecision is Rows with a custom number of decimals for floats.
// Counts are always integers.
func RowsWithPrecision(s *Summary, cats []Category, precision int) []Row {
	if precision < 0 {
		precision = DefaultPrecision
	}
	f := formatter{precision: precision}
	if cats == nil {
		cats = DefaultCategories()
	}
	if s == nil {
		s = &Summary{}
	}
	rows := make([]Row, 0, len(cats))
	for _, c := range cats {
		fields := s.fields(c, f)
		rows = append(rows, Row{
			Category: c,
			Label:    c.Label(),
			Present:  fields != nil,
			Fields:   fields,
		})
	}
	return rows
}

type formatter struct {
	precision int
}

func (f formatter) num(v float64) string {
	return strconv.FormatFloat(v, 'f', f.precision, 64)
}

func (f formatter) bound(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return f.num(*v)
}

func count(n int) string {
	return strconv.Itoa(n)
}

// fields returns nil for an absent category.
func (s *Summary) fields(c Category, f formatter) []Field {
	switch c {
	case CategoryNArgs:
		if a := s.NArgs; a != nil {
			return []Field{
				{"Total Functions", f.num(a.TotalFunctions)},
				{"Total Closures", f.num(a.TotalClosures)},
				{"Avg Functions", f.num(a.AverageFunctions)},
				{"Avg Closures", f.num(a.AverageClosures)},
				{"Total", f.num(a.Total)},
				{"Average", f.num(a.Average)},
				{"Min Functions", f.bound(a.FunctionsMin)},
				{"Max Functions", f.bound(a.FunctionsMax)},
				{"Min Closures", f.bound(a.ClosuresMin)},
				{"Max Closures", f.bound(a.ClosuresMax)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryNExits:
		return basicFields(f, s.NExits)
	case CategoryCognitive:
		return basicFields(f, s.Cognitive)
	case CategoryCyclomatic:
		return basicFields(f, s.Cyclomatic)
	case CategoryHalstead:
		if a := s.Halstead; a != nil {
			return []Field{
				{"n1", f.num(a.DistinctOperators)},
				{"N1", f.num(a.TotalOperators)},
				{"n2", f.num(a.DistinctOperands)},
				{"N2", f.num(a.TotalOperands)},
				{"Length", f.num(a.Length)},
				{"Estimated Length", f.num(a.EstimatedProgramLength)},
				{"Vocabulary", f.num(a.Vocabulary)},
				{"Volume", f.num(a.Volume)},
				{"Effort", f.num(a.Effort)},
				{"Time", f.num(a.Time)},
				{"Bugs", f.num(a.Bugs)},
				{"Avg Purity Ratio", f.num(a.PurityRatio)},
				{"Avg Difficulty", f.num(a.Difficulty)},
				{"Avg Level", f.num(a.Level)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryLoc:
		if a := s.Loc; a != nil {
			return []Field{
				{"SLOC", f.num(a.Sloc)},
				{"PLOC", f.num(a.Ploc)},
				{"LLOC", f.num(a.Lloc)},
				{"CLOC", f.num(a.Cloc)},
				{"Blank", f.num(a.Blank)},
				{"Avg SLOC", f.num(a.SlocAverage)},
				{"Avg PLOC", f.num(a.PlocAverage)},
				{"Avg LLOC", f.num(a.LlocAverage)},
				{"Avg CLOC", f.num(a.ClocAverage)},
				{"Avg Blank", f.num(a.BlankAverage)},
				{"Min SLOC", f.bound(a.SlocMin)},
				{"Max SLOC", f.bound(a.SlocMax)},
				{"Min PLOC", f.bound(a.PlocMin)},
				{"Max PLOC", f.bound(a.PlocMax)},
				{"Min LLOC", f.bound(a.LlocMin)},
				{"Max LLOC", f.bound(a.LlocMax)},
				{"Min CLOC", f.bound(a.ClocMin)},
				{"Max CLOC", f.bound(a.ClocMax)},
				{"Min Blank", f.bound(a.BlankMin)},
				{"Max Blank", f.bound(a.BlankMax)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryNom:
		if a := s.Nom; a != nil {
			return []Field{
				{"Functions", f.num(a.Functions)},
				{"Closures", f.num(a.Closures)},
				{"Total", f.num(a.Total)},
				{"Avg Functions", f.num(a.FunctionsAverage)},
				{"Avg Closures", f.num(a.ClosuresAverage)},
				{"Average", f.num(a.Average)},
				{"Min Functions", f.bound(a.FunctionsMin)},
				{"Max Functions", f.bound(a.FunctionsMax)},
				{"Min Closures", f.bound(a.ClosuresMin)},
				{"Max Closures", f.bound(a.ClosuresMax)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryMi:
		if a := s.Mi; a != nil {
			return []Field{
				{"MI Original", f.num(a.Original)},
				{"MI SEI", f.num(a.SEI)},
				{"MI VS", f.num(a.VisualStudio)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryAbc:
		if a := s.Abc; a != nil {
			return []Field{
				{"Assignments", f.num(a.Assignments)},
				{"Branches", f.num(a.Branches)},
				{"Conditions", f.num(a.Conditions)},
				{"Avg Magnitude", f.num(a.Magnitude)},
				{"Avg Assignments", f.num(a.AssignmentsAverage)},
				{"Avg Branches", f.num(a.BranchesAverage)},
				{"Avg Conditions", f.num(a.ConditionsAverage)},
				{"Min Assignments", f.bound(a.AssignmentsMin)},
				{"Max Assignments", f.bound(a.AssignmentsMax)},
				{"Min Branches", f.bound(a.BranchesMin)},
				{"Max Branches", f.bound(a.BranchesMax)},
				{"Min Conditions", f.bound(a.ConditionsMin)},
				{"Max Conditions", f.bound(a.ConditionsMax)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryWmc:
		if a := s.Wmc; a != nil {
			return []Field{
				{"Classes", f.num(a.Classes)},
				{"Interfaces", f.num(a.Interfaces)},
				{"Total", f.num(a.Total)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryNpm:
		if a := s.Npm; a != nil {
			return []Field{
				{"Classes", f.num(a.Classes)},
				{"Interfaces", f.num(a.Interfaces)},
				{"Class Methods", f.num(a.ClassMethods)},
				{"Interface Methods", f.num(a.InterfaceMethods)},
				{"Total", f.num(a.Total)},
				{"Total Methods", f.num(a.TotalMethods)},
				{"Avg Classes", f.num(a.ClassesAverage)},
				{"Avg Interfaces", f.num(a.InterfacesAverage)},
				{"Average", f.num(a.Average)},
				{"Count", count(a.Count)},
			}
		}
	case CategoryNpa:
		if a := s.Npa; a != nil {
			return []Field{
				{"Classes", f.num(a.Classes)},
				{"Interfaces", f.num(a.Interfaces)},
				{"Class Attributes", f.num(a.ClassAttributes)},
				{"Interface Attributes", f.num(a.InterfaceAttributes)},
				{"Total", f.num(a.Total)},
				{"Total Attributes", f.num(a.TotalAttributes)},
				{"Avg Classes", f.num(a.ClassesAverage)},
				{"Avg Interfaces", f.num(a.InterfacesAverage)},
				{"Average", f.num(a.Average)},
				{"Count", count(a.Count)},
			}
		}
	}
	return nil
}

func basicFields(f formatter, a *BasicSummary) []Field {
	if a == nil {
		return nil
	}
	return []Field{
		{"Sum", f.num(a.Sum)},
		{"Average", f.num(a.Average)},
		{"Min", f.bound(a.Min)},
		{"Max", f.bound(a.Max)},
		{"Count", count(a.Count)},
	}
}
