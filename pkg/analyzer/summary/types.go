package summary

// Category identifies one metric family.
type Category int

// Metric categories in display order.
const (
	CategoryNArgs Category = iota
	CategoryNExits
	CategoryCognitive
	CategoryCyclomatic
	CategoryHalstead
	CategoryLoc
	CategoryNom
	CategoryMi
	CategoryAbc
	CategoryWmc
	CategoryNpm
	CategoryNpa

	numCategories = int(CategoryNpa) + 1
)

var categoryKeys = [numCategories]string{
	"nargs", "nexits", "cognitive", "cyclomatic", "halstead", "loc",
	"nom", "mi", "abc", "wmc", "npm", "npa",
}

var categoryLabels = [numCategories]string{
	"NArgs",
	"NExits",
	"Cognitive Complexity",
	"Cyclomatic Complexity",
	"Halstead Metrics",
	"Lines of Code",
	"Number of Methods",
	"Maintainability Index",
	"ABC Complexity",
	"Weighted Methods per Class",
	"Number of Public Methods",
	"Number of Public Attributes",
}

// Key returns the JSON key of the category.
func (c Category) Key() string {
	if c < 0 || int(c) >= numCategories {
		return "unknown"
	}
	return categoryKeys[c]
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if c < 0 || int(c) >= numCategories {
		return "Unknown"
	}
	return categoryLabels[c]
}

func (c Category) String() string {
	return c.Key()
}

// IsClass reports whether the category belongs to the class families
// (wmc, npm, npa), which are hidden unless requested.
func (c Category) IsClass() bool {
	return c >= CategoryWmc
}

// Categories returns every category in display order.
func Categories() []Category {
	cats := make([]Category, numCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// DefaultCategories returns the nine categories shown by default.
func DefaultCategories() []Category {
	return Categories()[:CategoryWmc]
}

// ParseCategory maps a JSON key back to its category.
func ParseCategory(key string) (Category, bool) {
	for i, k := range categoryKeys {
		if k == key {
			return Category(i), true
		}
	}
	return 0, false
}

// NArgsSummary accumulates nargs values.
type NArgsSummary struct {
	TotalFunctions   float64  `json:"total_functions"`
	TotalClosures    float64  `json:"total_closures"`
	Total            float64  `json:"total"`
	AverageFunctions float64  `json:"average_functions"`
	AverageClosures  float64  `json:"average_closures"`
	Average          float64  `json:"average"`
	FunctionsMin     *float64 `json:"functions_min"`
	FunctionsMax     *float64 `json:"functions_max"`
	ClosuresMin      *float64 `json:"closures_min"`
	ClosuresMax      *float64 `json:"closures_max"`
	Count            int      `json:"count"`
}

// BasicSummary accumulates nexits, cognitive and cyclomatic values.
type BasicSummary struct {
	Sum     float64  `json:"sum"`
	Average float64  `json:"average"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Count   int      `json:"count"`
}

// HalsteadSummary accumulates halstead values.
type HalsteadSummary struct {
	DistinctOperators      float64 `json:"n1"`
	TotalOperators         float64 `json:"N1"`
	DistinctOperands       float64 `json:"n2"`
	TotalOperands          float64 `json:"N2"`
	Length                 float64 `json:"length"`
	EstimatedProgramLength float64 `json:"estimated_program_length"`
	Vocabulary             float64 `json:"vocabulary"`
	Volume                 float64 `json:"volume"`
	Effort                 float64 `json:"effort"`
	Time                   float64 `json:"time"`
	Bugs                   float64 `json:"bugs"`
	PurityRatio            float64 `json:"purity_ratio"`
	Difficulty             float64 `json:"difficulty"`
	Level                  float64 `json:"level"`
	Count                  int     `json:"count"`
}

// LocSummary accumulates loc values.
type LocSummary struct {
	Sloc         float64  `json:"sloc"`
	Ploc         float64  `json:"ploc"`
	Lloc         float64  `json:"lloc"`
	Cloc         float64  `json:"cloc"`
	Blank        float64  `json:"blank"`
	SlocAverage  float64  `json:"sloc_average"`
	PlocAverage  float64  `json:"ploc_average"`
	LlocAverage  float64  `json:"lloc_average"`
	ClocAverage  float64  `json:"cloc_average"`
	BlankAverage float64  `json:"blank_average"`
	SlocMin      *float64 `json:"sloc_min"`
	SlocMax      *float64 `json:"sloc_max"`
	PlocMin      *float64 `json:"ploc_min"`
	PlocMax      *float64 `json:"ploc_max"`
	LlocMin      *float64 `json:"lloc_min"`
	LlocMax      *float64 `json:"lloc_max"`
	ClocMin      *float64 `json:"cloc_min"`
	ClocMax      *float64 `json:"cloc_max"`
	BlankMin     *float64 `json:"blank_min"`
	BlankMax     *float64 `json:"blank_max"`
	Count        int      `json:"count"`
}

// NomSummary accumulates nom values.
type NomSummary struct {
	Functions        float64  `json:"functions"`
	Closures         float64  `json:"closures"`
	Total            float64  `json:"total"`
	FunctionsAverage float64  `json:"functions_average"`
	ClosuresAverage  float64  `json:"closures_average"`
	Average          float64  `json:"average"`
	FunctionsMin     *float64 `json:"functions_min"`
	FunctionsMax     *float64 `json:"functions_max"`
	ClosuresMin      *float64 `json:"closures_min"`
	ClosuresMax      *float64 `json:"closures_max"`
	Count            int      `json:"count"`
}

// MiSummary averages the maintainability indices, which are per-file scores.
type MiSummary struct {
	Original     float64 `json:"mi_original"`
	SEI          float64 `json:"mi_sei"`
	VisualStudio float64 `json:"mi_visual_studio"`
	Count        int     `json:"count"`
}

// AbcSummary accumulates abc values.
type AbcSummary struct {
	Assignments        float64  `json:"assignments"`
	Branches           float64  `json:"branches"`
	Conditions         float64  `json:"conditions"`
	Magnitude          float64  `json:"magnitude"`
	AssignmentsAverage float64  `json:"assignments_average"`
	BranchesAverage    float64  `json:"branches_average"`
	ConditionsAverage  float64  `json:"conditions_average"`
	AssignmentsMin     *float64 `json:"assignments_min"`
	AssignmentsMax     *float64 `json:"assignments_max"`
	BranchesMin        *float64 `json:"branches_min"`
	BranchesMax        *float64 `json:"branches_max"`
	ConditionsMin      *float64 `json:"conditions_min"`
	ConditionsMax      *float64 `json:"conditions_max"`
	Count              int      `json:"count"`
}

// WmcSummary accumulates wmc values.
type WmcSummary struct {
	Classes    float64 `json:"classes"`
	Interfaces float64 `json:"interfaces"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// NpmSummary accumulates npm values.
type NpmSummary struct {
	Classes           float64 `json:"classes"`
	Interfaces        float64 `json:"interfaces"`
	ClassMethods      float64 `json:"class_methods"`
	InterfaceMethods  float64 `json:"interface_methods"`
	Total             float64 `json:"total"`
	TotalMethods      float64 `json:"total_methods"`
	ClassesAverage    float64 `json:"classes_average"`
	InterfacesAverage float64 `json:"interfaces_average"`
	Average           float64 `json:"average"`
	Count             int     `json:"count"`
}

// NpaSummary accumulates npa values.
type NpaSummary struct {
	Classes             float64 `json:"classes"`
	Interfaces          float64 `json:"interfaces"`
	ClassAttributes     float64 `json:"class_attributes"`
	InterfaceAttributes float64 `json:"interface_attributes"`
	Total               float64 `json:"total"`
	TotalAttributes     float64 `json:"total_attributes"`
	ClassesAverage      float64 `json:"classes_average"`
	InterfacesAverage   float64 `json:"interfaces_average"`
	Average             float64 `json:"average"`
	Count               int     `json:"count"`
}

// Summary is the fold of any number of reports. A nil category means no
// folded report supplied it. Extremum fields are nil until a report supplies
// a value, which makes nil the identity of both min and max.
type Summary struct {
	NArgs      *NArgsSummary    `json:"nargs,omitempty"`
	NExits     *BasicSummary    `json:"nexits,omitempty"`
	Cognitive  *BasicSummary    `json:"cognitive,omitempty"`
	Cyclomatic *BasicSummary    `json:"cyclomatic,omitempty"`
	Halstead   *HalsteadSummary `json:"halstead,omitempty"`
	Loc        *LocSummary      `json:"loc,omitempty"`
	Nom        *NomSummary      `json:"nom,omitempty"`
	Mi         *MiSummary       `json:"mi,omitempty"`
	Abc        *AbcSummary      `json:"abc,omitempty"`
	Wmc        *WmcSummary      `json:"wmc,omitempty"`
	Npm        *NpmSummary      `json:"npm,omitempty"`
	Npa        *NpaSummary      `json:"npa,omitempty"`

	// Reports is the number of reports folded, with or without metrics.
	Reports int `json:"reports"`

	coverage *Coverage
}
