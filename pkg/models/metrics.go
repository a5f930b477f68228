package models

// Metrics holds the metric categories of one space. Any category may be
// absent, and any field inside a present category may be absent too.
type Metrics struct {
	NArgs      *NArgs    `json:"nargs,omitempty"`
	NExits     *Basic    `json:"nexits,omitempty"`
	Cognitive  *Basic    `json:"cognitive,omitempty"`
	Cyclomatic *Basic    `json:"cyclomatic,omitempty"`
	Halstead   *Halstead `json:"halstead,omitempty"`
	Loc        *Loc      `json:"loc,omitempty"`
	Nom        *Nom      `json:"nom,omitempty"`
	Mi         *Mi       `json:"mi,omitempty"`
	Abc        *Abc      `json:"abc,omitempty"`
	Wmc        *Wmc      `json:"wmc,omitempty"`
	Npm        *Npm      `json:"npm,omitempty"`
	Npa        *Npa      `json:"npa,omitempty"`
}

// NArgs counts function and closure arguments.
type NArgs struct {
	TotalFunctions   *float64 `json:"total_functions,omitempty"`
	TotalClosures    *float64 `json:"total_closures,omitempty"`
	AverageFunctions *float64 `json:"average_functions,omitempty"`
	AverageClosures  *float64 `json:"average_closures,omitempty"`
	Total            *float64 `json:"total,omitempty"`
	Average          *float64 `json:"average,omitempty"`
	FunctionsMin     *float64 `json:"functions_min,omitempty"`
	FunctionsMax     *float64 `json:"functions_max,omitempty"`
	ClosuresMin      *float64 `json:"closures_min,omitempty"`
	ClosuresMax      *float64 `json:"closures_max,omitempty"`
}

// Basic is the shape shared by nexits, cognitive and cyclomatic.
type Basic struct {
	Sum     *float64 `json:"sum,omitempty"`
	Average *float64 `json:"average,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// Halstead metrics. Operator and operand counts use upper-case keys for the
// totals (N1, N2) and lower-case keys for the distinct counts (n1, n2).
type Halstead struct {
	DistinctOperators      *float64 `json:"n1,omitempty"`
	TotalOperators         *float64 `json:"N1,omitempty"`
	DistinctOperands       *float64 `json:"n2,omitempty"`
	TotalOperands          *float64 `json:"N2,omitempty"`
	Length                 *float64 `json:"length,omitempty"`
	EstimatedProgramLength *float64 `json:"estimated_program_length,omitempty"`
	PurityRatio            *float64 `json:"purity_ratio,omitempty"`
	Vocabulary             *float64 `json:"vocabulary,omitempty"`
	Volume                 *float64 `json:"volume,omitempty"`
	Difficulty             *float64 `json:"difficulty,omitempty"`
	Level                  *float64 `json:"level,omitempty"`
	Effort                 *float64 `json:"effort,omitempty"`
	Time                   *float64 `json:"time,omitempty"`
	Bugs                   *float64 `json:"bugs,omitempty"`
}

// Loc holds line counts.
type Loc struct {
	Sloc         *float64 `json:"sloc,omitempty"`
	Ploc         *float64 `json:"ploc,omitempty"`
	Lloc         *float64 `json:"lloc,omitempty"`
	Cloc         *float64 `json:"cloc,omitempty"`
	Blank        *float64 `json:"blank,omitempty"`
	SlocAverage  *float64 `json:"sloc_average,omitempty"`
	PlocAverage  *float64 `json:"ploc_average,omitempty"`
	LlocAverage  *float64 `json:"lloc_average,omitempty"`
	ClocAverage  *float64 `json:"cloc_average,omitempty"`
	BlankAverage *float64 `json:"blank_average,omitempty"`
	SlocMin      *float64 `json:"sloc_min,omitempty"`
	SlocMax      *float64 `json:"sloc_max,omitempty"`
	ClocMin      *float64 `json:"cloc_min,omitempty"`
	ClocMax      *float64 `json:"cloc_max,omitempty"`
	PlocMin      *float64 `json:"ploc_min,omitempty"`
	PlocMax      *float64 `json:"ploc_max,omitempty"`
	LlocMin      *float64 `json:"lloc_min,omitempty"`
	LlocMax      *float64 `json:"lloc_max,omitempty"`
	BlankMin     *float64 `json:"blank_min,omitempty"`
	BlankMax     *float64 `json:"blank_max,omitempty"`
}

// Nom is the number of methods.
type Nom struct {
	Functions        *float64 `json:"functions,omitempty"`
	Closures         *float64 `json:"closures,omitempty"`
	FunctionsAverage *float64 `json:"functions_average,omitempty"`
	ClosuresAverage  *float64 `json:"closures_average,omitempty"`
	Total            *float64 `json:"total,omitempty"`
	Average          *float64 `json:"average,omitempty"`
	FunctionsMin     *float64 `json:"functions_min,omitempty"`
	FunctionsMax     *float64 `json:"functions_max,omitempty"`
	ClosuresMin      *float64 `json:"closures_min,omitempty"`
	ClosuresMax      *float64 `json:"closures_max,omitempty"`
}

// Mi is the maintainability index.
type Mi struct {
	Original     *float64 `json:"mi_original,omitempty"`
	SEI          *float64 `json:"mi_sei,omitempty"`
	VisualStudio *float64 `json:"mi_visual_studio,omitempty"`
}

// Abc is the assignments, branches, conditions metric.
type Abc struct {
	Assignments        *float64 `json:"assignments,omitempty"`
	Branches           *float64 `json:"branches,omitempty"`
	Conditions         *float64 `json:"conditions,omitempty"`
	Magnitude          *float64 `json:"magnitude,omitempty"`
	AssignmentsAverage *float64 `json:"assignments_average,omitempty"`
	BranchesAverage    *float64 `json:"branches_average,omitempty"`
	ConditionsAverage  *float64 `json:"conditions_average,omitempty"`
	AssignmentsMin     *float64 `json:"assignments_min,omitempty"`
	AssignmentsMax     *float64 `json:"assignments_max,omitempty"`
	BranchesMin        *float64 `json:"branches_min,omitempty"`
	BranchesMax        *float64 `json:"branches_max,omitempty"`
	ConditionsMin      *float64 `json:"conditions_min,omitempty"`
	ConditionsMax      *float64 `json:"conditions_max,omitempty"`
}

// Wmc is the weighted methods per class.
type Wmc struct {
	Classes    *float64 `json:"classes,omitempty"`
	Interfaces *float64 `json:"interfaces,omitempty"`
	Total      *float64 `json:"total,omitempty"`
}

// Npm is the number of public methods. A null average decodes as absent.
type Npm struct {
	Classes           *float64 `json:"classes,omitempty"`
	Interfaces        *float64 `json:"interfaces,omitempty"`
	ClassMethods      *float64 `json:"class_methods,omitempty"`
	InterfaceMethods  *float64 `json:"interface_methods,omitempty"`
	ClassesAverage    *float64 `json:"classes_average,omitempty"`
	InterfacesAverage *float64 `json:"interfaces_average,omitempty"`
	Total             *float64 `json:"total,omitempty"`
	TotalMethods      *float64 `json:"total_methods,omitempty"`
	Average           *float64 `json:"average,omitempty"`
}

// Npa is the number of public attributes. A null average decodes as absent.
type Npa struct {
	Classes             *float64 `json:"classes,omitempty"`
	Interfaces          *float64 `json:"interfaces,omitempty"`
	ClassAttributes     *float64 `json:"class_attributes,omitempty"`
	InterfaceAttributes *float64 `json:"interface_attributes,omitempty"`
	ClassesAverage      *float64 `json:"classes_average,omitempty"`
	InterfacesAverage   *float64 `json:"interfaces_average,omitempty"`
	Total               *float64 `json:"total,omitempty"`
	TotalAttributes     *float64 `json:"total_attributes,omitempty"`
	Average             *float64 `json:"average,omitempty"`
}

// Float returns a pointer to v. It is a convenience for building metrics in code.
func Float(v float64) *float64 {
	return &v
}
