package summary

import "github.com/panbanda/tally/pkg/models"

// The merge functions below are pure: they never modify acc and return the
// accumulator that results from folding v into it. A nil v leaves acc as is,
// count included. A nil acc is the category zero.

func add(acc float64, v *float64) float64 {
	if v == nil {
		return acc
	}
	return acc + *v
}

// mean folds v into a running mean over n earlier files. A missing value
// counts as zero so every contributing file carries the same weight.
func mean(acc float64, n int, v *float64) float64 {
	var x float64
	if v != nil {
		x = *v
	}
	return (acc*float64(n) + x) / float64(n+1)
}

func lower(acc, v *float64) *float64 {
	if v == nil {
		return acc
	}
	if acc == nil || *v < *acc {
		x := *v
		return &x
	}
	return acc
}

func upper(acc, v *float64) *float64 {
	if v == nil {
		return acc
	}
	if acc == nil || *v > *acc {
		x := *v
		return &x
	}
	return acc
}

func mergeNArgs(acc *NArgsSummary, v *models.NArgs) *NArgsSummary {
	if v == nil {
		return acc
	}
	var next NArgsSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.TotalFunctions = add(next.TotalFunctions, v.TotalFunctions)
	next.TotalClosures = add(next.TotalClosures, v.TotalClosures)
	next.Total = add(next.Total, v.Total)
	next.AverageFunctions = mean(next.AverageFunctions, n, v.AverageFunctions)
	next.AverageClosures = mean(next.AverageClosures, n, v.AverageClosures)
	next.Average = mean(next.Average, n, v.Average)
	next.FunctionsMin = lower(next.FunctionsMin, v.FunctionsMin)
	next.FunctionsMax = upper(next.FunctionsMax, v.FunctionsMax)
	next.ClosuresMin = lower(next.ClosuresMin, v.ClosuresMin)
	next.ClosuresMax = upper(next.ClosuresMax, v.ClosuresMax)
	next.Count = n + 1
	return &next
}

func mergeBasic(acc *BasicSummary, v *models.Basic) *BasicSummary {
	if v == nil {
		return acc
	}
	var next BasicSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Sum = add(next.Sum, v.Sum)
	next.Average = mean(next.Average, n, v.Average)
	next.Min = lower(next.Min, v.Min)
	next.Max = upper(next.Max, v.Max)
	next.Count = n + 1
	return &next
}

func mergeHalstead(acc *HalsteadSummary, v *models.Halstead) *HalsteadSummary {
	if v == nil {
		return acc
	}
	var next HalsteadSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.DistinctOperators = add(next.DistinctOperators, v.DistinctOperators)
	next.TotalOperators = add(next.TotalOperators, v.TotalOperators)
	next.DistinctOperands = add(next.DistinctOperands, v.DistinctOperands)
	next.TotalOperands = add(next.TotalOperands, v.TotalOperands)
	next.Length = add(next.Length, v.Length)
	next.EstimatedProgramLength = add(next.EstimatedProgramLength, v.EstimatedProgramLength)
	next.Vocabulary = add(next.Vocabulary, v.Vocabulary)
	next.Volume = add(next.Volume, v.Volume)
	next.Effort = add(next.Effort, v.Effort)
	next.Time = add(next.Time, v.Time)
	next.Bugs = add(next.Bugs, v.Bugs)
	next.PurityRatio = mean(next.PurityRatio, n, v.PurityRatio)
	next.Difficulty = mean(next.Difficulty, n, v.Difficulty)
	next.Level = mean(next.Level, n, v.Level)
	next.Count = n + 1
	return &next
}

func mergeLoc(acc *LocSummary, v *models.Loc) *LocSummary {
	if v == nil {
		return acc
	}
	var next LocSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Sloc = add(next.Sloc, v.Sloc)
	next.Ploc = add(next.Ploc, v.Ploc)
	next.Lloc = add(next.Lloc, v.Lloc)
	next.Cloc = add(next.Cloc, v.Cloc)
	next.Blank = add(next.Blank, v.Blank)
	next.SlocAverage = mean(next.SlocAverage, n, v.SlocAverage)
	next.PlocAverage = mean(next.PlocAverage, n, v.PlocAverage)
	next.LlocAverage = mean(next.LlocAverage, n, v.LlocAverage)
	next.ClocAverage = mean(next.ClocAverage, n, v.ClocAverage)
	next.BlankAverage = mean(next.BlankAverage, n, v.BlankAverage)
	next.SlocMin = lower(next.SlocMin, v.SlocMin)
	next.SlocMax = upper(next.SlocMax, v.SlocMax)
	next.PlocMin = lower(next.PlocMin, v.PlocMin)
	next.PlocMax = upper(next.PlocMax, v.PlocMax)
	next.LlocMin = lower(next.LlocMin, v.LlocMin)
	next.LlocMax = upper(next.LlocMax, v.LlocMax)
	next.ClocMin = lower(next.ClocMin, v.ClocMin)
	next.ClocMax = upper(next.ClocMax, v.ClocMax)
	next.BlankMin = lower(next.BlankMin, v.BlankMin)
	next.BlankMax = upper(next.BlankMax, v.BlankMax)
	next.Count = n + 1
	return &next
}

func mergeNom(acc *NomSummary, v *models.Nom) *NomSummary {
	if v == nil {
		return acc
	}
	var next NomSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Functions = add(next.Functions, v.Functions)
	next.Closures = add(next.Closures, v.Closures)
	next.Total = add(next.Total, v.Total)
	next.FunctionsAverage = mean(next.FunctionsAverage, n, v.FunctionsAverage)
	next.ClosuresAverage = mean(next.ClosuresAverage, n, v.ClosuresAverage)
	next.Average = mean(next.Average, n, v.Average)
	next.FunctionsMin = lower(next.FunctionsMin, v.FunctionsMin)
	next.FunctionsMax = upper(next.FunctionsMax, v.FunctionsMax)
	next.ClosuresMin = lower(next.ClosuresMin, v.ClosuresMin)
	next.ClosuresMax = upper(next.ClosuresMax, v.ClosuresMax)
	next.Count = n + 1
	return &next
}

func mergeMi(acc *MiSummary, v *models.Mi) *MiSummary {
	if v == nil {
		return acc
	}
	var next MiSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Original = mean(next.Original, n, v.Original)
	next.SEI = mean(next.SEI, n, v.SEI)
	next.VisualStudio = mean(next.VisualStudio, n, v.VisualStudio)
	next.Count = n + 1
	return &next
}

func mergeAbc(acc *AbcSummary, v *models.Abc) *AbcSummary {
	if v == nil {
		return acc
	}
	var next AbcSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Assignments = add(next.Assignments, v.Assignments)
	next.Branches = add(next.Branches, v.Branches)
	next.Conditions = add(next.Conditions, v.Conditions)
	next.Magnitude = mean(next.Magnitude, n, v.Magnitude)
	next.AssignmentsAverage = mean(next.AssignmentsAverage, n, v.AssignmentsAverage)
	next.BranchesAverage = mean(next.BranchesAverage, n, v.BranchesAverage)
	next.ConditionsAverage = mean(next.ConditionsAverage, n, v.ConditionsAverage)
	next.AssignmentsMin = lower(next.AssignmentsMin, v.AssignmentsMin)
	next.AssignmentsMax = upper(next.AssignmentsMax, v.AssignmentsMax)
	next.BranchesMin = lower(next.BranchesMin, v.BranchesMin)
	next.BranchesMax = upper(next.BranchesMax, v.BranchesMax)
	next.ConditionsMin = lower(next.ConditionsMin, v.ConditionsMin)
	next.ConditionsMax = upper(next.ConditionsMax, v.ConditionsMax)
	next.Count = n + 1
	return &next
}

func mergeWmc(acc *WmcSummary, v *models.Wmc) *WmcSummary {
	if v == nil {
		return acc
	}
	var next WmcSummary
	if acc != nil {
		next = *acc
	}
	next.Classes = add(next.Classes, v.Classes)
	next.Interfaces = add(next.Interfaces, v.Interfaces)
	next.Total = add(next.Total, v.Total)
	next.Count++
	return &next
}

func mergeNpm(acc *NpmSummary, v *models.Npm) *NpmSummary {
	if v == nil {
		return acc
	}
	var next NpmSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Classes = add(next.Classes, v.Classes)
	next.Interfaces = add(next.Interfaces, v.Interfaces)
	next.ClassMethods = add(next.ClassMethods, v.ClassMethods)
	next.InterfaceMethods = add(next.InterfaceMethods, v.InterfaceMethods)
	next.Total = add(next.Total, v.Total)
	next.TotalMethods = add(next.TotalMethods, v.TotalMethods)
	next.ClassesAverage = mean(next.ClassesAverage, n, v.ClassesAverage)
	next.InterfacesAverage = mean(next.InterfacesAverage, n, v.InterfacesAverage)
	next.Average = mean(next.Average, n, v.Average)
	next.Count = n + 1
	return &next
}

func mergeNpa(acc *NpaSummary, v *models.Npa) *NpaSummary {
	if v == nil {
		return acc
	}
	var next NpaSummary
	if acc != nil {
		next = *acc
	}
	n := next.Count
	next.Classes = add(next.Classes, v.Classes)
	next.Interfaces = add(next.Interfaces, v.Interfaces)
	next.ClassAttributes = add(next.ClassAttributes, v.ClassAttributes)
	next.InterfaceAttributes = add(next.InterfaceAttributes, v.InterfaceAttributes)
	next.Total = add(next.Total, v.Total)
	next.TotalAttributes = add(next.TotalAttributes, v.TotalAttributes)
	next.ClassesAverage = mean(next.ClassesAverage, n, v.ClassesAverage)
	next.InterfacesAverage = mean(next.InterfacesAverage, n, v.InterfacesAverage)
	next.Average = mean(next.Average, n, v.Average)
	next.Count = n + 1
	return &next
}

// Add folds the root metrics of one report into the summary.
// Nested spaces are not visited.
func (s *Summary) Add(r *models.Report) {
	idx := uint32(s.Reports)
	s.Reports++
	if !r.HasMetrics() {
		return
	}
	m := r.Metrics
	if s.coverage == nil {
		s.coverage = newCoverage()
	}
	cov := s.coverage

	if m.NArgs != nil {
		s.NArgs = mergeNArgs(s.NArgs, m.NArgs)
		cov.mark(CategoryNArgs, idx)
	}
	if m.NExits != nil {
		s.NExits = mergeBasic(s.NExits, m.NExits)
		cov.mark(CategoryNExits, idx)
	}
	if m.Cognitive != nil {
		s.Cognitive = mergeBasic(s.Cognitive, m.Cognitive)
		cov.mark(CategoryCognitive, idx)
	}
	if m.Cyclomatic != nil {
		s.Cyclomatic = mergeBasic(s.Cyclomatic, m.Cyclomatic)
		cov.mark(CategoryCyclomatic, idx)
	}
	if m.Halstead != nil {
		s.Halstead = mergeHalstead(s.Halstead, m.Halstead)
		cov.mark(CategoryHalstead, idx)
	}
	if m.Loc != nil {
		s.Loc = mergeLoc(s.Loc, m.Loc)
		cov.mark(CategoryLoc, idx)
	}
	if m.Nom != nil {
		s.Nom = mergeNom(s.Nom, m.Nom)
		cov.mark(CategoryNom, idx)
	}
	if m.Mi != nil {
		s.Mi = mergeMi(s.Mi, m.Mi)
		cov.mark(CategoryMi, idx)
	}
	if m.Abc != nil {
		s.Abc = mergeAbc(s.Abc, m.Abc)
		cov.mark(CategoryAbc, idx)
	}
	if m.Wmc != nil {
		s.Wmc = mergeWmc(s.Wmc, m.Wmc)
		cov.mark(CategoryWmc, idx)
	}
	if m.Npm != nil {
		s.Npm = mergeNpm(s.Npm, m.Npm)
		cov.mark(CategoryNpm, idx)
	}
	if m.Npa != nil {
		s.Npa = mergeNpa(s.Npa, m.Npa)
		cov.mark(CategoryNpa, idx)
	}
}

// Count returns how many folded reports supplied the category.
func (s *Summary) Count(c Category) int {
	switch c {
	case CategoryNArgs:
		if s.NArgs != nil {
			return s.NArgs.Count
		}
	case CategoryNExits:
		if s.NExits != nil {
			return s.NExits.Count
		}
	case CategoryCognitive:
		if s.Cognitive != nil {
			return s.Cognitive.Count
		}
	case CategoryCyclomatic:
		if s.Cyclomatic != nil {
			return s.Cyclomatic.Count
		}
	case CategoryHalstead:
		if s.Halstead != nil {
			return s.Halstead.Count
		}
	case CategoryLoc:
		if s.Loc != nil {
			return s.Loc.Count
		}
	case CategoryNom:
		if s.Nom != nil {
			return s.Nom.Count
		}
	case CategoryMi:
		if s.Mi != nil {
			return s.Mi.Count
		}
	case CategoryAbc:
		if s.Abc != nil {
			return s.Abc.Count
		}
	case CategoryWmc:
		if s.Wmc != nil {
			return s.Wmc.Count
		}
	case CategoryNpm:
		if s.Npm != nil {
			return s.Npm.Count
		}
	case CategoryNpa:
		if s.Npa != nil {
			return s.Npa.Count
		}
	}
	return 0
}

// Present reports whether any folded report supplied the category.
func (s *Summary) Present(c Category) bool {
	return s.Count(c) > 0
}
