package summary

// Combine returns the summary of the reports folded into a followed by the
// reports folded into b. Neither argument is modified. Combining partial
// summaries of contiguous report ranges gives the same result as folding
// the whole range, so summaries can be built in parallel and joined.
func Combine(a, b *Summary) *Summary {
	if a == nil {
		a = &Summary{}
	}
	if b == nil {
		b = &Summary{}
	}
	out := &Summary{
		NArgs:      combineNArgs(a.NArgs, b.NArgs),
		NExits:     combineBasic(a.NExits, b.NExits),
		Cognitive:  combineBasic(a.Cognitive, b.Cognitive),
		Cyclomatic: combineBasic(a.Cyclomatic, b.Cyclomatic),
		Halstead:   combineHalstead(a.Halstead, b.Halstead),
		Loc:        combineLoc(a.Loc, b.Loc),
		Nom:        combineNom(a.Nom, b.Nom),
		Mi:         combineMi(a.Mi, b.Mi),
		Abc:        combineAbc(a.Abc, b.Abc),
		Wmc:        combineWmc(a.Wmc, b.Wmc),
		Npm:        combineNpm(a.Npm, b.Npm),
		Npa:        combineNpa(a.Npa, b.Npa),
		Reports:    a.Reports + b.Reports,
	}
	if a.coverage != nil || b.coverage != nil {
		out.coverage = newCoverage()
		out.coverage.merge(a.coverage, 0)
		out.coverage.merge(b.coverage, uint32(a.Reports))
	}
	return out
}

func wmean(a float64, na int, b float64, nb int) float64 {
	if na+nb == 0 {
		return 0
	}
	return (a*float64(na) + b*float64(nb)) / float64(na+nb)
}

func minOf(a, b *float64) *float64 {
	return lower(a, b)
}

func maxOf(a, b *float64) *float64 {
	return upper(a, b)
}

func combineNArgs(a, b *NArgsSummary) *NArgsSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &NArgsSummary{
		TotalFunctions:   a.TotalFunctions + b.TotalFunctions,
		TotalClosures:    a.TotalClosures + b.TotalClosures,
		Total:            a.Total + b.Total,
		AverageFunctions: wmean(a.AverageFunctions, na, b.AverageFunctions, nb),
		AverageClosures:  wmean(a.AverageClosures, na, b.AverageClosures, nb),
		Average:          wmean(a.Average, na, b.Average, nb),
		FunctionsMin:     minOf(a.FunctionsMin, b.FunctionsMin),
		FunctionsMax:     maxOf(a.FunctionsMax, b.FunctionsMax),
		ClosuresMin:      minOf(a.ClosuresMin, b.ClosuresMin),
		ClosuresMax:      maxOf(a.ClosuresMax, b.ClosuresMax),
		Count:            na + nb,
	}
}

func combineBasic(a, b *BasicSummary) *BasicSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	return &BasicSummary{
		Sum:     a.Sum + b.Sum,
		Average: wmean(a.Average, a.Count, b.Average, b.Count),
		Min:     minOf(a.Min, b.Min),
		Max:     maxOf(a.Max, b.Max),
		Count:   a.Count + b.Count,
	}
}

func combineHalstead(a, b *HalsteadSummary) *HalsteadSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &HalsteadSummary{
		DistinctOperators:      a.DistinctOperators + b.DistinctOperators,
		TotalOperators:         a.TotalOperators + b.TotalOperators,
		DistinctOperands:       a.DistinctOperands + b.DistinctOperands,
		TotalOperands:          a.TotalOperands + b.TotalOperands,
		Length:                 a.Length + b.Length,
		EstimatedProgramLength: a.EstimatedProgramLength + b.EstimatedProgramLength,
		Vocabulary:             a.Vocabulary + b.Vocabulary,
		Volume:                 a.Volume + b.Volume,
		Effort:                 a.Effort + b.Effort,
		Time:                   a.Time + b.Time,
		Bugs:                   a.Bugs + b.Bugs,
		PurityRatio:            wmean(a.PurityRatio, na, b.PurityRatio, nb),
		Difficulty:             wmean(a.Difficulty, na, b.Difficulty, nb),
		Level:                  wmean(a.Level, na, b.Level, nb),
		Count:                  na + nb,
	}
}

func combineLoc(a, b *LocSummary) *LocSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &LocSummary{
		Sloc:         a.Sloc + b.Sloc,
		Ploc:         a.Ploc + b.Ploc,
		Lloc:         a.Lloc + b.Lloc,
		Cloc:         a.Cloc + b.Cloc,
		Blank:        a.Blank + b.Blank,
		SlocAverage:  wmean(a.SlocAverage, na, b.SlocAverage, nb),
		PlocAverage:  wmean(a.PlocAverage, na, b.PlocAverage, nb),
		LlocAverage:  wmean(a.LlocAverage, na, b.LlocAverage, nb),
		ClocAverage:  wmean(a.ClocAverage, na, b.ClocAverage, nb),
		BlankAverage: wmean(a.BlankAverage, na, b.BlankAverage, nb),
		SlocMin:      minOf(a.SlocMin, b.SlocMin),
		SlocMax:      maxOf(a.SlocMax, b.SlocMax),
		PlocMin:      minOf(a.PlocMin, b.PlocMin),
		PlocMax:      maxOf(a.PlocMax, b.PlocMax),
		LlocMin:      minOf(a.LlocMin, b.LlocMin),
		LlocMax:      maxOf(a.LlocMax, b.LlocMax),
		ClocMin:      minOf(a.ClocMin, b.ClocMin),
		ClocMax:      maxOf(a.ClocMax, b.ClocMax),
		BlankMin:     minOf(a.BlankMin, b.BlankMin),
		BlankMax:     maxOf(a.BlankMax, b.BlankMax),
		Count:        na + nb,
	}
}

func combineNom(a, b *NomSummary) *NomSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &NomSummary{
		Functions:        a.Functions + b.Functions,
		Closures:         a.Closures + b.Closures,
		Total:            a.Total + b.Total,
		FunctionsAverage: wmean(a.FunctionsAverage, na, b.FunctionsAverage, nb),
		ClosuresAverage:  wmean(a.ClosuresAverage, na, b.ClosuresAverage, nb),
		Average:          wmean(a.Average, na, b.Average, nb),
		FunctionsMin:     minOf(a.FunctionsMin, b.FunctionsMin),
		FunctionsMax:     maxOf(a.FunctionsMax, b.FunctionsMax),
		ClosuresMin:      minOf(a.ClosuresMin, b.ClosuresMin),
		ClosuresMax:      maxOf(a.ClosuresMax, b.ClosuresMax),
		Count:            na + nb,
	}
}

func combineMi(a, b *MiSummary) *MiSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &MiSummary{
		Original:     wmean(a.Original, na, b.Original, nb),
		SEI:          wmean(a.SEI, na, b.SEI, nb),
		VisualStudio: wmean(a.VisualStudio, na, b.VisualStudio, nb),
		Count:        na + nb,
	}
}

func combineAbc(a, b *AbcSummary) *AbcSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &AbcSummary{
		Assignments:        a.Assignments + b.Assignments,
		Branches:           a.Branches + b.Branches,
		Conditions:         a.Conditions + b.Conditions,
		Magnitude:          wmean(a.Magnitude, na, b.Magnitude, nb),
		AssignmentsAverage: wmean(a.AssignmentsAverage, na, b.AssignmentsAverage, nb),
		BranchesAverage:    wmean(a.BranchesAverage, na, b.BranchesAverage, nb),
		ConditionsAverage:  wmean(a.ConditionsAverage, na, b.ConditionsAverage, nb),
		AssignmentsMin:     minOf(a.AssignmentsMin, b.AssignmentsMin),
		AssignmentsMax:     maxOf(a.AssignmentsMax, b.AssignmentsMax),
		BranchesMin:        minOf(a.BranchesMin, b.BranchesMin),
		BranchesMax:        maxOf(a.BranchesMax, b.BranchesMax),
		ConditionsMin:      minOf(a.ConditionsMin, b.ConditionsMin),
		ConditionsMax:      maxOf(a.ConditionsMax, b.ConditionsMax),
		Count:              na + nb,
	}
}

func combineWmc(a, b *WmcSummary) *WmcSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	return &WmcSummary{
		Classes:    a.Classes + b.Classes,
		Interfaces: a.Interfaces + b.Interfaces,
		Total:      a.Total + b.Total,
		Count:      a.Count + b.Count,
	}
}

func combineNpm(a, b *NpmSummary) *NpmSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &NpmSummary{
		Classes:           a.Classes + b.Classes,
		Interfaces:        a.Interfaces + b.Interfaces,
		ClassMethods:      a.ClassMethods + b.ClassMethods,
		InterfaceMethods:  a.InterfaceMethods + b.InterfaceMethods,
		Total:             a.Total + b.Total,
		TotalMethods:      a.TotalMethods + b.TotalMethods,
		ClassesAverage:    wmean(a.ClassesAverage, na, b.ClassesAverage, nb),
		InterfacesAverage: wmean(a.InterfacesAverage, na, b.InterfacesAverage, nb),
		Average:           wmean(a.Average, na, b.Average, nb),
		Count:             na + nb,
	}
}

func combineNpa(a, b *NpaSummary) *NpaSummary {
	if a == nil || b == nil {
		return pick(a, b)
	}
	na, nb := a.Count, b.Count
	return &NpaSummary{
		Classes:             a.Classes + b.Classes,
		Interfaces:          a.Interfaces + b.Interfaces,
		ClassAttributes:     a.ClassAttributes + b.ClassAttributes,
		InterfaceAttributes: a.InterfaceAttributes + b.InterfaceAttributes,
		Total:               a.Total + b.Total,
		TotalAttributes:     a.TotalAttributes + b.TotalAttributes,
		ClassesAverage:      wmean(a.ClassesAverage, na, b.ClassesAverage, nb),
		InterfacesAverage:   wmean(a.InterfacesAverage, na, b.InterfacesAverage, nb),
		Average:             wmean(a.Average, na, b.Average, nb),
		Count:               na + nb,
	}
}

// pick returns whichever accumulator is present, or nil when neither is.
// Accumulators are never mutated after a merge, so sharing is safe.
func pick[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}
