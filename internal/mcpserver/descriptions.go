package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeSummarize() string {
	return `Aggregates rust-code-analysis style JSON metric reports found under the given directories into one project-wide summary.

USE WHEN:
- Getting a single picture of code size and complexity across many files
- Comparing two trees of reports (run once per tree)
- Checking overall maintainability before a release

INTERPRETING RESULTS:
- Sums and totals add up across files; averages are means over the files that reported the category
- Min and Max are extremes over all files; N/A means no file supplied that value
- Count is the number of files that supplied the category
- A category shown as N/A was present in none of the reports
- Maintainability Index below 20 (Visual Studio scale) signals hard to maintain code

METRICS RETURNED:
- nargs, nexits, cognitive, cyclomatic, halstead, loc, nom, mi, abc
- wmc, npm, npa when class_metrics is set
- only the listed families when categories is set, in the order given
- reports: number of files folded (0 for an empty directory); failed: files skipped with the reason`
}

func describeFiles() string {
	return `Lists the headline metrics of each report file, sorted by the chosen metric.

USE WHEN:
- Finding the largest or most complex files after reading the summary
- Building a refactoring shortlist
- Checking which reports dominate a total

INTERPRETING RESULTS:
- Numeric sorts are descending; files without the metric come last
- MI is the Visual Studio maintainability index (0-100, higher is better)
- Bugs is the Halstead delivered bugs estimate
- P50 and P90 describe the distribution across all files, not just the listed ones

METRICS RETURNED:
- Per file: path, kind, sloc, cyclomatic sum, cognitive sum, mi, bugs
- Distribution: count, mean, p50, p90 and max of sloc, cyclomatic, cognitive and mi`
}

func describeCoverage() string {
	return `Shows, for every metric category, how many report files supplied it and which did not.

USE WHEN:
- A summary count is lower than the number of files
- Reports come from several tool versions or languages
- Verifying that a report set is complete before comparing summaries

INTERPRETING RESULTS:
- present equals the Count shown in the summary for that category
- missing lists the files that lacked the category entirely
- Categories missing everywhere are usually unsupported for the language

METRICS RETURNED:
- reports: total files folded
- Per category: label, key, present count, missing file paths`
}
