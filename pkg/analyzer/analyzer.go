// Package analyzer defines the contract shared by report analyzers and the
// progress plumbing they report through.
package analyzer

import "context"

// FileAnalyzer turns a set of report files into a result of type T.
type FileAnalyzer[T any] interface {
	// Analyze processes the files and returns the result. Individual file
	// failures are part of the result, not the error; the error is reserved
	// for problems that invalidate the whole run.
	Analyze(ctx context.Context, files []string) (T, error)

	// Close releases any resources held by the analyzer.
	Close()
}
