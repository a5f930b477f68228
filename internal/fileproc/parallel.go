// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/panbanda/tally/pkg/analyzer"
	"github.com/sourcegraph/conc/pool"
)

// ErrFileTooLarge is returned by ReadFile when a file exceeds the size limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Len returns the number of collected errors.
func (e *ProcessingErrors) Len() int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors)
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// Unwrap returns the individual errors so errors.Is and errors.As see them.
func (e *ProcessingErrors) Unwrap() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}
	return errs
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
// Report loading is I/O bound, so oversubscribing the CPUs pays off.
const DefaultWorkerMultiplier = 2

// Workers resolves a configured worker count. Values <= 0 mean 2x NumCPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU() * DefaultWorkerMultiplier
	}
	return n
}

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file processing error occurs.
// Receives the file path and the error. If nil, errors are silently skipped.
type ErrorFunc func(path string, err error)

// ForEachFileN processes files with configurable worker count and callbacks.
// Successful results keep the order of files; failed files leave no gap.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func ForEachFileN[T any](files []string, maxWorkers int, fn func(string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(files) == 0 {
		return nil
	}

	// Each task owns one slot, so no lock is needed to collect results.
	slots := make([]T, len(files))
	ok := make([]bool, len(files))

	p := pool.New().WithMaxGoroutines(Workers(maxWorkers))
	for i, path := range files {
		p.Go(func() {
			result, err := fn(path)
			if onProgress != nil {
				defer onProgress()
			}
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}
			slots[i] = result
			ok[i] = true
		})
	}
	p.Wait()

	results := make([]T, 0, len(files))
	for i := range slots {
		if ok[i] {
			results = append(results, slots[i])
		}
	}
	return results
}

// ForEachFileCollectErrors processes files in parallel and collects all errors.
// Progress is reported to the tracker carried by ctx, if any.
func ForEachFileCollectErrors[T any](ctx context.Context, files []string, maxWorkers int, fn func(string) (T, error)) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	var onProgress ProgressFunc
	if tracker := analyzer.TrackerFromContext(ctx); tracker != nil {
		tracker.Add(len(files))
		onProgress = func() { tracker.Tick("") }
	}

	errs := &ProcessingErrors{}
	results := ForEachFileN(files, maxWorkers, fn, onProgress, errs.Add)
	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}

// ReadFile reads a whole file, refusing files larger than maxSize bytes.
// A maxSize <= 0 disables the limit.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if maxSize <= 0 {
		return io.ReadAll(f)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, info.Size(), maxSize)
	}
	return io.ReadAll(io.LimitReader(f, maxSize+1))
}
