package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/internal/fileproc"
	"github.com/panbanda/tally/pkg/analyzer"
	"github.com/panbanda/tally/pkg/models"
	"github.com/sourcegraph/conc/pool"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analysis is the result of summarizing a set of report files.
type Analysis struct {
	Summary *Summary `json:"summary"`

	// Reports are the successfully decoded reports in input order.
	// Coverage indices refer to positions in this slice.
	Reports []*models.Report `json:"-"`

	// Failed lists the files that could not be read or decoded.
	Failed []fileproc.ProcessingError `json:"-"`
}

// Analyzer loads report files in parallel and folds them into a Summary.
type Analyzer struct {
	workers     int
	foldWorkers int
	maxFileSize int64
	validator   *models.Validator
	disk        *cache.Cache
	memory      *cache.Memory
	onError     fileproc.ErrorFunc
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers sets the loader pool size (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithParallelFold folds with a tree reduction over n partitions instead of
// a single left fold. n <= 1 keeps the sequential fold.
func WithParallelFold(n int) Option {
	return func(a *Analyzer) {
		a.foldWorkers = n
	}
}

// WithMaxFileSize sets the maximum report size to load (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithValidator validates every document against the report schema before
// decoding it.
func WithValidator(v *models.Validator) Option {
	return func(a *Analyzer) {
		a.validator = v
	}
}

// WithCache enables the disk cache of decoded reports.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.disk = c
	}
}

// WithMemoryCache enables the in-process cache of decoded reports.
func WithMemoryCache(m *cache.Memory) Option {
	return func(a *Analyzer) {
		a.memory = m
	}
}

// WithErrorFunc receives a diagnostic for every file that is dropped.
func WithErrorFunc(fn fileproc.ErrorFunc) Option {
	return func(a *Analyzer) {
		a.onError = fn
	}
}

// New creates a new summary analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze loads files and folds them into one Summary. Unreadable or
// malformed files are reported through the error callback and left out;
// they never fail the call. Progress is tracked via context using
// analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	reports, errs := a.Load(ctx, files)

	var s *Summary
	if a.foldWorkers > 1 {
		s = SummarizeParallel(reports, a.foldWorkers)
	} else {
		s = Summarize(reports)
	}

	analysis := &Analysis{Summary: s, Reports: reports}
	if errs != nil {
		analysis.Failed = append(analysis.Failed, errs.Errors...)
		sort.Slice(analysis.Failed, func(i, j int) bool {
			return analysis.Failed[i].Path < analysis.Failed[j].Path
		})
	}
	return analysis, nil
}

// Load reads and decodes files concurrently. Results keep the order of
// files; failures are collected, never returned as a whole-run error.
func (a *Analyzer) Load(ctx context.Context, files []string) ([]*models.Report, *fileproc.ProcessingErrors) {
	reports, errs := fileproc.ForEachFileCollectErrors(ctx, files, a.workers, a.LoadFile)
	if errs != nil && a.onError != nil {
		for _, pe := range errs.Errors {
			a.onError(pe.Path, pe.Err)
		}
	}
	return reports, errs
}

// LoadFile reads and decodes a single report.
func (a *Analyzer) LoadFile(path string) (*models.Report, error) {
	var key cache.Key
	if a.memory != nil {
		k, err := cache.KeyFor(path)
		if err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}
		if r, ok := a.memory.Get(k); ok {
			return r, nil
		}
		key = k
	}

	data, err := fileproc.ReadFile(path, a.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	// Validate before the disk lookup: entries may come from non-strict runs.
	if a.validator != nil {
		if err := a.validator.Validate(data); err != nil {
			return nil, err
		}
	}

	r, ok := a.disk.GetReport(path, data)
	if !ok {
		r, err = models.ParseReport(data)
		if err != nil {
			return nil, err
		}
		r.Path = path
		// A failed cache write only costs a decode next time.
		_ = a.disk.PutReport(path, data, r)
	}

	if a.memory != nil {
		a.memory.Add(key, r)
	}
	return r, nil
}

// Close releases any resources held by the analyzer.
func (a *Analyzer) Close() {}

// Summarize folds reports left to right into a new Summary.
// It cannot fail: no reports, or reports without metrics, leave every
// category absent.
func Summarize(reports []*models.Report) *Summary {
	s := &Summary{}
	for _, r := range reports {
		s.Add(r)
	}
	return s
}

// SummarizeParallel splits reports into contiguous partitions, folds them
// concurrently, and joins the partial summaries in order with Combine.
// The result matches Summarize up to floating point rounding of the means.
func SummarizeParallel(reports []*models.Report, partitions int) *Summary {
	if partitions <= 1 || len(reports) < 2*partitions {
		return Summarize(reports)
	}

	size := (len(reports) + partitions - 1) / partitions
	parts := make([]*Summary, (len(reports)+size-1)/size)

	p := pool.New().WithMaxGoroutines(partitions)
	for i := range parts {
		lo := i * size
		hi := min(lo+size, len(reports))
		p.Go(func() {
			parts[i] = Summarize(reports[lo:hi])
		})
	}
	p.Wait()

	return reduce(parts)
}

// reduce joins adjacent pairs until one summary is left.
func reduce(parts []*Summary) *Summary {
	for len(parts) > 1 {
		next := make([]*Summary, 0, (len(parts)+1)/2)
		for i := 0; i < len(parts); i += 2 {
			if i+1 == len(parts) {
				next = append(next, parts[i])
				continue
			}
			next = append(next, Combine(parts[i], parts[i+1]))
		}
		parts = next
	}
	if len(parts) == 0 {
		return &Summary{}
	}
	return parts[0]
}
