// Package analysis runs the two pipeline stages, discovery then
// summarization, with settings taken from the loaded configuration.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/internal/fileproc"
	"github.com/panbanda/tally/internal/scanner"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/panbanda/tally/pkg/config"
	"github.com/panbanda/tally/pkg/models"
)

// Service orchestrates report discovery and summarization.
type Service struct {
	config  *config.Config
	noCache bool
	memory  *cache.Memory
	onError fileproc.ErrorFunc
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithNoCache disables the disk cache regardless of configuration.
func WithNoCache() Option {
	return func(s *Service) {
		s.noCache = true
	}
}

// WithMemoryCache reuses decoded reports across calls. Long-lived callers
// such as watch and the MCP server pass one shared cache.
func WithMemoryCache(m *cache.Memory) Option {
	return func(s *Service) {
		s.memory = m
	}
}

// WithErrorFunc receives a diagnostic for every report that is dropped.
func WithErrorFunc(fn fileproc.ErrorFunc) Option {
	return func(s *Service) {
		s.onError = fn
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.LoadOrDefault()
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() *config.Config {
	return s.config
}

// Discover lists the report files under roots. No roots means the current
// directory. Any root that cannot be scanned fails the whole call.
func (s *Service) Discover(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := scanner.NewScanner(s.config).ScanDirs(roots)
	if err != nil {
		return nil, &AnalysisError{Stage: StageDiscover, Err: err}
	}
	return files, nil
}

// AnalyzeDirectory discovers every report under roots and folds them into
// one Summary. Only precondition failures are returned as errors; files
// that cannot be loaded are listed in the result and skipped.
func (s *Service) AnalyzeDirectory(ctx context.Context, roots []string) (*summary.Analysis, error) {
	files, err := s.Discover(roots)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeFiles(ctx, files)
}

// AnalyzeFiles summarizes an explicit list of report files.
func (s *Service) AnalyzeFiles(ctx context.Context, files []string) (*summary.Analysis, error) {
	a, err := s.newAnalyzer()
	if err != nil {
		return nil, &AnalysisError{Stage: StageSetup, Err: err}
	}
	defer a.Close()

	// Analyze never fails: unreadable files are collected in the result.
	result, _ := a.Analyze(ctx, files)
	return result, nil
}

// Invalidate drops the disk cache entries of paths. Entries are checked
// against the file content on read, so this reclaims space for reports that
// changed or were deleted; it never changes a result.
func (s *Service) Invalidate(paths []string) error {
	c, err := s.diskCache()
	if err != nil || c == nil {
		return err
	}
	var errs []error
	for _, path := range paths {
		if err := c.Invalidate(path); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// diskCache opens the configured disk cache, or returns nil when it is off.
func (s *Service) diskCache() (*cache.Cache, error) {
	cfg := s.config
	if !cfg.Cache.Enabled || s.noCache {
		return nil, nil
	}
	c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return c, nil
}

func (s *Service) newAnalyzer() (*summary.Analyzer, error) {
	cfg := s.config
	opts := []summary.Option{
		summary.WithWorkers(cfg.Analysis.Workers),
		summary.WithParallelFold(cfg.Analysis.ParallelFold),
		summary.WithMaxFileSize(cfg.Scan.MaxFileSize),
		summary.WithMemoryCache(s.memory),
		summary.WithErrorFunc(s.onError),
	}

	if cfg.Analysis.Strict {
		v, err := models.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("compile report schema: %w", err)
		}
		opts = append(opts, summary.WithValidator(v))
	}

	c, err := s.diskCache()
	if err != nil {
		return nil, err
	}
	if c != nil {
		opts = append(opts, summary.WithCache(c))
	}

	return summary.New(opts...), nil
}

// Stage names the pipeline step an AnalysisError came from.
type Stage string

const (
	StageDiscover Stage = "discover"
	StageSetup    Stage = "setup"
)

// AnalysisError is a failure that stops a run before any report is loaded.
type AnalysisError struct {
	Stage Stage
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsNotADirectory reports whether err was caused by a root that is not a
// directory.
func IsNotADirectory(err error) bool {
	return errors.Is(err, scanner.ErrNotADirectory)
}
