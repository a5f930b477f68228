package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for tally.
type Config struct {
	// Report discovery
	Scan ScanConfig `koanf:"scan" toml:"scan" yaml:"scan"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude" yaml:"exclude"`

	// Loading and folding
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis" yaml:"analysis"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache" yaml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output" yaml:"output"`
}

// ScanConfig controls which files are treated as reports.
type ScanConfig struct {
	Extensions  []string `koanf:"extensions" toml:"extensions" yaml:"extensions"`
	MaxFileSize int64    `koanf:"max_file_size" toml:"max_file_size" yaml:"max_file_size"` // bytes, 0 = no limit
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns" yaml:"patterns"`
	Dirs      []string `koanf:"dirs" toml:"dirs" yaml:"dirs"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore" yaml:"gitignore"`
}

// AnalysisConfig controls loading and folding.
type AnalysisConfig struct {
	Workers      int  `koanf:"workers" toml:"workers" yaml:"workers"`                   // 0 = 2x NumCPU
	Strict       bool `koanf:"strict" toml:"strict" yaml:"strict"`                      // validate against the report schema
	ParallelFold int  `koanf:"parallel_fold" toml:"parallel_fold" yaml:"parallel_fold"` // partitions, <= 1 = sequential
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled       bool   `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Dir           string `koanf:"dir" toml:"dir" yaml:"dir"`
	TTL           int    `koanf:"ttl" toml:"ttl" yaml:"ttl"` // TTL in hours
	MemoryEntries int    `koanf:"memory_entries" toml:"memory_entries" yaml:"memory_entries"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format       string `koanf:"format" toml:"format" yaml:"format"` // text, json, markdown, toon
	Color        bool   `koanf:"color" toml:"color" yaml:"color"`
	Verbose      bool   `koanf:"verbose" toml:"verbose" yaml:"verbose"`
	ClassMetrics bool   `koanf:"class_metrics" toml:"class_metrics" yaml:"class_metrics"`
	Precision    int    `koanf:"precision" toml:"precision" yaml:"precision"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions:  []string{".json"},
			MaxFileSize: 0,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"package.json",
				"package-lock.json",
				"tsconfig.json",
				"tally.json",
				".tally.json",
			},
			Dirs: []string{
				".git",
				".tally",
				"node_modules",
			},
			Gitignore: true,
		},
		Analysis: AnalysisConfig{
			Workers:      0,
			Strict:       false,
			ParallelFold: 0,
		},
		Cache: CacheConfig{
			Enabled:       false,
			Dir:           ".tally/cache",
			TTL:           24,
			MemoryEntries: 4096,
		},
		Output: OutputConfig{
			Format:       "text",
			Color:        true,
			Verbose:      false,
			ClassMetrics: false,
			Precision:    2,
		},
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Scan.Extensions) == 0 {
		errs = append(errs, errors.New("scan.extensions must not be empty"))
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("scan.extensions: %q must start with a dot", ext))
		}
	}
	if c.Scan.MaxFileSize < 0 {
		errs = append(errs, errors.New("scan.max_file_size must not be negative"))
	}
	if c.Analysis.Workers < 0 {
		errs = append(errs, errors.New("analysis.workers must not be negative"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl must not be negative"))
	}
	switch c.Output.Format {
	case "text", "json", "markdown", "toon":
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		errs = append(errs, errors.New("output.precision must be between 0 and 10"))
	}
	return errors.Join(errs...)
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Unmarshal merges lists element-wise into the defaults; a list in the
	// file replaces the default list instead.
	if k.Exists("scan.extensions") {
		cfg.Scan.Extensions = k.Strings("scan.extensions")
	}
	if k.Exists("exclude.patterns") {
		cfg.Exclude.Patterns = k.Strings("exclude.patterns")
	}
	if k.Exists("exclude.dirs") {
		cfg.Exclude.Dirs = k.Strings("exclude.dirs")
	}

	return cfg, nil
}

// LoadResult is a loaded configuration and the file it came from.
type LoadResult struct {
	Config *Config
	// Source is the config file path, or empty when defaults were used.
	Source string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path string
	dirs []string
}

// WithPath loads exactly this file instead of searching.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithSearchDirs replaces the directories searched for a config file.
func WithSearchDirs(dirs ...string) LoadOption {
	return func(o *loadOptions) {
		o.dirs = dirs
	}
}

// configNames are the file names searched for, in order.
var configNames = []string{
	"tally.toml",
	"tally.yaml",
	"tally.yml",
	"tally.json",
	".tally.toml",
	".tally.yaml",
	".tally.yml",
	".tally.json",
}

// LoadConfig loads and validates the configuration. With WithPath the file
// must exist; otherwise the first file found in the search directories is
// used, falling back to the defaults.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := loadOptions{dirs: []string{".", ".tally"}}
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		path = find(o.dirs)
	}
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Source: path}, nil
}

func find(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	result, err := LoadConfig()
	if err != nil {
		return DefaultConfig()
	}
	return result.Config
}

// HasExtension reports whether path has one of the configured report extensions.
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Scan.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// ShouldExcludeDir reports whether a directory name is excluded.
func (c *Config) ShouldExcludeDir(name string) bool {
	for _, dir := range c.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}
