// Package scanner discovers report files under one or more roots.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/panbanda/tally/pkg/config"
)

// ErrNotADirectory is returned when a scan root is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// PathError describes a scan root that cannot be scanned.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Scanner finds report files in a directory tree.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot finds the root of the git repository by looking for .git directory.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns builds the matchers for one root. Config patterns are
// parsed as gitignore patterns relative to the root; .gitignore files are
// read from the enclosing repository, or from the root when there is none.
// Repository patterns that ignore the root itself, or a directory above it,
// are dropped: a root named explicitly is always scanned.
func (s *Scanner) loadExcludePatterns(root string) {
	s.matchers = s.matchers[:0]

	var patterns []gitignore.Pattern
	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}

	if !s.config.Exclude.Gitignore {
		return
	}
	base := findGitRoot(root)
	if base == "" {
		base = root
	}
	gitPatterns, err := gitignore.ReadPatterns(osfs.New(base), nil)
	if err != nil || len(gitPatterns) == 0 {
		return
	}
	rel, err := filepath.Rel(base, root)
	if err != nil {
		return
	}
	prefix := splitPath(rel)
	matcher := gitignore.NewMatcher(gitPatterns)
	for i := 1; i <= len(prefix); i++ {
		if matcher.Match(prefix[:i], true) {
			return
		}
	}
	s.matchers = append(s.matchers, &prefixMatcher{
		prefix:  prefix,
		matcher: matcher,
	})
}

// prefixMatcher matches root-relative paths against patterns read from an
// ancestor directory.
type prefixMatcher struct {
	prefix  []string
	matcher gitignore.Matcher
}

func (m *prefixMatcher) Match(path []string, isDir bool) bool {
	full := make([]string, 0, len(m.prefix)+len(path))
	full = append(full, m.prefix...)
	full = append(full, path...)
	return m.matcher.Match(full, isDir)
}

func splitPath(rel string) []string {
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

// isExcluded checks if a root-relative path matches any exclusion pattern.
func (s *Scanner) isExcluded(rel string, isDir bool) bool {
	parts := splitPath(rel)
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// ScanDir recursively scans root for report files. It fails with
// ErrNotADirectory, wrapped in a *PathError, when root is not a directory.
// Unreadable subdirectories are skipped. A root that is a symlink is
// followed; returned paths keep the root as given. The result is sorted.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Err: ErrNotADirectory}
	}

	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}

	s.loadExcludePatterns(absRoot)

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(absRoot, path)
		if rel == "." {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				return nil
			}
		}

		if d.IsDir() {
			if s.config.ShouldExcludeDir(d.Name()) || s.isExcluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.config.HasExtension(path) || s.isExcluded(rel, false) {
			return nil
		}
		files = append(files, filepath.Join(root, rel))
		return nil
	})
	if walkErr != nil {
		return nil, &PathError{Path: root, Err: walkErr}
	}

	sort.Strings(files)
	return files, nil
}

// ScanDirs scans every root and returns the union of the results. All roots
// are checked before any is walked, so one bad root fails the call without
// partial work.
func (s *Scanner) ScanDirs(roots []string) ([]string, error) {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, &PathError{Path: root, Err: err}
		}
		if !info.IsDir() {
			return nil, &PathError{Path: root, Err: ErrNotADirectory}
		}
	}

	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		found, err := s.ScanDir(root)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			key := f
			if abs, err := filepath.Abs(f); err == nil {
				key = abs
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, f)
		}
	}
	return files, nil
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// resolveRoot returns root as an absolute path with symlinks resolved.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// ScanFile reports whether a scan of root would pick up path. Directory
// exclusions and ignore patterns apply to every directory between root and
// the file. A path outside root is never picked up.
func (s *Scanner) ScanFile(root, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	absRoot, err := resolveRoot(root)
	if err != nil {
		return false, &PathError{Path: root, Err: err}
	}
	s.loadExcludePatterns(absRoot)

	parts := splitPath(rel)
	for i := 1; i < len(parts); i++ {
		if s.config.ShouldExcludeDir(parts[i-1]) || s.isExcluded(strings.Join(parts[:i], "/"), true) {
			return false, nil
		}
	}
	if s.isExcluded(rel, false) {
		return false, nil
	}
	return s.config.HasExtension(path), nil
}
