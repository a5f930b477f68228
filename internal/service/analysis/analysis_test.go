package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/internal/scanner"
	"github.com/panbanda/tally/pkg/analyzer"
	"github.com/panbanda/tally/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func slocReport(name string, sloc int) string {
	return `{"name":"` + name + `","kind":"unit","metrics":{"loc":{"sloc":` + strconv.Itoa(sloc) + `}}}`
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	return cfg
}

func TestAnalyzeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), slocReport("a.rs", 10))
	writeFile(t, filepath.Join(root, "sub", "b.json"), slocReport("b.rs", 20))
	writeFile(t, filepath.Join(root, "sub", "c.json"), slocReport("c.rs", 30))
	writeFile(t, filepath.Join(root, "notes.txt"), "not a report")

	svc := New(WithConfig(testConfig()))
	result, err := svc.AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)

	loc := result.Summary.Loc
	require.NotNil(t, loc)
	assert.InDelta(t, 60, loc.Sloc, 1e-9)
	assert.Equal(t, 3, loc.Count)
	assert.Empty(t, result.Failed)
}

func TestAnalyzeDirectory_SoftFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.json"), slocReport("good.rs", 5))
	writeFile(t, filepath.Join(root, "bad.json"), "{not json")

	var mu sync.Mutex
	var dropped []string
	svc := New(WithConfig(testConfig()), WithErrorFunc(func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		dropped = append(dropped, filepath.Base(path))
	}))

	result, err := svc.AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)

	assert.Equal(t, []string{"bad.json"}, dropped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 1, result.Summary.Loc.Count)
	assert.Equal(t, 1, result.Summary.Reports)
}

func TestAnalyzeDirectory_MultipleRoots(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(a, "x.json"), slocReport("x.rs", 1))
	writeFile(t, filepath.Join(b, "y.json"), slocReport("y.rs", 2))

	result, err := New(WithConfig(testConfig())).AnalyzeDirectory(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.InDelta(t, 3, result.Summary.Loc.Sloc, 1e-9)
}

func TestAnalyzeDirectory_NotADirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.json")
	writeFile(t, file, slocReport("a.rs", 1))

	_, err := New(WithConfig(testConfig())).AnalyzeDirectory(context.Background(), []string{root, file})
	require.Error(t, err)

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, StageDiscover, ae.Stage)
	assert.True(t, IsNotADirectory(err))

	var pe *scanner.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, file, pe.Path)
}

func TestAnalyzeDirectory_MissingRoot(t *testing.T) {
	_, err := New(WithConfig(testConfig())).AnalyzeDirectory(context.Background(), []string{filepath.Join(t.TempDir(), "gone")})
	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.False(t, IsNotADirectory(err))
}

func TestAnalyzeDirectory_Empty(t *testing.T) {
	result, err := New(WithConfig(testConfig())).AnalyzeDirectory(context.Background(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.Reports)
	assert.Nil(t, result.Summary.Loc)
}

func TestAnalyzeDirectory_Strict(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.json"), slocReport("ok.rs", 4))
	// Well-formed JSON without the required kind.
	writeFile(t, filepath.Join(root, "loose.json"), `{"name":"loose.rs","metrics":{"loc":{"sloc":9}}}`)

	cfg := testConfig()
	result, err := New(WithConfig(cfg)).AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.Loc.Count)

	cfg.Analysis.Strict = true
	result, err = New(WithConfig(cfg)).AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Loc.Count)
	require.Len(t, result.Failed, 1)
}

func TestAnalyzeDirectory_DiskCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "reports", "a.json"), slocReport("a.rs", 7))

	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(root, ".tally", "cache")

	_, err := New(WithConfig(cfg)).AnalyzeDirectory(context.Background(), []string{filepath.Join(root, "reports")})
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.Cache.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Run("no-cache skips the disk", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(cfg.Cache.Dir))
		_, err := New(WithConfig(cfg), WithNoCache()).AnalyzeDirectory(context.Background(), []string{filepath.Join(root, "reports")})
		require.NoError(t, err)
		assert.NoDirExists(t, cfg.Cache.Dir)
	})
}

func TestAnalyzeDirectory_StrictIgnoresLooseCacheEntries(t *testing.T) {
	root := t.TempDir()
	reports := filepath.Join(root, "reports")
	// Well-formed JSON without name or kind.
	writeFile(t, filepath.Join(reports, "loose.json"), `{"metrics":{"loc":{"sloc":10}}}`)

	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(root, ".tally", "cache")

	result, err := New(WithConfig(cfg)).AnalyzeDirectory(context.Background(), []string{reports})
	require.NoError(t, err)
	require.NotNil(t, result.Summary.Loc)
	assert.Equal(t, 1, result.Summary.Loc.Count)

	entries, err := os.ReadDir(cfg.Cache.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the loose report is cached by the first run")

	cfg.Analysis.Strict = true
	result, err = New(WithConfig(cfg)).AnalyzeDirectory(context.Background(), []string{reports})
	require.NoError(t, err)
	assert.Nil(t, result.Summary.Loc)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "loose.json", filepath.Base(result.Failed[0].Path))
}

func TestInvalidate(t *testing.T) {
	root := t.TempDir()
	reports := filepath.Join(root, "reports")
	a := filepath.Join(reports, "a.json")
	b := filepath.Join(reports, "b.json")
	writeFile(t, a, slocReport("a.rs", 1))
	writeFile(t, b, slocReport("b.rs", 2))

	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(root, ".tally", "cache")

	svc := New(WithConfig(cfg))
	_, err := svc.AnalyzeDirectory(context.Background(), []string{reports})
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.Cache.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, svc.Invalidate([]string{a, filepath.Join(reports, "never-cached.json")}))
	entries, err = os.ReadDir(cfg.Cache.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Run("no-op without a disk cache", func(t *testing.T) {
		assert.NoError(t, New(WithConfig(cfg), WithNoCache()).Invalidate([]string{b}))
		entries, err := os.ReadDir(cfg.Cache.Dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestAnalyzeDirectory_MemoryCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), slocReport("a.rs", 7))
	writeFile(t, filepath.Join(root, "b.json"), slocReport("b.rs", 8))

	mem, err := cache.NewMemory(16)
	require.NoError(t, err)

	svc := New(WithConfig(testConfig()), WithMemoryCache(mem))
	_, err = svc.AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, 2, mem.Len())

	result, err := svc.AnalyzeDirectory(context.Background(), []string{root})
	require.NoError(t, err)
	assert.InDelta(t, 15, result.Summary.Loc.Sloc, 1e-9)
}

func TestAnalyzeDirectory_Progress(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(root, "r"+strconv.Itoa(i+1)+".json"), slocReport("f.rs", i))
	}

	tracker := analyzer.NewTracker(nil)
	ctx := analyzer.WithTracker(context.Background(), tracker)

	_, err := New(WithConfig(testConfig())).AnalyzeDirectory(ctx, []string{root})
	require.NoError(t, err)
	assert.Equal(t, 5, tracker.Total())
	assert.Equal(t, 5, tracker.Current())
}

func TestDiscover_DefaultsToCurrentDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), slocReport("a.rs", 1))
	t.Chdir(root)

	files, err := New(WithConfig(testConfig())).Discover(nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.json", filepath.Base(files[0]))
}

func TestAnalysisError(t *testing.T) {
	inner := errors.New("boom")
	err := &AnalysisError{Stage: StageSetup, Err: inner}
	assert.Equal(t, "analysis setup: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
