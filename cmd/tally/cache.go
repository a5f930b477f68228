package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/internal/output"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the decoded report cache",
		Description: `The disk cache lives in cache.dir (default .tally/cache) and is used only
when cache.enabled is set.

Examples:
  tally cache stats
  tally -f json cache stats
  tally cache clear`,
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show how many entries the cache holds",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cache entry",
				Action: runCacheClearCmd,
			},
		},
	}
}

// CacheStats is the serialized form of `cache stats`.
type CacheStats struct {
	Dir     string       `json:"dir"`
	Enabled bool         `json:"enabled"`
	Stats   *cache.Stats `json:"stats"`
}

// openCache opens the configured cache directory. It reports false when the
// directory does not exist, so inspecting never creates it.
func openCache(rc *runContext) (*cache.Cache, bool, error) {
	dir := rc.cfg.Cache.Dir
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	c, err := cache.New(dir, rc.cfg.Cache.TTL, true)
	if err != nil {
		return nil, false, fmt.Errorf("open cache: %w", err)
	}
	return c, true, nil
}

func runCacheStatsCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}

	stats := &cache.Stats{}
	dc, ok, err := openCache(rc)
	if err != nil {
		return err
	}
	if ok {
		if stats, err = dc.GetStats(); err != nil {
			return fmt.Errorf("read cache: %w", err)
		}
	}

	age := func(d time.Duration) string {
		if stats.Entries == 0 {
			return "-"
		}
		return d.Round(time.Second).String()
	}
	table := output.NewTable(
		"Report Cache",
		[]string{"Setting", "Value"},
		[][]string{
			{"Directory", rc.cfg.Cache.Dir},
			{"Enabled", strconv.FormatBool(rc.cfg.Cache.Enabled)},
			{"Entries", strconv.Itoa(stats.Entries)},
			{"Size (bytes)", strconv.FormatInt(stats.TotalSize, 10)},
			{"Oldest", age(stats.OldestAge)},
			{"Newest", age(stats.NewestAge)},
		},
		nil,
		CacheStats{Dir: rc.cfg.Cache.Dir, Enabled: rc.cfg.Cache.Enabled, Stats: stats},
	)
	return rc.render(table)
}

func runCacheClearCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}

	dc, ok, err := openCache(rc)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.App.Writer, color.YellowString("No cache at %s", rc.cfg.Cache.Dir))
		return nil
	}
	if err := dc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintln(c.App.Writer, color.GreenString("Cleared %s", rc.cfg.Cache.Dir))
	return nil
}
