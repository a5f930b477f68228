package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/panbanda/tally/internal/cache"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/internal/service/analysis"
	"github.com/panbanda/tally/pkg/watch"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-print the summary whenever report files change",
		ArgsUsage: "[dir...]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period before re-summarizing",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}
	roots := getPaths(c)

	memory, err := cache.NewMemory(rc.cfg.Cache.MemoryEntries)
	if err != nil {
		return fmt.Errorf("create memory cache: %w", err)
	}
	svc := rc.service(analysis.WithMemoryCache(memory))

	summarize := func(ctx context.Context) error {
		result, err := rc.analyze(ctx, svc, roots)
		if err != nil {
			return err
		}
		return rc.render(report.Summary(result, rc.options()))
	}

	// Root errors surface here, before anything is watched.
	if err := summarize(c.Context); err != nil {
		return err
	}

	watcher, err := watch.NewWatcher(roots, rc.cfg, c.Duration("debounce"))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.SetCallback(func(ctx context.Context, changed []string) {
		color.Yellow("\n%d report(s) changed, re-summarizing", len(changed))
		if err := svc.Invalidate(changed); err != nil {
			rc.diag.Warning("%v", err)
		}
		if err := summarize(ctx); err != nil {
			color.Red("Summary error: %v", err)
		}
	})
	watcher.SetErrorHandler(func(err error) {
		color.Red("Watch error: %v", err)
	})

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan("Watching %d root(s) for changes. Press Ctrl+C to stop.", len(roots))
	err = watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nStopping watch...")
		return nil
	}
	return err
}
