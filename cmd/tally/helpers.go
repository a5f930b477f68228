package main

import (
	"context"
	"fmt"

	"github.com/panbanda/tally/internal/output"
	"github.com/panbanda/tally/internal/progress"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/internal/service/analysis"
	"github.com/panbanda/tally/pkg/analyzer"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/panbanda/tally/pkg/config"
	"github.com/urfave/cli/v2"
)

// runContext carries the effective settings of one invocation.
type runContext struct {
	cfg     *config.Config
	source  string
	format  output.Format
	outPath string
	noCache bool
	only    []summary.Category
	diag    *output.Diagnostics
}

// loadRunContext loads configuration and applies global flag overrides.
func loadRunContext(c *cli.Context) (*runContext, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}
	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg := result.Config

	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if !output.Valid(cfg.Output.Format) {
		return nil, fmt.Errorf("unknown output format %q (want text, json, markdown or toon)", cfg.Output.Format)
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.Bool("class-metrics") {
		cfg.Output.ClassMetrics = true
	}
	if p := c.Int("precision"); p >= 0 {
		cfg.Output.Precision = p
	}
	only, err := report.ParseCategories(c.StringSlice("category"))
	if err != nil {
		return nil, err
	}

	return &runContext{
		cfg:     cfg,
		source:  result.Source,
		format:  output.ParseFormat(cfg.Output.Format),
		outPath: c.String("output"),
		noCache: c.Bool("no-cache"),
		only:    only,
		diag:    output.NewDiagnostics(c.App.ErrWriter),
	}, nil
}

func (rc *runContext) options() report.Options {
	opts := report.OptionsFromConfig(rc.cfg)
	opts.Only = rc.only
	return opts
}

func (rc *runContext) service(extra ...analysis.Option) *analysis.Service {
	opts := []analysis.Option{
		analysis.WithConfig(rc.cfg),
		analysis.WithErrorFunc(func(path string, err error) {
			rc.diag.Warning("skipped %s: %v", path, err)
		}),
	}
	if rc.noCache {
		opts = append(opts, analysis.WithNoCache())
	}
	return analysis.New(append(opts, extra...)...)
}

// analyze runs the pipeline over roots with a progress bar on interactive
// terminals.
func (rc *runContext) analyze(ctx context.Context, svc *analysis.Service, roots []string) (*summary.Analysis, error) {
	files, err := svc.Discover(roots)
	if err != nil {
		return nil, err
	}
	if rc.cfg.Output.Verbose {
		if rc.source != "" {
			rc.diag.Info("Using config %s", rc.source)
		}
		rc.diag.Info("Found %d report file(s)", len(files))
	}

	visible := progress.Interactive() && !rc.cfg.Output.Verbose
	bar := progress.NewTracker("Loading reports", len(files), visible)
	ctx = analyzer.WithTracker(ctx, analyzer.NewTracker(bar.Callback()))

	result, err := svc.AnalyzeFiles(ctx, files)
	if err != nil {
		bar.FinishError(err)
		return nil, err
	}
	bar.FinishSuccess()

	rc.reportSkipped(result, len(files))
	return result, nil
}

// reportSkipped prints a one-line count of dropped reports. Each one was
// already printed as it failed.
func (rc *runContext) reportSkipped(result *summary.Analysis, found int) {
	if found == 0 {
		rc.diag.Warning("No report files found")
		return
	}
	if n := len(result.Failed); n > 0 {
		rc.diag.Warning("%d of %d report(s) skipped", n, found)
	}
}

// render writes data in the configured format to stdout or --output.
func (rc *runContext) render(data any) error {
	colored := output.UseColor(rc.cfg.Output.Color, rc.outPath)
	formatter, err := output.NewFormatter(rc.format, rc.outPath, colored)
	if err != nil {
		return err
	}
	defer formatter.Close()
	return formatter.Output(data)
}
