package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/tally/internal/export"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/urfave/cli/v2"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Aliases:   []string{"sum"},
		Usage:     "Fold every report under the given directories into one summary",
		ArgsUsage: "[dir...]",
		Description: `Loads every report file found under the directories, skipping files that
cannot be read or decoded, and prints one row per metric family.

Examples:
  tally summary reports/
  tally -f json summary reports/ more-reports/
  tally --class-metrics summary --parquet summary.parquet reports/`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "parquet",
				Usage: "Also write the summary rows to a Parquet file",
			},
		},
		Action: runSummaryCmd,
	}
}

func runSummaryCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}

	result, err := rc.analyze(c.Context, rc.service(), getPaths(c))
	if err != nil {
		return err
	}

	opts := rc.options()
	if path := c.String("parquet"); path != "" {
		rows := summary.RowsWithPrecision(result.Summary, opts.Categories(), opts.Precision)
		if err := export.WriteSummary(rows, path); err != nil {
			return fmt.Errorf("export summary: %w", err)
		}
		color.Green("Summary written to %s", path)
	}

	return rc.render(report.Summary(result, opts))
}
