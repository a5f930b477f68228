package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/panbanda/tally/internal/export"
	"github.com/panbanda/tally/internal/report"
	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/urfave/cli/v2"
)

func filesCmd() *cli.Command {
	keys := make([]string, 0, len(summary.FileSortKeys()))
	for _, k := range summary.FileSortKeys() {
		keys = append(keys, string(k))
	}

	return &cli.Command{
		Name:      "files",
		Usage:     "List the headline metrics of each report",
		ArgsUsage: "[dir...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Value: string(summary.SortBySloc),
				Usage: "Sort by: " + strings.Join(keys, ", "),
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Show only the first N files (0 = all)",
			},
			&cli.StringFlag{
				Name:  "parquet",
				Usage: "Also write every file row to a Parquet file",
			},
		},
		Action: runFilesCmd,
	}
}

func runFilesCmd(c *cli.Context) error {
	key, ok := summary.ParseFileSortKey(c.String("sort"))
	if !ok {
		return fmt.Errorf("unknown sort key %q", c.String("sort"))
	}
	if c.Int("top") < 0 {
		return fmt.Errorf("--top must not be negative (got %d)", c.Int("top"))
	}

	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}

	result, err := rc.analyze(c.Context, rc.service(), getPaths(c))
	if err != nil {
		return err
	}

	if path := c.String("parquet"); path != "" {
		if err := export.WriteFiles(summary.FileRows(result.Reports, key), path); err != nil {
			return fmt.Errorf("export files: %w", err)
		}
		color.Green("File rows written to %s", path)
	}

	return rc.render(report.Files(result, key, c.Int("top"), rc.options()))
}
