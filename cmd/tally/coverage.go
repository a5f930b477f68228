package main

import (
	"github.com/panbanda/tally/internal/report"
	"github.com/urfave/cli/v2"
)

func coverageCmd() *cli.Command {
	return &cli.Command{
		Name:      "coverage",
		Usage:     "Show which reports lacked each metric family",
		ArgsUsage: "[dir...]",
		Action:    runCoverageCmd,
	}
}

func runCoverageCmd(c *cli.Context) error {
	rc, err := loadRunContext(c)
	if err != nil {
		return err
	}

	result, err := rc.analyze(c.Context, rc.service(), getPaths(c))
	if err != nil {
		return err
	}
	return rc.render(report.Coverage(result, rc.options()))
}
