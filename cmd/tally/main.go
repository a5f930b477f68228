package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/panbanda/tally/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadDotEnv loads environment variables from path when it exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "tally",
		Usage:    "Summarize code metric reports across a project",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `Tally reads the JSON metric reports produced by rust-code-analysis
(one report per source file) and folds them into a single project-wide
summary: sums and averages, extremes, and how many files supplied each
metric family.

Running tally with directories and no command prints the summary.`,
		ArgsUsage: "[dir...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"TALLY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
				EnvVars: []string{"TALLY_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the report cache",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Hide the progress bar and print discovery details",
				EnvVars: []string{"TALLY_VERBOSE"},
			},
			&cli.BoolFlag{
				Name:  "class-metrics",
				Usage: "Also show the wmc, npm and npa class families",
			},
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Show only this metric family (repeatable): nargs, nexits, cognitive, cyclomatic, halstead, loc, nom, mi, abc, wmc, npm, npa",
			},
			&cli.IntFlag{
				Name:  "precision",
				Value: -1,
				Usage: "Decimals shown for float fields (default from config)",
			},
			&cli.StringFlag{
				Name:  "pprof",
				Usage: "Enable pprof profiling and write to specified prefix (creates <prefix>.cpu.pprof and <prefix>.mem.pprof)",
			},
		},
		Before: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				cpuFile, err := os.Create(pprofPrefix + ".cpu.pprof")
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuFile); err != nil {
					cpuFile.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				c.App.Metadata["pprofCPU"] = cpuFile
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				pprof.StopCPUProfile()
				if cpuFile, ok := c.App.Metadata["pprofCPU"].(*os.File); ok {
					cpuFile.Close()
					color.Green("CPU profile written to %s.cpu.pprof", pprofPrefix)
				}

				memFile, err := os.Create(pprofPrefix + ".mem.pprof")
				if err != nil {
					return fmt.Errorf("failed to create memory profile: %w", err)
				}
				defer memFile.Close()

				runtime.GC()
				if err := pprof.WriteHeapProfile(memFile); err != nil {
					return fmt.Errorf("failed to write memory profile: %w", err)
				}
				color.Green("Memory profile written to %s.mem.pprof", pprofPrefix)
			}
			return nil
		},
		Action: runSummaryCmd,
		Commands: []*cli.Command{
			summaryCmd(),
			filesCmd(),
			coverageCmd(),
			watchCmd(),
			mcpCmd(),
			cacheCmd(),
			initCmd(),
			configCmd(),
		},
	}
}

func main() {
	// Flags bound to TALLY_* variables read the environment while parsing,
	// so .env must be loaded before the app runs.
	if err := loadDotEnv(".env"); err != nil {
		color.Yellow("Warning: ignoring .env: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		if h := hint(err); h != "" {
			color.Yellow("%s", h)
		}
		os.Exit(1)
	}
}

// hint returns a follow-up line for errors with a common cause, or "".
func hint(err error) string {
	if analysis.IsNotADirectory(err) {
		return "tally reads directories of reports; pass the directory that holds the file"
	}
	return ""
}
