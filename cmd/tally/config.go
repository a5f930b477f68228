package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/panbanda/tally/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new tally configuration file",
		ArgsUsage: "[path]",
		Description: `Creates a tally.toml configuration file with the default settings.

Examples:
  tally init                      # Creates tally.toml in current directory
  tally init .tally/tally.toml    # Creates config in .tally directory
  tally init --force              # Overwrite existing config file`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing config file",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(c *cli.Context) error {
	outputPath := "tally.toml"
	if c.Args().Len() > 0 {
		outputPath = c.Args().First()
	}

	if _, err := os.Stat(outputPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	color.Green("Created %s", outputPath)
	return nil
}

func generateDefaultConfig() (string, error) {
	content, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# tally configuration\n")
	buf.WriteString("# Reports are rust-code-analysis JSON files found under the scanned directories.\n\n")
	buf.Write(content)
	return buf.String(), nil
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a configuration file",
				Description: `Validates a tally configuration file for syntax errors and invalid values.

Examples:
  tally config validate                 # Validates default config locations
  tally -c tally.toml config validate   # Validates specific file`,
				Action: runConfigValidateCmd,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "as",
						Value: "toml",
						Usage: "Encoding: toml or yaml",
					},
				},
				Action: runConfigShowCmd,
			},
		},
	}
}

func loadConfigResult(c *cli.Context) (*config.LoadResult, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}
	return config.LoadConfig(opts...)
}

func runConfigValidateCmd(c *cli.Context) error {
	result, err := loadConfigResult(c)
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Fprintf(c.App.ErrWriter, "  - %s\n", err)
		return err
	}

	if result.Source != "" {
		color.Green("Configuration valid: %s", result.Source)
	} else {
		color.Yellow("No config file found. Default configuration is valid.")
	}
	return nil
}

func runConfigShowCmd(c *cli.Context) error {
	result, err := loadConfigResult(c)
	if err != nil {
		return err
	}

	var content []byte
	switch strings.ToLower(c.String("as")) {
	case "toml":
		content, err = toml.Marshal(result.Config)
	case "yaml", "yml":
		content, err = yaml.Marshal(result.Config)
	default:
		return fmt.Errorf("unknown encoding %q (want toml or yaml)", c.String("as"))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	w := c.App.Writer
	if result.Source != "" {
		fmt.Fprintf(w, "# Configuration from: %s\n\n", result.Source)
	} else {
		fmt.Fprintln(w, "# Default configuration (no config file found)")
	}
	_, err = w.Write(content)
	return err
}
