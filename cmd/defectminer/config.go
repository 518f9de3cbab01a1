package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/leonardomonnati2796/defectprediction/internal/config"
)

// loadConfig resolves the --config flag (falling back to the standard
// search locations, then defaults) and validates the result.
func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.LoadOrDefault(c.String("config"))
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidate,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigValidate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}
	_ = cfg
	color.Green("Configuration valid.")
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(content))
	return nil
}
