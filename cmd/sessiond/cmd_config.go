package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/tgifai/sessiond/internal/config"
	"github.com/tgifai/sessiond/internal/consts"
)

var configHwd = &ConfigRunner{}

type ConfigRunner struct{}

func (r *ConfigRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or create the config file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config file populated with defaults",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: r.init,
			},
			{
				Name:   "check",
				Usage:  "Load and validate the config file",
				Flags:  []cli.Flag{configFlag},
				Action: r.check,
			},
		},
	}
}

func configPath(cmd *cli.Command) string {
	if p := cmd.String("config"); p != "" {
		return p
	}
	return consts.DefaultConfigPath()
}

func (r *ConfigRunner) init(_ context.Context, cmd *cli.Command) error {
	path := configPath(cmd)
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, pass --force to overwrite", path)
	}

	if err := config.WriteFile(path, config.Default()); err != nil {
		return err
	}
	color.Green("wrote %s", path)
	return nil
}

func (r *ConfigRunner) check(_ context.Context, cmd *cli.Command) error {
	path := configPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		color.Red("invalid: %v", err)
		return err
	}
	color.Green("ok %s", path)
	fmt.Printf("cookie=%s ttl=%s same_site=%s sweeper=%v(%s)\n",
		cfg.Session.CookieName, cfg.Session.TTLDuration(), cfg.Session.SameSite,
		cfg.Sweeper.IsEnabled(), cfg.Sweeper.Schedule)
	return nil
}
