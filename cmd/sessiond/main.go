package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/sessiond/internal/pkg/logs"
)

func main() {
	cmd := &cli.Command{
		Name:  "sessiond",
		Usage: "In-process HTTP session store with cookie-carried identifiers",
		Commands: []*cli.Command{
			serveHwd.cmd(),
			genidHwd.cmd(),
			cookieHwd.cmd(),
			configHwd.cmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logs.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to the YAML config file (defaults to ~/.sessiond/config.yaml)",
}
