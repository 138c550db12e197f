package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/sessiond/internal/session"
)

var genidHwd = &GenIDRunner{}

type GenIDRunner struct{}

func (r *GenIDRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "genid",
		Usage: "Print freshly generated session identifiers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "How many identifiers to print",
				Value:   1,
			},
		},
		Action: r.run,
	}
}

func (r *GenIDRunner) run(_ context.Context, cmd *cli.Command) error {
	n := cmd.Int("count")
	if n <= 0 {
		return fmt.Errorf("count must be positive, got %d", n)
	}

	gen := session.NewGenerator(nil)
	for i := 0; i < int(n); i++ {
		id, err := gen.TryGenerate()
		if err != nil {
			return err
		}
		fmt.Println(id)
	}
	return nil
}
