package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/sessiond/internal/config"
	"github.com/tgifai/sessiond/internal/session"
)

var cookieHwd = &CookieRunner{}

type CookieRunner struct{}

func (r *CookieRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "cookie",
		Usage: "Encode or decode the session cookie using the configured attributes",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:      "header",
				Usage:     "Print the Set-Cookie value for a session id (a new id when omitted)",
				ArgsUsage: "[id]",
				Action:    r.header,
			},
			{
				Name:      "parse",
				Usage:     "Extract the session id from a raw Cookie header",
				ArgsUsage: "<header>",
				Action:    r.parse,
			},
		},
	}
}

func (r *CookieRunner) manager(cmd *cli.Command) (*session.Manager, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading config error: %w", err)
	}
	store := session.NewStore(session.StoreOptions{TTL: cfg.Session.TTLDuration()})
	return session.NewManager(store, session.ManagerOptions{Cookie: cfg.Session.CookieOptions()}), nil
}

func (r *CookieRunner) header(_ context.Context, cmd *cli.Command) error {
	mgr, err := r.manager(cmd)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(cmd.Args().First())
	if id != "" && !session.IsValidID(id) {
		return fmt.Errorf("%q is not a %d-character lowercase hex id", id, session.IDLength)
	}

	// a fresh store knows no ids, so an explicit id is restored as-is
	var sess *session.Session
	if id == "" {
		sess = mgr.GetOrCreate("")
	} else {
		sess = session.Restore(id)
	}
	fmt.Println(mgr.SetCookieHeader(sess))
	return nil
}

func (r *CookieRunner) parse(_ context.Context, cmd *cli.Command) error {
	mgr, err := r.manager(cmd)
	if err != nil {
		return err
	}

	header := strings.Join(cmd.Args().Slice(), " ")
	id := mgr.ParseCookie(header)
	if id == "" {
		return fmt.Errorf("no %s cookie in header", mgr.CookieName())
	}
	fmt.Println(id)
	return nil
}
