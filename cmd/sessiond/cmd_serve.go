package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/urfave/cli/v3"

	"github.com/tgifai/sessiond/internal/config"
	"github.com/tgifai/sessiond/internal/gateway"
	"github.com/tgifai/sessiond/internal/pkg/logs"
	"github.com/tgifai/sessiond/internal/session"
	"github.com/tgifai/sessiond/internal/sweeper"
)

var serveHwd = &ServeRunner{}

type ServeRunner struct{}

func (r *ServeRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP gateway backed by an in-memory session store",
		Flags:  []cli.Flag{configFlag},
		Action: r.run,
	}
}

func (r *ServeRunner) run(ctx context.Context, cmd *cli.Command) error {
	cfgPath := configPath(cmd)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}

	if err = r.initLogger(cfg.Logging); err != nil {
		return fmt.Errorf("init logger error: %w", err)
	}
	hlog.SetLogger(logs.NewHlogLogger(logs.DefaultLogger()))

	hash, err := cfg.Hash()
	if err != nil {
		return fmt.Errorf("hash config error: %w", err)
	}
	logs.CtxInfo(ctx, "booting sessiond, config=%s hash=%.12s", cfgPath, hash)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := session.NewStore(session.StoreOptions{TTL: cfg.Session.TTLDuration()})
	mgr := session.NewManager(store, session.ManagerOptions{Cookie: cfg.Session.CookieOptions()})

	if cfg.Sweeper.IsEnabled() {
		sw, err := sweeper.New(store, cfg.Sweeper.Schedule)
		if err != nil {
			return fmt.Errorf("create sweeper: %w", err)
		}
		if err = sw.Start(ctx); err != nil {
			return fmt.Errorf("start sweeper: %w", err)
		}
		defer sw.Stop()
	} else {
		logs.CtxWarn(ctx, "sweeper disabled, expired sessions are only hidden, never freed")
	}

	gw := gateway.NewGateway(mgr, gateway.Options{Server: cfg.Server})
	if err = gw.Start(ctx); err != nil {
		_ = gw.Stop(context.Background())
		return fmt.Errorf("start gateway: %w", err)
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case sig := <-signalCh:
		logs.CtxInfo(ctx, "Received shutdown signal (%s). Stopping...", sig.String())
	case <-ctx.Done():
		logs.CtxInfo(ctx, "Context canceled. Stopping...")
	}

	if err = gw.Stop(context.Background()); err != nil {
		logs.CtxError(ctx, "stop gateway error: %v", err)
	}

	logs.CtxInfo(ctx, "all stopped, %d session record(s) dropped", store.Count())
	return nil
}

func (r *ServeRunner) initLogger(cfg config.LoggingConfig) error {
	return logs.Init(logs.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		File:       cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}
