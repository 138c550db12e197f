// Package gateway exposes a session Manager over HTTP: each request carries
// the session id in its Cookie header and every response re-issues it in
// Set-Cookie.
package gateway

import (
	"context"
	"sync"
	"time"

	hzServer "github.com/cloudwego/hertz/pkg/app/server"
	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	hzprom "github.com/hertz-contrib/monitor-prometheus"

	"github.com/tgifai/sessiond/internal/config"
	"github.com/tgifai/sessiond/internal/pkg/logs"
	promreg "github.com/tgifai/sessiond/internal/pkg/prometheus"
	"github.com/tgifai/sessiond/internal/session"
)

type Options struct {
	Server config.ServerConfig
	// DisableMetrics skips the prometheus tracer and its listener.
	DisableMetrics bool
}

type Gateway struct {
	mgr        *session.Manager
	httpServer *hzServer.Hertz

	stopOnce sync.Once
}

func NewGateway(mgr *session.Manager, opts Options) *Gateway {
	bind := opts.Server.Bind
	if bind == "" {
		bind = "0.0.0.0:8080"
	}

	timeout := time.Duration(opts.Server.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	svrOpts := []hzconfig.Option{
		hzServer.WithHostPorts(bind),
		hzServer.WithReadTimeout(timeout),
		hzServer.WithWriteTimeout(timeout),
		hzServer.WithExitWaitTime(5 * time.Second),
	}
	if !opts.DisableMetrics && opts.Server.MetricsAddr != "" {
		svrOpts = append(svrOpts, hzServer.WithTracer(hzprom.NewServerTracer(
			opts.Server.MetricsAddr,
			opts.Server.MetricsPath,
			hzprom.WithRegistry(promreg.GetRegistry()),
		)))
	}

	gw := &Gateway{
		mgr:        mgr,
		httpServer: hzServer.Default(svrOpts...),
	}
	gw.registerRoutes()
	return gw
}

// Start serves in the background until Stop.
func (gw *Gateway) Start(ctx context.Context) error {
	go gw.httpServer.Spin()
	logs.CtxInfo(ctx, "[gateway] listening, cookie=%s ttl=%s", gw.mgr.CookieName(), gw.mgr.Store().TTL())
	return nil
}

func (gw *Gateway) Stop(ctx context.Context) error {
	var err error
	gw.stopOnce.Do(func() {
		if err = gw.httpServer.Shutdown(ctx); err != nil {
			logs.CtxWarn(ctx, "[gateway] shutdown http server error: %v", err)
		}
		logs.CtxInfo(ctx, "[gateway] stopped")
	})
	return err
}
