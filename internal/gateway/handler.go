package gateway

import (
	"context"

	"github.com/bytedance/gg/gconv"
	"github.com/bytedance/gg/gmap"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/tgifai/sessiond/internal/pkg/logs"
	"github.com/tgifai/sessiond/internal/session"
)

const (
	sessionPath     = "/api/v1/session"
	headerSetCookie = "Set-Cookie"
)

func (gw *Gateway) registerRoutes() {
	h := gw.httpServer

	h.GET("/healthz", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	h.GET(sessionPath, gw.handleGet)
	h.PUT(sessionPath, gw.handlePut)
	h.DELETE(sessionPath, gw.handleDestroy)
	h.DELETE(sessionPath+"/keys/:key", gw.handleRemoveKey)
	h.POST(sessionPath+"/regenerate", gw.handleRegenerate)
}

// resolve finds the caller's session, creating one when the cookie is
// missing, malformed or points at an expired record.
func (gw *Gateway) resolve(ctx context.Context, c *app.RequestContext) (context.Context, *session.Session) {
	ctx = logs.SetLogID(ctx, logs.NewLogID())

	id := gw.requestSessionID(c)
	if id != "" && !session.IsValidID(id) {
		logs.CtxDebug(ctx, "[gateway] ignoring malformed session cookie")
		id = ""
	}

	sess := gw.mgr.GetOrCreate(id)
	ctx = logs.WithSessionID(ctx, sess.ID())
	if sess.IsNew() {
		logs.CtxInfo(ctx, "[gateway] new session for %s %s", c.Method(), c.Path())
	}
	return ctx, sess
}

func (gw *Gateway) requestSessionID(c *app.RequestContext) string {
	return gw.mgr.ParseCookie(string(c.GetHeader("Cookie")))
}

func sessionView(sess *session.Session) utils.H {
	return utils.H{
		"id":         sess.ID(),
		"is_new":     sess.IsNew(),
		"keys":       sess.Keys(),
		"data":       sess.Data(),
		"expires_at": sess.ExpiresAt().UTC(),
	}
}

func (gw *Gateway) respond(c *app.RequestContext, status int, sess *session.Session) {
	gw.respondView(c, status, sess, sessionView(sess))
}

func (gw *Gateway) respondView(c *app.RequestContext, status int, sess *session.Session, view utils.H) {
	c.Response.Header.Set(headerSetCookie, gw.mgr.SetCookieHeader(sess))
	c.JSON(status, view)
}

func (gw *Gateway) handleGet(ctx context.Context, c *app.RequestContext) {
	_, sess := gw.resolve(ctx, c)
	gw.respond(c, consts.StatusOK, sess)
}

// handlePut merges a flat JSON object into the session. Non-string values
// are stored in their string form. New keys are appended in sorted order.
func (gw *Gateway) handlePut(ctx context.Context, c *app.RequestContext) {
	ctx, sess := gw.resolve(ctx, c)

	var body map[string]interface{}
	if err := sonic.Unmarshal(c.GetRequest().Body(), &body); err != nil {
		c.Response.Header.Set(headerSetCookie, gw.mgr.SetCookieHeader(sess))
		c.JSON(consts.StatusBadRequest, utils.H{"error": "body must be a JSON object"})
		return
	}

	for _, k := range gmap.OrderedKeys(body) {
		if k == "" {
			continue
		}
		sess.Set(k, gconv.To[string](body[k]))
	}
	gw.mgr.Save(sess)

	logs.CtxDebug(ctx, "[gateway] stored %d key(s)", len(body))
	gw.respond(c, consts.StatusOK, sess)
}

// handleRemoveKey drops one key. An absent key is a normal outcome: the
// session comes back unchanged with removed=false.
func (gw *Gateway) handleRemoveKey(ctx context.Context, c *app.RequestContext) {
	ctx, sess := gw.resolve(ctx, c)

	key := c.Param("key")
	removed := sess.Remove(key)
	if removed {
		gw.mgr.Save(sess)
	} else {
		logs.CtxDebug(ctx, "[gateway] key %q not present", key)
	}

	view := sessionView(sess)
	view["removed"] = removed
	gw.respondView(c, consts.StatusOK, sess, view)
}

// handleRegenerate rotates the session id, e.g. after a privilege change.
func (gw *Gateway) handleRegenerate(ctx context.Context, c *app.RequestContext) {
	ctx, sess := gw.resolve(ctx, c)

	oldID := sess.ID()
	gw.mgr.Rotate(sess)
	logs.CtxInfo(logs.WithSessionID(ctx, sess.ID()), "[gateway] rotated session id from %s", oldID)
	gw.respond(c, consts.StatusOK, sess)
}

func (gw *Gateway) handleDestroy(ctx context.Context, c *app.RequestContext) {
	ctx = logs.SetLogID(ctx, logs.NewLogID())

	if id := gw.requestSessionID(c); id != "" {
		gw.mgr.Destroy(id)
		logs.CtxInfo(logs.WithSessionID(ctx, id), "[gateway] session destroyed")
	}
	c.SetStatusCode(consts.StatusNoContent)
}
