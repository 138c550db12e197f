package logs

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// hlogBridge lets the gateway's hertz server log through the same logrus
// pipeline as the session store.
type hlogBridge struct {
	l Logger
}

var _ hlog.FullLogger = (*hlogBridge)(nil)

func NewHlogLogger(l Logger) hlog.FullLogger {
	return &hlogBridge{l: l}
}

func (b *hlogBridge) Trace(v ...interface{})  { b.l.Debug("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Debug(v ...interface{})  { b.l.Debug("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Info(v ...interface{})   { b.l.Info("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Notice(v ...interface{}) { b.l.Info("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Warn(v ...interface{})   { b.l.Warn("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Error(v ...interface{})  { b.l.Error("%s", fmt.Sprint(v...)) }
func (b *hlogBridge) Fatal(v ...interface{})  { b.l.Fatal("%s", fmt.Sprint(v...)) }

func (b *hlogBridge) Tracef(format string, v ...interface{})  { b.l.Debug(format, v...) }
func (b *hlogBridge) Debugf(format string, v ...interface{})  { b.l.Debug(format, v...) }
func (b *hlogBridge) Infof(format string, v ...interface{})   { b.l.Info(format, v...) }
func (b *hlogBridge) Noticef(format string, v ...interface{}) { b.l.Info(format, v...) }
func (b *hlogBridge) Warnf(format string, v ...interface{})   { b.l.Warn(format, v...) }
func (b *hlogBridge) Errorf(format string, v ...interface{})  { b.l.Error(format, v...) }
func (b *hlogBridge) Fatalf(format string, v ...interface{})  { b.l.Fatal(format, v...) }

func (b *hlogBridge) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxDebug(ctx, format, v...)
}

func (b *hlogBridge) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxDebug(ctx, format, v...)
}

func (b *hlogBridge) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxInfo(ctx, format, v...)
}

func (b *hlogBridge) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxInfo(ctx, format, v...)
}

func (b *hlogBridge) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxWarn(ctx, format, v...)
}

func (b *hlogBridge) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxError(ctx, format, v...)
}

func (b *hlogBridge) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	b.l.CtxFatal(ctx, format, v...)
}

var hlogLevels = map[hlog.Level]LogLevel{
	hlog.LevelTrace:  DebugLevel,
	hlog.LevelDebug:  DebugLevel,
	hlog.LevelInfo:   InfoLevel,
	hlog.LevelNotice: InfoLevel,
	hlog.LevelWarn:   WarnLevel,
	hlog.LevelError:  ErrorLevel,
	hlog.LevelFatal:  FatalLevel,
}

func (b *hlogBridge) SetLevel(level hlog.Level) {
	if lvl, ok := hlogLevels[level]; ok {
		b.l.SetLevel(lvl)
	}
}

// SetOutput is ignored; the wrapped Logger owns its writer.
func (b *hlogBridge) SetOutput(_ io.Writer) {}
