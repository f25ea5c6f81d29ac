package serverrun

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cfgpkg "github.com/LynchzDEV/CommitQ/internal/config"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
	"github.com/LynchzDEV/CommitQ/internal/server/actions"
	httpserver "github.com/LynchzDEV/CommitQ/internal/server/http"
	wsserver "github.com/LynchzDEV/CommitQ/internal/server/ws"
	logpkg "github.com/LynchzDEV/CommitQ/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	HTTPAddr string
	WSAddr   string
	Config   cfgpkg.Config
}

// Run starts the SSE and websocket servers and blocks until ctx is
// cancelled. Both bindings share one action registry so they dispatch into
// the same engine instances.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers that
	// don't pass a signal-aware context still shut down cleanly.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lcfg := &logpkg.Config{
		Level:  getenvDefault("COMMITQ_LOG_LEVEL", "info"),
		Format: getenvDefault("COMMITQ_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(lcfg)
	if err != nil {
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(lcfg.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}
	logpkg.RedirectStdLog(procLogger)

	rt := runtime.New(runtime.Options{Config: opts.Config, Logger: procLogger})
	defer rt.Close()

	procLogger.Info("Starting CommitQ server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("ws", opts.WSAddr),
		logpkg.Str("default_team", opts.Config.DefaultTeam),
		logpkg.Str("level", lcfg.Level),
		logpkg.Str("format", lcfg.Format),
		logpkg.Int("sub_buf", opts.Config.SubBuf),
	)

	reg := actions.New(rt)
	hsrv := httpserver.NewWithRegistry(rt, reg)
	wsrv := wsserver.NewWithRegistry(rt, reg)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			stdlog.Printf("http error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := wsrv.ListenAndServe(sctx, opts.WSAddr); err != nil && sctx.Err() == nil {
			stdlog.Printf("ws error: %v", err)
		}
	}()

	<-sctx.Done()
	wg.Wait()
	return nil
}
