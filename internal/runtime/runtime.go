package runtime

import (
	"context"
	"errors"

	cfgpkg "github.com/LynchzDEV/CommitQ/internal/config"
	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/internal/team"
	"github.com/LynchzDEV/CommitQ/internal/timer"
	"github.com/LynchzDEV/CommitQ/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger log.Logger
	// Timers overrides the serving-timer registry; tests inject one backed
	// by a manual scheduler. Nil means the real clock.
	Timers *timer.Registry
}

// Runtime wires team state, timers, the hub, and config for a single-node
// instance. Everything is in memory; Close only stops live timers.
type Runtime struct {
	config cfgpkg.Config
	logger log.Logger
	teams  *team.Store
	timers *timer.Registry
	hub    *hub.Hub
	closed bool
}

// New builds a Runtime from options. A nil Logger gets a no-op logger.
func New(opts Options) *Runtime {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	timers := opts.Timers
	if timers == nil {
		timers = timer.NewRegistry()
	}
	return &Runtime{
		config: opts.Config,
		logger: logger,
		teams:  team.NewStore(),
		timers: timers,
		hub:    hub.New(),
	}
}

// Close releases runtime resources.
func (r *Runtime) Close() error {
	r.closed = true
	return nil
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.closed {
		return errors.New("runtime closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// Teams returns the team state store.
func (r *Runtime) Teams() *team.Store { return r.teams }

// Timers returns the serving-timer registry.
func (r *Runtime) Timers() *timer.Registry { return r.timers }

// Hub returns the broadcast hub.
func (r *Runtime) Hub() *hub.Hub { return r.hub }

// Logger returns the runtime logger.
func (r *Runtime) Logger() log.Logger { return r.logger }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
