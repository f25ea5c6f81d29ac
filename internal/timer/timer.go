package timer

import (
	"sync"
	"time"
)

// Scheduler schedules fn after d and returns a cancel func. The default is
// time.AfterFunc; tests substitute a manual scheduler.
type Scheduler func(d time.Duration, fn func()) (cancel func() bool)

// Registration is one live countdown for a queue item.
type Registration struct {
	Team     string
	ItemID   string
	Duration time.Duration
	Started  time.Time

	cancel func() bool
}

// Registry owns all live countdowns, keyed by item id. Item ids are unique
// process-wide so a single map covers every team.
type Registry struct {
	mu       sync.Mutex
	schedule Scheduler
	regs     map[string]*Registration
}

// NewRegistry creates a Registry backed by the real clock.
func NewRegistry() *Registry {
	return NewRegistryWithScheduler(func(d time.Duration, fn func()) func() bool {
		t := time.AfterFunc(d, fn)
		return t.Stop
	})
}

// NewRegistryWithScheduler creates a Registry with a custom scheduler.
func NewRegistryWithScheduler(s Scheduler) *Registry {
	return &Registry{schedule: s, regs: make(map[string]*Registration)}
}

// Start registers a countdown for the item, cancelling any previous one for
// the same id. expire runs once after d unless the registration is stopped
// or replaced first.
func (r *Registry) Start(teamID, itemID string, d time.Duration, expire func(*Registration)) *Registration {
	r.mu.Lock()
	if old, ok := r.regs[itemID]; ok {
		if old.cancel != nil {
			old.cancel()
		}
		delete(r.regs, itemID)
	}
	reg := &Registration{
		Team:     teamID,
		ItemID:   itemID,
		Duration: d,
		Started:  time.Now(),
	}
	r.regs[itemID] = reg
	r.mu.Unlock()

	reg.cancel = r.schedule(d, func() {
		if r.claim(reg) {
			expire(reg)
		}
	})
	return reg
}

// Stop cancels the live countdown for the item, reporting whether one
// existed. A stopped registration's expire callback never runs.
func (r *Registry) Stop(itemID string) (*Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[itemID]
	if !ok {
		return nil, false
	}
	delete(r.regs, itemID)
	if reg.cancel != nil {
		reg.cancel()
	}
	return reg, true
}

// Active reports whether the item has a live countdown.
func (r *Registry) Active(itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.regs[itemID]
	return ok
}

// claim removes reg from the registry if it is still the live registration
// for its item. The expiry callback only proceeds when the claim succeeds,
// which is what makes Stop and Start race-free against a fired clock.
func (r *Registry) claim(reg *Registration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.regs[reg.ItemID]; ok && cur == reg {
		delete(r.regs, reg.ItemID)
		return true
	}
	return false
}
