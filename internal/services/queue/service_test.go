package queuesvc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	cfgpkg "github.com/LynchzDEV/CommitQ/internal/config"
	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
	"github.com/LynchzDEV/CommitQ/internal/timer"
)

// manualScheduler collects scheduled callbacks and fires them on demand.
type manualScheduler struct {
	fns []func()
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) func() bool {
	m.fns = append(m.fns, fn)
	return func() bool { return true }
}

// recorder is a hub.Conn that keeps decoded events.
type recorder struct {
	events []hub.Event
}

func (r *recorder) Send(frame []byte) error {
	var ev hub.Event
	if err := json.Unmarshal(frame, &ev); err != nil {
		return err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func newTestService(t *testing.T) (*Service, *manualScheduler, *runtime.Runtime) {
	t.Helper()
	sched := &manualScheduler{}
	rt := runtime.New(runtime.Options{
		Config: cfgpkg.Default(),
		Timers: timer.NewRegistryWithScheduler(sched.schedule),
	})
	t.Cleanup(func() { rt.Close() })
	return New(rt), sched, rt
}

func TestAddValidatesName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "bma-training", "   ", false); !errors.Is(err, ErrNameEmpty) {
		t.Fatalf("err: %v", err)
	}
	if _, err := svc.Add(ctx, "bma-training", strings.Repeat("x", 51), false); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("err: %v", err)
	}

	item, err := svc.Add(ctx, "bma-training", "  Alice  ", false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Name != "Alice" {
		t.Fatalf("name not trimmed: %q", item.Name)
	}
	if item.ID == "" || item.Team != "bma-training" {
		t.Fatalf("item: %+v", item)
	}
}

func TestFastTrackPlacement(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	alice, _ := svc.Add(ctx, "bma-training", "Alice", false)
	bob, _ := svc.Add(ctx, "bma-training", "Bob", true)
	carol, _ := svc.Add(ctx, "bma-training", "Carol", true)

	snap := svc.State(ctx, "bma-training")
	got := []string{snap.Items[0].Name, snap.Items[1].Name, snap.Items[2].Name}
	if got[0] != "Bob" || got[1] != "Carol" || got[2] != "Alice" {
		t.Fatalf("order: %v", got)
	}

	if err := svc.Remove(ctx, "bma-training", alice.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	snap = svc.State(ctx, "bma-training")
	if len(snap.Items) != 2 || snap.Items[0].ID != bob.ID || snap.Items[1].ID != carol.ID {
		t.Fatalf("after remove: %+v", snap.Items)
	}
}

func TestFastTrackPrefixProperty(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pattern := []bool{false, true, false, true, true, false, true, false}
	for i, ft := range pattern {
		name := string(rune('a' + i))
		if _, err := svc.Add(ctx, "bma-training", name, ft); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	snap := svc.State(ctx, "bma-training")
	seenNormal := false
	var fast, normal []string
	for _, it := range snap.Items {
		if it.FastTrack {
			if seenNormal {
				t.Fatalf("fast-track item after normal item: %+v", snap.Items)
			}
			fast = append(fast, it.Name)
		} else {
			seenNormal = true
			normal = append(normal, it.Name)
		}
	}
	// relative insertion order preserved within each group
	if strings.Join(fast, "") != "bdeg" || strings.Join(normal, "") != "acfh" {
		t.Fatalf("groups: fast=%v normal=%v", fast, normal)
	}
}

func TestRemoveNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	if err := svc.Remove(context.Background(), "bma-training", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err: %v", err)
	}
}

func TestStartTimerRules(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, _ := svc.Add(ctx, "bma-training", "Alice", false)
	second, _ := svc.Add(ctx, "bma-training", "Bob", false)

	if err := svc.StartTimer(ctx, "bma-training", "missing", time.Second); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err: %v", err)
	}
	if err := svc.StartTimer(ctx, "bma-training", second.ID, time.Second); !errors.Is(err, ErrNotFirstInLine) {
		t.Fatalf("err: %v", err)
	}
	if err := svc.StartTimer(ctx, "bma-training", first.ID, 5*time.Second); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := svc.State(ctx, "bma-training")
	if snap.CurrentlyServing == nil || snap.CurrentlyServing.ID != first.ID {
		t.Fatalf("serving: %+v", snap.CurrentlyServing)
	}
	if snap.Items[0].TimerStarted == nil || snap.Items[0].TimerDuration == nil || *snap.Items[0].TimerDuration != 5000 {
		t.Fatalf("timer fields: %+v", snap.Items[0])
	}
}

func TestTimerExpiryAutoRemoves(t *testing.T) {
	svc, sched, rt := newTestService(t)
	ctx := context.Background()

	bob, _ := svc.Add(ctx, "bma-training", "Bob", false)
	if err := svc.StartTimer(ctx, "bma-training", bob.ID, 5*time.Second); err != nil {
		t.Fatalf("start: %v", err)
	}

	rec := &recorder{}
	rt.Hub().Subscribe(hub.QueueChannel("bma-training"), rec)

	sched.fns[0]()

	want := []string{"queue:updated", "queue:timer-expired", "queue:item-removed"}
	got := rec.types()
	if len(got) != len(want) {
		t.Fatalf("events: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event order: %v", got)
		}
	}

	snap := svc.State(ctx, "bma-training")
	if len(snap.Items) != 0 || snap.CurrentlyServing != nil {
		t.Fatalf("state after expiry: %+v", snap)
	}
}

func TestStopTimer(t *testing.T) {
	svc, sched, _ := newTestService(t)
	ctx := context.Background()

	bob, _ := svc.Add(ctx, "bma-training", "Bob", false)
	if err := svc.StopTimer(ctx, "bma-training", bob.ID); !errors.Is(err, ErrNoActiveTimer) {
		t.Fatalf("err: %v", err)
	}

	svc.StartTimer(ctx, "bma-training", bob.ID, 5*time.Second)
	if err := svc.StopTimer(ctx, "bma-training", bob.ID); err != nil {
		t.Fatalf("stop: %v", err)
	}

	snap := svc.State(ctx, "bma-training")
	if snap.CurrentlyServing != nil {
		t.Fatalf("serving not cleared")
	}
	if snap.Items[0].TimerStarted != nil || snap.Items[0].TimerDuration != nil {
		t.Fatalf("timer fields not cleared: %+v", snap.Items[0])
	}

	// the stopped clock firing later is a no-op
	sched.fns[0]()
	snap = svc.State(ctx, "bma-training")
	if len(snap.Items) != 1 {
		t.Fatalf("stopped timer removed item")
	}
}

func TestRestartTimerReplacesCountdown(t *testing.T) {
	svc, sched, _ := newTestService(t)
	ctx := context.Background()

	bob, _ := svc.Add(ctx, "bma-training", "Bob", false)
	svc.StartTimer(ctx, "bma-training", bob.ID, 5*time.Second)
	svc.StartTimer(ctx, "bma-training", bob.ID, 10*time.Second)

	// first countdown was replaced; its clock firing changes nothing
	sched.fns[0]()
	snap := svc.State(ctx, "bma-training")
	if len(snap.Items) != 1 {
		t.Fatalf("replaced timer removed item")
	}

	sched.fns[1]()
	snap = svc.State(ctx, "bma-training")
	if len(snap.Items) != 0 {
		t.Fatalf("second timer did not expire")
	}
}

func TestRemoveCancelsTimer(t *testing.T) {
	svc, sched, _ := newTestService(t)
	ctx := context.Background()

	bob, _ := svc.Add(ctx, "bma-training", "Bob", false)
	svc.StartTimer(ctx, "bma-training", bob.ID, 5*time.Second)
	if err := svc.Remove(ctx, "bma-training", bob.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// the cancelled clock firing later must not panic or re-remove
	sched.fns[0]()
	if err := svc.StopTimer(ctx, "bma-training", bob.ID); !errors.Is(err, ErrNoActiveTimer) {
		t.Fatalf("err: %v", err)
	}
}

func TestTeamIsolation(t *testing.T) {
	svc, _, rt := newTestService(t)
	ctx := context.Background()

	alphaRec := &recorder{}
	betaRec := &recorder{}
	rt.Hub().Subscribe(hub.QueueChannel("alpha"), alphaRec)
	rt.Hub().Subscribe(hub.QueueChannel("beta"), betaRec)

	svc.Add(ctx, "alpha", "Alice", false)
	if len(betaRec.events) != 0 {
		t.Fatalf("beta received alpha events: %v", betaRec.types())
	}
	if len(alphaRec.events) != 2 {
		t.Fatalf("alpha events: %v", alphaRec.types())
	}

	if len(svc.State(ctx, "beta").Items) != 0 {
		t.Fatalf("beta state not empty")
	}
}

func TestAddBroadcastsUpdatedThenItemAdded(t *testing.T) {
	svc, _, rt := newTestService(t)
	rec := &recorder{}
	rt.Hub().Subscribe(hub.QueueChannel("bma-training"), rec)

	svc.Add(context.Background(), "bma-training", "Alice", false)
	got := rec.types()
	if len(got) != 2 || got[0] != "queue:updated" || got[1] != "queue:item-added" {
		t.Fatalf("events: %v", got)
	}
}
