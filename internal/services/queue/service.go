package queuesvc

import (
	"context"
	"strings"
	"time"

	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
	"github.com/LynchzDEV/CommitQ/internal/team"
	"github.com/LynchzDEV/CommitQ/internal/timer"
	"github.com/LynchzDEV/CommitQ/pkg/id"
)

type Service struct{ rt *runtime.Runtime }

func New(rt *runtime.Runtime) *Service { return &Service{rt: rt} }

// TimerStartedData is the payload of a "queue:timer-started" event.
// Duration is in milliseconds, matching the wire contract.
type TimerStartedData struct {
	ID        string    `json:"id"`
	Duration  int64     `json:"duration"`
	StartTime time.Time `json:"startTime"`
}

// IDData is the payload of item-removed and timer-expired events.
type IDData struct {
	ID string `json:"id"`
}

// Add validates the name, places the item per its fast-track flag, and
// broadcasts the new state. Fast-track items go right after the contiguous
// fast-track prefix so they precede every normal item while keeping their
// own insertion order.
func (s *Service) Add(ctx context.Context, teamID, name string, fastTrack bool) (team.QueueItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.QueueItem{}, ErrNameEmpty
	}
	if max := s.rt.Config().Limits.NameMaxLen; max > 0 && len([]rune(name)) > max {
		return team.QueueItem{}, ErrNameTooLong
	}

	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	item := &team.QueueItem{
		ID:        id.Next(),
		Name:      name,
		AddedAt:   time.Now(),
		FastTrack: fastTrack,
		Team:      teamID,
	}
	if fastTrack {
		pos := 0
		for pos < len(st.Queue.Items) && st.Queue.Items[pos].FastTrack {
			pos++
		}
		st.Queue.Items = append(st.Queue.Items, nil)
		copy(st.Queue.Items[pos+1:], st.Queue.Items[pos:])
		st.Queue.Items[pos] = item
	} else {
		st.Queue.Items = append(st.Queue.Items, item)
	}

	out := *item
	ch := hub.QueueChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:updated", Data: st.Queue.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:item-added", Data: out})
	return out, nil
}

// Remove deletes the item, cancelling any live countdown and clearing the
// serving slot if it pointed at the item.
func (s *Service) Remove(ctx context.Context, teamID, itemID string) error {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	i := st.Queue.Index(itemID)
	if i < 0 {
		return ErrNotFound
	}
	s.rt.Timers().Stop(itemID)
	st.Queue.Items = append(st.Queue.Items[:i], st.Queue.Items[i+1:]...)
	if st.Queue.Serving == itemID {
		st.Queue.Serving = ""
	}

	ch := hub.QueueChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:updated", Data: st.Queue.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:item-removed", Data: IDData{ID: itemID}})
	return nil
}

// StartTimer begins the serving countdown for the item at the head of the
// line. Starting again for the same item replaces the running countdown.
// On expiry the item is removed automatically.
func (s *Service) StartTimer(ctx context.Context, teamID, itemID string, d time.Duration) error {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	item := st.Queue.Find(itemID)
	if item == nil {
		return ErrNotFound
	}
	if st.Queue.Items[0].ID != itemID {
		return ErrNotFirstInLine
	}

	reg := s.rt.Timers().Start(teamID, itemID, d, s.expire)
	started := reg.Started
	durMs := d.Milliseconds()
	item.TimerStarted = &started
	item.TimerDuration = &durMs
	st.Queue.Serving = itemID

	ch := hub.QueueChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:updated", Data: st.Queue.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:timer-started", Data: TimerStartedData{
		ID:        itemID,
		Duration:  durMs,
		StartTime: started,
	}})
	return nil
}

// StopTimer cancels the live countdown for the item, keeping the item in
// line but clearing its timer fields and the serving slot.
func (s *Service) StopTimer(ctx context.Context, teamID, itemID string) error {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	if _, ok := s.rt.Timers().Stop(itemID); !ok {
		return ErrNoActiveTimer
	}
	if item := st.Queue.Find(itemID); item != nil {
		item.TimerStarted = nil
		item.TimerDuration = nil
	}
	if st.Queue.Serving == itemID {
		st.Queue.Serving = ""
	}

	s.rt.Hub().Broadcast(hub.QueueChannel(teamID), hub.Event{Type: "queue:updated", Data: st.Queue.Snapshot()})
	return nil
}

// State returns a snapshot of the team's line.
func (s *Service) State(ctx context.Context, teamID string) team.QueueSnapshot {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()
	return st.Queue.Snapshot()
}

// expire runs when a serving countdown fires without being stopped. The
// registration was already claimed, so a concurrent StopTimer either won the
// race (and this never runs) or sees no active timer.
func (s *Service) expire(reg *timer.Registration) {
	st := s.rt.Teams().Team(reg.Team)
	st.Lock()
	defer st.Unlock()

	i := st.Queue.Index(reg.ItemID)
	if i < 0 {
		return
	}
	st.Queue.Items = append(st.Queue.Items[:i], st.Queue.Items[i+1:]...)
	if st.Queue.Serving == reg.ItemID {
		st.Queue.Serving = ""
	}

	ch := hub.QueueChannel(reg.Team)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:updated", Data: st.Queue.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:timer-expired", Data: IDData{ID: reg.ItemID}})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "queue:item-removed", Data: IDData{ID: reg.ItemID}})
}
