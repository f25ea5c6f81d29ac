package team

import (
	"sync"
	"time"
)

// QueueItem is a single entry in a team's waiting line.
type QueueItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AddedAt   time.Time `json:"addedAt"`
	FastTrack bool      `json:"fastTrack"`
	Team      string    `json:"team"`
	// Timer fields are set only while the item is being served.
	TimerStarted  *time.Time `json:"timerStarted,omitempty"`
	TimerDuration *int64     `json:"timerDuration,omitempty"`
}

// QueueState is a team's waiting line. Items order is the line order.
// Serving holds the id of the currently-serving item, empty when none.
type QueueState struct {
	Items   []*QueueItem
	Serving string
}

// QueueSnapshot is a deep copy of QueueState in the wire shape.
type QueueSnapshot struct {
	Items            []QueueItem `json:"items"`
	CurrentlyServing *QueueItem  `json:"currentlyServing,omitempty"`
}

// Index returns the position of id in the line, or -1.
func (q *QueueState) Index(id string) int {
	for i, it := range q.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id, or nil.
func (q *QueueState) Find(id string) *QueueItem {
	if i := q.Index(id); i >= 0 {
		return q.Items[i]
	}
	return nil
}

// Snapshot deep-copies the queue state for broadcast. The serving reference
// points at the copy, never at a canonical item.
func (q *QueueState) Snapshot() QueueSnapshot {
	snap := QueueSnapshot{Items: make([]QueueItem, len(q.Items))}
	for i, it := range q.Items {
		snap.Items[i] = copyQueueItem(it)
		if q.Serving != "" && it.ID == q.Serving {
			serving := snap.Items[i]
			snap.CurrentlyServing = &serving
		}
	}
	return snap
}

func copyQueueItem(it *QueueItem) QueueItem {
	c := *it
	if it.TimerStarted != nil {
		ts := *it.TimerStarted
		c.TimerStarted = &ts
	}
	if it.TimerDuration != nil {
		d := *it.TimerDuration
		c.TimerDuration = &d
	}
	return c
}

// ActionItem is a tracked task, optionally completed with a proof image.
type ActionItem struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Completed           bool       `json:"completed"`
	CreatedAt           time.Time  `json:"createdAt"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	CompletionImage     string     `json:"completionImage,omitempty"`
	CompletionImageName string     `json:"completionImageName,omitempty"`
	Team                string     `json:"team"`
}

// ActionItemsState is a team's action-item collection in insertion order.
// Pending and completed views are derived by filtering on Completed.
type ActionItemsState struct {
	Items []*ActionItem
}

// ActionItemsSnapshot is a deep copy of ActionItemsState in the wire shape.
type ActionItemsSnapshot struct {
	Items []ActionItem `json:"items"`
}

// Index returns the position of id in the collection, or -1.
func (a *ActionItemsState) Index(id string) int {
	for i, it := range a.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id, or nil.
func (a *ActionItemsState) Find(id string) *ActionItem {
	if i := a.Index(id); i >= 0 {
		return a.Items[i]
	}
	return nil
}

// Snapshot deep-copies the action-item state for broadcast.
func (a *ActionItemsState) Snapshot() ActionItemsSnapshot {
	snap := ActionItemsSnapshot{Items: make([]ActionItem, len(a.Items))}
	for i, it := range a.Items {
		snap.Items[i] = copyActionItem(it)
	}
	return snap
}

func copyActionItem(it *ActionItem) ActionItem {
	c := *it
	if it.CompletedAt != nil {
		ts := *it.CompletedAt
		c.CompletedAt = &ts
	}
	return c
}

// State is one team's mutable state. The mutex guards both the queue and the
// action items; it is held for the duration of a mutation plus the snapshot
// read that feeds the broadcast.
type State struct {
	mu     sync.Mutex
	Queue  QueueState
	Action ActionItemsState
}

// Lock acquires the team's mutation lock.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the team's mutation lock.
func (s *State) Unlock() { s.mu.Unlock() }

// Store maps team identifiers to their state. Entries are created lazily and
// never removed.
type Store struct {
	mu    sync.Mutex
	teams map[string]*State
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{teams: make(map[string]*State)}
}

// Team returns the state for the given team, allocating an empty one on
// first access. Idempotent: later calls return the same reference. The store
// does not validate team membership; that belongs to the boundary layer.
func (s *Store) Team(teamID string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.teams[teamID]
	if !ok {
		st = &State{}
		s.teams[teamID] = st
	}
	return st
}

// Len returns the number of teams seen so far.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.teams)
}
