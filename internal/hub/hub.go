package hub

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Event is the wire envelope for every broadcast frame.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// QueueChannel returns the broadcast channel for a team's queue.
func QueueChannel(teamID string) string { return "queue:" + teamID }

// ActionItemsChannel returns the broadcast channel for a team's action items.
func ActionItemsChannel(teamID string) string { return "actionItems:" + teamID }

// Conn receives encoded frames. Send must not block on slow consumers; the
// transport bindings buffer internally and report an error when the buffer
// is full or the peer is gone.
type Conn interface {
	Send(frame []byte) error
}

// Hub routes events from channels to their subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[Conn]struct{}
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{subs: make(map[string]map[Conn]struct{})}
}

// Subscribe adds c to the channel.
func (h *Hub) Subscribe(channel string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[channel]
	if !ok {
		set = make(map[Conn]struct{})
		h.subs[channel] = set
	}
	set[c] = struct{}{}
}

// Unsubscribe removes c from the channel.
func (h *Hub) Unsubscribe(channel string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[channel]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, channel)
		}
	}
}

// Drop removes c from every channel.
func (h *Hub) Drop(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for channel, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, channel)
		}
	}
}

// Broadcast encodes the event once and delivers it to every subscriber of
// the channel. Subscribers whose Send fails are dropped from all channels.
func (h *Hub) Broadcast(channel string, ev Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", ev.Type, err)
	}

	h.mu.Lock()
	var dead []Conn
	for c := range h.subs[channel] {
		if err := c.Send(frame); err != nil {
			dead = append(dead, c)
		}
	}
	for _, c := range dead {
		for ch, set := range h.subs {
			delete(set, c)
			if len(set) == 0 {
				delete(h.subs, ch)
			}
		}
	}
	h.mu.Unlock()
	return nil
}

// SendTo delivers the event to a single connection, outside any channel.
func (h *Hub) SendTo(c Conn, ev Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", ev.Type, err)
	}
	return c.Send(frame)
}

// Subscribers returns the current subscriber count for a channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[channel])
}
