package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/pkg/log"
)

// sseConn buffers broadcast frames for one event-stream client. Send never
// blocks the mutation path; a full buffer marks the client too slow and the
// hub drops it.
type sseConn struct {
	out chan []byte
}

func newSSEConn(buf int) *sseConn {
	if buf <= 0 {
		buf = 64
	}
	return &sseConn{out: make(chan []byte, buf)}
}

func (c *sseConn) Send(frame []byte) error {
	select {
	case c.out <- frame:
		return nil
	default:
		return errors.New("subscriber buffer full")
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	teamID := r.URL.Query().Get("team")
	if teamID == "" {
		teamID = s.rt.Config().DefaultTeam
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	conn := newSSEConn(s.rt.Config().SubBuf)
	h := s.rt.Hub()
	h.Subscribe(hub.QueueChannel(teamID), conn)
	h.Subscribe(hub.ActionItemsChannel(teamID), conn)
	defer h.Drop(conn)

	// Initial snapshots go through the same buffer as broadcasts so the
	// client sees state before any later event.
	_ = h.SendTo(conn, hub.Event{Type: "queue:updated", Data: s.reg.Queue().State(r.Context(), teamID)})
	_ = h.SendTo(conn, hub.Event{Type: "actionItems:updated", Data: s.reg.ActionItems().State(r.Context(), teamID)})

	s.logger.Debug("event stream opened", log.Str("team", teamID))

	keepAlive := time.Duration(s.rt.Config().KeepAliveMs) * time.Millisecond
	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame := <-conn.out:
			if err := writeSSE(w, frame); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if err := writeSSE(w, []byte(`{"type":"ping"}`)); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, frame []byte) error {
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n\n"))
	return err
}
