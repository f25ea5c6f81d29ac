package wsserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
	"github.com/LynchzDEV/CommitQ/internal/server/actions"
	"github.com/LynchzDEV/CommitQ/pkg/log"
)

// frame is one inbound client message.
type frame struct {
	Event string          `json:"event"`
	Team  string          `json:"team"`
	Data  json.RawMessage `json:"data"`
}

type Server struct {
	rt       *runtime.Runtime
	reg      *actions.Registry
	srv      *http.Server
	lis      net.Listener
	upgrader websocket.Upgrader
	logger   log.Logger
}

func New(rt *runtime.Runtime) *Server {
	return NewWithRegistry(rt, actions.New(rt))
}

// NewWithRegistry builds a Server sharing an action registry with another
// binding so both dispatch into the same engine instances.
func NewWithRegistry(rt *runtime.Runtime, reg *actions.Registry) *Server {
	mux := http.NewServeMux()
	s := &Server{
		rt:  rt,
		reg: reg,
		srv: &http.Server{Handler: mux},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: rt.Logger().WithComponent("ws"),
	}
	mux.HandleFunc("/v1/socket", s.handleSocket)
	return s
}

// Handler returns the root handler, for tests driving httptest directly.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	sock, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn := newWSConn(sock, s.rt.Config().SubBuf)
	go conn.writePump()

	// Base64 image payloads dominate frame size; leave generous headroom
	// over the configured byte bound.
	if max := s.rt.Config().Limits.ImageMaxBytes; max > 0 {
		sock.SetReadLimit(int64(max)*2 + 64*1024)
	}
	_ = sock.SetReadDeadline(time.Now().Add(pongWait))
	sock.SetPongHandler(func(string) error {
		return sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	h := s.rt.Hub()
	defer func() {
		h.Drop(conn)
		conn.close()
	}()

	for {
		_, raw, err := sock.ReadMessage()
		if err != nil {
			return
		}
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			_ = h.SendTo(conn, hub.Event{Type: "queue:error", Data: "Invalid message"})
			continue
		}
		s.handleFrame(r.Context(), conn, f)
	}
}

// handleFrame routes one inbound frame. Join and leave manage channel
// membership; everything else goes through the action registry.
func (s *Server) handleFrame(ctx context.Context, conn *wsConn, f frame) {
	h := s.rt.Hub()
	teamID := f.Team
	if teamID == "" {
		teamID = s.rt.Config().DefaultTeam
	}

	switch f.Event {
	case "queue:join-team":
		h.Subscribe(hub.QueueChannel(teamID), conn)
		_ = h.SendTo(conn, hub.Event{Type: "queue:updated", Data: s.reg.Queue().State(ctx, teamID)})
		return
	case "queue:leave-team":
		h.Unsubscribe(hub.QueueChannel(teamID), conn)
		return
	case "actionItems:join-team":
		h.Subscribe(hub.ActionItemsChannel(teamID), conn)
		_ = h.SendTo(conn, hub.Event{Type: "actionItems:updated", Data: s.reg.ActionItems().State(ctx, teamID)})
		return
	case "actionItems:leave-team":
		h.Unsubscribe(hub.ActionItemsChannel(teamID), conn)
		return
	}

	resp, err := s.reg.Dispatch(ctx, actions.Request{Action: f.Event, Team: f.Team, Data: f.Data})
	if err != nil {
		s.logger.Debug("frame rejected", log.Str("event", f.Event), log.Err(err))
		_ = h.SendTo(conn, hub.Event{Type: errorEvent(f.Event), Data: err.Error()})
		return
	}
	// get-state answers only the asking connection
	if resp.Data != nil {
		_ = h.SendTo(conn, hub.Event{Type: stateEvent(f.Event), Data: resp.Data})
	}
}

func errorEvent(action string) string {
	if strings.HasPrefix(action, "actionItems:") {
		return "actionItems:error"
	}
	return "queue:error"
}

func stateEvent(action string) string {
	if strings.HasPrefix(action, "actionItems:") {
		return "actionItems:updated"
	}
	return "queue:updated"
}
