package wsserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/LynchzDEV/CommitQ/internal/config"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	rt := runtime.New(runtime.Options{Config: cfgpkg.Default()})
	ts := httptest.NewServer(New(rt).Handler())
	t.Cleanup(func() {
		ts.Close()
		rt.Close()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/socket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, body string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev.Type, ev.Data
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestJoinDeliversSnapshot(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, `{"event":"queue:join-team","team":"caffeine"}`)
	typ, data := readEvent(t, conn)
	require.Equal(t, "queue:updated", typ)
	require.Empty(t, data.(map[string]any)["items"])
}

func TestMutationBroadcastsToJoined(t *testing.T) {
	ts := newTestServer(t)
	watcher := dial(t, ts)
	actor := dial(t, ts)

	send(t, watcher, `{"event":"queue:join-team","team":"caffeine"}`)
	typ, _ := readEvent(t, watcher)
	require.Equal(t, "queue:updated", typ)

	send(t, actor, `{"event":"queue:add","team":"caffeine","data":{"name":"Alice"}}`)

	typ, data := readEvent(t, watcher)
	require.Equal(t, "queue:updated", typ)
	items := data.(map[string]any)["items"].([]any)
	require.Len(t, items, 1)

	typ, data = readEvent(t, watcher)
	require.Equal(t, "queue:item-added", typ)
	require.Equal(t, "Alice", data.(map[string]any)["name"])

	// the actor never joined, so it sees nothing
	expectSilence(t, actor)
}

func TestErrorGoesToRequesterOnly(t *testing.T) {
	ts := newTestServer(t)
	watcher := dial(t, ts)
	actor := dial(t, ts)

	send(t, watcher, `{"event":"queue:join-team","team":"caffeine"}`)
	readEvent(t, watcher)

	send(t, actor, `{"event":"queue:add","team":"caffeine","data":{"name":"  "}}`)
	typ, data := readEvent(t, actor)
	require.Equal(t, "queue:error", typ)
	require.Equal(t, "Queue name cannot be empty", data)

	expectSilence(t, watcher)
}

func TestLeaveStopsDelivery(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)
	actor := dial(t, ts)

	send(t, conn, `{"event":"queue:join-team","team":"caffeine"}`)
	readEvent(t, conn)
	send(t, conn, `{"event":"queue:leave-team","team":"caffeine"}`)

	// leave has no ack; give the server a beat to process it
	time.Sleep(100 * time.Millisecond)
	send(t, actor, `{"event":"queue:add","team":"caffeine","data":{"name":"Alice"}}`)
	expectSilence(t, conn)
}

func TestGetStateAnswersRequester(t *testing.T) {
	ts := newTestServer(t)
	actor := dial(t, ts)

	send(t, actor, `{"event":"actionItems:add","team":"tmlt","data":{"title":"write docs"}}`)
	send(t, actor, `{"event":"actionItems:get-state","team":"tmlt"}`)

	typ, data := readEvent(t, actor)
	require.Equal(t, "actionItems:updated", typ)
	items := data.(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "write docs", items[0].(map[string]any)["title"])
}

func TestActionItemsChannelIndependentOfQueue(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)
	actor := dial(t, ts)

	send(t, conn, `{"event":"actionItems:join-team","team":"caffeine"}`)
	typ, _ := readEvent(t, conn)
	require.Equal(t, "actionItems:updated", typ)

	// queue traffic must not leak into the action-items channel; the next
	// frame conn sees is the action-item update, not the queue one
	send(t, actor, `{"event":"queue:add","team":"caffeine","data":{"name":"Alice"}}`)
	send(t, actor, `{"event":"actionItems:add","team":"caffeine","data":{"title":"write docs"}}`)

	typ, data := readEvent(t, conn)
	require.Equal(t, "actionItems:updated", typ)
	items := data.(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "write docs", items[0].(map[string]any)["title"])
}
