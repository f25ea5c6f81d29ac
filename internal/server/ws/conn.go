package wsserver

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// wsConn adapts a websocket connection to hub.Conn. Broadcast frames are
// buffered and drained by a single write pump so the mutation path never
// blocks on a slow peer.
type wsConn struct {
	sock *websocket.Conn
	out  chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func newWSConn(sock *websocket.Conn, buf int) *wsConn {
	if buf <= 0 {
		buf = 64
	}
	return &wsConn{sock: sock, out: make(chan []byte, buf), done: make(chan struct{})}
}

func (c *wsConn) Send(frame []byte) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	case c.out <- frame:
		return nil
	default:
		return errors.New("subscriber buffer full")
	}
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// writePump drains the outbound buffer and keeps the peer alive with pings.
// It owns every write on the socket.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.sock.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-c.out:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
