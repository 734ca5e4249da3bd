package transport

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/lspsansio/lspclient/internal/xevent"
	"github.com/lspsansio/lspclient/lspclient"
)

// WebSocket shuttles bytes between a *lspclient.Session and a language
// server exposed over a WebSocket connection, as an alternative to
// launching a local subprocess (Stdio).
//
// connID is a random identifier stamped into this connection's log lines
// only — it never enters the JSON-RPC id space, which spec.md §3 leaves to
// the core to allocate (int64/string chosen by Session, never by transport).
type WebSocket struct {
	conn    *websocket.Conn
	connID  string
	log     xevent.Logger
	mu      sync.Mutex
	session *lspclient.Session
	onEvent func(lspclient.Event)
}

// DialWebSocket connects to a WebSocket-exposed language server at url.
func DialWebSocket(url, origin string, session *lspclient.Session, onEvent func(lspclient.Event), log xevent.Logger) (*WebSocket, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	connID := uuid.NewString()
	log.Log("websocket connected", xevent.Of("conn", connID), xevent.Of("url", url))
	return &WebSocket{conn: conn, connID: connID, log: log, session: session, onEvent: onEvent}, nil
}

// Run blocks, reading frames off the WebSocket connection and feeding them
// to the session, until the connection closes or a framing error occurs.
func (w *WebSocket) Run() error {
	buf := make([]byte, 64*1024)
	for {
		n, err := w.conn.Read(buf)
		if n > 0 {
			w.mu.Lock()
			events, feedErr := w.session.Feed(buf[:n])
			w.mu.Unlock()
			for _, ev := range events {
				w.onEvent(ev)
			}
			if feedErr != nil {
				w.log.Log("websocket frame error", xevent.Of("conn", w.connID), xevent.Err(feedErr))
				return feedErr
			}
		}
		if err != nil {
			w.log.Log("websocket closed", xevent.Of("conn", w.connID), xevent.Err(err))
			return err
		}
	}
}

// Flush drains the session's send buffer and writes it to the connection.
func (w *WebSocket) Flush() error {
	w.mu.Lock()
	out := w.session.Drain()
	w.mu.Unlock()
	if len(out) == 0 {
		return nil
	}
	_, err := w.conn.Write(out)
	return err
}

// Close closes the underlying connection.
func (w *WebSocket) Close() error { return w.conn.Close() }
